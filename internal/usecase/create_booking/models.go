package create_booking

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры создания бронирования
type Request struct {
	CustomerID int64
	CompanyID  int64
	ServiceID  int64
	StaffID    int64
	StartAtMs  int64
	Note       *string
}

// Response созданное бронирование
type Response struct {
	Booking *domain.Booking
}
