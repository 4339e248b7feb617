package accept_booking

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры подтверждения бронирования
type Request struct {
	BookingID int64
	ManagerID int64
}

// Response подтвержденное бронирование
type Response struct {
	Booking *domain.Booking
}
