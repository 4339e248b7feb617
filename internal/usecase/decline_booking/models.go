package decline_booking

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры отклонения бронирования
type Request struct {
	BookingID int64
	ManagerID int64
}

// Response отклоненное бронирование
type Response struct {
	Booking *domain.Booking
}
