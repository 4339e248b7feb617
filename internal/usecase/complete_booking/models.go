package complete_booking

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры завершения бронирования
type Request struct {
	BookingID int64
	ManagerID int64
}

// Response завершенное бронирование
type Response struct {
	Booking *domain.Booking
}
