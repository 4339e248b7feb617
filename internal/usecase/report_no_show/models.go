package report_no_show

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры отметки неявки
type Request struct {
	BookingID int64
	ManagerID int64
}

// Response бронирование после отметки неявки
type Response struct {
	Booking *domain.Booking
}
