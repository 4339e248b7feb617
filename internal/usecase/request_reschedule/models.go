package request_reschedule

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры запроса переноса клиентом
type Request struct {
	BookingID  int64
	CustomerID int64
	StartAtMs  int64
	Note       *string
}

// Response бронирование с зафиксированным запросом переноса
type Response struct {
	Booking *domain.Booking
}
