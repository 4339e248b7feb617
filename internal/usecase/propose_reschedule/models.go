package propose_reschedule

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры предложения переноса
type Request struct {
	BookingID int64
	ManagerID int64
	StartAtMs int64
	Note      *string
}

// Response бронирование с зафиксированным предложением
type Response struct {
	Booking *domain.Booking
}
