package respond_proposal

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры ответа на предложение переноса
type Request struct {
	BookingID int64
	ActorID   int64
	ActorRole domain.ActorRole
	Accept    bool
}

// Response бронирование после ответа
type Response struct {
	Booking *domain.Booking
}
