package verify_checkin

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры проверки кода чекина
type Request struct {
	BookingID int64
	ManagerID int64
	Code      string
}

// PreviewResponse результат предпросмотра: что компания увидит до подтверждения
type PreviewResponse struct {
	Booking  *domain.Booking
	Expired  bool
	Consumed bool
}

// Response бронирование после подтвержденного чекина
type Response struct {
	Booking *domain.Booking
}
