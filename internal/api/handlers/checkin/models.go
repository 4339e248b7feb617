package checkin

import "github.com/glossup/GLS-SchedulingService/internal/api/handlers"

// IssueResponse выданный код чекина
type IssueResponse struct {
	BookingID   int64  `json:"bookingId"`
	Code        string `json:"code"`
	ExpiresAtMs int64  `json:"expiresAtMs"`
}

// VerifyRequest тело запроса проверки кода
type VerifyRequest struct {
	Code string `json:"code"`
}

// PreviewResponse результат предпросмотра кода
type PreviewResponse struct {
	Booking  handlers.BookingResponse `json:"booking"`
	Expired  bool                     `json:"expired"`
	Consumed bool                     `json:"consumed"`
}
