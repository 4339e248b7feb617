package payments

import (
	"errors"
	"net/http"

	"github.com/glossup/GLS-SchedulingService/internal/api/handlers"
	"github.com/glossup/GLS-SchedulingService/internal/service/bookings"
)

// Сообщения об ошибках
const (
	msgInvalidBody     = "некорректное тело запроса"
	msgBookingNotFound = "бронирование не найдено"
	msgUnknownStatus   = "неизвестный статус оплаты"
)

// WebhookRequest тело вебхука платежного провайдера
type WebhookRequest struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}

// Handler обработчик вебхуков платежного провайдера.
// Эндпоинт внутренний: наружу не публикуется, доступ ограничен сетью.
type Handler struct {
	service BookingsService
	logger  Logger
}

// New создает новый обработчик платежных вебхуков
func New(service BookingsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Webhook обрабатывает POST /internal/payments/webhook
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if req.BookingID <= 0 || req.Status == "" {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.ApplyPaymentStatus(r.Context(), req.BookingID, req.Status); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrUnknownPaymentStatus):
			h.logger.Warn("[PaymentsHandler] Unknown payment status: bookingID=%d, status=%q", req.BookingID, req.Status)
			handlers.RespondBadRequest(w, msgUnknownStatus)
		default:
			h.logger.Error("[PaymentsHandler] Webhook failed: bookingID=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
