package checkin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glossup/GLS-SchedulingService/internal/api/handlers"
	"github.com/glossup/GLS-SchedulingService/internal/api/middleware"
	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/issue_checkin_code"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/verify_checkin"
)

// Сообщения об ошибках
const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidBody      = "некорректное тело запроса"
	msgCompanyOnly      = "операция доступна только компании"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "нет доступа к бронированию"
	msgNotConfirmed     = "бронирование не подтверждено"
	msgCodeNotIssued    = "код чекина не выдавался"
	msgInvalidCode      = "код не совпадает"
	msgCodeExpired      = "срок действия кода истек"
	msgCodeAlreadyUsed  = "код уже был использован"
	msgStaleState       = "бронирование изменено параллельным запросом, повторите"
)

// Handler обработчик чекина
type Handler struct {
	issueUseCase  IssueUseCase
	verifyUseCase VerifyUseCase
	logger        Logger
}

// New создает новый обработчик чекина
func New(issueUseCase IssueUseCase, verifyUseCase VerifyUseCase, logger Logger) *Handler {
	return &Handler{
		issueUseCase:  issueUseCase,
		verifyUseCase: verifyUseCase,
		logger:        logger,
	}
}

// IssueCode обрабатывает POST /api/v1/bookings/{bookingID}/checkin/code
func (h *Handler) IssueCode(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := middleware.ActorFromContext(r.Context())
	if !ok || role != domain.RoleCompany {
		handlers.RespondForbidden(w, msgCompanyOnly)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	out, err := h.issueUseCase.Execute(r.Context(), issue_checkin_code.Request{
		BookingID: bookingID,
		ManagerID: actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, issue_checkin_code.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, issue_checkin_code.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, issue_checkin_code.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, issue_checkin_code.ErrWrongState):
			handlers.RespondConflict(w, msgNotConfirmed)
		case errors.Is(err, issue_checkin_code.ErrStaleState):
			handlers.RespondConflict(w, msgStaleState)
		default:
			h.logger.Error("[CheckinHandler] IssueCode failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, IssueResponse{
		BookingID:   out.BookingID,
		Code:        out.Code,
		ExpiresAtMs: out.ExpiresAtMs,
	})
}

// Preview обрабатывает POST /api/v1/bookings/{bookingID}/checkin/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	in, ok := h.verifyInput(w, r)
	if !ok {
		return
	}

	out, err := h.verifyUseCase.Preview(r.Context(), in)
	if err != nil {
		h.respondVerifyError(w, err, "Preview")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PreviewResponse{
		Booking:  handlers.NewBookingResponse(out.Booking),
		Expired:  out.Expired,
		Consumed: out.Consumed,
	})
}

// Confirm обрабатывает POST /api/v1/bookings/{bookingID}/checkin/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	in, ok := h.verifyInput(w, r)
	if !ok {
		return
	}

	out, err := h.verifyUseCase.Confirm(r.Context(), in)
	if err != nil {
		h.respondVerifyError(w, err, "Confirm")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(out.Booking))
}

func (h *Handler) verifyInput(w http.ResponseWriter, r *http.Request) (verify_checkin.Request, bool) {
	actorID, role, ok := middleware.ActorFromContext(r.Context())
	if !ok || role != domain.RoleCompany {
		handlers.RespondForbidden(w, msgCompanyOnly)
		return verify_checkin.Request{}, false
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return verify_checkin.Request{}, false
	}

	var req VerifyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return verify_checkin.Request{}, false
	}

	return verify_checkin.Request{
		BookingID: bookingID,
		ManagerID: actorID,
		Code:      req.Code,
	}, true
}

func (h *Handler) respondVerifyError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, verify_checkin.ErrValidation):
		handlers.RespondBadRequest(w, err.Error())
	case errors.Is(err, verify_checkin.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, verify_checkin.ErrAccessDenied):
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, verify_checkin.ErrCodeNotIssued):
		handlers.RespondNotFound(w, msgCodeNotIssued)
	case errors.Is(err, verify_checkin.ErrInvalidCode):
		handlers.RespondBadRequest(w, msgInvalidCode)
	case errors.Is(err, verify_checkin.ErrCodeExpired):
		handlers.RespondBadRequest(w, msgCodeExpired)
	case errors.Is(err, verify_checkin.ErrCodeAlreadyUsed):
		handlers.RespondConflict(w, msgCodeAlreadyUsed)
	case errors.Is(err, verify_checkin.ErrWrongState):
		handlers.RespondConflict(w, msgNotConfirmed)
	case errors.Is(err, verify_checkin.ErrStaleState):
		handlers.RespondConflict(w, msgStaleState)
	default:
		h.logger.Error("[CheckinHandler] %s failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
