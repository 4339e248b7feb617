package lifecycle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glossup/GLS-SchedulingService/internal/api/handlers"
	"github.com/glossup/GLS-SchedulingService/internal/api/middleware"
	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/accept_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/complete_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/decline_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/report_no_show"
)

// Сообщения об ошибках
const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgCompanyOnly       = "операция доступна только компании"
	msgBookingNotFound   = "бронирование не найдено"
	msgAccessDenied      = "нет доступа к бронированию"
	msgNotPending        = "бронирование не ожидает решения"
	msgNotCheckedIn      = "клиент еще не прошел чекин"
	msgNotConfirmed      = "бронирование не подтверждено"
	msgPaymentNotSettled = "оплата еще не подтверждена"
	msgGraceNotElapsed   = "грейс-период после начала визита еще не истек"
	msgStaleState        = "бронирование изменено параллельным запросом, повторите"
	msgSlotTaken         = "время уже занято"
)

// Handler обработчик решений компании по жизненному циклу бронирования
type Handler struct {
	acceptUseCase   AcceptUseCase
	declineUseCase  DeclineUseCase
	completeUseCase CompleteUseCase
	noShowUseCase   NoShowUseCase
	logger          Logger
}

// New создает новый обработчик жизненного цикла
func New(
	acceptUseCase AcceptUseCase,
	declineUseCase DeclineUseCase,
	completeUseCase CompleteUseCase,
	noShowUseCase NoShowUseCase,
	logger Logger,
) *Handler {
	return &Handler{
		acceptUseCase:   acceptUseCase,
		declineUseCase:  declineUseCase,
		completeUseCase: completeUseCase,
		noShowUseCase:   noShowUseCase,
		logger:          logger,
	}
}

func (h *Handler) managerAndBooking(w http.ResponseWriter, r *http.Request) (managerID, bookingID int64, ok bool) {
	actorID, role, authed := middleware.ActorFromContext(r.Context())
	if !authed || role != domain.RoleCompany {
		handlers.RespondForbidden(w, msgCompanyOnly)
		return 0, 0, false
	}
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, 0, false
	}
	return actorID, bookingID, true
}

// Accept обрабатывает POST /api/v1/bookings/{bookingID}/accept
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	managerID, bookingID, ok := h.managerAndBooking(w, r)
	if !ok {
		return
	}

	out, err := h.acceptUseCase.Execute(r.Context(), accept_booking.Request{BookingID: bookingID, ManagerID: managerID})
	if err != nil {
		switch {
		case errors.Is(err, accept_booking.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, accept_booking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, accept_booking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, accept_booking.ErrWrongState):
			handlers.RespondConflict(w, msgNotPending)
		case errors.Is(err, accept_booking.ErrPaymentNotSettled):
			handlers.RespondConflict(w, msgPaymentNotSettled)
		case errors.Is(err, accept_booking.ErrSlotTaken):
			handlers.RespondConflict(w, msgSlotTaken)
		case errors.Is(err, accept_booking.ErrStaleState):
			handlers.RespondConflict(w, msgStaleState)
		default:
			h.logger.Error("[LifecycleHandler] Accept failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(out.Booking))
}

// Decline обрабатывает POST /api/v1/bookings/{bookingID}/decline
func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	managerID, bookingID, ok := h.managerAndBooking(w, r)
	if !ok {
		return
	}

	out, err := h.declineUseCase.Execute(r.Context(), decline_booking.Request{BookingID: bookingID, ManagerID: managerID})
	if err != nil {
		switch {
		case errors.Is(err, decline_booking.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, decline_booking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, decline_booking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, decline_booking.ErrWrongState):
			handlers.RespondConflict(w, msgNotPending)
		case errors.Is(err, decline_booking.ErrPaymentNotSettled):
			handlers.RespondConflict(w, msgPaymentNotSettled)
		case errors.Is(err, decline_booking.ErrStaleState):
			handlers.RespondConflict(w, msgStaleState)
		default:
			h.logger.Error("[LifecycleHandler] Decline failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(out.Booking))
}

// Complete обрабатывает POST /api/v1/bookings/{bookingID}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	managerID, bookingID, ok := h.managerAndBooking(w, r)
	if !ok {
		return
	}

	out, err := h.completeUseCase.Execute(r.Context(), complete_booking.Request{BookingID: bookingID, ManagerID: managerID})
	if err != nil {
		switch {
		case errors.Is(err, complete_booking.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, complete_booking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, complete_booking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, complete_booking.ErrWrongState):
			handlers.RespondConflict(w, msgNotCheckedIn)
		case errors.Is(err, complete_booking.ErrStaleState):
			handlers.RespondConflict(w, msgStaleState)
		default:
			h.logger.Error("[LifecycleHandler] Complete failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(out.Booking))
}

// ReportNoShow обрабатывает POST /api/v1/bookings/{bookingID}/no-show
func (h *Handler) ReportNoShow(w http.ResponseWriter, r *http.Request) {
	managerID, bookingID, ok := h.managerAndBooking(w, r)
	if !ok {
		return
	}

	out, err := h.noShowUseCase.Execute(r.Context(), report_no_show.Request{BookingID: bookingID, ManagerID: managerID})
	if err != nil {
		switch {
		case errors.Is(err, report_no_show.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, report_no_show.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, report_no_show.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, report_no_show.ErrWrongState):
			handlers.RespondConflict(w, msgNotConfirmed)
		case errors.Is(err, report_no_show.ErrTooEarly):
			handlers.RespondBadRequest(w, msgGraceNotElapsed)
		case errors.Is(err, report_no_show.ErrStaleState):
			handlers.RespondConflict(w, msgStaleState)
		default:
			h.logger.Error("[LifecycleHandler] ReportNoShow failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(out.Booking))
}
