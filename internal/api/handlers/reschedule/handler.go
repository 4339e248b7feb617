package reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glossup/GLS-SchedulingService/internal/api/handlers"
	"github.com/glossup/GLS-SchedulingService/internal/api/middleware"
	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/propose_reschedule"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/request_reschedule"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/respond_proposal"
)

// Сообщения об ошибках
const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidBody      = "некорректное тело запроса"
	msgCompanyOnly      = "операция доступна только компании"
	msgCustomersOnly    = "операция доступна только клиентам"
	msgUnauthorized     = "требуется авторизация"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "нет доступа к бронированию"
	msgWrongState       = "бронирование нельзя перенести в текущем статусе"
	msgStartInPast      = "предложенное время уже прошло"
	msgNotSameDay       = "перенос возможен только в пределах того же дня"
	msgLimitReached     = "лимит переносов исчерпан"
	msgSlotTaken        = "предложенное время уже занято"
	msgNoProposal       = "на бронировании нет ожидающего предложения"
	msgOwnProposal      = "на свое предложение отвечать нельзя"
	msgStaleState       = "бронирование изменено параллельным запросом, повторите"
)

// Handler обработчик переносов бронирований
type Handler struct {
	proposeUseCase ProposeUseCase
	requestUseCase RequestUseCase
	respondUseCase RespondUseCase
	logger         Logger
}

// New создает новый обработчик переносов
func New(proposeUseCase ProposeUseCase, requestUseCase RequestUseCase, respondUseCase RespondUseCase, logger Logger) *Handler {
	return &Handler{
		proposeUseCase: proposeUseCase,
		requestUseCase: requestUseCase,
		respondUseCase: respondUseCase,
		logger:         logger,
	}
}

// Propose обрабатывает POST /api/v1/bookings/{bookingID}/reschedule/propose
func (h *Handler) Propose(w http.ResponseWriter, r *http.Request) {
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

	var req ProposeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	out, err := h.proposeUseCase.Execute(r.Context(), propose_reschedule.Request{
		BookingID: bookingID,
		ManagerID: actorID,
		StartAtMs: req.StartAtMs,
		Note:      req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, propose_reschedule.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, propose_reschedule.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, propose_reschedule.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, propose_reschedule.ErrWrongState):
			handlers.RespondConflict(w, msgWrongState)
		case errors.Is(err, propose_reschedule.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)
		case errors.Is(err, propose_reschedule.ErrSlotTaken):
			handlers.RespondConflict(w, msgSlotTaken)
		case errors.Is(err, propose_reschedule.ErrStaleState):
			handlers.RespondConflict(w, msgStaleState)
		default:
			h.logger.Error("[RescheduleHandler] Propose failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(out.Booking))
}

// Request обрабатывает POST /api/v1/bookings/{bookingID}/reschedule/request
func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := middleware.ActorFromContext(r.Context())
	if !ok || role != domain.RoleCustomer {
		handlers.RespondForbidden(w, msgCustomersOnly)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ProposeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	out, err := h.requestUseCase.Execute(r.Context(), request_reschedule.Request{
		BookingID:  bookingID,
		CustomerID: actorID,
		StartAtMs:  req.StartAtMs,
		Note:       req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, request_reschedule.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, request_reschedule.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, request_reschedule.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, request_reschedule.ErrWrongState):
			handlers.RespondConflict(w, msgWrongState)
		case errors.Is(err, request_reschedule.ErrNotSameDay):
			handlers.RespondBadRequest(w, msgNotSameDay)
		case errors.Is(err, request_reschedule.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)
		case errors.Is(err, request_reschedule.ErrLimitReached):
			handlers.RespondBadRequest(w, msgLimitReached)
		case errors.Is(err, request_reschedule.ErrSlotTaken):
			handlers.RespondConflict(w, msgSlotTaken)
		case errors.Is(err, request_reschedule.ErrStaleState):
			handlers.RespondConflict(w, msgStaleState)
		default:
			h.logger.Error("[RescheduleHandler] Request failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(out.Booking))
}

// Respond обрабатывает POST /api/v1/bookings/{bookingID}/reschedule/respond
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RespondRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	out, err := h.respondUseCase.Execute(r.Context(), respond_proposal.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: role,
		Accept:    req.Accept,
	})
	if err != nil {
		switch {
		case errors.Is(err, respond_proposal.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, respond_proposal.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, respond_proposal.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, respond_proposal.ErrNoProposal):
			handlers.RespondConflict(w, msgNoProposal)
		case errors.Is(err, respond_proposal.ErrOwnProposal):
			handlers.RespondForbidden(w, msgOwnProposal)
		case errors.Is(err, respond_proposal.ErrSlotTaken):
			handlers.RespondConflict(w, msgSlotTaken)
		case errors.Is(err, respond_proposal.ErrStaleState):
			handlers.RespondConflict(w, msgStaleState)
		default:
			h.logger.Error("[RescheduleHandler] Respond failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(out.Booking))
}
