package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glossup/GLS-SchedulingService/internal/api/handlers"
	"github.com/glossup/GLS-SchedulingService/internal/api/middleware"
	"github.com/glossup/GLS-SchedulingService/internal/domain"
	bookingssvc "github.com/glossup/GLS-SchedulingService/internal/service/bookings"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/cancel_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/create_booking"
)

// Сообщения об ошибках
const (
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidCompanyID    = "некорректный ID компании"
	msgInvalidStatus       = "неизвестный статус бронирования"
	msgBookingNotFound     = "бронирование не найдено"
	msgAccessDenied        = "нет доступа к бронированию"
	msgCustomersOnly       = "операция доступна только клиентам"
	msgServiceNotFound     = "услуга не найдена"
	msgStaffNotFound       = "сотрудник не найден"
	msgStaffNotPerforming  = "сотрудник не выполняет эту услугу"
	msgLeadTimeViolation   = "время начала нарушает минимальный горизонт записи"
	msgOutsideWorkingHours = "время вне рабочего графика сотрудника"
	msgSlotTaken           = "время уже занято"
	msgAlreadyFinal        = "бронирование уже в финальном статусе"
	msgStaleState          = "бронирование изменено параллельным запросом, повторите"
)

// Handler обработчик CRUD-операций над бронированиями
type Handler struct {
	createUseCase CreateUseCase
	cancelUseCase CancelUseCase
	service       BookingsService
	logger        Logger
}

// New создает новый обработчик бронирований
func New(createUseCase CreateUseCase, cancelUseCase CancelUseCase, service BookingsService, logger Logger) *Handler {
	return &Handler{
		createUseCase: createUseCase,
		cancelUseCase: cancelUseCase,
		service:       service,
		logger:        logger,
	}
}

// Create обрабатывает POST /api/v1/bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := middleware.ActorFromContext(r.Context())
	if !ok || role != domain.RoleCustomer {
		handlers.RespondForbidden(w, msgCustomersOnly)
		return
	}

	var req CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	out, err := h.createUseCase.Execute(r.Context(), create_booking.Request{
		CustomerID: actorID,
		CompanyID:  req.CompanyID,
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		StartAtMs:  req.StartAtMs,
		Note:       req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, create_booking.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, create_booking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, create_booking.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, create_booking.ErrStaffNotPerforming):
			handlers.RespondBadRequest(w, msgStaffNotPerforming)
		case errors.Is(err, create_booking.ErrLeadTimeViolation):
			handlers.RespondBadRequest(w, msgLeadTimeViolation)
		case errors.Is(err, create_booking.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)
		case errors.Is(err, create_booking.ErrSlotTaken):
			handlers.RespondConflict(w, msgSlotTaken)
		default:
			h.logger.Error("[BookingsHandler] Create failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, handlers.NewBookingResponse(out.Booking))
}

// GetByID обрабатывает GET /api/v1/bookings/{bookingID}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	b, err := h.service.GetByID(r.Context(), bookingID, actorID, role)
	if err != nil {
		switch {
		case errors.Is(err, bookingssvc.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingssvc.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("[BookingsHandler] GetByID failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(b))
}

// GetMyBookings обрабатывает GET /api/v1/customers/me/bookings
func (h *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := middleware.ActorFromContext(r.Context())
	if !ok || role != domain.RoleCustomer {
		handlers.RespondForbidden(w, msgCustomersOnly)
		return
	}

	var status *domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		normalized, known := domain.NormalizeStatus(raw)
		if !known {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &normalized
	}

	list, err := h.service.GetCustomerBookings(r.Context(), actorID, status)
	if err != nil {
		h.logger.Error("[BookingsHandler] GetMyBookings failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingListResponse(list))
}

// GetCompanyBookings обрабатывает GET /api/v1/companies/{companyID}/bookings
func (h *Handler) GetCompanyBookings(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	companyID, err := strconv.ParseInt(mux.Vars(r)["companyID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	filter, errMsg := parseCompanyFilter(companyID, r)
	if errMsg != "" {
		handlers.RespondBadRequest(w, errMsg)
		return
	}

	list, err := h.service.GetCompanyBookings(r.Context(), actorID, filter)
	if err != nil {
		switch {
		case errors.Is(err, bookingssvc.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("[BookingsHandler] GetCompanyBookings failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingListResponse(list))
}

// Cancel обрабатывает POST /api/v1/bookings/{bookingID}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
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

	out, err := h.cancelUseCase.Execute(r.Context(), cancel_booking.Request{
		BookingID:  bookingID,
		CustomerID: actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancel_booking.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, cancel_booking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, cancel_booking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, cancel_booking.ErrAlreadyFinal):
			handlers.RespondConflict(w, msgAlreadyFinal)
		case errors.Is(err, cancel_booking.ErrStaleState):
			handlers.RespondConflict(w, msgStaleState)
		default:
			h.logger.Error("[BookingsHandler] Cancel failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CancelResponse{
		ID:                         out.Booking.ID,
		Status:                     string(out.Booking.Status),
		CancellationFeePercent:     out.FeePercent,
		CancellationFeeAmountCents: out.FeeAmountCents,
	})
}

func parseCompanyFilter(companyID int64, r *http.Request) (domain.CompanyBookingsFilter, string) {
	filter := domain.CompanyBookingsFilter{CompanyID: companyID}
	q := r.URL.Query()

	if raw := q.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, "некорректный параметр staffId"
		}
		filter.StaffID = &staffID
	}
	if raw := q.Get("startDate"); raw != "" {
		if _, err := domain.ParseDateKey(raw); err != nil {
			return filter, "некорректный параметр startDate"
		}
		filter.StartDate = &raw
	}
	if raw := q.Get("endDate"); raw != "" {
		if _, err := domain.ParseDateKey(raw); err != nil {
			return filter, "некорректный параметр endDate"
		}
		filter.EndDate = &raw
	}
	if raw := q.Get("status"); raw != "" {
		normalized, known := domain.NormalizeStatus(raw)
		if !known {
			return filter, msgInvalidStatus
		}
		filter.Status = &normalized
	}
	filter.IncludeInactive = q.Get("includeInactive") == "true"

	return filter, ""
}
