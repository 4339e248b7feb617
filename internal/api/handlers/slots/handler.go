package slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glossup/GLS-SchedulingService/internal/api/handlers"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/get_available_slots"
)

// Сообщения об ошибках
const (
	msgInvalidPathParams  = "некорректные параметры пути"
	msgInvalidDate        = "параметр date обязателен и должен быть в формате YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "сотрудник не найден"
	msgStaffNotPerforming = "сотрудник не выполняет эту услугу"
)

// Handler обработчик запросов свободных слотов
type Handler struct {
	usecase SlotsUseCase
	logger  Logger
}

// New создает новый обработчик слотов
func New(usecase SlotsUseCase, logger Logger) *Handler {
	return &Handler{usecase: usecase, logger: logger}
}

// GetSlots обрабатывает GET /api/v1/companies/{companyID}/services/{serviceID}/staff/{staffID}/slots
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err1 := strconv.ParseInt(vars["companyID"], 10, 64)
	serviceID, err2 := strconv.ParseInt(vars["serviceID"], 10, 64)
	staffID, err3 := strconv.ParseInt(vars["staffID"], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		handlers.RespondBadRequest(w, msgInvalidPathParams)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	out, err := h.usecase.Execute(r.Context(), get_available_slots.Request{
		CompanyID: companyID,
		ServiceID: serviceID,
		StaffID:   staffID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, get_available_slots.ErrValidation):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, get_available_slots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, get_available_slots.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, get_available_slots.ErrStaffNotPerforming):
			handlers.RespondBadRequest(w, msgStaffNotPerforming)
		default:
			h.logger.Error("[SlotsHandler] GetSlots failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		CompanyID:   out.CompanyID,
		ServiceID:   out.ServiceID,
		StaffID:     out.StaffID,
		Date:        out.Date,
		ServiceName: out.ServiceName,
		DurationMin: out.DurationMin,
		Slots:       newSlotResponses(out.Slots),
	})
}
