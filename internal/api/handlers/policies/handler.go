package policies

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glossup/GLS-SchedulingService/internal/api/handlers"
	"github.com/glossup/GLS-SchedulingService/internal/api/middleware"
	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/service/schedulingpolicy"
)

// Сообщения об ошибках
const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidPolicyID  = "некорректный ID политики"
	msgInvalidBody      = "некорректное тело запроса"
	msgCompanyOnly      = "операция доступна только компании"
	msgAccessDenied     = "нет доступа к политикам компании"
	msgPolicyNotFound   = "политика не найдена"
)

// Handler обработчик управления политиками планирования
type Handler struct {
	service PolicyService
	logger  Logger
}

// New создает новый обработчик политик
func New(service PolicyService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) managerAndCompany(w http.ResponseWriter, r *http.Request) (managerID, companyID int64, ok bool) {
	actorID, role, authed := middleware.ActorFromContext(r.Context())
	if !authed || role != domain.RoleCompany {
		handlers.RespondForbidden(w, msgCompanyOnly)
		return 0, 0, false
	}
	companyID, err := strconv.ParseInt(mux.Vars(r)["companyID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return 0, 0, false
	}
	return actorID, companyID, true
}

// List обрабатывает GET /api/v1/companies/{companyID}/policies
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	managerID, companyID, ok := h.managerAndCompany(w, r)
	if !ok {
		return
	}

	list, err := h.service.List(r.Context(), managerID, companyID)
	if err != nil {
		switch {
		case errors.Is(err, schedulingpolicy.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("[PoliciesHandler] List failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	out := make([]PolicyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, newPolicyResponse(p))
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// Upsert обрабатывает PUT /api/v1/companies/{companyID}/policies
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	managerID, companyID, ok := h.managerAndCompany(w, r)
	if !ok {
		return
	}

	var req UpsertRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	saved, err := h.service.Upsert(r.Context(), managerID, &domain.CompanySchedulingPolicy{
		CompanyID:                  companyID,
		ServiceID:                  req.ServiceID,
		SlotStepMinutes:            req.SlotStepMinutes,
		MinLeadMinutes:             req.MinLeadMinutes,
		FreeCancelThresholdMinutes: req.FreeCancelThresholdMinutes,
		LateCancelFeePercent:       req.LateCancelFeePercent,
		NoShowGraceMinutes:         req.NoShowGraceMinutes,
		CheckinCodeTTLMinutes:      req.CheckinCodeTTLMinutes,
		MaxCustomerReschedules:     req.MaxCustomerReschedules,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedulingpolicy.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, schedulingpolicy.ErrInvalidPolicy):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("[PoliciesHandler] Upsert failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newPolicyResponse(saved))
}

// Delete обрабатывает DELETE /api/v1/companies/{companyID}/policies/{policyID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	managerID, companyID, ok := h.managerAndCompany(w, r)
	if !ok {
		return
	}

	policyID, err := strconv.ParseInt(mux.Vars(r)["policyID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPolicyID)
		return
	}

	if err := h.service.Delete(r.Context(), managerID, companyID, policyID); err != nil {
		switch {
		case errors.Is(err, schedulingpolicy.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, schedulingpolicy.ErrPolicyNotFound):
			handlers.RespondNotFound(w, msgPolicyNotFound)
		default:
			h.logger.Error("[PoliciesHandler] Delete failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
