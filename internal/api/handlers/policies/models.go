package policies

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// UpsertRequest тело запроса создания или обновления политики
type UpsertRequest struct {
	ServiceID                  *int64 `json:"serviceId,omitempty"`
	SlotStepMinutes            int    `json:"slotStepMinutes"`
	MinLeadMinutes             int    `json:"minLeadMinutes"`
	FreeCancelThresholdMinutes int    `json:"freeCancelThresholdMinutes"`
	LateCancelFeePercent       int    `json:"lateCancelFeePercent"`
	NoShowGraceMinutes         int    `json:"noShowGraceMinutes"`
	CheckinCodeTTLMinutes      int    `json:"checkinCodeTtlMinutes"`
	MaxCustomerReschedules     int    `json:"maxCustomerReschedules"`
}

// PolicyResponse представление политики в API
type PolicyResponse struct {
	ID                         int64  `json:"id"`
	CompanyID                  int64  `json:"companyId"`
	ServiceID                  *int64 `json:"serviceId,omitempty"`
	SlotStepMinutes            int    `json:"slotStepMinutes"`
	MinLeadMinutes             int    `json:"minLeadMinutes"`
	FreeCancelThresholdMinutes int    `json:"freeCancelThresholdMinutes"`
	LateCancelFeePercent       int    `json:"lateCancelFeePercent"`
	NoShowGraceMinutes         int    `json:"noShowGraceMinutes"`
	CheckinCodeTTLMinutes      int    `json:"checkinCodeTtlMinutes"`
	MaxCustomerReschedules     int    `json:"maxCustomerReschedules"`
}

func newPolicyResponse(p *domain.CompanySchedulingPolicy) PolicyResponse {
	return PolicyResponse{
		ID:                         p.ID,
		CompanyID:                  p.CompanyID,
		ServiceID:                  p.ServiceID,
		SlotStepMinutes:            p.SlotStepMinutes,
		MinLeadMinutes:             p.MinLeadMinutes,
		FreeCancelThresholdMinutes: p.FreeCancelThresholdMinutes,
		LateCancelFeePercent:       p.LateCancelFeePercent,
		NoShowGraceMinutes:         p.NoShowGraceMinutes,
		CheckinCodeTTLMinutes:      p.CheckinCodeTTLMinutes,
		MaxCustomerReschedules:     p.MaxCustomerReschedules,
	}
}
