package domain

import "time"

// CompanySchedulingPolicy represents per-company booking policy overrides
// Supports hierarchical configuration:
// 1. Service-specific (company_id, service_id)
// 2. Company-wide (company_id, NULL)
// Missing values fall back to the business defaults in constants.go
type CompanySchedulingPolicy struct {
	ID                         int64
	CompanyID                  int64
	ServiceID                  *int64 // NULL = policy for all services
	SlotStepMinutes            int
	MinLeadMinutes             int
	FreeCancelThresholdMinutes int
	LateCancelFeePercent       int
	NoShowGraceMinutes         int
	CheckinCodeTTLMinutes      int
	MaxCustomerReschedules     int
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// DefaultSchedulingPolicy возвращает политику с бизнес-дефолтами
func DefaultSchedulingPolicy(companyID int64) *CompanySchedulingPolicy {
	return &CompanySchedulingPolicy{
		CompanyID:                  companyID,
		SlotStepMinutes:            DefaultSlotStepMinutes,
		MinLeadMinutes:             DefaultMinLeadMinutes,
		FreeCancelThresholdMinutes: DefaultFreeCancelThresholdMinutes,
		LateCancelFeePercent:       DefaultLateCancelFeePercent,
		NoShowGraceMinutes:         DefaultNoShowGraceMinutes,
		CheckinCodeTTLMinutes:      DefaultCheckinCodeTTLMinutes,
		MaxCustomerReschedules:     DefaultMaxCustomerReschedules,
	}
}

// IsCompanyWide returns true if this policy applies to all services of the company
func (p *CompanySchedulingPolicy) IsCompanyWide() bool {
	return p.ServiceID == nil
}

// CancellationPolicy возвращает политику отмены из настроек компании
func (p *CompanySchedulingPolicy) CancellationPolicy() CancellationPolicy {
	return CancellationPolicy{
		FreeCancelThresholdMin: p.FreeCancelThresholdMinutes,
		LateFeePercent:         p.LateCancelFeePercent,
	}
}
