package schedulingpolicy

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/policy"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// Service сервис управления политиками планирования компаний
type Service struct {
	repo          Repository
	companyClient CompanyClient
	defaults      domain.CompanySchedulingPolicy
	logger        Logger
}

// New создает новый сервис политик. defaults - глобальная политика из
// конфигурации, действует для компаний без собственных политик в БД.
func New(repo Repository, companyClient CompanyClient, defaults domain.CompanySchedulingPolicy, logger Logger) *Service {
	return &Service{
		repo:          repo,
		companyClient: companyClient,
		defaults:      defaults,
		logger:        logger,
	}
}

// Resolve возвращает действующую политику для компании и услуги.
// Сначала ищется политика конкретной услуги, потом общая политика
// компании, если нет ни той ни другой - дефолтная.
func (s *Service) Resolve(ctx context.Context, companyID int64, serviceID *int64) (*domain.CompanySchedulingPolicy, error) {
	p, err := s.repo.GetPolicyWithHierarchy(ctx, companyID, serviceID)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			fallback := s.defaults
			fallback.CompanyID = companyID
			return &fallback, nil
		}
		s.logger.Error("[PolicyService] Resolve failed: companyID=%d, error=%v", companyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return p, nil
}

// List возвращает все политики компании. Доступ только менеджерам.
func (s *Service) List(ctx context.Context, actorID, companyID int64) ([]*domain.CompanySchedulingPolicy, error) {
	if err := s.checkManager(ctx, companyID, actorID); err != nil {
		return nil, err
	}

	list, err := s.repo.GetAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("[PolicyService] List failed: companyID=%d, error=%v", companyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return list, nil
}

// Upsert создает или обновляет политику компании. Доступ только менеджерам.
func (s *Service) Upsert(ctx context.Context, actorID int64, p *domain.CompanySchedulingPolicy) (*domain.CompanySchedulingPolicy, error) {
	if err := s.checkManager(ctx, p.CompanyID, actorID); err != nil {
		return nil, err
	}
	if err := validatePolicy(p); err != nil {
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, p)
	if err != nil {
		s.logger.Error("[PolicyService] Upsert failed: companyID=%d, error=%v", p.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("[PolicyService] Policy saved: companyID=%d, policyID=%d", saved.CompanyID, saved.ID)
	return saved, nil
}

// Delete удаляет политику компании. Доступ только менеджерам.
func (s *Service) Delete(ctx context.Context, actorID, companyID, policyID int64) error {
	if err := s.checkManager(ctx, companyID, actorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, policyID); err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			return ErrPolicyNotFound
		}
		s.logger.Error("[PolicyService] Delete failed: policyID=%d, error=%v", policyID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("[PolicyService] Policy deleted: companyID=%d, policyID=%d", companyID, policyID)
	return nil
}

func (s *Service) checkManager(ctx context.Context, companyID, actorID int64) error {
	company, err := s.companyClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyservice.ErrCompanyNotFound) {
			return ErrAccessDenied
		}
		s.logger.Error("[PolicyService] Company lookup failed: companyID=%d, error=%v", companyID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !company.IsManager(actorID) {
		return ErrAccessDenied
	}
	return nil
}

func validatePolicy(p *domain.CompanySchedulingPolicy) error {
	if p.SlotStepMinutes < domain.MinSlotStepMinutes || p.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slot step must be between %d and %d minutes",
			ErrInvalidPolicy, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if p.MinLeadMinutes < 0 {
		return fmt.Errorf("%w: min lead must not be negative", ErrInvalidPolicy)
	}
	if p.FreeCancelThresholdMinutes < 0 {
		return fmt.Errorf("%w: free cancel threshold must not be negative", ErrInvalidPolicy)
	}
	if p.LateCancelFeePercent < 0 || p.LateCancelFeePercent > domain.MaxLateFeePercent {
		return fmt.Errorf("%w: late cancel fee must be between 0 and %d percent",
			ErrInvalidPolicy, domain.MaxLateFeePercent)
	}
	if p.NoShowGraceMinutes < 0 {
		return fmt.Errorf("%w: no-show grace must not be negative", ErrInvalidPolicy)
	}
	if p.CheckinCodeTTLMinutes <= 0 {
		return fmt.Errorf("%w: check-in code TTL must be positive", ErrInvalidPolicy)
	}
	if p.MaxCustomerReschedules < 0 {
		return fmt.Errorf("%w: max customer reschedules must not be negative", ErrInvalidPolicy)
	}
	return nil
}
