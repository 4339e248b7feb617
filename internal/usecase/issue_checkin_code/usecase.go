package issue_checkin_code

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// UseCase выдача кода чекина менеджером компании на подтвержденное
// бронирование. Повторный запрос выдает новый код и сбрасывает прежний:
// действителен всегда только последний выданный код.
type UseCase struct {
	repo           Repository
	policyResolver PolicyResolver
	companyClient  CompanyClient
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый usecase выдачи кода чекина
func NewUseCase(
	repo Repository,
	policyResolver PolicyResolver,
	companyClient CompanyClient,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:           repo,
		policyResolver: policyResolver,
		companyClient:  companyClient,
		metrics:        metrics,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute выдает код чекина
func (uc *UseCase) Execute(ctx context.Context, in Request) (*Response, error) {
	if in.BookingID <= 0 || in.ManagerID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrValidation)
	}

	b, err := uc.repo.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[IssueCheckinCode] GetByID failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := uc.checkManager(ctx, b.CompanyID, in.ManagerID); err != nil {
		return nil, err
	}
	if b.Status != domain.StatusConfirmed {
		return nil, ErrWrongState
	}

	policy, err := uc.policyResolver.Resolve(ctx, b.CompanyID, &b.ServiceID)
	if err != nil {
		uc.logger.Error("[IssueCheckinCode] Policy resolve failed: companyID=%d, error=%v", b.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	code, err := generateCode(domain.CheckinCodeLength)
	if err != nil {
		uc.logger.Error("[IssueCheckinCode] Code generation failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	expiresAtMs := uc.timeProvider.Now().UnixMilli() + domain.MinutesToMs(policy.CheckinCodeTTLMinutes)

	if err := uc.repo.SetCheckInCode(ctx, in.BookingID, code, expiresAtMs); err != nil {
		switch {
		case errors.Is(err, booking.ErrStaleState):
			return nil, ErrStaleState
		case errors.Is(err, booking.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[IssueCheckinCode] SetCheckInCode failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncCheckinCodeIssued()
	uc.logger.Info("[IssueCheckinCode] Code issued: bookingID=%d, expiresAtMs=%d", in.BookingID, expiresAtMs)

	return &Response{BookingID: in.BookingID, Code: code, ExpiresAtMs: expiresAtMs}, nil
}

func (uc *UseCase) checkManager(ctx context.Context, companyID, managerID int64) error {
	company, err := uc.companyClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyservice.ErrCompanyNotFound) {
			return ErrAccessDenied
		}
		uc.logger.Error("[IssueCheckinCode] Company lookup failed: companyID=%d, error=%v", companyID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !company.IsManager(managerID) {
		return ErrAccessDenied
	}
	return nil
}
