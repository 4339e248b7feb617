package report_no_show

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// UseCase отметка неявки компанией: confirmed -> no_show.
// Доступна только после истечения грейс-периода с начала визита,
// чтобы опоздавший клиент не получил неявку раньше времени.
type UseCase struct {
	repo           Repository
	txManager      TxManager
	policyResolver PolicyResolver
	companyClient  CompanyClient
	notifier       Notifier
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый usecase отметки неявки
func NewUseCase(
	repo Repository,
	txManager TxManager,
	policyResolver PolicyResolver,
	companyClient CompanyClient,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:           repo,
		txManager:      txManager,
		policyResolver: policyResolver,
		companyClient:  companyClient,
		notifier:       notifier,
		metrics:        metrics,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute отмечает неявку клиента
func (uc *UseCase) Execute(ctx context.Context, in Request) (*Response, error) {
	if in.BookingID <= 0 || in.ManagerID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrValidation)
	}

	b, err := uc.repo.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[ReportNoShow] GetByID failed: bookingID=%d, error=%v", in.BookingID, err)
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
		uc.logger.Error("[ReportNoShow] Policy resolve failed: companyID=%d, error=%v", b.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if now.UnixMilli() < b.StartAtMs+domain.MinutesToMs(policy.NoShowGraceMinutes) {
		return nil, ErrTooEarly
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.repo.GetByID(txCtx, in.BookingID)
		if err != nil {
			return fmt.Errorf("reread booking: %w", err)
		}
		if current.Status != domain.StatusConfirmed {
			return ErrWrongState
		}
		return uc.repo.UpdateStatus(txCtx, in.BookingID, domain.StatusConfirmed, domain.StatusNoShow)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongState):
			return nil, ErrWrongState
		case errors.Is(err, booking.ErrStaleState):
			return nil, ErrStaleState
		case errors.Is(err, booking.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[ReportNoShow] Transaction failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	b.Status = domain.StatusNoShow
	uc.metrics.IncTransition(string(domain.StatusConfirmed), string(domain.StatusNoShow))
	uc.notifier.Notify(ctx, events.NewEvent(events.KindNoShow, b, domain.RoleCompany, now))
	uc.logger.Info("[ReportNoShow] No-show reported: bookingID=%d", in.BookingID)

	return &Response{Booking: b}, nil
}

func (uc *UseCase) checkManager(ctx context.Context, companyID, managerID int64) error {
	company, err := uc.companyClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyservice.ErrCompanyNotFound) {
			return ErrAccessDenied
		}
		uc.logger.Error("[ReportNoShow] Company lookup failed: companyID=%d, error=%v", companyID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !company.IsManager(managerID) {
		return ErrAccessDenied
	}
	return nil
}
