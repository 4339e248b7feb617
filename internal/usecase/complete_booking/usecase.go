package complete_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// UseCase завершение визита компанией: checked_in -> completed
type UseCase struct {
	repo          Repository
	txManager     TxManager
	companyClient CompanyClient
	notifier      Notifier
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый usecase завершения бронирования
func NewUseCase(
	repo Repository,
	txManager TxManager,
	companyClient CompanyClient,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:          repo,
		txManager:     txManager,
		companyClient: companyClient,
		notifier:      notifier,
		metrics:       metrics,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute завершает бронирование
func (uc *UseCase) Execute(ctx context.Context, in Request) (*Response, error) {
	if in.BookingID <= 0 || in.ManagerID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrValidation)
	}

	b, err := uc.repo.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[CompleteBooking] GetByID failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := uc.checkManager(ctx, b.CompanyID, in.ManagerID); err != nil {
		return nil, err
	}
	if b.Status != domain.StatusCheckedIn {
		return nil, ErrWrongState
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.repo.GetByID(txCtx, in.BookingID)
		if err != nil {
			return fmt.Errorf("reread booking: %w", err)
		}
		if current.Status != domain.StatusCheckedIn {
			return ErrWrongState
		}
		return uc.repo.UpdateStatus(txCtx, in.BookingID, domain.StatusCheckedIn, domain.StatusCompleted)
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
		uc.logger.Error("[CompleteBooking] Transaction failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	b.Status = domain.StatusCompleted
	uc.metrics.IncTransition(string(domain.StatusCheckedIn), string(domain.StatusCompleted))
	uc.notifier.Notify(ctx, events.NewEvent(events.KindCompleted, b, domain.RoleCompany, uc.timeProvider.Now()))
	uc.logger.Info("[CompleteBooking] Booking completed: bookingID=%d", in.BookingID)

	return &Response{Booking: b}, nil
}

func (uc *UseCase) checkManager(ctx context.Context, companyID, managerID int64) error {
	company, err := uc.companyClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyservice.ErrCompanyNotFound) {
			return ErrAccessDenied
		}
		uc.logger.Error("[CompleteBooking] Company lookup failed: companyID=%d, error=%v", companyID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !company.IsManager(managerID) {
		return ErrAccessDenied
	}
	return nil
}
