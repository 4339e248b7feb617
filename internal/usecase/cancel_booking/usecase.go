package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
)

// UseCase отмена бронирования клиентом. Работает из любого нефинального
// статуса. Штраф вычисляется по политике компании в момент отмены:
// до порога отмена бесплатна, после - процент от цены услуги.
type UseCase struct {
	repo           Repository
	txManager      TxManager
	policyResolver PolicyResolver
	notifier       Notifier
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый usecase отмены бронирования
func NewUseCase(
	repo Repository,
	txManager TxManager,
	policyResolver PolicyResolver,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:           repo,
		txManager:      txManager,
		policyResolver: policyResolver,
		notifier:       notifier,
		metrics:        metrics,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute отменяет бронирование
func (uc *UseCase) Execute(ctx context.Context, in Request) (*Response, error) {
	if in.BookingID <= 0 || in.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrValidation)
	}

	b, err := uc.repo.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[CancelBooking] GetByID failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if b.CustomerID != in.CustomerID {
		return nil, ErrAccessDenied
	}
	if b.IsTerminal() {
		return nil, ErrAlreadyFinal
	}

	policy, err := uc.policyResolver.Resolve(ctx, b.CompanyID, &b.ServiceID)
	if err != nil {
		uc.logger.Error("[CancelBooking] Policy resolve failed: companyID=%d, error=%v", b.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	feePercent, feeAmountCents := policy.CancellationPolicy().Assess(b.StartAtMs, now.UnixMilli(), b.ServicePriceCents)
	next := domain.CancellationStatus(feePercent)
	expected := b.Status

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.repo.GetByID(txCtx, in.BookingID)
		if err != nil {
			return fmt.Errorf("reread booking: %w", err)
		}
		if current.IsTerminal() {
			return ErrAlreadyFinal
		}
		if current.Status != expected {
			return booking.ErrStaleState
		}
		return uc.repo.Cancel(txCtx, in.BookingID, expected, next, feePercent, feeAmountCents)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyFinal):
			return nil, ErrAlreadyFinal
		case errors.Is(err, booking.ErrStaleState):
			return nil, ErrStaleState
		case errors.Is(err, booking.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[CancelBooking] Transaction failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	b.ClearProposal()
	b.Status = next
	b.CancellationFeePercent = feePercent
	b.CancellationFeeAmountCents = feeAmountCents
	uc.metrics.IncTransition(string(expected), string(next))
	uc.notifier.Notify(ctx, events.NewEvent(events.KindForStatus(next), b, domain.RoleCustomer, now))
	uc.logger.Info("[CancelBooking] Booking cancelled: bookingID=%d, feePercent=%d, feeAmountCents=%d", in.BookingID, feePercent, feeAmountCents)

	return &Response{Booking: b, FeePercent: feePercent, FeeAmountCents: feeAmountCents}, nil
}
