package request_reschedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
)

// UseCase запрос переноса клиентом: confirmed -> reschedule_requested.
// Клиент может двигать подтвержденное бронирование только в пределах
// того же дня и ограниченное политикой число раз. Ответ дает компания.
type UseCase struct {
	repo           Repository
	txManager      TxManager
	policyResolver PolicyResolver
	notifier       Notifier
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый usecase запроса переноса
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

// Execute фиксирует запрос переноса от клиента
func (uc *UseCase) Execute(ctx context.Context, in Request) (*Response, error) {
	if in.BookingID <= 0 || in.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrValidation)
	}
	if in.Note != nil && len(*in.Note) > domain.MaxNoteLength {
		return nil, fmt.Errorf("%w: note must not exceed %d characters", ErrValidation, domain.MaxNoteLength)
	}

	b, err := uc.repo.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[RequestReschedule] GetByID failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if b.CustomerID != in.CustomerID {
		return nil, ErrAccessDenied
	}
	if b.Status != domain.StatusConfirmed {
		return nil, ErrWrongState
	}

	now := uc.timeProvider.Now()
	if in.StartAtMs <= now.UnixMilli() {
		return nil, ErrStartInPast
	}
	if domain.FormatDateKey(now.UTC()) != b.BookingDate {
		return nil, ErrNotSameDay
	}
	if domain.FormatDateKey(time.UnixMilli(in.StartAtMs).UTC()) != b.BookingDate {
		return nil, ErrNotSameDay
	}

	policy, err := uc.policyResolver.Resolve(ctx, b.CompanyID, &b.ServiceID)
	if err != nil {
		uc.logger.Error("[RequestReschedule] Policy resolve failed: companyID=%d, error=%v", b.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if b.CustomerRescheduleCount >= policy.MaxCustomerReschedules {
		return nil, ErrLimitReached
	}

	proposal := b.NewProposal(domain.RoleCustomer, in.StartAtMs, now.UnixMilli(), in.Note)
	proposedOccupied := domain.Interval{StartMs: proposal.OccupiedStartAtMs, EndMs: proposal.OccupiedEndAtMs}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.repo.GetByID(txCtx, in.BookingID)
		if err != nil {
			return fmt.Errorf("reread booking: %w", err)
		}
		if current.Status != domain.StatusConfirmed {
			return ErrWrongState
		}
		if current.CustomerRescheduleCount >= policy.MaxCustomerReschedules {
			return ErrLimitReached
		}

		dayBookings, err := uc.repo.GetByStaffAndDate(txCtx, domain.StaffDayFilter{
			StaffID:     b.StaffID,
			BookingDate: proposal.BookingDate,
		})
		if err != nil {
			return fmt.Errorf("fetch day bookings: %w", err)
		}
		if taken := domain.CountOverlapping(proposedOccupied, dayBookings, b.ID); taken >= b.ServiceCapacity {
			return ErrSlotTaken
		}

		return uc.repo.SaveProposal(txCtx, in.BookingID, domain.StatusConfirmed, proposal, true)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongState):
			return nil, ErrWrongState
		case errors.Is(err, ErrLimitReached):
			return nil, ErrLimitReached
		case errors.Is(err, ErrSlotTaken):
			uc.metrics.IncCapacityRejection()
			return nil, ErrSlotTaken
		case errors.Is(err, booking.ErrStaleState):
			return nil, ErrStaleState
		case errors.Is(err, booking.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[RequestReschedule] Transaction failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	b.SetProposal(proposal)
	b.Status = domain.StatusRescheduleRequested
	b.CustomerRescheduleCount++
	uc.metrics.IncTransition(string(domain.StatusConfirmed), string(domain.StatusRescheduleRequested))
	uc.notifier.Notify(ctx, events.NewEvent(events.KindRescheduleRequested, b, domain.RoleCustomer, now))
	uc.logger.Info("[RequestReschedule] Reschedule requested: bookingID=%d, customerID=%d, proposedStartAtMs=%d", in.BookingID, in.CustomerID, in.StartAtMs)

	return &Response{Booking: b}, nil
}
