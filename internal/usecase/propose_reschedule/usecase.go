package propose_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// UseCase предложение переноса от компании: pending/confirmed -> reschedule_requested.
// Исходное время остается занятым до ответа клиента, предложенное время
// проверяется на вместимость в момент предложения.
type UseCase struct {
	repo          Repository
	txManager     TxManager
	companyClient CompanyClient
	notifier      Notifier
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый usecase предложения переноса
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

// Execute фиксирует предложение переноса на бронировании
func (uc *UseCase) Execute(ctx context.Context, in Request) (*Response, error) {
	if in.BookingID <= 0 || in.ManagerID <= 0 {
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
		uc.logger.Error("[ProposeReschedule] GetByID failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := uc.checkManager(ctx, b.CompanyID, in.ManagerID); err != nil {
		return nil, err
	}
	if b.Status != domain.StatusPending && b.Status != domain.StatusConfirmed {
		return nil, ErrWrongState
	}

	now := uc.timeProvider.Now()
	if in.StartAtMs <= now.UnixMilli() {
		return nil, ErrStartInPast
	}

	expected := b.Status
	proposal := b.NewProposal(domain.RoleCompany, in.StartAtMs, now.UnixMilli(), in.Note)
	proposedOccupied := domain.Interval{StartMs: proposal.OccupiedStartAtMs, EndMs: proposal.OccupiedEndAtMs}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.repo.GetByID(txCtx, in.BookingID)
		if err != nil {
			return fmt.Errorf("reread booking: %w", err)
		}
		if current.Status != expected {
			return ErrWrongState
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

		return uc.repo.SaveProposal(txCtx, in.BookingID, expected, proposal, false)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongState):
			return nil, ErrWrongState
		case errors.Is(err, ErrSlotTaken):
			uc.metrics.IncCapacityRejection()
			return nil, ErrSlotTaken
		case errors.Is(err, booking.ErrStaleState):
			return nil, ErrStaleState
		case errors.Is(err, booking.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[ProposeReschedule] Transaction failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	b.SetProposal(proposal)
	b.Status = domain.StatusRescheduleRequested
	uc.metrics.IncTransition(string(expected), string(domain.StatusRescheduleRequested))
	uc.notifier.Notify(ctx, events.NewEvent(events.KindRescheduleProposed, b, domain.RoleCompany, now))
	uc.logger.Info("[ProposeReschedule] Proposal saved: bookingID=%d, proposedStartAtMs=%d", in.BookingID, in.StartAtMs)

	return &Response{Booking: b}, nil
}

func (uc *UseCase) checkManager(ctx context.Context, companyID, managerID int64) error {
	company, err := uc.companyClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyservice.ErrCompanyNotFound) {
			return ErrAccessDenied
		}
		uc.logger.Error("[ProposeReschedule] Company lookup failed: companyID=%d, error=%v", companyID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !company.IsManager(managerID) {
		return ErrAccessDenied
	}
	return nil
}
