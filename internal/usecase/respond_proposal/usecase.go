package respond_proposal

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// UseCase ответ на предложение переноса. Отвечает всегда сторона,
// противоположная автору предложения.
//
// Принятие сворачивает предложенное время в основные поля и возвращает
// бронирование в confirmed. Отказ клиента от предложения компании
// отменяет бронирование без штрафа, отказ компании на запрос клиента
// отклоняет бронирование.
type UseCase struct {
	repo          Repository
	txManager     TxManager
	companyClient CompanyClient
	notifier      Notifier
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый usecase ответа на предложение
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

// Execute применяет ответ на предложение переноса
func (uc *UseCase) Execute(ctx context.Context, in Request) (*Response, error) {
	if in.BookingID <= 0 || in.ActorID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrValidation)
	}
	if in.ActorRole != domain.RoleCompany && in.ActorRole != domain.RoleCustomer {
		return nil, fmt.Errorf("%w: unknown actor role %q", ErrValidation, in.ActorRole)
	}

	b, err := uc.repo.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[RespondProposal] GetByID failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !b.HasPendingProposal() {
		return nil, ErrNoProposal
	}
	if *b.ProposalBy == in.ActorRole {
		return nil, ErrOwnProposal
	}
	if err := uc.checkAccess(ctx, b, in.ActorID, in.ActorRole); err != nil {
		return nil, err
	}

	if in.Accept {
		return uc.accept(ctx, b, in)
	}
	return uc.decline(ctx, b, in)
}

func (uc *UseCase) accept(ctx context.Context, b *domain.Booking, in Request) (*Response, error) {
	proposedOccupied, ok := b.ProposedOccupied()
	if !ok {
		return nil, ErrNoProposal
	}
	proposedDate := *b.ProposedBookingDate

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.repo.GetByID(txCtx, in.BookingID)
		if err != nil {
			return fmt.Errorf("reread booking: %w", err)
		}
		if !current.HasPendingProposal() {
			return ErrNoProposal
		}

		// Вместимость проверяется повторно: между предложением и ответом
		// время могли занять другие бронирования
		dayBookings, err := uc.repo.GetByStaffAndDate(txCtx, domain.StaffDayFilter{
			StaffID:     current.StaffID,
			BookingDate: proposedDate,
		})
		if err != nil {
			return fmt.Errorf("fetch day bookings: %w", err)
		}
		if taken := domain.CountOverlapping(proposedOccupied, dayBookings, current.ID); taken >= current.ServiceCapacity {
			return ErrSlotTaken
		}

		current.ApplyProposal()
		current.Status = domain.StatusConfirmed
		if err := uc.repo.AcceptProposal(txCtx, current); err != nil {
			return err
		}
		*b = *current
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoProposal):
			return nil, ErrNoProposal
		case errors.Is(err, ErrSlotTaken):
			uc.metrics.IncCapacityRejection()
			return nil, ErrSlotTaken
		case errors.Is(err, booking.ErrStaleState):
			return nil, ErrStaleState
		case errors.Is(err, booking.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[RespondProposal] Accept failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncTransition(string(domain.StatusRescheduleRequested), string(domain.StatusConfirmed))
	uc.notifier.Notify(ctx, events.NewEvent(events.KindBookingRescheduled, b, in.ActorRole, uc.timeProvider.Now()))
	uc.logger.Info("[RespondProposal] Proposal accepted: bookingID=%d, newStartAtMs=%d", in.BookingID, b.StartAtMs)

	return &Response{Booking: b}, nil
}

func (uc *UseCase) decline(ctx context.Context, b *domain.Booking, in Request) (*Response, error) {
	// Отказ клиента хоронит бронирование как cancelled, отказ компании
	// как declined: различие важно для возвратов на стороне платежей
	next := domain.StatusDeclined
	if in.ActorRole == domain.RoleCustomer {
		next = domain.StatusCancelled
	}
	kind := events.KindForStatus(next)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.repo.GetByID(txCtx, in.BookingID)
		if err != nil {
			return fmt.Errorf("reread booking: %w", err)
		}
		if !current.HasPendingProposal() {
			return ErrNoProposal
		}
		return uc.repo.DeclineProposal(txCtx, in.BookingID, next)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoProposal):
			return nil, ErrNoProposal
		case errors.Is(err, booking.ErrStaleState):
			return nil, ErrStaleState
		case errors.Is(err, booking.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[RespondProposal] Decline failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	b.ClearProposal()
	b.Status = next
	uc.metrics.IncTransition(string(domain.StatusRescheduleRequested), string(next))
	uc.notifier.Notify(ctx, events.NewEvent(kind, b, in.ActorRole, uc.timeProvider.Now()))
	uc.logger.Info("[RespondProposal] Proposal declined: bookingID=%d, nextStatus=%s", in.BookingID, next)

	return &Response{Booking: b}, nil
}

func (uc *UseCase) checkAccess(ctx context.Context, b *domain.Booking, actorID int64, role domain.ActorRole) error {
	if role == domain.RoleCustomer {
		if b.CustomerID != actorID {
			return ErrAccessDenied
		}
		return nil
	}

	company, err := uc.companyClient.GetCompany(ctx, b.CompanyID)
	if err != nil {
		if errors.Is(err, companyservice.ErrCompanyNotFound) {
			return ErrAccessDenied
		}
		uc.logger.Error("[RespondProposal] Company lookup failed: companyID=%d, error=%v", b.CompanyID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !company.IsManager(actorID) {
		return ErrAccessDenied
	}
	return nil
}
