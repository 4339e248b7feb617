package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/staffservice"
	"github.com/glossup/GLS-SchedulingService/pkg/types"
)

// UseCase создание бронирования клиентом.
// Новое бронирование всегда стартует в статусе pending и ждет решения
// компании. Проверка вместимости выполняется внутри serializable
// транзакции, чтобы параллельные запросы на одно время не прошли оба.
type UseCase struct {
	repo           Repository
	txManager      TxManager
	policyResolver PolicyResolver
	companyClient  CompanyClient
	staffClient    StaffClient
	notifier       Notifier
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый usecase создания бронирования
func NewUseCase(
	repo Repository,
	txManager TxManager,
	policyResolver PolicyResolver,
	companyClient CompanyClient,
	staffClient StaffClient,
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
		staffClient:    staffClient,
		notifier:       notifier,
		metrics:        metrics,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute создает бронирование в статусе pending
func (uc *UseCase) Execute(ctx context.Context, in Request) (*Response, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	svc, err := uc.companyClient.GetService(ctx, in.CompanyID, in.ServiceID)
	if err != nil {
		if errors.Is(err, companyservice.ErrServiceNotFound) || errors.Is(err, companyservice.ErrCompanyNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("[CreateBooking] Service lookup failed: serviceID=%d, error=%v", in.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if len(svc.StaffIDs) > 0 && !svc.PerformedBy(in.StaffID) {
		return nil, ErrStaffNotPerforming
	}

	policy, err := uc.policyResolver.Resolve(ctx, in.CompanyID, &in.ServiceID)
	if err != nil {
		uc.logger.Error("[CreateBooking] Policy resolve failed: companyID=%d, error=%v", in.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if in.StartAtMs < now.UnixMilli()+domain.MinutesToMs(policy.MinLeadMinutes) {
		return nil, ErrLeadTimeViolation
	}

	visible := domain.VisibleInterval(in.StartAtMs, svc.DurationMin)
	occupied := domain.OccupiedInterval(in.StartAtMs, svc.DurationMin, svc.BufferBeforeMin, svc.BufferAfterMin)
	dateKey := domain.FormatDateKey(time.UnixMilli(in.StartAtMs).UTC())

	if err := uc.checkWorkingHours(ctx, in, svc, visible, dateKey); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		CompanyID:              in.CompanyID,
		StaffID:                in.StaffID,
		CustomerID:             in.CustomerID,
		ServiceID:              in.ServiceID,
		ServiceName:            svc.Name,
		ServiceDurationMin:     svc.DurationMin,
		ServiceBufferBeforeMin: svc.BufferBeforeMin,
		ServiceBufferAfterMin:  svc.BufferAfterMin,
		ServiceCapacity:        svc.Capacity,
		ServicePriceCents:      svc.PriceCents,
		BookingDate:            dateKey,
		StartAtMs:              visible.StartMs,
		EndAtMs:                visible.EndMs,
		OccupiedStartAtMs:      occupied.StartMs,
		OccupiedEndAtMs:        occupied.EndMs,
		Status:                 domain.StatusPending,
		PaymentStatus:          domain.PaymentOpen,
		AmountCents:            svc.PriceCents,
		Note:                   in.Note,
	}

	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.repo.GetByStaffAndDate(txCtx, domain.StaffDayFilter{
			StaffID:     in.StaffID,
			BookingDate: dateKey,
		})
		if err != nil {
			return fmt.Errorf("fetch day bookings: %w", err)
		}

		if taken := domain.CountOverlapping(occupied, existing, 0); taken >= svc.Capacity {
			return ErrSlotTaken
		}

		created, err = uc.repo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.metrics.IncCapacityRejection()
			return nil, ErrSlotTaken
		}
		uc.logger.Error("[CreateBooking] Transaction failed: staffID=%d, startAtMs=%d, error=%v", in.StaffID, in.StartAtMs, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncTransition("new", string(domain.StatusPending))
	uc.notifier.Notify(ctx, events.NewEvent(events.KindBookingRequested, created, domain.RoleCustomer, now))
	uc.logger.Info("[CreateBooking] Booking created: bookingID=%d, staffID=%d, date=%s", created.ID, created.StaffID, created.BookingDate)

	return &Response{Booking: created}, nil
}

// checkWorkingHours проверяет, что видимый интервал попадает в рабочий
// график сотрудника и не пересекает заблокированные периоды
func (uc *UseCase) checkWorkingHours(ctx context.Context, in Request, svc *companyservice.Service, visible domain.Interval, dateKey string) error {
	schedule, err := uc.staffClient.GetDaySchedule(ctx, in.CompanyID, in.StaffID, dateKey)
	if err != nil {
		if errors.Is(err, staffservice.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		uc.logger.Error("[CreateBooking] Schedule lookup failed: staffID=%d, error=%v", in.StaffID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !schedule.IsWorking {
		return ErrOutsideWorkingHours
	}

	day, err := domain.ParseDateKey(dateKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	dayStartMs := day.UnixMilli()

	fits := false
	for _, work := range schedule.WorkIntervals {
		window, err := workInterval(dayStartMs, work.Start, work.End)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		// Буфер до может выходить за начало окна, буфер после - нет
		if visible.StartMs >= window.StartMs && visible.EndMs+domain.MinutesToMs(svc.BufferAfterMin) <= window.EndMs {
			fits = true
			break
		}
	}
	if !fits {
		return ErrOutsideWorkingHours
	}

	for _, bp := range schedule.BlockedPeriods {
		blockedIv, err := workInterval(dayStartMs, bp.Start, bp.End)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if visible.Overlaps(blockedIv) {
			return ErrOutsideWorkingHours
		}
	}
	return nil
}

func workInterval(dayStartMs int64, start, end types.TimeString) (domain.Interval, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return domain.Interval{}, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return domain.Interval{}, err
	}
	return domain.Interval{
		StartMs: dayStartMs + domain.MinutesToMs(startMin),
		EndMs:   dayStartMs + domain.MinutesToMs(endMin),
	}, nil
}
