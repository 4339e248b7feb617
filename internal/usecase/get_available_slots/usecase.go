package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/staffservice"
)

// UseCase выдача свободных слотов сотрудника на дату.
// Слоты вычисляются на лету из расписания, политики и активных
// бронирований - ничего не сохраняется.
type UseCase struct {
	repo           BookingRepository
	policyResolver PolicyResolver
	companyClient  CompanyClient
	staffClient    StaffClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый usecase получения слотов
func NewUseCase(
	repo BookingRepository,
	policyResolver PolicyResolver,
	companyClient CompanyClient,
	staffClient StaffClient,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:           repo,
		policyResolver: policyResolver,
		companyClient:  companyClient,
		staffClient:    staffClient,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute возвращает свободные слоты сотрудника на дату
func (uc *UseCase) Execute(ctx context.Context, in Request) (*Response, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	day, err := domain.ParseDateKey(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}

	svc, err := uc.companyClient.GetService(ctx, in.CompanyID, in.ServiceID)
	if err != nil {
		if errors.Is(err, companyservice.ErrServiceNotFound) || errors.Is(err, companyservice.ErrCompanyNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("[GetAvailableSlots] Service lookup failed: serviceID=%d, error=%v", in.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if len(svc.StaffIDs) > 0 && !svc.PerformedBy(in.StaffID) {
		return nil, ErrStaffNotPerforming
	}

	schedule, err := uc.staffClient.GetDaySchedule(ctx, in.CompanyID, in.StaffID, in.Date)
	if err != nil {
		if errors.Is(err, staffservice.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("[GetAvailableSlots] Schedule lookup failed: staffID=%d, error=%v", in.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	policy, err := uc.policyResolver.Resolve(ctx, in.CompanyID, &in.ServiceID)
	if err != nil {
		uc.logger.Error("[GetAvailableSlots] Policy resolve failed: companyID=%d, error=%v", in.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	bookings, err := uc.repo.GetByStaffAndDate(ctx, domain.StaffDayFilter{
		StaffID:     in.StaffID,
		BookingDate: in.Date,
	})
	if err != nil {
		uc.logger.Error("[GetAvailableSlots] Bookings fetch failed: staffID=%d, date=%s, error=%v", in.StaffID, in.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	nowMs := uc.timeProvider.Now().UnixMilli()
	slots, err := generateSlots(day, schedule, svc, policy, bookings, nowMs)
	if err != nil {
		uc.logger.Error("[GetAvailableSlots] Slot generation failed: staffID=%d, date=%s, error=%v", in.StaffID, in.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Debug("[GetAvailableSlots] Generated slots: staffID=%d, date=%s, count=%d", in.StaffID, in.Date, len(slots))
	return &Response{
		CompanyID:   in.CompanyID,
		ServiceID:   in.ServiceID,
		StaffID:     in.StaffID,
		Date:        in.Date,
		ServiceName: svc.Name,
		DurationMin: svc.DurationMin,
		Slots:       slots,
	}, nil
}
