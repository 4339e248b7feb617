package verify_checkin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// UseCase проверка кода чекина компанией.
//
// Preview только читает: показывает бронирование по коду и его
// пригодность, сколько угодно раз. Confirm погашает код ровно один раз
// и переводит бронирование в checked_in.
type UseCase struct {
	repo          Repository
	txManager     TxManager
	companyClient CompanyClient
	notifier      Notifier
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый usecase проверки чекина
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

// Preview показывает бронирование по коду чекина без погашения кода
func (uc *UseCase) Preview(ctx context.Context, in Request) (*PreviewResponse, error) {
	b, err := uc.loadAndAuthorize(ctx, in)
	if err != nil {
		return nil, err
	}
	if b.CheckInCode == nil || b.CheckInCodeExpiresAtMs == nil {
		return nil, ErrCodeNotIssued
	}
	if !codeMatches(b, in.Code) {
		return nil, ErrInvalidCode
	}

	nowMs := uc.timeProvider.Now().UnixMilli()
	return &PreviewResponse{
		Booking:  b,
		Expired:  *b.CheckInCodeExpiresAtMs < nowMs,
		Consumed: b.CheckInCodeConsumedAtMs != nil,
	}, nil
}

// Confirm погашает код чекина и переводит бронирование в checked_in
func (uc *UseCase) Confirm(ctx context.Context, in Request) (*Response, error) {
	b, err := uc.loadAndAuthorize(ctx, in)
	if err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.repo.GetByID(txCtx, in.BookingID)
		if err != nil {
			return fmt.Errorf("reread booking: %w", err)
		}
		if current.CheckInCode == nil || current.CheckInCodeExpiresAtMs == nil {
			return ErrCodeNotIssued
		}
		if !codeMatches(current, in.Code) {
			return ErrInvalidCode
		}
		if current.CheckInCodeConsumedAtMs != nil {
			return ErrCodeAlreadyUsed
		}
		if *current.CheckInCodeExpiresAtMs < now.UnixMilli() {
			return ErrCodeExpired
		}
		if current.Status != domain.StatusConfirmed {
			return ErrWrongState
		}
		return uc.repo.ConsumeCheckInCode(txCtx, in.BookingID, now.UnixMilli())
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeNotIssued):
			return nil, ErrCodeNotIssued
		case errors.Is(err, ErrInvalidCode):
			return nil, ErrInvalidCode
		case errors.Is(err, ErrCodeAlreadyUsed):
			return nil, ErrCodeAlreadyUsed
		case errors.Is(err, ErrCodeExpired):
			return nil, ErrCodeExpired
		case errors.Is(err, ErrWrongState):
			return nil, ErrWrongState
		case errors.Is(err, booking.ErrStaleState):
			return nil, ErrStaleState
		case errors.Is(err, booking.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[VerifyCheckin] Confirm failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	nowMs := now.UnixMilli()
	b.Status = domain.StatusCheckedIn
	b.CheckInCodeConsumedAtMs = &nowMs
	uc.metrics.IncTransition(string(domain.StatusConfirmed), string(domain.StatusCheckedIn))
	uc.notifier.Notify(ctx, events.NewEvent(events.KindCheckedIn, b, domain.RoleCompany, now))
	uc.logger.Info("[VerifyCheckin] Check-in confirmed: bookingID=%d", in.BookingID)

	return &Response{Booking: b}, nil
}

func (uc *UseCase) loadAndAuthorize(ctx context.Context, in Request) (*domain.Booking, error) {
	if in.BookingID <= 0 || in.ManagerID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrValidation)
	}
	if in.Code == "" {
		return nil, fmt.Errorf("%w: code must not be empty", ErrValidation)
	}

	b, err := uc.repo.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("[VerifyCheckin] GetByID failed: bookingID=%d, error=%v", in.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	company, err := uc.companyClient.GetCompany(ctx, b.CompanyID)
	if err != nil {
		if errors.Is(err, companyservice.ErrCompanyNotFound) {
			return nil, ErrAccessDenied
		}
		uc.logger.Error("[VerifyCheckin] Company lookup failed: companyID=%d, error=%v", b.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !company.IsManager(in.ManagerID) {
		return nil, ErrAccessDenied
	}
	return b, nil
}

// codeMatches сравнивает код за постоянное время, чтобы несовпадение
// нельзя было подобрать по времени ответа
func codeMatches(b *domain.Booking, code string) bool {
	if b.CheckInCode == nil || b.CheckInCodeExpiresAtMs == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*b.CheckInCode), []byte(code)) == 1
}
