package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// Service сервис чтения бронирований и приема статусов оплаты
type Service struct {
	repo          Repository
	txManager     TxManager
	companyClient CompanyClient
	logger        Logger
}

// New создает новый сервис бронирований
func New(repo Repository, txManager TxManager, companyClient CompanyClient, logger Logger) *Service {
	return &Service{
		repo:          repo,
		txManager:     txManager,
		companyClient: companyClient,
		logger:        logger,
	}
}

// GetByID возвращает бронирование с проверкой доступа.
// Клиент видит только свои бронирования, менеджер компании только
// бронирования своей компании.
func (s *Service) GetByID(ctx context.Context, bookingID, actorID int64, role domain.ActorRole) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("[BookingsService] GetByID failed: bookingID=%d, error=%v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, b, actorID, role); err != nil {
		return nil, err
	}
	return b, nil
}

// GetCustomerBookings возвращает бронирования клиента, опционально по статусу.
// Список читается в read-only транзакции, чтобы выдача была согласованной.
func (s *Service) GetCustomerBookings(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var list []*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		list, err = s.repo.GetByCustomerID(txCtx, customerID, status)
		return err
	})
	if err != nil {
		s.logger.Error("[BookingsService] GetCustomerBookings failed: customerID=%d, error=%v", customerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return list, nil
}

// GetCompanyBookings возвращает бронирования компании по фильтру.
// Доступ только менеджерам компании.
func (s *Service) GetCompanyBookings(ctx context.Context, actorID int64, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	if err := s.checkManager(ctx, filter.CompanyID, actorID); err != nil {
		return nil, err
	}

	var list []*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		list, err = s.repo.GetByCompanyWithFilter(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("[BookingsService] GetCompanyBookings failed: companyID=%d, error=%v", filter.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return list, nil
}

// ApplyPaymentStatus сохраняет статус оплаты от платежного провайдера.
// Статус нормализуется один раз на входе. Обновление применяется и к
// финальным бронированиям: возвраты приходят после отмены.
func (s *Service) ApplyPaymentStatus(ctx context.Context, bookingID int64, rawStatus string) error {
	status, ok := domain.NormalizePaymentStatus(rawStatus)
	if !ok {
		s.logger.Warn("[BookingsService] Unknown payment status: bookingID=%d, raw=%q", bookingID, rawStatus)
		return fmt.Errorf("%w: %q", ErrUnknownPaymentStatus, rawStatus)
	}

	if err := s.repo.UpdatePaymentStatus(ctx, bookingID, status); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("[BookingsService] ApplyPaymentStatus failed: bookingID=%d, error=%v", bookingID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("[BookingsService] Payment status applied: bookingID=%d, status=%s", bookingID, status)
	return nil
}

func (s *Service) checkAccess(ctx context.Context, b *domain.Booking, actorID int64, role domain.ActorRole) error {
	switch role {
	case domain.RoleCustomer:
		if b.CustomerID != actorID {
			return ErrAccessDenied
		}
		return nil
	case domain.RoleCompany:
		return s.checkManager(ctx, b.CompanyID, actorID)
	default:
		return ErrAccessDenied
	}
}

func (s *Service) checkManager(ctx context.Context, companyID, actorID int64) error {
	company, err := s.companyClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyservice.ErrCompanyNotFound) {
			return ErrAccessDenied
		}
		s.logger.Error("[BookingsService] Company lookup failed: companyID=%d, error=%v", companyID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !company.IsManager(actorID) {
		return ErrAccessDenied
	}
	return nil
}
