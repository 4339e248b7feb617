package bookings

import (
	"context"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/cancel_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/create_booking"
)

// CreateUseCase интерфейс usecase создания бронирования
type CreateUseCase interface {
	Execute(ctx context.Context, in create_booking.Request) (*create_booking.Response, error)
}

// CancelUseCase интерфейс usecase отмены бронирования
type CancelUseCase interface {
	Execute(ctx context.Context, in cancel_booking.Request) (*cancel_booking.Response, error)
}

// BookingsService интерфейс сервиса чтения бронирований
type BookingsService interface {
	GetByID(ctx context.Context, bookingID, actorID int64, role domain.ActorRole) (*domain.Booking, error)
	GetCustomerBookings(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetCompanyBookings(ctx context.Context, actorID int64, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(msg string, args ...any)
}
