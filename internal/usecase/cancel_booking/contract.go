package cancel_booking

import (
	"context"
	"time"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
)

// Repository интерфейс хранилища бронирований
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, expected, next domain.BookingStatus, feePercent int, feeAmountCents int64) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// PolicyResolver интерфейс получения действующей политики планирования
type PolicyResolver interface {
	Resolve(ctx context.Context, companyID int64, serviceID *int64) (*domain.CompanySchedulingPolicy, error)
}

// Notifier интерфейс рассылки событий жизненного цикла
type Notifier interface {
	Notify(ctx context.Context, event events.Event)
}

// Metrics интерфейс для метрик бронирований
type Metrics interface {
	IncTransition(from, to string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}
