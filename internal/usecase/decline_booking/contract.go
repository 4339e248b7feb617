package decline_booking

import (
	"context"
	"time"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// Repository интерфейс хранилища бронирований
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, expected, next domain.BookingStatus) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CompanyClient интерфейс клиента сервиса компаний
type CompanyClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
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
