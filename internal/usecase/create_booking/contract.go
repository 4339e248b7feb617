package create_booking

import (
	"context"
	"time"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/staffservice"
)

// Repository интерфейс хранилища бронирований
type Repository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByStaffAndDate(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Booking, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// PolicyResolver интерфейс получения действующей политики планирования
type PolicyResolver interface {
	Resolve(ctx context.Context, companyID int64, serviceID *int64) (*domain.CompanySchedulingPolicy, error)
}

// CompanyClient интерфейс клиента сервиса компаний
type CompanyClient interface {
	GetService(ctx context.Context, companyID, serviceID int64) (*companyservice.Service, error)
}

// StaffClient интерфейс клиента сервиса сотрудников
type StaffClient interface {
	GetDaySchedule(ctx context.Context, companyID, staffID int64, date string) (*staffservice.DaySchedule, error)
}

// Notifier интерфейс рассылки событий жизненного цикла
type Notifier interface {
	Notify(ctx context.Context, event events.Event)
}

// Metrics интерфейс для метрик бронирований
type Metrics interface {
	IncTransition(from, to string)
	IncCapacityRejection()
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}
