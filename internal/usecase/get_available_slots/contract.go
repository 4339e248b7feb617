package get_available_slots

import (
	"context"
	"time"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/staffservice"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	GetByStaffAndDate(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Booking, error)
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
