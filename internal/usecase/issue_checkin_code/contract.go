package issue_checkin_code

import (
	"context"
	"time"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// Repository интерфейс хранилища бронирований
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetCheckInCode(ctx context.Context, id int64, code string, expiresAtMs int64) error
}

// PolicyResolver интерфейс получения действующей политики планирования
type PolicyResolver interface {
	Resolve(ctx context.Context, companyID int64, serviceID *int64) (*domain.CompanySchedulingPolicy, error)
}

// CompanyClient интерфейс клиента сервиса компаний
type CompanyClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
}

// Metrics интерфейс для метрик чекина
type Metrics interface {
	IncCheckinCodeIssued()
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
