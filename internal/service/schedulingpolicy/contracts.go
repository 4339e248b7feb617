package schedulingpolicy

import (
	"context"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

// Repository интерфейс хранилища политик планирования
type Repository interface {
	GetPolicyWithHierarchy(ctx context.Context, companyID int64, serviceID *int64) (*domain.CompanySchedulingPolicy, error)
	GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.CompanySchedulingPolicy, error)
	Upsert(ctx context.Context, p *domain.CompanySchedulingPolicy) (*domain.CompanySchedulingPolicy, error)
	Delete(ctx context.Context, id int64) error
}

// CompanyClient интерфейс клиента сервиса компаний
type CompanyClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}
