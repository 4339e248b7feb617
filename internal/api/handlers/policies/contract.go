package policies

import (
	"context"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
)

// PolicyService интерфейс сервиса политик планирования
type PolicyService interface {
	List(ctx context.Context, actorID, companyID int64) ([]*domain.CompanySchedulingPolicy, error)
	Upsert(ctx context.Context, actorID int64, p *domain.CompanySchedulingPolicy) (*domain.CompanySchedulingPolicy, error)
	Delete(ctx context.Context, actorID, companyID, policyID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Error(msg string, args ...any)
}
