package reschedule

import (
	"context"

	"github.com/glossup/GLS-SchedulingService/internal/usecase/propose_reschedule"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/request_reschedule"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/respond_proposal"
)

// ProposeUseCase интерфейс usecase предложения переноса компанией
type ProposeUseCase interface {
	Execute(ctx context.Context, in propose_reschedule.Request) (*propose_reschedule.Response, error)
}

// RequestUseCase интерфейс usecase запроса переноса клиентом
type RequestUseCase interface {
	Execute(ctx context.Context, in request_reschedule.Request) (*request_reschedule.Response, error)
}

// RespondUseCase интерфейс usecase ответа на предложение
type RespondUseCase interface {
	Execute(ctx context.Context, in respond_proposal.Request) (*respond_proposal.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(msg string, args ...any)
}
