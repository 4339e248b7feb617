package lifecycle

import (
	"context"

	"github.com/glossup/GLS-SchedulingService/internal/usecase/accept_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/complete_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/decline_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/report_no_show"
)

// AcceptUseCase интерфейс usecase подтверждения бронирования
type AcceptUseCase interface {
	Execute(ctx context.Context, in accept_booking.Request) (*accept_booking.Response, error)
}

// DeclineUseCase интерфейс usecase отклонения бронирования
type DeclineUseCase interface {
	Execute(ctx context.Context, in decline_booking.Request) (*decline_booking.Response, error)
}

// CompleteUseCase интерфейс usecase завершения бронирования
type CompleteUseCase interface {
	Execute(ctx context.Context, in complete_booking.Request) (*complete_booking.Response, error)
}

// NoShowUseCase интерфейс usecase отметки неявки
type NoShowUseCase interface {
	Execute(ctx context.Context, in report_no_show.Request) (*report_no_show.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(msg string, args ...any)
}
