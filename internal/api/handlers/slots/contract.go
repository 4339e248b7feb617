package slots

import (
	"context"

	"github.com/glossup/GLS-SchedulingService/internal/usecase/get_available_slots"
)

// SlotsUseCase интерфейс usecase получения слотов
type SlotsUseCase interface {
	Execute(ctx context.Context, in get_available_slots.Request) (*get_available_slots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(msg string, args ...any)
}
