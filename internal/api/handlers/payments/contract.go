package payments

import "context"

// BookingsService интерфейс применения статусов оплаты
type BookingsService interface {
	ApplyPaymentStatus(ctx context.Context, bookingID int64, rawStatus string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
