package events

import (
	"context"

	"golang.org/x/time/rate"
)

// Publisher отправляет событие в один канал доставки
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Metrics интерфейс для метрик нотификаций
type Metrics interface {
	IncNotification(kind, outcome string)
}

// Notifier рассылает события переходов по настроенным каналам.
// Доставка строго best-effort: ошибка публикации логируется и
// учитывается в метриках, но никогда не ломает саму операцию.
type Notifier struct {
	queue    Publisher
	realtime Publisher
	limiter  *rate.Limiter
	logger   Logger
	metrics  Metrics
}

// NewNotifier создает notifier. Любой из publisher-ов может быть nil,
// тогда соответствующий канал доставки пропускается.
func NewNotifier(queue, realtime Publisher, ratePerSecond float64, burst int, logger Logger, metrics Metrics) *Notifier {
	return &Notifier{
		queue:    queue,
		realtime: realtime,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		logger:   logger,
		metrics:  metrics,
	}
}

// Notify публикует событие во все каналы доставки
func (n *Notifier) Notify(ctx context.Context, event Event) {
	if !n.limiter.Allow() {
		n.logger.Warn("[Notifier] Rate limit exceeded, dropping event: kind=%s, bookingID=%d", event.Kind, event.BookingID)
		n.metrics.IncNotification(string(event.Kind), "dropped")
		return
	}

	if n.queue != nil {
		if err := n.queue.Publish(ctx, event); err != nil {
			n.logger.Warn("[Notifier] Queue publish failed: kind=%s, bookingID=%d, error=%v", event.Kind, event.BookingID, err)
			n.metrics.IncNotification(string(event.Kind), "queue_error")
		} else {
			n.metrics.IncNotification(string(event.Kind), "queued")
		}
	}

	if n.realtime != nil {
		if err := n.realtime.Publish(ctx, event); err != nil {
			n.logger.Warn("[Notifier] Realtime publish failed: kind=%s, bookingID=%d, error=%v", event.Kind, event.BookingID, err)
			n.metrics.IncNotification(string(event.Kind), "realtime_error")
		} else {
			n.metrics.IncNotification(string(event.Kind), "published")
		}
	}

	n.logger.Debug("[Notifier] Event dispatched: kind=%s, bookingID=%d", event.Kind, event.BookingID)
}
