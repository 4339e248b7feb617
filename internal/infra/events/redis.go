package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// CompanyChannel имя realtime-канала компании
func CompanyChannel(companyID int64) string {
	return fmt.Sprintf("bookings:company:%d", companyID)
}

// CustomerChannel имя realtime-канала клиента
func CustomerChannel(customerID int64) string {
	return fmt.Sprintf("bookings:customer:%d", customerID)
}

// RedisPublisher рассылает события в realtime-каналы Redis Pub/Sub.
// Каждое событие уходит в канал компании и канал клиента.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher создает publisher поверх готового клиента Redis
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish отправляет событие в оба канала получателей
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, CompanyChannel(event.CompanyID), body).Err(); err != nil {
		return fmt.Errorf("events: publish company channel: %w", err)
	}
	if err := p.client.Publish(ctx, CustomerChannel(event.CustomerID), body).Err(); err != nil {
		return fmt.Errorf("events: publish customer channel: %w", err)
	}
	return nil
}
