package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
)

type fakePublisher struct {
	events []Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

type fakeNotifyMetrics struct {
	outcomes map[string]int
}

func (f *fakeNotifyMetrics) IncNotification(_, outcome string) {
	if f.outcomes == nil {
		f.outcomes = make(map[string]int)
	}
	f.outcomes[outcome]++
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

func testEvent() Event {
	b := &domain.Booking{
		ID:         10,
		CompanyID:  1,
		CustomerID: 3,
		StaffID:    2,
		Status:     domain.StatusConfirmed,
		StartAtMs:  1770000000000,
	}
	return NewEvent(KindBookingConfirmed, b, domain.RoleCompany, time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC))
}

func TestNotifierDispatchesToBothChannels(t *testing.T) {
	queue := &fakePublisher{}
	realtime := &fakePublisher{}
	metrics := &fakeNotifyMetrics{}
	n := NewNotifier(queue, realtime, 100, 100, nopLogger{}, metrics)

	n.Notify(context.Background(), testEvent())

	require.Len(t, queue.events, 1)
	require.Len(t, realtime.events, 1)
	assert.Equal(t, 1, metrics.outcomes["queued"])
	assert.Equal(t, 1, metrics.outcomes["published"])
}

func TestNotifierPublishErrorIsSwallowed(t *testing.T) {
	queue := &fakePublisher{err: errors.New("broker down")}
	realtime := &fakePublisher{}
	metrics := &fakeNotifyMetrics{}
	n := NewNotifier(queue, realtime, 100, 100, nopLogger{}, metrics)

	// Ошибка очереди не мешает realtime-доставке
	n.Notify(context.Background(), testEvent())

	require.Len(t, realtime.events, 1)
	assert.Equal(t, 1, metrics.outcomes["queue_error"])
	assert.Equal(t, 1, metrics.outcomes["published"])
}

func TestNotifierNilPublishersSkipped(t *testing.T) {
	metrics := &fakeNotifyMetrics{}
	n := NewNotifier(nil, nil, 100, 100, nopLogger{}, metrics)

	n.Notify(context.Background(), testEvent())
	assert.Empty(t, metrics.outcomes)
}

func TestNotifierRateLimitDrops(t *testing.T) {
	queue := &fakePublisher{}
	metrics := &fakeNotifyMetrics{}
	n := NewNotifier(queue, nil, 1, 2, nopLogger{}, metrics)

	for i := 0; i < 5; i++ {
		n.Notify(context.Background(), testEvent())
	}

	assert.Len(t, queue.events, 2, "burst of 2 passes, the rest drops")
	assert.Equal(t, 3, metrics.outcomes["dropped"])
}

func TestNewEventSnapshot(t *testing.T) {
	e := testEvent()

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, KindBookingConfirmed, e.Kind)
	assert.Equal(t, int64(10), e.BookingID)
	assert.Equal(t, domain.StatusConfirmed, e.Status)
	assert.Equal(t, domain.RoleCompany, e.ActorRole)
	assert.Equal(t, time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC).UnixMilli(), e.OccurredAtMs)

	other := testEvent()
	assert.NotEqual(t, e.ID, other.ID, "every event gets its own id")
}

func TestKindForStatus(t *testing.T) {
	assert.Equal(t, KindBookingConfirmed, KindForStatus(domain.StatusConfirmed))
	assert.Equal(t, KindCancelled, KindForStatus(domain.StatusCancelled))
	assert.Equal(t, KindCancelled, KindForStatus(domain.StatusCancelledWithFee))
	assert.Equal(t, KindNoShow, KindForStatus(domain.StatusNoShow))
}

func TestRedisPublisher(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	companySub := client.Subscribe(context.Background(), CompanyChannel(1))
	defer companySub.Close()
	customerSub := client.Subscribe(context.Background(), CustomerChannel(3))
	defer customerSub.Close()

	// Подписки должны установиться до публикации
	_, err := companySub.Receive(context.Background())
	require.NoError(t, err)
	_, err = customerSub.Receive(context.Background())
	require.NoError(t, err)

	pub := NewRedisPublisher(client)
	event := testEvent()
	require.NoError(t, pub.Publish(context.Background(), event))

	for _, sub := range []*redis.PubSub{companySub, customerSub} {
		msg, err := sub.ReceiveTimeout(context.Background(), 2*time.Second)
		require.NoError(t, err)
		payload, ok := msg.(*redis.Message)
		require.True(t, ok)

		var got Event
		require.NoError(t, json.Unmarshal([]byte(payload.Payload), &got))
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, event.Kind, got.Kind)
		assert.Equal(t, event.BookingID, got.BookingID)
	}
}
