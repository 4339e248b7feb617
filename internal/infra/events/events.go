package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
)

// Kind тип события жизненного цикла бронирования
type Kind string

const (
	KindBookingRequested    Kind = "booking.requested"
	KindBookingConfirmed    Kind = "booking.confirmed"
	KindBookingDeclined     Kind = "booking.declined"
	KindRescheduleProposed  Kind = "booking.reschedule_proposed"
	KindRescheduleRequested Kind = "booking.reschedule_requested"
	KindBookingRescheduled  Kind = "booking.rescheduled"
	KindCheckedIn           Kind = "booking.checked_in"
	KindCompleted           Kind = "booking.completed"
	KindNoShow              Kind = "booking.no_show"
	KindCancelled           Kind = "booking.cancelled"
)

// Event событие, публикуемое при каждом переходе статуса бронирования.
// Получатели: очередь для внутренних консьюмеров и realtime-каналы
// компании и клиента.
type Event struct {
	ID           string               `json:"id"`
	Kind         Kind                 `json:"kind"`
	BookingID    int64                `json:"bookingId"`
	CompanyID    int64                `json:"companyId"`
	CustomerID   int64                `json:"customerId"`
	StaffID      int64                `json:"staffId"`
	Status       domain.BookingStatus `json:"status"`
	ActorRole    domain.ActorRole     `json:"actorRole,omitempty"`
	StartAtMs    int64                `json:"startAtMs"`
	OccurredAtMs int64                `json:"occurredAtMs"`
}

// NewEvent собирает событие из бронирования после применения перехода
func NewEvent(kind Kind, b *domain.Booking, actor domain.ActorRole, now time.Time) Event {
	return Event{
		ID:           uuid.NewString(),
		Kind:         kind,
		BookingID:    b.ID,
		CompanyID:    b.CompanyID,
		CustomerID:   b.CustomerID,
		StaffID:      b.StaffID,
		Status:       b.Status,
		ActorRole:    actor,
		StartAtMs:    b.StartAtMs,
		OccurredAtMs: now.UnixMilli(),
	}
}

// KindForStatus возвращает тип события для целевого статуса перехода
func KindForStatus(status domain.BookingStatus) Kind {
	switch status {
	case domain.StatusPending:
		return KindBookingRequested
	case domain.StatusConfirmed:
		return KindBookingConfirmed
	case domain.StatusDeclined:
		return KindBookingDeclined
	case domain.StatusRescheduleRequested:
		return KindRescheduleRequested
	case domain.StatusCheckedIn:
		return KindCheckedIn
	case domain.StatusCompleted:
		return KindCompleted
	case domain.StatusNoShow:
		return KindNoShow
	case domain.StatusCancelled, domain.StatusCancelledWithFee:
		return KindCancelled
	default:
		return Kind("booking." + string(status))
	}
}
