package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to declined", StatusPending, StatusDeclined, true},
		{"pending to reschedule", StatusPending, StatusRescheduleRequested, true},
		{"confirmed to checked in", StatusConfirmed, StatusCheckedIn, true},
		{"confirmed to no-show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to reschedule", StatusConfirmed, StatusRescheduleRequested, true},
		{"reschedule back to confirmed", StatusRescheduleRequested, StatusConfirmed, true},
		{"reschedule to declined", StatusRescheduleRequested, StatusDeclined, true},
		{"checked in to completed", StatusCheckedIn, StatusCompleted, true},
		{"checked in to no-show", StatusCheckedIn, StatusNoShow, true},
		{"cancelled with fee from confirmed", StatusConfirmed, StatusCancelledWithFee, true},

		{"pending cannot complete", StatusPending, StatusCompleted, false},
		{"pending cannot check in", StatusPending, StatusCheckedIn, false},
		{"confirmed cannot go back to pending", StatusConfirmed, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusConfirmed, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"no-show is terminal", StatusNoShow, StatusConfirmed, false},
		{"declined is terminal", StatusDeclined, StatusConfirmed, false},
		{"unknown source", BookingStatus("bogus"), StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	terminal := []BookingStatus{
		StatusCompleted, StatusDeclined, StatusNoShow, StatusCancelled, StatusCancelledWithFee,
	}

	for _, from := range terminal {
		b := &Booking{Status: from}
		assert.True(t, b.IsTerminal(), "%s must be terminal", from)
		for to := range transitions {
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want BookingStatus
		ok   bool
	}{
		{"pending", StatusPending, true},
		{"cancelled_with_fee", StatusCancelledWithFee, true},
		{"pending_reschedule_approval", StatusRescheduleRequested, true},
		{"proposed_by_company", StatusRescheduleRequested, true},
		{"cancelled_by_customer", StatusCancelled, true},
		{"cancelled_by_company", StatusDeclined, true},
		{"canceled", StatusCancelled, true},
		{"what_is_this", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeStatus(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
