package domain

import "time"

// Interval is a half-open time interval [StartMs, EndMs) in epoch milliseconds.
// Half-open boundaries make back-to-back bookings possible: an interval
// ending at T never overlaps one starting at T.
type Interval struct {
	StartMs int64
	EndMs   int64
}

// Overlaps returns true if the two intervals share at least one instant
func (i Interval) Overlaps(other Interval) bool {
	return i.StartMs < other.EndMs && i.EndMs > other.StartMs
}

// Contains returns true if the instant falls inside the interval
func (i Interval) Contains(ms int64) bool {
	return ms >= i.StartMs && ms < i.EndMs
}

// ContainsInterval returns true if other lies entirely inside the interval
func (i Interval) ContainsInterval(other Interval) bool {
	return other.StartMs >= i.StartMs && other.EndMs <= i.EndMs
}

// DurationMinutes returns the interval length in whole minutes
func (i Interval) DurationMinutes() int {
	return int((i.EndMs - i.StartMs) / msPerMinute)
}

const msPerMinute = int64(60 * 1000)

// MinutesToMs converts minutes to epoch-millisecond duration
func MinutesToMs(minutes int) int64 {
	return int64(minutes) * msPerMinute
}

// VisibleInterval builds the customer-visible interval of a booking
func VisibleInterval(startAtMs int64, durationMin int) Interval {
	return Interval{
		StartMs: startAtMs,
		EndMs:   startAtMs + MinutesToMs(durationMin),
	}
}

// OccupiedInterval builds the staff-occupied interval: the visible interval
// expanded by the service buffers on both sides
func OccupiedInterval(startAtMs int64, durationMin, bufferBeforeMin, bufferAfterMin int) Interval {
	return Interval{
		StartMs: startAtMs - MinutesToMs(bufferBeforeMin),
		EndMs:   startAtMs + MinutesToMs(durationMin) + MinutesToMs(bufferAfterMin),
	}
}

// RoundUpToStep rounds the instant up to the nearest multiple of step minutes
func RoundUpToStep(ms int64, stepMin int) int64 {
	step := MinutesToMs(stepMin)
	rem := ms % step
	if rem == 0 {
		return ms
	}
	return ms + step - rem
}

// FormatDateKey formats a time as the YYYY-MM-DD booking date key
func FormatDateKey(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD booking date key as midnight UTC
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateFormat, key)
}

// CountOverlapping подсчитывает активные бронирования, чей занятый интервал
// пересекается с кандидатом. Бронирование excludeID пропускается: при
// переносе собственный старый интервал не считается конфликтом.
func CountOverlapping(candidate Interval, bookings []*Booking, excludeID int64) int {
	count := 0
	for _, b := range bookings {
		if b.ID == excludeID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if candidate.Overlaps(b.Occupied()) {
			count++
		}
	}
	return count
}
