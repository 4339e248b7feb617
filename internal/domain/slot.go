package domain

import "github.com/glossup/GLS-SchedulingService/pkg/types"

// BookingSlot represents a bookable start time with remaining capacity
// Derived per query, never persisted or mutated
type BookingSlot struct {
	Key               string // "<date>T<HH:MM>"
	StartAtMs         int64
	Label             types.TimeString
	RemainingCapacity int
	TotalCapacity     int
}

// IsFull returns true if the slot has no remaining capacity
func (s *BookingSlot) IsFull() bool {
	return s.RemainingCapacity <= 0
}

// IsPartiallyBooked returns true if the slot has some but not all capacity taken
func (s *BookingSlot) IsPartiallyBooked() bool {
	return s.RemainingCapacity > 0 && s.RemainingCapacity < s.TotalCapacity
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *BookingSlot) OccupancyRate() float64 {
	if s.TotalCapacity == 0 {
		return 0
	}
	taken := s.TotalCapacity - s.RemainingCapacity
	return float64(taken) / float64(s.TotalCapacity) * 100
}
