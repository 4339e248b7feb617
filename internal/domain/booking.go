package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusDeclined            BookingStatus = "declined"
	StatusRescheduleRequested BookingStatus = "reschedule_requested"
	StatusCheckedIn           BookingStatus = "checked_in"
	StatusCompleted           BookingStatus = "completed"
	StatusNoShow              BookingStatus = "no_show"
	StatusCancelled           BookingStatus = "cancelled"
	StatusCancelledWithFee    BookingStatus = "cancelled_with_fee"
)

// ActorRole determines which side of the booking performs an operation
type ActorRole string

const (
	RoleCompany  ActorRole = "company"
	RoleCustomer ActorRole = "customer"
)

// Booking represents a booking of a staff member's time in the system
type Booking struct {
	ID         int64
	CompanyID  int64
	StaffID    int64
	CustomerID int64
	ServiceID  int64

	// Service snapshot: copied at creation so later catalog edits
	// don't retroactively change booking history
	ServiceName            string
	ServiceDurationMin     int
	ServiceBufferBeforeMin int
	ServiceBufferAfterMin  int
	ServiceCapacity        int
	ServicePriceCents      int64

	// Scheduling
	BookingDate       string // YYYY-MM-DD
	StartAtMs         int64
	EndAtMs           int64
	OccupiedStartAtMs int64
	OccupiedEndAtMs   int64

	Status BookingStatus

	// Proposal fields, present only while Status == reschedule_requested
	ProposalBy                *ActorRole
	ProposedBookingDate       *string
	ProposedStartAtMs         *int64
	ProposedEndAtMs           *int64
	ProposedOccupiedStartAtMs *int64
	ProposedOccupiedEndAtMs   *int64
	ProposedAtMs              *int64
	ProposalNote              *string
	CustomerRescheduleCount   int

	// Financial
	PaymentStatus              PaymentStatus
	AmountCents                int64
	CancellationFeePercent     int
	CancellationFeeAmountCents int64

	// Check-in
	CheckInCode             *string
	CheckInCodeExpiresAtMs  *int64
	CheckInCodeConsumedAtMs *int64

	Note *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its staff member's time
// Active bookings are the ones the capacity check counts
func (b *Booking) IsActive() bool {
	switch b.Status {
	case StatusDeclined, StatusCancelled, StatusCancelledWithFee, StatusNoShow:
		return false
	default:
		return true
	}
}

// IsTerminal returns true if the booking reached a final state
// Terminal bookings are immutable except for payment fields
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case StatusCompleted, StatusDeclined, StatusNoShow, StatusCancelled, StatusCancelledWithFee:
		return true
	default:
		return false
	}
}

// HasPendingProposal returns true if a reschedule offer awaits a response
func (b *Booking) HasPendingProposal() bool {
	return b.Status == StatusRescheduleRequested && b.ProposalBy != nil
}

// Visible returns the customer-visible interval of the booking
func (b *Booking) Visible() Interval {
	return Interval{StartMs: b.StartAtMs, EndMs: b.EndAtMs}
}

// Occupied returns the occupied interval (visible expanded by buffers)
func (b *Booking) Occupied() Interval {
	return Interval{StartMs: b.OccupiedStartAtMs, EndMs: b.OccupiedEndAtMs}
}

// ProposedOccupied returns the occupied interval of a pending proposal
func (b *Booking) ProposedOccupied() (Interval, bool) {
	if b.ProposedOccupiedStartAtMs == nil || b.ProposedOccupiedEndAtMs == nil {
		return Interval{}, false
	}
	return Interval{StartMs: *b.ProposedOccupiedStartAtMs, EndMs: *b.ProposedOccupiedEndAtMs}, true
}

// Proposal holds a pending offer to move a booking to a different time
type Proposal struct {
	By                ActorRole
	BookingDate       string
	StartAtMs         int64
	EndAtMs           int64
	OccupiedStartAtMs int64
	OccupiedEndAtMs   int64
	ProposedAtMs      int64
	Note              *string
}

// NewProposal builds a proposal for the given start time using the booking's
// service snapshot (duration and buffers never change mid-negotiation)
func (b *Booking) NewProposal(by ActorRole, startAtMs int64, nowMs int64, note *string) Proposal {
	visible := VisibleInterval(startAtMs, b.ServiceDurationMin)
	occupied := OccupiedInterval(startAtMs, b.ServiceDurationMin, b.ServiceBufferBeforeMin, b.ServiceBufferAfterMin)
	return Proposal{
		By:                by,
		BookingDate:       FormatDateKey(time.UnixMilli(startAtMs).UTC()),
		StartAtMs:         visible.StartMs,
		EndAtMs:           visible.EndMs,
		OccupiedStartAtMs: occupied.StartMs,
		OccupiedEndAtMs:   occupied.EndMs,
		ProposedAtMs:      nowMs,
		Note:              note,
	}
}

// SetProposal records a pending proposal on the booking
func (b *Booking) SetProposal(p Proposal) {
	by := p.By
	b.ProposalBy = &by
	b.ProposedBookingDate = &p.BookingDate
	b.ProposedStartAtMs = &p.StartAtMs
	b.ProposedEndAtMs = &p.EndAtMs
	b.ProposedOccupiedStartAtMs = &p.OccupiedStartAtMs
	b.ProposedOccupiedEndAtMs = &p.OccupiedEndAtMs
	b.ProposedAtMs = &p.ProposedAtMs
	b.ProposalNote = p.Note
}

// ApplyProposal folds the pending proposal into the primary scheduling fields
// and clears all proposal fields; must only be called on acceptance
func (b *Booking) ApplyProposal() {
	if b.ProposedStartAtMs == nil {
		return
	}
	b.BookingDate = *b.ProposedBookingDate
	b.StartAtMs = *b.ProposedStartAtMs
	b.EndAtMs = *b.ProposedEndAtMs
	b.OccupiedStartAtMs = *b.ProposedOccupiedStartAtMs
	b.OccupiedEndAtMs = *b.ProposedOccupiedEndAtMs
	b.ClearProposal()
}

// ClearProposal clears all proposal fields
func (b *Booking) ClearProposal() {
	b.ProposalBy = nil
	b.ProposedBookingDate = nil
	b.ProposedStartAtMs = nil
	b.ProposedEndAtMs = nil
	b.ProposedOccupiedStartAtMs = nil
	b.ProposedOccupiedEndAtMs = nil
	b.ProposedAtMs = nil
	b.ProposalNote = nil
}

// StaffDayFilter фильтр бронирований сотрудника на календарный день
type StaffDayFilter struct {
	StaffID         int64
	BookingDate     string
	IncludeInactive bool
}

// CompanyBookingsFilter фильтр для получения бронирований компании
type CompanyBookingsFilter struct {
	CompanyID       int64
	StaffID         *int64         // Фильтр по сотруднику (опционально)
	StartDate       *string        // Начало периода, ключ дня (опционально)
	EndDate         *string        // Конец периода, ключ дня (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные/no-show бронирования
}
