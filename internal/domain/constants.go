package domain

// Default scheduling policy values
const (
	DefaultSlotStepMinutes            = 15
	DefaultMinLeadMinutes             = 60 // 1 hour
	DefaultFreeCancelThresholdMinutes = 1440 // 24 hours
	DefaultLateCancelFeePercent       = 15
	DefaultNoShowGraceMinutes         = 20
	DefaultCheckinCodeTTLMinutes      = 15
	DefaultMaxCustomerReschedules     = 1
)

// Business validation constants
const (
	MinSlotStepMinutes        = 5
	MaxSlotStepMinutes        = 120
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MinCapacity               = 1
	MaxCapacity               = 100
	MaxBufferMinutes          = 120
	MaxLateFeePercent         = 100
	MaxNoteLength             = 500
	CheckinCodeLength         = 6
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих время сотрудника
// Используется при подсчете занятости слотов
var InactiveStatuses = []BookingStatus{
	StatusDeclined,
	StatusCancelled,
	StatusCancelledWithFee,
	StatusNoShow,
}

// ActiveStatuses список статусов, занимающих время сотрудника
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusRescheduleRequested,
	StatusCheckedIn,
	StatusCompleted,
}
