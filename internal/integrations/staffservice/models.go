package staffservice

import "github.com/glossup/GLS-SchedulingService/pkg/types"

// WorkInterval рабочий интервал внутри дня, границы в формате HH:MM
type WorkInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// BlockedPeriod заблокированный период внутри дня (перерыв, личное время)
type BlockedPeriod struct {
	Start  types.TimeString `json:"start"`
	End    types.TimeString `json:"end"`
	Reason string           `json:"reason,omitempty"`
}

// DaySchedule расписание сотрудника на конкретную дату
type DaySchedule struct {
	StaffID        int64           `json:"staffId"`
	Date           string          `json:"date"`
	IsWorking      bool            `json:"isWorking"`
	WorkIntervals  []WorkInterval  `json:"workIntervals"`
	BlockedPeriods []BlockedPeriod `json:"blockedPeriods"`
}
