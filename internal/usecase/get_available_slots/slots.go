package get_available_slots

import (
	"fmt"
	"time"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/staffservice"
	"github.com/glossup/GLS-SchedulingService/pkg/types"
)

// generateSlots строит сетку стартов по рабочим интервалам дня.
// Кандидат попадает в выдачу, если:
//   - услуга вместе с буфером после помещается до конца рабочего интервала
//     (буфер до может выходить за начало интервала)
//   - старт не раньше now + минимального горизонта записи
//   - видимый интервал не пересекает заблокированные периоды
//   - число активных бронирований, чей занятый интервал пересекает занятый
//     интервал кандидата, меньше вместимости услуги
func generateSlots(
	day time.Time,
	schedule *staffservice.DaySchedule,
	svc *companyservice.Service,
	policy *domain.CompanySchedulingPolicy,
	bookings []*domain.Booking,
	nowMs int64,
) ([]domain.BookingSlot, error) {
	if !schedule.IsWorking {
		return []domain.BookingSlot{}, nil
	}

	dayStartMs := day.UnixMilli()
	dateKey := domain.FormatDateKey(day)
	minStartMs := nowMs + domain.MinutesToMs(policy.MinLeadMinutes)
	stepMs := domain.MinutesToMs(policy.SlotStepMinutes)

	blocked := make([]domain.Interval, 0, len(schedule.BlockedPeriods))
	for _, bp := range schedule.BlockedPeriods {
		iv, err := minuteInterval(dayStartMs, bp.Start, bp.End)
		if err != nil {
			return nil, fmt.Errorf("blocked period: %w", err)
		}
		blocked = append(blocked, iv)
	}

	slots := make([]domain.BookingSlot, 0)
	for _, work := range schedule.WorkIntervals {
		window, err := minuteInterval(dayStartMs, work.Start, work.End)
		if err != nil {
			return nil, fmt.Errorf("work interval: %w", err)
		}

		// Сетка начинается с первого шага, не раньше горизонта записи
		firstStart := window.StartMs
		if minStartMs > firstStart {
			firstStart = window.StartMs + domain.RoundUpToStep(minStartMs-window.StartMs, policy.SlotStepMinutes)
		}

		for start := firstStart; start < window.EndMs; start += stepMs {
			visible := domain.VisibleInterval(start, svc.DurationMin)
			occupied := domain.OccupiedInterval(start, svc.DurationMin, svc.BufferBeforeMin, svc.BufferAfterMin)

			// Хвост услуги с буфером после должен помещаться в окно
			if visible.EndMs+domain.MinutesToMs(svc.BufferAfterMin) > window.EndMs {
				break
			}
			if overlapsAny(visible, blocked) {
				continue
			}

			taken := domain.CountOverlapping(occupied, bookings, 0)
			if taken >= svc.Capacity {
				continue
			}

			label := types.NewTimeString(time.UnixMilli(start).UTC())
			slots = append(slots, domain.BookingSlot{
				Key:               fmt.Sprintf("%sT%s", dateKey, label),
				StartAtMs:         start,
				Label:             label,
				RemainingCapacity: svc.Capacity - taken,
				TotalCapacity:     svc.Capacity,
			})
		}
	}
	return slots, nil
}

func minuteInterval(dayStartMs int64, start, end types.TimeString) (domain.Interval, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return domain.Interval{}, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return domain.Interval{}, err
	}
	if endMin <= startMin {
		return domain.Interval{}, fmt.Errorf("interval end %s is not after start %s", end, start)
	}
	return domain.Interval{
		StartMs: dayStartMs + domain.MinutesToMs(startMin),
		EndMs:   dayStartMs + domain.MinutesToMs(endMin),
	}, nil
}

func overlapsAny(candidate domain.Interval, intervals []domain.Interval) bool {
	for _, iv := range intervals {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}
