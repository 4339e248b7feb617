package propose_reschedule

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("propose_reschedule: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("propose_reschedule: booking not found")
	// ErrAccessDenied пользователь не является менеджером компании
	ErrAccessDenied = errors.New("propose_reschedule: access denied")
	// ErrWrongState переносить можно только pending или confirmed бронирование
	ErrWrongState = errors.New("propose_reschedule: booking cannot be rescheduled in its current state")
	// ErrStartInPast предложенное время уже прошло
	ErrStartInPast = errors.New("propose_reschedule: proposed start time is in the past")
	// ErrSlotTaken вместимость на предложенное время исчерпана
	ErrSlotTaken = errors.New("propose_reschedule: slot capacity exhausted")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("propose_reschedule: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("propose_reschedule: internal error")
)
