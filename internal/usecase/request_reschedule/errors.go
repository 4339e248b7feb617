package request_reschedule

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("request_reschedule: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("request_reschedule: booking not found")
	// ErrAccessDenied бронирование принадлежит другому клиенту
	ErrAccessDenied = errors.New("request_reschedule: access denied")
	// ErrWrongState переносить можно только подтвержденное бронирование
	ErrWrongState = errors.New("request_reschedule: booking is not confirmed")
	// ErrNotSameDay перенос доступен только в день визита и в пределах того же дня
	ErrNotSameDay = errors.New("request_reschedule: new time must be on the same day")
	// ErrStartInPast предложенное время уже прошло
	ErrStartInPast = errors.New("request_reschedule: proposed start time is in the past")
	// ErrLimitReached лимит переносов клиентом исчерпан
	ErrLimitReached = errors.New("request_reschedule: customer reschedule limit reached")
	// ErrSlotTaken вместимость на предложенное время исчерпана
	ErrSlotTaken = errors.New("request_reschedule: slot capacity exhausted")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("request_reschedule: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("request_reschedule: internal error")
)
