package complete_booking

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("complete_booking: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("complete_booking: booking not found")
	// ErrAccessDenied пользователь не является менеджером компании
	ErrAccessDenied = errors.New("complete_booking: access denied")
	// ErrWrongState завершить можно только бронирование после чекина
	ErrWrongState = errors.New("complete_booking: booking is not checked in")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("complete_booking: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("complete_booking: internal error")
)
