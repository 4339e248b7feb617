package cancel_booking

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("cancel_booking: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")
	// ErrAccessDenied бронирование принадлежит другому клиенту
	ErrAccessDenied = errors.New("cancel_booking: access denied")
	// ErrAlreadyFinal бронирование уже в финальном статусе
	ErrAlreadyFinal = errors.New("cancel_booking: booking is already final")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("cancel_booking: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("cancel_booking: internal error")
)
