package decline_booking

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("decline_booking: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("decline_booking: booking not found")
	// ErrAccessDenied пользователь не является менеджером компании
	ErrAccessDenied = errors.New("decline_booking: access denied")
	// ErrWrongState бронирование не в статусе pending
	ErrWrongState = errors.New("decline_booking: booking is not pending")
	// ErrPaymentNotSettled оплата еще не подтверждена провайдером
	ErrPaymentNotSettled = errors.New("decline_booking: payment is not settled")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("decline_booking: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("decline_booking: internal error")
)
