package accept_booking

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("accept_booking: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("accept_booking: booking not found")
	// ErrAccessDenied пользователь не является менеджером компании
	ErrAccessDenied = errors.New("accept_booking: access denied")
	// ErrWrongState бронирование не в статусе pending
	ErrWrongState = errors.New("accept_booking: booking is not pending")
	// ErrPaymentNotSettled оплата еще не подтверждена провайдером
	ErrPaymentNotSettled = errors.New("accept_booking: payment is not settled")
	// ErrSlotTaken вместимость слота исчерпана параллельными бронированиями
	ErrSlotTaken = errors.New("accept_booking: slot capacity exhausted")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("accept_booking: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("accept_booking: internal error")
)
