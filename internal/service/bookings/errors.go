package bookings

import "errors"

var (
	// ErrAccessDenied у пользователя нет доступа к бронированию
	ErrAccessDenied = errors.New("bookings.service: access denied")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")
	// ErrUnknownPaymentStatus неизвестный статус оплаты
	ErrUnknownPaymentStatus = errors.New("bookings.service: unknown payment status")
	// ErrInternal внутренняя ошибка сервиса бронирований
	ErrInternal = errors.New("bookings.service: internal error")
)
