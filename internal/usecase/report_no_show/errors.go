package report_no_show

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("report_no_show: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("report_no_show: booking not found")
	// ErrAccessDenied пользователь не является менеджером компании
	ErrAccessDenied = errors.New("report_no_show: access denied")
	// ErrWrongState неявку можно отметить только на подтвержденном бронировании
	ErrWrongState = errors.New("report_no_show: booking is not confirmed")
	// ErrTooEarly грейс-период после начала визита еще не истек
	ErrTooEarly = errors.New("report_no_show: grace period has not elapsed")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("report_no_show: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("report_no_show: internal error")
)
