package issue_checkin_code

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("issue_checkin_code: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("issue_checkin_code: booking not found")
	// ErrAccessDenied пользователь не является менеджером компании
	ErrAccessDenied = errors.New("issue_checkin_code: access denied")
	// ErrWrongState код выдается только на подтвержденное бронирование
	ErrWrongState = errors.New("issue_checkin_code: booking is not confirmed")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("issue_checkin_code: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("issue_checkin_code: internal error")
)
