package verify_checkin

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("verify_checkin: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("verify_checkin: booking not found")
	// ErrAccessDenied пользователь не является менеджером компании
	ErrAccessDenied = errors.New("verify_checkin: access denied")
	// ErrCodeNotIssued код чекина на бронирование еще не выдавался
	ErrCodeNotIssued = errors.New("verify_checkin: check-in code not issued")
	// ErrInvalidCode код не совпадает
	ErrInvalidCode = errors.New("verify_checkin: invalid check-in code")
	// ErrCodeExpired срок действия кода истек
	ErrCodeExpired = errors.New("verify_checkin: check-in code expired")
	// ErrCodeAlreadyUsed код уже был использован
	ErrCodeAlreadyUsed = errors.New("verify_checkin: check-in code already used")
	// ErrWrongState чекин возможен только на подтвержденном бронировании
	ErrWrongState = errors.New("verify_checkin: booking is not confirmed")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("verify_checkin: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("verify_checkin: internal error")
)
