package respond_proposal

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("respond_proposal: validation error")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("respond_proposal: booking not found")
	// ErrAccessDenied отвечать на предложение может только другая сторона
	ErrAccessDenied = errors.New("respond_proposal: access denied")
	// ErrNoProposal на бронировании нет ожидающего предложения
	ErrNoProposal = errors.New("respond_proposal: no pending proposal")
	// ErrOwnProposal на свое предложение отвечать нельзя
	ErrOwnProposal = errors.New("respond_proposal: cannot respond to own proposal")
	// ErrSlotTaken вместимость на предложенное время исчерпана к моменту ответа
	ErrSlotTaken = errors.New("respond_proposal: slot capacity exhausted")
	// ErrStaleState статус изменился параллельным запросом
	ErrStaleState = errors.New("respond_proposal: booking state changed concurrently")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("respond_proposal: internal error")
)
