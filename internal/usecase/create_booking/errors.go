package create_booking

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("create_booking: validation error")
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")
	// ErrStaffNotFound сотрудник не найден
	ErrStaffNotFound = errors.New("create_booking: staff not found")
	// ErrStaffNotPerforming сотрудник не выполняет эту услугу
	ErrStaffNotPerforming = errors.New("create_booking: staff does not perform this service")
	// ErrLeadTimeViolation запись слишком близко к началу визита
	ErrLeadTimeViolation = errors.New("create_booking: start time violates minimum lead time")
	// ErrOutsideWorkingHours запрошенное время вне рабочего графика сотрудника
	ErrOutsideWorkingHours = errors.New("create_booking: start time is outside working hours")
	// ErrSlotTaken вместимость услуги на это время исчерпана
	ErrSlotTaken = errors.New("create_booking: slot capacity exhausted")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("create_booking: internal error")
)
