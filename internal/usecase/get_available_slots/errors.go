package get_available_slots

import "errors"

var (
	// ErrValidation входные данные не прошли валидацию
	ErrValidation = errors.New("get_available_slots: validation error")
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")
	// ErrStaffNotFound сотрудник не найден
	ErrStaffNotFound = errors.New("get_available_slots: staff not found")
	// ErrStaffNotPerforming сотрудник не выполняет эту услугу
	ErrStaffNotPerforming = errors.New("get_available_slots: staff does not perform this service")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("get_available_slots: internal error")
)
