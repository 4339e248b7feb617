package staffservice

import "errors"

var (
	// ErrStaffNotFound сотрудник не найден
	ErrStaffNotFound = errors.New("staffservice: staff not found")
	// ErrInvalidResponse некорректный ответ от сервиса сотрудников
	ErrInvalidResponse = errors.New("staffservice: invalid response")
	// ErrInternal внутренняя ошибка сервиса сотрудников
	ErrInternal = errors.New("staffservice: internal error")
)
