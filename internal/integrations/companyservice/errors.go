package companyservice

import "errors"

var (
	// ErrCompanyNotFound компания не найдена
	ErrCompanyNotFound = errors.New("companyservice: company not found")
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("companyservice: service not found")
	// ErrInvalidResponse некорректный ответ от сервиса компаний
	ErrInvalidResponse = errors.New("companyservice: invalid response")
	// ErrInternal внутренняя ошибка сервиса компаний
	ErrInternal = errors.New("companyservice: internal error")
)
