package schedulingpolicy

import "errors"

var (
	// ErrAccessDenied пользователь не является менеджером компании
	ErrAccessDenied = errors.New("schedulingpolicy.service: access denied")
	// ErrPolicyNotFound политика не найдена
	ErrPolicyNotFound = errors.New("schedulingpolicy.service: policy not found")
	// ErrInvalidPolicy политика не проходит бизнес-валидацию
	ErrInvalidPolicy = errors.New("schedulingpolicy.service: invalid policy")
	// ErrInternal внутренняя ошибка сервиса политик
	ErrInternal = errors.New("schedulingpolicy.service: internal error")
)
