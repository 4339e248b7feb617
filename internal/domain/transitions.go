package domain

// transitions карта допустимых переходов статусов бронирования
// Любая смена статуса проверяется через CanTransition перед записью в БД;
// попытка перехода из неожиданного исходного состояния - это stale state,
// вызывающая сторона должна перечитать бронирование
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending: {
		StatusConfirmed,
		StatusDeclined,
		StatusRescheduleRequested,
		StatusCancelled,
		StatusCancelledWithFee,
	},
	StatusConfirmed: {
		StatusCheckedIn,
		StatusRescheduleRequested,
		StatusNoShow,
		StatusCancelled,
		StatusCancelledWithFee,
	},
	StatusRescheduleRequested: {
		StatusConfirmed,
		StatusDeclined,
		StatusCancelled,
		StatusCancelledWithFee,
	},
	StatusCheckedIn: {
		StatusCompleted,
		StatusNoShow,
		StatusCancelled,
		StatusCancelledWithFee,
	},
	// Терминальные статусы: переходов нет
	StatusCompleted:        {},
	StatusDeclined:         {},
	StatusNoShow:           {},
	StatusCancelled:        {},
	StatusCancelledWithFee: {},
}

// CanTransition проверяет, допустим ли переход из from в to
func CanTransition(from, to BookingStatus) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsKnownStatus проверяет, что статус входит в каноничный словарь
func IsKnownStatus(s BookingStatus) bool {
	_, ok := transitions[s]
	return ok
}

// legacyStatusAliases соответствие устаревших названий статусов каноничным
// Старое поколение словаря нормализуется один раз на входе и нигде больше
var legacyStatusAliases = map[string]BookingStatus{
	"pending_reschedule_approval": StatusRescheduleRequested,
	"proposed_by_company":         StatusRescheduleRequested,
	"cancelled_by_customer":       StatusCancelled,
	"cancelled_by_company":        StatusDeclined,
	"canceled":                    StatusCancelled,
}

// NormalizeStatus приводит строковый статус к каноничному значению
// Возвращает false, если статус не распознан
func NormalizeStatus(raw string) (BookingStatus, bool) {
	if IsKnownStatus(BookingStatus(raw)) {
		return BookingStatus(raw), true
	}
	if canonical, ok := legacyStatusAliases[raw]; ok {
		return canonical, true
	}
	return "", false
}
