package domain

import "strings"

// PaymentStatus represents the payment state reported by the payment collaborator
type PaymentStatus string

const (
	PaymentOpen     PaymentStatus = "open"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentCanceled PaymentStatus = "canceled"
	PaymentExpired  PaymentStatus = "expired"
	PaymentUnknown  PaymentStatus = "unknown"
)

// IsSettled returns true if the payment is settled and company-side
// accept/decline actions may be exposed
func (p PaymentStatus) IsSettled() bool {
	return p == PaymentPaid
}

// paymentAliases разные написания статусов, которые шлет платежный провайдер
// Нормализация происходит один раз на входе от провайдера,
// бизнес-логика работает только с каноничными значениями
var paymentAliases = map[string]PaymentStatus{
	"open":       PaymentOpen,
	"pending":    PaymentOpen,
	"created":    PaymentOpen,
	"paid":       PaymentPaid,
	"settled":    PaymentPaid,
	"succeeded":  PaymentPaid,
	"failed":     PaymentFailed,
	"failure":    PaymentFailed,
	"canceled":   PaymentCanceled,
	"cancelled":  PaymentCanceled,
	"expired":    PaymentExpired,
	"timeout":    PaymentExpired,
	"timed_out":  PaymentExpired,
	"charged":    PaymentPaid,
	"authorized": PaymentPaid,
}

// NormalizePaymentStatus приводит строку провайдера к каноничному статусу
// Возвращает false, если статус не распознан
func NormalizePaymentStatus(raw string) (PaymentStatus, bool) {
	status, ok := paymentAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return PaymentUnknown, false
	}
	return status, true
}
