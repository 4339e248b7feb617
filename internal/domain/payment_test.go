package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePaymentStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want PaymentStatus
		ok   bool
	}{
		{"paid", PaymentPaid, true},
		{"settled", PaymentPaid, true},
		{"succeeded", PaymentPaid, true},
		{"charged", PaymentPaid, true},
		{"authorized", PaymentPaid, true},
		{"open", PaymentOpen, true},
		{"pending", PaymentOpen, true},
		{"created", PaymentOpen, true},
		{"failed", PaymentFailed, true},
		{"failure", PaymentFailed, true},
		{"canceled", PaymentCanceled, true},
		{"cancelled", PaymentCanceled, true},
		{"expired", PaymentExpired, true},
		{"timeout", PaymentExpired, true},
		{"  PAID  ", PaymentPaid, true}, // регистр и пробелы провайдера
		{"Settled", PaymentPaid, true},
		{"gibberish", PaymentUnknown, false},
		{"", PaymentUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizePaymentStatus(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaymentIsSettled(t *testing.T) {
	assert.True(t, PaymentPaid.IsSettled())
	assert.False(t, PaymentOpen.IsSettled())
	assert.False(t, PaymentFailed.IsSettled())
	assert.False(t, PaymentCanceled.IsSettled())
	assert.False(t, PaymentExpired.IsSettled())
	assert.False(t, PaymentUnknown.IsSettled())
}
