package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancellationPolicyAssess(t *testing.T) {
	policy := CancellationPolicy{
		FreeCancelThresholdMin: 1440, // 24 часа
		LateFeePercent:         15,
	}
	start := MinutesToMs(10000)
	price := int64(5000) // 50.00

	tests := []struct {
		name        string
		nowMs       int64
		wantPercent int
		wantAmount  int64
	}{
		{
			name:        "well before threshold is free",
			nowMs:       start - MinutesToMs(2880),
			wantPercent: 0,
			wantAmount:  0,
		},
		{
			name:        "exactly at threshold is free",
			nowMs:       start - MinutesToMs(1440),
			wantPercent: 0,
			wantAmount:  0,
		},
		{
			name:        "one minute past threshold charges fee",
			nowMs:       start - MinutesToMs(1439),
			wantPercent: 15,
			wantAmount:  750,
		},
		{
			name:        "two hours before start charges fee",
			nowMs:       start - MinutesToMs(120),
			wantPercent: 15,
			wantAmount:  750,
		},
		{
			name:        "after start still charges fee",
			nowMs:       start + MinutesToMs(10),
			wantPercent: 15,
			wantAmount:  750,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, amount := policy.Assess(start, tt.nowMs, price)
			assert.Equal(t, tt.wantPercent, percent)
			assert.Equal(t, tt.wantAmount, amount)
		})
	}
}

func TestAssessFeeMonotonic(t *testing.T) {
	// Чем позже отмена, тем штраф не меньше
	policy := DefaultCancellationPolicy()
	start := MinutesToMs(100000)
	price := int64(12345)

	prevAmount := int64(-1)
	for minsBefore := 3000; minsBefore >= 0; minsBefore -= 17 {
		_, amount := policy.Assess(start, start-MinutesToMs(minsBefore), price)
		assert.GreaterOrEqual(t, amount, prevAmount, "fee must not decrease as cancellation gets later")
		prevAmount = amount
	}
}

func TestRoundFee(t *testing.T) {
	tests := []struct {
		price   int64
		percent int
		want    int64
	}{
		{5000, 15, 750},
		{9999, 15, 1500},  // 1499.85 округляется вверх
		{101, 15, 15},     // 15.15 округляется вниз
		{103, 50, 52},     // 51.5 округляется вверх
		{0, 15, 0},
		{5000, 0, 0},
		{5000, 100, 5000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roundFee(tt.price, tt.percent), "price=%d percent=%d", tt.price, tt.percent)
	}
}

func TestCancellationStatus(t *testing.T) {
	assert.Equal(t, StatusCancelled, CancellationStatus(0))
	assert.Equal(t, StatusCancelledWithFee, CancellationStatus(15))
	assert.Equal(t, StatusCancelledWithFee, CancellationStatus(100))
}
