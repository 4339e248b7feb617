package domain

// CancellationPolicy вычисляет штраф за отмену по времени до начала визита
// Чистая функция от момента отмены - тестируется без ожидания в реальном времени
type CancellationPolicy struct {
	FreeCancelThresholdMin int // Порог бесплатной отмены в минутах до начала
	LateFeePercent         int // Процент штрафа при поздней отмене
}

// DefaultCancellationPolicy возвращает политику с бизнес-дефолтами
func DefaultCancellationPolicy() CancellationPolicy {
	return CancellationPolicy{
		FreeCancelThresholdMin: DefaultFreeCancelThresholdMinutes,
		LateFeePercent:         DefaultLateCancelFeePercent,
	}
}

// Assess вычисляет процент и сумму штрафа за отмену в момент nowMs
// До порога (включительно) отмена бесплатна; после - фиксированный процент
// от цены услуги, округленный до ближайшего цента
func (p CancellationPolicy) Assess(startAtMs, nowMs, priceCents int64) (feePercent int, feeAmountCents int64) {
	if startAtMs-nowMs >= MinutesToMs(p.FreeCancelThresholdMin) {
		return 0, 0
	}
	return p.LateFeePercent, roundFee(priceCents, p.LateFeePercent)
}

// CancellationStatus возвращает итоговый статус отмены для вычисленного штрафа
func CancellationStatus(feePercent int) BookingStatus {
	if feePercent > 0 {
		return StatusCancelledWithFee
	}
	return StatusCancelled
}

// roundFee округляет priceCents * percent / 100 до ближайшего цента
func roundFee(priceCents int64, percent int) int64 {
	return (priceCents*int64(percent) + 50) / 100
}
