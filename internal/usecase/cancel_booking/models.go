package cancel_booking

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры отмены бронирования
type Request struct {
	BookingID  int64
	CustomerID int64
}

// Response отмененное бронирование с вычисленным штрафом
type Response struct {
	Booking        *domain.Booking
	FeePercent     int
	FeeAmountCents int64
}
