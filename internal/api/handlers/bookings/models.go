package bookings

// CreateRequest тело запроса создания бронирования
type CreateRequest struct {
	CompanyID int64   `json:"companyId"`
	ServiceID int64   `json:"serviceId"`
	StaffID   int64   `json:"staffId"`
	StartAtMs int64   `json:"startAtMs"`
	Note      *string `json:"note,omitempty"`
}

// CancelResponse ответ на отмену с вычисленным штрафом
type CancelResponse struct {
	ID                         int64  `json:"id"`
	Status                     string `json:"status"`
	CancellationFeePercent     int    `json:"cancellationFeePercent"`
	CancellationFeeAmountCents int64  `json:"cancellationFeeAmountCents"`
}
