package handlers

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// BookingResponse представление бронирования в API
type BookingResponse struct {
	ID         int64 `json:"id"`
	CompanyID  int64 `json:"companyId"`
	StaffID    int64 `json:"staffId"`
	CustomerID int64 `json:"customerId"`
	ServiceID  int64 `json:"serviceId"`

	ServiceName        string `json:"serviceName"`
	ServiceDurationMin int    `json:"serviceDurationMin"`

	BookingDate string `json:"bookingDate"`
	StartAtMs   int64  `json:"startAtMs"`
	EndAtMs     int64  `json:"endAtMs"`

	Status string `json:"status"`

	ProposalBy          *string `json:"proposalBy,omitempty"`
	ProposedBookingDate *string `json:"proposedBookingDate,omitempty"`
	ProposedStartAtMs   *int64  `json:"proposedStartAtMs,omitempty"`
	ProposedEndAtMs     *int64  `json:"proposedEndAtMs,omitempty"`
	ProposalNote        *string `json:"proposalNote,omitempty"`

	PaymentStatus              string `json:"paymentStatus"`
	AmountCents                int64  `json:"amountCents"`
	CancellationFeePercent     int    `json:"cancellationFeePercent,omitempty"`
	CancellationFeeAmountCents int64  `json:"cancellationFeeAmountCents,omitempty"`

	Note *string `json:"note,omitempty"`
}

// NewBookingResponse строит API-представление бронирования.
// Код чекина наружу не отдается: он виден только клиенту в ответе
// на выдачу кода.
func NewBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                         b.ID,
		CompanyID:                  b.CompanyID,
		StaffID:                    b.StaffID,
		CustomerID:                 b.CustomerID,
		ServiceID:                  b.ServiceID,
		ServiceName:                b.ServiceName,
		ServiceDurationMin:         b.ServiceDurationMin,
		BookingDate:                b.BookingDate,
		StartAtMs:                  b.StartAtMs,
		EndAtMs:                    b.EndAtMs,
		Status:                     string(b.Status),
		ProposedBookingDate:        b.ProposedBookingDate,
		ProposedStartAtMs:          b.ProposedStartAtMs,
		ProposedEndAtMs:            b.ProposedEndAtMs,
		ProposalNote:               b.ProposalNote,
		PaymentStatus:              string(b.PaymentStatus),
		AmountCents:                b.AmountCents,
		CancellationFeePercent:     b.CancellationFeePercent,
		CancellationFeeAmountCents: b.CancellationFeeAmountCents,
		Note:                       b.Note,
	}
	if b.ProposalBy != nil {
		by := string(*b.ProposalBy)
		resp.ProposalBy = &by
	}
	return resp
}

// NewBookingListResponse строит список API-представлений
func NewBookingListResponse(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}
