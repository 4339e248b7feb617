package slots

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// SlotResponse представление слота в API
type SlotResponse struct {
	Key               string `json:"key"`
	StartAtMs         int64  `json:"startAtMs"`
	Label             string `json:"label"`
	RemainingCapacity int    `json:"remainingCapacity"`
	TotalCapacity     int    `json:"totalCapacity"`
}

// Response ответ со слотами на дату
type Response struct {
	CompanyID   int64          `json:"companyId"`
	ServiceID   int64          `json:"serviceId"`
	StaffID     int64          `json:"staffId"`
	Date        string         `json:"date"`
	ServiceName string         `json:"serviceName"`
	DurationMin int            `json:"durationMin"`
	Slots       []SlotResponse `json:"slots"`
}

func newSlotResponses(slots []domain.BookingSlot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			Key:               s.Key,
			StartAtMs:         s.StartAtMs,
			Label:             s.Label.String(),
			RemainingCapacity: s.RemainingCapacity,
			TotalCapacity:     s.TotalCapacity,
		})
	}
	return out
}
