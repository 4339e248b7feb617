package get_available_slots

import "github.com/glossup/GLS-SchedulingService/internal/domain"

// Request входные параметры запроса слотов
type Request struct {
	CompanyID int64
	ServiceID int64
	StaffID   int64
	Date      string // YYYY-MM-DD
}

// Response результат: свободные слоты сотрудника на дату
type Response struct {
	CompanyID   int64
	ServiceID   int64
	StaffID     int64
	Date        string
	ServiceName string
	DurationMin int
	Slots       []domain.BookingSlot
}
