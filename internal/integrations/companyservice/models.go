package companyservice

// Company компания на платформе
type Company struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	TimeZone   string  `json:"timeZone"`
	ManagerIDs []int64 `json:"managerIds"`
	StaffIDs   []int64 `json:"staffIds"`
}

// IsManager проверяет, что пользователь является менеджером компании
func (c *Company) IsManager(userID int64) bool {
	for _, id := range c.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasStaff проверяет, что сотрудник принадлежит компании
func (c *Company) HasStaff(staffID int64) bool {
	for _, id := range c.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// Service услуга из каталога компании
// Поля длительности/буферов/вместимости/цены снапшотятся в бронирование
// при создании и дальше живут своей жизнью
type Service struct {
	ID              int64   `json:"id"`
	CompanyID       int64   `json:"companyId"`
	Name            string  `json:"name"`
	DurationMin     int     `json:"durationMin"`
	BufferBeforeMin int     `json:"bufferBeforeMin"`
	BufferAfterMin  int     `json:"bufferAfterMin"`
	Capacity        int     `json:"capacity"`
	PriceCents      int64   `json:"priceCents"`
	StaffIDs        []int64 `json:"staffIds"`
}

// PerformedBy проверяет, что услугу выполняет указанный сотрудник
func (s *Service) PerformedBy(staffID int64) bool {
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
