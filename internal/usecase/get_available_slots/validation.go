package get_available_slots

import (
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
)

func validate(in Request) error {
	if in.CompanyID <= 0 {
		return fmt.Errorf("%w: company id must be positive", ErrValidation)
	}
	if in.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrValidation)
	}
	if in.StaffID <= 0 {
		return fmt.Errorf("%w: staff id must be positive", ErrValidation)
	}
	if _, err := domain.ParseDateKey(in.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}
	return nil
}
