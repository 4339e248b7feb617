package create_booking

import (
	"fmt"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
)

func validate(in Request) error {
	if in.CustomerID <= 0 {
		return fmt.Errorf("%w: customer id must be positive", ErrValidation)
	}
	if in.CompanyID <= 0 {
		return fmt.Errorf("%w: company id must be positive", ErrValidation)
	}
	if in.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrValidation)
	}
	if in.StaffID <= 0 {
		return fmt.Errorf("%w: staff id must be positive", ErrValidation)
	}
	if in.StartAtMs <= 0 {
		return fmt.Errorf("%w: start time must be positive", ErrValidation)
	}
	if in.Note != nil && len(*in.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must not exceed %d characters", ErrValidation, domain.MaxNoteLength)
	}
	return nil
}
