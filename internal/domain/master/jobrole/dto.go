package jobrole

import (
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

// JobRole is an entry of /api/roles.
type JobRole struct {
	ID          common.ID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// UpsertRequest is used for both create and update.
type UpsertRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
