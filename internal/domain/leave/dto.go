package leave

import (
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type ApplyRequest struct {
	EmployeeID         string `json:"employeeId"`
	HRID               string `json:"hrId,omitempty"`
	FromDate           string `json:"fromDate"`
	ToDate             string `json:"toDate"`
	Reason             string `json:"reason"`
	OverrideAutoReject bool   `json:"overrideAutoReject"`
	Status             Status `json:"status"`
	RequestDate        string `json:"requestDate"`
}

// WithDefaults fills status PENDING and requestDate today when unset.
func (r ApplyRequest) WithDefaults(today string) ApplyRequest {
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.RequestDate == "" {
		r.RequestDate = today
	}
	return r
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	from, okFrom := validator.IsValidDate(r.FromDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "fromDate",
			Message: "fromDate must be in YYYY-MM-DD format",
		})
	}
	to, okTo := validator.IsValidDate(r.ToDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "toDate",
			Message: "toDate must be in YYYY-MM-DD format",
		})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "toDate",
			Message: "toDate must not be before fromDate",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if r.RequestDate != "" {
		if _, ok := validator.IsValidDate(r.RequestDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requestDate",
				Message: "requestDate must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseDecision accepts approve/reject spellings and returns the target status.
func ParseDecision(raw string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "APPROVE", "APPROVED":
		return StatusApproved, nil
	case "REJECT", "REJECTED":
		return StatusRejected, nil
	}
	return "", ErrInvalidDecision
}
