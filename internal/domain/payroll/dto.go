package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

// GenerateRequest asks the backend to produce a salary slip.
type GenerateRequest struct {
	EmployeeID string
	Month      int
	Year       int
	Incentive  float64
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four digit year from 2000",
		})
	}
	if r.Incentive < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "incentive",
			Message: "incentive must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SalaryQuery asks for the computed salary of one month.
type SalaryQuery struct {
	EmployeeID string
	Month      int
	Year       int
}

// Period is a salary-slip month in "YYYY-MM" form.
type Period string

func PeriodOf(t time.Time) Period {
	return Period(t.Format(validator.MonthLayout))
}

func ParsePeriod(raw string) (Period, error) {
	if _, ok := validator.IsValidMonth(raw); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, raw)
	}
	return Period(raw), nil
}

// Label renders the period as "June 2024".
func (p Period) Label() string {
	t, ok := validator.IsValidMonth(string(p))
	if !ok {
		return string(p)
	}
	return t.Format("January 2006")
}

// FileName is the name downloaded slips are saved under.
func (p Period) FileName() string {
	return fmt.Sprintf("salary-slip-%s.pdf", p)
}

// AvailablePeriods lists the twelve months preceding now, most recent first.
func AvailablePeriods(now time.Time) []Period {
	periods := make([]Period, 0, 12)
	for i := 1; i <= 12; i++ {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		periods = append(periods, PeriodOf(month))
	}
	return periods
}
