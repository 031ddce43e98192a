package attendance

import (
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// UpdateRequest is the body of PUT /api/attendance/{id}.
type UpdateRequest struct {
	Status     Status `json:"status"`
	Date       string `json:"date"`
	EmployeeID string `json:"employeeId"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Status.Submittable() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PRESENT, ABSENT, LEAVE, HALF_DAY",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RangeQuery bounds summary and range reads.
type RangeQuery struct {
	StartDate string
	EndDate   string
}

func (q RangeQuery) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(q.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(q.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BoardRow is one line of the exported attendance board.
type BoardRow struct {
	SubjectID    string
	FullName     string
	Date         string
	Status       Status
	PresentCount int
	AbsentCount  int
	HalfDayCount int
	Error        string
}

// BoardRows flattens view states for display and export.
func BoardRows(states []ViewState) []BoardRow {
	rows := make([]BoardRow, 0, len(states))
	for _, s := range states {
		row := BoardRow{
			SubjectID: s.SubjectID,
			FullName:  s.FullName,
			Date:      s.Date,
			Status:    s.Status,
			Error:     s.Error,
		}
		if s.Summary != nil {
			row.PresentCount = s.Summary.PresentCount
			row.AbsentCount = s.Summary.AbsentCount
			row.HalfDayCount = s.Summary.HalfDayCount
		}
		rows = append(rows, row)
	}
	return rows
}
