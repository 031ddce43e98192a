package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
	StatusHalfDay Status = "HALF_DAY"

	// StatusNotMarked is client-side only: no record exists for the day.
	StatusNotMarked Status = "NOT_MARKED"
)

// SubmittableStatuses lists the statuses a record can be created or updated with.
var SubmittableStatuses = []Status{StatusPresent, StatusAbsent, StatusLeave, StatusHalfDay}

// ParseStatus accepts case-insensitive input and "half-day" style spellings.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), "-", "_"))
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHalfDay, StatusNotMarked:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Submittable reports whether s may be sent to the backend.
func (s Status) Submittable() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHalfDay:
		return true
	}
	return false
}

// Label is the human readable form used by the dashboard.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusAbsent:
		return "Absent"
	case StatusLeave:
		return "Leave"
	case StatusHalfDay:
		return "Half Day"
	case StatusNotMarked:
		return "Not Marked"
	default:
		return "Unknown"
	}
}

// ClockTime mirrors the backend's LocalTime encoding.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
	Nano   int `json:"nano"`
}

func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nano: t.Nanosecond()}
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

type Record struct {
	ID           common.ID  `json:"id"`
	EmployeeID   common.ID  `json:"employeeId"`
	Date         string     `json:"date"`
	CheckInTime  *ClockTime `json:"checkInTime,omitempty"`
	CheckOutTime *ClockTime `json:"checkOutTime,omitempty"`
	Status       Status     `json:"status"`
}

// Day returns the record's calendar day in the caller's time zone. Dates
// that carry a time component are converted to local time first.
func (r Record) Day() (string, bool) {
	if t, ok := validator.IsValidDate(r.Date); ok {
		return t.Format(validator.DateLayout), true
	}
	if t, ok := validator.IsValidDateTime(r.Date); ok {
		return t.Local().Format(validator.DateLayout), true
	}
	return "", false
}

// OnDay reports whether the record belongs to the given YYYY-MM-DD day.
func (r Record) OnDay(day string) bool {
	d, ok := r.Day()
	return ok && d == day
}

// Summary is the server-derived count of statuses over a date range.
type Summary struct {
	AttendanceList []Record `json:"attendanceList"`
	PresentCount   int      `json:"presentCount"`
	AbsentCount    int      `json:"absentCount"`
	HalfDayCount   int      `json:"halfDayCount"`
	StartDate      string   `json:"startDate,omitempty"`
	EndDate        string   `json:"endDate,omitempty"`
}

// ViewState is the client projection of one subject's attendance for a day.
type ViewState struct {
	SubjectID string   `json:"subjectId"`
	FullName  string   `json:"fullName,omitempty"`
	Date      string   `json:"date"`
	RecordID  *string  `json:"recordId"`
	Status    Status   `json:"status"`
	Loading   bool     `json:"loading"`
	Pending   bool     `json:"pending"`
	Error     string   `json:"error,omitempty"`
	Summary   *Summary `json:"summary,omitempty"`
}

// Loaded reports whether a fetch for this state has ever completed
// successfully. A refresh in flight does not unload it.
func (v ViewState) Loaded() bool {
	return v.Date != "" && v.Status != ""
}

// Subject identifies an employee whose attendance is tracked.
type Subject struct {
	ID       string
	FullName string
}

// MonthStart returns the first day of day's month as YYYY-MM-DD.
func MonthStart(day time.Time) string {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location()).Format(validator.DateLayout)
}
