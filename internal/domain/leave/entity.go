package leave

import (
	"math"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type Status string

const (
	StatusPending      Status = "PENDING"
	StatusApproved     Status = "APPROVED"
	StatusRejected     Status = "REJECTED"
	StatusAutoRejected Status = "AUTO_REJECTED"
)

type Leave struct {
	ID                 common.ID `json:"id"`
	EmployeeID         common.ID `json:"employeeId"`
	HRID               common.ID `json:"hrId,omitempty"`
	FromDate           string    `json:"fromDate"`
	ToDate             string    `json:"toDate"`
	Reason             string    `json:"reason"`
	OverrideAutoReject bool      `json:"overrideAutoReject"`
	Status             Status    `json:"status"`
	RequestDate        string    `json:"requestDate"`
}

// DurationDays counts calendar days from FromDate to ToDate inclusive.
func (l Leave) DurationDays() int {
	from, ok1 := validator.IsValidDate(l.FromDate)
	to, ok2 := validator.IsValidDate(l.ToDate)
	if !ok1 || !ok2 || to.Before(from) {
		return 0
	}
	return int(math.Ceil(to.Sub(from).Hours()/24)) + 1
}

// Decided reports whether the request has left PENDING.
func (l Leave) Decided() bool {
	return l.Status != StatusPending
}

// Stats aggregates a leave list for the management screen.
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Statistics counts leaves by status; auto-rejected counts as rejected.
func Statistics(list []Leave) Stats {
	s := Stats{Total: len(list)}
	for _, l := range list {
		switch l.Status {
		case StatusPending:
			s.Pending++
		case StatusApproved:
			s.Approved++
		case StatusRejected, StatusAutoRejected:
			s.Rejected++
		}
	}
	return s
}

// Today returns the current day in the request-date format.
func Today(now time.Time) string {
	return now.Format(validator.DateLayout)
}
