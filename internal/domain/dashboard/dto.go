package dashboard

import (
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
)

// Card is one tile of the overview screen.
type Card struct {
	Title       string  `json:"title" yaml:"title"`
	Value       float64 `json:"value" yaml:"value"`
	Currency    bool    `json:"currency,omitempty" yaml:"currency,omitempty"`
	Description string  `json:"description" yaml:"description"`
}

// Overview is the landing screen for a role.
type Overview struct {
	Role       user.Role           `json:"role" yaml:"role"`
	Greeting   string              `json:"greeting" yaml:"greeting"`
	Cards      []Card              `json:"cards" yaml:"cards"`
	Attendance *attendance.Summary `json:"attendance,omitempty" yaml:"attendance,omitempty"`
}
