package store

import (
	"sync"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/jobrole"
)

// Store is the dashboard's in-memory domain state for one session.
type Store struct {
	Employees   Collection[employee.Employee]
	HRs         Collection[hr.HR]
	Leaves      Collection[leave.Leave]
	Departments Collection[department.Department]
	Roles       Collection[jobrole.JobRole]
	Attendance  Collection[attendance.Record]

	mu      sync.RWMutex
	summary *attendance.Summary
}

func New() *Store {
	return &Store{}
}

// SetSummary replaces the summary snapshot; summaries are never merged.
func (s *Store) SetSummary(sum attendance.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &sum
}

func (s *Store) Summary() (attendance.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return attendance.Summary{}, false
	}
	return *s.summary, true
}

// Reset clears everything, e.g. on logout.
func (s *Store) Reset() {
	s.Employees.Reset()
	s.HRs.Reset()
	s.Leaves.Reset()
	s.Departments.Reset()
	s.Roles.Reset()
	s.Attendance.Reset()

	s.mu.Lock()
	s.summary = nil
	s.mu.Unlock()
}
