package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployees struct {
	employee.EmployeeService
	list []employee.Employee
	err  error
}

func (f *fakeEmployees) Refresh(ctx context.Context) ([]employee.Employee, error) {
	return f.list, f.err
}

type fakeHRs struct {
	hr.HRService
	list []hr.HR
}

func (f *fakeHRs) Refresh(ctx context.Context) ([]hr.HR, error) {
	return f.list, nil
}

type fakeTracker struct {
	attendance.Tracker
	query   attendance.RangeQuery
	subject string
}

func (f *fakeTracker) RefreshSummary(ctx context.Context, subjectID string, q attendance.RangeQuery) (attendance.Summary, error) {
	f.subject = subjectID
	f.query = q
	return attendance.Summary{PresentCount: 4, AbsentCount: 1}, nil
}

func staff() []employee.Employee {
	return []employee.Employee{{ID: "E1", Salary: 1000}, {ID: "E2", Salary: 2000}}
}

func TestOverview_Admin(t *testing.T) {
	sess := session.Fixed{Token: "t", Role: user.RoleAdmin, Username: "root", FullName: "Rina"}
	svc := NewDashboardService(&fakeEmployees{list: staff()}, &fakeHRs{list: []hr.HR{{ID: "H1"}}}, &fakeTracker{}, sess)

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Welcome back, Rina", ov.Greeting)
	require.Len(t, ov.Cards, 2)
	assert.Equal(t, "Total Employees", ov.Cards[0].Title)
	assert.Equal(t, 2.0, ov.Cards[0].Value)
	assert.Equal(t, 1.0, ov.Cards[1].Value)
	assert.Nil(t, ov.Attendance)
}

func TestOverview_HRAverageSalary(t *testing.T) {
	sess := session.Fixed{Token: "t", Role: user.RoleHR, Username: "hana"}
	svc := NewDashboardService(&fakeEmployees{list: staff()}, &fakeHRs{}, &fakeTracker{}, sess)

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Welcome back, hana", ov.Greeting)
	require.Len(t, ov.Cards, 2)
	assert.Equal(t, 1500.0, ov.Cards[1].Value)
	assert.True(t, ov.Cards[1].Currency)
}

func TestOverview_EmployeeMonthToDate(t *testing.T) {
	sess := session.Fixed{Token: "t", Role: user.RoleEmployee, Username: "asha", ID: "9", EmployeeID: "E1"}
	tracker := &fakeTracker{}
	svc := NewDashboardService(&fakeEmployees{list: staff()}, &fakeHRs{}, tracker, sess)
	svc.now = func() time.Time { return time.Date(2024, 6, 18, 12, 0, 0, 0, time.Local) }

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Team Size", ov.Cards[0].Title)
	assert.Equal(t, 2.0, ov.Cards[0].Value)
	require.NotNil(t, ov.Attendance)
	assert.Equal(t, 4, ov.Attendance.PresentCount)
	assert.Equal(t, "E1", tracker.subject)
	assert.Equal(t, attendance.RangeQuery{StartDate: "2024-06-01", EndDate: "2024-06-18"}, tracker.query)
}

func TestOverview_Errors(t *testing.T) {
	_, err := NewDashboardService(&fakeEmployees{}, &fakeHRs{}, &fakeTracker{}, session.Fixed{}).Overview(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)

	sess := session.Fixed{Token: "t", Role: user.RoleHR, Username: "hana"}
	boom := errors.New("HTTP error! status: 500")
	_, err = NewDashboardService(&fakeEmployees{err: boom}, &fakeHRs{}, &fakeTracker{}, sess).Overview(context.Background())
	assert.ErrorIs(t, err, boom)
}
