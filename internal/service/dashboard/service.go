package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	employees employee.EmployeeService
	hrs       hr.HRService
	tracker   attendance.Tracker
	sessions  session.Provider
	now       func() time.Time
}

func NewDashboardService(
	employees employee.EmployeeService,
	hrs hr.HRService,
	tracker attendance.Tracker,
	sessions session.Provider,
) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		employees: employees,
		hrs:       hrs,
		tracker:   tracker,
		sessions:  sessions,
		now:       time.Now,
	}
}

var _ dashboard.DashboardService = (*DashboardServiceImpl)(nil)

// Overview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Overview(ctx context.Context) (dashboard.Overview, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return dashboard.Overview{}, err
	}

	name := sess.FullName
	if name == "" {
		name = sess.Username
	}
	out := dashboard.Overview{
		Role:     sess.Role,
		Greeting: fmt.Sprintf("Welcome back, %s", name),
	}

	switch sess.Role {
	case user.RoleAdmin:
		out.Cards, err = s.adminCards(ctx)
	case user.RoleHR:
		out.Cards, err = s.hrCards(ctx)
	case user.RoleEmployee:
		out.Cards, out.Attendance, err = s.employeeCards(ctx, sess)
	default:
		err = user.ErrInsufficientPermissions
	}
	if err != nil {
		return dashboard.Overview{}, err
	}
	return out, nil
}

func (s *DashboardServiceImpl) adminCards(ctx context.Context) ([]dashboard.Card, error) {
	var employees []employee.Employee
	var hrs []hr.HR

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.employees.Refresh(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load employees: %w", err)
		}
		employees = list
		return nil
	})
	g.Go(func() error {
		list, err := s.hrs.Refresh(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load HRs: %w", err)
		}
		hrs = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return []dashboard.Card{
		{Title: "Total Employees", Value: float64(len(employees)), Description: "Active employees in the organization"},
		{Title: "Total HRs", Value: float64(len(hrs)), Description: "HR managers you have onboarded"},
	}, nil
}

func (s *DashboardServiceImpl) hrCards(ctx context.Context) ([]dashboard.Card, error) {
	list, err := s.employees.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	return []dashboard.Card{
		{Title: "Total Employees", Value: float64(len(list)), Description: "Employees under your management"},
		{Title: "Average Salary", Value: employee.AverageSalary(list), Currency: true, Description: "Mean monthly salary of your employees"},
	}, nil
}

func (s *DashboardServiceImpl) employeeCards(ctx context.Context, sess session.Session) ([]dashboard.Card, *attendance.Summary, error) {
	team, err := s.employees.Refresh(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load team: %w", err)
	}

	today := s.now()
	sum, err := s.tracker.RefreshSummary(ctx, sess.SubjectID(), attendance.RangeQuery{
		StartDate: attendance.MonthStart(today),
		EndDate:   today.Format(validator.DateLayout),
	})
	if err != nil {
		return nil, nil, err
	}

	cards := []dashboard.Card{
		{Title: "Team Size", Value: float64(len(team)), Description: "Colleagues reporting to your HR"},
		{Title: "Days Present", Value: float64(sum.PresentCount), Description: "This month"},
		{Title: "Days Absent", Value: float64(sum.AbsentCount), Description: "This month"},
	}
	return cards, &sum, nil
}
