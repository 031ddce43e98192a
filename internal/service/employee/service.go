package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
	"golang.org/x/sync/errgroup"
)

const defaultFanOut = 8

type EmployeeServiceImpl struct {
	employeeRepo employee.Repository
	hrRepo       hr.Repository
	sessions     session.Provider
	state        *store.Store
	logger       *slog.Logger
}

func NewEmployeeService(
	employeeRepo employee.Repository,
	hrRepo hr.Repository,
	sessions session.Provider,
	state *store.Store,
	logger *slog.Logger,
) employee.EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		hrRepo:       hrRepo,
		sessions:     sessions,
		state:        state,
		logger:       logger,
	}
}

// Refresh implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Refresh(ctx context.Context) ([]employee.Employee, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}

	var fetch func(context.Context) ([]employee.Employee, error)
	switch sess.Role {
	case user.RoleAdmin:
		fetch = s.employeeRepo.List
	case user.RoleHR:
		hrID := sess.SubjectID()
		fetch = func(ctx context.Context) ([]employee.Employee, error) {
			return s.employeeRepo.ListByHR(ctx, hrID)
		}
	case user.RoleEmployee:
		fetch = func(ctx context.Context) ([]employee.Employee, error) {
			return s.team(ctx, sess.SubjectID())
		}
	default:
		return nil, user.ErrInsufficientPermissions
	}

	return s.state.Employees.Load(ctx, fetch)
}

// team lists the employees that share the subject's HR.
func (s *EmployeeServiceImpl) team(ctx context.Context, employeeID string) ([]employee.Employee, error) {
	self, err := s.employeeRepo.Get(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load own profile: %w", err)
	}
	if self.HRID == "" {
		return nil, employee.ErrNoHRAssigned
	}
	return s.employeeRepo.ListByHR(ctx, self.HRID.String())
}

// ListAcrossAdminHRs implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListAcrossAdminHRs(ctx context.Context) ([]employee.Employee, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}
	if !sess.Role.IsAdmin() {
		return nil, user.ErrAdminPrivilegeRequired
	}

	hrs, err := s.hrRepo.ListByAdmin(ctx, sess.ActingUserID())
	if err != nil {
		return nil, fmt.Errorf("failed to list HRs: %w", err)
	}

	results := make([][]employee.Employee, len(hrs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultFanOut)
	for i, h := range hrs {
		g.Go(func() error {
			list, err := s.employeeRepo.ListByHR(gctx, h.ID.String())
			if err != nil {
				return fmt.Errorf("failed to list employees of HR %s: %w", h.ID, err)
			}
			results[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []employee.Employee
	for _, list := range results {
		all = append(all, list...)
	}
	return employee.Dedupe(all), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return employee.Employee{}, err
	}
	if !user.HasPermission(sess.Role, user.PermissionEmployeeViewAll) && id != sess.SubjectID() {
		return employee.Employee{}, user.ErrInsufficientPermissions
	}
	return s.employeeRepo.Get(ctx, id)
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateRequest) (employee.Employee, error) {
	sess, err := session.Authorize(s.sessions, user.PermissionEmployeeManage)
	if err != nil {
		return employee.Employee{}, err
	}
	if req.HRID == "" && sess.Role == user.RoleHR {
		req.HRID = sess.SubjectID()
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	created, err := s.employeeRepo.Create(ctx, req)
	if err != nil {
		return employee.Employee{}, err
	}
	s.refreshAfterMutation(ctx, "create")
	return created, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateRequest) (employee.Employee, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionEmployeeManage); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, id, req)
	if err != nil {
		return employee.Employee{}, err
	}
	s.refreshAfterMutation(ctx, "update")
	return updated, nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := session.Authorize(s.sessions, user.PermissionEmployeeManage); err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshAfterMutation(ctx, "delete")
	return nil
}

// refreshAfterMutation reloads the collection; its failure is recorded in
// the store and does not undo the mutation.
func (s *EmployeeServiceImpl) refreshAfterMutation(ctx context.Context, op string) {
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn("employee refresh failed", "after", op, "error", err)
	}
}
