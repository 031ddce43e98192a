package master

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/jobrole"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
)

type MasterService interface {
	// Department operations
	ListDepartments(ctx context.Context) ([]department.Department, error)
	CreateDepartment(ctx context.Context, req department.UpsertRequest) (department.Department, error)
	UpdateDepartment(ctx context.Context, id string, req department.UpsertRequest) (department.Department, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Job role operations
	ListRoles(ctx context.Context) ([]jobrole.JobRole, error)
	CreateRole(ctx context.Context, req jobrole.UpsertRequest) (jobrole.JobRole, error)
	UpdateRole(ctx context.Context, id string, req jobrole.UpsertRequest) (jobrole.JobRole, error)
	DeleteRole(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	departmentRepo department.Repository
	roleRepo       jobrole.Repository
	sessions       session.Provider
	state          *store.Store
	logger         *slog.Logger
}

func NewMasterService(
	departmentRepo department.Repository,
	roleRepo jobrole.Repository,
	sessions session.Provider,
	state *store.Store,
	logger *slog.Logger,
) MasterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &masterServiceImpl{
		departmentRepo: departmentRepo,
		roleRepo:       roleRepo,
		sessions:       sessions,
		state:          state,
		logger:         logger,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) ListDepartments(ctx context.Context) ([]department.Department, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionMasterView); err != nil {
		return nil, err
	}
	return s.state.Departments.Load(ctx, s.departmentRepo.List)
}

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.UpsertRequest) (department.Department, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionMasterManage); err != nil {
		return department.Department{}, err
	}
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}

	created, err := s.departmentRepo.Create(ctx, req)
	if err != nil {
		return department.Department{}, err
	}
	s.reloadDepartments(ctx)
	return created, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, id string, req department.UpsertRequest) (department.Department, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionMasterManage); err != nil {
		return department.Department{}, err
	}
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}

	updated, err := s.departmentRepo.Update(ctx, id, req)
	if err != nil {
		return department.Department{}, err
	}
	s.reloadDepartments(ctx)
	return updated, nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	if _, err := session.Authorize(s.sessions, user.PermissionMasterManage); err != nil {
		return err
	}
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.reloadDepartments(ctx)
	return nil
}

func (s *masterServiceImpl) reloadDepartments(ctx context.Context) {
	if _, err := s.state.Departments.Load(ctx, s.departmentRepo.List); err != nil {
		s.logger.Warn("department refresh failed", "error", err)
	}
}

// ==================== JOB ROLE OPERATIONS ====================

func (s *masterServiceImpl) ListRoles(ctx context.Context) ([]jobrole.JobRole, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionMasterView); err != nil {
		return nil, err
	}
	return s.state.Roles.Load(ctx, s.roleRepo.List)
}

func (s *masterServiceImpl) CreateRole(ctx context.Context, req jobrole.UpsertRequest) (jobrole.JobRole, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionMasterManage); err != nil {
		return jobrole.JobRole{}, err
	}
	if err := req.Validate(); err != nil {
		return jobrole.JobRole{}, err
	}

	created, err := s.roleRepo.Create(ctx, req)
	if err != nil {
		return jobrole.JobRole{}, err
	}
	s.reloadRoles(ctx)
	return created, nil
}

func (s *masterServiceImpl) UpdateRole(ctx context.Context, id string, req jobrole.UpsertRequest) (jobrole.JobRole, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionMasterManage); err != nil {
		return jobrole.JobRole{}, err
	}
	if err := req.Validate(); err != nil {
		return jobrole.JobRole{}, err
	}

	updated, err := s.roleRepo.Update(ctx, id, req)
	if err != nil {
		return jobrole.JobRole{}, err
	}
	s.reloadRoles(ctx)
	return updated, nil
}

func (s *masterServiceImpl) DeleteRole(ctx context.Context, id string) error {
	if _, err := session.Authorize(s.sessions, user.PermissionMasterManage); err != nil {
		return err
	}
	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.reloadRoles(ctx)
	return nil
}

func (s *masterServiceImpl) reloadRoles(ctx context.Context) {
	if _, err := s.state.Roles.Load(ctx, s.roleRepo.List); err != nil {
		s.logger.Warn("job role refresh failed", "error", err)
	}
}
