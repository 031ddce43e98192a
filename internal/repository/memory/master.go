package memory

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/jobrole"
)

type departmentRepository struct {
	db *DB
}

func NewDepartmentRepository(db *DB) department.Repository {
	return &departmentRepository{db: db}
}

// List implements department.Repository.
func (r *departmentRepository) List(ctx context.Context) ([]department.Department, error) {
	var out []department.Department
	_ = r.db.read(func() error {
		out = append([]department.Department{}, r.db.departments...)
		return nil
	})
	return out, nil
}

func (r *departmentRepository) nameTaken(name string, except string) bool {
	for _, d := range r.db.departments {
		if d.ID.String() != except && strings.EqualFold(strings.TrimSpace(d.Name), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// Create implements department.Repository.
func (r *departmentRepository) Create(ctx context.Context, req department.UpsertRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	var out department.Department
	err := r.db.write(func() error {
		if r.nameTaken(req.Name, "") {
			return department.ErrDepartmentNameExists
		}
		out = department.Department{ID: common.ID(r.db.newID()), Name: strings.TrimSpace(req.Name), Description: req.Description}
		r.db.departments = append(r.db.departments, out)
		return nil
	})
	return out, err
}

// Update implements department.Repository.
func (r *departmentRepository) Update(ctx context.Context, id string, req department.UpsertRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	var out department.Department
	err := r.db.write(func() error {
		if r.nameTaken(req.Name, id) {
			return department.ErrDepartmentNameExists
		}
		for i := range r.db.departments {
			if r.db.departments[i].ID.String() == id {
				r.db.departments[i].Name = strings.TrimSpace(req.Name)
				r.db.departments[i].Description = req.Description
				out = r.db.departments[i]
				return nil
			}
		}
		return department.ErrDepartmentNotFound
	})
	return out, err
}

// Delete implements department.Repository.
func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(func() error {
		for i, d := range r.db.departments {
			if d.ID.String() == id {
				r.db.departments = append(r.db.departments[:i], r.db.departments[i+1:]...)
				return nil
			}
		}
		return department.ErrDepartmentNotFound
	})
}

type jobRoleRepository struct {
	db *DB
}

func NewJobRoleRepository(db *DB) jobrole.Repository {
	return &jobRoleRepository{db: db}
}

// List implements jobrole.Repository.
func (r *jobRoleRepository) List(ctx context.Context) ([]jobrole.JobRole, error) {
	var out []jobrole.JobRole
	_ = r.db.read(func() error {
		out = append([]jobrole.JobRole{}, r.db.roles...)
		return nil
	})
	return out, nil
}

func (r *jobRoleRepository) nameTaken(name string, except string) bool {
	for _, jr := range r.db.roles {
		if jr.ID.String() != except && strings.EqualFold(strings.TrimSpace(jr.Name), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// Create implements jobrole.Repository.
func (r *jobRoleRepository) Create(ctx context.Context, req jobrole.UpsertRequest) (jobrole.JobRole, error) {
	if err := req.Validate(); err != nil {
		return jobrole.JobRole{}, err
	}
	var out jobrole.JobRole
	err := r.db.write(func() error {
		if r.nameTaken(req.Name, "") {
			return jobrole.ErrJobRoleNameExists
		}
		out = jobrole.JobRole{ID: common.ID(r.db.newID()), Name: strings.TrimSpace(req.Name), Description: req.Description}
		r.db.roles = append(r.db.roles, out)
		return nil
	})
	return out, err
}

// Update implements jobrole.Repository.
func (r *jobRoleRepository) Update(ctx context.Context, id string, req jobrole.UpsertRequest) (jobrole.JobRole, error) {
	if err := req.Validate(); err != nil {
		return jobrole.JobRole{}, err
	}
	var out jobrole.JobRole
	err := r.db.write(func() error {
		if r.nameTaken(req.Name, id) {
			return jobrole.ErrJobRoleNameExists
		}
		for i := range r.db.roles {
			if r.db.roles[i].ID.String() == id {
				r.db.roles[i].Name = strings.TrimSpace(req.Name)
				r.db.roles[i].Description = req.Description
				out = r.db.roles[i]
				return nil
			}
		}
		return jobrole.ErrJobRoleNotFound
	})
	return out, err
}

// Delete implements jobrole.Repository.
func (r *jobRoleRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(func() error {
		for i, jr := range r.db.roles {
			if jr.ID.String() == id {
				r.db.roles = append(r.db.roles[:i], r.db.roles[i+1:]...)
				return nil
			}
		}
		return jobrole.ErrJobRoleNotFound
	})
}
