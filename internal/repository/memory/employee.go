package memory

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
)

type employeeRepository struct {
	db *DB
}

func NewEmployeeRepository(db *DB) employee.Repository {
	return &employeeRepository{db: db}
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	_ = r.db.read(func() error {
		out = append([]employee.Employee{}, r.db.employees...)
		return nil
	})
	return out, nil
}

// ListByHR implements employee.Repository.
func (r *employeeRepository) ListByHR(ctx context.Context, hrID string) ([]employee.Employee, error) {
	out := []employee.Employee{}
	_ = r.db.read(func() error {
		for _, e := range r.db.employees {
			if e.HRID.String() == hrID {
				out = append(out, e)
			}
		}
		return nil
	})
	return out, nil
}

// Get implements employee.Repository.
func (r *employeeRepository) Get(ctx context.Context, id string) (employee.Employee, error) {
	var out employee.Employee
	err := r.db.read(func() error {
		idx := r.db.employeeIndex(id)
		if idx < 0 {
			return employee.ErrEmployeeNotFound
		}
		out = r.db.employees[idx]
		return nil
	})
	return out, err
}

// Create implements employee.Repository. A username creates a login for
// the new employee; Documents holds already stored file paths.
func (r *employeeRepository) Create(ctx context.Context, req employee.CreateRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	var out employee.Employee
	err := r.db.write(func() error {
		for _, e := range r.db.employees {
			if strings.EqualFold(e.Email, req.Email) {
				return employee.ErrEmailExists
			}
		}

		status := req.Status
		if status == "" {
			status = "ACTIVE"
		}
		e := employee.Employee{
			ID:                 common.ID(r.db.newID()),
			FullName:           req.FullName,
			Email:              req.Email,
			PhoneNumber:        req.PhoneNumber,
			WhatsappNumber:     req.WhatsappNumber,
			LinkedInURL:        req.LinkedInURL,
			CurrentAddress:     req.CurrentAddress,
			PermanentAddress:   req.PermanentAddress,
			CollegeName:        req.CollegeName,
			Role:               common.Ref{Name: req.Role},
			Department:         common.Ref{Name: req.Department},
			JoiningDate:        req.JoiningDate,
			InternshipDuration: req.InternshipDuration,
			Status:             status,
			Salary:             req.Salary,
			HRID:               common.ID(req.HRID),
		}
		if e.JoiningDate == 0 {
			e.JoiningDate = r.db.now().UnixMilli()
		}

		if req.Username != "" {
			if err := r.db.addAccount(account{
				Username:   req.Username,
				Role:       user.RoleEmployee,
				FullName:   e.FullName,
				EmployeeID: e.ID.String(),
				HRID:       req.HRID,
			}, req.Password); err != nil {
				return err
			}
		}
		if len(req.Documents) > 0 {
			docs := make(map[string]string, len(req.Documents))
			for field, path := range req.Documents {
				docs[field] = path
			}
			r.db.documents[e.ID.String()] = docs
		}

		r.db.employees = append(r.db.employees, e)
		out = e
		return nil
	})
	return out, err
}

// Update implements employee.Repository.
func (r *employeeRepository) Update(ctx context.Context, id string, req employee.UpdateRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	var out employee.Employee
	err := r.db.write(func() error {
		idx := r.db.employeeIndex(id)
		if idx < 0 {
			return employee.ErrEmployeeNotFound
		}
		e := &r.db.employees[idx]
		if req.Email != nil {
			for i, other := range r.db.employees {
				if i != idx && strings.EqualFold(other.Email, *req.Email) {
					return employee.ErrEmailExists
				}
			}
			e.Email = *req.Email
		}
		if req.FullName != nil {
			e.FullName = *req.FullName
		}
		if req.PhoneNumber != nil {
			e.PhoneNumber = *req.PhoneNumber
		}
		if req.CurrentAddress != nil {
			e.CurrentAddress = *req.CurrentAddress
		}
		if req.Role != nil {
			e.Role = common.Ref{Name: *req.Role}
		}
		if req.Department != nil {
			e.Department = common.Ref{Name: *req.Department}
		}
		if req.Status != nil {
			e.Status = *req.Status
		}
		if req.Salary != nil {
			e.Salary = *req.Salary
		}
		if req.HRID != nil {
			e.HRID = common.ID(*req.HRID)
		}
		out = *e
		return nil
	})
	return out, err
}

// Delete implements employee.Repository. The employee's login goes with it.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(func() error {
		idx := r.db.employeeIndex(id)
		if idx < 0 {
			return employee.ErrEmployeeNotFound
		}
		r.db.employees = append(r.db.employees[:idx], r.db.employees[idx+1:]...)
		delete(r.db.documents, id)
		for key, a := range r.db.accounts {
			if a.EmployeeID == id {
				delete(r.db.accounts, key)
			}
		}
		return nil
	})
}

// Documents returns the stored document paths of an employee.
func (db *DB) Documents(employeeID string) map[string]string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make(map[string]string, len(db.documents[employeeID]))
	for field, path := range db.documents[employeeID] {
		out[field] = path
	}
	return out
}
