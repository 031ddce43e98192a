package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
)

type hrRepository struct {
	db *DB
}

func NewHRRepository(db *DB) hr.Repository {
	return &hrRepository{db: db}
}

func (r *hrRepository) filter(keep func(hr.HR) bool) []hr.HR {
	out := []hr.HR{}
	_ = r.db.read(func() error {
		for _, h := range r.db.hrs {
			if keep(h) {
				out = append(out, h)
			}
		}
		return nil
	})
	return out
}

// List implements hr.Repository.
func (r *hrRepository) List(ctx context.Context) ([]hr.HR, error) {
	return r.filter(func(hr.HR) bool { return true }), nil
}

// ListByStatus implements hr.Repository.
func (r *hrRepository) ListByStatus(ctx context.Context, status hr.Status) ([]hr.HR, error) {
	s, err := hr.ParseStatus(string(status))
	if err != nil {
		return nil, err
	}
	return r.filter(func(h hr.HR) bool { return h.Status == s }), nil
}

// ListByAdmin implements hr.Repository.
func (r *hrRepository) ListByAdmin(ctx context.Context, adminID string) ([]hr.HR, error) {
	return r.filter(func(h hr.HR) bool { return h.ReferredByAdminID.String() == adminID }), nil
}

// Get implements hr.Repository.
func (r *hrRepository) Get(ctx context.Context, id string) (hr.HR, error) {
	var out hr.HR
	err := r.db.read(func() error {
		idx := r.db.hrIndex(id)
		if idx < 0 {
			return hr.ErrHRNotFound
		}
		out = r.db.hrs[idx]
		return nil
	})
	return out, err
}

// Create implements hr.Repository. Every HR gets a login.
func (r *hrRepository) Create(ctx context.Context, req hr.CreateRequest) (hr.HR, error) {
	if err := req.Validate(); err != nil {
		return hr.HR{}, err
	}
	status, _ := hr.ParseStatus(string(req.Status))

	var out hr.HR
	err := r.db.write(func() error {
		for _, h := range r.db.hrs {
			if strings.EqualFold(h.Email, req.Email) {
				return employee.ErrEmailExists
			}
		}
		h := hr.HR{
			ID:                common.ID(r.db.newID()),
			FullName:          req.FullName,
			Email:             req.Email,
			PhoneNumber:       req.PhoneNumber,
			Department:        req.Department,
			ReferredByAdminID: common.ID(req.ReferredByAdminID),
			JoiningDate:       req.JoiningDate,
			Status:            status,
			Username:          req.Username,
		}
		if h.JoiningDate == 0 {
			h.JoiningDate = r.db.now().UnixMilli()
		}
		if err := r.db.addAccount(account{
			Username:          req.Username,
			Role:              user.RoleHR,
			FullName:          h.FullName,
			HRID:              h.ID.String(),
			ReferredByAdminID: req.ReferredByAdminID,
		}, req.Password); err != nil {
			if errors.Is(err, employee.ErrUsernameExists) {
				return hr.ErrUsernameExists
			}
			return err
		}
		r.db.hrs = append(r.db.hrs, h)
		out = h
		return nil
	})
	return out, err
}

// Update implements hr.Repository.
func (r *hrRepository) Update(ctx context.Context, id string, req hr.UpdateRequest) (hr.HR, error) {
	if err := req.Validate(); err != nil {
		return hr.HR{}, err
	}

	var out hr.HR
	err := r.db.write(func() error {
		idx := r.db.hrIndex(id)
		if idx < 0 {
			return hr.ErrHRNotFound
		}
		h := &r.db.hrs[idx]
		if req.FullName != nil {
			h.FullName = *req.FullName
		}
		if req.Email != nil {
			h.Email = *req.Email
		}
		if req.PhoneNumber != nil {
			h.PhoneNumber = *req.PhoneNumber
		}
		if req.Department != nil {
			h.Department = *req.Department
		}
		if req.Status != nil {
			h.Status, _ = hr.ParseStatus(string(*req.Status))
		}
		out = *h
		return nil
	})
	return out, err
}

// Delete implements hr.Repository. Employees of the HR are left unassigned.
func (r *hrRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(func() error {
		idx := r.db.hrIndex(id)
		if idx < 0 {
			return hr.ErrHRNotFound
		}
		r.db.hrs = append(r.db.hrs[:idx], r.db.hrs[idx+1:]...)
		for i := range r.db.employees {
			if r.db.employees[i].HRID.String() == id {
				r.db.employees[i].HRID = ""
			}
		}
		for key, a := range r.db.accounts {
			if a.HRID == id && a.Role == user.RoleHR {
				delete(r.db.accounts, key)
			}
		}
		return nil
	})
}
