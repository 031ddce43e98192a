package memory

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
)

type leaveRepository struct {
	db *DB
}

func NewLeaveRepository(db *DB) leave.Repository {
	return &leaveRepository{db: db}
}

// Apply implements leave.Repository. The employee's HR receives the request
// unless one is named.
func (r *leaveRepository) Apply(ctx context.Context, req leave.ApplyRequest) (leave.Leave, error) {
	req = req.WithDefaults(r.db.today())
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}

	var out leave.Leave
	err := r.db.write(func() error {
		idx := r.db.employeeIndex(req.EmployeeID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", employee.ErrEmployeeNotFound, req.EmployeeID)
		}
		hrID := common.ID(req.HRID)
		if hrID == "" {
			hrID = r.db.employees[idx].HRID
		}
		out = leave.Leave{
			ID:                 common.ID(r.db.newID()),
			EmployeeID:         common.ID(req.EmployeeID),
			HRID:               hrID,
			FromDate:           req.FromDate,
			ToDate:             req.ToDate,
			Reason:             req.Reason,
			OverrideAutoReject: req.OverrideAutoReject,
			Status:             req.Status,
			RequestDate:        req.RequestDate,
		}
		r.db.leaves = append(r.db.leaves, out)
		return nil
	})
	return out, err
}

// UpdateStatus implements leave.Repository. Only PENDING requests move.
func (r *leaveRepository) UpdateStatus(ctx context.Context, leaveID string, status leave.Status) (leave.Leave, error) {
	if status != leave.StatusApproved && status != leave.StatusRejected {
		return leave.Leave{}, leave.ErrInvalidDecision
	}

	var out leave.Leave
	err := r.db.write(func() error {
		for i := range r.db.leaves {
			l := &r.db.leaves[i]
			if l.ID.String() != leaveID {
				continue
			}
			if l.Decided() {
				return leave.ErrLeaveRequestAlreadyProcessed
			}
			l.Status = status
			out = *l
			return nil
		}
		return leave.ErrLeaveRequestNotFound
	})
	return out, err
}

// ListByHR implements leave.Repository. An admin id lists the requests
// addressed to every HR that admin referred.
func (r *leaveRepository) ListByHR(ctx context.Context, hrID string) ([]leave.Leave, error) {
	out := []leave.Leave{}
	_ = r.db.read(func() error {
		owners := map[string]bool{hrID: true}
		for _, h := range r.db.hrs {
			if h.ReferredByAdminID.String() == hrID {
				owners[h.ID.String()] = true
			}
		}
		for _, l := range r.db.leaves {
			if owners[l.HRID.String()] {
				out = append(out, l)
			}
		}
		return nil
	})
	return out, nil
}

// ListByEmployee implements leave.Repository.
func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	out := []leave.Leave{}
	_ = r.db.read(func() error {
		for _, l := range r.db.leaves {
			if l.EmployeeID.String() == employeeID {
				out = append(out, l)
			}
		}
		return nil
	})
	return out, nil
}
