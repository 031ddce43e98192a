package memory

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type payrollRepository struct {
	db *DB
}

func NewPayrollRepository(db *DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// earned pro-rates the monthly salary by paid days: PRESENT and LEAVE count
// in full, HALF_DAY counts half. Must be called with mu held.
func (r *payrollRepository) earned(e employee.Employee, month, year int) float64 {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	prefix := first.Format("2006-01-")

	var paid float64
	for _, rec := range r.db.records {
		if rec.EmployeeID != e.ID || len(rec.Date) < len(prefix) || rec.Date[:len(prefix)] != prefix {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent, attendance.StatusLeave:
			paid++
		case attendance.StatusHalfDay:
			paid += 0.5
		}
	}
	return math.Round(e.Salary*paid/float64(days)*100) / 100
}

// Salary implements payroll.Repository.
func (r *payrollRepository) Salary(ctx context.Context, q payroll.SalaryQuery) (float64, error) {
	if q.Month < 1 || q.Month > 12 {
		return 0, validator.ValidationErrors{{Field: "month", Message: "month must be between 1 and 12"}}
	}
	var out float64
	err := r.db.read(func() error {
		idx := r.db.employeeIndex(q.EmployeeID)
		if idx < 0 {
			return employee.ErrEmployeeNotFound
		}
		out = r.earned(r.db.employees[idx], q.Month, q.Year)
		return nil
	})
	return out, err
}

// GenerateSlip implements payroll.Repository. Regenerating replaces the slip.
func (r *payrollRepository) GenerateSlip(ctx context.Context, req payroll.GenerateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return r.db.write(func() error {
		idx := r.db.employeeIndex(req.EmployeeID)
		if idx < 0 {
			return employee.ErrEmployeeNotFound
		}
		e := r.db.employees[idx]
		period := fmt.Sprintf("%04d-%02d", req.Year, req.Month)
		r.db.slips[slipKey{employeeID: req.EmployeeID, period: period}] = slip{
			EmployeeID: req.EmployeeID,
			FullName:   e.DisplayName(),
			Period:     period,
			Base:       e.Salary,
			Earned:     r.earned(e, req.Month, req.Year),
			Incentive:  req.Incentive,
			Generated:  r.db.now(),
		}
		return nil
	})
}

// DownloadSlip implements payroll.Repository.
func (r *payrollRepository) DownloadSlip(ctx context.Context, employeeID string, period payroll.Period) ([]byte, error) {
	var s slip
	err := r.db.read(func() error {
		found, ok := r.db.slips[slipKey{employeeID: employeeID, period: string(period)}]
		if !ok {
			return payroll.ErrSlipNotFound
		}
		s = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renderSlip(s, period.Label())
}
