package payroll

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
)

type PayrollServiceImpl struct {
	payroll.Repository
	sessions session.Provider
	files    storage.FileStorage
	logger   *slog.Logger
}

func NewPayrollService(repo payroll.Repository, sessions session.Provider, files storage.FileStorage, logger *slog.Logger) payroll.PayrollService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollServiceImpl{
		Repository: repo,
		sessions:   sessions,
		files:      files,
		logger:     logger,
	}
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) error {
	if _, err := session.Authorize(s.sessions, user.PermissionSalaryGenerate); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.Repository.GenerateSlip(ctx, req); err != nil {
		return fmt.Errorf("failed to generate salary slip: %w", err)
	}
	s.logger.Info("salary slip generated", "employee_id", req.EmployeeID, "month", req.Month, "year", req.Year)
	return nil
}

// Salary implements payroll.PayrollService.
func (s *PayrollServiceImpl) Salary(ctx context.Context, q payroll.SalaryQuery) (float64, error) {
	employeeID, err := s.subject(q.EmployeeID)
	if err != nil {
		return 0, err
	}
	q.EmployeeID = employeeID

	check := payroll.GenerateRequest{EmployeeID: q.EmployeeID, Month: q.Month, Year: q.Year}
	if err := check.Validate(); err != nil {
		return 0, err
	}
	return s.Repository.Salary(ctx, q)
}

// Download implements payroll.PayrollService.
func (s *PayrollServiceImpl) Download(ctx context.Context, employeeID string, period payroll.Period) (string, error) {
	employeeID, err := s.subject(employeeID)
	if err != nil {
		return "", err
	}
	if _, err := payroll.ParsePeriod(string(period)); err != nil {
		return "", err
	}

	pdf, err := s.Repository.DownloadSlip(ctx, employeeID, period)
	if err != nil {
		return "", err
	}
	path, err := s.files.Save(ctx, bytes.NewReader(pdf), period.FileName())
	if err != nil {
		return "", fmt.Errorf("failed to save salary slip: %w", err)
	}
	return path, nil
}

// subject resolves whose salary is requested. Roles without the generate
// permission only ever see their own.
func (s *PayrollServiceImpl) subject(requested string) (string, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return "", err
	}
	own := sess.SubjectID()
	if requested == "" || requested == own {
		if !user.HasPermission(sess.Role, user.PermissionSalaryViewOwn) &&
			!user.HasPermission(sess.Role, user.PermissionSalaryGenerate) {
			return "", user.ErrInsufficientPermissions
		}
		return own, nil
	}
	if !user.HasPermission(sess.Role, user.PermissionSalaryGenerate) {
		return "", user.ErrInsufficientPermissions
	}
	return requested, nil
}
