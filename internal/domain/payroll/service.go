package payroll

import "context"

// Repository is the remote salary API.
type Repository interface {
	Salary(ctx context.Context, q SalaryQuery) (float64, error)
	GenerateSlip(ctx context.Context, req GenerateRequest) error
	DownloadSlip(ctx context.Context, employeeID string, period Period) ([]byte, error)
}

// PayrollService wraps salary slip generation and retrieval
type PayrollService interface {
	// Generate produces a slip for one employee and month
	Generate(ctx context.Context, req GenerateRequest) error

	// Salary returns the computed salary of an employee for a month
	Salary(ctx context.Context, q SalaryQuery) (float64, error)

	// Download stores the slip PDF and returns where it was written
	Download(ctx context.Context, employeeID string, period Period) (string, error)
}
