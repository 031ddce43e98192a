package payroll

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	generated []payroll.GenerateRequest
	salaryFor string
	slipFor   string
	slip      []byte
}

func (f *fakeRepo) Salary(ctx context.Context, q payroll.SalaryQuery) (float64, error) {
	f.salaryFor = q.EmployeeID
	return 4200, nil
}

func (f *fakeRepo) GenerateSlip(ctx context.Context, req payroll.GenerateRequest) error {
	f.generated = append(f.generated, req)
	return nil
}

func (f *fakeRepo) DownloadSlip(ctx context.Context, employeeID string, period payroll.Period) ([]byte, error) {
	f.slipFor = employeeID
	return f.slip, nil
}

var (
	hrSession       = session.Fixed{Token: "t", Role: user.RoleHR, Username: "hana", ID: "7", HRID: "H1"}
	employeeSession = session.Fixed{Token: "t", Role: user.RoleEmployee, Username: "asha", ID: "9", EmployeeID: "E1"}
)

func newFiles(t *testing.T) storage.FileStorage {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return files
}

func TestGenerate(t *testing.T) {
	repo := &fakeRepo{}
	ctx := context.Background()

	err := NewPayrollService(repo, hrSession, newFiles(t), nil).Generate(ctx, payroll.GenerateRequest{EmployeeID: "E1", Month: 5, Year: 2024, Incentive: 150})
	require.NoError(t, err)
	require.Len(t, repo.generated, 1)

	err = NewPayrollService(repo, hrSession, newFiles(t), nil).Generate(ctx, payroll.GenerateRequest{EmployeeID: "E1", Month: 13, Year: 2024})
	assert.Error(t, err)

	err = NewPayrollService(repo, employeeSession, newFiles(t), nil).Generate(ctx, payroll.GenerateRequest{EmployeeID: "E1", Month: 5, Year: 2024})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Len(t, repo.generated, 1)
}

func TestSalary_EmployeeDefaultsToSelf(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewPayrollService(repo, employeeSession, newFiles(t), nil)

	amount, err := svc.Salary(context.Background(), payroll.SalaryQuery{Month: 5, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 4200.0, amount)
	assert.Equal(t, "E1", repo.salaryFor)

	_, err = svc.Salary(context.Background(), payroll.SalaryQuery{EmployeeID: "E2", Month: 5, Year: 2024})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestDownload_WritesSlip(t *testing.T) {
	repo := &fakeRepo{slip: []byte("%PDF-1.4")}
	svc := NewPayrollService(repo, employeeSession, newFiles(t), nil)

	path, err := svc.Download(context.Background(), "", "2024-05")
	require.NoError(t, err)
	assert.Equal(t, "E1", repo.slipFor)
	assert.Contains(t, path, "salary-slip-2024-05.pdf")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	_, err = svc.Download(context.Background(), "", "May 2024")
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
