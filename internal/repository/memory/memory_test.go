package memory

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testDay = time.Date(2024, 6, 14, 9, 30, 0, 0, time.UTC)

func seededDB(t *testing.T) (*DB, Seeded) {
	t.Helper()
	db := NewDB(WithClock(func() time.Time { return testDay }), WithBcryptCost(bcrypt.MinCost))
	seeded, err := db.Seed(context.Background(), DefaultSeed())
	require.NoError(t, err)
	return db, seeded
}

func TestAuthRepository_LoginAndDetails(t *testing.T) {
	db, seeded := seededDB(t)
	tokens := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	repo := NewAuthRepository(db, tokens)
	ctx := context.Background()

	resp, err := repo.Login(ctx, auth.LoginRequest{Username: "hr", Password: "hr123456"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleHR, resp.Role.Role)

	claims, err := tokens.ParseAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.HRUserID, claims.UserID)

	details, err := repo.UserDetails(ctx, resp.Token, "HR")
	require.NoError(t, err)
	assert.Equal(t, seeded.HRID, details.HRID.String())
	assert.Equal(t, seeded.AdminUserID, details.ReferredByAdminID.String())

	_, err = repo.Login(ctx, auth.LoginRequest{Username: "hr", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = repo.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = repo.UserDetails(ctx, resp.Token, "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAttendanceRepository_MarkIsUniquePerDay(t *testing.T) {
	db, seeded := seededDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	rec, err := repo.Mark(ctx, seeded.EmployeeID, attendance.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-14", rec.Date)
	assert.NotEmpty(t, rec.ID)

	_, err = repo.Mark(ctx, seeded.EmployeeID, attendance.StatusAbsent)
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)

	_, err = repo.Mark(ctx, seeded.EmployeeID, attendance.StatusNotMarked)
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)

	_, err = repo.Mark(ctx, "missing", attendance.StatusPresent)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	list, err := repo.ListBySubject(ctx, seeded.EmployeeID, "2024-06-14")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)

	none, err := repo.ListBySubject(ctx, seeded.EmployeeID, "2024-06-13")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAttendanceRepository_UpdateAndSummary(t *testing.T) {
	db, seeded := seededDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	rec, err := repo.Mark(ctx, seeded.EmployeeID, attendance.StatusPresent)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, rec.ID.String(), attendance.UpdateRequest{
		Status:     attendance.StatusHalfDay,
		Date:       "2024-06-14",
		EmployeeID: seeded.EmployeeID,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, updated.Status)

	_, err = repo.Update(ctx, "nope", attendance.UpdateRequest{Status: attendance.StatusAbsent, Date: "2024-06-14", EmployeeID: seeded.EmployeeID})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	sum, err := repo.Summary(ctx, seeded.EmployeeID, attendance.RangeQuery{StartDate: "2024-06-01", EndDate: "2024-06-14"})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.HalfDayCount)
	assert.Equal(t, 0, sum.PresentCount)
	assert.Len(t, sum.AttendanceList, 1)

	outside, err := repo.Summary(ctx, seeded.EmployeeID, attendance.RangeQuery{StartDate: "2024-05-01", EndDate: "2024-05-31"})
	require.NoError(t, err)
	assert.Empty(t, outside.AttendanceList)

	all, err := repo.Range(ctx, attendance.RangeQuery{StartDate: "2024-06-01", EndDate: "2024-06-30"})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAttendanceRepository_CheckInOut(t *testing.T) {
	db, seeded := seededDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	_, err := repo.CheckOut(ctx, seeded.EmployeeID, attendance.ClockTime{Hour: 17})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	rec, err := repo.CheckIn(ctx, seeded.EmployeeID, attendance.ClockTime{Hour: 9, Minute: 5})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	require.NotNil(t, rec.CheckInTime)
	assert.Equal(t, "09:05:00", rec.CheckInTime.String())

	_, err = repo.CheckIn(ctx, seeded.EmployeeID, attendance.ClockTime{Hour: 9, Minute: 6})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	rec, err = repo.CheckOut(ctx, seeded.EmployeeID, attendance.ClockTime{Hour: 17, Minute: 30})
	require.NoError(t, err)
	require.NotNil(t, rec.CheckOutTime)

	_, err = repo.CheckOut(ctx, seeded.EmployeeID, attendance.ClockTime{Hour: 18})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestEmployeeRepository_CreateWithLogin(t *testing.T) {
	db, seeded := seededDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, employee.CreateRequest{
		FullName:   "Budi Santoso",
		Email:      "budi@example.com",
		Role:       "Designer",
		Department: "Engineering",
		Salary:     25000,
		HRID:       seeded.HRID,
		Username:   "budi",
		Password:   "secret1",
		Documents:  map[string]string{employee.DocResume: "/exports/budi-resume.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", created.Status)
	assert.Equal(t, "/exports/budi-resume.pdf", db.Documents(created.ID.String())[employee.DocResume])

	team, err := repo.ListByHR(ctx, seeded.HRID)
	require.NoError(t, err)
	assert.Len(t, team, 2)

	details, err := NewAuthRepository(db, jwt.NewJWTService("s", "1h")).UserDetails(ctx, "", "budi")
	require.NoError(t, err)
	assert.Equal(t, created.ID, details.EmployeeID)

	_, err = repo.Create(ctx, employee.CreateRequest{FullName: "Dup", Email: "BUDI@example.com", Role: "x", Department: "y"})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	salary := 27000.0
	updated, err := repo.Update(ctx, created.ID.String(), employee.UpdateRequest{Salary: &salary})
	require.NoError(t, err)
	assert.Equal(t, 27000.0, updated.Salary)

	require.NoError(t, repo.Delete(ctx, created.ID.String()))
	_, err = repo.Get(ctx, created.ID.String())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	_, err = NewAuthRepository(db, jwt.NewJWTService("s", "1h")).UserDetails(ctx, "", "budi")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestHRRepository_ByAdminAndStatus(t *testing.T) {
	db, seeded := seededDB(t)
	repo := NewHRRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, hr.CreateRequest{
		FullName:          "Indah",
		Email:             "indah@example.com",
		Department:        "People",
		ReferredByAdminID: seeded.AdminUserID,
		Status:            hr.StatusInactive,
		Username:          "indah",
		Password:          "secret1",
	})
	require.NoError(t, err)

	mine, err := repo.ListByAdmin(ctx, seeded.AdminUserID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	inactive, err := repo.ListByStatus(ctx, hr.StatusInactive)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, created.ID, inactive[0].ID)

	_, err = repo.Create(ctx, hr.CreateRequest{
		FullName: "Again", Email: "again@example.com", Department: "People",
		Username: "indah", Password: "secret1",
	})
	assert.ErrorIs(t, err, hr.ErrUsernameExists)

	require.NoError(t, repo.Delete(ctx, seeded.HRID))
	emp, err := NewEmployeeRepository(db).Get(ctx, seeded.EmployeeID)
	require.NoError(t, err)
	assert.Empty(t, emp.HRID)
}

func TestLeaveRepository_Flow(t *testing.T) {
	db, seeded := seededDB(t)
	repo := NewLeaveRepository(db)
	ctx := context.Background()

	l, err := repo.Apply(ctx, leave.ApplyRequest{
		EmployeeID: seeded.EmployeeID,
		FromDate:   "2024-06-20",
		ToDate:     "2024-06-21",
		Reason:     "Family event",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, l.Status)
	assert.Equal(t, "2024-06-14", l.RequestDate)
	assert.Equal(t, seeded.HRID, l.HRID.String())

	byHR, err := repo.ListByHR(ctx, seeded.HRID)
	require.NoError(t, err)
	assert.Len(t, byHR, 1)

	byAdmin, err := repo.ListByHR(ctx, seeded.AdminUserID)
	require.NoError(t, err)
	assert.Len(t, byAdmin, 1)

	approved, err := repo.UpdateStatus(ctx, l.ID.String(), leave.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)

	_, err = repo.UpdateStatus(ctx, l.ID.String(), leave.StatusRejected)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = repo.UpdateStatus(ctx, l.ID.String(), leave.StatusPending)
	assert.ErrorIs(t, err, leave.ErrInvalidDecision)

	_, err = repo.UpdateStatus(ctx, "missing", leave.StatusApproved)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestDepartmentRepository_UniqueNames(t *testing.T) {
	db, _ := seededDB(t)
	repo := NewDepartmentRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, department.UpsertRequest{Name: " engineering "})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	d, err := repo.Create(ctx, department.UpsertRequest{Name: "Finance"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, d.ID.String(), department.UpsertRequest{Name: "Finance", Description: "Money"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, d.ID.String()))
	assert.ErrorIs(t, repo.Delete(ctx, d.ID.String()), department.ErrDepartmentNotFound)
}

func TestPayrollRepository_SalaryAndSlip(t *testing.T) {
	db, seeded := seededDB(t)
	att := NewAttendanceRepository(db)
	repo := NewPayrollRepository(db)
	ctx := context.Background()

	_, err := att.Mark(ctx, seeded.EmployeeID, attendance.StatusPresent)
	require.NoError(t, err)

	// 30000 over 30 days of June, one paid day
	amount, err := repo.Salary(ctx, payroll.SalaryQuery{EmployeeID: seeded.EmployeeID, Month: 6, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, amount)

	_, err = repo.DownloadSlip(ctx, seeded.EmployeeID, "2024-06")
	assert.ErrorIs(t, err, payroll.ErrSlipNotFound)

	require.NoError(t, repo.GenerateSlip(ctx, payroll.GenerateRequest{EmployeeID: seeded.EmployeeID, Month: 6, Year: 2024, Incentive: 250}))

	pdf, err := repo.DownloadSlip(ctx, seeded.EmployeeID, "2024-06")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Contains(t, string(pdf), "Net pay: 1250.00")
	assert.Contains(t, string(pdf), "June 2024")
}

func TestRenderSlip_AccentedNameUsesCP1252(t *testing.T) {
	pdf, err := renderSlip(slip{
		EmployeeID: "E1",
		FullName:   "José Ñúñez",
		Base:       3000,
		Earned:     3000,
		Generated:  time.Date(2024, 6, 30, 17, 0, 0, 0, time.UTC),
	}, "June 2024")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Contains(t, string(pdf), "Jos\xe9 \xd1\xfa\xf1ez")
	assert.NotContains(t, string(pdf), "José")
	assert.Contains(t, string(pdf), "Net pay: 3000.00")
}
