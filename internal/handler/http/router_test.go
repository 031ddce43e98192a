package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/apiclient"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const routerTestSecret = "test-secret-key-for-jwt"

var routerTestDay = time.Date(2024, 6, 14, 10, 0, 0, 0, time.Local)

type stubEnv struct {
	srv    *httptest.Server
	db     *memory.DB
	seeded memory.Seeded
	files  *storage.LocalStorage
}

func newStubEnv(t *testing.T) *stubEnv {
	t.Helper()
	clock := func() time.Time { return routerTestDay }
	db := memory.NewDB(memory.WithClock(clock), memory.WithBcryptCost(bcrypt.MinCost))
	seeded, err := db.Seed(context.Background(), memory.DefaultSeed())
	require.NoError(t, err)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewStubRouter(db, jwt.NewJWTService(routerTestSecret, "1h"), files, RouterOptions{Logger: quiet})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &stubEnv{srv: srv, db: db, seeded: seeded, files: files}
}

// clientFor logs in and returns a client carrying the token.
func (e *stubEnv) clientFor(t *testing.T, username, password string) *apiclient.Client {
	t.Helper()
	resp, err := apiclient.New(e.srv.URL).Auth().Login(context.Background(), auth.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	return apiclient.New(e.srv.URL, apiclient.WithTokenSource(apiclient.StaticToken(resp.Token)))
}

func TestRouter_PingAndLogin(t *testing.T) {
	env := newStubEnv(t)
	anon := apiclient.New(env.srv.URL)
	ctx := context.Background()

	require.NoError(t, anon.Ping(ctx))

	resp, err := anon.Auth().Login(ctx, auth.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, resp.Role.Role)

	details, err := anon.Auth().UserDetails(ctx, resp.Token, "admin")
	require.NoError(t, err)
	assert.Equal(t, env.seeded.AdminUserID, details.ID.String())

	_, err = anon.Auth().Login(ctx, auth.LoginRequest{Username: "admin", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))

	_, err = anon.Employees().List(ctx)
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))
	assert.EqualError(t, err, "HTTP error! status: 401")
}

func TestRouter_AttendanceReconciliation(t *testing.T) {
	env := newStubEnv(t)
	client := env.clientFor(t, "hr", "hr123456")
	ctx := context.Background()
	subject := env.seeded.EmployeeID
	day := routerTestDay.Format("2006-01-02")

	tracker := attendanceService.NewAttendanceService(
		client.Attendance(),
		func() string { return env.seeded.HRUserID },
		attendanceService.WithClock(func() time.Time { return routerTestDay }),
	)
	t.Cleanup(tracker.Close)

	vs, err := tracker.EnsureTodayStatus(ctx, subject, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNotMarked, vs.Status)
	assert.Nil(t, vs.RecordID)

	vs, err = tracker.SubmitStatus(ctx, subject, attendance.StatusPresent)
	require.NoError(t, err)
	require.NotNil(t, vs.RecordID)
	created := *vs.RecordID
	require.NotNil(t, vs.Summary)
	assert.Equal(t, 1, vs.Summary.PresentCount)

	vs, err = tracker.SubmitStatus(ctx, subject, attendance.StatusHalfDay)
	require.NoError(t, err)
	assert.Equal(t, created, *vs.RecordID)
	assert.Equal(t, attendance.StatusHalfDay, vs.Status)
	assert.Equal(t, 1, vs.Summary.HalfDayCount)
	assert.Equal(t, 0, vs.Summary.PresentCount)

	// a second create for the same day is refused by the backend
	_, err = client.Attendance().Mark(ctx, subject, attendance.StatusAbsent)
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Attendance already marked for this date", apiErr.Detail)
}

func TestRouter_EmployeeCannotMark(t *testing.T) {
	env := newStubEnv(t)
	client := env.clientFor(t, "employee", "employee123")
	ctx := context.Background()

	_, err := client.Attendance().Mark(ctx, env.seeded.EmployeeID, attendance.StatusPresent)
	assert.Equal(t, http.StatusForbidden, apiclient.StatusCode(err))

	rec, err := client.Attendance().CheckIn(ctx, env.seeded.EmployeeID, attendance.ClockTime{Hour: 8, Minute: 58})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)

	list, err := client.Attendance().ListBySubject(ctx, env.seeded.EmployeeID, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRouter_CreateEmployeeMultipart(t *testing.T) {
	env := newStubEnv(t)
	client := env.clientFor(t, "hr", "hr123456")
	ctx := context.Background()

	resume := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4 resume"), 0o600))

	created, err := client.Employees().Create(ctx, employee.CreateRequest{
		FullName:   "Budi Santoso",
		Email:      "budi@example.com",
		Role:       "Designer",
		Department: "Engineering",
		Salary:     25000,
		HRID:       env.seeded.HRID,
		Username:   "budi",
		Password:   "secret1",
		Documents:  map[string]string{employee.DocResume: resume},
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", created.FullName)

	stored := env.db.Documents(created.ID.String())[employee.DocResume]
	require.NotEmpty(t, stored)
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 resume", string(data))

	// the new login works right away
	budi := env.clientFor(t, "budi", "secret1")
	team, err := budi.Employees().ListByHR(ctx, env.seeded.HRID)
	require.NoError(t, err)
	assert.Len(t, team, 2)
}

func TestRouter_LeaveDecision(t *testing.T) {
	env := newStubEnv(t)
	emp := env.clientFor(t, "employee", "employee123")
	hrClient := env.clientFor(t, "hr", "hr123456")
	ctx := context.Background()

	l, err := emp.Leaves().Apply(ctx, leave.ApplyRequest{
		EmployeeID: env.seeded.EmployeeID,
		FromDate:   "2024-06-20",
		ToDate:     "2024-06-20",
		Reason:     "Doctor appointment",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, l.Status)

	_, err = emp.Leaves().UpdateStatus(ctx, l.ID.String(), leave.StatusApproved)
	assert.Equal(t, http.StatusForbidden, apiclient.StatusCode(err))

	approved, err := hrClient.Leaves().UpdateStatus(ctx, l.ID.String(), leave.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)

	_, err = hrClient.Leaves().UpdateStatus(ctx, l.ID.String(), leave.StatusRejected)
	assert.Equal(t, http.StatusConflict, apiclient.StatusCode(err))
}

func TestRouter_SalarySlip(t *testing.T) {
	env := newStubEnv(t)
	hrClient := env.clientFor(t, "hr", "hr123456")
	ctx := context.Background()

	_, err := hrClient.Attendance().Mark(ctx, env.seeded.EmployeeID, attendance.StatusPresent)
	require.NoError(t, err)

	amount, err := hrClient.Payroll().Salary(ctx, payroll.SalaryQuery{EmployeeID: env.seeded.EmployeeID, Month: 6, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, amount)

	_, err = hrClient.Payroll().DownloadSlip(ctx, env.seeded.EmployeeID, "2024-06")
	assert.Equal(t, http.StatusNotFound, apiclient.StatusCode(err))

	require.NoError(t, hrClient.Payroll().GenerateSlip(ctx, payroll.GenerateRequest{
		EmployeeID: env.seeded.EmployeeID, Month: 6, Year: 2024, Incentive: 100,
	}))
	pdf, err := hrClient.Payroll().DownloadSlip(ctx, env.seeded.EmployeeID, "2024-06")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRouter_ValidationErrorEnvelope(t *testing.T) {
	env := newStubEnv(t)
	client := env.clientFor(t, "admin", "admin123")

	_, err := client.Attendance().Range(context.Background(), attendance.RangeQuery{StartDate: "2024-06-30", EndDate: "2024-06-01"})
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Detail)
}
