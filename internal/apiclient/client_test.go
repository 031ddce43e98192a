package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, WithTokenSource(StaticToken("tok-123")))
}

func TestClient_RawBodyIsWrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/attendance/E1/report", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"A1","employeeId":"E1","date":"2024-06-01","status":"PRESENT"}]`))
	})

	records, err := c.Attendance().ListBySubject(context.Background(), "E1", "2024-06-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)
}

func TestClient_EnvelopeIsUnwrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"id":"A9","employeeId":"E1","date":"2024-06-01","status":"LEAVE"}}`))
	})

	rec, err := c.Attendance().Mark(context.Background(), "E1", attendance.StatusLeave)
	require.NoError(t, err)
	assert.Equal(t, "A9", rec.ID.String())
}

func TestClient_ApplicationFailureSurfacesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Employee is on approved leave"}`))
	})

	_, err := c.Attendance().Mark(context.Background(), "E1", attendance.StatusPresent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrApplication))
	assert.False(t, errors.Is(err, ErrTransport))
	assert.Equal(t, "Employee is on approved leave", err.Error())
}

func TestClient_ApplicationFailureUsesErrorDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"CONFLICT","message":"already marked"}}`))
	})

	_, err := c.Attendance().Mark(context.Background(), "E1", attendance.StatusPresent)
	assert.EqualError(t, err, "already marked")
}

func TestClient_Non2xxIsGenericTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"CONFLICT","message":"duplicate"}}`))
	})

	_, err := c.Attendance().Mark(context.Background(), "E1", attendance.StatusPresent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Equal(t, "HTTP error! status: 409", err.Error())
	assert.Equal(t, http.StatusConflict, StatusCode(err))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "duplicate", apiErr.Detail)
}

func TestClient_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL)

	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Equal(t, 0, StatusCode(err))
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"token":"t","role":{"name":"hr"}}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Auth().Login(context.Background(), auth.LoginRequest{Username: "h", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleHR, resp.Role.Role)
}

func TestAttendanceAPI_UpdateSendsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/attendance/A1", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"status": "LEAVE", "date": "2024-06-01", "employeeId": "E1"}, body)
		_, _ = w.Write([]byte(`{"id":"A1","employeeId":"E1","date":"2024-06-01","status":"LEAVE"}`))
	})

	rec, err := c.Attendance().Update(context.Background(), "A1", attendance.UpdateRequest{
		Status: attendance.StatusLeave, Date: "2024-06-01", EmployeeID: "E1",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLeave, rec.Status)
}

func TestAttendanceAPI_CheckInQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "9", q.Get("hour"))
		assert.Equal(t, "5", q.Get("minute"))
		assert.Equal(t, "0", q.Get("nano"))
		_, _ = w.Write([]byte(`{"id":"A1","employeeId":"E1","date":"2024-06-01","status":"PRESENT","checkInTime":{"hour":9,"minute":5,"second":0,"nano":0}}`))
	})

	rec, err := c.Attendance().CheckIn(context.Background(), "E1", attendance.ClockTime{Hour: 9, Minute: 5})
	require.NoError(t, err)
	require.NotNil(t, rec.CheckInTime)
	assert.Equal(t, "09:05:00", rec.CheckInTime.String())
}

func TestPayrollAPI_SalaryScalarAndDownload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/attendance/E1/salary":
			_, _ = w.Write([]byte(`41250.5`))
		case "/api/salaryslip/download/E1":
			assert.Equal(t, "2024-05", r.URL.Query().Get("month"))
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4 test"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	amount, err := c.Payroll().Salary(context.Background(), payroll.SalaryQuery{EmployeeID: "E1", Month: 5, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 41250.5, amount)

	pdf, err := c.Payroll().DownloadSlip(context.Background(), "E1", payroll.Period("2024-05"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(pdf))
}

func TestEmployeeAPI_CreateMultipart(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(doc, []byte("resume-bytes"), 0o600))

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "asha", r.FormValue("username"))
		assert.Equal(t, "REF-1", r.FormValue("referenceId"))

		var e employee.CreateRequest
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("employee")), &e))
		assert.Equal(t, "Asha", e.FullName)

		f, hdr, err := r.FormFile("resume")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "cv.pdf", hdr.Filename)
		assert.Equal(t, "resume-bytes", string(data))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"fullName":"Asha","email":"a@example.com"}`))
	})

	created, err := c.Employees().Create(context.Background(), employee.CreateRequest{
		FullName:    "Asha",
		Email:       "a@example.com",
		Username:    "asha",
		Password:    "secret1",
		ReferenceID: "REF-1",
		Documents:   map[string]string{employee.DocResume: doc},
	})
	require.NoError(t, err)
	assert.Equal(t, "7", created.ID.String())
}

func TestEmployeeAPI_CreateMissingDocument(t *testing.T) {
	c := New("http://127.0.0.1:0")
	_, err := c.Employees().Create(context.Background(), employee.CreateRequest{
		Username:  "asha",
		Documents: map[string]string{employee.DocResume: filepath.Join(t.TempDir(), "missing.pdf")},
	})
	assert.ErrorIs(t, err, employee.ErrDocumentNotReadable)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil, "fallback"))
	assert.Equal(t, "HTTP error! status: 500", Message(httpStatusError("x", 500, ""), "fallback"))
	assert.Equal(t, "boom", Message(errors.New("boom"), "fallback"))
}
