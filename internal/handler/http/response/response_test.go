package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Attendance marked", map[string]string{"id": "A1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Attendance marked", resp.Message)
	assert.Nil(t, resp.Error)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"duplicate mark", fmt.Errorf("mark: %w", attendance.ErrAlreadyMarked), http.StatusConflict, CodeConflict, "Attendance already marked for this date"},
		{"missing record", attendance.ErrAttendanceNotFound, http.StatusNotFound, CodeNotFound, "Attendance record not found"},
		{"decided leave", leave.ErrLeaveRequestAlreadyProcessed, http.StatusConflict, CodeConflict, "Leave request already processed"},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError, CodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}
}

func TestHandleError_Validation(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "endDate", Message: "endDate must not be before startDate"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "Validation failed", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "endDate must not be before startDate", resp.Error.Details["endDate"])
}

func TestBinary(t *testing.T) {
	rec := httptest.NewRecorder()
	Binary(rec, "application/pdf", "salary-slip-2024-06.pdf", []byte("%PDF-1.3"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "8", rec.Header().Get("Content-Length"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "salary-slip-2024-06.pdf")
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}
