package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Report(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Range(w http.ResponseWriter, r *http.Request)
	Salary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceRepo attendance.Repository
	payrollRepo    payroll.Repository
}

func NewAttendanceHandler(attendanceRepo attendance.Repository, payrollRepo payroll.Repository) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceRepo: attendanceRepo,
		payrollRepo:    payrollRepo,
	}
}

// Report implements AttendanceHandler.
func (h *attendanceHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceRepo.ListBySubject(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	status, err := attendance.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	record, err := h.attendanceRepo.Mark(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance marked", record)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceRepo.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated", record)
}

func rangeQuery(r *http.Request) attendance.RangeQuery {
	return attendance.RangeQuery{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.attendanceRepo.Summary(r.Context(), chi.URLParam(r, "id"), rangeQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// clockTime reads hour, minute, second and nano query parameters.
func clockTime(r *http.Request) (attendance.ClockTime, bool) {
	var parts [4]int
	for i, key := range []string{"hour", "minute", "second", "nano"} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return attendance.ClockTime{}, false
		}
		parts[i] = v
	}
	if parts[0] > 23 || parts[1] > 59 || parts[2] > 59 {
		return attendance.ClockTime{}, false
	}
	return attendance.ClockTime{Hour: parts[0], Minute: parts[1], Second: parts[2], Nano: parts[3]}, true
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	at, ok := clockTime(r)
	if !ok {
		response.BadRequest(w, "Invalid time of day", nil)
		return
	}
	record, err := h.attendanceRepo.CheckIn(r.Context(), chi.URLParam(r, "id"), at)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Check in successful", record)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	at, ok := clockTime(r)
	if !ok {
		response.BadRequest(w, "Invalid time of day", nil)
		return
	}
	record, err := h.attendanceRepo.CheckOut(r.Context(), chi.URLParam(r, "id"), at)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Check out successful", record)
}

// Range implements AttendanceHandler.
func (h *attendanceHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceRepo.Range(r.Context(), rangeQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// Salary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Salary(w http.ResponseWriter, r *http.Request) {
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	if errMonth != nil || errYear != nil {
		response.BadRequest(w, "month and year must be numbers", nil)
		return
	}

	amount, err := h.payrollRepo.Salary(r.Context(), payroll.SalaryQuery{
		EmployeeID: chi.URLParam(r, "id"),
		Month:      month,
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, amount)
}
