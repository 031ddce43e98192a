package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	ListByHR(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveRepo leave.Repository
}

func NewLeaveHandler(leaveRepo leave.Repository) LeaveHandler {
	return &LeaveHandlerImpl{leaveRepo: leaveRepo}
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveRepo.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", created)
}

// UpdateStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	status, err := leave.ParseDecision(r.URL.Query().Get("status"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := l.leaveRepo.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request "+string(updated.Status), updated)
}

// ListByHR implements LeaveHandler.
func (l *LeaveHandlerImpl) ListByHR(w http.ResponseWriter, r *http.Request) {
	list, err := l.leaveRepo.ListByHR(r.Context(), chi.URLParam(r, "hrId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// ListByEmployee implements LeaveHandler.
func (l *LeaveHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	list, err := l.leaveRepo.ListByEmployee(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}
