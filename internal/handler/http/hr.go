package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HRHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByStatus(w http.ResponseWriter, r *http.Request)
	ListByAdmin(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type hrHandlerImpl struct {
	hrRepo hr.Repository
}

func NewHRHandler(hrRepo hr.Repository) HRHandler {
	return &hrHandlerImpl{hrRepo: hrRepo}
}

func (h *hrHandlerImpl) writeList(w http.ResponseWriter, list []hr.HR, err error) {
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// List implements HRHandler.
func (h *hrHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.hrRepo.List(r.Context())
	h.writeList(w, list, err)
}

// ListByStatus implements HRHandler.
func (h *hrHandlerImpl) ListByStatus(w http.ResponseWriter, r *http.Request) {
	list, err := h.hrRepo.ListByStatus(r.Context(), hr.Status(chi.URLParam(r, "status")))
	h.writeList(w, list, err)
}

// ListByAdmin implements HRHandler.
func (h *hrHandlerImpl) ListByAdmin(w http.ResponseWriter, r *http.Request) {
	list, err := h.hrRepo.ListByAdmin(r.Context(), chi.URLParam(r, "adminId"))
	h.writeList(w, list, err)
}

// Get implements HRHandler.
func (h *hrHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.hrRepo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Create implements HRHandler.
func (h *hrHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req hr.CreateRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create HR decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.hrRepo.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "HR created successfully", created)
}

// Update implements HRHandler.
func (h *hrHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req hr.UpdateRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update HR decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.hrRepo.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "HR updated successfully", updated)
}

// Delete implements HRHandler.
func (h *hrHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.hrRepo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "HR deleted successfully", nil)
}
