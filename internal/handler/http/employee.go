package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadSize = 32 << 20

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	ListByHR(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeRepo employee.Repository
	files        storage.FileStorage
}

func NewEmployeeHandler(employeeRepo employee.Repository, files storage.FileStorage) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeRepo: employeeRepo,
		files:        files,
	}
}

// ListEmployees implements EmployeeHandler.
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.employeeRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// ListByHR implements EmployeeHandler.
func (h *employeeHandlerImpl) ListByHR(w http.ResponseWriter, r *http.Request) {
	list, err := h.employeeRepo.ListByHR(r.Context(), chi.URLParam(r, "hrId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// GetEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.employeeRepo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, e)
}

// CreateEmployee implements EmployeeHandler. Accepts a JSON body, or a
// multipart form with an "employee" JSON part, credentials and documents.
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}
		dataJSON := r.FormValue("employee")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'employee' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal employee part", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
		req.ReferenceID = r.FormValue("referenceId")

		docs, err := h.storeDocuments(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		req.Documents = docs
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.employeeRepo.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created successfully", created)
}

// storeDocuments saves every uploaded document under a per-request folder.
func (h *employeeHandlerImpl) storeDocuments(r *http.Request) (map[string]string, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		return nil, nil
	}
	folder := uuid.NewString()
	docs := make(map[string]string, len(r.MultipartForm.File))
	for field, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		if !validator.IsInSlice(field, employee.DocumentFields) {
			return nil, fmt.Errorf("%w: %s", employee.ErrUnknownDocument, field)
		}
		f, err := headers[0].Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", field, err)
		}
		name := filepath.ToSlash(filepath.Join("documents", folder, field+filepath.Ext(headers[0].Filename)))
		path, err := h.files.Save(r.Context(), f, name)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", field, err)
		}
		docs[field] = path
	}
	return docs, nil
}

// UpdateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.employeeRepo.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// DeleteEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeRepo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
