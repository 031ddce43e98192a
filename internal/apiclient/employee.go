package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
)

type EmployeeAPI struct{ c *Client }

var _ employee.Repository = (*EmployeeAPI)(nil)

func (a *EmployeeAPI) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	err := a.c.getJSON(ctx, "list employees", "/api/employees", nil, &out)
	return out, err
}

func (a *EmployeeAPI) ListByHR(ctx context.Context, hrID string) ([]employee.Employee, error) {
	var out []employee.Employee
	err := a.c.getJSON(ctx, "list employees by HR", "/api/employees/by-hr/"+pathID(hrID), nil, &out)
	return out, err
}

func (a *EmployeeAPI) Get(ctx context.Context, id string) (employee.Employee, error) {
	var out employee.Employee
	err := a.c.getJSON(ctx, "get employee", "/api/employees/"+pathID(id), nil, &out)
	return out, err
}

// Create posts JSON, or multipart/form-data when credentials or documents
// are attached.
func (a *EmployeeAPI) Create(ctx context.Context, req employee.CreateRequest) (employee.Employee, error) {
	var out employee.Employee
	if !req.Multipart() {
		err := a.c.sendJSON(ctx, "create employee", http.MethodPost, "/api/employees", nil, req, &out)
		return out, err
	}

	body, contentType, err := multipartEmployee(req)
	if err != nil {
		return out, err
	}
	err = a.c.do(ctx, request{
		op:          "create employee",
		method:      http.MethodPost,
		path:        "/api/employees",
		body:        body,
		contentType: contentType,
	}, &out)
	return out, err
}

func (a *EmployeeAPI) Update(ctx context.Context, id string, req employee.UpdateRequest) (employee.Employee, error) {
	var out employee.Employee
	err := a.c.sendJSON(ctx, "update employee", http.MethodPut, "/api/employees/"+pathID(id), nil, req, &out)
	return out, err
}

func (a *EmployeeAPI) Delete(ctx context.Context, id string) error {
	return a.c.sendJSON(ctx, "delete employee", http.MethodDelete, "/api/employees/"+pathID(id), nil, nil, nil)
}

func multipartEmployee(req employee.CreateRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode employee: %w", err)
	}
	if err := mw.WriteField("employee", string(payload)); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("username", req.Username); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("password", req.Password); err != nil {
		return nil, "", err
	}
	if req.ReferenceID != "" {
		if err := mw.WriteField("referenceId", req.ReferenceID); err != nil {
			return nil, "", err
		}
	}

	fields := make([]string, 0, len(req.Documents))
	for field := range req.Documents {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if err := attachFile(mw, field, req.Documents[field]); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func attachFile(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", employee.ErrDocumentNotReadable, field, err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("%w: %s: %v", employee.ErrDocumentNotReadable, field, err)
	}
	return nil
}
