package apiclient

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/jobrole"
)

type DepartmentAPI struct{ c *Client }

var _ department.Repository = (*DepartmentAPI)(nil)

func (a *DepartmentAPI) List(ctx context.Context) ([]department.Department, error) {
	var out []department.Department
	err := a.c.getJSON(ctx, "list departments", "/api/departments", nil, &out)
	return out, err
}

func (a *DepartmentAPI) Create(ctx context.Context, req department.UpsertRequest) (department.Department, error) {
	var out department.Department
	err := a.c.sendJSON(ctx, "create department", http.MethodPost, "/api/departments", nil, req, &out)
	return out, err
}

func (a *DepartmentAPI) Update(ctx context.Context, id string, req department.UpsertRequest) (department.Department, error) {
	var out department.Department
	err := a.c.sendJSON(ctx, "update department", http.MethodPut, "/api/departments/"+pathID(id), nil, req, &out)
	return out, err
}

func (a *DepartmentAPI) Delete(ctx context.Context, id string) error {
	return a.c.sendJSON(ctx, "delete department", http.MethodDelete, "/api/departments/"+pathID(id), nil, nil, nil)
}

type JobRoleAPI struct{ c *Client }

var _ jobrole.Repository = (*JobRoleAPI)(nil)

func (a *JobRoleAPI) List(ctx context.Context) ([]jobrole.JobRole, error) {
	var out []jobrole.JobRole
	err := a.c.getJSON(ctx, "list roles", "/api/roles", nil, &out)
	return out, err
}

func (a *JobRoleAPI) Create(ctx context.Context, req jobrole.UpsertRequest) (jobrole.JobRole, error) {
	var out jobrole.JobRole
	err := a.c.sendJSON(ctx, "create role", http.MethodPost, "/api/roles", nil, req, &out)
	return out, err
}

func (a *JobRoleAPI) Update(ctx context.Context, id string, req jobrole.UpsertRequest) (jobrole.JobRole, error) {
	var out jobrole.JobRole
	err := a.c.sendJSON(ctx, "update role", http.MethodPut, "/api/roles/"+pathID(id), nil, req, &out)
	return out, err
}

func (a *JobRoleAPI) Delete(ctx context.Context, id string) error {
	return a.c.sendJSON(ctx, "delete role", http.MethodDelete, "/api/roles/"+pathID(id), nil, nil, nil)
}
