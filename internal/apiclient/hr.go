package apiclient

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
)

type HRAPI struct{ c *Client }

var _ hr.Repository = (*HRAPI)(nil)

func (a *HRAPI) List(ctx context.Context) ([]hr.HR, error) {
	var out []hr.HR
	err := a.c.getJSON(ctx, "list HRs", "/api/hrs", nil, &out)
	return out, err
}

func (a *HRAPI) ListByStatus(ctx context.Context, status hr.Status) ([]hr.HR, error) {
	var out []hr.HR
	err := a.c.getJSON(ctx, "list HRs by status", "/api/hrs/by-status/"+pathID(string(status)), nil, &out)
	return out, err
}

func (a *HRAPI) ListByAdmin(ctx context.Context, adminID string) ([]hr.HR, error) {
	var out []hr.HR
	err := a.c.getJSON(ctx, "list HRs by admin", "/api/hrs/by-admin/"+pathID(adminID), nil, &out)
	return out, err
}

func (a *HRAPI) Get(ctx context.Context, id string) (hr.HR, error) {
	var out hr.HR
	err := a.c.getJSON(ctx, "get HR", "/api/hrs/"+pathID(id), nil, &out)
	return out, err
}

func (a *HRAPI) Create(ctx context.Context, req hr.CreateRequest) (hr.HR, error) {
	var out hr.HR
	err := a.c.sendJSON(ctx, "create HR", http.MethodPost, "/api/hrs", nil, req, &out)
	return out, err
}

func (a *HRAPI) Update(ctx context.Context, id string, req hr.UpdateRequest) (hr.HR, error) {
	var out hr.HR
	err := a.c.sendJSON(ctx, "update HR", http.MethodPut, "/api/hrs/"+pathID(id), nil, req, &out)
	return out, err
}

func (a *HRAPI) Delete(ctx context.Context, id string) error {
	return a.c.sendJSON(ctx, "delete HR", http.MethodDelete, "/api/hrs/"+pathID(id), nil, nil, nil)
}
