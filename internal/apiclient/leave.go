package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
)

type LeaveAPI struct{ c *Client }

var _ leave.Repository = (*LeaveAPI)(nil)

func (a *LeaveAPI) Apply(ctx context.Context, req leave.ApplyRequest) (leave.Leave, error) {
	var out leave.Leave
	err := a.c.sendJSON(ctx, "apply leave", http.MethodPost, "/api/leave/apply", nil, req, &out)
	return out, err
}

func (a *LeaveAPI) UpdateStatus(ctx context.Context, leaveID string, status leave.Status) (leave.Leave, error) {
	var out leave.Leave
	q := url.Values{"status": {string(status)}}
	err := a.c.sendJSON(ctx, "update leave status", http.MethodPut, "/api/leave/"+pathID(leaveID)+"/status", q, nil, &out)
	return out, err
}

func (a *LeaveAPI) ListByHR(ctx context.Context, hrID string) ([]leave.Leave, error) {
	var out []leave.Leave
	err := a.c.getJSON(ctx, "list leaves by HR", "/api/leave/hr/"+pathID(hrID), nil, &out)
	return out, err
}

func (a *LeaveAPI) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	var out []leave.Leave
	err := a.c.getJSON(ctx, "list leaves by employee", "/api/leave/employee/"+pathID(employeeID), nil, &out)
	return out, err
}
