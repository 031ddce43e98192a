package leave

import "context"

// Repository is the remote leave API.
type Repository interface {
	Apply(ctx context.Context, req ApplyRequest) (Leave, error)
	UpdateStatus(ctx context.Context, leaveID string, status Status) (Leave, error)
	ListByHR(ctx context.Context, hrID string) ([]Leave, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
}

// LeaveService drives the leave screens for the signed-in role
type LeaveService interface {
	// Refresh reloads leaves: managers see their HR queue, employees their own requests
	Refresh(ctx context.Context) ([]Leave, error)

	// Apply submits a request for the acting employee and refreshes
	Apply(ctx context.Context, req ApplyRequest) (Leave, error)

	// Decide approves or rejects a pending request and refreshes
	Decide(ctx context.Context, leaveID string, decision Status) (Leave, error)

	// Stats summarises the last refreshed list
	Stats() Stats
}
