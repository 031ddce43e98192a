package employee

import "context"

// Repository is the remote employee API.
type Repository interface {
	List(ctx context.Context) ([]Employee, error)
	ListByHR(ctx context.Context, hrID string) ([]Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, req CreateRequest) (Employee, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Employee, error)
	Delete(ctx context.Context, id string) error
}

// EmployeeService exposes employee screens for the signed-in role
type EmployeeService interface {
	// Refresh reloads the employee collection visible to the acting role
	Refresh(ctx context.Context) ([]Employee, error)

	// ListAcrossAdminHRs collects employees of every HR referred by the acting admin
	ListAcrossAdminHRs(ctx context.Context) ([]Employee, error)

	// Get retrieves full details of one employee
	Get(ctx context.Context, id string) (Employee, error)

	// Create adds an employee and refreshes the collection
	Create(ctx context.Context, req CreateRequest) (Employee, error)

	// Update changes an employee and refreshes the collection
	Update(ctx context.Context, id string, req UpdateRequest) (Employee, error)

	// Delete removes an employee and refreshes the collection
	Delete(ctx context.Context, id string) error
}
