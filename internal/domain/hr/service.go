package hr

import "context"

// Repository is the remote HR API.
type Repository interface {
	List(ctx context.Context) ([]HR, error)
	ListByStatus(ctx context.Context, status Status) ([]HR, error)
	ListByAdmin(ctx context.Context, adminID string) ([]HR, error)
	Get(ctx context.Context, id string) (HR, error)
	Create(ctx context.Context, req CreateRequest) (HR, error)
	Update(ctx context.Context, id string, req UpdateRequest) (HR, error)
	Delete(ctx context.Context, id string) error
}

// HRService manages HR accounts on behalf of an administrator
type HRService interface {
	// Refresh reloads HRs: an admin sees the HRs they referred, others see all
	Refresh(ctx context.Context) ([]HR, error)

	ListByStatus(ctx context.Context, status Status) ([]HR, error)
	Get(ctx context.Context, id string) (HR, error)

	// Create registers an HR referred by the acting admin
	Create(ctx context.Context, req CreateRequest) (HR, error)

	Update(ctx context.Context, id string, req UpdateRequest) (HR, error)
	Delete(ctx context.Context, id string) error
}
