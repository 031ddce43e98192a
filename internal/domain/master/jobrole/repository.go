package jobrole

import "context"

// Repository is the remote job role API (/api/roles).
type Repository interface {
	List(ctx context.Context) ([]JobRole, error)
	Create(ctx context.Context, req UpsertRequest) (JobRole, error)
	Update(ctx context.Context, id string, req UpsertRequest) (JobRole, error)
	Delete(ctx context.Context, id string) error
}
