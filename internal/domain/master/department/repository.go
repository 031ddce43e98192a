package department

import "context"

// Repository is the remote department API.
type Repository interface {
	List(ctx context.Context) ([]Department, error)
	Create(ctx context.Context, req UpsertRequest) (Department, error)
	Update(ctx context.Context, id string, req UpsertRequest) (Department, error)
	Delete(ctx context.Context, id string) error
}
