package auth

import (
	"context"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
)

// Repository is the remote authentication API.
type Repository interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	UserDetails(ctx context.Context, token, username string) (user.Details, error)
}

// AuthService manages the dashboard session lifecycle
type AuthService interface {
	// Login authenticates, loads the profile and persists the session
	Login(ctx context.Context, req LoginRequest) error

	// Logout clears every session field
	Logout() error
}
