package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/apiclient"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
)

type AuthServiceImpl struct {
	auth.Repository
	sessions *session.Store
	state    *store.Store
	logger   *slog.Logger
}

func NewAuthService(repo auth.Repository, sessions *session.Store, state *store.Store, logger *slog.Logger) auth.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		Repository: repo,
		sessions:   sessions,
		state:      state,
		logger:     logger,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	resp, err := a.Repository.Login(ctx, req)
	if err != nil {
		if apiclient.StatusCode(err) == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, err)
		}
		return fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		return auth.ErrInvalidToken
	}

	details, err := a.Repository.UserDetails(ctx, resp.Token, req.Username)
	if err != nil {
		return fmt.Errorf("%w: %w", auth.ErrDetailsUnavailable, err)
	}

	role := resp.Role.Role
	if !role.Valid() {
		role = details.Role.Role
	}
	if !role.Valid() {
		return fmt.Errorf("%w: %q", auth.ErrRoleNotSupported, resp.Role.Raw)
	}

	username := details.Username
	if username == "" {
		username = req.Username
	}

	sess := session.Session{
		Token:             resp.Token,
		Role:              role,
		Username:          username,
		ID:                details.ID.String(),
		HRID:              details.HRID.String(),
		FullName:          details.FullName,
		EmployeeID:        details.EmployeeID.String(),
		ReferredByAdminID: details.ReferredByAdminID.String(),
	}
	if err := a.sessions.Save(sess); err != nil {
		return err
	}

	a.logger.Info("logged in", "username", username, "role", role)
	return nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout() error {
	if a.state != nil {
		a.state.Reset()
	}
	return a.sessions.Clear()
}
