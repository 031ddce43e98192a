package apiclient

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
)

type AuthAPI struct{ c *Client }

var _ auth.Repository = (*AuthAPI)(nil)

func (a *AuthAPI) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	var out auth.LoginResponse
	err := a.c.sendJSON(ctx, "login", http.MethodPost, "/api/users/login", nil, req, &out)
	return out, err
}

// UserDetails is called right after login, before the session is saved, so
// the fresh token is passed explicitly.
func (a *AuthAPI) UserDetails(ctx context.Context, token, username string) (user.Details, error) {
	var out user.Details
	err := a.c.do(ctx, request{
		op:     "user details",
		method: http.MethodGet,
		path:   "/api/users/details/" + pathID(username),
		token:  token,
	}, &out)
	return out, err
}
