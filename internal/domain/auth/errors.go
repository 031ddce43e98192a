package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrDetailsUnavailable = errors.New("failed to fetch user details")
	ErrRoleNotSupported   = errors.New("role is not supported by the dashboard")
)
