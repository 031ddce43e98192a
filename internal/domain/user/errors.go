package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUnrecognizedRole        = errors.New("unrecognized role")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrManagerAccessRequired   = errors.New("admin or HR access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
