package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmailExists         = errors.New("email already registered")
	ErrUsernameExists      = errors.New("username already taken")
	ErrUnknownDocument     = errors.New("unknown document field")
	ErrDocumentNotReadable = errors.New("document file cannot be read")
	ErrNoHRAssigned        = errors.New("no HR assigned to the acting user")
)
