package hr

import "errors"

var (
	ErrHRNotFound     = errors.New("HR not found")
	ErrInvalidStatus  = errors.New("HR status must be ACTIVE or INACTIVE")
	ErrUsernameExists = errors.New("username already taken")
)
