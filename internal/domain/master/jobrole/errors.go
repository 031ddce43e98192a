package jobrole

import "errors"

var (
	ErrJobRoleNotFound   = errors.New("job role not found")
	ErrJobRoleNameExists = errors.New("job role name already exists")
)
