package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDecision              = errors.New("leave decision must be APPROVED or REJECTED")
	ErrEmployeeRequired             = errors.New("employee id is required to apply for leave")
)
