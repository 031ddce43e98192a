package attendance

import "errors"

// Attendance domain errors
var (
	// Submission preconditions
	ErrMissingActingUser = errors.New("missing acting user id")
	ErrInvalidStatus     = errors.New("invalid attendance status")
	ErrNotSubmittable    = errors.New("status cannot be submitted")
	ErrNotLoaded         = errors.New("attendance has not been loaded for this employee")
	ErrSubmitInFlight    = errors.New("an attendance submission is already in progress for this employee")
	ErrSubjectRequired   = errors.New("employee id is required")

	// Remote outcomes
	ErrCreateFailed  = errors.New("failed to mark attendance")
	ErrUpdateFailed  = errors.New("failed to update attendance")
	ErrFetchFailed   = errors.New("failed to fetch attendance")
	ErrSummaryFailed = errors.New("failed to fetch attendance summary")

	// Stub backend
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyMarked      = errors.New("attendance already marked for this date")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrNotCheckedIn       = errors.New("not checked in yet")
	ErrAlreadyCheckedOut  = errors.New("already checked out")

	ErrClosed     = errors.New("attendance tracker is closed")
	ErrSuperseded = errors.New("attendance response superseded by a newer request")
)
