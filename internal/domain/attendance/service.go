package attendance

import (
	"context"
	"time"
)

// Repository is the remote attendance API as seen by the dashboard.
type Repository interface {
	// ListBySubject returns the subject's records, narrowed by the backend to day when given
	ListBySubject(ctx context.Context, subjectID string, day string) ([]Record, error)

	// Mark creates a record for today with the given status
	Mark(ctx context.Context, subjectID string, status Status) (Record, error)

	// Update rewrites an existing record
	Update(ctx context.Context, recordID string, req UpdateRequest) (Record, error)

	// Summary returns status counts for the subject over the range
	Summary(ctx context.Context, subjectID string, q RangeQuery) (Summary, error)

	CheckIn(ctx context.Context, subjectID string, at ClockTime) (Record, error)
	CheckOut(ctx context.Context, subjectID string, at ClockTime) (Record, error)

	// Range returns every record across employees within the range
	Range(ctx context.Context, q RangeQuery) ([]Record, error)
}

// Tracker reconciles per-employee view state against the backend.
type Tracker interface {
	// EnsureTodayStatus loads the subject's record for day and overwrites its view state
	EnsureTodayStatus(ctx context.Context, subjectID string, day string) (ViewState, error)

	// SubmitStatus creates or updates the subject's record with the desired status
	SubmitStatus(ctx context.Context, subjectID string, desired Status) (ViewState, error)

	// RefreshSummary replaces the subject's summary snapshot
	RefreshSummary(ctx context.Context, subjectID string, q RangeQuery) (Summary, error)

	// TrackAll loads status and month-to-date summary for every subject concurrently
	TrackAll(ctx context.Context, subjects []Subject, day time.Time) []ViewState

	// Snapshot returns a copy of one subject's view state
	Snapshot(subjectID string) (ViewState, bool)

	// States returns copies of all view states ordered by name
	States() []ViewState

	// Close discards all state; responses arriving afterwards are dropped
	Close()
}

// AttendanceService is the Tracker plus the self-service and reporting calls.
type AttendanceService interface {
	Tracker

	// CheckIn records the subject's arrival time for today
	CheckIn(ctx context.Context, subjectID string) (Record, error)

	// CheckOut records the subject's departure time for today
	CheckOut(ctx context.Context, subjectID string) (Record, error)

	// Range lists records of every employee within the range
	Range(ctx context.Context, q RangeQuery) ([]Record, error)

	// Watch streams view state changes for one subject, or all subjects with "*"
	Watch(subjectID string) (<-chan ViewState, func())
}
