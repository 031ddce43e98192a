package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
)

// Pinger is satisfied by the API client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SubjectsFunc lists the employees shown on the attendance board.
type SubjectsFunc func(ctx context.Context) ([]attendance.Subject, error)

type DashboardJobs struct {
	pinger   Pinger
	tracker  attendance.Tracker
	subjects SubjectsFunc
	now      func() time.Time
	logger   *slog.Logger
}

func NewDashboardJobs(pinger Pinger, tracker attendance.Tracker, subjects SubjectsFunc, logger *slog.Logger) *DashboardJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardJobs{
		pinger:   pinger,
		tracker:  tracker,
		subjects: subjects,
		now:      time.Now,
		logger:   logger,
	}
}

// RegisterJobs adds the keep-alive ping and, when a tracker is configured,
// the attendance board refresh.
func (j *DashboardJobs) RegisterJobs(scheduler *Scheduler, pingEvery, refreshEvery time.Duration) {
	if j.pinger != nil {
		scheduler.AddJob("backend_keep_alive", pingEvery, j.KeepAlive)
	}
	if j.tracker != nil && j.subjects != nil {
		scheduler.AddJob("attendance_board_refresh", refreshEvery, j.RefreshBoard)
	}
}

// KeepAlive pings the backend so an idle hosted instance does not sleep.
func (j *DashboardJobs) KeepAlive(ctx context.Context) error {
	if err := j.pinger.Ping(ctx); err != nil {
		return fmt.Errorf("keep-alive ping failed: %w", err)
	}
	return nil
}

// RefreshBoard reloads today's status and month-to-date summary for every
// subject. Per-subject failures stay in each view state.
func (j *DashboardJobs) RefreshBoard(ctx context.Context) error {
	subjects, err := j.subjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list board subjects: %w", err)
	}

	states := j.tracker.TrackAll(ctx, subjects, j.now())
	failed := 0
	for _, st := range states {
		if st.Error != "" {
			failed++
		}
	}
	j.logger.Debug("Attendance board refreshed", "subjects", len(subjects), "failed", failed)
	return nil
}
