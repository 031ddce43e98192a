package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
)

type LeaveServiceImpl struct {
	leave.Repository
	sessions session.Provider
	state    *store.Store
	now      func() time.Time
	logger   *slog.Logger
}

func NewLeaveService(repo leave.Repository, sessions session.Provider, state *store.Store, logger *slog.Logger) *LeaveServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaveServiceImpl{
		Repository: repo,
		sessions:   sessions,
		state:      state,
		now:        time.Now,
		logger:     logger,
	}
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)

// Refresh implements leave.LeaveService.
func (s *LeaveServiceImpl) Refresh(ctx context.Context) ([]leave.Leave, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}
	subjectID := sess.SubjectID()

	return s.state.Leaves.Load(ctx, func(ctx context.Context) ([]leave.Leave, error) {
		if user.HasPermission(sess.Role, user.PermissionLeaveViewAll) {
			return s.Repository.ListByHR(ctx, subjectID)
		}
		return s.Repository.ListByEmployee(ctx, subjectID)
	})
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.Leave, error) {
	sess, err := session.Authorize(s.sessions, user.PermissionLeaveCreate)
	if err != nil {
		return leave.Leave{}, err
	}
	if req.EmployeeID == "" {
		req.EmployeeID = sess.SubjectID()
	}
	if req.EmployeeID == "" {
		return leave.Leave{}, leave.ErrEmployeeRequired
	}

	req = req.WithDefaults(leave.Today(s.now()))
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}

	created, err := s.Repository.Apply(ctx, req)
	if err != nil {
		return leave.Leave{}, err
	}
	s.refreshAfterMutation(ctx, "apply")
	return created, nil
}

// Decide implements leave.LeaveService.
func (s *LeaveServiceImpl) Decide(ctx context.Context, leaveID string, decision leave.Status) (leave.Leave, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionLeaveApprove); err != nil {
		return leave.Leave{}, err
	}
	if decision != leave.StatusApproved && decision != leave.StatusRejected {
		return leave.Leave{}, leave.ErrInvalidDecision
	}
	for _, l := range s.state.Leaves.Items() {
		if l.ID.String() == leaveID && l.Decided() {
			return leave.Leave{}, leave.ErrLeaveRequestAlreadyProcessed
		}
	}

	updated, err := s.Repository.UpdateStatus(ctx, leaveID, decision)
	if err != nil {
		return leave.Leave{}, err
	}
	s.refreshAfterMutation(ctx, "decide")
	return updated, nil
}

// Stats implements leave.LeaveService.
func (s *LeaveServiceImpl) Stats() leave.Stats {
	return leave.Statistics(s.state.Leaves.Items())
}

func (s *LeaveServiceImpl) refreshAfterMutation(ctx context.Context, op string) {
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn("leave refresh failed", "after", op, "error", err)
	}
}
