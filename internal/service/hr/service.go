package hr

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
)

type HRServiceImpl struct {
	hr.Repository
	sessions session.Provider
	state    *store.Store
	logger   *slog.Logger
}

func NewHRService(repo hr.Repository, sessions session.Provider, state *store.Store, logger *slog.Logger) hr.HRService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HRServiceImpl{
		Repository: repo,
		sessions:   sessions,
		state:      state,
		logger:     logger,
	}
}

// Refresh implements hr.HRService.
func (s *HRServiceImpl) Refresh(ctx context.Context) ([]hr.HR, error) {
	sess, err := session.Authorize(s.sessions, user.PermissionHRView)
	if err != nil {
		return nil, err
	}
	return s.state.HRs.Load(ctx, func(ctx context.Context) ([]hr.HR, error) {
		if sess.Role.IsAdmin() {
			return s.Repository.ListByAdmin(ctx, sess.ActingUserID())
		}
		return s.Repository.List(ctx)
	})
}

// ListByStatus implements hr.HRService.
func (s *HRServiceImpl) ListByStatus(ctx context.Context, status hr.Status) ([]hr.HR, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionHRView); err != nil {
		return nil, err
	}
	st, err := hr.ParseStatus(string(status))
	if err != nil {
		return nil, err
	}
	return s.Repository.ListByStatus(ctx, st)
}

// Get implements hr.HRService.
func (s *HRServiceImpl) Get(ctx context.Context, id string) (hr.HR, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionHRView); err != nil {
		return hr.HR{}, err
	}
	return s.Repository.Get(ctx, id)
}

// Create implements hr.HRService.
func (s *HRServiceImpl) Create(ctx context.Context, req hr.CreateRequest) (hr.HR, error) {
	sess, err := session.Authorize(s.sessions, user.PermissionHRManage)
	if err != nil {
		return hr.HR{}, err
	}
	req.ReferredByAdminID = sess.ActingUserID()
	if req.Status, err = hr.ParseStatus(string(req.Status)); err != nil {
		return hr.HR{}, err
	}
	if err := req.Validate(); err != nil {
		return hr.HR{}, err
	}

	created, err := s.Repository.Create(ctx, req)
	if err != nil {
		return hr.HR{}, err
	}
	s.refreshAfterMutation(ctx, "create")
	return created, nil
}

// Update implements hr.HRService.
func (s *HRServiceImpl) Update(ctx context.Context, id string, req hr.UpdateRequest) (hr.HR, error) {
	if _, err := session.Authorize(s.sessions, user.PermissionHRManage); err != nil {
		return hr.HR{}, err
	}
	if err := req.Validate(); err != nil {
		return hr.HR{}, err
	}

	updated, err := s.Repository.Update(ctx, id, req)
	if err != nil {
		return hr.HR{}, err
	}
	s.refreshAfterMutation(ctx, "update")
	return updated, nil
}

// Delete implements hr.HRService.
func (s *HRServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := session.Authorize(s.sessions, user.PermissionHRManage); err != nil {
		return err
	}
	if err := s.Repository.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshAfterMutation(ctx, "delete")
	return nil
}

func (s *HRServiceImpl) refreshAfterMutation(ctx context.Context, op string) {
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn("HR refresh failed", "after", op, "error", err)
	}
}
