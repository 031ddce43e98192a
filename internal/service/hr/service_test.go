package hr

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	hrs     []hr.HR
	created []hr.CreateRequest
	calls   []string
}

func (f *fakeRepo) List(ctx context.Context) ([]hr.HR, error) {
	f.calls = append(f.calls, "list")
	return f.hrs, nil
}

func (f *fakeRepo) ListByStatus(ctx context.Context, status hr.Status) ([]hr.HR, error) {
	f.calls = append(f.calls, "status:"+string(status))
	var out []hr.HR
	for _, h := range f.hrs {
		if h.Status == status {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByAdmin(ctx context.Context, adminID string) ([]hr.HR, error) {
	f.calls = append(f.calls, "admin:"+adminID)
	var out []hr.HR
	for _, h := range f.hrs {
		if h.ReferredByAdminID.String() == adminID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (hr.HR, error) {
	for _, h := range f.hrs {
		if h.ID.String() == id {
			return h, nil
		}
	}
	return hr.HR{}, hr.ErrHRNotFound
}

func (f *fakeRepo) Create(ctx context.Context, req hr.CreateRequest) (hr.HR, error) {
	f.created = append(f.created, req)
	h := hr.HR{ID: "H9", FullName: req.FullName, Status: req.Status}
	h.ReferredByAdminID = "A1"
	f.hrs = append(f.hrs, h)
	return h, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, req hr.UpdateRequest) (hr.HR, error) {
	return f.Get(ctx, id)
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error { return nil }

func admin(id string) session.Provider {
	return session.Fixed{Token: "t", Role: user.RoleAdmin, Username: "root", ID: id}
}

func TestRefresh_AdminSeesReferredHRs(t *testing.T) {
	repo := &fakeRepo{hrs: []hr.HR{
		{ID: "H1", ReferredByAdminID: "A1"},
		{ID: "H2", ReferredByAdminID: "A2"},
	}}
	st := store.New()

	list, err := NewHRService(repo, admin("A1"), st, nil).Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "H1", list[0].ID.String())
	assert.Equal(t, []string{"admin:A1"}, repo.calls)
	assert.Equal(t, 1, st.HRs.Len())
}

func TestRefresh_HRRoleDenied(t *testing.T) {
	sess := session.Fixed{Token: "t", Role: user.RoleHR, Username: "h", ID: "7"}
	_, err := NewHRService(&fakeRepo{}, sess, store.New(), nil).Refresh(context.Background())
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestCreate_DefaultsAndReferral(t *testing.T) {
	repo := &fakeRepo{}
	st := store.New()
	svc := NewHRService(repo, admin("A1"), st, nil)

	created, err := svc.Create(context.Background(), hr.CreateRequest{
		FullName:          "Hana",
		Email:             "hana@example.com",
		Department:        "People",
		Username:          "hana",
		Password:          "secret1",
		ReferredByAdminID: "someone-else",
	})
	require.NoError(t, err)
	assert.Equal(t, hr.StatusActive, created.Status)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "A1", repo.created[0].ReferredByAdminID)
	assert.Equal(t, hr.StatusActive, repo.created[0].Status)
	assert.Equal(t, 1, st.HRs.Len())
}

func TestCreate_ValidationBlocksRequest(t *testing.T) {
	repo := &fakeRepo{}
	_, err := NewHRService(repo, admin("A1"), store.New(), nil).Create(context.Background(), hr.CreateRequest{FullName: "x"})
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestListByStatus_RejectsUnknown(t *testing.T) {
	repo := &fakeRepo{hrs: []hr.HR{{ID: "H1", Status: hr.StatusInactive}}}
	svc := NewHRService(repo, admin("A1"), store.New(), nil)

	list, err := svc.ListByStatus(context.Background(), "inactive")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListByStatus(context.Background(), "retired")
	assert.ErrorIs(t, err, hr.ErrInvalidStatus)
}
