package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	leaves  []leave.Leave
	applied []leave.ApplyRequest
	updates int
	calls   []string
}

func (f *fakeRepo) Apply(ctx context.Context, req leave.ApplyRequest) (leave.Leave, error) {
	f.applied = append(f.applied, req)
	l := leave.Leave{
		ID:          "L9",
		EmployeeID:  common.ID(req.EmployeeID),
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		Reason:      req.Reason,
		Status:      req.Status,
		RequestDate: req.RequestDate,
	}
	f.leaves = append(f.leaves, l)
	return l, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, leaveID string, status leave.Status) (leave.Leave, error) {
	f.updates++
	for i := range f.leaves {
		if f.leaves[i].ID.String() == leaveID {
			f.leaves[i].Status = status
			return f.leaves[i], nil
		}
	}
	return leave.Leave{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeRepo) ListByHR(ctx context.Context, hrID string) ([]leave.Leave, error) {
	f.calls = append(f.calls, "hr:"+hrID)
	return f.leaves, nil
}

func (f *fakeRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	f.calls = append(f.calls, "employee:"+employeeID)
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.EmployeeID.String() == employeeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func newService(repo *fakeRepo, sess session.Session) *LeaveServiceImpl {
	svc := NewLeaveService(repo, session.Fixed(sess), store.New(), nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 3, 10, 0, 0, 0, time.Local) }
	return svc
}

var (
	hrSession       = session.Session{Token: "t", Role: user.RoleHR, Username: "hana", ID: "7", HRID: "H1"}
	employeeSession = session.Session{Token: "t", Role: user.RoleEmployee, Username: "asha", ID: "9", EmployeeID: "E1"}
)

func TestRefresh_ByRole(t *testing.T) {
	repo := &fakeRepo{leaves: []leave.Leave{{ID: "L1", EmployeeID: "E1"}, {ID: "L2", EmployeeID: "E2"}}}

	list, err := newService(repo, hrSession).Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = newService(repo, employeeSession).Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.Equal(t, []string{"hr:H1", "employee:E1"}, repo.calls)
}

func TestApply_Defaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, employeeSession)

	created, err := svc.Apply(context.Background(), leave.ApplyRequest{
		FromDate: "2024-06-10",
		ToDate:   "2024-06-12",
		Reason:   "family event",
	})
	require.NoError(t, err)
	require.Len(t, repo.applied, 1)
	assert.Equal(t, "E1", repo.applied[0].EmployeeID)
	assert.Equal(t, leave.StatusPending, repo.applied[0].Status)
	assert.Equal(t, "2024-06-03", repo.applied[0].RequestDate)
	assert.Equal(t, 3, created.DurationDays())
	assert.Equal(t, 1, svc.Stats().Pending)
}

func TestApply_InvalidRangeIssuesNoRequest(t *testing.T) {
	repo := &fakeRepo{}
	_, err := newService(repo, employeeSession).Apply(context.Background(), leave.ApplyRequest{
		FromDate: "2024-06-12",
		ToDate:   "2024-06-10",
		Reason:   "oops",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.applied)
}

func TestDecide(t *testing.T) {
	repo := &fakeRepo{leaves: []leave.Leave{
		{ID: "L1", Status: leave.StatusPending},
		{ID: "L2", Status: leave.StatusApproved},
	}}
	svc := newService(repo, hrSession)
	ctx := context.Background()
	_, err := svc.Refresh(ctx)
	require.NoError(t, err)

	got, err := svc.Decide(ctx, "L1", leave.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)

	_, err = svc.Decide(ctx, "L2", leave.StatusRejected)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = svc.Decide(ctx, "L1", leave.StatusPending)
	assert.ErrorIs(t, err, leave.ErrInvalidDecision)
	assert.Equal(t, 1, repo.updates)

	stats := svc.Stats()
	assert.Equal(t, leave.Stats{Total: 2, Approved: 2}, stats)
}

func TestDecide_EmployeeCannotApprove(t *testing.T) {
	_, err := newService(&fakeRepo{}, employeeSession).Decide(context.Background(), "L1", leave.StatusApproved)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}
