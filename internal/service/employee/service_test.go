package employee

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployees struct {
	mu      sync.Mutex
	all     []employee.Employee
	calls   []string
	created []employee.CreateRequest
}

func (f *fakeEmployees) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeEmployees) List(ctx context.Context) ([]employee.Employee, error) {
	f.record("list")
	return f.all, nil
}

func (f *fakeEmployees) ListByHR(ctx context.Context, hrID string) ([]employee.Employee, error) {
	f.record("by-hr:" + hrID)
	var out []employee.Employee
	for _, e := range f.all {
		if e.HRID.String() == hrID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployees) Get(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.all {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployees) Create(ctx context.Context, req employee.CreateRequest) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	e := employee.Employee{ID: "new", FullName: req.FullName, HRID: common.ID(req.HRID)}
	f.all = append(f.all, e)
	return e, nil
}

func (f *fakeEmployees) Update(ctx context.Context, id string, req employee.UpdateRequest) (employee.Employee, error) {
	return employee.Employee{ID: common.ID(id)}, nil
}

func (f *fakeEmployees) Delete(ctx context.Context, id string) error {
	return errors.New("HTTP error! status: 404")
}

type fakeHRs struct {
	byAdmin map[string][]hr.HR
}

func (f *fakeHRs) List(ctx context.Context) ([]hr.HR, error) { return nil, nil }
func (f *fakeHRs) ListByStatus(ctx context.Context, status hr.Status) ([]hr.HR, error) {
	return nil, nil
}
func (f *fakeHRs) ListByAdmin(ctx context.Context, adminID string) ([]hr.HR, error) {
	return f.byAdmin[adminID], nil
}
func (f *fakeHRs) Get(ctx context.Context, id string) (hr.HR, error) { return hr.HR{}, nil }
func (f *fakeHRs) Create(ctx context.Context, req hr.CreateRequest) (hr.HR, error) {
	return hr.HR{}, nil
}
func (f *fakeHRs) Update(ctx context.Context, id string, req hr.UpdateRequest) (hr.HR, error) {
	return hr.HR{}, nil
}
func (f *fakeHRs) Delete(ctx context.Context, id string) error { return nil }

func roster() []employee.Employee {
	return []employee.Employee{
		{ID: "E1", FullName: "Asha", HRID: "H1", Salary: 1000},
		{ID: "E2", FullName: "Budi", HRID: "H1", Salary: 3000},
		{ID: "E3", FullName: "Citra", HRID: "H2"},
		{ID: "E4", FullName: "Dewi", HRID: "H9"},
	}
}

func sessionFor(role user.Role, id, hrID, employeeID string) session.Provider {
	return session.Fixed{Token: "tok", Role: role, Username: "u", ID: id, HRID: hrID, EmployeeID: employeeID}
}

func TestRefresh_ByRole(t *testing.T) {
	ctx := context.Background()

	t.Run("admin lists everything", func(t *testing.T) {
		repo := &fakeEmployees{all: roster()}
		st := store.New()
		list, err := NewEmployeeService(repo, &fakeHRs{}, sessionFor(user.RoleAdmin, "A1", "", ""), st, nil).Refresh(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 4)
		assert.Equal(t, 4, st.Employees.Len())
	})

	t.Run("hr lists own employees", func(t *testing.T) {
		repo := &fakeEmployees{all: roster()}
		list, err := NewEmployeeService(repo, &fakeHRs{}, sessionFor(user.RoleHR, "7", "H1", ""), store.New(), nil).Refresh(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
		assert.Equal(t, []string{"by-hr:H1"}, repo.calls)
	})

	t.Run("employee sees team", func(t *testing.T) {
		repo := &fakeEmployees{all: roster()}
		list, err := NewEmployeeService(repo, &fakeHRs{}, sessionFor(user.RoleEmployee, "9", "", "E3"), store.New(), nil).Refresh(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Citra", list[0].FullName)
	})

	t.Run("no session", func(t *testing.T) {
		_, err := NewEmployeeService(&fakeEmployees{}, &fakeHRs{}, session.Fixed{}, store.New(), nil).Refresh(ctx)
		assert.ErrorIs(t, err, session.ErrNoSession)
	})
}

func TestListAcrossAdminHRs(t *testing.T) {
	repo := &fakeEmployees{all: append(roster(), employee.Employee{ID: "E1", FullName: "Asha", HRID: "H2"})}
	hrs := &fakeHRs{byAdmin: map[string][]hr.HR{"A1": {{ID: "H1"}, {ID: "H2"}}}}
	svc := NewEmployeeService(repo, hrs, sessionFor(user.RoleAdmin, "A1", "", ""), store.New(), nil)

	list, err := svc.ListAcrossAdminHRs(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID.String())
	}
	assert.ElementsMatch(t, []string{"E1", "E2", "E3"}, ids)

	_, err = NewEmployeeService(repo, hrs, sessionFor(user.RoleHR, "7", "H1", ""), store.New(), nil).ListAcrossAdminHRs(context.Background())
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestCreate_AssignsHRAndRefreshes(t *testing.T) {
	repo := &fakeEmployees{all: roster()}
	st := store.New()
	svc := NewEmployeeService(repo, &fakeHRs{}, sessionFor(user.RoleHR, "7", "H1", ""), st, nil)

	created, err := svc.Create(context.Background(), employee.CreateRequest{
		FullName:   "Eka",
		Email:      "eka@example.com",
		Role:       "Engineer",
		Department: "Engineering",
	})
	require.NoError(t, err)
	assert.Equal(t, "Eka", created.FullName)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "H1", repo.created[0].HRID)
	assert.Equal(t, 3, st.Employees.Len())
}

func TestMutations_RequireManagePermission(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployees{}, &fakeHRs{}, sessionFor(user.RoleEmployee, "9", "", "E1"), store.New(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, employee.CreateRequest{FullName: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	err = svc.Delete(ctx, "E1")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestGet_EmployeeOnlySeesSelf(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployees{all: roster()}, &fakeHRs{}, sessionFor(user.RoleEmployee, "9", "", "E1"), store.New(), nil)

	e, err := svc.Get(context.Background(), "E1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", e.FullName)

	_, err = svc.Get(context.Background(), "E2")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestDelete_SurfacesBackendError(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployees{}, &fakeHRs{}, sessionFor(user.RoleAdmin, "A1", "", ""), store.New(), nil)
	err := svc.Delete(context.Background(), "E1")
	assert.EqualError(t, err, "HTTP error! status: 404")
}
