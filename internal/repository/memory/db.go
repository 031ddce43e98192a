package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/master/jobrole"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	ID                string
	Username          string
	PasswordHash      []byte
	Role              user.Role
	FullName          string
	EmployeeID        string
	HRID              string
	ReferredByAdminID string
}

type slipKey struct {
	employeeID string
	period     string
}

type slip struct {
	EmployeeID string
	FullName   string
	Period     string
	Base       float64
	Earned     float64
	Incentive  float64
	Generated  time.Time
}

// DB is the stub backend's whole dataset. Every table is guarded by mu.
type DB struct {
	mu sync.RWMutex

	accounts    map[string]*account // keyed by username
	employees   []employee.Employee
	documents   map[string]map[string]string
	hrs         []hr.HR
	leaves      []leave.Leave
	departments []department.Department
	roles       []jobrole.JobRole
	records     []attendance.Record
	slips       map[slipKey]slip

	now        func() time.Time
	bcryptCost int
}

type Option func(*DB)

// WithClock fixes the notion of "today" used by mark and check-in.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// WithBcryptCost lowers hashing cost, mostly for tests.
func WithBcryptCost(cost int) Option {
	return func(db *DB) { db.bcryptCost = cost }
}

func NewDB(opts ...Option) *DB {
	db := &DB{
		accounts:   make(map[string]*account),
		documents:  make(map[string]map[string]string),
		slips:      make(map[slipKey]slip),
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *DB) newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (db *DB) today() string {
	return db.now().Format(validator.DateLayout)
}

// read and write run fn under the matching lock.
func (db *DB) read(fn func() error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn()
}

func (db *DB) write(fn func() error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn()
}

// addAccount must be called with mu held.
func (db *DB) addAccount(a account, password string) error {
	key := strings.ToLower(a.Username)
	if _, exists := db.accounts[key]; exists {
		return employee.ErrUsernameExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), db.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	a.ID = db.newID()
	a.PasswordHash = hash
	db.accounts[key] = &a
	return nil
}

func (db *DB) accountByUsername(username string) (*account, bool) {
	a, ok := db.accounts[strings.ToLower(strings.TrimSpace(username))]
	return a, ok
}

func (db *DB) employeeIndex(id string) int {
	for i, e := range db.employees {
		if e.ID.String() == id {
			return i
		}
	}
	return -1
}

func (db *DB) hrIndex(id string) int {
	for i, h := range db.hrs {
		if h.ID.String() == id {
			return i
		}
	}
	return -1
}

// Credentials of one seeded login.
type Credentials struct {
	Username string
	Password string
	FullName string
}

type SeedOptions struct {
	Admin    Credentials
	HR       Credentials
	Employee Credentials
}

// DefaultSeed is what hrstub starts with.
func DefaultSeed() SeedOptions {
	return SeedOptions{
		Admin:    Credentials{Username: "admin", Password: "admin123", FullName: "Ayu Admin"},
		HR:       Credentials{Username: "hr", Password: "hr123456", FullName: "Hana Rahma"},
		Employee: Credentials{Username: "employee", Password: "employee123", FullName: "Eko Prasetyo"},
	}
}

// Seeded reports the ids created by Seed.
type Seeded struct {
	AdminUserID    string
	HRID           string
	HRUserID       string
	EmployeeID     string
	EmployeeUserID string
}

// Seed creates one admin, one HR referred by that admin and one employee
// reporting to that HR, plus a department and a job role.
func (db *DB) Seed(ctx context.Context, opts SeedOptions) (Seeded, error) {
	var out Seeded
	err := db.write(func() error {
		if err := db.addAccount(account{Username: opts.Admin.Username, Role: user.RoleAdmin, FullName: opts.Admin.FullName}, opts.Admin.Password); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		admin, _ := db.accountByUsername(opts.Admin.Username)
		out.AdminUserID = admin.ID

		db.departments = append(db.departments, department.Department{ID: common.ID(db.newID()), Name: "Engineering", Description: "Product engineering"})
		db.roles = append(db.roles, jobrole.JobRole{ID: common.ID(db.newID()), Name: "Software Engineer"})

		joined := time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC).UnixMilli()
		h := hr.HR{
			ID:                common.ID(db.newID()),
			FullName:          opts.HR.FullName,
			Email:             opts.HR.Username + "@example.com",
			Department:        "People",
			ReferredByAdminID: common.ID(admin.ID),
			JoiningDate:       joined,
			Status:            hr.StatusActive,
			Username:          opts.HR.Username,
		}
		if err := db.addAccount(account{
			Username:          opts.HR.Username,
			Role:              user.RoleHR,
			FullName:          h.FullName,
			HRID:              h.ID.String(),
			ReferredByAdminID: admin.ID,
		}, opts.HR.Password); err != nil {
			return fmt.Errorf("seed HR: %w", err)
		}
		db.hrs = append(db.hrs, h)
		hrAccount, _ := db.accountByUsername(opts.HR.Username)
		out.HRID, out.HRUserID = h.ID.String(), hrAccount.ID

		e := employee.Employee{
			ID:          common.ID(db.newID()),
			FullName:    opts.Employee.FullName,
			Email:       opts.Employee.Username + "@example.com",
			Role:        common.Ref{Name: "Software Engineer"},
			Department:  common.Ref{Name: "Engineering"},
			JoiningDate: joined,
			Status:      "ACTIVE",
			Salary:      30000,
			HRID:        h.ID,
		}
		if err := db.addAccount(account{
			Username:   opts.Employee.Username,
			Role:       user.RoleEmployee,
			FullName:   e.FullName,
			EmployeeID: e.ID.String(),
			HRID:       h.ID.String(),
		}, opts.Employee.Password); err != nil {
			return fmt.Errorf("seed employee: %w", err)
		}
		db.employees = append(db.employees, e)
		empAccount, _ := db.accountByUsername(opts.Employee.Username)
		out.EmployeeID, out.EmployeeUserID = e.ID.String(), empAccount.ID
		return nil
	})
	return out, err
}
