package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/apiclient"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/hr"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/pubsub"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	attendanceService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/employee"
	hrService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/hr"
	leaveService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/leave"
	masterService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/master"
	payrollService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/session"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
)

// AppOptions carries everything NewApp needs to wire the dashboard.
type AppOptions struct {
	BaseURL         string
	Timeout         time.Duration
	SessionFile     string
	ExportDir       string
	Concurrency     int
	PingInterval    time.Duration
	RefreshInterval time.Duration
	Logger          *slog.Logger
	Now             func() time.Time
}

// OptionsFromConfig maps the loaded configuration onto AppOptions.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) AppOptions {
	return AppOptions{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.API.Timeout,
		SessionFile:     cfg.Session.File,
		ExportDir:       cfg.Export.Dir,
		Concurrency:     cfg.Tracker.Concurrency,
		PingInterval:    cfg.Tracker.PingInterval,
		RefreshInterval: cfg.Tracker.RefreshInterval,
		Logger:          logger,
	}
}

// App is the wired dashboard shared by every command.
type App struct {
	Sessions *session.Store
	Client   *apiclient.Client
	State    *store.Store
	Files    storage.FileStorage
	Hub      *pubsub.Hub
	Logger   *slog.Logger

	Auth       auth.AuthService
	Employees  employee.EmployeeService
	HRs        hr.HRService
	Leaves     leave.LeaveService
	Master     masterService.MasterService
	Payroll    payroll.PayrollService
	Attendance *attendanceService.AttendanceServiceImpl
	Dashboard  dashboard.DashboardService

	PingInterval    time.Duration
	RefreshInterval time.Duration
	Now             func() time.Time
}

func NewApp(opts AppOptions) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sessions := session.NewStore(opts.SessionFile)
	if err := sessions.Init(); err != nil {
		if !errors.Is(err, session.ErrSessionExpired) {
			return nil, err
		}
		logger.Warn("Stored session has expired, clearing it")
		if err := sessions.Clear(); err != nil {
			return nil, err
		}
	}

	files, err := storage.NewLocalStorage(opts.ExportDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare export directory: %w", err)
	}

	clientOpts := []apiclient.Option{
		apiclient.WithTokenSource(sessions),
		apiclient.WithLogger(logger),
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, apiclient.WithTimeout(opts.Timeout))
	}
	client := apiclient.New(opts.BaseURL, clientOpts...)

	state := store.New()
	hub := pubsub.NewHub(64)

	actingUserID := func() string {
		sess, err := sessions.Current()
		if err != nil {
			return ""
		}
		return sess.ActingUserID()
	}

	tracker := attendanceService.NewAttendanceService(
		client.Attendance(),
		actingUserID,
		attendanceService.WithClock(now),
		attendanceService.WithHub(hub),
		attendanceService.WithStore(state),
		attendanceService.WithLogger(logger),
		attendanceService.WithConcurrency(opts.Concurrency),
	)
	employees := employeeService.NewEmployeeService(client.Employees(), client.HRs(), sessions, state, logger)
	hrs := hrService.NewHRService(client.HRs(), sessions, state, logger)

	return &App{
		Sessions:        sessions,
		Client:          client,
		State:           state,
		Files:           files,
		Hub:             hub,
		Logger:          logger,
		Auth:            authService.NewAuthService(client.Auth(), sessions, state, logger),
		Employees:       employees,
		HRs:             hrs,
		Leaves:          leaveService.NewLeaveService(client.Leaves(), sessions, state, logger),
		Master:          masterService.NewMasterService(client.Departments(), client.JobRoles(), sessions, state, logger),
		Payroll:         payrollService.NewPayrollService(client.Payroll(), sessions, files, logger),
		Attendance:      tracker,
		Dashboard:       dashboardService.NewDashboardService(employees, hrs, tracker, sessions),
		PingInterval:    opts.PingInterval,
		RefreshInterval: opts.RefreshInterval,
		Now:             now,
	}, nil
}

// Close drops tracker state so late responses are discarded.
func (a *App) Close() {
	a.Attendance.Close()
}
