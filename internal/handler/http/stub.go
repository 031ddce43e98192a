package http

import (
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/memory"
	"github.com/go-chi/chi/v5"
)

// NewStubRouter wires the in-memory repositories behind the router.
func NewStubRouter(db *memory.DB, JWTService jwt.Service, files storage.FileStorage, opts RouterOptions) *chi.Mux {
	payrollRepo := memory.NewPayrollRepository(db)
	return NewRouter(JWTService, Handlers{
		Auth:       NewAuthHandler(memory.NewAuthRepository(db, JWTService)),
		Attendance: NewAttendanceHandler(memory.NewAttendanceRepository(db), payrollRepo),
		Employee:   NewEmployeeHandler(memory.NewEmployeeRepository(db), files),
		HR:         NewHRHandler(memory.NewHRRepository(db)),
		Leave:      NewLeaveHandler(memory.NewLeaveRepository(db)),
		Master:     NewMasterHandler(memory.NewDepartmentRepository(db), memory.NewJobRoleRepository(db)),
		Payroll:    NewPayrollHandler(payrollRepo),
	}, opts)
}
