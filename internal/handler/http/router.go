package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every endpoint implementation of the stub backend.
type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	HR         HRHandler
	Leave      LeaveHandler
	Master     MasterHandler
	Payroll    PayrollHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			response.SuccessWithMessage(w, "pong", nil)
		})
		r.Post("/users/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/users/details/{username}", h.Auth.UserDetails)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/range", h.Attendance.Range)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionAttendanceMark)).Put("/", h.Attendance.Update)
					r.Get("/report", h.Attendance.Report)
					r.Get("/summary", h.Attendance.Summary)
					r.Get("/salary", h.Attendance.Salary)
					r.With(middleware.RequirePermission(user.PermissionAttendanceMark)).Post("/mark", h.Attendance.Mark)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAnyPermission(user.PermissionAttendanceClock, user.PermissionAttendanceMark))
						r.Post("/checkin", h.Attendance.CheckIn)
						r.Post("/checkout", h.Attendance.CheckOut)
					})
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.ListEmployees)
				r.Get("/by-hr/{hrId}", h.Employee.ListByHR)
				r.Get("/{id}", h.Employee.GetEmployee)

				// Managers only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/hrs", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionHRView))
				r.Get("/", h.HR.List)
				r.Get("/by-status/{status}", h.HR.ListByStatus)
				r.Get("/by-admin/{adminId}", h.HR.ListByAdmin)
				r.Get("/{id}", h.HR.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHRManage))
					r.Post("/", h.HR.Create)
					r.Put("/{id}", h.HR.Update)
					r.Delete("/{id}", h.HR.Delete)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Master.ListDepartments)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMasterManage))
					r.Post("/", h.Master.CreateDepartment)
					r.Put("/{id}", h.Master.UpdateDepartment)
					r.Delete("/{id}", h.Master.DeleteDepartment)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Master.ListRoles)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMasterManage))
					r.Post("/", h.Master.CreateRole)
					r.Put("/{id}", h.Master.UpdateRole)
					r.Delete("/{id}", h.Master.DeleteRole)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/apply", h.Leave.Apply)
				r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{id}/status", h.Leave.UpdateStatus)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/hr/{hrId}", h.Leave.ListByHR)
				r.Get("/employee/{employeeId}", h.Leave.ListByEmployee)
			})

			r.Route("/salaryslip", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionSalaryGenerate)).Post("/generate/{id}", h.Payroll.GenerateSlip)
				r.Get("/download/{id}", h.Payroll.DownloadSlip)
			})
		})
	})
	return r
}
