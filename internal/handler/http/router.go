package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Deduction  DeductionHandler
	Payroll    PayrollHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequireCompany)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/clock-in", h.Attendance.ClockIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/clock-out", h.Attendance.ClockOut)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/", h.Attendance.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceManage)).Put("/status", h.Attendance.MarkStatus)
			})

			r.Route("/leave", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.Submit)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/", h.Leave.List)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/{id}", h.Leave.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/deductions", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollView))
				r.Get("/", h.Deduction.CalculateForEmployee)
				r.Post("/calculate", h.Deduction.Calculate)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollView))

				r.Get("/settings", h.Payroll.GetSettings)
				r.With(middleware.RequirePermission(user.PermissionPayrollSettings)).Put("/settings", h.Payroll.UpdateSettings)

				r.Get("/", h.Payroll.ListPayrollRecords)
				r.Get("/export", h.Payroll.ExportPeriod)
				r.Get("/{id}", h.Payroll.GetPayrollRecord)
				r.Get("/{id}/payslip", h.Payroll.DownloadPayslip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Post("/", h.Payroll.CreatePayrollRecord)
					r.Delete("/{id}", h.Payroll.DeletePayrollRecord)
				})
			})
		})
	})
	return r
}
