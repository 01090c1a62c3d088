package http

import (
	"log/slog"
	"os"

	"github.com/fieldserv/backoffice-go/internal/handler/http/middleware"
	"github.com/fieldserv/backoffice-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	env string,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	analyticsHandler AnalyticsHandler,
	exportHandler ExportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "backoffice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/", attendanceHandler.Mark)
				r.Get("/", attendanceHandler.List)
				r.Get("/export", exportHandler.AttendanceXLSX)
				r.Get("/{id}", attendanceHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})

			// Payroll is back-office territory
			r.Route("/payrolls", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", payrollHandler.Create)
				r.Get("/", payrollHandler.List)
				r.Get("/summary", payrollHandler.RegisterSummary)
				r.Get("/export", exportHandler.PayrollRegisterXLSX)
				r.Get("/{id}", payrollHandler.Get)
				r.Put("/{id}", payrollHandler.Update)
				r.Delete("/{id}", payrollHandler.Delete)
				r.Get("/{id}/payslip", exportHandler.PayslipPDF)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/overview", analyticsHandler.Overview)
				r.Get("/employees/{employeeID}/trend", analyticsHandler.EmployeeTrend)
				r.Get("/projects", analyticsHandler.AllProjectsSummary)
				r.Get("/projects/{projectID}", analyticsHandler.ProjectSummary)
			})
		})
	})
	return r
}
