package main

import (
	"fmt"
	"net/http"

	"github.com/fieldserv/backoffice-go/internal/config"
	appHTTP "github.com/fieldserv/backoffice-go/internal/handler/http"
	"github.com/fieldserv/backoffice-go/internal/pkg/database"
	"github.com/fieldserv/backoffice-go/internal/pkg/jwt"
	"github.com/fieldserv/backoffice-go/internal/repository/postgresql"
	analyticsService "github.com/fieldserv/backoffice-go/internal/service/analytics"
	attendanceService "github.com/fieldserv/backoffice-go/internal/service/attendance"
	exportService "github.com/fieldserv/backoffice-go/internal/service/export"
	payrollService "github.com/fieldserv/backoffice-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.Options{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	tx := postgresql.NewTransactor(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	analyticsRepo := postgresql.NewAnalyticsRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, projectRepo)
	payrollSvc := payrollService.NewPayrollService(tx, payrollRepo, attendanceRepo, employeeRepo)
	analyticsSvc := analyticsService.NewAnalyticsService(analyticsRepo, employeeRepo, projectRepo)
	exportSvc := exportService.NewExportService()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)
	exportHandler := appHTTP.NewExportHandler(exportSvc, attendanceSvc, payrollSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		attendanceHandler,
		payrollHandler,
		analyticsHandler,
		exportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
