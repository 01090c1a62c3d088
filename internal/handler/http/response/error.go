package response

import (
	"errors"
	"net/http"

	"github.com/fieldserv/backoffice-go/internal/domain/attendance"
	"github.com/fieldserv/backoffice-go/internal/domain/employee"
	"github.com/fieldserv/backoffice-go/internal/domain/identity"
	"github.com/fieldserv/backoffice-go/internal/domain/payroll"
	"github.com/fieldserv/backoffice-go/internal/domain/project"
	"github.com/fieldserv/backoffice-go/internal/pkg/period"
	"github.com/fieldserv/backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, identity.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, identity.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, "Attendance record already exists for this key")
	case errors.Is(err, attendance.ErrMarkNotPermitted):
		Forbidden(w, "Not permitted to mark attendance for this scope")
	case errors.Is(err, attendance.ErrInvalidHoursFormat):
		ValidationError(w, map[string]string{"working_hours": "invalid working hours format"})
	case errors.Is(err, attendance.ErrHoursOutOfRange):
		ValidationError(w, map[string]string{"working_hours": "working hours must be between 0 and 24"})

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this employee and period")

	// Referenced master data
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrExpenseProfileNotFound):
		NotFound(w, "Employee expense profile not found")
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrWorkerNotAssigned):
		ValidationError(w, map[string]string{"employee_id": "employee is not assigned to this project"})

	// Period parsing
	case errors.Is(err, period.ErrInvalidPeriod):
		ValidationError(w, map[string]string{"period": "period must be in MM-YYYY format"})
	case errors.Is(err, period.ErrInvalidMonth):
		ValidationError(w, map[string]string{"month": "month must be between 1 and 12"})
	case errors.Is(err, period.ErrInvalidRange):
		ValidationError(w, map[string]string{"start_date": "start date must not be after end date"})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
