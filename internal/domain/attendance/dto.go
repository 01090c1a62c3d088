package attendance

import (
	"encoding/json"
	"time"

	"github.com/fieldserv/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID   string          `json:"employee_id"`
	Type         Type            `json:"type"`
	ProjectID    *string         `json:"project_id,omitempty"`
	Date         string          `json:"date"`
	Present      bool            `json:"present"`
	WorkingHours json.RawMessage `json:"working_hours,omitempty"`

	parsedDate  time.Time
	parsedHours decimal.Decimal
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: normal, project",
		})
	}

	if r.Type == TypeProject && (r.ProjectID == nil || validator.IsEmpty(*r.ProjectID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required for project attendance",
		})
	}
	if r.Type == TypeNormal && r.ProjectID != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id must be empty for normal attendance",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if date, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.parsedDate = date
	}

	// Hours are only meaningful on a present day; an absent mark stores
	// zero regardless of what was supplied.
	if r.Present {
		hours, err := ParseWorkingHours(r.WorkingHours)
		switch err {
		case nil:
			r.parsedHours = hours
		case ErrHoursOutOfRange:
			errs = append(errs, validator.ValidationError{
				Field:   "working_hours",
				Message: "working hours must be between 0 and 24",
			})
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "working_hours",
				Message: "invalid working hours format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedDate returns the date normalized to midnight. Valid after Validate.
func (r *MarkAttendanceRequest) ParsedDate() time.Time {
	return r.parsedDate
}

// ParsedHours returns the decoded working hours. Valid after Validate.
func (r *MarkAttendanceRequest) ParsedHours() decimal.Decimal {
	return r.parsedHours
}

type AttendanceFilter struct {
	EmployeeID *string
	ProjectID  *string
	Type       *Type
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

var attendanceSortFields = []string{"date", "employee_name", "working_hours", "overtime_hours", "created_at"}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if f.SortBy == "" {
		f.SortBy = "date"
	}
	if !validator.IsInSlice(f.SortBy, attendanceSortFields) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "invalid sort field",
		})
	}

	if f.SortOrder == "" {
		f.SortOrder = "asc"
	}
	if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort order must be asc or desc",
		})
	}

	if f.Type != nil && !f.Type.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: normal, project",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	Type          Type            `json:"type"`
	ProjectID     *string         `json:"project_id,omitempty"`
	ProjectName   *string         `json:"project_name,omitempty"`
	Date          string          `json:"date"`
	Present       bool            `json:"present"`
	WorkingHours  decimal.Decimal `json:"working_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	MarkedBy      *string         `json:"marked_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		Type:          a.Type,
		ProjectID:     a.ProjectID,
		ProjectName:   a.ProjectName,
		Date:          a.Date.Format("2006-01-02"),
		Present:       a.Present,
		WorkingHours:  a.WorkingHours,
		OvertimeHours: a.OvertimeHours,
		MarkedBy:      a.MarkedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func ToResponseList(records []Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, ToResponse(a))
	}
	return responses
}
