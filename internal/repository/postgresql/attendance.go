package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldserv/backoffice-go/internal/domain/attendance"
	"github.com/fieldserv/backoffice-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, project_id, type, date, present,
		working_hours, overtime_hours, marked_by, created_at, updated_at`

// Upsert relies on the partial unique indexes uq_attendance_normal and
// uq_attendance_project; the conflict target must match the index predicate,
// so the two record types take separate statements. Either way the insert
// and the fallback update are one atomic operation.
func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	if record.Type == attendance.TypeProject {
		query = `
			INSERT INTO attendances (id, employee_id, project_id, type, date, present, working_hours, overtime_hours, marked_by)
			VALUES ($1, $2, $3, 'project', $4, $5, $6, $7, $8)
			ON CONFLICT (employee_id, project_id, date) WHERE type = 'project' DO UPDATE SET
				present = EXCLUDED.present,
				working_hours = EXCLUDED.working_hours,
				overtime_hours = EXCLUDED.overtime_hours,
				marked_by = EXCLUDED.marked_by,
				updated_at = NOW()
			RETURNING ` + attendanceColumns
	} else {
		query = `
			INSERT INTO attendances (id, employee_id, project_id, type, date, present, working_hours, overtime_hours, marked_by)
			VALUES ($1, $2, $3, 'normal', $4, $5, $6, $7, $8)
			ON CONFLICT (employee_id, date) WHERE type = 'normal' DO UPDATE SET
				present = EXCLUDED.present,
				working_hours = EXCLUDED.working_hours,
				overtime_hours = EXCLUDED.overtime_hours,
				marked_by = EXCLUDED.marked_by,
				updated_at = NOW()
			RETURNING ` + attendanceColumns
	}

	var a attendance.Attendance
	err := q.QueryRow(ctx, query,
		uuid.NewString(), record.EmployeeID, record.ProjectID, record.Date,
		record.Present, record.WorkingHours, record.OvertimeHours, record.MarkedBy,
	).Scan(
		&a.ID, &a.EmployeeID, &a.ProjectID, &a.Type, &a.Date, &a.Present,
		&a.WorkingHours, &a.OvertimeHours, &a.MarkedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uq_attendance") {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.project_id, a.type, a.date, a.present,
			   a.working_hours, a.overtime_hours, a.marked_by, a.created_at, a.updated_at,
			   e.full_name, p.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		LEFT JOIN projects p ON p.id = a.project_id
		WHERE a.id = $1
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.ProjectID, &a.Type, &a.Date, &a.Present,
		&a.WorkingHours, &a.OvertimeHours, &a.MarkedBy, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName, &a.ProjectName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ProjectID != nil {
		conditions = append(conditions, fmt.Sprintf("a.project_id = $%d", argIdx))
		args = append(args, *filter.ProjectID)
		argIdx++
	}
	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("a.type = $%d", argIdx))
		args = append(args, string(*filter.Type))
		argIdx++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.date < $%d", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortColumns := map[string]string{
		"date":           "a.date",
		"employee_name":  "e.full_name",
		"working_hours":  "a.working_hours",
		"overtime_hours": "a.overtime_hours",
		"created_at":     "a.created_at",
	}
	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = "a.date"
	}
	sortOrder := "ASC"
	if filter.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.project_id, a.type, a.date, a.present,
			   a.working_hours, a.overtime_hours, a.marked_by, a.created_at, a.updated_at,
			   e.full_name, p.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		LEFT JOIN projects p ON p.id = a.project_id
		WHERE %s
		ORDER BY %s %s, a.id
		LIMIT $%d OFFSET $%d
	`, where, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ProjectID, &a.Type, &a.Date, &a.Present,
			&a.WorkingHours, &a.OvertimeHours, &a.MarkedBy, &a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName, &a.ProjectName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func (r *attendanceRepository) SumOvertimeHours(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(overtime_hours), 0)
		FROM attendances
		WHERE employee_id = $1
		  AND present
		  AND date >= $2
		  AND date < $3
	`

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum overtime hours: %w", err)
	}

	return sum, nil
}
