package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Upsert atomically creates the record for its composite key or, when a
	// record for the key already exists, overwrites its mutable fields.
	// The key is (employee_id, date) for normal records and
	// (employee_id, project_id, date) for project records; uniqueness is
	// enforced by the storage layer, not by a find-then-insert sequence.
	Upsert(ctx context.Context, record Attendance) (Attendance, error)

	// GetByID retrieves a single attendance record
	GetByID(ctx context.Context, id string) (Attendance, error)

	// List retrieves attendance records with filters and pagination,
	// ordered by date ascending unless the filter says otherwise
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// Delete removes the record; no cascading side effects
	Delete(ctx context.Context, id string) error

	// SumOvertimeHours sums overtime over present days of all attendance
	// types for one employee in [from, to). Returns zero when no rows match.
	SumOvertimeHours(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
}
