package analytics

import (
	"context"
	"time"
)

// PresenceCount is a raw present/absent tally for one aggregation bucket.
// Rates are computed in the service so every caller shares the same
// zero-denominator handling.
type PresenceCount struct {
	Present int64
	Absent  int64
}

type MonthlyPresence struct {
	Month int
	Year  int
	PresenceCount
}

type EmployeePresence struct {
	EmployeeID   string
	EmployeeName string
	PresenceCount
}

type WorkerBucketPresence struct {
	Bucket       time.Time
	EmployeeID   string
	EmployeeName string
	PresenceCount
}

type ProjectPresence struct {
	ProjectID   string
	ProjectName string
	PresenceCount
}

// AnalyticsRepository defines the read-only aggregation queries behind the
// reporting endpoints. Nothing here writes; all state lives in the
// attendance ledger and payroll tables.
type AnalyticsRepository interface {
	// CountPresence tallies present and absent marks in [from, to)
	CountPresence(ctx context.Context, from, to time.Time) (PresenceCount, error)

	// MonthlyPresence tallies per calendar month in [from, to)
	MonthlyPresence(ctx context.Context, from, to time.Time) ([]MonthlyPresence, error)

	// EmployeePresence tallies per employee in [from, to), ordered by rate
	// descending with employee id as the tie break so rankings are stable
	EmployeePresence(ctx context.Context, from, to time.Time) ([]EmployeePresence, error)

	// EmployeeMonthlyPresence tallies one employee per month in [from, to)
	EmployeeMonthlyPresence(ctx context.Context, employeeID string, from, to time.Time) ([]MonthlyPresence, error)

	// ProjectPresence tallies project-type marks per project; a nil
	// projectID covers all projects
	ProjectPresence(ctx context.Context, projectID *string) ([]ProjectPresence, error)

	// ProjectWorkerBreakdown tallies one project's marks per worker per
	// month or ISO week bucket
	ProjectWorkerBreakdown(ctx context.Context, projectID string, granularity Granularity) ([]WorkerBucketPresence, error)
}
