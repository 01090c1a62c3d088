package analytics

import "context"

// DefaultTrendMonths is the trailing window for per-employee trends when
// the caller does not pick one.
const DefaultTrendMonths = 6

// AnalyticsService assembles the derived reporting views.
type AnalyticsService interface {
	// Overview reports a year's presence counts, overall rate, monthly
	// trend, and top/bottom five performers
	Overview(ctx context.Context, year int) (OverviewStats, error)

	// EmployeeTrend reports one employee's rate per month over a trailing
	// window plus cumulative totals
	EmployeeTrend(ctx context.Context, employeeID string, months int) (EmployeeTrend, error)

	// ProjectSummary reports one project's aggregate rate and a
	// per-bucket-per-worker breakdown
	ProjectSummary(ctx context.Context, projectID string, granularity Granularity) (ProjectSummary, error)

	// AllProjectsSummary reports aggregate rates across every project
	AllProjectsSummary(ctx context.Context) ([]ProjectSummary, error)
}
