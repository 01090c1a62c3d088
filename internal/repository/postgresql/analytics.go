package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserv/backoffice-go/internal/domain/analytics"
	"github.com/fieldserv/backoffice-go/internal/pkg/database"
)

type analyticsRepository struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) analytics.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountPresence(ctx context.Context, from, to time.Time) (analytics.PresenceCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FILTER (WHERE present),
			   COUNT(*) FILTER (WHERE NOT present)
		FROM attendances
		WHERE date >= $1 AND date < $2
	`

	var c analytics.PresenceCount
	if err := q.QueryRow(ctx, query, from, to).Scan(&c.Present, &c.Absent); err != nil {
		return analytics.PresenceCount{}, fmt.Errorf("failed to count presence: %w", err)
	}

	return c, nil
}

func (r *analyticsRepository) MonthlyPresence(ctx context.Context, from, to time.Time) ([]analytics.MonthlyPresence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(MONTH FROM date)::int,
			   EXTRACT(YEAR FROM date)::int,
			   COUNT(*) FILTER (WHERE present),
			   COUNT(*) FILTER (WHERE NOT present)
		FROM attendances
		WHERE date >= $1 AND date < $2
		GROUP BY 1, 2
		ORDER BY 2, 1
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly presence: %w", err)
	}
	defer rows.Close()

	var results []analytics.MonthlyPresence
	for rows.Next() {
		var m analytics.MonthlyPresence
		if err := rows.Scan(&m.Month, &m.Year, &m.Present, &m.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan monthly presence: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly presence: %w", err)
	}

	return results, nil
}

// EmployeePresence orders by rate descending with employee id as the tie
// break so top and bottom rankings stay deterministic across calls.
func (r *analyticsRepository) EmployeePresence(ctx context.Context, from, to time.Time) ([]analytics.EmployeePresence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.employee_id,
			   e.full_name,
			   COUNT(*) FILTER (WHERE a.present),
			   COUNT(*) FILTER (WHERE NOT a.present)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date >= $1 AND a.date < $2
		GROUP BY a.employee_id, e.full_name
		ORDER BY (COUNT(*) FILTER (WHERE a.present))::float / COUNT(*) DESC, a.employee_id
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee presence: %w", err)
	}
	defer rows.Close()

	var results []analytics.EmployeePresence
	for rows.Next() {
		var e analytics.EmployeePresence
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.Present, &e.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan employee presence: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee presence: %w", err)
	}

	return results, nil
}

func (r *analyticsRepository) EmployeeMonthlyPresence(ctx context.Context, employeeID string, from, to time.Time) ([]analytics.MonthlyPresence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(MONTH FROM date)::int,
			   EXTRACT(YEAR FROM date)::int,
			   COUNT(*) FILTER (WHERE present),
			   COUNT(*) FILTER (WHERE NOT present)
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		GROUP BY 1, 2
		ORDER BY 2, 1
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee monthly presence: %w", err)
	}
	defer rows.Close()

	var results []analytics.MonthlyPresence
	for rows.Next() {
		var m analytics.MonthlyPresence
		if err := rows.Scan(&m.Month, &m.Year, &m.Present, &m.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan employee monthly presence: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee monthly presence: %w", err)
	}

	return results, nil
}

func (r *analyticsRepository) ProjectPresence(ctx context.Context, projectID *string) ([]analytics.ProjectPresence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id,
			   p.name,
			   COUNT(a.id) FILTER (WHERE a.present),
			   COUNT(a.id) FILTER (WHERE NOT a.present)
		FROM projects p
		LEFT JOIN attendances a ON a.project_id = p.id AND a.type = 'project'
		WHERE $1::uuid IS NULL OR p.id = $1
		GROUP BY p.id, p.name
		ORDER BY p.name, p.id
	`

	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query project presence: %w", err)
	}
	defer rows.Close()

	var results []analytics.ProjectPresence
	for rows.Next() {
		var p analytics.ProjectPresence
		if err := rows.Scan(&p.ProjectID, &p.ProjectName, &p.Present, &p.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan project presence: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project presence: %w", err)
	}

	return results, nil
}

func (r *analyticsRepository) ProjectWorkerBreakdown(ctx context.Context, projectID string, granularity analytics.Granularity) ([]analytics.WorkerBucketPresence, error) {
	q := GetQuerier(ctx, r.db)

	trunc := "month"
	if granularity == analytics.GranularityWeek {
		trunc = "week"
	}

	query := fmt.Sprintf(`
		SELECT date_trunc('%s', a.date)::date AS bucket,
			   a.employee_id,
			   e.full_name,
			   COUNT(*) FILTER (WHERE a.present),
			   COUNT(*) FILTER (WHERE NOT a.present)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.project_id = $1 AND a.type = 'project'
		GROUP BY bucket, a.employee_id, e.full_name
		ORDER BY bucket, e.full_name, a.employee_id
	`, trunc)

	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query project worker breakdown: %w", err)
	}
	defer rows.Close()

	var results []analytics.WorkerBucketPresence
	for rows.Next() {
		var w analytics.WorkerBucketPresence
		if err := rows.Scan(&w.Bucket, &w.EmployeeID, &w.EmployeeName, &w.Present, &w.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan project worker breakdown: %w", err)
		}
		results = append(results, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project worker breakdown: %w", err)
	}

	return results, nil
}
