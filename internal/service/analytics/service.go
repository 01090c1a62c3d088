package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserv/backoffice-go/internal/domain/analytics"
	"github.com/fieldserv/backoffice-go/internal/domain/employee"
	"github.com/fieldserv/backoffice-go/internal/domain/project"
	"github.com/fieldserv/backoffice-go/internal/pkg/period"
	"golang.org/x/sync/errgroup"
)

const performerListSize = 5

type AnalyticsServiceImpl struct {
	analyticsRepo analytics.AnalyticsRepository
	employeeRepo  employee.EmployeeRepository
	projectRepo   project.ProjectRepository
}

func NewAnalyticsService(
	analyticsRepo analytics.AnalyticsRepository,
	employeeRepo employee.EmployeeRepository,
	projectRepo project.ProjectRepository,
) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		employeeRepo:  employeeRepo,
		projectRepo:   projectRepo,
	}
}

func (s *AnalyticsServiceImpl) Overview(ctx context.Context, year int) (analytics.OverviewStats, error) {
	if year <= 0 {
		year = time.Now().UTC().Year()
	}

	rng, err := period.Resolve(period.Query{Year: &year}, time.Now().UTC())
	if err != nil {
		return analytics.OverviewStats{}, err
	}

	var (
		totals    analytics.PresenceCount
		monthly   []analytics.MonthlyPresence
		employees []analytics.EmployeePresence
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.analyticsRepo.CountPresence(gctx, rng.Start, rng.End)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = s.analyticsRepo.MonthlyPresence(gctx, rng.Start, rng.End)
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = s.analyticsRepo.EmployeePresence(gctx, rng.Start, rng.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.OverviewStats{}, fmt.Errorf("failed to load overview stats: %w", err)
	}

	stats := analytics.OverviewStats{
		Year:           year,
		TotalPresent:   totals.Present,
		TotalAbsent:    totals.Absent,
		AttendanceRate: analytics.Rate(totals.Present, totals.Present+totals.Absent),
		MonthlyTrend:   fillMonthlyTrend(year, monthly),
	}

	ranked := make([]analytics.EmployeeRate, 0, len(employees))
	for _, e := range employees {
		total := e.Present + e.Absent
		ranked = append(ranked, analytics.EmployeeRate{
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			Present:      e.Present,
			Total:        total,
			Rate:         analytics.Rate(e.Present, total),
		})
	}
	stats.TopPerformers = headOf(ranked, performerListSize)
	stats.BottomPerformers = tailOf(ranked, performerListSize)

	return stats, nil
}

func (s *AnalyticsServiceImpl) EmployeeTrend(ctx context.Context, employeeID string, months int) (analytics.EmployeeTrend, error) {
	if months <= 0 {
		months = analytics.DefaultTrendMonths
	}

	exists, err := s.employeeRepo.Exists(ctx, employeeID)
	if err != nil {
		return analytics.EmployeeTrend{}, err
	}
	if !exists {
		return analytics.EmployeeTrend{}, employee.ErrEmployeeNotFound
	}

	window := period.Trailing(period.Current(time.Now().UTC()), months)
	from := window[0].Start()
	to := window[len(window)-1].End()

	rows, err := s.analyticsRepo.EmployeeMonthlyPresence(ctx, employeeID, from, to)
	if err != nil {
		return analytics.EmployeeTrend{}, err
	}

	counts := make(map[period.Period]analytics.PresenceCount, len(rows))
	for _, row := range rows {
		counts[period.Period{Month: row.Month, Year: row.Year}] = row.PresenceCount
	}

	trend := analytics.EmployeeTrend{EmployeeID: employeeID}
	for _, p := range window {
		c := counts[p]
		trend.Months = append(trend.Months, analytics.MonthlyRate{
			Period:  p.String(),
			Present: c.Present,
			Absent:  c.Absent,
			Rate:    analytics.Rate(c.Present, c.Present+c.Absent),
		})
		trend.TotalPresent += c.Present
		trend.TotalAbsent += c.Absent
	}
	trend.OverallRate = analytics.Rate(trend.TotalPresent, trend.TotalPresent+trend.TotalAbsent)

	return trend, nil
}

func (s *AnalyticsServiceImpl) ProjectSummary(ctx context.Context, projectID string, granularity analytics.Granularity) (analytics.ProjectSummary, error) {
	if !granularity.Valid() {
		granularity = analytics.GranularityMonth
	}

	proj, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return analytics.ProjectSummary{}, err
	}

	var (
		presence  []analytics.ProjectPresence
		breakdown []analytics.WorkerBucketPresence
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		presence, err = s.analyticsRepo.ProjectPresence(gctx, &proj.ID)
		return err
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.analyticsRepo.ProjectWorkerBreakdown(gctx, proj.ID, granularity)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.ProjectSummary{}, fmt.Errorf("failed to load project summary: %w", err)
	}

	summary := analytics.ProjectSummary{ProjectID: proj.ID, ProjectName: proj.Name}
	if len(presence) > 0 {
		summary.Present = presence[0].Present
		summary.Total = presence[0].Present + presence[0].Absent
		summary.Rate = analytics.Rate(summary.Present, summary.Total)
	}

	for _, row := range breakdown {
		total := row.Present + row.Absent
		summary.Breakdown = append(summary.Breakdown, analytics.WorkerBucketRate{
			Bucket:       formatBucket(row.Bucket, granularity),
			EmployeeID:   row.EmployeeID,
			EmployeeName: row.EmployeeName,
			Present:      row.Present,
			Total:        total,
			Rate:         analytics.Rate(row.Present, total),
		})
	}

	return summary, nil
}

func (s *AnalyticsServiceImpl) AllProjectsSummary(ctx context.Context) ([]analytics.ProjectSummary, error) {
	presence, err := s.analyticsRepo.ProjectPresence(ctx, nil)
	if err != nil {
		return nil, err
	}

	summaries := make([]analytics.ProjectSummary, 0, len(presence))
	for _, p := range presence {
		total := p.Present + p.Absent
		summaries = append(summaries, analytics.ProjectSummary{
			ProjectID:   p.ProjectID,
			ProjectName: p.ProjectName,
			Present:     p.Present,
			Total:       total,
			Rate:        analytics.Rate(p.Present, total),
		})
	}

	return summaries, nil
}

// fillMonthlyTrend overlays the queried months onto a full twelve-month
// year so the trend always has one entry per calendar month.
func fillMonthlyTrend(year int, rows []analytics.MonthlyPresence) []analytics.MonthlyRate {
	counts := make(map[int]analytics.PresenceCount, len(rows))
	for _, row := range rows {
		if row.Year == year {
			counts[row.Month] = row.PresenceCount
		}
	}

	trend := make([]analytics.MonthlyRate, 0, 12)
	for month := 1; month <= 12; month++ {
		c := counts[month]
		trend = append(trend, analytics.MonthlyRate{
			Period:  period.Period{Month: month, Year: year}.String(),
			Present: c.Present,
			Absent:  c.Absent,
			Rate:    analytics.Rate(c.Present, c.Present+c.Absent),
		})
	}
	return trend
}

func headOf(ranked []analytics.EmployeeRate, n int) []analytics.EmployeeRate {
	if len(ranked) < n {
		n = len(ranked)
	}
	return ranked[:n]
}

// tailOf returns the lowest-ranked entries, worst first.
func tailOf(ranked []analytics.EmployeeRate, n int) []analytics.EmployeeRate {
	if len(ranked) < n {
		n = len(ranked)
	}
	tail := make([]analytics.EmployeeRate, 0, n)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
		tail = append(tail, ranked[i])
	}
	return tail
}

func formatBucket(bucket time.Time, granularity analytics.Granularity) string {
	if granularity == analytics.GranularityWeek {
		year, week := bucket.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return period.Current(bucket).String()
}
