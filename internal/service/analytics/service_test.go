package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fieldserv/backoffice-go/internal/domain/analytics"
	"github.com/fieldserv/backoffice-go/internal/domain/employee"
	"github.com/fieldserv/backoffice-go/internal/domain/project"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsRepo struct {
	totals    analytics.PresenceCount
	monthly   []analytics.MonthlyPresence
	employees []analytics.EmployeePresence
	projects  []analytics.ProjectPresence
	breakdown []analytics.WorkerBucketPresence
}

func (f *fakeAnalyticsRepo) CountPresence(ctx context.Context, from, to time.Time) (analytics.PresenceCount, error) {
	return f.totals, nil
}

func (f *fakeAnalyticsRepo) MonthlyPresence(ctx context.Context, from, to time.Time) ([]analytics.MonthlyPresence, error) {
	return f.monthly, nil
}

func (f *fakeAnalyticsRepo) EmployeePresence(ctx context.Context, from, to time.Time) ([]analytics.EmployeePresence, error) {
	return f.employees, nil
}

func (f *fakeAnalyticsRepo) EmployeeMonthlyPresence(ctx context.Context, employeeID string, from, to time.Time) ([]analytics.MonthlyPresence, error) {
	return f.monthly, nil
}

func (f *fakeAnalyticsRepo) ProjectPresence(ctx context.Context, projectID *string) ([]analytics.ProjectPresence, error) {
	if projectID == nil {
		return f.projects, nil
	}
	var out []analytics.ProjectPresence
	for _, p := range f.projects {
		if p.ProjectID == *projectID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsRepo) ProjectWorkerBreakdown(ctx context.Context, projectID string, granularity analytics.Granularity) ([]analytics.WorkerBucketPresence, error) {
	return f.breakdown, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.employees[id]
	return ok, nil
}

func (f *fakeEmployeeRepo) GetExpenseProfile(ctx context.Context, employeeID string) (employee.ExpenseProfile, error) {
	return employee.ExpenseProfile{}, employee.ErrExpenseProfileNotFound
}

type fakeProjectRepo struct {
	projects map[string]project.Project
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id string) (project.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, nil
}

func TestAnalyticsService_Overview(t *testing.T) {
	year := 2025
	repo := &fakeAnalyticsRepo{
		totals: analytics.PresenceCount{Present: 30, Absent: 10},
		monthly: []analytics.MonthlyPresence{
			{Month: 1, Year: year, PresenceCount: analytics.PresenceCount{Present: 18, Absent: 2}},
			{Month: 3, Year: year, PresenceCount: analytics.PresenceCount{Present: 12, Absent: 8}},
		},
	}
	for i := 0; i < 7; i++ {
		repo.employees = append(repo.employees, analytics.EmployeePresence{
			EmployeeID:    fmt.Sprintf("emp-%d", i),
			EmployeeName:  fmt.Sprintf("Employee %d", i),
			PresenceCount: analytics.PresenceCount{Present: int64(10 - i), Absent: int64(i)},
		})
	}

	svc := NewAnalyticsService(repo, &fakeEmployeeRepo{}, &fakeProjectRepo{})

	stats, err := svc.Overview(context.Background(), year)

	require.NoError(t, err)
	assert.Equal(t, year, stats.Year)
	assert.Equal(t, int64(30), stats.TotalPresent)
	assert.Equal(t, int64(10), stats.TotalAbsent)
	assert.InDelta(t, 0.75, stats.AttendanceRate, 1e-9)

	// Every calendar month shows up, queried or not.
	require.Len(t, stats.MonthlyTrend, 12)
	assert.Equal(t, "01-2025", stats.MonthlyTrend[0].Period)
	assert.InDelta(t, 0.9, stats.MonthlyTrend[0].Rate, 1e-9)
	assert.Equal(t, "02-2025", stats.MonthlyTrend[1].Period)
	assert.Zero(t, stats.MonthlyTrend[1].Rate)
	assert.InDelta(t, 0.6, stats.MonthlyTrend[2].Rate, 1e-9)

	// Five each, best first and worst first.
	require.Len(t, stats.TopPerformers, 5)
	require.Len(t, stats.BottomPerformers, 5)
	assert.Equal(t, "emp-0", stats.TopPerformers[0].EmployeeID)
	assert.InDelta(t, 1.0, stats.TopPerformers[0].Rate, 1e-9)
	assert.Equal(t, "emp-6", stats.BottomPerformers[0].EmployeeID)
	assert.InDelta(t, 0.4, stats.BottomPerformers[0].Rate, 1e-9)
}

func TestAnalyticsService_Overview_NoData(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, &fakeEmployeeRepo{}, &fakeProjectRepo{})

	stats, err := svc.Overview(context.Background(), 2025)

	require.NoError(t, err)
	assert.Zero(t, stats.AttendanceRate)
	assert.Len(t, stats.MonthlyTrend, 12)
	assert.Empty(t, stats.TopPerformers)
	assert.Empty(t, stats.BottomPerformers)
}

func TestAnalyticsService_EmployeeTrend(t *testing.T) {
	employeeID := uuid.NewString()
	now := time.Now().UTC()
	repo := &fakeAnalyticsRepo{
		monthly: []analytics.MonthlyPresence{
			{Month: int(now.Month()), Year: now.Year(), PresenceCount: analytics.PresenceCount{Present: 15, Absent: 5}},
		},
	}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		employeeID: {ID: employeeID, FullName: "Amina Yusuf"},
	}}

	svc := NewAnalyticsService(repo, employeeRepo, &fakeProjectRepo{})

	trend, err := svc.EmployeeTrend(context.Background(), employeeID, 0)

	require.NoError(t, err)
	require.Len(t, trend.Months, analytics.DefaultTrendMonths)

	// The window ends on the current month; earlier months are zero filled.
	last := trend.Months[len(trend.Months)-1]
	assert.Equal(t, int64(15), last.Present)
	assert.InDelta(t, 0.75, last.Rate, 1e-9)
	assert.Zero(t, trend.Months[0].Present)
	assert.Equal(t, int64(15), trend.TotalPresent)
	assert.Equal(t, int64(5), trend.TotalAbsent)
	assert.InDelta(t, 0.75, trend.OverallRate, 1e-9)
}

func TestAnalyticsService_EmployeeTrend_UnknownEmployee(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, &fakeEmployeeRepo{}, &fakeProjectRepo{})

	_, err := svc.EmployeeTrend(context.Background(), uuid.NewString(), 6)

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAnalyticsService_ProjectSummary(t *testing.T) {
	projectID := uuid.NewString()
	workerID := uuid.NewString()
	repo := &fakeAnalyticsRepo{
		projects: []analytics.ProjectPresence{
			{ProjectID: projectID, ProjectName: "Site A", PresenceCount: analytics.PresenceCount{Present: 8, Absent: 2}},
		},
		breakdown: []analytics.WorkerBucketPresence{
			{
				Bucket:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				EmployeeID:    workerID,
				EmployeeName:  "Worker One",
				PresenceCount: analytics.PresenceCount{Present: 4, Absent: 1},
			},
		},
	}
	projectRepo := &fakeProjectRepo{projects: map[string]project.Project{
		projectID: {ID: projectID, Name: "Site A"},
	}}

	svc := NewAnalyticsService(repo, &fakeEmployeeRepo{}, projectRepo)

	summary, err := svc.ProjectSummary(context.Background(), projectID, analytics.GranularityMonth)

	require.NoError(t, err)
	assert.Equal(t, "Site A", summary.ProjectName)
	assert.Equal(t, int64(8), summary.Present)
	assert.Equal(t, int64(10), summary.Total)
	assert.InDelta(t, 0.8, summary.Rate, 1e-9)
	require.Len(t, summary.Breakdown, 1)
	assert.Equal(t, "03-2025", summary.Breakdown[0].Bucket)
	assert.InDelta(t, 0.8, summary.Breakdown[0].Rate, 1e-9)
}

func TestAnalyticsService_ProjectSummary_WeekBuckets(t *testing.T) {
	projectID := uuid.NewString()
	repo := &fakeAnalyticsRepo{
		breakdown: []analytics.WorkerBucketPresence{
			{
				Bucket:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				EmployeeID:    uuid.NewString(),
				EmployeeName:  "Worker One",
				PresenceCount: analytics.PresenceCount{Present: 5, Absent: 0},
			},
		},
	}
	projectRepo := &fakeProjectRepo{projects: map[string]project.Project{
		projectID: {ID: projectID, Name: "Site A"},
	}}

	svc := NewAnalyticsService(repo, &fakeEmployeeRepo{}, projectRepo)

	summary, err := svc.ProjectSummary(context.Background(), projectID, analytics.GranularityWeek)

	require.NoError(t, err)
	require.Len(t, summary.Breakdown, 1)
	assert.Equal(t, "2025-W11", summary.Breakdown[0].Bucket)
}

func TestAnalyticsService_ProjectSummary_UnknownProject(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, &fakeEmployeeRepo{}, &fakeProjectRepo{})

	_, err := svc.ProjectSummary(context.Background(), uuid.NewString(), analytics.GranularityMonth)

	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestAnalyticsService_AllProjectsSummary(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		projects: []analytics.ProjectPresence{
			{ProjectID: uuid.NewString(), ProjectName: "Site A", PresenceCount: analytics.PresenceCount{Present: 8, Absent: 2}},
			{ProjectID: uuid.NewString(), ProjectName: "Site B"},
		},
	}

	svc := NewAnalyticsService(repo, &fakeEmployeeRepo{}, &fakeProjectRepo{})

	summaries, err := svc.AllProjectsSummary(context.Background())

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.InDelta(t, 0.8, summaries[0].Rate, 1e-9)
	// Projects with no marks report a zero rate, not an error.
	assert.Zero(t, summaries[1].Rate)
}
