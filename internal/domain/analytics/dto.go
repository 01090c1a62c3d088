package analytics

// Granularity selects the bucket size for per-worker breakdowns.
type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
)

func (g Granularity) Valid() bool {
	return g == GranularityMonth || g == GranularityWeek
}

// Rate computes present/total, yielding 0 for an empty denominator so
// aggregations over no rows never divide by zero.
func Rate(present, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(present) / float64(total)
}

type MonthlyRate struct {
	Period  string  `json:"period"`
	Present int64   `json:"present"`
	Absent  int64   `json:"absent"`
	Rate    float64 `json:"rate"`
}

type EmployeeRate struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Present      int64   `json:"present"`
	Total        int64   `json:"total"`
	Rate         float64 `json:"rate"`
}

type OverviewStats struct {
	Year             int            `json:"year"`
	TotalPresent     int64          `json:"total_present"`
	TotalAbsent      int64          `json:"total_absent"`
	AttendanceRate   float64        `json:"attendance_rate"`
	MonthlyTrend     []MonthlyRate  `json:"monthly_trend"`
	TopPerformers    []EmployeeRate `json:"top_performers"`
	BottomPerformers []EmployeeRate `json:"bottom_performers"`
}

type EmployeeTrend struct {
	EmployeeID   string        `json:"employee_id"`
	Months       []MonthlyRate `json:"months"`
	TotalPresent int64         `json:"total_present"`
	TotalAbsent  int64         `json:"total_absent"`
	OverallRate  float64       `json:"overall_rate"`
}

type WorkerBucketRate struct {
	Bucket       string  `json:"bucket"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Present      int64   `json:"present"`
	Total        int64   `json:"total"`
	Rate         float64 `json:"rate"`
}

type ProjectSummary struct {
	ProjectID   string             `json:"project_id"`
	ProjectName string             `json:"project_name"`
	Present     int64              `json:"present"`
	Total       int64              `json:"total"`
	Rate        float64            `json:"rate"`
	Breakdown   []WorkerBucketRate `json:"breakdown,omitempty"`
}
