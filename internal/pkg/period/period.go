// Package period handles the "MM-YYYY" payroll period notation used across
// attendance and payroll. A period always maps to a whole calendar month.
package period

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	ErrInvalidPeriod = errors.New("invalid period, expected MM-YYYY")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
	ErrInvalidRange  = errors.New("start date must not be after end date")
)

var periodRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])-(\d{4})$`)

// Period is a single calendar month identified by month and year.
type Period struct {
	Month int
	Year  int
}

// Parse parses a "MM-YYYY" string. The month must be zero padded and
// between 01 and 12.
func Parse(s string) (Period, error) {
	matches := periodRegex.FindStringSubmatch(s)
	if matches == nil {
		return Period{}, ErrInvalidPeriod
	}

	month, _ := strconv.Atoi(matches[1])
	year, _ := strconv.Atoi(matches[2])

	return Period{Month: month, Year: year}, nil
}

// Current returns the period containing now.
func Current(now time.Time) Period {
	return Period{Month: int(now.Month()), Year: now.Year()}
}

// String formats the period back to "MM-YYYY".
func (p Period) String() string {
	return fmt.Sprintf("%02d-%d", p.Month, p.Year)
}

// Start returns midnight UTC on the first day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC on the first day of the following period.
// Ranges built from Start and End are half open: [Start, End).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start()) && t.Before(p.End())
}

// Prev returns the period immediately before p.
func (p Period) Prev() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// Next returns the period immediately after p.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Month: 1, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

// Range is a half-open time interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// Query selects a range by explicit bounds or by year/month. An explicit
// Start/End pair always wins over Year/Month.
type Query struct {
	Start *time.Time
	End   *time.Time
	Year  *int
	Month *int
}

// Resolve turns a query into a canonical half-open range.
//
// Explicit start/end is taken as given, with the end bound rolled to the
// start of the following day so the full end date is included. Year alone
// spans the calendar year. Month alone defaults to the year of now. Month
// and year together span exactly that month.
func Resolve(q Query, now time.Time) (Range, error) {
	if q.Start != nil && q.End != nil {
		start := truncateToDay(*q.Start)
		end := truncateToDay(*q.End).AddDate(0, 0, 1)
		if end.Before(start) {
			return Range{}, ErrInvalidRange
		}
		return Range{Start: start, End: end}, nil
	}

	if q.Month != nil {
		if *q.Month < 1 || *q.Month > 12 {
			return Range{}, ErrInvalidMonth
		}
		year := now.Year()
		if q.Year != nil {
			year = *q.Year
		}
		p := Period{Month: *q.Month, Year: year}
		return Range{Start: p.Start(), End: p.End()}, nil
	}

	if q.Year != nil {
		start := time.Date(*q.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return Range{Start: start, End: start.AddDate(1, 0, 0)}, nil
	}

	p := Current(now)
	return Range{Start: p.Start(), End: p.End()}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Trailing returns the n periods ending at p, oldest first.
func Trailing(p Period, n int) []Period {
	if n <= 0 {
		return nil
	}
	periods := make([]Period, n)
	cur := p
	for i := n - 1; i >= 0; i-- {
		periods[i] = cur
		cur = cur.Prev()
	}
	return periods
}
