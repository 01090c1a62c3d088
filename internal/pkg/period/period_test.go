package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Period
		wantErr bool
	}{
		{name: "valid january", input: "01-2025", want: Period{Month: 1, Year: 2025}},
		{name: "valid december", input: "12-2024", want: Period{Month: 12, Year: 2024}},
		{name: "month without padding", input: "1-2025", wantErr: true},
		{name: "month out of range", input: "13-2025", wantErr: true},
		{name: "month zero", input: "00-2025", wantErr: true},
		{name: "reversed order", input: "2025-01", wantErr: true},
		{name: "two digit year", input: "01-25", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "payday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_String_RoundTrip(t *testing.T) {
	p, err := Parse("03-2025")
	require.NoError(t, err)
	assert.Equal(t, "03-2025", p.String())
}

func TestPeriod_StartEnd(t *testing.T) {
	p := Period{Month: 2, Year: 2024}

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), p.End())
}

func TestPeriod_StartEnd_YearBoundary(t *testing.T) {
	p := Period{Month: 12, Year: 2024}

	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.End())
}

func TestPeriod_Contains(t *testing.T) {
	p := Period{Month: 1, Year: 2025}

	assert.True(t, p.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestPeriod_PrevNext(t *testing.T) {
	assert.Equal(t, Period{Month: 12, Year: 2024}, Period{Month: 1, Year: 2025}.Prev())
	assert.Equal(t, Period{Month: 1, Year: 2025}, Period{Month: 12, Year: 2024}.Next())
	assert.Equal(t, Period{Month: 6, Year: 2025}, Period{Month: 7, Year: 2025}.Prev())
}

func TestCurrent(t *testing.T) {
	now := time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, Period{Month: 8, Year: 2025}, Current(now))
}

func TestResolve(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	intPtr := func(i int) *int { return &i }
	timePtr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name    string
		query   Query
		want    Range
		wantErr error
	}{
		{
			name:  "year and month",
			query: Query{Year: intPtr(2025), Month: intPtr(2)},
			want: Range{
				Start: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "february in leap year",
			query: Query{Year: intPtr(2024), Month: intPtr(2)},
			want: Range{
				Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "month only defaults to current year",
			query: Query{Month: intPtr(3)},
			want: Range{
				Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "year only spans calendar year",
			query: Query{Year: intPtr(2024)},
			want: Range{
				Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "explicit bounds win over year and month",
			query: Query{
				Start: timePtr(time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)),
				End:   timePtr(time.Date(2025, 6, 12, 17, 0, 0, 0, time.UTC)),
				Year:  intPtr(2020),
				Month: intPtr(1),
			},
			want: Range{
				Start: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "no selector falls back to current month",
			query: Query{},
			want: Range{
				Start: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:    "month out of range",
			query:   Query{Year: intPtr(2025), Month: intPtr(13)},
			wantErr: ErrInvalidMonth,
		},
		{
			name: "reversed explicit bounds",
			query: Query{
				Start: timePtr(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)),
				End:   timePtr(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
			},
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.query, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrailing(t *testing.T) {
	got := Trailing(Period{Month: 2, Year: 2025}, 4)

	want := []Period{
		{Month: 11, Year: 2024},
		{Month: 12, Year: 2024},
		{Month: 1, Year: 2025},
		{Month: 2, Year: 2025},
	}
	assert.Equal(t, want, got)

	assert.Nil(t, Trailing(Period{Month: 2, Year: 2025}, 0))
}
