package attendance

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkingHours(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain number", input: `8`, want: "8"},
		{name: "decimal number", input: `8.75`, want: "8.75"},
		{name: "zero", input: `0`, want: "0"},
		{name: "full day", input: `24`, want: "24"},
		{name: "hh:mm string", input: `"12:30"`, want: "12.5"},
		{name: "hh:mm with leading zero", input: `"08:15"`, want: "8.25"},
		{name: "hh:mm rounds to two places", input: `"10:20"`, want: "10.33"},
		{name: "numeric string", input: `"9.5"`, want: "9.5"},
		{name: "negative number", input: `-1`, wantErr: ErrHoursOutOfRange},
		{name: "above full day", input: `24.01`, wantErr: ErrHoursOutOfRange},
		{name: "hh:mm above full day", input: `"25:00"`, wantErr: ErrHoursOutOfRange},
		{name: "minutes out of range", input: `"08:60"`, wantErr: ErrInvalidHoursFormat},
		{name: "word", input: `"full"`, wantErr: ErrInvalidHoursFormat},
		{name: "boolean", input: `true`, wantErr: ErrInvalidHoursFormat},
		{name: "object", input: `{"hours":8}`, wantErr: ErrInvalidHoursFormat},
		{name: "null", input: `null`, wantErr: ErrInvalidHoursFormat},
		{name: "missing", input: ``, wantErr: ErrInvalidHoursFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWorkingHours(json.RawMessage(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestDeriveHours(t *testing.T) {
	tests := []struct {
		name         string
		present      bool
		working      string
		wantWorking  string
		wantOvertime string
	}{
		{name: "under threshold", present: true, working: "8", wantWorking: "8", wantOvertime: "0"},
		{name: "at threshold", present: true, working: "10", wantWorking: "10", wantOvertime: "0"},
		{name: "over threshold", present: true, working: "12.5", wantWorking: "12.5", wantOvertime: "2.5"},
		{name: "zero hours", present: true, working: "0", wantWorking: "0", wantOvertime: "0"},
		{name: "absent zeroes supplied hours", present: false, working: "8", wantWorking: "0", wantOvertime: "0"},
		{name: "absent with overtime level hours", present: false, working: "14", wantWorking: "0", wantOvertime: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			working, overtime := DeriveHours(tt.present, decimal.RequireFromString(tt.working))

			assert.True(t, working.Equal(decimal.RequireFromString(tt.wantWorking)),
				"working: got %s, want %s", working, tt.wantWorking)
			assert.True(t, overtime.Equal(decimal.RequireFromString(tt.wantOvertime)),
				"overtime: got %s, want %s", overtime, tt.wantOvertime)
		})
	}
}

func TestMarkAttendanceRequest_Validate(t *testing.T) {
	projectID := "0198c5a2-7b3e-7f90-a111-222233334444"

	t.Run("valid normal mark", func(t *testing.T) {
		req := &MarkAttendanceRequest{
			EmployeeID:   "0198c5a2-7b3e-7f90-a111-000000000001",
			Type:         TypeNormal,
			Date:         "2025-06-01",
			Present:      true,
			WorkingHours: json.RawMessage(`"12:30"`),
		}

		require.NoError(t, req.Validate())
		assert.Equal(t, "2025-06-01", req.ParsedDate().Format("2006-01-02"))
		assert.True(t, req.ParsedHours().Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("project mark requires project id", func(t *testing.T) {
		req := &MarkAttendanceRequest{
			EmployeeID:   "0198c5a2-7b3e-7f90-a111-000000000001",
			Type:         TypeProject,
			Date:         "2025-06-01",
			Present:      true,
			WorkingHours: json.RawMessage(`8`),
		}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project_id")
	})

	t.Run("normal mark rejects project id", func(t *testing.T) {
		req := &MarkAttendanceRequest{
			EmployeeID:   "0198c5a2-7b3e-7f90-a111-000000000001",
			Type:         TypeNormal,
			ProjectID:    &projectID,
			Date:         "2025-06-01",
			Present:      true,
			WorkingHours: json.RawMessage(`8`),
		}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project_id")
	})

	t.Run("absent mark skips hours parsing", func(t *testing.T) {
		req := &MarkAttendanceRequest{
			EmployeeID: "0198c5a2-7b3e-7f90-a111-000000000001",
			Type:       TypeNormal,
			Date:       "2025-06-01",
			Present:    false,
		}

		require.NoError(t, req.Validate())
	})

	t.Run("bad type", func(t *testing.T) {
		req := &MarkAttendanceRequest{
			EmployeeID:   "0198c5a2-7b3e-7f90-a111-000000000001",
			Type:         Type("overtime"),
			Date:         "2025-06-01",
			Present:      true,
			WorkingHours: json.RawMessage(`8`),
		}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type")
	})

	t.Run("bad date", func(t *testing.T) {
		req := &MarkAttendanceRequest{
			EmployeeID:   "0198c5a2-7b3e-7f90-a111-000000000001",
			Type:         TypeNormal,
			Date:         "01-06-2025",
			Present:      true,
			WorkingHours: json.RawMessage(`8`),
		}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "date")
	})
}
