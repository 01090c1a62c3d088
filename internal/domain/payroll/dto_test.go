package payroll

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeNet(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name      string
		basic     string
		allowance string
		overtime  string
		deduction string
		mess      string
		advance   string
		want      string
	}{
		{name: "typical month", basic: "3000", allowance: "200", overtime: "10", deduction: "50", mess: "100", advance: "0", want: "3060"},
		{name: "all zero", basic: "0", allowance: "0", overtime: "0", deduction: "0", mess: "0", advance: "0", want: "0"},
		{name: "deductions exceed earnings", basic: "1000", allowance: "0", overtime: "0", deduction: "800", mess: "300", advance: "200", want: "-300"},
		{name: "no expense profile", basic: "0", allowance: "150", overtime: "4.5", deduction: "0", mess: "0", advance: "0", want: "154.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeNet(d(tt.basic), d(tt.allowance), d(tt.overtime), d(tt.deduction), d(tt.mess), d(tt.advance))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestFlexibleAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "number", input: `125.50`, want: "125.5"},
		{name: "numeric string", input: `"99.9"`, want: "99.9"},
		{name: "zero", input: `0`, want: "0"},
		{name: "word coerces to zero", input: `"abc"`, want: "0"},
		{name: "null coerces to zero", input: `null`, want: "0"},
		{name: "negative clamps to zero", input: `-50`, want: "0"},
		{name: "empty string coerces to zero", input: `""`, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexibleAmount
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.True(t, f.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", f.Decimal, tt.want)
		})
	}
}

func TestCreatePayrollRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := &CreatePayrollRequest{
			EmployeeID: "0198c5a2-7b3e-7f90-a111-000000000001",
			Period:     "06-2025",
			Allowance:  decimal.RequireFromString("200"),
		}

		require.NoError(t, req.Validate())
		assert.Equal(t, 6, req.ParsedPeriod().Month)
		assert.Equal(t, 2025, req.ParsedPeriod().Year)
	})

	t.Run("missing employee", func(t *testing.T) {
		req := &CreatePayrollRequest{Period: "06-2025"}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "employee_id")
	})

	t.Run("bad period format", func(t *testing.T) {
		req := &CreatePayrollRequest{
			EmployeeID: "0198c5a2-7b3e-7f90-a111-000000000001",
			Period:     "2025-06",
		}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "period")
	})

	t.Run("malformed employee id", func(t *testing.T) {
		req := &CreatePayrollRequest{
			EmployeeID: "not-a-uuid",
			Period:     "06-2025",
		}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "employee_id")
	})

	t.Run("overlong labour card", func(t *testing.T) {
		card := "123456789012345678901" // 21 digits
		req := &CreatePayrollRequest{
			EmployeeID: "0198c5a2-7b3e-7f90-a111-000000000001",
			Period:     "06-2025",
			LabourCard: &card,
		}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "labour_card")
	})

	t.Run("non numeric labour card", func(t *testing.T) {
		card := "LC-4471"
		req := &CreatePayrollRequest{
			EmployeeID: "0198c5a2-7b3e-7f90-a111-000000000001",
			Period:     "06-2025",
			LabourCard: &card,
		}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "labour_card")
	})

	t.Run("negative amount rejected on create", func(t *testing.T) {
		req := &CreatePayrollRequest{
			EmployeeID: "0198c5a2-7b3e-7f90-a111-000000000001",
			Period:     "06-2025",
			Deduction:  decimal.RequireFromString("-10"),
		}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deduction")
	})
}

func TestUpdatePayrollRequest_Validate(t *testing.T) {
	t.Run("valid partial update", func(t *testing.T) {
		employeeID := "0198c5a2-7b3e-7f90-a111-000000000001"
		card := "44710001"
		req := &UpdatePayrollRequest{EmployeeID: &employeeID, LabourCard: &card}

		assert.NoError(t, req.Validate())
	})

	t.Run("malformed employee id", func(t *testing.T) {
		employeeID := "not-a-uuid"
		req := &UpdatePayrollRequest{EmployeeID: &employeeID}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "employee_id")
	})

	t.Run("overlong labour card personal no", func(t *testing.T) {
		personalNo := "123456789012345678901"
		req := &UpdatePayrollRequest{LabourCardPersonalNo: &personalNo}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "labour_card_personal_no")
	})
}

func TestUpdatePayrollRequest_TouchesMoney(t *testing.T) {
	var amount FlexibleAmount
	require.NoError(t, json.Unmarshal([]byte(`75`), &amount))

	assert.False(t, (&UpdatePayrollRequest{}).TouchesMoney())

	remark := "corrected"
	assert.False(t, (&UpdatePayrollRequest{Remark: &remark}).TouchesMoney())

	assert.True(t, (&UpdatePayrollRequest{Mess: &amount}).TouchesMoney())
}
