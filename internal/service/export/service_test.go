package export

import (
	"bytes"
	"testing"

	"github.com/fieldserv/backoffice-go/internal/domain/attendance"
	"github.com/fieldserv/backoffice-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_AttendanceXLSX(t *testing.T) {
	svc := NewExportService()
	name := "Amina Yusuf"
	records := []attendance.AttendanceResponse{
		{
			Date:          "2025-03-10",
			EmployeeName:  &name,
			Type:          attendance.TypeNormal,
			Present:       true,
			WorkingHours:  decimal.NewFromFloat(12.5),
			OvertimeHours: decimal.NewFromFloat(2.5),
		},
	}

	buf, err := svc.AttendanceXLSX(records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	date, err := f.GetCellValue("Attendance", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", date)

	employeeName, err := f.GetCellValue("Attendance", "B2")
	require.NoError(t, err)
	assert.Equal(t, name, employeeName)

	overtime, err := f.GetCellValue("Attendance", "G2")
	require.NoError(t, err)
	assert.Equal(t, "2.5", overtime)
}

func TestExportService_PayrollRegisterXLSX(t *testing.T) {
	svc := NewExportService()
	name := "Rashid Khan"
	records := []payroll.PayrollResponse{
		{
			Period:       "03-2025",
			EmployeeName: &name,
			BasicSalary:  decimal.NewFromInt(3000),
			Allowance:    decimal.NewFromInt(200),
			Net:          decimal.NewFromInt(3060),
		},
	}
	summary := payroll.RegisterSummary{
		Period:         "03-2025",
		TotalRecords:   1,
		TotalAllowance: decimal.NewFromInt(200),
		TotalNet:       decimal.NewFromInt(3060),
	}

	buf, err := svc.PayrollRegisterXLSX(records, summary)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	period, err := f.GetCellValue("Payroll Register", "A2")
	require.NoError(t, err)
	assert.Equal(t, "03-2025", period)

	net, err := f.GetCellValue("Payroll Register", "K2")
	require.NoError(t, err)
	assert.Equal(t, "3060", net)

	totalsLabel, err := f.GetCellValue("Payroll Register", "A4")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL 03-2025", totalsLabel)
}

func TestExportService_PayslipPDF(t *testing.T) {
	svc := NewExportService()
	name := "Rashid Khan"

	buf, err := svc.PayslipPDF(payroll.PayrollResponse{
		Period:       "03-2025",
		EmployeeName: &name,
		BasicSalary:  decimal.NewFromInt(3000),
		Net:          decimal.NewFromInt(3060),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
