// Package export renders computed attendance and payroll rows to the file
// formats the back office hands out. It receives finished tabular data and
// owns no business logic.
package export

import (
	"bytes"
	"fmt"

	"github.com/fieldserv/backoffice-go/internal/domain/attendance"
	"github.com/fieldserv/backoffice-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"
)

type ExportService interface {
	AttendanceXLSX(records []attendance.AttendanceResponse) (*bytes.Buffer, error)
	PayrollRegisterXLSX(records []payroll.PayrollResponse, summary payroll.RegisterSummary) (*bytes.Buffer, error)
	PayslipPDF(record payroll.PayrollResponse) (*bytes.Buffer, error)
}

type ExportServiceImpl struct{}

func NewExportService() ExportService {
	return &ExportServiceImpl{}
}

func (s *ExportServiceImpl) AttendanceXLSX(records []attendance.AttendanceResponse) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Employee", "Type", "Project", "Present", "Working Hours", "Overtime Hours"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, r := range records {
		rowNum := i + 2
		present := "No"
		if r.Present {
			present = "Yes"
		}
		values := []interface{}{
			r.Date,
			deref(r.EmployeeName),
			string(r.Type),
			deref(r.ProjectName),
			present,
			r.WorkingHours.InexactFloat64(),
			r.OvertimeHours.InexactFloat64(),
		}
		for j, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+j, rowNum)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render attendance workbook: %w", err)
	}
	return buf, nil
}

func (s *ExportServiceImpl) PayrollRegisterXLSX(records []payroll.PayrollResponse, summary payroll.RegisterSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := "Payroll Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Period", "Employee", "Labour Card", "Basic Salary", "Allowance",
		"Overtime Hours", "Total Earning", "Deduction", "Mess", "Advance", "Net"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	rowNum := 2
	for _, r := range records {
		values := []interface{}{
			r.Period,
			deref(r.EmployeeName),
			deref(r.LabourCard),
			r.BasicSalary.InexactFloat64(),
			r.Allowance.InexactFloat64(),
			r.OvertimeHours.InexactFloat64(),
			r.TotalEarning.InexactFloat64(),
			r.Deduction.InexactFloat64(),
			r.Mess.InexactFloat64(),
			r.Advance.InexactFloat64(),
			r.Net.InexactFloat64(),
		}
		for j, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+j, rowNum)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
			}
		}
		rowNum++
	}

	// Totals row under the register
	rowNum++
	totals := map[string]interface{}{
		"A": "TOTAL " + summary.Period,
		"E": summary.TotalAllowance.InexactFloat64(),
		"H": summary.TotalDeduction.InexactFloat64(),
		"I": summary.TotalMess.InexactFloat64(),
		"J": summary.TotalAdvance.InexactFloat64(),
		"K": summary.TotalNet.InexactFloat64(),
	}
	for col, value := range totals {
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowNum), value); err != nil {
			return nil, fmt.Errorf("failed to write totals row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render payroll workbook: %w", err)
	}
	return buf, nil
}

func (s *ExportServiceImpl) PayslipPDF(record payroll.PayrollResponse) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	lines := []struct {
		label string
		value string
	}{
		{"Employee", deref(record.EmployeeName)},
		{"Period", record.Period},
		{"Labour Card", deref(record.LabourCard)},
		{"Basic Salary", record.BasicSalary.StringFixed(2)},
		{"Allowance", record.Allowance.StringFixed(2)},
		{"Overtime Hours", record.OvertimeHours.StringFixed(2)},
		{"Total Earning", record.TotalEarning.StringFixed(2)},
		{"Deduction", record.Deduction.StringFixed(2)},
		{"Mess", record.Mess.StringFixed(2)},
		{"Advance", record.Advance.StringFixed(2)},
	}
	for _, line := range lines {
		pdf.CellFormat(60, 8, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, line.value, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(60, 10, "Net Pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, record.Net.StringFixed(2), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return &buf, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
