package payroll

import (
	"time"

	"github.com/fieldserv/backoffice-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

type Payroll struct {
	ID                   string
	EmployeeID           string
	PeriodMonth          int
	PeriodYear           int
	LabourCard           *string
	LabourCardPersonalNo *string
	Allowance            decimal.Decimal
	Deduction            decimal.Decimal
	Mess                 decimal.Decimal
	Advance              decimal.Decimal
	Net                  decimal.Decimal
	Remark               *string
	CreatedBy            *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// DTO, populated on reads
	EmployeeName  *string
	BasicSalary   decimal.Decimal
	OvertimeHours decimal.Decimal
	TotalEarning  decimal.Decimal
}

// Period returns the pay period the record covers.
func (p Payroll) Period() period.Period {
	return period.Period{Month: p.PeriodMonth, Year: p.PeriodYear}
}

// ComputeNet derives net pay from current inputs. Overtime enters as the
// aggregated overtime figure for the period. Net is not clamped; it goes
// negative when deductions exceed earnings.
func ComputeNet(basic, allowance, overtime, deduction, mess, advance decimal.Decimal) decimal.Decimal {
	return basic.Add(allowance).Add(overtime).Sub(deduction).Sub(mess).Sub(advance)
}
