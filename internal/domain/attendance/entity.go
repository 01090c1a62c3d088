package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeNormal  Type = "normal"
	TypeProject Type = "project"
)

func (t Type) Valid() bool {
	return t == TypeNormal || t == TypeProject
}

// OvertimeThreshold is the daily working-hours baseline. Hours beyond it
// count as overtime.
var OvertimeThreshold = decimal.NewFromInt(10)

type Attendance struct {
	ID            string
	EmployeeID    string
	ProjectID     *string
	Type          Type
	Date          time.Time
	Present       bool
	WorkingHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	MarkedBy      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
	ProjectName  *string
}

// DeriveHours normalizes the stored hour columns for a mark. An absent day
// stores zero hours no matter what was supplied, and overtime is whatever
// exceeds the daily threshold, never negative. Overtime is never accepted
// from callers, only derived here.
func DeriveHours(present bool, workingHours decimal.Decimal) (working, overtime decimal.Decimal) {
	if !present {
		return decimal.Zero, decimal.Zero
	}
	overtime = workingHours.Sub(OvertimeThreshold)
	if overtime.IsNegative() {
		overtime = decimal.Zero
	}
	return workingHours, overtime
}
