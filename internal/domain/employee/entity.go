package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          string
	FullName    string
	Designation *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExpenseProfile carries the static expense figures kept per employee.
// At most one profile exists per employee; payroll treats a missing
// profile as a zero basic salary rather than an error.
type ExpenseProfile struct {
	EmployeeID  string
	BasicSalary decimal.Decimal
	UpdatedAt   time.Time
}
