package payroll

import "context"

// PayrollRepository defines data access methods for payroll records.
// Uniqueness over (employee_id, period_month, period_year) is enforced by
// a storage constraint; Create surfaces a violation as
// ErrPayrollRecordAlreadyExists.
type PayrollRepository interface {
	// Create persists a new payroll record
	Create(ctx context.Context, record Payroll) (Payroll, error)

	// GetByID retrieves a single record without read-time enrichment
	GetByID(ctx context.Context, id string) (Payroll, error)

	// GetEnrichedByID retrieves one record with the employee's current
	// basic salary, the period's current overtime sum, and total earning
	GetEnrichedByID(ctx context.Context, id string) (Payroll, error)

	// ExistsForPeriod reports whether a record other than excludeID holds
	// the (employee, period) key. Pass an empty excludeID for create checks.
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int, excludeID string) (bool, error)

	// Update rewrites the mutable columns of an existing record
	Update(ctx context.Context, record Payroll) error

	// List retrieves records with filters and pagination, each row
	// enriched at read time like GetEnrichedByID
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)

	// Delete removes the record unconditionally
	Delete(ctx context.Context, id string) error

	// GetRegisterSummary totals the register for one period
	GetRegisterSummary(ctx context.Context, month, year int) (RegisterSummary, error)
}
