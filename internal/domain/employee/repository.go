package employee

import "context"

// EmployeeRepository is the read side of the employee master data this
// service consumes. Employees are managed elsewhere; attendance and payroll
// only validate references and read expense figures.
type EmployeeRepository interface {
	// GetByID retrieves one employee or ErrEmployeeNotFound
	GetByID(ctx context.Context, id string) (Employee, error)

	// Exists reports whether the employee exists without loading it
	Exists(ctx context.Context, id string) (bool, error)

	// GetExpenseProfile retrieves the expense profile for an employee,
	// or ErrExpenseProfileNotFound when none was ever recorded
	GetExpenseProfile(ctx context.Context, employeeID string) (ExpenseProfile, error)
}
