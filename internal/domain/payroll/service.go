package payroll

import "context"

// PayrollService defines business logic for payroll computation.
type PayrollService interface {
	// Create computes and persists a new payroll record. Net is derived
	// from the employee's current basic salary and the period's aggregated
	// overtime at call time.
	Create(ctx context.Context, req *CreatePayrollRequest) (PayrollResponse, error)

	GetByID(ctx context.Context, id string) (PayrollResponse, error)

	// Update applies a partial update. Any change to a monetary field or
	// to the record's key re-derives net from current inputs; net is never
	// patched incrementally.
	Update(ctx context.Context, id string, req *UpdatePayrollRequest) (PayrollResponse, error)

	List(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, int64, error)

	Delete(ctx context.Context, id string) error

	// RegisterSummary totals the payroll register for one "MM-YYYY" period
	RegisterSummary(ctx context.Context, periodStr string) (RegisterSummary, error)
}
