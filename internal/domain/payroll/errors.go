package payroll

import "errors"

// Payroll domain errors
var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this employee and period")
)
