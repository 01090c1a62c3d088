package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrExpenseProfileNotFound = errors.New("employee expense profile not found")
)
