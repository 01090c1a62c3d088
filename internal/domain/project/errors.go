package project

import "errors"

// Project domain errors
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrWorkerNotAssigned = errors.New("employee is not assigned to this project")
)
