package project

import "time"

type Project struct {
	ID        string
	Name      string
	DriverID  *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Assigned worker IDs, populated by GetByID
	WorkerIDs []string
}

// HasWorker reports whether the employee is assigned to the project,
// either as a worker or as the driver.
func (p Project) HasWorker(employeeID string) bool {
	if p.DriverID != nil && *p.DriverID == employeeID {
		return true
	}
	for _, id := range p.WorkerIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// IsDriver reports whether the employee is the project's assigned driver.
func (p Project) IsDriver(employeeID string) bool {
	return p.DriverID != nil && *p.DriverID == employeeID
}
