package project

import "context"

// ProjectRepository is the read side of the project master data. GetByID
// loads the assignment set so callers can check worker and driver
// membership without extra round trips.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (Project, error)
}
