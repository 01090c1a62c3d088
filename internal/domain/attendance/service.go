package attendance

import "context"

// AttendanceService defines business logic for the attendance ledger.
type AttendanceService interface {
	// Mark records or overwrites attendance for one employee and day.
	// Marking twice with identical arguments leaves the ledger in the same
	// state as marking once.
	Mark(ctx context.Context, req *MarkAttendanceRequest) (AttendanceResponse, error)

	GetByID(ctx context.Context, id string) (AttendanceResponse, error)

	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, int64, error)

	Delete(ctx context.Context, id string) error
}
