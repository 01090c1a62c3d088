package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance record already exists for this key")
	ErrInvalidHoursFormat  = errors.New("invalid working hours format")
	ErrHoursOutOfRange     = errors.New("working hours must be between 0 and 24")
	ErrMarkNotPermitted    = errors.New("not permitted to mark attendance for this scope")
)
