package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrNotCheckedIn         = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
