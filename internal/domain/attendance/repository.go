package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID parameter to prevent cross-company data access attacks.
type AttendanceRepository interface {
	// Create inserts a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when the employee has no row for the day
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (Attendance, error)

	// Update writes clock times, coordinates and status of an existing record
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	// UpsertStatus sets the status for (employee, date), creating the row if needed
	UpsertStatus(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListByDateRange returns rows with tanggal in [from, to], optionally for one employee
	ListByDateRange(ctx context.Context, companyID string, employeeID *string, from, to time.Time) ([]Attendance, error)

	// ListOpenBefore returns clocked-in rows of every company dated before the
	// given day that have no clock-out
	ListOpenBefore(ctx context.Context, before time.Time) ([]Attendance, error)
}
