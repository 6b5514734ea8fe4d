package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn records today's arrival for the authenticated employee
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut records today's departure for the authenticated employee
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// MarkStatus lets a manager record an izin, sakit or alpa day
	MarkStatus(ctx context.Context, req MarkStatusRequest) (AttendanceResponse, error)

	// List returns one period of attendance. Employees only see their own rows.
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// AutoCloseStale writes the configured clock-out into sessions left open
	// on previous days and reports how many were closed
	AutoCloseStale(ctx context.Context) (int, error)
}
