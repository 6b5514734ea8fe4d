package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
)

// AutoCloseInterval is how often open sessions from earlier days are swept.
const AutoCloseInterval = time.Hour

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	logger            *slog.Logger
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, logger *slog.Logger) *AttendanceJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_attendances", AutoCloseInterval, j.AutoCloseStaleAttendances)
}

// AutoCloseStaleAttendances closes sessions where the employee clocked in on
// an earlier day and never clocked out.
func (j *AttendanceJobs) AutoCloseStaleAttendances(ctx context.Context) error {
	closed, err := j.attendanceService.AutoCloseStale(ctx)
	if closed > 0 {
		j.logger.InfoContext(ctx, "auto-closed stale attendances", "count", closed)
	}
	if err != nil {
		return fmt.Errorf("auto-close stale attendances: %w", err)
	}
	return nil
}
