package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)
	List(ctx context.Context, companyID string, filter LeaveFilter) ([]LeaveRequest, int64, error)

	// UpdateStatus only touches rows that are still pending and returns
	// ErrLeaveRequestAlreadyProcessed otherwise.
	UpdateStatus(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// ListByStartDate returns every request of the employee whose start date
	// falls in [from, to], whatever its status.
	ListByStartDate(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]LeaveRequest, error)
}
