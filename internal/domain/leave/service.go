package leave

import (
	"context"
)

type LeaveService interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req RejectLeaveRequest) (LeaveRequestResponse, error)
	Get(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveFilter) (ListLeaveRequestResponse, error)
}
