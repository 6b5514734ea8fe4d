package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrCannotApproveOwnRequest      = errors.New("cannot approve or reject your own leave request")
)
