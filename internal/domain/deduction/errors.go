package deduction

import "errors"

var (
	ErrInvalidPeriod     = errors.New("invalid period, expected YYYY-MM")
	ErrEmployeeIDMissing = errors.New("employee_id is required")
)
