package payroll

import "errors"

var (
	ErrPayrollSettingsNotFound    = errors.New("payroll settings not found")
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrNoPayrollRecordsForPeriod  = errors.New("no payroll records for this period")
)
