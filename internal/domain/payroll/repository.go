package payroll

import "context"

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PayrollRepository interface {
	// Settings
	GetSettings(ctx context.Context, companyID string) (PayrollSettings, error)
	UpsertSettings(ctx context.Context, settings PayrollSettings) (PayrollSettings, error)

	// Payroll Records
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, companyID string, filter PayrollFilter) ([]PayrollRecord, int64, error)
	ListPayrollRecordsByPeriod(ctx context.Context, companyID string, month, year int) ([]PayrollRecord, error)
	DeletePayrollRecord(ctx context.Context, id string, companyID string) error
}

// EventPublisher delivers payroll events to other systems.
type EventPublisher interface {
	PublishPayrollCreated(ctx context.Context, event PayrollCreatedEvent) error
}

// Transactor runs fn so that repository calls made with the ctx handed to fn
// share one database transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
