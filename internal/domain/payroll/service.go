package payroll

import "context"

type PayrollService interface {
	// Settings
	GetSettings(ctx context.Context) (PayrollSettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdatePayrollSettingsRequest) (PayrollSettingsResponse, error)

	// Payroll Records
	CreateRecord(ctx context.Context, req CreatePayrollRequest) (PayrollRecordResponse, error)
	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	DeleteRecord(ctx context.Context, id string) error

	// Documents
	RenderPayslip(ctx context.Context, id string) (filename string, pdf []byte, err error)
	ExportPeriod(ctx context.Context, periode string) (filename string, xlsx []byte, err error)
}
