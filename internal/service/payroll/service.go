package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/payslip"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	payrollRepo      payroll.PayrollRepository
	transactor       payroll.Transactor
	deductionService deduction.DeductionService
	publisher        payroll.EventPublisher
	defaultRates     deduction.Rates
	logger           *slog.Logger
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	transactor payroll.Transactor,
	deductionService deduction.DeductionService,
	publisher payroll.EventPublisher,
	defaultRates deduction.Rates,
	logger *slog.Logger,
) payroll.PayrollService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollServiceImpl{
		payrollRepo:      payrollRepo,
		transactor:       transactor,
		deductionService: deductionService,
		publisher:        publisher,
		defaultRates:     defaultRates,
		logger:           logger,
	}
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.PayrollSettingsResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	settings, isDefault, err := s.settingsFor(ctx, claims.CompanyID)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	return payroll.NewPayrollSettingsResponse(settings, isDefault), nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdatePayrollSettingsRequest) (payroll.PayrollSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	current, _, err := s.settingsFor(ctx, claims.CompanyID)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	saved, err := s.payrollRepo.UpsertSettings(ctx, req.Apply(current))
	if err != nil {
		return payroll.PayrollSettingsResponse{}, fmt.Errorf("failed to save payroll settings: %w", err)
	}

	return payroll.NewPayrollSettingsResponse(saved, false), nil
}

// settingsFor falls back to the configured defaults when the company never
// saved its own table.
func (s *PayrollServiceImpl) settingsFor(ctx context.Context, companyID string) (payroll.PayrollSettings, bool, error) {
	settings, err := s.payrollRepo.GetSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			return payroll.SettingsFromRates(companyID, s.defaultRates), true, nil
		}
		return payroll.PayrollSettings{}, false, err
	}
	return settings, false, nil
}

// ========== PAYROLL RECORDS ==========

func (s *PayrollServiceImpl) CreateRecord(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	period, _ := deduction.ParsePeriod(req.Periode)

	employeeID := strings.TrimSpace(req.EmployeeID)

	// The loads inside Compute run concurrently, so they stay off the
	// transaction's single connection.
	result, err := s.deductionService.Compute(ctx, claims.CompanyID, employeeID, period)
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to compute deductions: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to generate payroll record id: %w", err)
	}

	keterangan := req.Keterangan
	if keterangan == "" {
		keterangan = result.ReasonText
	}

	var record payroll.PayrollRecord
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, employeeID, int(period.Month), period.Year, claims.CompanyID)
		if err == nil {
			return payroll.ErrPayrollRecordAlreadyExists
		}
		if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return fmt.Errorf("failed to check existing payroll record: %w", err)
		}

		record, err = s.payrollRepo.CreatePayrollRecord(ctx, payroll.PayrollRecord{
			ID:             id.String(),
			CompanyID:      claims.CompanyID,
			EmployeeID:     employeeID,
			EmployeeName:   req.EmployeeName,
			PeriodYear:     period.Year,
			PeriodMonth:    int(period.Month),
			GajiPokok:      req.GajiPokok,
			Tunjangan:      req.Tunjangan,
			TotalPotongan:  result.TotalDeduction,
			GajiBersih:     payroll.NetPay(req.GajiPokok, req.Tunjangan, result.TotalDeduction),
			AlpaCount:      result.AlpaCount,
			TerlambatCount: result.TerlambatCount,
			IzinCount:      result.IzinCount,
			SakitCount:     result.SakitCount,
			Breakdown:      result.Breakdown,
			Keterangan:     keterangan,
		})
		return err
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	event := payroll.PayrollCreatedEvent{
		RecordID:   record.ID,
		CompanyID:  record.CompanyID,
		EmployeeID: record.EmployeeID,
		Periode:    record.Period().String(),
		GajiBersih: record.GajiBersih,
	}
	if err := s.publisher.PublishPayrollCreated(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish payroll created event",
			"record_id", record.ID,
			"error", err)
	}

	return payroll.NewPayrollRecordResponse(record), nil
}

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id, claims.CompanyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return payroll.NewPayrollRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	records, total, err := s.payrollRepo.ListPayrollRecords(ctx, claims.CompanyID, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	data := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, payroll.NewPayrollRecordResponse(r))
	}

	return payroll.ListPayrollRecordResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeletePayrollRecord(ctx, id, claims.CompanyID)
}

// ========== DOCUMENTS ==========

func (s *PayrollServiceImpl) RenderPayslip(ctx context.Context, id string) (string, []byte, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return "", nil, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id, claims.CompanyID)
	if err != nil {
		return "", nil, err
	}

	slip := payslip.Payslip{
		EmployeeID:    record.EmployeeID,
		EmployeeName:  record.EmployeeName,
		Periode:       record.Period().String(),
		GajiPokok:     record.GajiPokok,
		Tunjangan:     record.Tunjangan,
		TotalPotongan: record.TotalPotongan,
		GajiBersih:    record.GajiBersih,
		Keterangan:    record.Keterangan,
	}
	for _, b := range record.Breakdown {
		slip.Deductions = append(slip.Deductions, payslip.Line{
			Label:  string(b.Category),
			Count:  b.Count,
			Amount: b.Amount,
		})
	}

	pdf, err := payslip.Render(slip)
	if err != nil {
		return "", nil, err
	}
	return slip.Filename(), pdf, nil
}

func (s *PayrollServiceImpl) ExportPeriod(ctx context.Context, periode string) (string, []byte, error) {
	period, err := deduction.ParsePeriod(periode)
	if err != nil {
		return "", nil, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return "", nil, err
	}

	records, err := s.payrollRepo.ListPayrollRecordsByPeriod(ctx, claims.CompanyID, int(period.Month), period.Year)
	if err != nil {
		return "", nil, err
	}
	if len(records) == 0 {
		return "", nil, payroll.ErrNoPayrollRecordsForPeriod
	}

	rows := make([]export.PayrollRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, export.PayrollRow{
			EmployeeID:     r.EmployeeID,
			EmployeeName:   r.EmployeeName,
			GajiPokok:      r.GajiPokok,
			Tunjangan:      r.Tunjangan,
			AlpaCount:      r.AlpaCount,
			TerlambatCount: r.TerlambatCount,
			IzinCount:      r.IzinCount,
			SakitCount:     r.SakitCount,
			TotalPotongan:  r.TotalPotongan,
			GajiBersih:     r.GajiBersih,
			Keterangan:     r.Keterangan,
		})
	}

	xlsx, err := export.Payroll(period.String(), rows)
	if err != nil {
		return "", nil, err
	}
	return export.PayrollFilename(period.String()), xlsx, nil
}
