package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SETTINGS ==========

func (r *payrollRepository) GetSettings(ctx context.Context, companyID string) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, potongan_alpa, potongan_terlambat, potongan_izin, potongan_sakit, updated_at
		FROM payroll_settings
		WHERE company_id = $1
	`

	var s payroll.PayrollSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID, &s.PotonganAlpa, &s.PotonganTerlambat, &s.PotonganIzin, &s.PotonganSakit, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollSettings{}, payroll.ErrPayrollSettingsNotFound
		}
		return payroll.PayrollSettings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.PayrollSettings) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (
			company_id, potongan_alpa, potongan_terlambat, potongan_izin, potongan_sakit
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id) DO UPDATE SET
			potongan_alpa = EXCLUDED.potongan_alpa,
			potongan_terlambat = EXCLUDED.potongan_terlambat,
			potongan_izin = EXCLUDED.potongan_izin,
			potongan_sakit = EXCLUDED.potongan_sakit,
			updated_at = NOW()
		RETURNING company_id, potongan_alpa, potongan_terlambat, potongan_izin, potongan_sakit, updated_at
	`

	var s payroll.PayrollSettings
	err := q.QueryRow(ctx, query,
		settings.CompanyID, settings.PotonganAlpa, settings.PotonganTerlambat,
		settings.PotonganIzin, settings.PotonganSakit,
	).Scan(
		&s.CompanyID, &s.PotonganAlpa, &s.PotonganTerlambat, &s.PotonganIzin, &s.PotonganSakit, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollSettings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return s, nil
}

// ========== PAYROLL RECORDS ==========

const payrollRecordColumns = `
	id, company_id, employee_id, employee_name, period_year, period_month,
	gaji_pokok, tunjangan, total_potongan, gaji_bersih,
	alpa_count, terlambat_count, izin_count, sakit_count,
	breakdown, keterangan, created_at
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var pr payroll.PayrollRecord
	var breakdownJSON []byte
	err := row.Scan(
		&pr.ID, &pr.CompanyID, &pr.EmployeeID, &pr.EmployeeName, &pr.PeriodYear, &pr.PeriodMonth,
		&pr.GajiPokok, &pr.Tunjangan, &pr.TotalPotongan, &pr.GajiBersih,
		&pr.AlpaCount, &pr.TerlambatCount, &pr.IzinCount, &pr.SakitCount,
		&breakdownJSON, &pr.Keterangan, &pr.CreatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	var items []deduction.BreakdownItemResponse
	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &items); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to decode breakdown: %w", err)
		}
	}
	pr.Breakdown = make([]deduction.BreakdownItem, 0, len(items))
	for _, it := range items {
		pr.Breakdown = append(pr.Breakdown, it.ToItem())
	}

	return pr, nil
}

func collectPayrollRecords(rows pgx.Rows) ([]payroll.PayrollRecord, error) {
	defer rows.Close()

	records := []payroll.PayrollRecord{}
	for rows.Next() {
		pr, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}
	return records, nil
}

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	breakdownJSON, err := json.Marshal(deduction.NewBreakdownResponse(record.Breakdown))
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode breakdown: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			id, company_id, employee_id, employee_name, period_year, period_month,
			gaji_pokok, tunjangan, total_potongan, gaji_bersih,
			alpa_count, terlambat_count, izin_count, sakit_count,
			breakdown, keterangan
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + payrollRecordColumns

	created, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.ID, record.CompanyID, record.EmployeeID, record.EmployeeName, record.PeriodYear, record.PeriodMonth,
		record.GajiPokok, record.Tunjangan, record.TotalPotongan, record.GajiBersih,
		record.AlpaCount, record.TerlambatCount, record.IzinCount, record.SakitCount,
		breakdownJSON, record.Keterangan,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollRecordColumns + `
		FROM payroll_records
		WHERE id = $1 AND company_id = $2
	`

	pr, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return pr, nil
}

func (r *payrollRepository) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollRecordColumns + `
		FROM payroll_records
		WHERE LOWER(TRIM(employee_id)) = LOWER(TRIM($1)) AND period_month = $2 AND period_year = $3 AND company_id = $4
	`

	pr, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return pr, nil
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_records
		WHERE company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Periode != "" {
		if period, err := deduction.ParsePeriod(filter.Periode); err == nil {
			baseQuery += fmt.Sprintf(" AND period_year = $%d AND period_month = $%d", argIdx, argIdx+1)
			args = append(args, period.Year, int(period.Month))
			argIdx += 2
		}
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND LOWER(TRIM(employee_id)) = LOWER(TRIM($%d))", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Count query
	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	// Sort
	sortColumn := "created_at"
	if filter.SortBy != "" {
		allowedColumns := map[string]string{
			"created_at":    "created_at",
			"period":        "period_year DESC, period_month",
			"employee_name": "employee_name",
			"gaji_bersih":   "gaji_bersih",
		}
		if col, ok := allowedColumns[filter.SortBy]; ok {
			sortColumn = col
		}
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, payrollRecordColumns, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}

	records, err := collectPayrollRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

func (r *payrollRepository) ListPayrollRecordsByPeriod(ctx context.Context, companyID string, month, year int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollRecordColumns + `
		FROM payroll_records
		WHERE company_id = $1 AND period_month = $2 AND period_year = $3
		ORDER BY employee_name ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query, companyID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records by period: %w", err)
	}

	return collectPayrollRecords(rows)
}

func (r *payrollRepository) DeletePayrollRecord(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}
