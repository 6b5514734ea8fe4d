package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, company_id, employee_id, jenis_pengajuan, alasan,
	tanggal_pengajuan, tanggal_mulai, tanggal_selesai, status,
	approved_by, approved_at, rejection_reason, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.CompanyID, &lr.EmployeeID, &lr.JenisPengajuan, &lr.Alasan,
		&lr.TanggalPengajuan, &lr.TanggalMulai, &lr.TanggalSelesai, &lr.Status,
		&lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return requests, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, company_id, employee_id, jenis_pengajuan, alasan,
			tanggal_pengajuan, tanggal_mulai, tanggal_selesai, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.ID,
		request.CompanyID,
		request.EmployeeID,
		request.JenisPengajuan,
		request.Alasan,
		request.TanggalPengajuan,
		request.TanggalMulai,
		request.TanggalSelesai,
		request.Status,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1 AND company_id = $2
	`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, companyID string, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM leave_requests
		WHERE company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND LOWER(TRIM(employee_id)) = LOWER(TRIM($%d))", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(deduction.ParseLeaveStatus(*filter.Status)))
		argIdx++
	}
	if filter.Periode != "" {
		if period, err := deduction.ParsePeriod(filter.Periode); err == nil {
			baseQuery += fmt.Sprintf(" AND tanggal_mulai BETWEEN $%d AND $%d", argIdx, argIdx+1)
			args = append(args, period.FirstDay().Time(), period.LastDay().Time())
			argIdx += 2
		}
	}

	// Count query
	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
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
		ORDER BY tanggal_pengajuan DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}

	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	return requests, totalCount, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			status = $1,
			approved_by = $2,
			approved_at = $3,
			rejection_reason = $4,
			updated_at = NOW()
		WHERE id = $5 AND company_id = $6 AND status = 'pending'
		RETURNING ` + leaveRequestColumns

	updated, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.Status,
		request.ApprovedBy,
		request.ApprovedAt,
		request.RejectionReason,
		request.ID,
		request.CompanyID,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	// Nothing updated: either the row is gone or it left pending already
	if _, getErr := r.GetByID(ctx, request.ID, request.CompanyID); getErr != nil {
		return leave.LeaveRequest{}, getErr
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
}

// ListByStartDate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStartDate(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE company_id = $1 AND LOWER(TRIM(employee_id)) = LOWER(TRIM($2)) AND tanggal_mulai BETWEEN $3 AND $4
		ORDER BY tanggal_mulai ASC
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by start date: %w", err)
	}

	return collectLeaveRequests(rows)
}
