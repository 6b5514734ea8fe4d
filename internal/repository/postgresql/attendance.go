package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, company_id, employee_id, tanggal, status, jam_masuk, jam_keluar,
	clock_in_latitude, clock_in_longitude, clock_out_latitude, clock_out_longitude,
	created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.CompanyID, &att.EmployeeID, &att.Tanggal, &att.Status, &att.JamMasuk, &att.JamKeluar,
		&att.ClockInLatitude, &att.ClockInLongitude, &att.ClockOutLatitude, &att.ClockOutLongitude,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, company_id, employee_id, tanggal, status, jam_masuk,
			clock_in_latitude, clock_in_longitude
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.CompanyID,
		newAttendance.EmployeeID,
		newAttendance.Tanggal,
		newAttendance.Status,
		newAttendance.JamMasuk,
		newAttendance.ClockInLatitude,
		newAttendance.ClockInLongitude,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND tanggal = $2 AND company_id = $3
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			status = $1,
			jam_masuk = $2,
			jam_keluar = $3,
			clock_in_latitude = $4,
			clock_in_longitude = $5,
			clock_out_latitude = $6,
			clock_out_longitude = $7,
			updated_at = NOW()
		WHERE id = $8 AND company_id = $9
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.Status,
		att.JamMasuk,
		att.JamKeluar,
		att.ClockInLatitude,
		att.ClockInLongitude,
		att.ClockOutLatitude,
		att.ClockOutLongitude,
		att.ID,
		att.CompanyID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return updated, nil
}

// UpsertStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertStatus(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, company_id, employee_id, tanggal, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, employee_id, tanggal) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		att.ID, att.CompanyID, att.EmployeeID, att.Tanggal, att.Status,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance status: %w", err)
	}

	return saved, nil
}

// ListByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, companyID string, employeeID *string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE company_id = $1 AND tanggal BETWEEN $2 AND $3
	`
	args := []interface{}{companyID, from, to}

	if employeeID != nil {
		query += " AND LOWER(TRIM(employee_id)) = LOWER(TRIM($4))"
		args = append(args, *employeeID)
	}
	query += " ORDER BY tanggal ASC, employee_id ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, before time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE tanggal < $1 AND jam_masuk IS NOT NULL AND jam_keluar IS NULL
		ORDER BY tanggal ASC
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (attendance.Attendance, error) {
		return scanAttendance(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan open attendance: %w", err)
	}

	return records, nil
}
