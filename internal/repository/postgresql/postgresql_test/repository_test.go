package postgresql_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/amqp"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	deductionService "github.com/cmlabs-hris/hris-payroll-go/internal/service/deduction"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newID(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestAttendanceRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()
	companyID := newID(t)

	jam := "08:15"
	lat, lng := -6.2, 106.8
	created, err := repo.Create(ctx, attendance.Attendance{
		ID: newID(t), CompanyID: companyID, EmployeeID: "E1", Tanggal: day("2025-11-03"),
		Status: deduction.AttendanceStatusHadir, JamMasuk: &jam, ClockInLatitude: &lat, ClockInLongitude: &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-03", created.Tanggal.Format("2006-01-02"))

	_, err = repo.Create(ctx, attendance.Attendance{
		ID: newID(t), CompanyID: companyID, EmployeeID: "E1", Tanggal: day("2025-11-03"),
		Status: deduction.AttendanceStatusHadir,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	_, err = repo.UpsertStatus(ctx, attendance.Attendance{
		ID: newID(t), CompanyID: companyID, EmployeeID: "E1", Tanggal: day("2025-11-04"),
		Status: deduction.AttendanceStatusAlpa,
	})
	require.NoError(t, err)

	employeeID := "E1"
	rows, err := repo.ListByDateRange(ctx, companyID, &employeeID, day("2025-11-01"), day("2025-11-30"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, deduction.AttendanceStatusAlpa, rows[1].Status)

	_, err = repo.GetByEmployeeAndDate(ctx, "E1", day("2025-11-05"), companyID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestLeaveRequestRepository_UpdateStatus(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewLeaveRequestRepository(setup.DB)
	ctx := context.Background()
	companyID := newID(t)

	created, err := repo.Create(ctx, leave.LeaveRequest{
		ID: newID(t), CompanyID: companyID, EmployeeID: "E1", JenisPengajuan: "Cuti Tahunan",
		TanggalPengajuan: day("2025-11-01"), TanggalMulai: day("2025-11-10"), TanggalSelesai: day("2025-11-12"),
		Status: deduction.LeaveStatusPending,
	})
	require.NoError(t, err)

	approver := "manager-1"
	now := time.Now()
	created.Status = deduction.LeaveStatusApproved
	created.ApprovedBy = &approver
	created.ApprovedAt = &now
	approved, err := repo.UpdateStatus(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, deduction.LeaveStatusApproved, approved.Status)

	_, err = repo.UpdateStatus(ctx, created)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	created.ID = newID(t)
	_, err = repo.UpdateStatus(ctx, created)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	rows, err := repo.ListByStartDate(ctx, companyID, "E1", day("2025-11-01"), day("2025-11-30"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Days())
}

func TestPayrollRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewPayrollRepository(setup.DB)
	ctx := context.Background()
	companyID := newID(t)

	_, err := repo.GetSettings(ctx, companyID)
	assert.ErrorIs(t, err, payroll.ErrPayrollSettingsNotFound)

	saved, err := repo.UpsertSettings(ctx, payroll.SettingsFromRates(companyID, deduction.DefaultRates()))
	require.NoError(t, err)
	assert.True(t, saved.PotonganAlpa.Equal(decimal.NewFromInt(100000)))

	record := payroll.PayrollRecord{
		ID: newID(t), CompanyID: companyID, EmployeeID: "E1", EmployeeName: "Budi",
		PeriodYear: 2025, PeriodMonth: 11,
		GajiPokok: decimal.NewFromInt(5000000), Tunjangan: decimal.NewFromInt(500000),
		TotalPotongan: decimal.NewFromInt(125000), GajiBersih: decimal.NewFromInt(5375000),
		AlpaCount: 1, TerlambatCount: 1,
		Breakdown: []deduction.BreakdownItem{
			{Category: deduction.CategoryAlpa, Icon: deduction.CategoryAlpa.Icon(), Count: 1, Amount: decimal.NewFromInt(100000)},
			{Category: deduction.CategoryTerlambat, Icon: deduction.CategoryTerlambat.Icon(), Count: 1, Amount: decimal.NewFromInt(25000)},
		},
	}
	created, err := repo.CreatePayrollRecord(ctx, record)
	require.NoError(t, err)
	require.Len(t, created.Breakdown, 2)
	assert.Equal(t, deduction.CategoryTerlambat, created.Breakdown[1].Category)
	assert.True(t, created.GajiBersih.Equal(decimal.NewFromInt(5375000)))

	record.ID = newID(t)
	_, err = repo.CreatePayrollRecord(ctx, record)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)

	list, total, err := repo.ListPayrollRecords(ctx, companyID, payroll.PayrollFilter{Periode: "2025-11"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	require.NoError(t, repo.DeletePayrollRecord(ctx, created.ID, companyID))
	err = repo.DeletePayrollRecord(ctx, created.ID, companyID)
	assert.True(t, errors.Is(err, payroll.ErrPayrollRecordNotFound))
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewPayrollRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)
	ctx := context.Background()
	companyID := newID(t)

	boom := errors.New("abort")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.UpsertSettings(ctx, payroll.SettingsFromRates(companyID, deduction.DefaultRates()))
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetSettings(ctx, companyID)
	assert.ErrorIs(t, err, payroll.ErrPayrollSettingsNotFound)
}

func TestAttendanceRepository_ListOpenBefore(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()
	companyID := newID(t)

	jam := "08:00"
	_, err := repo.Create(ctx, attendance.Attendance{
		ID: newID(t), CompanyID: companyID, EmployeeID: "E1", Tanggal: day("2025-11-03"),
		Status: deduction.AttendanceStatusHadir, JamMasuk: &jam,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.Attendance{
		ID: newID(t), CompanyID: companyID, EmployeeID: "E1", Tanggal: day("2025-11-04"),
		Status: deduction.AttendanceStatusHadir, JamMasuk: &jam,
	})
	require.NoError(t, err)

	open, err := repo.ListOpenBefore(ctx, day("2025-11-04"))
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "2025-11-03", open[0].Tanggal.Format("2006-01-02"))
}

func TestPayrollService_CreateRecord(t *testing.T) {
	setup := NewTestDatabase(t)
	attendanceRepo := postgresql.NewAttendanceRepository(setup.DB)
	leaveRepo := postgresql.NewLeaveRequestRepository(setup.DB)
	payrollRepo := postgresql.NewPayrollRepository(setup.DB)
	companyID := newID(t)

	calc := deductionService.NewCalculator(deduction.DefaultRates(), deductionService.DefaultLateCutoff)
	deductions := deductionService.NewDeductionService(attendanceRepo, leaveRepo, payrollRepo, calc)
	svc := payrollService.NewPayrollService(payrollRepo, postgresql.NewTransactor(setup.DB), deductions,
		amqp.NoopPublisher{}, deduction.DefaultRates(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	token := jwxjwt.New()
	require.NoError(t, token.Set("company_id", companyID))
	require.NoError(t, token.Set("user_id", "u-manager"))
	require.NoError(t, token.Set("role", "manager"))
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	_, err := attendanceRepo.Create(ctx, attendance.Attendance{
		ID: newID(t), CompanyID: companyID, EmployeeID: "E1", Tanggal: day("2025-11-03"),
		Status: deduction.AttendanceStatusAlpa,
	})
	require.NoError(t, err)
	_, err = leaveRepo.Create(ctx, leave.LeaveRequest{
		ID: newID(t), CompanyID: companyID, EmployeeID: "E1", JenisPengajuan: "Cuti",
		TanggalPengajuan: day("2025-11-01"), TanggalMulai: day("2025-11-10"), TanggalSelesai: day("2025-11-12"),
		Status: deduction.LeaveStatusApproved,
	})
	require.NoError(t, err)

	req := payroll.CreatePayrollRequest{
		EmployeeID: "e1", EmployeeName: "Budi", Periode: "2025-11",
		GajiPokok: decimal.NewFromInt(5000000), Tunjangan: decimal.NewFromInt(500000),
	}
	rec, err := svc.CreateRecord(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.AlpaCount)
	assert.Equal(t, 3, rec.IzinCount)
	assert.True(t, rec.GajiBersih.Equal(decimal.NewFromInt(5250000)), rec.GajiBersih.String())

	req.EmployeeID = " E1 "
	_, err = svc.CreateRecord(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}
