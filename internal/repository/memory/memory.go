// Package memory holds map-backed repositories with the same contracts as the
// PostgreSQL ones. Service and handler tests run against them.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
)

func sameDay(a, b time.Time) bool {
	return deduction.DateOf(a).String() == deduction.DateOf(b).String()
}

// sameEmployee matches ids the way the SQL repositories do.
func sameEmployee(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func inRange(t, from, to time.Time) bool {
	d := deduction.DateOf(t).Time()
	return !d.Before(deduction.DateOf(from).Time()) && !d.After(deduction.DateOf(to).Time())
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ========== ATTENDANCE ==========

type AttendanceRepository struct {
	mu   sync.Mutex
	rows map[string]attendance.Attendance
	// Err, when set, is returned by every call.
	Err error
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{rows: make(map[string]attendance.Attendance)}
}

var _ attendance.AttendanceRepository = (*AttendanceRepository)(nil)

func (r *AttendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return attendance.Attendance{}, r.Err
	}
	for _, existing := range r.rows {
		if existing.CompanyID == a.CompanyID && existing.EmployeeID == a.EmployeeID && sameDay(existing.Tanggal, a.Tanggal) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.rows[a.ID] = a
	return a, nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return attendance.Attendance{}, r.Err
	}
	for _, a := range r.rows {
		if a.CompanyID == companyID && a.EmployeeID == employeeID && sameDay(a.Tanggal, date) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepository) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return attendance.Attendance{}, r.Err
	}
	existing, ok := r.rows[a.ID]
	if !ok || existing.CompanyID != a.CompanyID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	r.rows[a.ID] = a
	return a, nil
}

func (r *AttendanceRepository) UpsertStatus(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return attendance.Attendance{}, r.Err
	}
	for id, existing := range r.rows {
		if existing.CompanyID == a.CompanyID && existing.EmployeeID == a.EmployeeID && sameDay(existing.Tanggal, a.Tanggal) {
			existing.Status = a.Status
			existing.UpdatedAt = time.Now()
			r.rows[id] = existing
			return existing, nil
		}
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.rows[a.ID] = a
	return a, nil
}

func (r *AttendanceRepository) ListByDateRange(ctx context.Context, companyID string, employeeID *string, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []attendance.Attendance{}
	for _, a := range r.rows {
		if a.CompanyID != companyID || !inRange(a.Tanggal, from, to) {
			continue
		}
		if employeeID != nil && !sameEmployee(a.EmployeeID, *employeeID) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !sameDay(out[i].Tanggal, out[j].Tanggal) {
			return out[i].Tanggal.Before(out[j].Tanggal)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

func (r *AttendanceRepository) ListOpenBefore(ctx context.Context, before time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []attendance.Attendance{}
	for _, a := range r.rows {
		if a.Tanggal.Before(before) && a.JamMasuk != nil && a.JamKeluar == nil {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tanggal.Before(out[j].Tanggal) })
	return out, nil
}

// ========== LEAVE REQUESTS ==========

type LeaveRequestRepository struct {
	mu   sync.Mutex
	rows map[string]leave.LeaveRequest
	Err  error
}

func NewLeaveRequestRepository() *LeaveRequestRepository {
	return &LeaveRequestRepository{rows: make(map[string]leave.LeaveRequest)}
}

var _ leave.LeaveRequestRepository = (*LeaveRequestRepository)(nil)

func (r *LeaveRequestRepository) Create(ctx context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return leave.LeaveRequest{}, r.Err
	}
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	r.rows[l.ID] = l
	return l, nil
}

func (r *LeaveRequestRepository) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return leave.LeaveRequest{}, r.Err
	}
	l, ok := r.rows[id]
	if !ok || l.CompanyID != companyID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return l, nil
}

func (r *LeaveRequestRepository) List(ctx context.Context, companyID string, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	var period deduction.Period
	if filter.Periode != "" {
		period, _ = deduction.ParsePeriod(filter.Periode)
	}
	out := []leave.LeaveRequest{}
	for _, l := range r.rows {
		if l.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && !sameEmployee(l.EmployeeID, *filter.EmployeeID) {
			continue
		}
		if filter.Status != nil && l.Status != deduction.ParseLeaveStatus(*filter.Status) {
			continue
		}
		if !period.IsZero() && !period.Contains(deduction.DateOf(l.TanggalMulai)) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *LeaveRequestRepository) UpdateStatus(ctx context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return leave.LeaveRequest{}, r.Err
	}
	existing, ok := r.rows[l.ID]
	if !ok || existing.CompanyID != l.CompanyID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if !existing.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	existing.Status = l.Status
	existing.ApprovedBy = l.ApprovedBy
	existing.ApprovedAt = l.ApprovedAt
	existing.RejectionReason = l.RejectionReason
	existing.UpdatedAt = time.Now()
	r.rows[l.ID] = existing
	return existing, nil
}

func (r *LeaveRequestRepository) ListByStartDate(ctx context.Context, companyID string, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []leave.LeaveRequest{}
	for _, l := range r.rows {
		if l.CompanyID == companyID && sameEmployee(l.EmployeeID, employeeID) && inRange(l.TanggalMulai, from, to) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TanggalMulai.Before(out[j].TanggalMulai) })
	return out, nil
}

// Transactor runs fn directly. The memory repositories have no rollback.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ========== PAYROLL ==========

type PayrollRepository struct {
	mu       sync.Mutex
	settings map[string]payroll.PayrollSettings
	records  map[string]payroll.PayrollRecord
	Err      error
}

func NewPayrollRepository() *PayrollRepository {
	return &PayrollRepository{
		settings: make(map[string]payroll.PayrollSettings),
		records:  make(map[string]payroll.PayrollRecord),
	}
}

var _ payroll.PayrollRepository = (*PayrollRepository)(nil)

func (r *PayrollRepository) GetSettings(ctx context.Context, companyID string) (payroll.PayrollSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return payroll.PayrollSettings{}, r.Err
	}
	s, ok := r.settings[companyID]
	if !ok {
		return payroll.PayrollSettings{}, payroll.ErrPayrollSettingsNotFound
	}
	return s, nil
}

func (r *PayrollRepository) UpsertSettings(ctx context.Context, s payroll.PayrollSettings) (payroll.PayrollSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return payroll.PayrollSettings{}, r.Err
	}
	s.UpdatedAt = time.Now()
	r.settings[s.CompanyID] = s
	return s, nil
}

func (r *PayrollRepository) CreatePayrollRecord(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return payroll.PayrollRecord{}, r.Err
	}
	for _, existing := range r.records {
		if existing.CompanyID == rec.CompanyID && sameEmployee(existing.EmployeeID, rec.EmployeeID) &&
			existing.PeriodYear == rec.PeriodYear && existing.PeriodMonth == rec.PeriodMonth {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}
	rec.CreatedAt = time.Now()
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *PayrollRepository) GetPayrollRecordByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return payroll.PayrollRecord{}, r.Err
	}
	rec, ok := r.records[id]
	if !ok || rec.CompanyID != companyID {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (r *PayrollRepository) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return payroll.PayrollRecord{}, r.Err
	}
	for _, rec := range r.records {
		if rec.CompanyID == companyID && sameEmployee(rec.EmployeeID, employeeID) && rec.PeriodMonth == month && rec.PeriodYear == year {
			return rec, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (r *PayrollRepository) ListPayrollRecords(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	var period deduction.Period
	if filter.Periode != "" {
		period, _ = deduction.ParsePeriod(filter.Periode)
	}
	out := []payroll.PayrollRecord{}
	for _, rec := range r.records {
		if rec.CompanyID != companyID {
			continue
		}
		if !period.IsZero() && rec.Period() != period {
			continue
		}
		if filter.EmployeeID != nil && !sameEmployee(rec.EmployeeID, *filter.EmployeeID) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *PayrollRepository) ListPayrollRecordsByPeriod(ctx context.Context, companyID string, month, year int) ([]payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []payroll.PayrollRecord{}
	for _, rec := range r.records {
		if rec.CompanyID == companyID && rec.PeriodMonth == month && rec.PeriodYear == year {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeName != out[j].EmployeeName {
			return out[i].EmployeeName < out[j].EmployeeName
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

func (r *PayrollRepository) DeletePayrollRecord(ctx context.Context, id string, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	rec, ok := r.records[id]
	if !ok || rec.CompanyID != companyID {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(r.records, id)
	return nil
}
