package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
)

// LeaveRequest is a leave submission. JenisPengajuan is free text entered by
// the employee ("Cuti Tahunan", "Izin keluarga", "Sakit" ...).
type LeaveRequest struct {
	ID               string
	CompanyID        string
	EmployeeID       string
	JenisPengajuan   string
	Alasan           string
	TanggalPengajuan time.Time
	TanggalMulai     time.Time
	TanggalSelesai   time.Time
	Status           deduction.LeaveStatus
	ApprovedBy       *string
	ApprovedAt       *time.Time
	RejectionReason  *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Days counts both endpoints.
func (l LeaveRequest) Days() int {
	return deduction.DateOf(l.TanggalSelesai).DaysSince(deduction.DateOf(l.TanggalMulai)) + 1
}

func (l LeaveRequest) IsPending() bool {
	return l.Status == deduction.LeaveStatusPending
}

// ToRecord projects the row onto the calculator input.
func (l LeaveRequest) ToRecord() deduction.LeaveRecord {
	start := deduction.DateOf(l.TanggalMulai)
	if !start.Valid() {
		start = deduction.DateOf(l.TanggalPengajuan)
	}
	return deduction.LeaveRecord{
		EmployeeID: l.EmployeeID,
		Status:     l.Status,
		Kind:       deduction.ParseLeaveKind(l.JenisPengajuan),
		Start:      start,
		End:        deduction.DateOf(l.TanggalSelesai),
	}
}

func ToRecords(rows []LeaveRequest) []deduction.LeaveRecord {
	records := make([]deduction.LeaveRecord, 0, len(rows))
	for _, l := range rows {
		records = append(records, l.ToRecord())
	}
	return records
}
