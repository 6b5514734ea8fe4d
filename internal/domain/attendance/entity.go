package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
)

// Attendance is one employee-day. JamMasuk and JamKeluar are wall-clock
// "HH:MM" strings in the company timezone.
type Attendance struct {
	ID                string
	CompanyID         string
	EmployeeID        string
	Tanggal           time.Time
	Status            deduction.AttendanceStatus
	JamMasuk          *string
	JamKeluar         *string
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ToRecord projects the row onto the calculator input.
func (a Attendance) ToRecord() deduction.AttendanceRecord {
	rec := deduction.AttendanceRecord{
		EmployeeID: a.EmployeeID,
		Tanggal:    deduction.DateOf(a.Tanggal),
		Status:     a.Status,
	}
	if a.JamMasuk != nil {
		rec.JamMasuk = *a.JamMasuk
	}
	return rec
}

func ToRecords(rows []Attendance) []deduction.AttendanceRecord {
	records := make([]deduction.AttendanceRecord, 0, len(rows))
	for _, a := range rows {
		records = append(records, a.ToRecord())
	}
	return records
}
