package deduction

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AttendanceStatus enum
type AttendanceStatus string

const (
	AttendanceStatusHadir AttendanceStatus = "hadir"
	AttendanceStatusIzin  AttendanceStatus = "izin"
	AttendanceStatusSakit AttendanceStatus = "sakit"
	AttendanceStatusAlpa  AttendanceStatus = "alpa"
)

// ParseAttendanceStatus normalizes casing and whitespace. Unknown values are
// returned as-is and match no category.
func ParseAttendanceStatus(s string) AttendanceStatus {
	return AttendanceStatus(strings.ToLower(strings.TrimSpace(s)))
}

// LeaveStatus enum
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

func ParseLeaveStatus(s string) LeaveStatus {
	return LeaveStatus(strings.ToLower(strings.TrimSpace(s)))
}

// LeaveKind is the normalized form of the free-text jenis_pengajuan field.
type LeaveKind int

const (
	LeaveKindUnknown LeaveKind = iota
	LeaveKindIzin
	LeaveKindCuti
	LeaveKindSakit
)

func (k LeaveKind) String() string {
	switch k {
	case LeaveKindIzin:
		return "izin"
	case LeaveKindCuti:
		return "cuti"
	case LeaveKindSakit:
		return "sakit"
	default:
		return "unknown"
	}
}

// ParseLeaveKind maps free text to a LeaveKind with a case-insensitive
// substring match. "izin" and "cuti" win over "sakit" when both appear.
func ParseLeaveKind(s string) LeaveKind {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "izin"):
		return LeaveKindIzin
	case strings.Contains(lower, "cuti"):
		return LeaveKindCuti
	case strings.Contains(lower, "sakit"):
		return LeaveKindSakit
	default:
		return LeaveKindUnknown
	}
}

// AttendanceRecord is one clock-in day of one employee.
type AttendanceRecord struct {
	EmployeeID string
	Tanggal    Date
	Status     AttendanceStatus
	JamMasuk   string // "HH:MM", empty when the employee never clocked in
}

// LeaveRecord is one leave span of one employee.
type LeaveRecord struct {
	EmployeeID string
	Status     LeaveStatus
	Kind       LeaveKind
	Start      Date
	End        Date
}

// Category enum
type Category string

const (
	CategoryAlpa      Category = "Alpa"
	CategoryTerlambat Category = "Terlambat"
	CategoryIzinCuti  Category = "Izin/Cuti"
	CategorySakit     Category = "Sakit"
)

// Icon returns the display icon shown next to the category.
func (c Category) Icon() string {
	switch c {
	case CategoryAlpa:
		return "❌"
	case CategoryTerlambat:
		return "⏰"
	case CategoryIzinCuti:
		return "📝"
	case CategorySakit:
		return "🏥"
	default:
		return ""
	}
}

// Rates is the per-unit deduction table (potongan).
type Rates struct {
	Alpa      decimal.Decimal // per day
	Terlambat decimal.Decimal // per occurrence
	Izin      decimal.Decimal // per day
	Sakit     decimal.Decimal // per day
}

// DefaultRates returns the stock rate table.
func DefaultRates() Rates {
	return Rates{
		Alpa:      decimal.NewFromInt(100000),
		Terlambat: decimal.NewFromInt(25000),
		Izin:      decimal.NewFromInt(50000),
		Sakit:     decimal.Zero,
	}
}

type BreakdownItem struct {
	Category Category
	Icon     string
	Count    int
	Amount   decimal.Decimal
}

// Result is the deduction report for one employee and one period.
// TotalDeduction always equals the sum of Breakdown amounts.
type Result struct {
	AlpaCount      int
	TerlambatCount int
	IzinCount      int
	SakitCount     int
	TotalDeduction decimal.Decimal
	Breakdown      []BreakdownItem
	ReasonText     string
}

const NoDeductionReason = "no deduction"

// ZeroResult is returned when there is nothing to deduct.
func ZeroResult() Result {
	return Result{
		TotalDeduction: decimal.Zero,
		Breakdown:      []BreakdownItem{},
		ReasonText:     NoDeductionReason,
	}
}
