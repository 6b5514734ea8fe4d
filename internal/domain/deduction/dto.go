package deduction

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== INPUT DTOs ==========

// FlexibleID accepts an identifier sent either as a JSON string or a JSON
// number. Anything else decodes to the empty id.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*f = ""
		return nil
	}
	*f = FlexibleID(n.String())
	return nil
}

type AttendanceInput struct {
	EmployeeID FlexibleID `json:"employee_id"`
	Tanggal    string     `json:"tanggal"`
	Status     string     `json:"status"`
	JamMasuk   string     `json:"jam_masuk"`
}

type LeaveInput struct {
	EmployeeID       FlexibleID `json:"employee_id"`
	Status           string     `json:"status"`
	JenisPengajuan   string     `json:"jenis_pengajuan"`
	TanggalMulai     string     `json:"tanggal_mulai"`
	TanggalPengajuan string     `json:"tanggal_pengajuan"`
	StartDate        string     `json:"start_date"`
	TanggalSelesai   string     `json:"tanggal_selesai"`
	EndDate          string     `json:"end_date"`
}

// CalculateRequest carries already-fetched records, the way the payroll form
// hands them over.
type CalculateRequest struct {
	EmployeeID FlexibleID        `json:"employee_id"`
	Periode    string            `json:"periode"`
	Attendance []AttendanceInput `json:"attendance"`
	Leaves     []LeaveInput      `json:"leaves"`
}

// ToRecord converts the wire form. Malformed fields become invalid values.
func (in AttendanceInput) ToRecord() AttendanceRecord {
	return AttendanceRecord{
		EmployeeID: string(in.EmployeeID),
		Tanggal:    ParseDate(in.Tanggal),
		Status:     ParseAttendanceStatus(in.Status),
		JamMasuk:   strings.TrimSpace(in.JamMasuk),
	}
}

// ToRecord converts the wire form. The start date falls back from
// tanggal_mulai to tanggal_pengajuan to start_date; the end date from
// tanggal_selesai to end_date.
func (in LeaveInput) ToRecord() LeaveRecord {
	return LeaveRecord{
		EmployeeID: string(in.EmployeeID),
		Status:     ParseLeaveStatus(in.Status),
		Kind:       ParseLeaveKind(in.JenisPengajuan),
		Start:      firstValidDate(in.TanggalMulai, in.TanggalPengajuan, in.StartDate),
		End:        firstValidDate(in.TanggalSelesai, in.EndDate),
	}
}

func firstValidDate(candidates ...string) Date {
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if d := ParseDate(c); d.Valid() {
			return d
		}
	}
	return Date{}
}

// Validate only checks the period. An empty employee id is not an error, it
// yields the zero result. Individual records are never rejected, malformed
// ones are skipped by the calculator.
func (r CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParsePeriod(r.Periode); err != nil {
		errs = append(errs, validator.ValidationError{Field: "periode", Message: "periode must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r CalculateRequest) AttendanceRecords() []AttendanceRecord {
	records := make([]AttendanceRecord, 0, len(r.Attendance))
	for _, a := range r.Attendance {
		records = append(records, a.ToRecord())
	}
	return records
}

func (r CalculateRequest) LeaveRecords() []LeaveRecord {
	records := make([]LeaveRecord, 0, len(r.Leaves))
	for _, l := range r.Leaves {
		records = append(records, l.ToRecord())
	}
	return records
}

// ========== RESPONSE DTOs ==========

type BreakdownItemResponse struct {
	Category string          `json:"category"`
	Icon     string          `json:"icon"`
	Count    int             `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

type ResultResponse struct {
	EmployeeID     string                  `json:"employee_id"`
	Periode        string                  `json:"periode"`
	AlpaCount      int                     `json:"alpa_count"`
	TerlambatCount int                     `json:"terlambat_count"`
	IzinCount      int                     `json:"izin_count"`
	SakitCount     int                     `json:"sakit_count"`
	TotalDeduction decimal.Decimal         `json:"total_deduction"`
	Breakdown      []BreakdownItemResponse `json:"breakdown"`
	ReasonText     string                  `json:"reason_text"`
}

func NewBreakdownResponse(items []BreakdownItem) []BreakdownItemResponse {
	out := make([]BreakdownItemResponse, 0, len(items))
	for _, b := range items {
		out = append(out, BreakdownItemResponse{
			Category: string(b.Category),
			Icon:     b.Icon,
			Count:    b.Count,
			Amount:   b.Amount,
		})
	}
	return out
}

func (b BreakdownItemResponse) ToItem() BreakdownItem {
	return BreakdownItem{
		Category: Category(b.Category),
		Icon:     b.Icon,
		Count:    b.Count,
		Amount:   b.Amount,
	}
}

func NewResultResponse(employeeID string, period Period, r Result) ResultResponse {
	return ResultResponse{
		EmployeeID:     employeeID,
		Periode:        period.String(),
		AlpaCount:      r.AlpaCount,
		TerlambatCount: r.TerlambatCount,
		IzinCount:      r.IzinCount,
		SakitCount:     r.SakitCount,
		TotalDeduction: r.TotalDeduction,
		Breakdown:      NewBreakdownResponse(r.Breakdown),
		ReasonText:     r.ReasonText,
	}
}
