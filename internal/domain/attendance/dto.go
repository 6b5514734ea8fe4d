package attendance

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *ClockInRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

type ClockOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *ClockOutRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

func validateCoordinates(lat, lng float64) error {
	var errs validator.ValidationErrors

	if lat < -90 || lat > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if lng < -180 || lng > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkStatusRequest struct {
	EmployeeID string `json:"employee_id"`
	Tanggal    string `json:"tanggal"`
	Status     string `json:"status"`
}

func (r *MarkStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Tanggal); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "tanggal",
			Message: "tanggal must be in YYYY-MM-DD format",
		})
	}

	switch deduction.ParseAttendanceStatus(r.Status) {
	case deduction.AttendanceStatusIzin, deduction.AttendanceStatusSakit, deduction.AttendanceStatusAlpa:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of izin, sakit, alpa",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttendanceFilter selects one pay period. An empty Periode means the current month.
type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Periode    string  `json:"periode,omitempty"`
}

func (f *AttendanceFilter) Validate() error {
	if f.Periode != "" && !validator.IsValidPeriod(f.Periode) {
		return validator.ValidationErrors{{
			Field:   "periode",
			Message: "periode must be in YYYY-MM format",
		}}
	}
	return nil
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	Tanggal           string   `json:"tanggal"`
	Status            string   `json:"status"`
	JamMasuk          *string  `json:"jam_masuk,omitempty"`
	JamKeluar         *string  `json:"jam_keluar,omitempty"`
	ClockInLatitude   *float64 `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64 `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64 `json:"clock_out_longitude,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		Tanggal:           a.Tanggal.Format("2006-01-02"),
		Status:            string(a.Status),
		JamMasuk:          a.JamMasuk,
		JamKeluar:         a.JamKeluar,
		ClockInLatitude:   a.ClockInLatitude,
		ClockInLongitude:  a.ClockInLongitude,
		ClockOutLatitude:  a.ClockOutLatitude,
		ClockOutLongitude: a.ClockOutLongitude,
	}
}

type ListAttendanceResponse struct {
	Periode    string               `json:"periode"`
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
}
