package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type PayrollSettingsResponse struct {
	CompanyID         string          `json:"company_id"`
	PotonganAlpa      decimal.Decimal `json:"potongan_alpa"`
	PotonganTerlambat decimal.Decimal `json:"potongan_terlambat"`
	PotonganIzin      decimal.Decimal `json:"potongan_izin"`
	PotonganSakit     decimal.Decimal `json:"potongan_sakit"`
	IsDefault         bool            `json:"is_default"`
}

func NewPayrollSettingsResponse(s PayrollSettings, isDefault bool) PayrollSettingsResponse {
	return PayrollSettingsResponse{
		CompanyID:         s.CompanyID,
		PotonganAlpa:      s.PotonganAlpa,
		PotonganTerlambat: s.PotonganTerlambat,
		PotonganIzin:      s.PotonganIzin,
		PotonganSakit:     s.PotonganSakit,
		IsDefault:         isDefault,
	}
}

type UpdatePayrollSettingsRequest struct {
	PotonganAlpa      *decimal.Decimal `json:"potongan_alpa,omitempty"`
	PotonganTerlambat *decimal.Decimal `json:"potongan_terlambat,omitempty"`
	PotonganIzin      *decimal.Decimal `json:"potongan_izin,omitempty"`
	PotonganSakit     *decimal.Decimal `json:"potongan_sakit,omitempty"`
}

func (r *UpdatePayrollSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	fields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"potongan_alpa", r.PotonganAlpa},
		{"potongan_terlambat", r.PotonganTerlambat},
		{"potongan_izin", r.PotonganIzin},
		{"potongan_sakit", r.PotonganSakit},
	}
	for _, f := range fields {
		if f.value != nil && f.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: f.name, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply overwrites the fields present in the request.
func (r *UpdatePayrollSettingsRequest) Apply(s PayrollSettings) PayrollSettings {
	if r.PotonganAlpa != nil {
		s.PotonganAlpa = *r.PotonganAlpa
	}
	if r.PotonganTerlambat != nil {
		s.PotonganTerlambat = *r.PotonganTerlambat
	}
	if r.PotonganIzin != nil {
		s.PotonganIzin = *r.PotonganIzin
	}
	if r.PotonganSakit != nil {
		s.PotonganSakit = *r.PotonganSakit
	}
	return s
}

// ========== PAYROLL RECORD DTOs ==========

type CreatePayrollRequest struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Periode      string          `json:"periode"`
	GajiPokok    decimal.Decimal `json:"gaji_pokok"`
	Tunjangan    decimal.Decimal `json:"tunjangan"`
	Keterangan   string          `json:"keterangan"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.Periode) {
		errs = append(errs, validator.ValidationError{Field: "periode", Message: "must be in YYYY-MM format"})
	}
	if !r.GajiPokok.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "gaji_pokok", Message: "must be greater than zero"})
	}
	if r.Tunjangan.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "tunjangan", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID             string                            `json:"id"`
	EmployeeID     string                            `json:"employee_id"`
	EmployeeName   string                            `json:"employee_name"`
	Periode        string                            `json:"periode"`
	GajiPokok      decimal.Decimal                   `json:"gaji_pokok"`
	Tunjangan      decimal.Decimal                   `json:"tunjangan"`
	TotalPotongan  decimal.Decimal                   `json:"total_potongan"`
	GajiBersih     decimal.Decimal                   `json:"gaji_bersih"`
	AlpaCount      int                               `json:"alpa_count"`
	TerlambatCount int                               `json:"terlambat_count"`
	IzinCount      int                               `json:"izin_count"`
	SakitCount     int                               `json:"sakit_count"`
	Breakdown      []deduction.BreakdownItemResponse `json:"breakdown"`
	Keterangan     string                            `json:"keterangan"`
	CreatedAt      string                            `json:"created_at"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		Periode:        r.Period().String(),
		GajiPokok:      r.GajiPokok,
		Tunjangan:      r.Tunjangan,
		TotalPotongan:  r.TotalPotongan,
		GajiBersih:     r.GajiBersih,
		AlpaCount:      r.AlpaCount,
		TerlambatCount: r.TerlambatCount,
		IzinCount:      r.IzinCount,
		SakitCount:     r.SakitCount,
		Breakdown:      deduction.NewBreakdownResponse(r.Breakdown),
		Keterangan:     r.Keterangan,
		CreatedAt:      r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

type PayrollFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Periode    string  `json:"periode,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	SortBy     string  `json:"sort_by"`
	SortOrder  string  `json:"sort_order"`
}

func (f *PayrollFilter) Validate() error {
	if f.Periode != "" && !validator.IsValidPeriod(f.Periode) {
		return validator.ValidationErrors{{Field: "periode", Message: "must be in YYYY-MM format"}}
	}
	return nil
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}
