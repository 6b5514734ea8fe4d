package leave

import (
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	JenisPengajuan string `json:"jenis_pengajuan"`
	Alasan         string `json:"alasan"`
	TanggalMulai   string `json:"tanggal_mulai"`
	TanggalSelesai string `json:"tanggal_selesai"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JenisPengajuan) {
		errs = append(errs, validator.ValidationError{
			Field:   "jenis_pengajuan",
			Message: "jenis_pengajuan is required",
		})
	}

	start, startOK := validator.IsValidDate(r.TanggalMulai)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "tanggal_mulai",
			Message: "tanggal_mulai must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.TanggalSelesai)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "tanggal_selesai",
			Message: "tanggal_selesai must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "tanggal_selesai",
			Message: "tanggal_selesai must not be before tanggal_mulai",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectLeaveRequest struct {
	ID              string `json:"-"`
	RejectionReason string `json:"rejection_reason"`
}

func (r *RejectLeaveRequest) Validate() error {
	if validator.IsEmpty(r.RejectionReason) {
		return validator.ValidationErrors{{
			Field:   "rejection_reason",
			Message: "rejection_reason is required",
		}}
	}
	return nil
}

type LeaveFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Periode    string  `json:"periode,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil {
		switch deduction.ParseLeaveStatus(*f.Status) {
		case deduction.LeaveStatusPending, deduction.LeaveStatusApproved, deduction.LeaveStatusRejected:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of pending, approved, rejected",
			})
		}
	}
	if f.Periode != "" && !validator.IsValidPeriod(f.Periode) {
		errs = append(errs, validator.ValidationError{
			Field:   "periode",
			Message: "periode must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	JenisPengajuan   string  `json:"jenis_pengajuan"`
	Kategori         string  `json:"kategori"`
	Alasan           string  `json:"alasan"`
	TanggalPengajuan string  `json:"tanggal_pengajuan"`
	TanggalMulai     string  `json:"tanggal_mulai"`
	TanggalSelesai   string  `json:"tanggal_selesai"`
	TotalHari        int     `json:"total_hari"`
	Status           string  `json:"status"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
}

func NewLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:               l.ID,
		EmployeeID:       l.EmployeeID,
		JenisPengajuan:   l.JenisPengajuan,
		Kategori:         strings.ToLower(kategori(l.JenisPengajuan)),
		Alasan:           l.Alasan,
		TanggalPengajuan: l.TanggalPengajuan.Format("2006-01-02"),
		TanggalMulai:     l.TanggalMulai.Format("2006-01-02"),
		TanggalSelesai:   l.TanggalSelesai.Format("2006-01-02"),
		TotalHari:        l.Days(),
		Status:           string(l.Status),
		ApprovedBy:       l.ApprovedBy,
		RejectionReason:  l.RejectionReason,
	}
	if l.ApprovedAt != nil {
		at := l.ApprovedAt.Format("2006-01-02 15:04:05")
		resp.ApprovedAt = &at
	}
	return resp
}

// kategori names the deduction bucket the request will count towards.
func kategori(jenis string) string {
	if deduction.ParseLeaveKind(jenis) == deduction.LeaveKindSakit {
		return string(deduction.CategorySakit)
	}
	return string(deduction.CategoryIzinCuti)
}

type ListLeaveRequestResponse struct {
	Data       []LeaveRequestResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}
