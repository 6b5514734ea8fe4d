package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Token claims are missing or invalid")

	// User / role errors
	case errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "No company associated with this user")
	case errors.Is(err, user.ErrEmployeeIDRequired):
		Forbidden(w, "No employee profile associated with this user")

	// Deduction domain errors
	case errors.Is(err, deduction.ErrInvalidPeriod):
		BadRequest(w, "Invalid periode, expected YYYY-MM", map[string]string{"periode": err.Error()})
	case errors.Is(err, deduction.ErrEmployeeIDMissing):
		BadRequest(w, "employee_id is required", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not clocked in today", nil)
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrCannotApproveOwnRequest):
		Forbidden(w, "Cannot approve or reject your own leave request")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollSettingsNotFound):
		NotFound(w, "Payroll settings not found")
	case errors.Is(err, payroll.ErrNoPayrollRecordsForPeriod):
		NotFound(w, "No payroll records for this period")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
