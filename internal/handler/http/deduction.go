package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
)

type DeductionHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	CalculateForEmployee(w http.ResponseWriter, r *http.Request)
}

type deductionHandlerImpl struct {
	deductionService deduction.DeductionService
}

func NewDeductionHandler(deductionService deduction.DeductionService) DeductionHandler {
	return &deductionHandlerImpl{
		deductionService: deductionService,
	}
}

// Calculate runs the calculator over the records in the request body.
func (h *deductionHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req deduction.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.deductionService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CalculateForEmployee runs the calculator over stored records.
func (h *deductionHandlerImpl) CalculateForEmployee(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.deductionService.CalculateForEmployee(r.Context(), query.Get("employee_id"), query.Get("periode"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
