package deduction

import "context"

// DeductionService resolves the caller's rate table and runs the calculator.
type DeductionService interface {
	// Calculate uses the records sent by the client.
	Calculate(ctx context.Context, req CalculateRequest) (ResultResponse, error)

	// CalculateForEmployee loads the employee's attendance and leave records
	// for the period from storage.
	CalculateForEmployee(ctx context.Context, employeeID string, periode string) (ResultResponse, error)

	// Compute is the storage-backed calculation returning the domain Result,
	// used by payroll generation.
	Compute(ctx context.Context, companyID, employeeID string, period Period) (Result, error)
}
