package deduction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"golang.org/x/sync/errgroup"
)

type DeductionServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	payrollRepo    payroll.PayrollRepository
	calculator     *Calculator
}

func NewDeductionService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	payrollRepo payroll.PayrollRepository,
	calculator *Calculator,
) deduction.DeductionService {
	return &DeductionServiceImpl{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		payrollRepo:    payrollRepo,
		calculator:     calculator,
	}
}

// Calculate implements deduction.DeductionService.
func (s *DeductionServiceImpl) Calculate(ctx context.Context, req deduction.CalculateRequest) (deduction.ResultResponse, error) {
	if err := req.Validate(); err != nil {
		return deduction.ResultResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return deduction.ResultResponse{}, err
	}

	period, _ := deduction.ParsePeriod(req.Periode)
	calc, err := s.calculatorFor(ctx, claims.CompanyID)
	if err != nil {
		return deduction.ResultResponse{}, err
	}

	employeeID := strings.TrimSpace(string(req.EmployeeID))
	result := calc.Calculate(employeeID, period, req.AttendanceRecords(), req.LeaveRecords())
	return deduction.NewResultResponse(employeeID, period, result), nil
}

// CalculateForEmployee implements deduction.DeductionService.
func (s *DeductionServiceImpl) CalculateForEmployee(ctx context.Context, employeeID string, periode string) (deduction.ResultResponse, error) {
	req := deduction.CalculateRequest{EmployeeID: deduction.FlexibleID(employeeID), Periode: periode}
	if err := req.Validate(); err != nil {
		return deduction.ResultResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return deduction.ResultResponse{}, err
	}

	period, _ := deduction.ParsePeriod(periode)
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return deduction.NewResultResponse("", period, deduction.ZeroResult()), nil
	}

	result, err := s.Compute(ctx, claims.CompanyID, employeeID, period)
	if err != nil {
		return deduction.ResultResponse{}, err
	}

	return deduction.NewResultResponse(employeeID, period, result), nil
}

// Compute implements deduction.DeductionService.
func (s *DeductionServiceImpl) Compute(ctx context.Context, companyID, employeeID string, period deduction.Period) (deduction.Result, error) {
	if period.IsZero() {
		return deduction.Result{}, deduction.ErrInvalidPeriod
	}
	if strings.TrimSpace(employeeID) == "" {
		return deduction.Result{}, deduction.ErrEmployeeIDMissing
	}

	from, to := period.FirstDay().Time(), period.LastDay().Time()

	var (
		attendanceRows []attendance.Attendance
		leaveRows      []leave.LeaveRequest
		calc           *Calculator
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.attendanceRepo.ListByDateRange(gctx, companyID, &employeeID, from, to)
		if err != nil {
			return fmt.Errorf("load attendance: %w", err)
		}
		attendanceRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.leaveRepo.ListByStartDate(gctx, companyID, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("load leave requests: %w", err)
		}
		leaveRows = rows
		return nil
	})
	g.Go(func() error {
		c, err := s.calculatorFor(gctx, companyID)
		if err != nil {
			return err
		}
		calc = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return deduction.Result{}, err
	}

	return calc.Calculate(employeeID, period, attendance.ToRecords(attendanceRows), leave.ToRecords(leaveRows)), nil
}

// calculatorFor swaps in the company's saved rate table when there is one.
func (s *DeductionServiceImpl) calculatorFor(ctx context.Context, companyID string) (*Calculator, error) {
	settings, err := s.payrollRepo.GetSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			return s.calculator, nil
		}
		return nil, fmt.Errorf("load payroll settings: %w", err)
	}
	return s.calculator.WithRates(settings.Rates()), nil
}
