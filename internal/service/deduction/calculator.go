package deduction

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// DefaultLateCutoff is the clock-in time after which an employee is late.
var DefaultLateCutoff = deduction.ClockTime{Hour: 8, Minute: 0}

// Calculator derives automatic payroll deductions from attendance and leave
// records. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	rates      deduction.Rates
	lateCutoff deduction.ClockTime
}

func NewCalculator(rates deduction.Rates, lateCutoff deduction.ClockTime) *Calculator {
	return &Calculator{rates: rates, lateCutoff: lateCutoff}
}

// WithRates returns a calculator sharing the cutoff but using another rate table.
func (c *Calculator) WithRates(rates deduction.Rates) *Calculator {
	return &Calculator{rates: rates, lateCutoff: c.lateCutoff}
}

func (c *Calculator) Rates() deduction.Rates {
	return c.rates
}

// Calculate never fails: an empty employee id or period yields the zero
// result, and records with unusable fields are left out of their counts.
func (c *Calculator) Calculate(
	employeeID string,
	period deduction.Period,
	attendance []deduction.AttendanceRecord,
	leaves []deduction.LeaveRecord,
) deduction.Result {
	target := normalizeID(employeeID)
	if target == "" || period.IsZero() {
		return deduction.ZeroResult()
	}

	var alpa, terlambat, izin, sakit int

	for _, a := range attendance {
		if normalizeID(a.EmployeeID) != target || !period.Contains(a.Tanggal) {
			continue
		}
		switch a.Status {
		case deduction.AttendanceStatusAlpa:
			alpa++
		case deduction.AttendanceStatusHadir:
			if c.isLate(a.JamMasuk) {
				terlambat++
			}
		case deduction.AttendanceStatusIzin:
			izin++
		case deduction.AttendanceStatusSakit:
			sakit++
		}
	}

	for _, l := range leaves {
		if normalizeID(l.EmployeeID) != target || l.Status != deduction.LeaveStatusApproved {
			continue
		}
		if !period.Contains(l.Start) {
			continue
		}
		days, ok := leaveDays(l)
		if !ok {
			continue
		}
		switch l.Kind {
		case deduction.LeaveKindSakit:
			sakit += days
		default:
			// izin, cuti and unrecognized types all land in Izin/Cuti
			izin += days
		}
	}

	lines := []struct {
		category deduction.Category
		count    int
		rate     decimal.Decimal
	}{
		{deduction.CategoryAlpa, alpa, c.rates.Alpa},
		{deduction.CategoryTerlambat, terlambat, c.rates.Terlambat},
		{deduction.CategoryIzinCuti, izin, c.rates.Izin},
		{deduction.CategorySakit, sakit, c.rates.Sakit},
	}

	result := deduction.Result{
		AlpaCount:      alpa,
		TerlambatCount: terlambat,
		IzinCount:      izin,
		SakitCount:     sakit,
		TotalDeduction: decimal.Zero,
		Breakdown:      []deduction.BreakdownItem{},
	}

	var reasons []string
	for _, line := range lines {
		if line.count <= 0 {
			continue
		}
		amount := line.rate.Mul(decimal.NewFromInt(int64(line.count)))
		result.TotalDeduction = result.TotalDeduction.Add(amount)
		result.Breakdown = append(result.Breakdown, deduction.BreakdownItem{
			Category: line.category,
			Icon:     line.category.Icon(),
			Count:    line.count,
			Amount:   amount,
		})
		reasons = append(reasons, fmt.Sprintf("%dx %s (%s)", line.count, line.category, money.FormatRupiah(amount)))
	}

	if len(reasons) == 0 {
		result.ReasonText = deduction.NoDeductionReason
	} else {
		result.ReasonText = strings.Join(reasons, " | ")
	}

	return result
}

func (c *Calculator) isLate(jamMasuk string) bool {
	if jamMasuk == "" {
		return false
	}
	clockIn, ok := deduction.ParseClock(jamMasuk)
	if !ok {
		return false
	}
	return clockIn.After(c.lateCutoff)
}

// leaveDays counts both endpoints. Spans with a missing end or an end before
// the start are unusable.
func leaveDays(l deduction.LeaveRecord) (int, bool) {
	if !l.Start.Valid() || !l.End.Valid() {
		return 0, false
	}
	days := l.End.DaysSince(l.Start) + 1
	if days < 1 {
		return 0, false
	}
	return days, true
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
