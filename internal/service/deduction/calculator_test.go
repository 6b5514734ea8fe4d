package deduction

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var november2025 = deduction.Period{Year: 2025, Month: time.November}

func newTestCalculator() *Calculator {
	return NewCalculator(deduction.DefaultRates(), DefaultLateCutoff)
}

func att(employeeID, tanggal, status, jamMasuk string) deduction.AttendanceRecord {
	return deduction.AttendanceInput{
		EmployeeID: deduction.FlexibleID(employeeID),
		Tanggal:    tanggal,
		Status:     status,
		JamMasuk:   jamMasuk,
	}.ToRecord()
}

func leaveRec(employeeID, status, jenis, mulai, selesai string) deduction.LeaveRecord {
	return deduction.LeaveInput{
		EmployeeID:     deduction.FlexibleID(employeeID),
		Status:         status,
		JenisPengajuan: jenis,
		TanggalMulai:   mulai,
		TanggalSelesai: selesai,
	}.ToRecord()
}

func assertConsistent(t *testing.T, r deduction.Result) {
	t.Helper()
	sum := decimal.Zero
	for _, item := range r.Breakdown {
		sum = sum.Add(item.Amount)
		assert.Greater(t, item.Count, 0, "breakdown lists only non-zero categories")
	}
	assert.True(t, r.TotalDeduction.Equal(sum), "total %s != breakdown sum %s", r.TotalDeduction, sum)
	assert.GreaterOrEqual(t, r.AlpaCount, 0)
	assert.GreaterOrEqual(t, r.TerlambatCount, 0)
	assert.GreaterOrEqual(t, r.IzinCount, 0)
	assert.GreaterOrEqual(t, r.SakitCount, 0)
}

// ===== SCENARIOS =====

func TestCalculate_SingleAlpa(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, []deduction.AttendanceRecord{
		att("E1", "2025-11-03", "alpa", ""),
	}, nil)

	assert.Equal(t, 1, result.AlpaCount)
	assert.True(t, result.TotalDeduction.Equal(decimal.NewFromInt(100000)))
	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, deduction.CategoryAlpa, result.Breakdown[0].Category)
	assert.Equal(t, 1, result.Breakdown[0].Count)
	assert.True(t, result.Breakdown[0].Amount.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "1x Alpa (Rp 100.000)", result.ReasonText)
	assertConsistent(t, result)
}

func TestCalculate_LateClockIn(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, []deduction.AttendanceRecord{
		att("E1", "2025-11-05", "hadir", "08:15"),
	}, nil)

	assert.Equal(t, 1, result.TerlambatCount)
	assert.True(t, result.TotalDeduction.Equal(decimal.NewFromInt(25000)))
	assertConsistent(t, result)
}

func TestCalculate_ApprovedCutiSpansThreeDays(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, nil, []deduction.LeaveRecord{
		leaveRec("E1", "approved", "Cuti", "2025-11-10", "2025-11-12"),
	})

	assert.Equal(t, 3, result.IzinCount)
	assert.True(t, result.TotalDeduction.Equal(decimal.NewFromInt(150000)))
	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, deduction.CategoryIzinCuti, result.Breakdown[0].Category)
	assertConsistent(t, result)
}

func TestCalculate_NoMatchingRecords(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, []deduction.AttendanceRecord{
		att("E2", "2025-11-03", "alpa", ""),
		att("E1", "2025-10-31", "alpa", ""),
	}, []deduction.LeaveRecord{
		leaveRec("E2", "approved", "Cuti", "2025-11-10", "2025-11-12"),
	})

	assert.Equal(t, deduction.ZeroResult(), result)
	assert.Equal(t, "no deduction", result.ReasonText)
	assertConsistent(t, result)
}

func TestCalculate_MixedWithZeroRateSakit(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, []deduction.AttendanceRecord{
		att("E1", "2025-11-03", "alpa", ""),
		att("E1", "2025-11-04", "alpa", ""),
		att("E1", "2025-11-05", "hadir", "09:00"),
		att("E1", "2025-11-06", "hadir", "07:55"),
	}, []deduction.LeaveRecord{
		leaveRec("E1", "approved", "Sakit", "2025-11-17", "2025-11-18"),
	})

	assert.Equal(t, 2, result.AlpaCount)
	assert.Equal(t, 1, result.TerlambatCount)
	assert.Equal(t, 2, result.SakitCount)
	assert.True(t, result.TotalDeduction.Equal(decimal.NewFromInt(225000)))
	require.Len(t, result.Breakdown, 3)
	assert.Equal(t, deduction.CategoryAlpa, result.Breakdown[0].Category)
	assert.Equal(t, deduction.CategoryTerlambat, result.Breakdown[1].Category)
	assert.Equal(t, deduction.CategorySakit, result.Breakdown[2].Category)
	assert.True(t, result.Breakdown[2].Amount.IsZero())
	assert.Equal(t, "2x Alpa (Rp 200.000) | 1x Terlambat (Rp 25.000) | 2x Sakit (Rp 0)", result.ReasonText)
	assertConsistent(t, result)
}

// ===== BOUNDARIES =====

func TestCalculate_LateCutoffBoundary(t *testing.T) {
	calc := newTestCalculator()
	cases := []struct {
		jamMasuk string
		late     int
	}{
		{"07:59", 0},
		{"08:00", 0},
		{"08:00:59", 0},
		{"08:01", 1},
		{"8:30", 1},
		{"13:00", 1},
		{"", 0},
		{"late", 0},
		{"25:00", 0},
	}
	for _, c := range cases {
		t.Run(c.jamMasuk, func(t *testing.T) {
			result := calc.Calculate("E1", november2025, []deduction.AttendanceRecord{
				att("E1", "2025-11-05", "hadir", c.jamMasuk),
			}, nil)
			assert.Equal(t, c.late, result.TerlambatCount)
		})
	}
}

func TestCalculate_LateOnlyCountsHadir(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, []deduction.AttendanceRecord{
		att("E1", "2025-11-05", "izin", "10:00"),
	}, nil)

	assert.Equal(t, 0, result.TerlambatCount)
	assert.Equal(t, 1, result.IzinCount)
}

func TestCalculate_SingleDayLeave(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, nil, []deduction.LeaveRecord{
		leaveRec("E1", "approved", "Izin keluarga", "2025-11-20", "2025-11-20"),
	})

	assert.Equal(t, 1, result.IzinCount)
	assert.True(t, result.TotalDeduction.Equal(decimal.NewFromInt(50000)))
}

func TestCalculate_LeaveStartingInPeriodCountsFullSpan(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, nil, []deduction.LeaveRecord{
		leaveRec("E1", "approved", "cuti tahunan", "2025-11-29", "2025-12-02"),
		leaveRec("E1", "approved", "cuti tahunan", "2025-10-30", "2025-11-02"),
	})

	assert.Equal(t, 4, result.IzinCount)
}

func TestCalculate_LeaveTimestampsDoNotShiftMonth(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, nil, []deduction.LeaveRecord{
		leaveRec("E1", "approved", "Cuti", "2025-11-01T00:00:00+07:00", "2025-11-02T00:00:00+07:00"),
	})

	assert.Equal(t, 2, result.IzinCount)
}

// ===== NORMALIZATION & MALFORMED INPUT =====

func TestCalculate_EmployeeIDIsCaseAndSpaceInsensitive(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("  emp-01 ", november2025, []deduction.AttendanceRecord{
		att("EMP-01", "2025-11-03", "ALPA", ""),
		att(" Emp-01", "2025-11-04", " Alpa ", ""),
	}, []deduction.LeaveRecord{
		leaveRec("emp-01 ", "Approved", "CUTI", "2025-11-10", "2025-11-10"),
	})

	assert.Equal(t, 2, result.AlpaCount)
	assert.Equal(t, 1, result.IzinCount)
}

func TestCalculate_OnlyApprovedLeaveCounts(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, nil, []deduction.LeaveRecord{
		leaveRec("E1", "pending", "Cuti", "2025-11-10", "2025-11-12"),
		leaveRec("E1", "rejected", "Sakit", "2025-11-13", "2025-11-14"),
	})

	assert.Equal(t, deduction.ZeroResult(), result)
}

func TestCalculate_LeaveKindRouting(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, nil, []deduction.LeaveRecord{
		leaveRec("E1", "approved", "Izin", "2025-11-03", "2025-11-03"),
		leaveRec("E1", "approved", "Sakit demam", "2025-11-04", "2025-11-05"),
		leaveRec("E1", "approved", "", "2025-11-06", "2025-11-06"),
		leaveRec("E1", "approved", "Dinas luar", "2025-11-07", "2025-11-07"),
	})

	assert.Equal(t, 3, result.IzinCount)
	assert.Equal(t, 2, result.SakitCount)
}

func TestCalculate_AttendanceSeedsIzinAndSakit(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Calculate("E1", november2025, []deduction.AttendanceRecord{
		att("E1", "2025-11-03", "izin", ""),
		att("E1", "2025-11-04", "sakit", ""),
	}, []deduction.LeaveRecord{
		leaveRec("E1", "approved", "Sakit", "2025-11-10", "2025-11-11"),
	})

	assert.Equal(t, 1, result.IzinCount)
	assert.Equal(t, 3, result.SakitCount)
	assert.True(t, result.TotalDeduction.Equal(decimal.NewFromInt(50000)))
}

func TestCalculate_MalformedRecordsAreSkipped(t *testing.T) {
	calc := newTestCalculator()

	attendance := []deduction.AttendanceRecord{
		att("E1", "", "alpa", ""),
		att("E1", "03/11/2025", "alpa", ""),
		att("E1", "2025-11-03", "", ""),
		att("E1", "2025-11-04", "unknown", "09:00"),
		att("", "2025-11-05", "alpa", ""),
	}
	leaves := []deduction.LeaveRecord{
		leaveRec("E1", "approved", "Cuti", "", "2025-11-12"),
		leaveRec("E1", "approved", "Cuti", "2025-11-10", ""),
		leaveRec("E1", "approved", "Cuti", "2025-11-12", "2025-11-10"),
		leaveRec("E1", "", "Cuti", "2025-11-10", "2025-11-12"),
	}

	var result deduction.Result
	assert.NotPanics(t, func() {
		result = calc.Calculate("E1", november2025, attendance, leaves)
	})
	assert.Equal(t, deduction.ZeroResult(), result)
}

func TestCalculate_StartDateFallbacks(t *testing.T) {
	calc := newTestCalculator()

	leaves := []deduction.LeaveRecord{
		deduction.LeaveInput{
			EmployeeID:       "E1",
			Status:           "approved",
			JenisPengajuan:   "Cuti",
			TanggalPengajuan: "2025-11-03",
			TanggalSelesai:   "2025-11-04",
		}.ToRecord(),
		deduction.LeaveInput{
			EmployeeID: "E1",
			Status:     "approved",
			StartDate:  "2025-11-10",
			EndDate:    "2025-11-10",
		}.ToRecord(),
	}

	result := calc.Calculate("E1", november2025, nil, leaves)

	assert.Equal(t, 3, result.IzinCount)
}

func TestCalculate_MissingEmployeeOrPeriod(t *testing.T) {
	calc := newTestCalculator()
	records := []deduction.AttendanceRecord{att("E1", "2025-11-03", "alpa", "")}

	assert.Equal(t, deduction.ZeroResult(), calc.Calculate("", november2025, records, nil))
	assert.Equal(t, deduction.ZeroResult(), calc.Calculate("   ", november2025, records, nil))
	assert.Equal(t, deduction.ZeroResult(), calc.Calculate("E1", deduction.Period{}, records, nil))
}

// ===== PROPERTIES =====

func TestCalculate_IdempotentAndOrderIndependent(t *testing.T) {
	calc := newTestCalculator()
	attendance := []deduction.AttendanceRecord{
		att("E1", "2025-11-03", "alpa", ""),
		att("E1", "2025-11-05", "hadir", "08:45"),
		att("E1", "2025-11-06", "sakit", ""),
	}
	leaves := []deduction.LeaveRecord{
		leaveRec("E1", "approved", "Cuti", "2025-11-10", "2025-11-12"),
		leaveRec("E1", "approved", "Sakit", "2025-11-20", "2025-11-20"),
	}

	first := calc.Calculate("E1", november2025, attendance, leaves)
	second := calc.Calculate("E1", november2025, attendance, leaves)
	assert.Equal(t, first, second)

	reversedAtt := []deduction.AttendanceRecord{attendance[2], attendance[1], attendance[0]}
	reversedLeaves := []deduction.LeaveRecord{leaves[1], leaves[0]}
	assert.Equal(t, first, calc.Calculate("E1", november2025, reversedAtt, reversedLeaves))
	assertConsistent(t, first)
}

func TestCalculate_DoesNotMutateInputs(t *testing.T) {
	calc := newTestCalculator()
	attendance := []deduction.AttendanceRecord{att("E1", "2025-11-03", "alpa", "")}
	leaves := []deduction.LeaveRecord{leaveRec("E1", "approved", "Cuti", "2025-11-10", "2025-11-12")}
	attCopy := append([]deduction.AttendanceRecord(nil), attendance...)
	leaveCopy := append([]deduction.LeaveRecord(nil), leaves...)

	calc.Calculate("E1", november2025, attendance, leaves)

	assert.Equal(t, attCopy, attendance)
	assert.Equal(t, leaveCopy, leaves)
}

func TestCalculate_CustomRates(t *testing.T) {
	rates := deduction.Rates{
		Alpa:      decimal.NewFromInt(150000),
		Terlambat: decimal.NewFromInt(10000),
		Izin:      decimal.Zero,
		Sakit:     decimal.NewFromInt(20000),
	}
	calc := newTestCalculator().WithRates(rates)

	result := calc.Calculate("E1", november2025, []deduction.AttendanceRecord{
		att("E1", "2025-11-03", "alpa", ""),
		att("E1", "2025-11-04", "hadir", "08:30"),
		att("E1", "2025-11-05", "izin", ""),
		att("E1", "2025-11-06", "sakit", ""),
	}, nil)

	assert.True(t, result.TotalDeduction.Equal(decimal.NewFromInt(180000)))
	require.Len(t, result.Breakdown, 4)
	assert.True(t, result.Breakdown[2].Amount.IsZero())
	assertConsistent(t, result)
}

func TestCalculate_CustomCutoff(t *testing.T) {
	calc := NewCalculator(deduction.DefaultRates(), deduction.ClockTime{Hour: 9, Minute: 0})

	result := calc.Calculate("E1", november2025, []deduction.AttendanceRecord{
		att("E1", "2025-11-03", "hadir", "08:30"),
		att("E1", "2025-11-04", "hadir", "09:05"),
	}, nil)

	assert.Equal(t, 1, result.TerlambatCount)
}
