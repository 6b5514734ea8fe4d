package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// PayrollSettings - per-company deduction rate table
type PayrollSettings struct {
	CompanyID         string
	PotonganAlpa      decimal.Decimal
	PotonganTerlambat decimal.Decimal
	PotonganIzin      decimal.Decimal
	PotonganSakit     decimal.Decimal
	UpdatedAt         time.Time
}

func (s PayrollSettings) Rates() deduction.Rates {
	return deduction.Rates{
		Alpa:      s.PotonganAlpa,
		Terlambat: s.PotonganTerlambat,
		Izin:      s.PotonganIzin,
		Sakit:     s.PotonganSakit,
	}
}

func SettingsFromRates(companyID string, r deduction.Rates) PayrollSettings {
	return PayrollSettings{
		CompanyID:         companyID,
		PotonganAlpa:      r.Alpa,
		PotonganTerlambat: r.Terlambat,
		PotonganIzin:      r.Izin,
		PotonganSakit:     r.Sakit,
	}
}

// PayrollRecord - one employee's salary slip for one period. The deduction
// figures are a snapshot of the calculator result at creation time.
type PayrollRecord struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	EmployeeName   string
	PeriodYear     int
	PeriodMonth    int
	GajiPokok      decimal.Decimal
	Tunjangan      decimal.Decimal
	TotalPotongan  decimal.Decimal
	GajiBersih     decimal.Decimal
	AlpaCount      int
	TerlambatCount int
	IzinCount      int
	SakitCount     int
	Breakdown      []deduction.BreakdownItem
	Keterangan     string
	CreatedAt      time.Time
}

func (r PayrollRecord) Period() deduction.Period {
	return deduction.Period{Year: r.PeriodYear, Month: time.Month(r.PeriodMonth)}
}

// NetPay is gaji pokok plus tunjangan minus the automatic deductions.
func NetPay(gajiPokok, tunjangan, totalPotongan decimal.Decimal) decimal.Decimal {
	return gajiPokok.Add(tunjangan).Sub(totalPotongan)
}

// PayrollCreatedEvent is published after a record is stored.
type PayrollCreatedEvent struct {
	RecordID   string
	CompanyID  string
	EmployeeID string
	Periode    string
	GajiBersih decimal.Decimal
}
