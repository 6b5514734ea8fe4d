// Package export builds spreadsheet reports of a payroll period.
package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const payrollSheet = "Payroll"

type PayrollRow struct {
	EmployeeID     string
	EmployeeName   string
	GajiPokok      decimal.Decimal
	Tunjangan      decimal.Decimal
	AlpaCount      int
	TerlambatCount int
	IzinCount      int
	SakitCount     int
	TotalPotongan  decimal.Decimal
	GajiBersih     decimal.Decimal
	Keterangan     string
}

var payrollHeaders = []string{
	"ID Karyawan", "Nama", "Gaji Pokok", "Tunjangan",
	"Alpa", "Terlambat", "Izin/Cuti", "Sakit",
	"Total Potongan", "Gaji Bersih", "Keterangan",
}

// PayrollFilename is the attachment name for a period export.
func PayrollFilename(periode string) string {
	return fmt.Sprintf("payroll-%s.xlsx", periode)
}

// Payroll writes one row per record below a title and header row, followed
// by a totals row.
func Payroll(periode string, rows []PayrollRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(payrollSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(payrollHeaders))

	f.SetCellValue(payrollSheet, "A1", fmt.Sprintf("LAPORAN PAYROLL %s", periode))
	f.MergeCell(payrollSheet, "A1", lastCol+"1")
	f.SetCellStyle(payrollSheet, "A1", lastCol+"1", headerStyle)

	for i, h := range payrollHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(payrollSheet, cell, h)
	}
	f.SetCellStyle(payrollSheet, "A3", lastCol+"3", headerStyle)

	totalPotongan := decimal.Zero
	totalBersih := decimal.Zero

	row := 4
	for _, r := range rows {
		values := []interface{}{
			r.EmployeeID, r.EmployeeName,
			r.GajiPokok.InexactFloat64(), r.Tunjangan.InexactFloat64(),
			r.AlpaCount, r.TerlambatCount, r.IzinCount, r.SakitCount,
			r.TotalPotongan.InexactFloat64(), r.GajiBersih.InexactFloat64(),
			r.Keterangan,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(payrollSheet, cell, v)
		}
		totalPotongan = totalPotongan.Add(r.TotalPotongan)
		totalBersih = totalBersih.Add(r.GajiBersih)
		row++
	}

	f.SetCellValue(payrollSheet, fmt.Sprintf("A%d", row), "TOTAL")
	f.SetCellValue(payrollSheet, fmt.Sprintf("I%d", row), totalPotongan.InexactFloat64())
	f.SetCellValue(payrollSheet, fmt.Sprintf("J%d", row), totalBersih.InexactFloat64())

	f.SetColWidth(payrollSheet, "A", "B", 22)
	f.SetColWidth(payrollSheet, "C", "J", 16)
	f.SetColWidth(payrollSheet, "K", "K", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
