// Package payslip renders a single payroll record as a one-page PDF.
package payslip

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/money"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type Line struct {
	Label  string
	Count  int
	Amount decimal.Decimal
}

type Payslip struct {
	EmployeeID    string
	EmployeeName  string
	Periode       string
	GajiPokok     decimal.Decimal
	Tunjangan     decimal.Decimal
	Deductions    []Line
	TotalPotongan decimal.Decimal
	GajiBersih    decimal.Decimal
	Keterangan    string
}

// Filename is the attachment name used for downloads.
func (p Payslip) Filename() string {
	return fmt.Sprintf("slip-gaji-%s-%s.pdf", p.EmployeeID, p.Periode)
}

func Render(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Slip Gaji")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	name := p.EmployeeName
	if name == "" {
		name = p.EmployeeID
	}
	pdf.Cell(0, 8, fmt.Sprintf("Karyawan: %s", name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("ID Karyawan: %s", p.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Periode: %s", p.Periode))
	pdf.Ln(10)

	row := func(label, value string) {
		pdf.CellFormat(110, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, value, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Pendapatan")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	row("Gaji Pokok", money.FormatRupiah(p.GajiPokok))
	row("Tunjangan", money.FormatRupiah(p.Tunjangan))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Potongan")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	if len(p.Deductions) == 0 {
		row("Tidak ada potongan", money.FormatRupiah(decimal.Zero))
	}
	for _, d := range p.Deductions {
		row(fmt.Sprintf("%dx %s", d.Count, d.Label), money.FormatRupiah(d.Amount))
	}
	row("Total Potongan", money.FormatRupiah(p.TotalPotongan))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	row("Gaji Bersih", money.FormatRupiah(p.GajiBersih))

	if p.Keterangan != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("Keterangan: %s", p.Keterangan), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
