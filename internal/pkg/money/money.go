// Package money formats Rupiah amounts for display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount the way Indonesian payslips show it,
// e.g. "Rp 1.250.000". Fractions are rounded to whole Rupiah.
func FormatRupiah(amount decimal.Decimal) string {
	rounded := amount.Round(0).IntPart()
	if rounded < 0 {
		return printer.Sprintf("-Rp %d", -rounded)
	}
	return printer.Sprintf("Rp %d", rounded)
}
