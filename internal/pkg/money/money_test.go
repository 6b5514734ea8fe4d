package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		input decimal.Decimal
		want  string
	}{
		{decimal.Zero, "Rp 0"},
		{decimal.NewFromInt(25000), "Rp 25.000"},
		{decimal.NewFromInt(100000), "Rp 100.000"},
		{decimal.NewFromInt(1250000), "Rp 1.250.000"},
		{decimal.RequireFromString("24999.6"), "Rp 25.000"},
		{decimal.NewFromInt(-50000), "-Rp 50.000"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatRupiah(c.input), "FormatRupiah(%s)", c.input)
	}
}
