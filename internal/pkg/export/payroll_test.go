package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPayroll(t *testing.T) {
	rows := []PayrollRow{
		{
			EmployeeID: "E1", EmployeeName: "Ani",
			GajiPokok: decimal.NewFromInt(5000000), Tunjangan: decimal.NewFromInt(500000),
			AlpaCount: 1, TotalPotongan: decimal.NewFromInt(100000), GajiBersih: decimal.NewFromInt(5400000),
		},
		{
			EmployeeID: "E2", EmployeeName: "Budi",
			GajiPokok: decimal.NewFromInt(4000000),
			IzinCount: 2, TotalPotongan: decimal.NewFromInt(100000), GajiBersih: decimal.NewFromInt(3900000),
		},
	}

	out, err := Payroll("2025-11", rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Payroll"}, f.GetSheetList())

	title, err := f.GetCellValue("Payroll", "A1")
	require.NoError(t, err)
	assert.Equal(t, "LAPORAN PAYROLL 2025-11", title)

	header, _ := f.GetCellValue("Payroll", "J3")
	assert.Equal(t, "Gaji Bersih", header)

	name, _ := f.GetCellValue("Payroll", "B5")
	assert.Equal(t, "Budi", name)

	izin, _ := f.GetCellValue("Payroll", "G5")
	assert.Equal(t, "2", izin)

	total, _ := f.GetCellValue("Payroll", "A6")
	assert.Equal(t, "TOTAL", total)
	net, _ := f.GetCellValue("Payroll", "J6")
	assert.Equal(t, "9300000", net)

	assert.Equal(t, "payroll-2025-11.xlsx", PayrollFilename("2025-11"))
}
