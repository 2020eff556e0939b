package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateExcelReportEmpty(t *testing.T) {
	_, err := GenerateExcelReport(nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestGenerateExcelReport(t *testing.T) {
	rows := []ReportRow{
		{
			EmployeeCode: "EMP-1001",
			FullName:     "Ada Example",
			Department:   "Engineering",
			SalaryAmount: 5000,
			PayDate:      time.Date(2025, 3, 28, 10, 0, 0, 0, time.UTC),
			Status:       "Paid",
			PayPeriod:    "2025-03",
		},
		{
			EmployeeCode: "EMP-1002",
			FullName:     "Ben Example",
			Department:   "Sales",
			SalaryAmount: 4000,
			PayDate:      time.Date(2025, 3, 28, 10, 0, 0, 0, time.UTC),
			Status:       "Paid",
			PayPeriod:    "2025-03",
		},
		{
			EmployeeCode: "EMP-1001",
			FullName:     "Ada Example",
			Department:   "Engineering",
			SalaryAmount: 5000,
			PayDate:      time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC),
			Status:       "Paid",
			PayPeriod:    "2025-02",
		},
	}

	buf, err := GenerateExcelReport(rows)
	require.NoError(t, err)

	file, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.ElementsMatch(t, []string{"2025-03", "2025-02"}, sheets)

	cell, err := file.GetCellValue("2025-03", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Employee ID", cell)

	name, err := file.GetCellValue("2025-03", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ada Example", name)

	gotRows, err := file.GetRows("2025-03")
	require.NoError(t, err)
	assert.Len(t, gotRows, 3) // header + two entries
}
