package payroll

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var ErrNoRecords = errors.New("failed to generate report, 0 payroll records were provided")

// ReportRow is one ledger entry joined with the employee it paid.
type ReportRow struct {
	EmployeeCode string
	FullName     string
	Department   string
	SalaryAmount float64
	PayDate      time.Time
	Status       string
	PayPeriod    string
}

type generator struct {
	file *excelize.File
}

// GenerateExcelReport renders the payroll ledger as an xlsx workbook with one
// sheet per pay period, newest period first in the sheet list order excelize
// gives us.
func GenerateExcelReport(rows []ReportRow) (*bytes.Buffer, error) {
	if len(rows) == 0 {
		return nil, ErrNoRecords
	}

	rowsByPeriod := make(map[string][]ReportRow)
	for _, row := range rows {
		rowsByPeriod[row.PayPeriod] = append(rowsByPeriod[row.PayPeriod], row)
	}

	gen := &generator{file: excelize.NewFile()}
	defer gen.file.Close()

	for period, periodRows := range rowsByPeriod {
		if err := gen.addSheet(period, periodRows); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", period, err)
		}
	}

	gen.file.SetActiveSheet(0)

	if sheetIndex, _ := gen.file.GetSheetIndex("Sheet1"); sheetIndex != -1 {
		if err := gen.file.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet 'Sheet1': %w", err)
		}
	}

	buffer, err := gen.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer, nil
}

func (g *generator) addSheet(period string, rows []ReportRow) error {
	if _, err := g.file.NewSheet(period); err != nil {
		return err
	}

	headers := []string{"Employee ID", "Name", "Department", "Amount", "Pay Date", "Status"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := g.file.SetCellValue(period, cell, h); err != nil {
			return err
		}
	}

	style, err := g.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = g.file.SetRowStyle(period, 1, 1, style)
	}

	for i, row := range rows {
		values := []any{
			row.EmployeeCode,
			row.FullName,
			row.Department,
			row.SalaryAmount,
			row.PayDate.Format("2006-01-02 15:04"),
			row.Status,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := g.file.SetCellValue(period, cell, v); err != nil {
				return err
			}
		}
	}

	return nil
}
