package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// BuildSummaryWorkbook renders exporter summaries as an XLSX workbook.
func BuildSummaryWorkbook(summaries []ExporterSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	for i, h := range SummaryCSVHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, s := range summaries {
		row := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(row), s.Exporter)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(row), s.RevenueUsd)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(row), s.JobCards)
		f.SetCellValue(sheetName, "D"+fmt.Sprint(row), s.Assays)
		f.SetCellValue(sheetName, "E"+fmt.Sprint(row), s.AvgJobCardValue)
		f.SetCellValue(sheetName, "F"+fmt.Sprint(row), s.MarketSharePct)
		f.SetCellValue(sheetName, "G"+fmt.Sprint(row), formatActivity(s))
	}

	return f, nil
}

// BuildComprehensiveWorkbook renders per-record detail rows as XLSX.
func BuildComprehensiveWorkbook(records []Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	for i, h := range ComprehensiveCSVHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, r := range records {
		row := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(row), r.JobCardCode)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(row), r.ExporterName)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(row), r.Status)
		f.SetCellValue(sheetName, "D"+fmt.Sprint(row), r.AssayCount)
		f.SetCellValue(sheetName, "E"+fmt.Sprint(row), r.RevenueUsd)
		f.SetCellValue(sheetName, "F"+fmt.Sprint(row), r.RevenueGhs)
		f.SetCellValue(sheetName, "G"+fmt.Sprint(row), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	return f, nil
}
