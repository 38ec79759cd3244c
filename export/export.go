// Package export renders a QA report as an XLSX workbook for manual
// review: one row per finding, plus a summary sheet with run-level
// metrics.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

const (
	findingsSheet = "Findings"
	summarySheet  = "Summary"
)

// FindingsXLSX returns an XLSX workbook built from the report.
func FindingsXLSX(report *model.QAReport) ([]byte, error) {
	f := excelize.NewFile()

	// The default sheet becomes the findings sheet.
	if err := f.SetSheetName(f.GetSheetName(0), findingsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	index, _ := f.GetSheetIndex(findingsSheet)
	f.SetActiveSheet(index)

	headers := []string{"Checker", "Page", "Severity", "Reason", "Suggestion", "Block", "Table"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(findingsSheet, cell, h)
	}

	row := 2
	for _, finding := range report.Findings {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(findingsSheet, cell, v)
		}
		write(1, finding.Checker)
		write(2, finding.PageIndex)
		write(3, string(finding.Severity))
		write(4, finding.Reason)
		write(5, finding.Suggestion)
		write(6, finding.BlockID)
		write(7, finding.TableID)
		row++
	}

	_ = f.SetColWidth(findingsSheet, "A", "A", 22) // checker
	_ = f.SetColWidth(findingsSheet, "B", "C", 10) // page, severity
	_ = f.SetColWidth(findingsSheet, "D", "D", 80) // reason
	_ = f.SetColWidth(findingsSheet, "E", "E", 50) // suggestion
	_ = f.SetColWidth(findingsSheet, "F", "G", 18) // item ids

	if err := writeSummary(f, report); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSummary fills the summary sheet with label/value pairs.
func writeSummary(f *excelize.File, report *model.QAReport) error {
	errs, warns, infos := report.CountBySeverity()
	rows := [][2]any{
		{"PDF", report.PDF.Filename},
		{"Pages", report.PDF.Pages},
		{"Schema valid", report.SchemaValid},
		{"Findings", len(report.Findings)},
		{"Errors", errs},
		{"Warnings", warns},
		{"Infos", infos},
		{"Sum checks", len(report.SumChecks)},
		{"Balance checks", len(report.BalanceChecks)},
		{"Cross-reference checks", len(report.XRefChecks)},
		{"Diff checks", len(report.DiffChecks)},
	}
	if e := report.TableCellExactness; e != nil {
		if e.EmptyCellsPercent != nil {
			rows = append(rows, [2]any{"Empty cells %", *e.EmptyCellsPercent})
		}
		if e.UnparseableNumbersPercent != nil {
			rows = append(rows, [2]any{"Unparseable numbers %", *e.UnparseableNumbersPercent})
		}
	}

	for i, pair := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(summarySheet, labelCell, pair[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, valueCell, pair[1]); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 26)
	_ = f.SetColWidth(summarySheet, "B", "B", 44)
	return nil
}

// WriteFindingsXLSX writes the workbook to path, creating parent
// directories as needed.
func WriteFindingsXLSX(report *model.QAReport, path string) error {
	data, err := FindingsXLSX(report)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
