package qa

import (
	"fmt"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
	"github.com/FoxRav/documents-to-ai-readable-data/normalize"
)

// sumRowKeywords mark a table row as a totals row.
var sumRowKeywords = []string{"yhteensä", "total", "sum", "kokonaismäärä"}

// SumChecker verifies totals rows: in a row whose label names a sum,
// the last numeric cell should equal the sum of the numeric cells
// before it.
type SumChecker struct {
	checks []model.SumCheck
}

// NewSumChecker creates a sum consistency checker.
func NewSumChecker() *SumChecker {
	return &SumChecker{}
}

// Name identifies the checker in findings.
func (c *SumChecker) Name() string { return "SumChecker" }

// Check scans every table for inconsistent totals rows.
func (c *SumChecker) Check(doc *model.Document) ([]model.Finding, error) {
	var findings []model.Finding
	c.checks = c.checks[:0]

	for _, page := range doc.Pages {
		for _, table := range page.Tables() {
			if len(table.Cells) == 0 {
				continue
			}

			for _, row := range table.Rows() {
				if len(row) == 0 {
					continue
				}
				label := strings.ToLower(row[0].TextRaw)
				isSumRow := false
				for _, kw := range sumRowKeywords {
					if strings.Contains(label, kw) {
						isSumRow = true
						break
					}
				}
				if !isSumRow {
					continue
				}

				var values []float64
				for _, cell := range row[1:] {
					if v, ok := normalize.ParseNumber(cell.TextRaw); ok {
						values = append(values, v)
					}
				}
				if len(values) < 2 {
					continue
				}

				expected := 0.0
				for _, v := range values[:len(values)-1] {
					expected += v
				}
				actual := values[len(values)-1]
				difference := expected - actual
				if difference < 0 {
					difference = -difference
				}

				// Rounding slack for two-decimal currency values.
				if difference <= 0.01 {
					continue
				}

				rowNum := row[0].Row
				findings = append(findings, model.Finding{
					Checker:   c.Name(),
					PageIndex: page.PageIndex,
					TableID:   table.TableID,
					Reason:    fmt.Sprintf("Sum mismatch in row %d: expected %g, got %g", rowNum, expected, actual),
					Severity:  model.SeverityWarning,
				})
				c.checks = append(c.checks, model.SumCheck{
					PageIndex:  page.PageIndex,
					TableID:    table.TableID,
					RowOrCol:   fmt.Sprintf("row_%d", rowNum),
					Expected:   expected,
					Actual:     actual,
					Difference: difference,
					Severity:   model.SeverityWarning,
				})
			}
		}
	}
	return findings, nil
}

// Record appends the sum comparisons from the last Check.
func (c *SumChecker) Record(report *model.QAReport) {
	report.SumChecks = append(report.SumChecks, c.checks...)
}
