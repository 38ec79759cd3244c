package qa

import (
	"fmt"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
	"github.com/FoxRav/documents-to-ai-readable-data/normalize"
)

// Row labels naming the two balance sheet totals, Finnish and English.
var (
	assetsTotalKeywords = []string{
		"vastaavaa yhteensä",
		"vastaavaa yht",
		"total assets",
		"assets total",
		"yhteensä vastaavaa",
	}
	liabilitiesTotalKeywords = []string{
		"vastattavaa yhteensä",
		"vastattavaa yht",
		"total liabilities",
		"liabilities total",
		"yhteensä vastattavaa",
	}
)

// BalanceSheetChecker verifies the balance sheet equation on tables
// classified as balance sheets: assets must equal liabilities plus
// equity within a relative tolerance.
type BalanceSheetChecker struct {
	checks []model.BalanceCheck
}

// NewBalanceSheetChecker creates a balance equation checker.
func NewBalanceSheetChecker() *BalanceSheetChecker {
	return &BalanceSheetChecker{}
}

// Name identifies the checker in findings.
func (c *BalanceSheetChecker) Name() string { return "BalanceSheetChecker" }

// Check compares the two totals on every balance sheet table. The
// tolerance is 0.5% of the larger total; differences past ten times the
// tolerance escalate from warning to error.
func (c *BalanceSheetChecker) Check(doc *model.Document) ([]model.Finding, error) {
	var findings []model.Finding
	c.checks = c.checks[:0]

	for _, page := range doc.Pages {
		if page.Section() != model.SectionBalanceSheet && !hasBalanceTable(page) {
			continue
		}

		for _, table := range page.Tables() {
			if table.FinancialType != model.FinBalanceSheet {
				continue
			}

			assets, liabilities, ok := findBalanceTotals(table)
			if !ok {
				continue
			}

			difference := assets - liabilities
			if difference < 0 {
				difference = -difference
			}
			tolerance := maxAbs(assets, liabilities) * 0.005
			if difference <= tolerance {
				continue
			}

			severity := model.SeverityError
			if difference < tolerance*10 {
				severity = model.SeverityWarning
			}

			findings = append(findings, model.Finding{
				Checker:   c.Name(),
				PageIndex: page.PageIndex,
				TableID:   table.TableID,
				Reason: fmt.Sprintf(
					"Balance sheet equation mismatch: Assets=%.2f, Liabilities=%.2f, Difference=%.2f",
					assets, liabilities, difference),
				Severity: severity,
			})
			c.checks = append(c.checks, model.BalanceCheck{
				PageIndex:   page.PageIndex,
				TableID:     table.TableID,
				Assets:      assets,
				Liabilities: liabilities,
				Difference:  difference,
				Severity:    severity,
			})
		}
	}
	return findings, nil
}

// Record appends the balance comparisons from the last Check.
func (c *BalanceSheetChecker) Record(report *model.QAReport) {
	report.BalanceChecks = append(report.BalanceChecks, c.checks...)
}

// findBalanceTotals locates the assets and liabilities totals: for each
// keyword-labelled row the last numeric cell wins, and later rows
// override earlier ones.
func findBalanceTotals(t *model.Table) (assets, liabilities float64, ok bool) {
	if len(t.Cells) == 0 {
		return 0, 0, false
	}

	var haveAssets, haveLiabilities bool
	for _, row := range t.Rows() {
		if len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(strings.ToLower(row[0].TextRaw))

		var values []float64
		for _, cell := range row[1:] {
			if v, parsed := normalize.ParseNumber(cell.TextRaw); parsed {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		last := values[len(values)-1]

		if containsAnyKeyword(label, assetsTotalKeywords) {
			assets = last
			haveAssets = true
		}
		if containsAnyKeyword(label, liabilitiesTotalKeywords) {
			liabilities = last
			haveLiabilities = true
		}
	}

	return assets, liabilities, haveAssets && haveLiabilities
}

// hasBalanceTable reports whether any table on the page was classified
// as a balance sheet.
func hasBalanceTable(page *model.Page) bool {
	for _, t := range page.Tables() {
		if t.FinancialType == model.FinBalanceSheet {
			return true
		}
	}
	return false
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func maxAbs(a, b float64) float64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}
