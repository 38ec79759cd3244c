package qa

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// DefaultGoldenPath is where a pipeline run looks for the regression
// snapshot when no path is configured.
const DefaultGoldenPath = "out/golden/document.json"

// DiffChecker compares the document against a golden snapshot from an
// earlier run: item counts per page, the financial type distribution,
// and the OCR status distribution.
type DiffChecker struct {
	// GoldenPath locates the snapshot to compare against.
	GoldenPath string

	// Logger receives golden load diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	checks []model.DiffCheck
}

// NewDiffChecker creates a regression checker reading the snapshot at
// goldenPath, or at DefaultGoldenPath when empty.
func NewDiffChecker(goldenPath string) *DiffChecker {
	if goldenPath == "" {
		goldenPath = DefaultGoldenPath
	}
	return &DiffChecker{GoldenPath: goldenPath}
}

// Name identifies the checker in findings.
func (c *DiffChecker) Name() string { return "DiffChecker" }

// Check diffs the document against the snapshot. A missing or
// unreadable snapshot skips the check with a single info finding.
func (c *DiffChecker) Check(doc *model.Document) ([]model.Finding, error) {
	var findings []model.Finding
	c.checks = c.checks[:0]

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	golden := c.loadGolden(logger)
	if golden == nil {
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: 0,
			Reason:    fmt.Sprintf("No golden file found at %s - regression check skipped", c.GoldenPath),
			Severity:  model.SeverityInfo,
		})
		return findings, nil
	}

	currentCounts := countItemsPerPage(doc)
	goldenCounts := countItemsPerPage(golden)

	pageSet := make(map[int]struct{})
	for p := range currentCounts {
		pageSet[p] = struct{}{}
	}
	for p := range goldenCounts {
		pageSet[p] = struct{}{}
	}
	pages := make([]int, 0, len(pageSet))
	for p := range pageSet {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	type itemDiff struct {
		page    int
		current int
		golden  int
	}
	var itemDiffs []itemDiff
	for _, p := range pages {
		if currentCounts[p] != goldenCounts[p] {
			itemDiffs = append(itemDiffs, itemDiff{page: p, current: currentCounts[p], golden: goldenCounts[p]})
		}
	}

	if len(itemDiffs) > 0 {
		shown := itemDiffs
		if len(shown) > 5 {
			shown = shown[:5]
		}
		parts := make([]string, len(shown))
		for i, d := range shown {
			parts[i] = fmt.Sprintf("p%d:%d->%d", d.page, d.current, d.golden)
		}
		summary := strings.Join(parts, ", ")
		if len(itemDiffs) > 5 {
			summary += fmt.Sprintf(" (+%d more)", len(itemDiffs)-5)
		}
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: itemDiffs[0].page,
			Reason:    fmt.Sprintf("Item count changed on %d pages: %s", len(itemDiffs), summary),
			Severity:  model.SeverityWarning,
		})
		for _, d := range itemDiffs {
			c.checks = append(c.checks, model.DiffCheck{
				PageIndex:   d.page,
				Sources:     []string{"current", "golden"},
				Differences: fmt.Sprintf("items %d -> %d", d.current, d.golden),
				Severity:    model.SeverityWarning,
			})
		}
	}

	currentTypes := countFinancialTypes(doc)
	goldenTypes := countFinancialTypes(golden)
	if !maps.Equal(currentTypes, goldenTypes) {
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: 0,
			Reason: fmt.Sprintf("Financial type distribution changed. Current: %v, Golden: %v",
				currentTypes, goldenTypes),
			Severity: model.SeverityWarning,
		})
	}

	currentOCR := summarizeOCRStatus(doc)
	goldenOCR := summarizeOCRStatus(golden)
	if !maps.Equal(currentOCR, goldenOCR) {
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: 0,
			Reason: fmt.Sprintf("OCR quality distribution changed. Current: %v, Golden: %v",
				currentOCR, goldenOCR),
			Severity: model.SeverityInfo,
		})
	}

	findings = append(findings, model.Finding{
		Checker:   c.Name(),
		PageIndex: 0,
		Reason: fmt.Sprintf("Diff check completed: %d pages (golden: %d), %d page(s) with item count changes",
			len(doc.Pages), len(golden.Pages), len(itemDiffs)),
		Severity: model.SeverityInfo,
	})

	return findings, nil
}

// Record appends the per-page item count differences from the last Check.
func (c *DiffChecker) Record(report *model.QAReport) {
	report.DiffChecks = append(report.DiffChecks, c.checks...)
}

// loadGolden reads and parses the snapshot, returning nil when it is
// missing or unreadable.
func (c *DiffChecker) loadGolden(logger *slog.Logger) *model.Document {
	data, err := os.ReadFile(c.GoldenPath)
	if err != nil {
		logger.Info("no golden file, diff check skipped", "path", c.GoldenPath)
		return nil
	}
	var golden model.Document
	if err := json.Unmarshal(data, &golden); err != nil {
		logger.Warn("failed to parse golden file", "path", c.GoldenPath, "error", err)
		return nil
	}
	return &golden
}

// countItemsPerPage maps page index to item count.
func countItemsPerPage(doc *model.Document) map[int]int {
	counts := make(map[int]int)
	for _, page := range doc.Pages {
		counts[page.PageIndex] = len(page.Items)
	}
	return counts
}

// countFinancialTypes tallies classified items across the document.
func countFinancialTypes(doc *model.Document) map[string]int {
	counts := make(map[string]int)
	for _, page := range doc.Pages {
		for _, b := range page.Blocks() {
			if b.FinancialType != "" {
				counts[string(b.FinancialType)]++
			}
		}
		for _, t := range page.Tables() {
			if t.FinancialType != "" {
				counts[string(t.FinancialType)]++
			}
		}
	}
	return counts
}

// summarizeOCRStatus tallies pages by OCR status. Pages without quality
// metrics count as "unknown".
func summarizeOCRStatus(doc *model.Document) map[string]int {
	counts := make(map[string]int)
	for _, page := range doc.Pages {
		status := "unknown"
		if page.OCRQuality != nil && page.OCRQuality.Status != "" {
			status = page.OCRQuality.Status
		}
		counts[status]++
	}
	return counts
}

// SaveGolden writes the document as the regression snapshot for future
// runs, creating parent directories as needed.
func SaveGolden(doc *model.Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal golden document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write golden file: %w", err)
	}
	return nil
}
