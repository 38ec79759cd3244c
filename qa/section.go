package qa

import (
	"fmt"
	"sort"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// miniRunMaxPages separates short validation runs from full documents.
// Short runs only need the front matter classified.
const miniRunMaxPages = 5

var (
	miniRunRequired = []string{model.SectionCover, model.SectionTOC}
	fullRunRequired = []string{model.SectionIncomeStatement, model.SectionBalanceSheet}
)

// SemanticSectionChecker verifies that classification produced the
// sections a financial report must have and left no page untagged.
type SemanticSectionChecker struct{}

// NewSemanticSectionChecker creates a section coverage checker.
func NewSemanticSectionChecker() *SemanticSectionChecker {
	return &SemanticSectionChecker{}
}

// Name identifies the checker in findings.
func (c *SemanticSectionChecker) Name() string { return "SemanticSectionChecker" }

// Check requires cover and toc on documents of up to five pages, and
// the income statement and balance sheet on longer ones. Pages with no
// section tag are reported by position.
func (c *SemanticSectionChecker) Check(doc *model.Document) ([]model.Finding, error) {
	var findings []model.Finding

	present := make(map[string]struct{})
	for _, page := range doc.Pages {
		if s := page.Section(); s != "" {
			present[s] = struct{}{}
		}
	}

	required := fullRunRequired
	label := "Full-run"
	if len(doc.Pages) <= miniRunMaxPages {
		required = miniRunRequired
		label = "Mini-run"
	}

	var missing []string
	for _, section := range required {
		if _, ok := present[section]; !ok {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		found := make([]string, 0, len(present))
		for s := range present {
			found = append(found, s)
		}
		sort.Strings(found)
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: 0,
			Reason:    fmt.Sprintf("%s missing required sections: %v. Found: %v", label, missing, found),
			Severity:  model.SeverityWarning,
		})
	}

	var unclassified []int
	for i, page := range doc.Pages {
		if page.Section() == "" {
			unclassified = append(unclassified, i)
		}
	}
	if len(unclassified) > 0 {
		shown := unclassified
		if len(shown) > 10 {
			shown = shown[:10]
		}
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: unclassified[0],
			Reason:    fmt.Sprintf("%d pages have null semantic_section: %v", len(unclassified), shown),
			Severity:  model.SeverityInfo,
		})
	}

	return findings, nil
}
