package classify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

var listItemRe = regexp.MustCompile(`^[\d•\-\*]\s+`)

// classifyPageSection assigns a semantic section from page content, or
// "" with confidence 0 when nothing matches. TOC layout detection runs
// first and outranks everything else.
func (c *Classifier) classifyPageSection(page *model.Page) (string, float64) {
	if c.refiner.IsTOCPage(page.Blocks(), page.Tables()) {
		return model.SectionTOC, 0.9
	}

	// Sample the first items: block text, plus header-row cells for
	// tables so statement titles inside tables still count.
	var samples []string
	limit := len(page.Items)
	if limit > 10 {
		limit = 10
	}
	for _, item := range page.Items[:limit] {
		switch it := item.(type) {
		case *model.Block:
			samples = append(samples, it.Text)
		case *model.Table:
			if len(it.Cells) > 0 {
				samples = append(samples, headerRowText(it, 5))
			}
		}
	}
	combined := strings.ToLower(strings.Join(samples, " "))

	if page.PageIndex == 0 && containsAny(combined, coverKeywords) {
		return model.SectionCover, 0.9
	}

	// Keyword fallback for TOC pages the layout detector missed: needs
	// corroboration from converted list items or dotted leaders.
	if containsAny(combined, tocSectionKeywords) {
		hasListItems := false
		for _, b := range page.Blocks() {
			if b.SemanticType == "list_item" {
				hasListItems = true
				break
			}
		}
		hasDots := false
		for _, s := range samples {
			if strings.Contains(s, "...") {
				hasDots = true
				break
			}
		}
		if hasListItems || hasDots {
			return model.SectionTOC, 0.85
		}
	}

	if containsAny(combined, managementKeywords) {
		return model.SectionManagementReport, 0.8
	}
	if containsAny(combined, notesKeywords) {
		return model.SectionNotes, 0.8
	}
	if containsAny(combined, []string{"tase", "balance sheet"}) {
		return model.SectionBalanceSheet, 0.7
	}
	if containsAny(combined, []string{"tuloslaskelma", "income statement"}) {
		return model.SectionIncomeStatement, 0.7
	}
	if containsAny(combined, cashFlowKeywords) {
		return model.SectionCashFlow, 0.7
	}
	if containsAny(combined, accountingPolicyKeywords) {
		return model.SectionAccountingPolicy, 0.7
	}

	// Sparse late pages default to appendix with low confidence.
	if float64(page.PageIndex) > float64(len(page.Items))*0.8 {
		return model.SectionAppendix, 0.3
	}

	return "", 0
}

// classifyElementType assigns the layout-level semantic type of a
// block. A type set upstream (TOC conversion tags list items) is kept.
func classifyElementType(b *model.Block, first bool) string {
	if b.SemanticType != "" {
		return b.SemanticType
	}

	trimmed := strings.TrimSpace(b.Text)
	lower := strings.ToLower(trimmed)

	if first && utf8.RuneCountInString(lower) < 100 {
		if isUpperText(trimmed) || len(strings.Fields(lower)) <= 5 {
			return "title"
		}
	}

	if utf8.RuneCountInString(lower) < 50 && b.FontStats.IsBold() {
		if containsAny(lower, []string{"tase", "tuloslaskelma", "liite", "notes"}) {
			return "section_header"
		}
	}

	if listItemRe.MatchString(lower) {
		return "list_item"
	}

	return "text"
}

// headerRowText joins the first maxCells row-zero cell texts.
func headerRowText(t *model.Table, maxCells int) string {
	texts := t.HeaderTexts()
	if len(texts) > maxCells {
		texts = texts[:maxCells]
	}
	return strings.Join(texts, " ")
}

// isUpperText reports whether the text has at least one cased rune and
// no lowercase runes.
func isUpperText(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
