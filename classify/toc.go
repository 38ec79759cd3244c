package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// tocEntry is one financial-statement reference parsed from a table of
// contents: the entry text, the statement it names, and the printed
// page number it points at when one could be parsed.
type tocEntry struct {
	Text       string
	Type       model.FinancialType
	TargetPage *int
}

// tocEntryKeywords maps TOC vocabulary to financial types, in match
// order. Each carries a precompiled pattern for the full numbered
// entry ("7.3 Tuloslaskelma ... 134").
var tocEntryKeywords = []struct {
	keyword string
	ftype   model.FinancialType
	entryRe *regexp.Regexp
}{
	{"tuloslaskelma", model.FinIncomeStatement, tocEntryPattern("tuloslaskelma")},
	{"income statement", model.FinIncomeStatement, tocEntryPattern("income statement")},
	{"rahoituslaskelma", model.FinCashFlowStatement, tocEntryPattern("rahoituslaskelma")},
	{"cash flow", model.FinCashFlowStatement, tocEntryPattern("cash flow")},
	{"tase", model.FinBalanceSheet, tocEntryPattern("tase")},
	{"balance sheet", model.FinBalanceSheet, tocEntryPattern("balance sheet")},
	{"liitetiedot", model.FinNotes, tocEntryPattern("liitetiedot")},
	{"notes", model.FinNotes, tocEntryPattern("notes")},
}

func tocEntryPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\d+\.\d+(?:\.\d+)?\s*` + regexp.QuoteMeta(keyword) + `[^\n]*`)
}

// financialSectionFor maps statement types to page section tags.
var financialSectionFor = map[model.FinancialType]string{
	model.FinIncomeStatement:    model.SectionIncomeStatement,
	model.FinBalanceSheet:       model.SectionBalanceSheet,
	model.FinCashFlowStatement:  model.SectionCashFlow,
	model.FinNotes:              model.SectionNotes,
	model.FinAccountingPolicies: model.SectionAccountingPolicy,
	model.FinManagementReport:   model.SectionManagementReport,
}

// Patterns for the trailing page number of a TOC entry, tried in
// order: dotted leaders, a space-separated trailing number, a bare
// trailing number.
var tocPagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.{2,}\s*(\d{1,3})\s*$`),
	regexp.MustCompile(`\s+(\d{1,3})\s*$`),
	regexp.MustCompile(`(\d{1,3})\s*$`),
}

// ParseTOCTargetPage extracts the target page number from the end of a
// TOC entry ("8.3 Tase ... 134" yields 134). Numbers outside 1-500 are
// rejected as noise.
func ParseTOCTargetPage(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	for _, re := range tocPagePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > maxTOCTarget {
			continue
		}
		return n, true
	}
	return 0, false
}

// extractTOCEntries parses financial statement references out of a TOC
// page's blocks and table cells. Entries keep first-seen order; a
// repeated entry text updates in place, matching how repeated listings
// in multi-page TOCs behave.
func (c *Classifier) extractTOCEntries(page *model.Page) []tocEntry {
	var texts []string
	for _, item := range page.Items {
		switch it := item.(type) {
		case *model.Block:
			texts = append(texts, it.Text)
		case *model.Table:
			for _, cell := range it.Cells {
				texts = append(texts, cell.TextRaw)
			}
		}
	}

	var entries []tocEntry
	index := make(map[string]int)
	add := func(text string, ftype model.FinancialType, target *int) {
		if i, ok := index[text]; ok {
			entries[i].Type = ftype
			entries[i].TargetPage = target
			return
		}
		index[text] = len(entries)
		entries = append(entries, tocEntry{Text: text, Type: ftype, TargetPage: target})
	}

	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, kw := range tocEntryKeywords {
			if !strings.Contains(lower, kw.keyword) {
				continue
			}

			var target *int
			if n, ok := ParseTOCTargetPage(text); ok {
				target = &n
			}

			if matches := kw.entryRe.FindAllString(text, -1); len(matches) > 0 {
				for _, m := range matches {
					add(m, kw.ftype, target)
				}
			} else {
				add(kw.keyword, kw.ftype, target)
			}
		}
	}
	return entries
}

// buildTOCTargetMap resolves every parsed TOC entry with a target page
// to a physical page index and the section that page should carry.
// Later entries override earlier ones for the same physical page.
func (c *Classifier) buildTOCTargetMap(doc *model.Document, offset int) map[int]tocTarget {
	targets := make(map[int]tocTarget)
	for _, page := range doc.Pages {
		if page.Section() != model.SectionTOC {
			continue
		}
		for _, e := range c.extractTOCEntries(page) {
			if e.TargetPage == nil {
				continue
			}
			physical := *e.TargetPage + offset
			if physical < 0 {
				continue
			}
			section, ok := financialSectionFor[e.Type]
			if !ok {
				section = model.SectionNotes
			}
			targets[physical] = tocTarget{section: section, ftype: e.Type}
		}
	}
	return targets
}

// tocTarget is the section and statement type a TOC entry promises for
// a physical page.
type tocTarget struct {
	section string
	ftype   model.FinancialType
}
