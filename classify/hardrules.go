package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// Uppercase indicators that appear as row labels on Finnish municipal
// statement pages. Requiring several of them on one page keeps a
// passing mention from reclassifying prose.
var (
	balanceHardTerms = []string{
		"VASTAAVAA",
		"VASTATTAVAA",
		"PYSYVÄT VASTAAVAT",
		"VAIHTUVAT VASTAAVAT",
		"OMA PÄÄOMA",
		"VIERAS PÄÄOMA",
	}

	incomeHardTerms = []string{
		"TOIMINTATUOTOT",
		"TOIMINTAKULUT",
		"VUOSIKATE",
		"TILIKAUDEN TULOS",
		"SATUNNAISET TUOTOT",
		"SATUNNAISET KULUT",
	}

	cashFlowHardTerms = []string{
		"TOIMINNAN RAHAVIRTA",
		"INVESTOINTIEN RAHAVIRTA",
		"RAHOITUKSEN RAHAVIRTA",
		"RAHAVAROJEN MUUTOS",
	}
)

// classifyWithHardRules classifies a page from strong content evidence:
// enough uppercase statement row labels, or a notes reference backed by
// substantial text. Returns "" with confidence 0 when no rule fires.
func (c *Classifier) classifyWithHardRules(page *model.Page) (string, float64) {
	var sb strings.Builder
	for _, item := range page.Items {
		switch it := item.(type) {
		case *model.Block:
			sb.WriteString(" ")
			sb.WriteString(it.Text)
		case *model.Table:
			for _, cell := range it.Cells {
				sb.WriteString(" ")
				sb.WriteString(cell.TextRaw)
			}
		}
	}
	allText := sb.String()
	upper := strings.ToUpper(allText)

	if countContains(upper, balanceHardTerms) >= c.config.HardRuleMin {
		return model.SectionBalanceSheet, 0.9
	}
	if countContains(upper, incomeHardTerms) >= c.config.HardRuleMin {
		return model.SectionIncomeStatement, 0.9
	}
	if countContains(upper, cashFlowHardTerms) >= c.config.HardRuleMin {
		return model.SectionCashFlow, 0.9
	}

	lower := strings.ToLower(allText)
	if strings.Contains(lower, "liitetiedot") || strings.Contains(lower, "liite ") {
		if utf8.RuneCountInString(allText) > c.config.NotesMinChars {
			return model.SectionNotes, 0.7
		}
	}

	return "", 0
}

// countContains counts how many of the terms occur in text.
func countContains(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}
