package classify

import (
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

// Keyword families for financial statement classification, Finnish
// first with English equivalents. Match order matters: the first
// family with a hit wins, so balance sheet terms shade income terms
// and both shade the generic notes vocabulary.
var (
	balanceSheetKeywords = []string{
		"tase",
		"balance sheet",
		"statement of financial position",
		"vastaavaa",
		"vastattavaa",
		"omavaraisuusaste",
		"varat",
		"velat",
	}

	incomeStatementKeywords = []string{
		"tuloslaskelma",
		"income statement",
		"profit or loss",
		"toimintatuotot",
		"toimintakulut",
		"verotulot",
		"tulos",
	}

	cashFlowKeywords = []string{
		"rahoituslaskelma",
		"cash flow",
		"rahavirtalaskelma",
		"cash_assets",
	}

	notesKeywords = []string{
		"liitetiedot",
		"notes",
		"liite",
		"selitykset",
		"explanatory notes",
	}

	accountingPolicyKeywords = []string{
		"tilinpäätöksen laatimisperiaatteet",
		"accounting policies",
		"financial_statement_principles",
	}
)

// Page-section keyword lists.
var (
	tocSectionKeywords = []string{"sisällysluettelo", "contents", "table of contents", "sisällys"}
	coverKeywords      = []string{"tilinpäätös", "financial statement", "annual report", "vuosikertomus"}
	managementKeywords = []string{"johtajan kertomus", "management report", "hallituksen kertomus"}
)

// financialKeywordFamilies pairs each family with its type, in match
// priority order.
var financialKeywordFamilies = []struct {
	ftype    model.FinancialType
	keywords []string
}{
	{model.FinBalanceSheet, balanceSheetKeywords},
	{model.FinIncomeStatement, incomeStatementKeywords},
	{model.FinCashFlowStatement, cashFlowKeywords},
	{model.FinNotes, notesKeywords},
	{model.FinAccountingPolicies, accountingPolicyKeywords},
}

// ClassifyFinancialType assigns a financial statement type from keyword
// evidence in the text, or "" when nothing matches. The returned
// evidence names the matched keyword.
func ClassifyFinancialType(text string) (model.FinancialType, []string) {
	lower := strings.ToLower(text)
	for _, family := range financialKeywordFamilies {
		for _, kw := range family.keywords {
			if strings.Contains(lower, kw) {
				return family.ftype, []string{"keyword:" + kw}
			}
		}
	}
	return "", nil
}

// classifyTableStructure assigns a financial type from table structure:
// balance sheet column labels in the leading cells, or year columns
// plus income/expense row labels.
func classifyTableStructure(t *model.Table) (model.FinancialType, []string) {
	if len(t.Cells) == 0 {
		return "", nil
	}

	n := len(t.Cells)
	if n > 10 {
		n = 10
	}
	parts := make([]string, 0, n)
	for _, c := range t.Cells[:n] {
		parts = append(parts, strings.ToLower(c.TextRaw))
	}
	leading := strings.Join(parts, " ")

	for _, term := range []string{"vastaavaa", "vastattavaa", "varat", "velat"} {
		if strings.Contains(leading, term) {
			return model.FinBalanceSheet, []string{"structure:balance_sheet_columns"}
		}
	}

	if strings.Contains(leading, "2024") || strings.Contains(leading, "2023") {
		for _, term := range []string{"tuotot", "kulut", "tulos"} {
			if strings.Contains(leading, term) {
				return model.FinIncomeStatement, []string{"structure:income_statement_columns"}
			}
		}
	}

	return "", nil
}

// containsAny reports whether any of the keywords occurs in text.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
