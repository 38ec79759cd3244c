package model

// Finding is one QA observation. Findings reference document entities
// by id and index only; producing a finding never mutates the document.
type Finding struct {
	Checker    string   `json:"checker"`
	PageIndex  int      `json:"page_index"`
	BlockID    string   `json:"block_id,omitempty"`
	TableID    string   `json:"table_id,omitempty"`
	BBox       *BBox    `json:"bbox,omitempty"`
	Reason     string   `json:"reason"`
	Severity   Severity `json:"severity"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// TableCellExactness aggregates cell-level extraction quality over the
// whole document.
type TableCellExactness struct {
	EmptyCellsPercent         *float64 `json:"empty_cells_percent,omitempty"`
	UnparseableNumbersPercent *float64 `json:"unparseable_numbers_percent,omitempty"`
}

// SumCheck records one sum-row consistency comparison.
type SumCheck struct {
	PageIndex  int      `json:"page_index"`
	TableID    string   `json:"table_id"`
	RowOrCol   string   `json:"row_or_col"`
	Expected   float64  `json:"expected"`
	Actual     float64  `json:"actual"`
	Difference float64  `json:"difference"`
	Severity   Severity `json:"severity"`
}

// BalanceCheck records one balance-sheet equation comparison.
type BalanceCheck struct {
	PageIndex   int      `json:"page_index"`
	TableID     string   `json:"table_id"`
	Assets      float64  `json:"assets"`
	Liabilities float64  `json:"liabilities"`
	Difference  float64  `json:"difference"`
	Severity    Severity `json:"severity"`
}

// XRefCheck records one note cross-reference resolution.
type XRefCheck struct {
	Reference    string   `json:"reference"`
	FoundInMain  bool     `json:"found_in_main"`
	FoundInNotes bool     `json:"found_in_notes"`
	Severity     Severity `json:"severity"`
}

// DiffCheck records one regression difference against the golden
// snapshot.
type DiffCheck struct {
	PageIndex   int      `json:"page_index"`
	TableID     string   `json:"table_id"`
	Sources     []string `json:"sources"`
	Differences string   `json:"differences"`
	Severity    Severity `json:"severity"`
}

// QAReport is the consolidated validation result for one run.
type QAReport struct {
	PDF                PDFInfo             `json:"pdf"`
	SchemaValid        bool                `json:"schema_valid"`
	TableCellExactness *TableCellExactness `json:"table_cell_exactness,omitempty"`
	SumChecks          []SumCheck          `json:"sum_checks"`
	BalanceChecks      []BalanceCheck      `json:"balance_checks"`
	XRefChecks         []XRefCheck         `json:"xref_checks"`
	DiffChecks         []DiffCheck         `json:"diff_checks"`
	Findings           []Finding           `json:"findings"`
}

// CountBySeverity tallies findings per severity level.
func (r *QAReport) CountBySeverity() (errors, warnings, infos int) {
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}
	return errors, warnings, infos
}
