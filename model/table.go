package model

import "sort"

// Cell is one table cell. (Row, Col) pairs are not required to be
// unique or dense; sparse and malformed tables are tolerated and
// consumers must handle them defensively.
type Cell struct {
	Row        int      `json:"row"`
	Col        int      `json:"col"`
	TextRaw    string   `json:"text_raw"`
	ValueNum   *float64 `json:"value_num,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	BBox       *BBox    `json:"bbox,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Table is an extracted grid of cells.
type Table struct {
	TableID    string     `json:"table_id"`
	BBox       BBox       `json:"bbox"`
	Source     SourceType `json:"source"`
	Confidence *float64   `json:"confidence,omitempty"`
	Cells      []Cell     `json:"cells"`

	// Grid is a redundant column-oriented view (column index as a
	// string key, mapped to that column's row texts) kept for fast
	// column access by exporters.
	Grid map[string][]string `json:"grid,omitempty"`

	SemanticType           string        `json:"semantic_type,omitempty"`
	FinancialType          FinancialType `json:"financial_type,omitempty"`
	ClassificationEvidence []string      `json:"classification_evidence,omitempty"`
}

// ItemID returns the table identifier.
func (t *Table) ItemID() string { return t.TableID }

// Bounds returns the table bounding box.
func (t *Table) Bounds() BBox { return t.BBox }

// ColumnCount returns the number of distinct column indices.
func (t *Table) ColumnCount() int {
	cols := make(map[int]struct{})
	for _, c := range t.Cells {
		cols[c.Col] = struct{}{}
	}
	return len(cols)
}

// Rows groups cells by row index, preserving the order cells were
// encountered within each row, and returns the groups in ascending row
// order. Checkers rely on this ordering being deterministic.
func (t *Table) Rows() [][]Cell {
	byRow := make(map[int][]Cell)
	for _, c := range t.Cells {
		byRow[c.Row] = append(byRow[c.Row], c)
	}
	indices := make([]int, 0, len(byRow))
	for r := range byRow {
		indices = append(indices, r)
	}
	sort.Ints(indices)
	rows := make([][]Cell, 0, len(indices))
	for _, r := range indices {
		rows = append(rows, byRow[r])
	}
	return rows
}

// HeaderTexts returns the texts of cells in row 0, in encounter order.
func (t *Table) HeaderTexts() []string {
	var texts []string
	for _, c := range t.Cells {
		if c.Row == 0 {
			texts = append(texts, c.TextRaw)
		}
	}
	return texts
}
