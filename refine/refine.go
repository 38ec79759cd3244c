// Package refine reclassifies malformed extraction output before the
// document is merged: tables that are really table-of-contents listings
// (dotted leaders, trailing page numbers) become ordered text blocks,
// and tables without tabular structure are collapsed into a single text
// block so they cannot pollute downstream financial analysis.
package refine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

var (
	sectionNumRe = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)
	dotRunRe     = regexp.MustCompile(`\.{3,}`)
	shortNumRe   = regexp.MustCompile(`\b\d{1,3}\b`)
	bareNumRe    = regexp.MustCompile(`^\d+$`)
	numericRe    = regexp.MustCompile(`[\d,.\-()]+`)
)

// TOC keywords checked against the concatenated page text.
var tocKeywords = []string{
	"sisällysluettelo",
	"sisallysluettelo",
	"contents",
	"table of contents",
}

// Config holds the refiner thresholds.
type Config struct {
	// MinTOCCells is the minimum cell count for a table to qualify as
	// a TOC candidate. Default: 3.
	MinTOCCells int

	// DotRunRatio and PageNumRatio are the combined-evidence
	// thresholds for the table TOC pattern. Defaults: 0.1 each.
	DotRunRatio  float64
	PageNumRatio float64

	// StrongDotRatio detects TOC on dotted leaders alone. Default: 0.2.
	StrongDotRatio float64

	// MinColumns is the minimum distinct column count for a valid
	// table. Default: 2.
	MinColumns int

	// MinNumericRatio is the minimum fraction of numeric-looking
	// cells for a valid table. Default: 0.10.
	MinNumericRatio float64
}

// DefaultConfig returns the thresholds used in production runs.
func DefaultConfig() Config {
	return Config{
		MinTOCCells:     3,
		DotRunRatio:     0.1,
		PageNumRatio:    0.1,
		StrongDotRatio:  0.2,
		MinColumns:      2,
		MinNumericRatio: 0.10,
	}
}

// Refiner applies block/table refinement page by page.
type Refiner struct {
	config Config
}

// New creates a refiner with default configuration.
func New() *Refiner {
	return &Refiner{config: DefaultConfig()}
}

// NewWithConfig creates a refiner with custom thresholds.
func NewWithConfig(config Config) *Refiner {
	return &Refiner{config: config}
}

// IsTOCPage reports whether a page looks like a table of contents.
// True when the concatenated page text contains a TOC keyword, or the
// dotted-leader heuristic fires (several section numbers, dot runs and
// short numbers together), or any table on the page matches the
// table-level TOC pattern.
func (r *Refiner) IsTOCPage(blocks []*model.Block, tables []*model.Table) bool {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(" ")
		sb.WriteString(b.Text)
	}
	for _, t := range tables {
		for _, c := range t.Cells {
			sb.WriteString(" ")
			sb.WriteString(c.TextRaw)
		}
	}
	allText := sb.String()
	lower := strings.ToLower(allText)

	for _, kw := range tocKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	sectionNums := len(sectionNumRe.FindAllString(allText, -1))
	dotRuns := len(dotRunRe.FindAllString(allText, -1))
	shortNums := len(shortNumRe.FindAllString(allText, -1))
	if sectionNums >= 3 && dotRuns >= 2 && shortNums >= 3 {
		return true
	}

	for _, t := range tables {
		if r.DetectTOCPattern(t) {
			return true
		}
	}
	return false
}

// DetectTOCPattern reports whether a single table looks like TOC
// content: enough cells carry dotted leaders and bare page numbers.
// Tables with fewer than MinTOCCells cells are never TOC.
func (r *Refiner) DetectTOCPattern(t *model.Table) bool {
	if len(t.Cells) < r.config.MinTOCCells {
		return false
	}

	dotted, pageNums := 0, 0
	for _, c := range t.Cells {
		text := strings.TrimSpace(c.TextRaw)
		if dotRunRe.MatchString(text) {
			dotted++
		}
		if bareNumRe.MatchString(text) {
			pageNums++
		}
	}

	total := float64(len(t.Cells))
	dotRatio := float64(dotted) / total
	pageNumRatio := float64(pageNums) / total

	return (dotRatio > r.config.DotRunRatio && pageNumRatio > r.config.PageNumRatio) ||
		dotRatio > r.config.StrongDotRatio
}

// ValidateTableStructure reports whether a table has usable tabular
// structure: at least MinColumns distinct columns and at least
// MinNumericRatio of cells containing numeric-looking content.
func (r *Refiner) ValidateTableStructure(t *model.Table) bool {
	if len(t.Cells) == 0 {
		return false
	}
	if t.ColumnCount() < r.config.MinColumns {
		return false
	}

	numeric := 0
	for _, c := range t.Cells {
		if numericRe.MatchString(c.TextRaw) {
			numeric++
		}
	}
	ratio := float64(numeric) / float64(len(t.Cells))
	return ratio >= r.config.MinNumericRatio
}

// RefinePage refines one page's extraction output. Converted blocks
// are appended after the page's existing blocks; tables that survive
// are returned unchanged.
func (r *Refiner) RefinePage(pageIndex int, blocks []*model.Block, tables []*model.Table) ([]*model.Block, []*model.Table) {
	pageTOC := r.IsTOCPage(blocks, tables)

	outBlocks := make([]*model.Block, len(blocks))
	copy(outBlocks, blocks)
	var outTables []*model.Table

	for _, t := range tables {
		if pageTOC || r.DetectTOCPattern(t) {
			outBlocks = append(outBlocks, convertTOCTable(t, pageIndex)...)
			continue
		}
		if !r.ValidateTableStructure(t) {
			if b := convertInvalidTable(t, pageIndex); b != nil {
				outBlocks = append(outBlocks, b)
			}
			continue
		}
		outTables = append(outTables, t)
	}

	return outBlocks, outTables
}

// convertTOCTable turns a TOC-like table into one list-item block per
// row, cells joined left to right.
func convertTOCTable(t *model.Table, pageIndex int) []*model.Block {
	byRow := make(map[int][]model.Cell)
	for _, c := range t.Cells {
		byRow[c.Row] = append(byRow[c.Row], c)
	}
	rowIndices := make([]int, 0, len(byRow))
	for r := range byRow {
		rowIndices = append(rowIndices, r)
	}
	sort.Ints(rowIndices)

	var blocks []*model.Block
	for _, rowIdx := range rowIndices {
		cells := byRow[rowIdx]
		sort.SliceStable(cells, func(i, j int) bool { return cells[i].Col < cells[j].Col })

		var parts []string
		for _, c := range cells {
			parts = append(parts, strings.TrimSpace(c.TextRaw))
		}
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}

		blocks = append(blocks, &model.Block{
			BlockID:      fmt.Sprintf("p%d_b_toc_%d", pageIndex, rowIdx),
			Type:         model.BlockText,
			Text:         text,
			BBox:         t.BBox,
			Source:       model.SourceOCR,
			Confidence:   1.0,
			SemanticType: "list_item",
		})
	}
	return blocks
}

// convertInvalidTable collapses a structurally invalid table into one
// combined text block, or nil when the table holds no text at all.
func convertInvalidTable(t *model.Table, pageIndex int) *model.Block {
	var parts []string
	for _, c := range t.Cells {
		if s := strings.TrimSpace(c.TextRaw); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	return &model.Block{
		BlockID:      fmt.Sprintf("p%d_b_from_table_%s", pageIndex, t.TableID),
		Type:         model.BlockText,
		Text:         strings.Join(parts, " "),
		BBox:         t.BBox,
		Source:       model.SourceOCR,
		Confidence:   1.0,
		SemanticType: "text",
	}
}
