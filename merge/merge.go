// Package merge assembles refined per-page extraction output into a
// single document. It strips running headers and footers, clusters
// wide pages into columns, orders items top to bottom within each
// column, and attaches per-page OCR quality metrics.
package merge

import (
	"log/slog"
	"sort"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
	"github.com/FoxRav/documents-to-ai-readable-data/refine"
)

// Config holds the merger thresholds.
type Config struct {
	// HeaderRatio is the fraction of page height treated as the
	// header band. Blocks starting above it are dropped. Default: 0.10.
	HeaderRatio float64

	// FooterRatio is the fraction of page height above which a block's
	// bottom edge marks it as a footer. Default: 0.90.
	FooterRatio float64

	// ColumnSpanRatio is the minimum x-center spread, as a fraction of
	// page width, for a page to be treated as two-column. Default: 0.6.
	ColumnSpanRatio float64

	// Logger receives merge diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the thresholds used in production runs.
func DefaultConfig() Config {
	return Config{
		HeaderRatio:     0.10,
		FooterRatio:     0.90,
		ColumnSpanRatio: 0.6,
	}
}

// Merger builds pages and documents in reading order.
type Merger struct {
	config  Config
	refiner *refine.Refiner
	logger  *slog.Logger
}

// New creates a merger with default configuration.
func New() *Merger {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a merger with custom thresholds.
func NewWithConfig(config Config) *Merger {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{
		config:  config,
		refiner: refine.New(),
		logger:  logger,
	}
}

// PageInput is one page's refined extraction output plus its manifest
// geometry.
type PageInput struct {
	Index  int
	Width  float64
	Height float64
	Mode   model.PageMode
	Blocks []*model.Block
	Tables []*model.Table
}

// StripHeaderFooter drops blocks that sit in the header or footer band.
// Tables are never stripped; callers pass blocks only.
func (m *Merger) StripHeaderFooter(blocks []*model.Block, pageHeight float64) []*model.Block {
	headerY := m.config.HeaderRatio * pageHeight
	footerY := m.config.FooterRatio * pageHeight

	kept := make([]*model.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.BBox.Y0 < headerY || b.BBox.Y1 > footerY {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// ClusterColumns groups items into one or two column clusters. When the
// spread of item x-centers is less than ColumnSpanRatio of the page
// width the page is single-column; otherwise items are split at the
// horizontal midpoint. Each cluster is sorted top to bottom.
func (m *Merger) ClusterColumns(items []model.Item, pageWidth float64) [][]model.Item {
	if len(items) == 0 {
		return nil
	}

	minCenter := items[0].Bounds().CenterX()
	maxCenter := minCenter
	for _, it := range items[1:] {
		c := it.Bounds().CenterX()
		if c < minCenter {
			minCenter = c
		}
		if c > maxCenter {
			maxCenter = c
		}
	}

	if pageWidth <= 0 || (maxCenter-minCenter)/pageWidth < m.config.ColumnSpanRatio {
		return [][]model.Item{sortByTop(items)}
	}

	mid := pageWidth / 2
	var left, right []model.Item
	for _, it := range items {
		if it.Bounds().CenterX() < mid {
			left = append(left, it)
		} else {
			right = append(right, it)
		}
	}
	return [][]model.Item{sortByTop(left), sortByTop(right)}
}

// ReadingOrder flattens column clusters into a single sequence. A lone
// cluster is already ordered; multiple clusters are interleaved by top
// edge, with the leftmost column winning ties.
func (m *Merger) ReadingOrder(clusters [][]model.Item) []model.Item {
	if len(clusters) == 0 {
		return nil
	}
	if len(clusters) == 1 {
		return clusters[0]
	}

	type placed struct {
		item model.Item
		col  int
	}
	var all []placed
	for col, cluster := range clusters {
		for _, it := range cluster {
			all = append(all, placed{item: it, col: col})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		yi, yj := all[i].item.Bounds().Y0, all[j].item.Bounds().Y0
		if yi != yj {
			return yi < yj
		}
		return all[i].col < all[j].col
	})

	out := make([]model.Item, len(all))
	for i, p := range all {
		out[i] = p.item
	}
	return out
}

// MergePage produces a single page in reading order. Header/footer
// stripping is skipped on table-of-contents pages, where page numbers
// carry the content.
func (m *Merger) MergePage(in PageInput) *model.Page {
	blocks := in.Blocks
	if !m.refiner.IsTOCPage(in.Blocks, in.Tables) {
		blocks = m.StripHeaderFooter(blocks, in.Height)
	}

	items := make([]model.Item, 0, len(blocks)+len(in.Tables))
	for _, b := range blocks {
		items = append(items, b)
	}
	for _, t := range in.Tables {
		items = append(items, t)
	}

	ordered := m.ReadingOrder(m.ClusterColumns(items, in.Width))

	return &model.Page{
		PageIndex:   in.Index,
		Width:       in.Width,
		Height:      in.Height,
		Mode:        in.Mode,
		ContentType: model.ContentFinancial,
		Items:       ordered,
	}
}

// MergeDocument merges all pages into one document, attaching OCR
// quality metrics by page index. Pages that end up with no items are
// kept but reported once through the logger.
func (m *Merger) MergeDocument(filename string, pages []PageInput, quality map[int]*model.OCRQuality) *model.Document {
	merged := make([]*model.Page, 0, len(pages))
	var empty []int

	for _, in := range pages {
		page := m.MergePage(in)
		if q, ok := quality[in.Index]; ok {
			page.OCRQuality = q
		}
		if len(page.Items) == 0 {
			empty = append(empty, in.Index)
		}
		merged = append(merged, page)
	}

	if len(empty) > 0 {
		shown := empty
		if len(shown) > 10 {
			shown = shown[:10]
		}
		m.logger.Warn("pages with no content after merge",
			"count", len(empty),
			"pages", shown)
	}

	if filename == "" {
		filename = "unknown.pdf"
	}
	return &model.Document{
		PDF:   model.PDFInfo{Filename: filename, Pages: len(merged)},
		Pages: merged,
	}
}

// sortByTop returns the items sorted by top edge. Ties keep insertion
// order, so blocks stay ahead of tables at the same height.
func sortByTop(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Bounds().Y0 < out[j].Bounds().Y0
	})
	return out
}
