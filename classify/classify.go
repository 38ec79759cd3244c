// Package classify assigns semantic meaning to a merged document: a
// section per page (cover, toc, the financial statements, notes), a
// semantic type and financial type per block and table, and the
// document-wide offset between printed page numbers and physical page
// indices. Classification runs in two passes so that table-of-contents
// entries found in the first pass can steer the second.
package classify

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
	"github.com/FoxRav/documents-to-ai-readable-data/refine"
)

// Sanity bounds for page numbers read from page furniture and TOC
// entries. Municipal reports run a few hundred pages at most.
const (
	maxPrintedPage = 200
	maxTOCTarget   = 500
)

// Config holds the classifier thresholds.
type Config struct {
	// OffsetScanFrom/OffsetScanTo bound the page window (slice
	// indices) searched for printed page numbers. The window skips
	// cover and TOC pages at the front. Defaults: 3, 15.
	OffsetScanFrom int
	OffsetScanTo   int

	// FooterBand is the fraction of page height above which a block
	// counts as footer furniture. Default: 0.85.
	FooterBand float64

	// HeaderBand is the fraction of page height below which a block
	// counts as header furniture. Default: 0.10.
	HeaderBand float64

	// DefaultOffset is the printed-to-physical page offset assumed
	// when no evidence is found. Default: 2, the usual cover+blank
	// front matter of Finnish municipal reports.
	DefaultOffset int

	// HardRuleMin is the number of distinct statement indicators a
	// page must carry before a hard rule fires. Default: 2.
	HardRuleMin int

	// NotesMinChars is the minimum combined text length for a page to
	// count as notes content rather than a passing reference.
	// Default: 500.
	NotesMinChars int

	// RetryBelow is the confidence under which pass two re-runs the
	// keyword classifier on a page. Default: 0.3.
	RetryBelow float64

	// Logger receives classification diagnostics. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the thresholds used in production runs.
func DefaultConfig() Config {
	return Config{
		OffsetScanFrom: 3,
		OffsetScanTo:   15,
		FooterBand:     0.85,
		HeaderBand:     0.10,
		DefaultOffset:  2,
		HardRuleMin:    2,
		NotesMinChars:  500,
		RetryBelow:     0.3,
	}
}

// Classifier assigns semantic sections and financial types.
type Classifier struct {
	config  Config
	refiner *refine.Refiner
	logger  *slog.Logger
}

// New creates a classifier with default configuration.
func New() *Classifier {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a classifier with custom thresholds.
func NewWithConfig(config Config) *Classifier {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		config:  config,
		refiner: refine.New(),
		logger:  logger,
	}
}

// ClassifyDocument classifies every page and element in place. After it
// returns, no page has a null semantic section, no element a null
// semantic type, and the document carries its page number offset.
func (c *Classifier) ClassifyDocument(doc *model.Document) {
	// Pass one: keyword and layout evidence per page. Unmatched pages
	// get a provisional tag so the offset inference below can rely on
	// sections being present.
	for _, page := range doc.Pages {
		section, confidence := c.classifyPageSection(page)
		switch {
		case section != "":
			page.SetSection(section, confidence)
		case page.PageIndex == 0:
			page.SetSection(model.SectionCover, 0.5)
		default:
			page.SetSection(model.SectionAppendix, 0.1)
		}
	}

	offset := c.pageNumberOffset(doc)
	doc.PageNumberOffset = &offset

	targets := c.buildTOCTargetMap(doc, offset)
	if len(targets) > 0 {
		indices := make([]int, 0, len(targets))
		for idx := range targets {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		if len(indices) > 10 {
			indices = indices[:10]
		}
		c.logger.Info("TOC target map built",
			"targets", len(targets),
			"pages", indices)
	}

	// Pass two: refine using TOC targets and hard content rules. Cover
	// and TOC assignments are final.
	for _, page := range doc.Pages {
		section := page.Section()
		if section == model.SectionTOC || section == model.SectionCover {
			continue
		}

		if target, ok := targets[page.PageIndex]; ok {
			page.SetSection(target.section, 0.85)
			c.logger.Debug("TOC-guided section",
				"page", page.PageIndex,
				"section", target.section)
			continue
		}

		if hard, confidence := c.classifyWithHardRules(page); hard != "" && confidence > 0.5 {
			page.SetSection(hard, confidence)
			continue
		}

		if sectionConfidence(page) < c.config.RetryBelow {
			retry, confidence := c.classifyPageSection(page)
			if retry != "" && confidence > sectionConfidence(page) {
				page.SetSection(retry, confidence)
			}
		}
	}

	// Element pass: semantic and financial types per block and table.
	// On TOC pages, entries parsed from the listing carry target pages
	// onto the matching blocks.
	elements := 0
	for _, page := range doc.Pages {
		var entries []tocEntry
		if page.Section() == model.SectionTOC {
			entries = c.extractTOCEntries(page)
		}
		for idx, item := range page.Items {
			switch it := item.(type) {
			case *model.Block:
				c.classifyBlock(it, idx == 0, page.Section(), entries, offset)
			case *model.Table:
				c.classifyTable(it)
			}
			elements++
		}
	}

	c.logger.Info("semantic classification complete",
		"pages", len(doc.Pages),
		"elements", elements,
		"page_number_offset", offset)
}

// classifyBlock sets the block's semantic type and financial type. On
// TOC pages a matching parsed entry wins over keyword evidence and
// carries its printed target page plus the offset-resolved physical
// index onto the block.
func (c *Classifier) classifyBlock(b *model.Block, first bool, pageSection string, entries []tocEntry, offset int) {
	if st := classifyElementType(b, first); st != "" {
		b.SemanticType = st
	} else {
		b.SemanticType = "text"
	}

	var (
		ftype    model.FinancialType
		evidence []string
		target   *int
	)

	if pageSection == model.SectionTOC && len(entries) > 0 {
		lower := strings.ToLower(b.Text)
		for _, e := range entries {
			if strings.Contains(lower, strings.ToLower(e.Text)) {
				ftype = e.Type
				target = e.TargetPage
				evidence = []string{"toc_entry:" + e.Text}
				break
			}
		}
	}
	if ftype == "" {
		ftype, evidence = ClassifyFinancialType(b.Text)
	}
	if ftype != "" {
		b.FinancialType = ftype
		b.ClassificationEvidence = evidence
	}

	if target != nil {
		printed := *target
		b.TOCTargetPage = &printed
		if physical := printed + offset; physical >= 0 {
			b.PDFTargetPage = &physical
		}
	}
}

// classifyTable tags the table and assigns a financial type from
// structure heuristics, falling back to keywords in the header row.
func (c *Classifier) classifyTable(t *model.Table) {
	t.SemanticType = "table"

	ftype, evidence := classifyTableStructure(t)
	if ftype == "" && len(t.Cells) > 0 {
		ftype, evidence = ClassifyFinancialType(headerRowText(t, 5))
	}
	if ftype != "" {
		t.FinancialType = ftype
		t.ClassificationEvidence = evidence
	}
}

// sectionConfidence returns the page's semantic confidence or 0.
func sectionConfidence(page *model.Page) float64 {
	if page.SemanticConfidence == nil {
		return 0
	}
	return *page.SemanticConfidence
}
