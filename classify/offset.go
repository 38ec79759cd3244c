package classify

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

var (
	bareNumberRe = regexp.MustCompile(`^(\d{1,3})$`)
	sivuRe       = regexp.MustCompile(`(?:sivu|page)\s*(\d{1,3})`)
)

// pageNumberOffset infers the document-wide offset between printed page
// numbers and physical page indices, so physical = printed + offset.
// Evidence comes from bare numbers and "sivu N"/"page N" markers in
// page furniture; the median of the observed offsets wins. With no
// evidence the position of the first TOC page calibrates the estimate,
// and failing that a fixed default covers the usual unnumbered front
// matter.
func (c *Classifier) pageNumberOffset(doc *model.Document) int {
	type candidate struct {
		physical int
		printed  int
	}
	var candidates []candidate

	window := scanWindow(doc.Pages, c.config.OffsetScanFrom, c.config.OffsetScanTo)

	for _, page := range window {
		if len(page.Items) == 0 {
			continue
		}
		footerY := page.Height * c.config.FooterBand
		for _, b := range page.Blocks() {
			if b.BBox.Y0 <= footerY && b.BBox.Y1 <= footerY {
				continue
			}
			text := strings.TrimSpace(b.Text)
			if printed, ok := printedPageNumber(text); ok {
				candidates = append(candidates, candidate{page.PageIndex, printed})
			}
			if m := sivuRe.FindStringSubmatch(strings.ToLower(text)); m != nil {
				if printed, err := strconv.Atoi(m[1]); err == nil && printed >= 1 && printed <= maxPrintedPage {
					candidates = append(candidates, candidate{page.PageIndex, printed})
				}
			}
		}
	}

	for _, page := range window {
		if len(page.Items) == 0 {
			continue
		}
		headerY := page.Height * c.config.HeaderBand
		for _, b := range page.Blocks() {
			if b.BBox.Y0 >= headerY {
				continue
			}
			if printed, ok := printedPageNumber(strings.TrimSpace(b.Text)); ok {
				candidates = append(candidates, candidate{page.PageIndex, printed})
			}
		}
	}

	if len(candidates) > 0 {
		offsets := make([]int, len(candidates))
		for i, cand := range candidates {
			offsets[i] = cand.physical - cand.printed
		}
		sort.Ints(offsets)
		offset := offsets[len(offsets)/2]
		c.logger.Info("page number offset from printed numbers",
			"candidates", len(candidates),
			"offset", offset)
		return offset
	}

	for _, page := range doc.Pages {
		if page.Section() == model.SectionTOC {
			offset := page.PageIndex - 1
			c.logger.Info("page number offset estimated from TOC position",
				"toc_page", page.PageIndex,
				"offset", offset)
			return offset
		}
	}

	c.logger.Warn("page number offset defaulted",
		"offset", c.config.DefaultOffset)
	return c.config.DefaultOffset
}

// printedPageNumber parses a bare 1-3 digit page number.
func printedPageNumber(text string) (int, bool) {
	m := bareNumberRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > maxPrintedPage {
		return 0, false
	}
	return n, true
}

// scanWindow returns pages[from:to] with slice bounds clamped.
func scanWindow(pages []*model.Page, from, to int) []*model.Page {
	if from > len(pages) {
		from = len(pages)
	}
	if to > len(pages) {
		to = len(pages)
	}
	if from >= to {
		return nil
	}
	return pages[from:to]
}
