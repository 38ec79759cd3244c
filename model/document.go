package model

// PDFInfo identifies the source PDF.
type PDFInfo struct {
	Filename string `json:"filename"`
	Pages    int    `json:"pages"`
}

// Document is the root aggregate: one reconstructed financial report.
// The merger creates it, the classifier and normalizer mutate it in
// place, and it is treated as immutable once QA has run.
type Document struct {
	PDF   PDFInfo `json:"pdf"`
	Pages []*Page `json:"pages"`

	// PageNumberOffset maps printed page numbers to physical page
	// indices: physical = printed + offset. Inferred by the
	// classifier; best-effort, may be nil.
	PageNumberOffset *int `json:"page_number_offset,omitempty"`
}

// TotalItems counts items across all pages.
func (d *Document) TotalItems() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Items)
	}
	return n
}

// PageByIndex returns the page with the given physical index, or nil.
func (d *Document) PageByIndex(idx int) *Page {
	for _, p := range d.Pages {
		if p.PageIndex == idx {
			return p
		}
	}
	return nil
}
