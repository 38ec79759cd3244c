package model

// FontStats summarizes font attributes for a text block, when the
// extractor provides them.
type FontStats struct {
	Size   *float64 `json:"size,omitempty"`
	Family *string  `json:"family,omitempty"`
	Bold   *bool    `json:"bold,omitempty"`
	Italic *bool    `json:"italic,omitempty"`
}

// IsBold reports whether the stats are present and flag bold text.
func (f *FontStats) IsBold() bool {
	return f != nil && f.Bold != nil && *f.Bold
}

// Block is a single text span on a page.
type Block struct {
	BlockID    string     `json:"block_id"`
	Type       BlockType  `json:"type"`
	Text       string     `json:"text"`
	BBox       BBox       `json:"bbox"`
	Source     SourceType `json:"source"`
	Confidence float64    `json:"confidence"`
	FontStats  *FontStats `json:"font_stats,omitempty"`

	// Classification output. SemanticType is the layout role (title,
	// section_header, list_item, text); FinancialType the statement
	// category. Evidence lists the signals behind the assignment.
	SemanticType           string        `json:"semantic_type,omitempty"`
	FinancialType          FinancialType `json:"financial_type,omitempty"`
	ClassificationEvidence []string      `json:"classification_evidence,omitempty"`

	// OCRPassUsed records which OCR retry pass produced the text
	// (1=PSM6, 2=PSM11, 3=PSM4).
	OCRPassUsed *int `json:"ocr_pass_used,omitempty"`

	// For table-of-contents entries: the page number printed in the
	// entry and the physical page index it resolves to after the
	// document offset is applied.
	TOCTargetPage *int `json:"toc_target_page,omitempty"`
	PDFTargetPage *int `json:"pdf_target_page,omitempty"`
}

// ItemID returns the block identifier.
func (b *Block) ItemID() string { return b.BlockID }

// Bounds returns the block bounding box.
func (b *Block) Bounds() BBox { return b.BBox }
