package model

import (
	"encoding/json"
	"fmt"
)

// OCRQuality carries the per-page OCR text quality metrics computed
// upstream (or by the quality package for locally produced OCR blocks).
type OCRQuality struct {
	Status         string  `json:"status"`
	Score          float64 `json:"score"`
	AlphaRatio     float64 `json:"alpha_ratio"`
	DigitRatio     float64 `json:"digit_ratio"`
	RepeatRunMax   int     `json:"repeat_run_max"`
	JunkTokenRatio float64 `json:"junk_token_ratio"`
	AvgWordLen     float64 `json:"avg_word_len"`
}

// Page is one physical page. Items holds the final reading order
// produced by the merger; no downstream consumer re-sorts it.
type Page struct {
	PageIndex          int         `json:"page_index"`
	Width              float64     `json:"width"`
	Height             float64     `json:"height"`
	Mode               PageMode    `json:"mode,omitempty"`
	ContentType        ContentType `json:"content_type,omitempty"`
	SemanticSection    *string     `json:"semantic_section,omitempty"`
	SemanticConfidence *float64    `json:"semantic_confidence,omitempty"`
	OCRQuality         *OCRQuality `json:"ocr_quality,omitempty"`
	Items              []Item      `json:"items"`
}

// Blocks returns the page's block items in reading order.
func (p *Page) Blocks() []*Block {
	var blocks []*Block
	for _, item := range p.Items {
		if b, ok := item.(*Block); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Tables returns the page's table items in reading order.
func (p *Page) Tables() []*Table {
	var tables []*Table
	for _, item := range p.Items {
		if t, ok := item.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Section returns the semantic section tag or "" when unclassified.
func (p *Page) Section() string {
	if p.SemanticSection == nil {
		return ""
	}
	return *p.SemanticSection
}

// SetSection assigns the semantic section and its confidence.
func (p *Page) SetSection(section string, confidence float64) {
	p.SemanticSection = &section
	p.SemanticConfidence = &confidence
}

// UnmarshalJSON decodes a page, resolving each entry of "items" to a
// *Block or *Table by shape.
func (p *Page) UnmarshalJSON(data []byte) error {
	var aux struct {
		PageIndex          int               `json:"page_index"`
		Width              float64           `json:"width"`
		Height             float64           `json:"height"`
		Mode               PageMode          `json:"mode"`
		ContentType        ContentType       `json:"content_type"`
		SemanticSection    *string           `json:"semantic_section"`
		SemanticConfidence *float64          `json:"semantic_confidence"`
		OCRQuality         *OCRQuality       `json:"ocr_quality"`
		Items              []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.PageIndex = aux.PageIndex
	p.Width = aux.Width
	p.Height = aux.Height
	p.Mode = aux.Mode
	p.ContentType = aux.ContentType
	p.SemanticSection = aux.SemanticSection
	p.SemanticConfidence = aux.SemanticConfidence
	p.OCRQuality = aux.OCRQuality
	p.Items = nil
	for i, raw := range aux.Items {
		item, err := decodeItem(raw)
		if err != nil {
			return fmt.Errorf("page %d item %d: %w", aux.PageIndex, i, err)
		}
		p.Items = append(p.Items, item)
	}
	return nil
}

// MarshalJSON encodes a page with a non-null items array, matching the
// serialization contract even for empty pages.
func (p *Page) MarshalJSON() ([]byte, error) {
	type alias Page
	a := (*alias)(p)
	if a.Items == nil {
		cp := *a
		cp.Items = []Item{}
		return json.Marshal(&cp)
	}
	return json.Marshal(a)
}
