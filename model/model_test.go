package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewBBox_Validation(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		wantErr        bool
	}{
		{"valid", 10, 20, 110, 40, false},
		{"inverted x", 110, 20, 10, 40, true},
		{"equal x", 10, 20, 10, 40, true},
		{"inverted y", 10, 40, 110, 20, true},
		{"equal y", 10, 20, 110, 20, true},
		{"negative coords valid", -5, -10, 5, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBBox(tt.x0, tt.y0, tt.x1, tt.y1)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for (%v,%v,%v,%v), got none", tt.x0, tt.y0, tt.x1, tt.y1)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !b.Valid() {
				t.Error("constructed bbox should be valid")
			}
		})
	}
}

func TestBBox_Geometry(t *testing.T) {
	b := MustBBox(10, 20, 110, 40)

	if b.Width() != 100 {
		t.Errorf("expected width 100, got %v", b.Width())
	}
	if b.Height() != 20 {
		t.Errorf("expected height 20, got %v", b.Height())
	}
	if b.CenterX() != 60 {
		t.Errorf("expected center x 60, got %v", b.CenterX())
	}

	other := MustBBox(100, 30, 200, 50)
	if !b.Intersects(other) {
		t.Error("boxes should intersect")
	}

	u := b.Union(other)
	if u.X0 != 10 || u.Y0 != 20 || u.X1 != 200 || u.Y1 != 50 {
		t.Errorf("unexpected union: %+v", u)
	}
}

func TestPage_ItemsRoundTrip(t *testing.T) {
	conf := 0.9
	val := 1234.5
	page := &Page{
		PageIndex: 3,
		Width:     595,
		Height:    842,
		Mode:      ModeNative,
		Items: []Item{
			&Block{
				BlockID:    "p3_b1",
				Type:       BlockText,
				Text:       "Tuloslaskelma",
				BBox:       MustBBox(50, 100, 300, 120),
				Source:     SourceNative,
				Confidence: 1.0,
			},
			&Table{
				TableID:    "p3_t1",
				BBox:       MustBBox(50, 200, 500, 400),
				Source:     SourceVector,
				Confidence: &conf,
				Cells: []Cell{
					{Row: 0, Col: 0, TextRaw: "Toimintatuotot"},
					{Row: 0, Col: 1, TextRaw: "1 234,5", ValueNum: &val},
				},
				Grid: map[string][]string{
					"0": {"Toimintatuotot"},
					"1": {"1 234,5"},
				},
			},
		},
	}

	data, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Page
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}

	block, ok := got.Items[0].(*Block)
	if !ok {
		t.Fatalf("expected first item to decode as *Block, got %T", got.Items[0])
	}
	if block.BlockID != "p3_b1" || block.Text != "Tuloslaskelma" {
		t.Errorf("block fields lost in round trip: %+v", block)
	}

	table, ok := got.Items[1].(*Table)
	if !ok {
		t.Fatalf("expected second item to decode as *Table, got %T", got.Items[1])
	}
	if table.TableID != "p3_t1" || len(table.Cells) != 2 {
		t.Errorf("table fields lost in round trip: %+v", table)
	}
	if table.Cells[1].ValueNum == nil || *table.Cells[1].ValueNum != 1234.5 {
		t.Errorf("expected cell value 1234.5, got %v", table.Cells[1].ValueNum)
	}
}

func TestPage_MarshalEmptyItems(t *testing.T) {
	page := &Page{PageIndex: 0, Width: 595, Height: 842}

	data, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"items":[]`) {
		t.Errorf("expected empty items array, got %s", data)
	}
}

func TestDocument_TotalItems(t *testing.T) {
	doc := &Document{
		PDF: PDFInfo{Filename: "report.pdf", Pages: 2},
		Pages: []*Page{
			{PageIndex: 0, Width: 595, Height: 842, Items: []Item{
				&Block{BlockID: "b1", Type: BlockText, Text: "x", BBox: MustBBox(0, 0, 1, 1), Source: SourceNative},
			}},
			{PageIndex: 1, Width: 595, Height: 842},
		},
	}

	if got := doc.TotalItems(); got != 1 {
		t.Errorf("expected 1 total item, got %d", got)
	}
	if p := doc.PageByIndex(1); p == nil || p.PageIndex != 1 {
		t.Errorf("PageByIndex(1) returned %+v", p)
	}
	if p := doc.PageByIndex(9); p != nil {
		t.Errorf("expected nil for missing page, got %+v", p)
	}
}

func TestTable_RowsOrdering(t *testing.T) {
	table := &Table{
		TableID: "t1",
		BBox:    MustBBox(0, 0, 100, 100),
		Source:  SourceVector,
		Cells: []Cell{
			{Row: 2, Col: 0, TextRaw: "c"},
			{Row: 0, Col: 1, TextRaw: "a2"},
			{Row: 0, Col: 0, TextRaw: "a1"},
			{Row: 1, Col: 0, TextRaw: "b"},
		},
	}

	rows := table.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Ascending row order, cells in encounter order within each row.
	if rows[0][0].TextRaw != "a2" || rows[0][1].TextRaw != "a1" {
		t.Errorf("row 0 order wrong: %+v", rows[0])
	}
	if rows[1][0].TextRaw != "b" || rows[2][0].TextRaw != "c" {
		t.Errorf("row ordering wrong: %+v", rows)
	}

	if table.ColumnCount() != 2 {
		t.Errorf("expected 2 columns, got %d", table.ColumnCount())
	}
}
