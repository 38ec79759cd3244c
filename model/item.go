package model

import (
	"encoding/json"
	"fmt"
)

// Item is one element in a page's reading order: either a *Block or a
// *Table. Code processing items switches exhaustively on the concrete
// type; there are no other implementations.
type Item interface {
	// ItemID returns the block or table identifier.
	ItemID() string
	// Bounds returns the item bounding box.
	Bounds() BBox
}

// decodeItem unmarshals a single item, discriminating tables from
// blocks by the presence of the "table_id" key.
func decodeItem(raw json.RawMessage) (Item, error) {
	var probe struct {
		TableID *string `json:"table_id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("item probe: %w", err)
	}
	if probe.TableID != nil {
		var t Table
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("table %s: %w", *probe.TableID, err)
		}
		return &t, nil
	}
	var b Block
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("block: %w", err)
	}
	return &b, nil
}
