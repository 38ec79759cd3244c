package model

import "fmt"

// BBox is an axis-aligned bounding box in page coordinates.
// Invariant: X1 > X0 and Y1 > Y0. Use NewBBox to construct one with
// validation; a zero BBox is only valid as the absent value behind a
// *BBox field.
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// NewBBox creates a bounding box and validates its coordinates.
func NewBBox(x0, y0, x1, y1 float64) (BBox, error) {
	if x1 <= x0 {
		return BBox{}, fmt.Errorf("bbox: x1 (%v) must be greater than x0 (%v)", x1, x0)
	}
	if y1 <= y0 {
		return BBox{}, fmt.Errorf("bbox: y1 (%v) must be greater than y0 (%v)", y1, y0)
	}
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}, nil
}

// MustBBox is like NewBBox but panics on invalid coordinates.
// Intended for fixtures and tests with known-good values.
func MustBBox(x0, y0, x1, y1 float64) BBox {
	b, err := NewBBox(x0, y0, x1, y1)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// CenterX returns the horizontal center of the box.
func (b BBox) CenterX() float64 {
	return (b.X0 + b.X1) / 2
}

// CenterY returns the vertical center of the box.
func (b BBox) CenterY() float64 {
	return (b.Y0 + b.Y1) / 2
}

// Valid reports whether the box satisfies the construction invariant.
// Boxes arriving from deserialized artifacts bypass NewBBox, so callers
// that care should re-check.
func (b BBox) Valid() bool {
	return b.X1 > b.X0 && b.Y1 > b.Y0
}

// Intersects reports whether the two boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return !(b.X1 < other.X0 || b.X0 > other.X1 ||
		b.Y1 < other.Y0 || b.Y0 > other.Y1)
}

// Union returns the smallest box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	u := b
	if other.X0 < u.X0 {
		u.X0 = other.X0
	}
	if other.Y0 < u.Y0 {
		u.Y0 = other.Y0
	}
	if other.X1 > u.X1 {
		u.X1 = other.X1
	}
	if other.Y1 > u.Y1 {
		u.Y1 = other.Y1
	}
	return u
}
