package skin

import "fmt"

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Ref names the corner of a layout box that a Position is relative to.
type Ref int

const (
	RefLeftTop Ref = iota
	RefRightTop
	RefLeftBottom
	RefRightBottom
)

// String returns the skin-file spelling of the reference corner.
func (r Ref) String() string {
	switch r {
	case RefLeftTop:
		return "left_top"
	case RefRightTop:
		return "right_top"
	case RefLeftBottom:
		return "left_bottom"
	case RefRightBottom:
		return "right_bottom"
	default:
		return "unknown"
	}
}

// ParseRef converts a skin-file corner name into a Ref. The empty string
// maps to RefLeftTop.
func ParseRef(s string) (Ref, error) {
	switch s {
	case "", "left_top":
		return RefLeftTop, nil
	case "right_top":
		return RefRightTop, nil
	case "left_bottom":
		return RefLeftBottom, nil
	case "right_bottom":
		return RefRightBottom, nil
	default:
		return RefLeftTop, fmt.Errorf("unknown reference corner %q (want left_top, right_top, left_bottom or right_bottom)", s)
	}
}

// Position places an element inside a layout box. Offsets are taken from
// the corner named by Ref; right and bottom references count from the last
// pixel column or row of the box, so an offset of 0 sits on the edge.
type Position struct {
	Left   int
	Top    int
	Right  int
	Bottom int
	Ref    Ref
}

// At returns a left-top referenced position of zero size.
func At(left, top int) Position {
	return Position{Left: left, Top: top, Right: left, Bottom: top}
}

// Offset returns the left/top corner of the position relative to the origin
// of a box of the given size.
func (p Position) Offset(boxWidth, boxHeight int) (x, y int) {
	switch p.Ref {
	case RefRightTop:
		return boxWidth - 1 + p.Left, p.Top
	case RefLeftBottom:
		return p.Left, boxHeight - 1 + p.Top
	case RefRightBottom:
		return boxWidth - 1 + p.Left, boxHeight - 1 + p.Top
	default:
		return p.Left, p.Top
	}
}
