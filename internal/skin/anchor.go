package skin

import (
	"fmt"

	"github.com/1broseidon/skindock/internal/curve"
)

// Anchor is a point- or path-shaped attachment feature of a layout.
//
// Point anchors (one control point) represent satellite windows; path
// anchors (several control points) represent dock edges. At least one side
// of a pair must be a point for the pair to interact.
type Anchor struct {
	name     string
	layout   *Layout
	pos      Position
	curve    *curve.Curve
	rng      int
	priority int
}

// NewAnchor creates an anchor owned by layout and appends it to the
// layout's anchor list. The owner can never change afterwards.
func NewAnchor(layout *Layout, name string, pos Position, c *curve.Curve, rng, priority int) *Anchor {
	if layout == nil {
		panic("skin: anchor needs an owning layout")
	}
	if c == nil {
		panic("skin: anchor needs a curve")
	}
	a := &Anchor{
		name:     name,
		layout:   layout,
		pos:      pos,
		curve:    c,
		rng:      rng,
		priority: priority,
	}
	layout.anchors = append(layout.anchors, a)
	return a
}

// AddAnchor builds the anchor curve from points and attaches a new anchor
// to the layout.
func (l *Layout) AddAnchor(name string, pos Position, points []curve.Point, rng, priority int) (*Anchor, error) {
	c, err := curve.New(points)
	if err != nil {
		return nil, fmt.Errorf("anchor %q: %w", name, err)
	}
	return NewAnchor(l, name, pos, c, rng, priority), nil
}

// Name returns the anchor name from the skin description.
func (a *Anchor) Name() string {
	return a.name
}

// Layout returns the owning layout.
func (a *Anchor) Layout() *Layout {
	return a.layout
}

// Position returns the anchor position inside its layout.
func (a *Anchor) Position() Position {
	return a.pos
}

// Curve returns the anchor geometry.
func (a *Anchor) Curve() *curve.Curve {
	return a.curve
}

// Range returns the maximum snapping distance in pixels.
func (a *Anchor) Range() int {
	return a.rng
}

func (a *Anchor) Priority() int {
	return a.priority
}

// IsPoint reports whether the anchor was built from a single control point.
func (a *Anchor) IsPoint() bool {
	return a.curve.NumControlPoints() == 1
}

func (a *Anchor) String() string {
	return a.layout.ID + "/" + a.name
}

// AbsLeft returns the absolute x coordinate of the anchor origin. It is
// computed from the owning window's current position on every call.
func (a *Anchor) AbsLeft() int {
	x, _ := a.pos.Offset(a.layout.Width(), a.layout.Height())
	return a.layout.Left() + x
}

// AbsTop returns the absolute y coordinate of the anchor origin.
func (a *Anchor) AbsTop() int {
	_, y := a.pos.Offset(a.layout.Width(), a.layout.Height())
	return a.layout.Top() + y
}

// IsHanging reports whether other is attached to a right now: a must have
// a strictly higher priority and the two anchors must coincide exactly.
func (a *Anchor) IsHanging(other *Anchor) bool {
	if a.priority <= other.priority {
		return false
	}

	// Curves are expressed relative to their anchor origin.
	dx := a.AbsLeft() - other.AbsLeft()
	dy := a.AbsTop() - other.AbsTop()

	switch {
	case a.IsPoint():
		return other.curve.Distance(dx, dy) == 0
	case other.IsPoint():
		return a.curve.Distance(-dx, -dy) == 0
	default:
		return false
	}
}

// CanHang reports whether other, displaced by (*xOffset, *yOffset), is
// within a's range. On success the offsets are rewritten so that other
// lands exactly on the nearest sample of the path curve; on failure they
// are left untouched.
func (a *Anchor) CanHang(other *Anchor, xOffset, yOffset *int) bool {
	dx := a.AbsLeft() - (other.AbsLeft() + *xOffset)
	dy := a.AbsTop() - (other.AbsTop() + *yOffset)

	if a.IsPoint() && other.curve.Distance(dx, dy) < float64(a.rng) {
		xx, yy := other.curve.PointAt(other.curve.NearestPercent(dx, dy))
		*xOffset = a.AbsLeft() - (other.AbsLeft() + xx)
		*yOffset = a.AbsTop() - (other.AbsTop() + yy)
		return true
	}
	if other.IsPoint() && a.curve.Distance(-dx, -dy) < float64(a.rng) {
		xx, yy := a.curve.PointAt(a.curve.NearestPercent(-dx, -dy))
		*xOffset = (a.AbsLeft() + xx) - other.AbsLeft()
		*yOffset = (a.AbsTop() + yy) - other.AbsTop()
		return true
	}
	return false
}
