// Package curve implements the sampled Bezier curves that describe anchor
// geometry.
//
// A Curve is evaluated once, at construction, into a list of integer sample
// points with an associated percentage (the curve parameter at which the
// sample was taken). All queries work on the samples, never on the analytic
// curve, so answers are stable pixel coordinates.
package curve

import (
	"errors"
	"fmt"
	"math"
)

// MaxSamples is the number of evaluation steps taken after t=0, so a curve
// is evaluated at MaxSamples+1 parameter values.
const MaxSamples = 1023

// ErrNoControlPoints is returned by New when no control point is given.
var ErrNoControlPoints = errors.New("curve: at least one control point is required")

// Point is a control point in curve-local coordinates.
type Point struct {
	X float64
	Y float64
}

// Filter selects which consecutive samples are kept during evaluation.
type Filter int

const (
	// FilterBoth keeps a sample when either coordinate changed.
	FilterBoth Filter = iota
	// FilterX keeps a sample only when its x coordinate changed.
	FilterX
	// FilterY keeps a sample only when its y coordinate changed.
	FilterY
)

// ParseFilter maps the skin-file spelling of a filter to its value. The
// empty string selects FilterBoth.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "both":
		return FilterBoth, nil
	case "x":
		return FilterX, nil
	case "y":
		return FilterY, nil
	default:
		return FilterBoth, fmt.Errorf("curve: unknown filter %q (want both, x or y)", s)
	}
}

// Curve is an immutable sampled Bezier curve.
type Curve struct {
	ctrl     []Point
	xs       []int
	ys       []int
	percents []float64
}

// New evaluates the Bezier curve defined by points, keeping every sample
// that differs from the previous one.
func New(points []Point) (*Curve, error) {
	return NewFiltered(points, FilterBoth)
}

// MustNew is like New but panics on error. It is meant for literal curves.
func MustNew(points ...Point) *Curve {
	c, err := New(points)
	if err != nil {
		panic(err)
	}
	return c
}

// NewFiltered evaluates the Bezier curve defined by points using filter to
// decide which consecutive samples are redundant.
func NewFiltered(points []Point, filter Filter) (*Curve, error) {
	if len(points) == 0 {
		return nil, ErrNoControlPoints
	}

	c := &Curve{
		ctrl:     append([]Point(nil), points...),
		xs:       make([]int, 0, MaxSamples+1),
		ys:       make([]int, 0, MaxSamples+1),
		percents: make([]float64, 0, MaxSamples+1),
	}
	fact := factorials(len(points))

	oldX, oldY := c.evaluate(0, fact)
	c.push(oldX, oldY, 0)

	for j := 1; j <= MaxSamples; j++ {
		t := float64(j) / MaxSamples
		x, y := c.evaluate(t, fact)

		var keep bool
		switch filter {
		case FilterX:
			keep = x != oldX
		case FilterY:
			keep = y != oldY
		default:
			keep = x != oldX || y != oldY
		}
		if !keep {
			continue
		}
		c.push(x, y, t)
		oldX, oldY = x, y
	}

	// Degenerate curves get a second, identical sample so that every curve
	// has a distinct start and end percentage.
	if len(c.xs) == 1 {
		c.push(c.xs[0], c.ys[0], 1)
	}
	c.percents[len(c.percents)-1] = 1

	return c, nil
}

func (c *Curve) push(x, y int, t float64) {
	c.xs = append(c.xs, x)
	c.ys = append(c.ys, y)
	c.percents = append(c.percents, t)
}

// evaluate returns the rounded curve point at parameter t using the
// Bernstein form of the polynomial.
func (c *Curve) evaluate(t float64, fact []float64) (int, int) {
	n := len(c.ctrl) - 1
	var x, y float64
	for i, p := range c.ctrl {
		coeff := math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i)) *
			(fact[n] / fact[i] / fact[n-i])
		x += p.X * coeff
		y += p.Y * coeff
	}
	return int(math.RoundToEven(x)), int(math.RoundToEven(y))
}

func factorials(n int) []float64 {
	out := make([]float64, n)
	out[0] = 1
	for i := 1; i < n; i++ {
		out[i] = float64(i) * out[i-1]
	}
	return out
}

// ControlPoints returns a copy of the points the curve was built from.
func (c *Curve) ControlPoints() []Point {
	return append([]Point(nil), c.ctrl...)
}

// NumControlPoints returns how many control points define the curve.
func (c *Curve) NumControlPoints() int {
	return len(c.ctrl)
}

// Len returns the number of samples. It is always at least 2.
func (c *Curve) Len() int {
	return len(c.xs)
}

// Sample returns the i-th sample and its percentage.
func (c *Curve) Sample(i int) (x, y int, percent float64) {
	return c.xs[i], c.ys[i], c.percents[i]
}

// NearestIndex returns the index of the sample closest to (x, y). Ties go
// to the lowest index.
func (c *Curve) NearestIndex(x, y int) int {
	best := 0
	bestDist := sq(c.xs[0]-x) + sq(c.ys[0]-y)
	for i := 1; i < len(c.xs); i++ {
		d := sq(c.xs[i]-x) + sq(c.ys[i]-y)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// NearestPercent returns the percentage of the sample closest to (x, y).
func (c *Curve) NearestPercent(x, y int) float64 {
	return c.percents[c.NearestIndex(x, y)]
}

// MinDistance returns the distance between (x, y) and the nearest sample,
// with each axis scaled before the distance is taken.
func (c *Curve) MinDistance(x, y int, xScale, yScale float64) float64 {
	i := c.NearestIndex(x, y)
	dx := xScale * float64(c.xs[i]-x)
	dy := yScale * float64(c.ys[i]-y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Distance is MinDistance with unit scales.
func (c *Curve) Distance(x, y int) float64 {
	return c.MinDistance(x, y, 1, 1)
}

// PointAt returns the sample whose percentage is closest to t. Samples are
// not interpolated.
func (c *Curve) PointAt(t float64) (x, y int) {
	// Percentages increase monotonically, so the scan stops as soon as the
	// difference starts growing again.
	ref := 0
	minDiff := math.Abs(c.percents[0] - t)
	for ref < len(c.percents) {
		diff := math.Abs(c.percents[ref] - t)
		if diff > minDiff {
			break
		}
		minDiff = diff
		ref++
	}
	return c.xs[ref-1], c.ys[ref-1]
}

// Width returns the horizontal pixel extent of the samples.
func (c *Curve) Width() int {
	w := 0
	for _, x := range c.xs {
		if x >= w {
			w = x + 1
		}
	}
	return w
}

// Height returns the vertical pixel extent of the samples.
func (c *Curve) Height() int {
	h := 0
	for _, y := range c.ys {
		if y >= h {
			h = y + 1
		}
	}
	return h
}

func sq(v int) int {
	return v * v
}
