package docking

import (
	"testing"

	"github.com/1broseidon/skindock/internal/curve"
	"github.com/1broseidon/skindock/internal/skin"
)

// resizeFixture is a 200x100 main window at (100,100) with one satellite
// on its right edge, one on its bottom edge and one on its bottom-right
// corner.
type resizeFixture struct {
	e                 *Engine
	main              *skin.Window
	east, south, corn *skin.Window
	id                WindowID
}

func newResizeFixture(t *testing.T) *resizeFixture {
	t.Helper()
	main := newWindow(t, "main", 100, 100, 200, 100,
		anchorDef{
			pos:    skin.Position{Left: 1, Top: 0, Ref: skin.RefRightTop},
			points: []curve.Point{{X: 0, Y: 0}, {X: 0, Y: 80}},
			rng:    15, prio: 10,
		},
		anchorDef{
			pos:    skin.Position{Left: 0, Top: 1, Ref: skin.RefLeftBottom},
			points: []curve.Point{{X: 0, Y: 0}, {X: 180, Y: 0}},
			rng:    15, prio: 10,
		},
		anchorDef{
			pos:    skin.Position{Left: 1, Top: 1, Ref: skin.RefRightBottom},
			points: []curve.Point{{X: 0, Y: 0}},
			rng:    15, prio: 10,
		},
	)
	f := &resizeFixture{
		e:     New(Options{}),
		main:  main,
		east:  newWindow(t, "east", 300, 120, 40, 40, pointAt(0, 0, 15, 1)),
		south: newWindow(t, "south", 150, 200, 40, 40, pointAt(0, 0, 15, 1)),
		corn:  newWindow(t, "corner", 300, 200, 40, 40, pointAt(0, 0, 15, 1)),
	}
	f.id = f.e.Register(main)
	f.e.Register(f.east)
	f.e.Register(f.south)
	f.e.Register(f.corn)
	if n := len(f.e.Dependencies(f.id)); n != 3 {
		t.Fatalf("expected three satellites on main, got %d", n)
	}
	return f
}

func TestResizeSE(t *testing.T) {
	f := newResizeFixture(t)

	f.e.StartResize(f.id, ResizeSE)
	if n := len(f.e.MovingSet()); n != 4 {
		t.Fatalf("expected main and three satellites in the moving set, got %d", n)
	}
	dw, dh := f.e.Resize(f.id, 250, 130)
	f.e.StopResize()

	if dw != 50 || dh != 30 {
		t.Fatalf("expected deltas (50,30), got (%d,%d)", dw, dh)
	}
	if f.main.Width() != 250 || f.main.Height() != 130 {
		t.Fatalf("expected 250x130, got %dx%d", f.main.Width(), f.main.Height())
	}
	if f.main.Left() != 100 || f.main.Top() != 100 {
		t.Fatalf("resize must keep the origin, got (%d,%d)", f.main.Left(), f.main.Top())
	}

	tests := []struct {
		name string
		w    *skin.Window
		x, y int
	}{
		{"east", f.east, 350, 120},
		{"south", f.south, 150, 230},
		{"corner", f.corn, 350, 230},
	}
	for _, tt := range tests {
		if tt.w.Left() != tt.x || tt.w.Top() != tt.y {
			t.Errorf("%s at (%d,%d), want (%d,%d)", tt.name, tt.w.Left(), tt.w.Top(), tt.x, tt.y)
		}
	}
	if n := len(f.e.Dependencies(f.id)); n != 3 {
		t.Fatalf("satellites must stay docked after resize, got %d", n)
	}
}

func TestResizeE(t *testing.T) {
	f := newResizeFixture(t)

	f.e.StartResize(f.id, ResizeE)
	dw, dh := f.e.Resize(f.id, 250, 300)
	f.e.StopResize()

	if dw != 50 || dh != 0 {
		t.Fatalf("east resize must ignore height, got deltas (%d,%d)", dw, dh)
	}
	if f.east.Left() != 350 || f.south.Left() != 150 || f.south.Top() != 200 {
		t.Fatalf("unexpected satellite positions: east=%d south=(%d,%d)",
			f.east.Left(), f.south.Left(), f.south.Top())
	}
	if f.corn.Left() != 350 || f.corn.Top() != 200 {
		t.Fatalf("corner satellite at (%d,%d), want (350,200)", f.corn.Left(), f.corn.Top())
	}
}

func TestResizeS(t *testing.T) {
	f := newResizeFixture(t)

	f.e.StartResize(f.id, ResizeS)
	dw, dh := f.e.Resize(f.id, 10, 150)
	f.e.StopResize()

	if dw != 0 || dh != 50 {
		t.Fatalf("south resize must ignore width, got deltas (%d,%d)", dw, dh)
	}
	if f.east.Top() != 120 || f.south.Top() != 250 || f.corn.Top() != 250 || f.corn.Left() != 300 {
		t.Fatalf("unexpected satellite positions")
	}
}

func TestResizeClampsToLayoutLimits(t *testing.T) {
	f := newResizeFixture(t)
	f.main.ActiveLayout().SetSizeLimits(150, 80, 220, 0)

	f.e.StartResize(f.id, ResizeE)
	dw, _ := f.e.Resize(f.id, 400, 100)
	if dw != 20 || f.main.Width() != 220 {
		t.Fatalf("expected width clamped to 220, got %d (delta %d)", f.main.Width(), dw)
	}
	if dw, dh := f.e.Resize(f.id, 500, 100); dw != 0 || dh != 0 {
		t.Fatalf("resize beyond the limit must be a no-op, got (%d,%d)", dw, dh)
	}
	f.e.StopResize()

	if f.east.Left() != 320 {
		t.Fatalf("east satellite must follow the clamped width, got %d", f.east.Left())
	}
}

func TestResizePreconditions(t *testing.T) {
	f := newResizeFixture(t)
	other := f.e.Windows()[1]

	expectPrecondition(t, "Resize while idle", func() { f.e.Resize(f.id, 10, 10) })
	f.e.StartResize(f.id, ResizeSE)
	expectPrecondition(t, "Resize foreign window", func() { f.e.Resize(other, 10, 10) })
	expectPrecondition(t, "StopMove during resize", func() { f.e.StopMove() })
	expectPrecondition(t, "Move during resize", func() { f.e.Move(f.id, 0, 0) })
	f.e.StopResize()
}

func TestUnregisterDuringResize(t *testing.T) {
	f := newResizeFixture(t)
	eastID, _ := f.e.Lookup(f.east)

	f.e.StartResize(f.id, ResizeE)
	f.e.Unregister(eastID)
	f.e.Resize(f.id, 260, 100)
	f.e.StopResize()

	if f.east.Left() != 300 {
		t.Fatalf("unregistered satellite must not move, got %d", f.east.Left())
	}
	if f.corn.Left() != 360 {
		t.Fatalf("corner satellite must still follow, got %d", f.corn.Left())
	}
}
