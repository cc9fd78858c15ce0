package skin

import (
	"strings"
	"testing"
)

type recordingSurface struct {
	calls   []string
	visible bool
	alpha   uint8
	onTop   bool
	geom    Rect
}

func (s *recordingSurface) MoveResize(left, top, width, height int) {
	s.calls = append(s.calls, "moveresize")
	s.geom = Rect{X: left, Y: top, Width: width, Height: height}
}

func (s *recordingSurface) SetVisible(visible bool) {
	s.calls = append(s.calls, "visible")
	s.visible = visible
}

func (s *recordingSurface) SetOpacity(alpha uint8) {
	s.calls = append(s.calls, "opacity")
	s.alpha = alpha
}

func (s *recordingSurface) Raise() {
	s.calls = append(s.calls, "raise")
}

func (s *recordingSurface) SetOnTop(onTop bool) {
	s.calls = append(s.calls, "ontop")
	s.onTop = onTop
}

func TestNewWindowDefaults(t *testing.T) {
	w := NewWindow("main", 3, 4)
	if w.Visible() {
		t.Errorf("new windows start hidden")
	}
	if w.Opacity() != OpaqueAlpha {
		t.Errorf("expected opaque window, got %d", w.Opacity())
	}
	if w.Width() != 0 || w.Height() != 0 || w.Anchors() != nil {
		t.Errorf("window without layouts must report zero size and no anchors")
	}
}

func TestAddLayout(t *testing.T) {
	w := NewWindow("main", 0, 0)
	full := NewLayout("full", 400, 120)
	mini := NewLayout("mini", 200, 20)
	if err := w.AddLayout(full); err != nil {
		t.Fatalf("AddLayout(full): %v", err)
	}
	if err := w.AddLayout(mini); err != nil {
		t.Fatalf("AddLayout(mini): %v", err)
	}
	if w.ActiveLayout() != full {
		t.Fatalf("first layout must be active")
	}
	if err := w.AddLayout(NewLayout("full", 1, 1)); err == nil {
		t.Fatalf("expected duplicate layout id error")
	}

	other := NewWindow("other", 0, 0)
	err := other.AddLayout(full)
	if err == nil || !strings.Contains(err.Error(), "already belongs") {
		t.Fatalf("expected ownership error, got %v", err)
	}

	if err := w.SetActiveLayout("mini"); err != nil {
		t.Fatalf("SetActiveLayout: %v", err)
	}
	if w.Width() != 200 || w.Height() != 20 {
		t.Fatalf("expected active size 200x20, got %dx%d", w.Width(), w.Height())
	}
	if err := w.SetActiveLayout("missing"); err == nil {
		t.Fatalf("expected unknown layout error")
	}
}

func TestResizeClampsToLimits(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{name: "inside", width: 300, height: 100, wantW: 300, wantH: 100},
		{name: "below min", width: 10, height: 10, wantW: 200, wantH: 80},
		{name: "above max", width: 900, height: 900, wantW: 600, wantH: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow("main", 0, 0)
			l := NewLayout("full", 400, 120)
			l.SetSizeLimits(200, 80, 600, 200)
			if err := w.AddLayout(l); err != nil {
				t.Fatalf("AddLayout: %v", err)
			}
			w.Resize(tt.width, tt.height)
			if w.Width() != tt.wantW || w.Height() != tt.wantH {
				t.Fatalf("got %dx%d, want %dx%d", w.Width(), w.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestClampSizeFloor(t *testing.T) {
	l := NewLayout("l", 5, 5)
	w, h := l.ClampSize(-4, 0)
	if w != 1 || h != 1 {
		t.Fatalf("expected 1x1 floor, got %dx%d", w, h)
	}
}

func TestWindowClampSize(t *testing.T) {
	bare := NewWindow("bare", 0, 0)
	if w, h := bare.ClampSize(0, 50); w != 1 || h != 50 {
		t.Fatalf("window without layout: got %dx%d, want 1x50", w, h)
	}

	w := NewWindow("main", 0, 0)
	l := NewLayout("full", 400, 120)
	l.SetSizeLimits(200, 80, 600, 200)
	if err := w.AddLayout(l); err != nil {
		t.Fatalf("AddLayout: %v", err)
	}
	if gotW, gotH := w.ClampSize(900, 10); gotW != 600 || gotH != 80 {
		t.Fatalf("got %dx%d, want 600x80", gotW, gotH)
	}
	if w.Width() != 400 {
		t.Fatalf("ClampSize must not resize the window")
	}
}

func TestSurfaceReceivesChanges(t *testing.T) {
	w := NewWindow("main", 10, 20)
	if err := w.AddLayout(NewLayout("full", 40, 30)); err != nil {
		t.Fatalf("AddLayout: %v", err)
	}
	s := &recordingSurface{}
	w.Bind(s)
	if s.geom != (Rect{X: 10, Y: 20, Width: 40, Height: 30}) {
		t.Fatalf("bind must push geometry, got %+v", s.geom)
	}
	if s.alpha != OpaqueAlpha {
		t.Fatalf("bind must push opacity, got %d", s.alpha)
	}

	s.calls = nil
	w.Move(10, 20)
	if len(s.calls) != 0 {
		t.Fatalf("moving to the same position must not touch the surface: %v", s.calls)
	}

	w.Move(15, 25)
	w.SetVisible(true)
	w.SetOpacity(100)
	w.SetOnTop(true)
	w.Raise()
	want := []string{"moveresize", "visible", "opacity", "ontop", "raise"}
	if strings.Join(s.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", s.calls, want)
	}
	if !s.visible || s.alpha != 100 || !s.onTop || s.geom.X != 15 {
		t.Fatalf("surface state out of sync: %+v", s)
	}
}

func TestPositionOffset(t *testing.T) {
	tests := []struct {
		ref   Ref
		wantX int
		wantY int
	}{
		{RefLeftTop, 2, 3},
		{RefRightTop, 101, 3},
		{RefLeftBottom, 2, 52},
		{RefRightBottom, 101, 52},
	}
	for _, tt := range tests {
		t.Run(tt.ref.String(), func(t *testing.T) {
			p := Position{Left: 2, Top: 3, Ref: tt.ref}
			x, y := p.Offset(100, 50)
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("Offset = (%d,%d), want (%d,%d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestParseRef(t *testing.T) {
	for _, name := range []string{"left_top", "right_top", "left_bottom", "right_bottom"} {
		r, err := ParseRef(name)
		if err != nil {
			t.Fatalf("ParseRef(%q): %v", name, err)
		}
		if r.String() != name {
			t.Fatalf("round trip %q -> %q", name, r.String())
		}
	}
	if r, err := ParseRef(""); err != nil || r != RefLeftTop {
		t.Fatalf("empty ref must default to left_top, got %v, %v", r, err)
	}
	if _, err := ParseRef("center"); err == nil {
		t.Fatalf("expected error for unknown corner")
	}
}
