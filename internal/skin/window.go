package skin

import "fmt"

// OpaqueAlpha is the opacity of a fully opaque window.
const OpaqueAlpha uint8 = 255

// Surface receives the visible side effects of window state changes. The
// daemon binds X11 windows through it; a window without a surface only
// keeps its state in memory.
type Surface interface {
	MoveResize(left, top, width, height int)
	SetVisible(visible bool)
	SetOpacity(alpha uint8)
	Raise()
	SetOnTop(onTop bool)
}

// Window is a top-level skin window.
type Window struct {
	ID string

	left    int
	top     int
	visible bool
	opacity uint8
	onTop   bool

	layouts []*Layout
	active  *Layout
	surface Surface
}

// NewWindow creates a hidden, opaque window at the given position with no
// layouts.
func NewWindow(id string, left, top int) *Window {
	return &Window{
		ID:      id,
		left:    left,
		top:     top,
		opacity: OpaqueAlpha,
	}
}

// AddLayout attaches a layout to the window. The first attached layout
// becomes the active one.
func (w *Window) AddLayout(l *Layout) error {
	if l.window != nil && l.window != w {
		return fmt.Errorf("layout %q already belongs to window %q", l.ID, l.window.ID)
	}
	for _, existing := range w.layouts {
		if existing.ID == l.ID {
			return fmt.Errorf("window %q already has a layout %q", w.ID, l.ID)
		}
	}
	l.window = w
	w.layouts = append(w.layouts, l)
	if w.active == nil {
		w.active = l
	}
	return nil
}

// SetActiveLayout switches the active layout by id.
func (w *Window) SetActiveLayout(id string) error {
	for _, l := range w.layouts {
		if l.ID == id {
			w.active = l
			w.sync()
			return nil
		}
	}
	return fmt.Errorf("window %q has no layout %q", w.ID, id)
}

// ActiveLayout returns the active layout, or nil when the window has none.
func (w *Window) ActiveLayout() *Layout {
	return w.active
}

// Layouts returns all layouts in attachment order.
func (w *Window) Layouts() []*Layout {
	return w.layouts
}

// Bind attaches a surface and pushes the current state to it.
func (w *Window) Bind(s Surface) {
	w.surface = s
	if s == nil {
		return
	}
	w.sync()
	s.SetVisible(w.visible)
	s.SetOpacity(w.opacity)
	s.SetOnTop(w.onTop)
}

func (w *Window) Left() int {
	return w.left
}

func (w *Window) Top() int {
	return w.top
}

// Width returns the width of the active layout.
func (w *Window) Width() int {
	if w.active == nil {
		return 0
	}
	return w.active.width
}

// Height returns the height of the active layout.
func (w *Window) Height() int {
	if w.active == nil {
		return 0
	}
	return w.active.height
}

// Bounds returns the window rectangle in screen coordinates.
func (w *Window) Bounds() Rect {
	return Rect{X: w.left, Y: w.top, Width: w.Width(), Height: w.Height()}
}

// Move sets the window position.
func (w *Window) Move(left, top int) {
	if left == w.left && top == w.top {
		return
	}
	w.left = left
	w.top = top
	w.sync()
}

// Resize sets the size of the active layout, clamped to its limits.
func (w *Window) Resize(width, height int) {
	if w.active == nil {
		return
	}
	width, height = w.active.ClampSize(width, height)
	w.active.resize(width, height)
	w.sync()
}

// ClampSize bounds a requested size by the limits of the active layout.
// Without a layout the size is only kept positive.
func (w *Window) ClampSize(width, height int) (int, int) {
	if w.active == nil {
		return max(width, 1), max(height, 1)
	}
	return w.active.ClampSize(width, height)
}

// MinSize returns the size limits of the active layout.
func (w *Window) MinSize() (int, int) {
	if w.active == nil {
		return 0, 0
	}
	return w.active.MinSize()
}

// MaxSize returns the size limits of the active layout; 0 means unlimited.
func (w *Window) MaxSize() (int, int) {
	if w.active == nil {
		return 0, 0
	}
	return w.active.MaxSize()
}

// Anchors returns the anchors of the active layout.
func (w *Window) Anchors() []*Anchor {
	if w.active == nil {
		return nil
	}
	return w.active.anchors
}

func (w *Window) Visible() bool {
	return w.visible
}

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) {
	w.visible = visible
	if w.surface != nil {
		w.surface.SetVisible(visible)
	}
}

func (w *Window) Opacity() uint8 {
	return w.opacity
}

// SetOpacity changes the window opacity (255 is opaque).
func (w *Window) SetOpacity(alpha uint8) {
	w.opacity = alpha
	if w.surface != nil {
		w.surface.SetOpacity(alpha)
	}
}

// Raise brings the window to the top of the stacking order.
func (w *Window) Raise() {
	if w.surface != nil {
		w.surface.Raise()
	}
}

func (w *Window) OnTop() bool {
	return w.onTop
}

// SetOnTop keeps the window above normal windows.
func (w *Window) SetOnTop(onTop bool) {
	w.onTop = onTop
	if w.surface != nil {
		w.surface.SetOnTop(onTop)
	}
}

func (w *Window) sync() {
	if w.surface != nil {
		w.surface.MoveResize(w.left, w.top, w.Width(), w.Height())
	}
}
