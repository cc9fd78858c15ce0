package skin

// Layout is one visual arrangement of a window. A window owns several
// layouts but only the active one takes part in docking.
type Layout struct {
	ID string

	width     int
	height    int
	minWidth  int
	minHeight int
	maxWidth  int // 0 = unlimited
	maxHeight int // 0 = unlimited

	window  *Window
	anchors []*Anchor
}

// NewLayout creates a detached layout of the given size.
func NewLayout(id string, width, height int) *Layout {
	return &Layout{
		ID:     id,
		width:  width,
		height: height,
	}
}

// SetSizeLimits sets the resize bounds. A zero maximum means unlimited.
func (l *Layout) SetSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) {
	l.minWidth = minWidth
	l.minHeight = minHeight
	l.maxWidth = maxWidth
	l.maxHeight = maxHeight
}

// Window returns the owning window, or nil for a detached layout.
func (l *Layout) Window() *Window {
	return l.window
}

// Anchors returns the layout anchors in declaration order. The slice must
// not be modified.
func (l *Layout) Anchors() []*Anchor {
	return l.anchors
}

// Left returns the absolute x origin of the layout, which is the screen
// position of its window.
func (l *Layout) Left() int {
	if l.window == nil {
		return 0
	}
	return l.window.left
}

// Top returns the absolute y origin of the layout.
func (l *Layout) Top() int {
	if l.window == nil {
		return 0
	}
	return l.window.top
}

func (l *Layout) Width() int {
	return l.width
}

func (l *Layout) Height() int {
	return l.height
}

// MinSize returns the smallest size the layout accepts.
func (l *Layout) MinSize() (width, height int) {
	return l.minWidth, l.minHeight
}

// MaxSize returns the largest size the layout accepts; 0 means unlimited.
func (l *Layout) MaxSize() (width, height int) {
	return l.maxWidth, l.maxHeight
}

// ClampSize bounds a requested size by the layout limits.
func (l *Layout) ClampSize(width, height int) (int, int) {
	if width < l.minWidth {
		width = l.minWidth
	}
	if height < l.minHeight {
		height = l.minHeight
	}
	if l.maxWidth > 0 && width > l.maxWidth {
		width = l.maxWidth
	}
	if l.maxHeight > 0 && height > l.maxHeight {
		height = l.maxHeight
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (l *Layout) resize(width, height int) {
	l.width = width
	l.height = height
}
