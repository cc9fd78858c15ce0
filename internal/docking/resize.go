package docking

import "github.com/1broseidon/skindock/internal/skin"

// Direction is the edge or corner a resize is driven from.
type Direction int

const (
	ResizeE Direction = iota
	ResizeS
	ResizeSE
)

func (d Direction) String() string {
	switch d {
	case ResizeE:
		return "e"
	case ResizeS:
		return "s"
	case ResizeSE:
		return "se"
	default:
		return "unknown"
	}
}

// resizeSession holds the windows that follow the resized window, grouped
// by which of its edges they hang from.
type resizeSession struct {
	dir Direction
	e   map[WindowID]struct{}
	s   map[WindowID]struct{}
	se  map[WindowID]struct{}
}

func (r *resizeSession) remove(id WindowID) {
	delete(r.e, id)
	delete(r.s, id)
	delete(r.se, id)
}

// StartResize opens a resize session for id. Windows hanging from an
// anchor referenced to the right edge follow horizontal growth, windows
// hanging from the bottom edge follow vertical growth and windows hanging
// from the bottom-right corner follow both. Each of them brings its own
// dependents along.
func (e *Engine) StartResize(id WindowID, dir Direction) {
	e.requireIdle("StartResize")
	w := e.requireRegistered("StartResize", id)
	if e.stale {
		e.rebuild()
	}

	rs := resizeSession{
		dir: dir,
		e:   make(map[WindowID]struct{}),
		s:   make(map[WindowID]struct{}),
		se:  make(map[WindowID]struct{}),
	}
	for _, dep := range e.ordered(e.deps[id]) {
		depAnchors := e.windows[dep].Anchors()
	pairs:
		for _, a1 := range w.Anchors() {
			for _, a2 := range depAnchors {
				if !a1.IsHanging(a2) {
					continue
				}
				switch a1.Position().Ref {
				case skin.RefRightTop:
					e.closure(rs.e, dep)
				case skin.RefLeftBottom:
					e.closure(rs.s, dep)
				case skin.RefRightBottom:
					e.closure(rs.se, dep)
				}
				break pairs
			}
		}
	}

	e.moving = map[WindowID]struct{}{id: {}}
	for _, set := range []map[WindowID]struct{}{rs.e, rs.s, rs.se} {
		for dep := range set {
			e.moving[dep] = struct{}{}
		}
	}
	e.resize = rs
	e.session = id
	e.state = StateResizing
	e.logger.Debug("resize started", "window", id, "direction", dir,
		"east", len(rs.e), "south", len(rs.s), "southeast", len(rs.se))
}

// Resize changes the size of the session window towards (width, height),
// clamped to its limits, and moves the dependent windows by the applied
// size change. It returns the applied width and height deltas.
func (e *Engine) Resize(id WindowID, width, height int) (dw, dh int) {
	w := e.requireSession("Resize", StateResizing, id)
	rs := e.resize

	dx := width - w.Width()
	dy := height - w.Height()
	// The resized window keeps its origin, so only its far edges snap.
	e.checkAnchors(&dx, &dy, func(mid WindowID) edges {
		if mid == id {
			return edgeRight | edgeBottom
		}
		return allEdges
	})
	if rs.dir == ResizeS {
		dx = 0
	}
	if rs.dir == ResizeE {
		dy = 0
	}

	newW, newH := w.ClampSize(w.Width()+dx, w.Height()+dy)
	if newW == w.Width() && newH == w.Height() {
		return 0, 0
	}
	dw = newW - w.Width()
	dh = newH - w.Height()
	w.Resize(newW, newH)

	e.shift(rs.e, dw, 0)
	e.shift(rs.s, 0, dh)
	e.shift(rs.se, dw, dh)
	return dw, dh
}

// StopResize closes the resize session and rebuilds the dependency graph.
func (e *Engine) StopResize() {
	if e.state != StateResizing {
		violated("StopResize", "engine is %s, want %s", e.state, StateResizing)
	}
	id := e.session
	e.endSession()
	e.rebuild()
	e.logger.Debug("resize stopped", "window", id)
}

func (e *Engine) shift(set map[WindowID]struct{}, dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	for _, id := range e.ordered(set) {
		w := e.windows[id]
		w.Move(w.Left()+dx, w.Top()+dy)
	}
}
