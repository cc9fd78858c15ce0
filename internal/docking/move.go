package docking

// StartMove opens a drag session for id. The moving set is id plus every
// window that transitively hangs from it, and stays fixed until StopMove.
func (e *Engine) StartMove(id WindowID) {
	e.requireIdle("StartMove")
	e.requireRegistered("StartMove", id)
	if e.stale {
		e.rebuild()
	}

	e.moving = make(map[WindowID]struct{})
	e.closure(e.moving, id)
	e.session = id
	e.state = StateMoving

	if e.transparency {
		for _, mid := range e.MovingSet() {
			w := e.windows[mid]
			if s, ok := w.(OpacitySetter); ok && w.Visible() {
				s.SetOpacity(e.moveAlpha)
			}
		}
	}
	e.logger.Debug("move started", "window", id, "moving", len(e.moving))
}

// Move drags the session window towards (left, top). The offset may be
// changed by snapping; the applied offset is returned and every window of
// the moving set is translated by it.
func (e *Engine) Move(id WindowID, left, top int) (dx, dy int) {
	w := e.requireSession("Move", StateMoving, id)
	dx = left - w.Left()
	dy = top - w.Top()
	e.checkAnchors(&dx, &dy, nil)
	if dx == 0 && dy == 0 {
		return 0, 0
	}
	for _, mid := range e.MovingSet() {
		mw := e.windows[mid]
		mw.Move(mw.Left()+dx, mw.Top()+dy)
	}
	return dx, dy
}

// StopMove closes the drag session, restores opacity and rebuilds the
// dependency graph.
func (e *Engine) StopMove() {
	if e.state != StateMoving {
		violated("StopMove", "engine is %s, want %s", e.state, StateMoving)
	}
	if e.transparency {
		for _, mid := range e.MovingSet() {
			if s, ok := e.windows[mid].(OpacitySetter); ok {
				s.SetOpacity(e.alpha)
			}
		}
	}
	id := e.session
	e.endSession()
	e.rebuild()
	e.logger.Debug("move stopped", "window", id)
}

func (e *Engine) endSession() {
	e.state = StateIdle
	e.session = 0
	e.moving = make(map[WindowID]struct{})
	e.resize = resizeSession{}
}

// checkAnchors adjusts the offset of the moving set. Work-area magnetism
// runs first and the last matching edge wins; anchor docking runs second
// and the first pair that can hang wins. edgeMask, when non-nil, restricts
// which work-area edges each window may snap.
func (e *Engine) checkAnchors(dx, dy *int, edgeMask func(WindowID) edges) {
	moving := e.MovingSet()
	area := e.workArea.WorkArea()

	for _, id := range moving {
		w := e.windows[id]
		if !w.Visible() {
			continue
		}
		mask := allEdges
		if edgeMask != nil {
			mask = edgeMask(id)
		}
		newLeft := w.Left() + *dx
		newTop := w.Top() + *dy

		if mask&edgeLeft != 0 && e.near(newLeft, area.X) {
			*dx = area.X - w.Left()
			e.logger.Debug("magnet", "window", id, "edge", "left")
		}
		if mask&edgeTop != 0 && e.near(newTop, area.Y) {
			*dy = area.Y - w.Top()
			e.logger.Debug("magnet", "window", id, "edge", "top")
		}
		if mask&edgeRight != 0 && e.near(newLeft+w.Width(), area.Right()) {
			*dx = area.Right() - w.Left() - w.Width()
			e.logger.Debug("magnet", "window", id, "edge", "right")
		}
		if mask&edgeBottom != 0 && e.near(newTop+w.Height(), area.Bottom()) {
			*dy = area.Bottom() - w.Top() - w.Height()
			e.logger.Debug("magnet", "window", id, "edge", "bottom")
		}
	}

	for _, mid := range moving {
		m := e.windows[mid]
		if !m.Visible() {
			continue
		}
		for _, am := range m.Anchors() {
			for _, sid := range e.order {
				if _, ok := e.moving[sid]; ok {
					continue
				}
				s := e.windows[sid]
				if !s.Visible() {
					continue
				}
				for _, as := range s.Anchors() {
					if as.CanHang(am, dx, dy) {
						e.logger.Debug("anchor snap", "moving", am, "static", as, "dx", *dx, "dy", *dy)
						return
					}
					rdx, rdy := -*dx, -*dy
					if am.CanHang(as, &rdx, &rdy) {
						*dx, *dy = -rdx, -rdy
						e.logger.Debug("anchor snap", "moving", am, "static", as, "dx", *dx, "dy", *dy)
						return
					}
				}
			}
		}
	}
}

// near reports whether v lies strictly inside the magnet window around edge.
func (e *Engine) near(v, edge int) bool {
	return v > edge-e.magnet && v < edge+e.magnet
}

type edges uint8

const (
	edgeLeft edges = 1 << iota
	edgeTop
	edgeRight
	edgeBottom

	allEdges = edgeLeft | edgeTop | edgeRight | edgeBottom
)
