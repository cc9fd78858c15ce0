package docking

import "github.com/1broseidon/skindock/internal/skin"

// ShowAll makes every registered window visible.
func (e *Engine) ShowAll() {
	for _, id := range e.order {
		e.windows[id].SetVisible(true)
	}
	if e.state == StateIdle {
		e.applyIdleOpacity()
	}
}

// HideAll hides every registered window.
func (e *Engine) HideAll() {
	for _, id := range e.order {
		e.windows[id].SetVisible(false)
	}
}

// RaiseAll raises the visible windows in registration order.
func (e *Engine) RaiseAll() {
	for _, id := range e.order {
		w := e.windows[id]
		if r, ok := w.(Raiser); ok && w.Visible() {
			r.Raise()
		}
	}
}

// OnTop reports whether the windows are kept above others.
func (e *Engine) OnTop() bool {
	return e.onTop
}

// SetOnTop keeps every window above (or releases it from above) the other
// desktop windows.
func (e *Engine) SetOnTop(onTop bool) {
	e.onTop = onTop
	for _, id := range e.order {
		if s, ok := e.windows[id].(OnTopSetter); ok {
			s.SetOnTop(onTop)
		}
	}
}

// ToggleOnTop flips the on-top state and returns the new value.
func (e *Engine) ToggleOnTop() bool {
	e.SetOnTop(!e.onTop)
	return e.onTop
}

// IsMaximized reports whether id was maximized and not restored since.
func (e *Engine) IsMaximized(id WindowID) bool {
	_, ok := e.maxSaved[id]
	return ok
}

// Maximize fills the work area with id. The window is dragged to the
// work-area origin and then resized from its bottom-right corner, so the
// windows hanging from it follow as they would with the mouse. The previous
// geometry is kept for Unmaximize.
func (e *Engine) Maximize(id WindowID) {
	e.requireIdle("Maximize")
	w := e.requireRegistered("Maximize", id)
	if e.IsMaximized(id) {
		return
	}
	e.maxSaved[id] = skin.Rect{X: w.Left(), Y: w.Top(), Width: w.Width(), Height: w.Height()}

	area := e.workArea.WorkArea()
	e.StartMove(id)
	e.Move(id, area.X, area.Y)
	e.StopMove()

	e.StartResize(id, ResizeSE)
	e.Resize(id, area.Width, area.Height)
	e.StopResize()
	e.logger.Debug("window maximized", "window", id)
}

// Unmaximize restores the geometry saved by Maximize. It does nothing for
// a window that is not maximized.
func (e *Engine) Unmaximize(id WindowID) {
	e.requireIdle("Unmaximize")
	e.requireRegistered("Unmaximize", id)
	saved, ok := e.maxSaved[id]
	if !ok {
		return
	}

	e.StartResize(id, ResizeSE)
	e.Resize(id, saved.Width, saved.Height)
	e.StopResize()

	e.StartMove(id)
	e.Move(id, saved.X, saved.Y)
	e.StopMove()

	delete(e.maxSaved, id)
	e.logger.Debug("window unmaximized", "window", id)
}
