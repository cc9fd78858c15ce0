package daemon

import (
	"log/slog"

	"github.com/1broseidon/skindock/internal/platform"
	"github.com/1broseidon/skindock/internal/skin"
)

// Surface forwards the state of one skin window to the host windows bound
// to it. Backend failures are logged and otherwise ignored; the skin window
// keeps its in-memory state.
type Surface struct {
	window  string
	backend platform.Backend
	hosts   []platform.WindowID
	logger  *slog.Logger
}

var _ skin.Surface = (*Surface)(nil)

func newSurface(window string, backend platform.Backend, hosts []platform.WindowID, logger *slog.Logger) *Surface {
	return &Surface{window: window, backend: backend, hosts: hosts, logger: logger}
}

// Hosts returns the bound host windows.
func (s *Surface) Hosts() []platform.WindowID {
	return s.hosts
}

func (s *Surface) MoveResize(left, top, width, height int) {
	r := skin.Rect{X: left, Y: top, Width: width, Height: height}
	s.each("move-resize", func(id platform.WindowID) error { return s.backend.MoveResize(id, r) })
}

func (s *Surface) SetVisible(visible bool) {
	s.each("map", func(id platform.WindowID) error { return s.backend.SetMapped(id, visible) })
}

func (s *Surface) SetOpacity(alpha uint8) {
	s.each("opacity", func(id platform.WindowID) error { return s.backend.SetOpacity(id, alpha) })
}

func (s *Surface) Raise() {
	s.each("raise", s.backend.Raise)
}

func (s *Surface) SetOnTop(onTop bool) {
	s.each("above", func(id platform.WindowID) error { return s.backend.SetAbove(id, onTop) })
}

func (s *Surface) each(op string, fn func(platform.WindowID) error) {
	for _, id := range s.hosts {
		if err := fn(id); err != nil {
			s.logger.Warn("backend call failed", "op", op, "window", s.window, "host", id, "error", err)
		}
	}
}

// workArea asks the backend for the work area unless the config overrides
// it. The last good answer is reused when the backend fails.
type workArea struct {
	override skin.Rect
	backend  platform.Backend
	logger   *slog.Logger
	last     skin.Rect
}

func (w *workArea) WorkArea() skin.Rect {
	if w.override.Width > 0 && w.override.Height > 0 {
		return w.override
	}
	r, err := w.backend.WorkArea()
	if err != nil {
		w.logger.Warn("failed to read work area", "error", err)
		return w.last
	}
	w.last = r
	return r
}
