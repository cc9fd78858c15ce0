package docking

import (
	"log/slog"

	"github.com/1broseidon/skindock/internal/skin"
)

// WindowID is a stable handle for a registered window. Zero is never a
// valid handle.
type WindowID int

// Window is the view of a top-level window the engine needs. Implementations
// must be comparable (pointer types are); *skin.Window satisfies it.
type Window interface {
	Left() int
	Top() int
	Width() int
	Height() int
	Move(left, top int)
	Resize(width, height int)
	Visible() bool
	SetVisible(visible bool)
	Anchors() []*skin.Anchor
	// ClampSize bounds a requested size by the window's size limits.
	ClampSize(width, height int) (int, int)
}

// Raiser is implemented by windows that can be brought to the front.
type Raiser interface {
	Raise()
}

// OnTopSetter is implemented by windows that can stay above others.
type OnTopSetter interface {
	SetOnTop(onTop bool)
}

// OpacitySetter is implemented by windows that support transparency.
type OpacitySetter interface {
	SetOpacity(alpha uint8)
}

// WorkAreaProvider supplies the usable screen region.
type WorkAreaProvider interface {
	WorkArea() skin.Rect
}

// StaticWorkArea is a WorkAreaProvider with a fixed rectangle.
type StaticWorkArea skin.Rect

// WorkArea returns the rectangle.
func (r StaticWorkArea) WorkArea() skin.Rect {
	return skin.Rect(r)
}

// State is the session state of the engine.
type State int

const (
	StateIdle State = iota
	StateMoving
	StateResizing
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Options configures an Engine.
type Options struct {
	// Magnet is the work-area snapping distance in pixels. Zero disables
	// edge magnetism.
	Magnet int
	// Alpha is the idle opacity applied when transparency is enabled.
	// Zero means opaque.
	Alpha uint8
	// MoveAlpha is the opacity of the moving windows during a drag.
	MoveAlpha    uint8
	Transparency bool
	WorkArea     WorkAreaProvider
	Logger       *slog.Logger
}

// Engine keeps track of registered windows, decides which windows move
// together and snaps dragged windows to the work area and to each other.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	magnet       int
	alpha        uint8
	moveAlpha    uint8
	transparency bool
	onTop        bool
	workArea     WorkAreaProvider
	logger       *slog.Logger

	nextID   WindowID
	windows  map[WindowID]Window
	ids      map[Window]WindowID
	order    []WindowID
	deps     map[WindowID]map[WindowID]struct{}
	stale    bool
	maxSaved map[WindowID]skin.Rect

	state   State
	session WindowID
	moving  map[WindowID]struct{}
	resize  resizeSession
}

// New creates an idle engine with no windows.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workArea := opts.WorkArea
	if workArea == nil {
		workArea = StaticWorkArea{}
	}
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = skin.OpaqueAlpha
	}
	return &Engine{
		magnet:       opts.Magnet,
		alpha:        alpha,
		moveAlpha:    opts.MoveAlpha,
		transparency: opts.Transparency,
		workArea:     workArea,
		logger:       logger,
		windows:      make(map[WindowID]Window),
		ids:          make(map[Window]WindowID),
		deps:         make(map[WindowID]map[WindowID]struct{}),
		maxSaved:     make(map[WindowID]skin.Rect),
		moving:       make(map[WindowID]struct{}),
	}
}

// Register adds w to the managed set and returns its handle. Registering
// the same window again returns the existing handle.
func (e *Engine) Register(w Window) WindowID {
	if w == nil {
		violated("Register", "nil window")
	}
	if id, ok := e.ids[w]; ok {
		return id
	}
	e.nextID++
	id := e.nextID
	e.windows[id] = w
	e.ids[w] = id
	e.order = append(e.order, id)
	e.stale = true
	e.logger.Debug("window registered", "window", id)
	return id
}

// Unregister removes the window and every reference to it: graph edges in
// both directions, the moving set of an open session and saved maximize
// geometry. Unknown handles are ignored.
func (e *Engine) Unregister(id WindowID) {
	w, ok := e.windows[id]
	if !ok {
		return
	}
	delete(e.windows, id)
	delete(e.ids, w)
	e.order = removeID(e.order, id)

	delete(e.deps, id)
	for _, set := range e.deps {
		delete(set, id)
	}
	delete(e.moving, id)
	e.resize.remove(id)
	delete(e.maxSaved, id)

	e.stale = true
	e.logger.Debug("window unregistered", "window", id)
}

// MarkStale schedules a graph rebuild before the next session. Call it
// after moving windows outside of a drag.
func (e *Engine) MarkStale() {
	e.stale = true
}

// State returns the current session state.
func (e *Engine) State() State {
	return e.state
}

// Session returns the window driving the open session, or 0 when idle.
func (e *Engine) Session() WindowID {
	if e.state == StateIdle {
		return 0
	}
	return e.session
}

// Windows returns the registered handles in registration order.
func (e *Engine) Windows() []WindowID {
	out := make([]WindowID, len(e.order))
	copy(out, e.order)
	return out
}

// Window returns the window behind a handle.
func (e *Engine) Window(id WindowID) (Window, bool) {
	w, ok := e.windows[id]
	return w, ok
}

// Lookup returns the handle of a registered window.
func (e *Engine) Lookup(w Window) (WindowID, bool) {
	id, ok := e.ids[w]
	return id, ok
}

// MovingSet returns the windows of the open session in registration order.
func (e *Engine) MovingSet() []WindowID {
	return e.ordered(e.moving)
}

// Magnet returns the work-area snapping distance.
func (e *Engine) Magnet() int {
	return e.magnet
}

func (e *Engine) SetMagnet(magnet int) {
	e.magnet = magnet
}

func (e *Engine) SetMoveAlpha(alpha uint8) {
	e.moveAlpha = alpha
}

// SetAlpha changes the idle opacity and applies it when transparency is
// enabled and no session is open.
func (e *Engine) SetAlpha(alpha uint8) {
	if alpha == 0 {
		alpha = skin.OpaqueAlpha
	}
	e.alpha = alpha
	if e.state == StateIdle {
		e.applyIdleOpacity()
	}
}

// SetTransparency toggles transparency and pushes the idle opacity to every
// window.
func (e *Engine) SetTransparency(enabled bool) {
	e.transparency = enabled
	if e.state == StateIdle {
		e.applyIdleOpacity()
	}
}

// SetWorkArea replaces the work-area provider.
func (e *Engine) SetWorkArea(p WorkAreaProvider) {
	if p == nil {
		p = StaticWorkArea{}
	}
	e.workArea = p
}

func (e *Engine) applyIdleOpacity() {
	alpha := skin.OpaqueAlpha
	if e.transparency {
		alpha = e.alpha
	}
	for _, id := range e.order {
		if s, ok := e.windows[id].(OpacitySetter); ok {
			s.SetOpacity(alpha)
		}
	}
}

// ordered returns the members of set in registration order.
func (e *Engine) ordered(set map[WindowID]struct{}) []WindowID {
	if len(set) == 0 {
		return nil
	}
	out := make([]WindowID, 0, len(set))
	for _, id := range e.order {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func removeID(ids []WindowID, id WindowID) []WindowID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
