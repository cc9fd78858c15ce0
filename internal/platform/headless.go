package platform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/1broseidon/skindock/internal/skin"
)

// HeadlessWindow is the recorded state of one window in a Headless backend.
type HeadlessWindow struct {
	Class   string
	Bounds  skin.Rect
	Opacity uint8
	Above   bool
	Mapped  bool
	// Stack is the raise counter value at the last Raise; higher is in front.
	Stack int
}

// Headless is an in-memory Backend. It keeps the last state pushed to each
// window and never touches a display server.
type Headless struct {
	mu       sync.Mutex
	workArea skin.Rect
	windows  map[WindowID]*HeadlessWindow
	order    []WindowID
	raises   int
	calls    int
}

var _ Backend = (*Headless)(nil)

// NewHeadless creates a headless backend with a fixed work area.
func NewHeadless(workArea skin.Rect) *Headless {
	return &Headless{
		workArea: workArea,
		windows:  make(map[WindowID]*HeadlessWindow),
	}
}

// AddWindow creates a client window with the given class and returns its id.
func (h *Headless) AddWindow(class string) WindowID {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := WindowID(len(h.order) + 1)
	h.windows[id] = &HeadlessWindow{Class: class, Opacity: skin.OpaqueAlpha}
	h.order = append(h.order, id)
	return id
}

// Window returns a copy of the recorded state of windowID.
func (h *Headless) Window(windowID WindowID) (HeadlessWindow, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, ok := h.windows[windowID]
	if !ok {
		return HeadlessWindow{}, false
	}
	return *w, true
}

// Calls returns the number of successful backend operations so far.
func (h *Headless) Calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

// StackingOrder returns the ids of raised windows, front-most last.
func (h *Headless) StackingOrder() []WindowID {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ids []WindowID
	for _, id := range h.order {
		if h.windows[id].Stack > 0 {
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return h.windows[ids[i]].Stack < h.windows[ids[j]].Stack
	})
	return ids
}

func (h *Headless) WorkArea() (skin.Rect, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.workArea, nil
}

// SetWorkArea replaces the work area reported by WorkArea.
func (h *Headless) SetWorkArea(r skin.Rect) {
	h.mu.Lock()
	h.workArea = r
	h.mu.Unlock()
}

func (h *Headless) MoveResize(windowID WindowID, bounds skin.Rect) error {
	return h.update(windowID, func(w *HeadlessWindow) { w.Bounds = bounds })
}

func (h *Headless) SetOpacity(windowID WindowID, alpha uint8) error {
	return h.update(windowID, func(w *HeadlessWindow) { w.Opacity = alpha })
}

func (h *Headless) Raise(windowID WindowID) error {
	return h.update(windowID, func(w *HeadlessWindow) {
		h.raises++
		w.Stack = h.raises
	})
}

func (h *Headless) SetAbove(windowID WindowID, above bool) error {
	return h.update(windowID, func(w *HeadlessWindow) { w.Above = above })
}

func (h *Headless) SetMapped(windowID WindowID, mapped bool) error {
	return h.update(windowID, func(w *HeadlessWindow) { w.Mapped = mapped })
}

func (h *Headless) FindByClass(class string) ([]WindowID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ids []WindowID
	for _, id := range h.order {
		if h.windows[id].Class == class {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (h *Headless) update(windowID WindowID, fn func(*HeadlessWindow)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, ok := h.windows[windowID]
	if !ok {
		return fmt.Errorf("window %d not found", windowID)
	}
	fn(w)
	h.calls++
	return nil
}
