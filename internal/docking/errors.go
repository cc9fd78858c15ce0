package docking

import "fmt"

// PreconditionError is the panic value raised when the engine is driven
// out of sequence, for example Move without StartMove. It signals a bug in
// the caller, never bad user input.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("docking: %s: %s", e.Op, e.Reason)
}

func violated(op, format string, args ...any) {
	panic(&PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)})
}

func (e *Engine) requireIdle(op string) {
	if e.state != StateIdle {
		violated(op, "a %s session is already open for window %d", e.state, e.session)
	}
}

func (e *Engine) requireRegistered(op string, id WindowID) Window {
	w, ok := e.windows[id]
	if !ok {
		violated(op, "window %d is not registered", id)
	}
	return w
}

func (e *Engine) requireSession(op string, want State, id WindowID) Window {
	if e.state != want {
		violated(op, "engine is %s, want %s", e.state, want)
	}
	if id != e.session {
		violated(op, "window %d does not own the session (window %d does)", id, e.session)
	}
	return e.requireRegistered(op, id)
}
