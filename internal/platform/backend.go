package platform

import "github.com/1broseidon/skindock/internal/skin"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Backend abstracts the window-system operations the daemon forwards skin
// window changes to.
type Backend interface {
	// WorkArea returns the usable region of the current desktop.
	WorkArea() (skin.Rect, error)
	MoveResize(windowID WindowID, bounds skin.Rect) error
	SetOpacity(windowID WindowID, alpha uint8) error
	Raise(windowID WindowID) error
	// SetAbove keeps the window above normal windows.
	SetAbove(windowID WindowID, above bool) error
	// SetMapped shows or hides the window.
	SetMapped(windowID WindowID, mapped bool) error
	// FindByClass lists client windows whose WM_CLASS class or instance
	// equals class, in client-list order.
	FindByClass(class string) ([]WindowID, error)
}
