//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/skindock/internal/skin"
	"github.com/1broseidon/skindock/internal/x11"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a new X11 connection to display, or to
// $DISPLAY when display is empty.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

func (b *LinuxBackend) WorkArea() (skin.Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return skin.Rect{}, err
	}
	return conn.WorkArea()
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds skin.Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(windowID), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

func (b *LinuxBackend) SetOpacity(windowID WindowID, alpha uint8) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetOpacity(xproto.Window(windowID), alpha)
}

func (b *LinuxBackend) Raise(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Raise(xproto.Window(windowID))
}

func (b *LinuxBackend) SetAbove(windowID WindowID, above bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetAbove(xproto.Window(windowID), above)
}

func (b *LinuxBackend) SetMapped(windowID WindowID, mapped bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetMapped(xproto.Window(windowID), mapped)
}

func (b *LinuxBackend) FindByClass(class string) ([]WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	windows, err := conn.FindByClass(class)
	if err != nil {
		return nil, err
	}
	ids := make([]WindowID, len(windows))
	for i, w := range windows {
		ids[i] = WindowID(w)
	}
	return ids, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}
