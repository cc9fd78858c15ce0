package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateRemove = 0
	stateAdd    = 1
)

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	c.unmaximizeWindow(windowID)

	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// unmaximizeWindow clears the WM maximized state; a window manager would
// otherwise ignore the requested geometry.
func (c *Connection) unmaximizeWindow(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(c.XUtil, windowID, stateRemove, state)
		}
	}
}

// SetOpacity sets _NET_WM_WINDOW_OPACITY. Fully opaque windows get the
// property removed, as compositors expect.
func (c *Connection) SetOpacity(windowID xproto.Window, alpha uint8) error {
	if alpha == 255 {
		atom, err := xprop.Atm(c.XUtil, "_NET_WM_WINDOW_OPACITY")
		if err != nil {
			return err
		}
		return xproto.DeletePropertyChecked(c.XUtil.Conn(), windowID, atom).Check()
	}
	return xprop.ChangeProp32(c.XUtil, windowID, "_NET_WM_WINDOW_OPACITY", "CARDINAL", opacityCardinal(alpha))
}

// opacityCardinal scales an 8-bit alpha to the 32-bit range of
// _NET_WM_WINDOW_OPACITY.
func opacityCardinal(alpha uint8) uint {
	return uint(alpha) * 0x01010101
}

// SetAbove adds or removes _NET_WM_STATE_ABOVE.
func (c *Connection) SetAbove(windowID xproto.Window, above bool) error {
	action := stateRemove
	if above {
		action = stateAdd
	}
	return ewmh.WmStateReq(c.XUtil, windowID, action, "_NET_WM_STATE_ABOVE")
}

// Raise asks the window manager to restack the window on top, falling back
// to a direct configure request.
func (c *Connection) Raise(windowID xproto.Window) error {
	if err := ewmh.RestackWindow(c.XUtil, windowID); err != nil {
		xwindow.New(c.XUtil, windowID).Stack(xproto.StackModeAbove)
	}
	return nil
}

// SetMapped maps or unmaps a window.
func (c *Connection) SetMapped(windowID xproto.Window, mapped bool) error {
	win := xwindow.New(c.XUtil, windowID)
	if mapped {
		win.Map()
	} else {
		win.Unmap()
	}
	return nil
}

// FindByClass returns the managed client windows whose WM_CLASS class or
// instance equals class.
func (c *Connection) FindByClass(class string) ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to read client list: %w", err)
	}

	var out []xproto.Window
	for _, windowID := range clients {
		wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
		if err != nil {
			continue
		}
		if matchClass(wmClass, class) {
			out = append(out, windowID)
		}
	}
	return out, nil
}

func matchClass(wmClass *icccm.WmClass, class string) bool {
	class = strings.TrimSpace(class)
	if class == "" || wmClass == nil {
		return false
	}
	return strings.TrimSpace(wmClass.Class) == class || strings.TrimSpace(wmClass.Instance) == class
}
