package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/skindock/internal/skin"
)

// WorkArea returns the usable area of the current desktop. It prefers
// _NET_WORKAREA and falls back to the root window minus dock struts.
func (c *Connection) WorkArea() (skin.Rect, error) {
	if areas, err := ewmh.WorkareaGet(c.XUtil); err == nil && len(areas) > 0 {
		desktop := 0
		if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(areas) {
			desktop = int(current)
		}
		wa := areas[desktop]
		if wa.Width > 0 && wa.Height > 0 {
			return skin.Rect{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)}, nil
		}
	}

	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return skin.Rect{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	rootW, rootH := int(geom.Width), int(geom.Height)
	root := skin.Rect{Width: rootW, Height: rootH}
	return shrinkByStruts(root, rootW, rootH, c.dockStruts(rootW, rootH)), nil
}

func (c *Connection) dockStruts(rootW, rootH int) []ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}

	var out []ewmh.WmStrutPartial
	for _, windowID := range clients {
		if !c.isDock(windowID) {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			out = append(out, *sp)
			continue
		}
		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			out = append(out, fullStrut(s, rootW, rootH))
		}
	}
	return out
}

func (c *Connection) isDock(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

func fullStrut(s *ewmh.WmStrut, rootW, rootH int) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:       s.Left,
		Right:      s.Right,
		Top:        s.Top,
		Bottom:     s.Bottom,
		LeftEndY:   uint(rootH - 1),
		RightEndY:  uint(rootH - 1),
		TopEndX:    uint(rootW - 1),
		BottomEndX: uint(rootW - 1),
	}
}

// shrinkByStruts removes the parts of area reserved by struts. The result
// is never smaller than 1x1.
func shrinkByStruts(area skin.Rect, rootW, rootH int, struts []ewmh.WmStrutPartial) skin.Rect {
	var left, right, top, bottom int
	for _, sp := range struts {
		if sp.Top > 0 {
			top = max(top, overlap(area, int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top)).Height)
		}
		if sp.Bottom > 0 {
			bottom = max(bottom, overlap(area, int(sp.BottomStartX), rootH-int(sp.Bottom), int(sp.BottomEndX)+1, rootH).Height)
		}
		if sp.Left > 0 {
			left = max(left, overlap(area, 0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1).Width)
		}
		if sp.Right > 0 {
			right = max(right, overlap(area, rootW-int(sp.Right), int(sp.RightStartY), rootW, int(sp.RightEndY)+1).Width)
		}
	}

	area.X += left
	area.Y += top
	area.Width = max(1, area.Width-left-right)
	area.Height = max(1, area.Height-top-bottom)
	return area
}

// overlap intersects r with the box [x1,x2)x[y1,y2).
func overlap(r skin.Rect, x1, y1, x2, y2 int) skin.Rect {
	ix1 := max(r.X, x1)
	iy1 := max(r.Y, y1)
	ix2 := min(r.X+r.Width, x2)
	iy2 := min(r.Y+r.Height, y2)
	if ix2 <= ix1 || iy2 <= iy1 {
		return skin.Rect{}
	}
	return skin.Rect{X: ix1, Y: iy1, Width: ix2 - ix1, Height: iy2 - iy1}
}
