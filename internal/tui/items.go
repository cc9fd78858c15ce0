package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/skindock/internal/docking"
	"github.com/1broseidon/skindock/internal/skin"
)

// windowItem is one skin window in the side list.
type windowItem struct {
	name      string
	bounds    skin.Rect
	visible   bool
	maximized bool
}

func (i windowItem) Title() string       { return i.name }
func (i windowItem) FilterValue() string { return i.name }

func (i windowItem) Description() string {
	desc := fmt.Sprintf("%dx%d at %d,%d", i.bounds.Width, i.bounds.Height, i.bounds.X, i.bounds.Y)
	if !i.visible {
		desc += " hidden"
	}
	if i.maximized {
		desc += " maximized"
	}
	return desc
}

func newWindowList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Windows"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

// itemsFor snapshots the registered windows in registration order.
func itemsFor(e *docking.Engine, names map[docking.WindowID]string) []list.Item {
	ids := e.Windows()
	items := make([]list.Item, 0, len(ids))
	for _, id := range ids {
		w, _ := e.Window(id)
		items = append(items, windowItem{
			name:      names[id],
			bounds:    skin.Rect{X: w.Left(), Y: w.Top(), Width: w.Width(), Height: w.Height()},
			visible:   w.Visible(),
			maximized: e.IsMaximized(id),
		})
	}
	return items
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
