package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/skindock/internal/docking"
	"github.com/1broseidon/skindock/internal/skin"
	"github.com/1broseidon/skindock/internal/skinfile"
)

const (
	listWidth = 34
	// step sizes of the virtual drag cursor
	smallStep = 5
	largeStep = 50
)

// defaultArea is the simulated screen used when no work_area is configured.
var defaultArea = skin.Rect{Width: 1920, Height: 1080}

type model struct {
	sk     *skinfile.Skin
	engine *docking.Engine
	area   skin.Rect
	ids    []docking.WindowID
	names  map[docking.WindowID]string
	list   list.Model

	width  int
	height int

	dragging  bool
	dragID    docking.WindowID
	cursorX   int
	cursorY   int
	showGraph bool
	message   string
}

func newModel(sk *skinfile.Skin, engine *docking.Engine, area skin.Rect) model {
	m := model{
		sk:     sk,
		engine: engine,
		area:   area,
		names:  make(map[docking.WindowID]string, len(sk.Windows)),
		list:   newWindowList(),
	}
	for _, w := range sk.Windows {
		id, ok := engine.Lookup(w)
		if !ok {
			id = engine.Register(w)
		}
		m.ids = append(m.ids, id)
		m.names[id] = w.ID
	}
	m.refresh()
	return m
}

func (m *model) refresh() {
	m.list.SetItems(itemsFor(m.engine, m.names))
}

func (m model) selected() (docking.WindowID, bool) {
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.ids) {
		return 0, false
	}
	return m.ids[idx], true
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(listWidth, m.bodyHeight())
		return m, nil
	case tea.KeyMsg:
		if m.dragging {
			return m.updateDrag(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.startDrag()
			return m, nil
		case "m":
			m.toggleMaximize()
			return m, nil
		case "v":
			m.toggleVisibility()
			return m, nil
		case "r":
			m.engine.RaiseAll()
			m.message = "raised all windows"
			return m, nil
		case "t":
			if m.engine.ToggleOnTop() {
				m.message = "always on top"
			} else {
				m.message = "normal stacking"
			}
			return m, nil
		case "g":
			m.showGraph = !m.showGraph
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.stopDrag()
		return m, tea.Quit
	case "enter", "esc":
		m.stopDrag()
	case "left":
		m.moveCursor(-smallStep, 0)
	case "right":
		m.moveCursor(smallStep, 0)
	case "up":
		m.moveCursor(0, -smallStep)
	case "down":
		m.moveCursor(0, smallStep)
	case "shift+left":
		m.moveCursor(-largeStep, 0)
	case "shift+right":
		m.moveCursor(largeStep, 0)
	case "shift+up":
		m.moveCursor(0, -largeStep)
	case "shift+down":
		m.moveCursor(0, largeStep)
	}
	return m, nil
}

func (m *model) startDrag() {
	id, ok := m.selected()
	if !ok {
		return
	}
	w, _ := m.engine.Window(id)
	if !w.Visible() {
		m.message = m.names[id] + " is hidden"
		return
	}
	m.engine.StartMove(id)
	m.dragging = true
	m.dragID = id
	m.cursorX, m.cursorY = w.Left(), w.Top()
	m.message = fmt.Sprintf("dragging %s with %d window(s)", m.names[id], len(m.engine.MovingSet()))
}

// moveCursor moves the virtual pointer and lets the engine place the
// window, so snapping releases once the cursor is dragged far enough.
func (m *model) moveCursor(dx, dy int) {
	m.cursorX += dx
	m.cursorY += dy
	m.engine.Move(m.dragID, m.cursorX, m.cursorY)
	m.refresh()
}

func (m *model) stopDrag() {
	m.engine.StopMove()
	m.dragging = false
	w, _ := m.engine.Window(m.dragID)
	m.message = fmt.Sprintf("dropped %s at %d,%d", m.names[m.dragID], w.Left(), w.Top())
	m.refresh()
}

func (m *model) toggleMaximize() {
	id, ok := m.selected()
	if !ok {
		return
	}
	if m.engine.IsMaximized(id) {
		m.engine.Unmaximize(id)
		m.message = "restored " + m.names[id]
	} else {
		m.engine.Maximize(id)
		m.message = "maximized " + m.names[id]
	}
	m.refresh()
}

func (m *model) toggleVisibility() {
	for _, id := range m.engine.Windows() {
		if w, _ := m.engine.Window(id); w.Visible() {
			m.engine.HideAll()
			m.message = "hid all windows"
			m.refresh()
			return
		}
	}
	m.engine.ShowAll()
	m.message = "showed all windows"
	m.refresh()
}

func (m model) bodyHeight() int {
	// title (with margin), status bar, help bar
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

func (m model) boxes() []box {
	sel, _ := m.selected()
	var boxes []box
	for _, id := range m.engine.Windows() {
		w, _ := m.engine.Window(id)
		if !w.Visible() {
			continue
		}
		boxes = append(boxes, box{
			label:    m.names[id],
			bounds:   skin.Rect{X: w.Left(), Y: w.Top(), Width: w.Width(), Height: w.Height()},
			selected: id == sel,
		})
	}
	return boxes
}

func (m model) graphView() string {
	var b strings.Builder
	if err := skinfile.WriteText(&b, skinfile.GraphOf(m.engine)); err != nil {
		return err.Error()
	}
	return b.String()
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	bodyH := m.bodyHeight()
	mainW := m.width - listWidth - 1
	if mainW < 10 {
		mainW = 10
	}

	var main string
	if m.showGraph {
		main = graphStyle.Width(mainW).Height(bodyH).Render(m.graphView())
	} else {
		main = canvasStyle.Render(strings.Join(renderCanvas(m.area, m.boxes(), mainW, bodyH), "\n"))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, " ", m.list.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("skindock playground"),
		body,
		renderStatusBar(m.engine.State().String(), m.dragging, m.cursorX, m.cursorY, m.message, m.width),
		renderHelpBar(m.dragging, m.width),
	)
}
