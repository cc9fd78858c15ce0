package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2).
			MarginBottom(1)

	canvasStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	graphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)
)

// renderStatusBar renders the engine state, the drag cursor and the last
// message.
func renderStatusBar(state string, dragging bool, cursorX, cursorY int, message string, width int) string {
	color := "241"
	if dragging {
		color = "42"
	}
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
	parts := []string{dot + " " + state}
	if dragging {
		parts = append(parts, "cursor:"+itoa(cursorX)+","+itoa(cursorY))
	}
	if message != "" {
		parts = append(parts, message)
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(strings.Join(parts, "  "))
}

// renderHelpBar renders the bottom keybinding bar.
func renderHelpBar(dragging bool, width int) string {
	help := "space: drag  m: maximize  v: show/hide  r: raise  t: on top  g: graph  q/ctrl-c: quit"
	if dragging {
		help = "arrows: move 5px  shift+arrows: move 50px  enter/esc: drop"
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
