package tui

import (
	"strings"

	"github.com/1broseidon/skindock/internal/skin"
)

// box is one window drawn on the canvas.
type box struct {
	label    string
	bounds   skin.Rect
	selected bool
}

// renderCanvas draws boxes scaled from the work area onto a width x height
// character canvas framed by a double border.
func renderCanvas(area skin.Rect, boxes []box, width, height int) []string {
	if width < 5 || height < 3 || area.Width <= 0 || area.Height <= 0 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, b := range boxes {
		drawBox(canvas, area, b, width, height)
	}
	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawBox(canvas [][]rune, area skin.Rect, b box, canvasW, canvasH int) {
	// The border takes one cell on each side.
	innerW, innerH := canvasW-2, canvasH-2
	x1 := 1 + (b.bounds.X-area.X)*innerW/area.Width
	y1 := 1 + (b.bounds.Y-area.Y)*innerH/area.Height
	x2 := 1 + (b.bounds.X+b.bounds.Width-area.X)*innerW/area.Width - 1
	y2 := 1 + (b.bounds.Y+b.bounds.Height-area.Y)*innerH/area.Height - 1

	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 > canvasW-2 {
		x2 = canvasW - 2
	}
	if y2 > canvasH-2 {
		y2 = canvasH - 2
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	h, v := '─', '│'
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if b.selected {
		h, v = '━', '┃'
		tl, tr, bl, br = '┏', '┓', '┗', '┛'
	}
	for x := x1; x <= x2; x++ {
		canvas[y1][x] = h
		canvas[y2][x] = h
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = v
		canvas[y][x2] = v
	}
	canvas[y1][x1] = tl
	canvas[y1][x2] = tr
	canvas[y2][x1] = bl
	canvas[y2][x2] = br

	// label on the first inner row, clipped to the box
	if y2-y1 < 2 {
		return
	}
	for i, r := range []rune(b.label) {
		x := x1 + 1 + i
		if x >= x2 {
			break
		}
		canvas[y1+1][x] = r
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
