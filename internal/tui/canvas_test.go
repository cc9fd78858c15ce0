package tui

import (
	"strings"
	"testing"

	"github.com/1broseidon/skindock/internal/skin"
)

func TestRenderCanvasScalesBoxes(t *testing.T) {
	area := skin.Rect{Width: 1000, Height: 1000}
	lines := renderCanvas(area, []box{{label: "a", bounds: skin.Rect{Width: 500, Height: 500}}}, 12, 7)
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7", len(lines))
	}
	rows := make([][]rune, len(lines))
	for i, l := range lines {
		rows[i] = []rune(l)
	}

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"border top-left", 0, 0, '╔'},
		{"border bottom-right", 11, 6, '╝'},
		{"box top-left", 1, 1, '┌'},
		{"box top-right", 5, 1, '┐'},
		{"box bottom-left", 1, 2, '└'},
		{"box bottom-right", 5, 2, '┘'},
		{"outside box", 7, 4, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rows[tt.y][tt.x]; got != tt.want {
				t.Fatalf("cell (%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderCanvasLabelsAndSelection(t *testing.T) {
	area := skin.Rect{Width: 100, Height: 100}
	lines := renderCanvas(area, []box{{label: "main", bounds: area, selected: true}}, 22, 12)
	if !strings.HasPrefix(lines[1], "║┏━") {
		t.Fatalf("selected box must use heavy lines, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "║┃main") {
		t.Fatalf("label missing, got %q", lines[2])
	}
}

func TestRenderCanvasClipsOffscreenBoxes(t *testing.T) {
	area := skin.Rect{Width: 100, Height: 100}
	lines := renderCanvas(area, []box{{label: "x", bounds: skin.Rect{X: 500, Y: 500, Width: 50, Height: 50}}}, 22, 12)
	for i, l := range lines[1 : len(lines)-1] {
		if strings.ContainsAny(l, "┌┐└┘") {
			t.Fatalf("row %d shows an offscreen box: %q", i+1, l)
		}
	}
}

func TestRenderCanvasTooSmall(t *testing.T) {
	lines := renderCanvas(skin.Rect{Width: 100, Height: 100}, nil, 3, 2)
	if len(lines) != 2 || lines[0] != "   " {
		t.Fatalf("expected blank canvas, got %q", lines)
	}
}
