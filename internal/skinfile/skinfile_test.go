package skinfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/skindock/internal/curve"
	"github.com/1broseidon/skindock/internal/docking"
	"github.com/1broseidon/skindock/internal/skin"
)

const playerSkin = `
windows:
  - id: main
    left: 100
    top: 100
    visible: true
    x11_class: player-main
    layouts:
      - id: full
        width: 200
        height: 100
        min_width: 150
        anchors:
          - name: bottom
            x: 0
            y: 100
            points: [[0, 0], [200, 0]]
            range: 15
            priority: 10
          - name: right
            x: 1
            y: 0
            ref: right_top
            points: [[0, 0], [0, 100]]
            range: 15
            priority: 10
  - id: playlist
    left: 120
    top: 200
    visible: true
    active_layout: tall
    layouts:
      - id: short
        width: 200
        height: 50
      - id: tall
        width: 200
        height: 300
        anchors:
          - name: top-left
            x: 0
            y: 0
            points: [[0, 0]]
            range: 15
            priority: 1
  - id: equalizer
    left: 600
    top: 600
    layouts:
      - id: eq
        width: 100
        height: 60
        anchors:
          - name: top-left
            x: 0
            y: 0
            points: [[0, 0]]
            range: 15
            priority: 1
`

func TestParseAndBuild(t *testing.T) {
	f, err := Parse([]byte(playerSkin), "player.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(s.Windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(s.Windows))
	}
	if s.Windows[0].ID != "main" || s.Windows[2].ID != "equalizer" {
		t.Fatalf("windows must keep declaration order")
	}
	if s.Classes["main"] != "player-main" {
		t.Fatalf("expected x11 class for main, got %v", s.Classes)
	}

	pl, ok := s.Window("playlist")
	if !ok {
		t.Fatalf("playlist not found")
	}
	if pl.ActiveLayout().ID != "tall" || pl.Height() != 300 {
		t.Fatalf("expected tall active layout, got %s %d", pl.ActiveLayout().ID, pl.Height())
	}
	eq, _ := s.Window("equalizer")
	if eq.Visible() {
		t.Fatalf("visible defaults to false")
	}

	main, _ := s.Window("main")
	anchors := main.Anchors()
	if len(anchors) != 2 || anchors[1].Position().Ref != skin.RefRightTop {
		t.Fatalf("unexpected anchors: %v", anchors)
	}
	if anchors[1].AbsLeft() != 300 {
		t.Fatalf("right anchor at x=%d, want 300", anchors[1].AbsLeft())
	}
	if w, _ := main.ActiveLayout().MinSize(); w != 150 {
		t.Fatalf("expected min width 150, got %d", w)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "windows:\n  - id: a\n    lft: 3\n", "lft"},
		{"no windows", "windows: []\n", "at least one window"},
		{"duplicate window", "windows:\n  - id: a\n    layouts: [{id: l, width: 1, height: 1}]\n  - id: a\n    layouts: [{id: l, width: 1, height: 1}]\n", "duplicate window id"},
		{"no layouts", "windows:\n  - id: a\n", "has no layouts"},
		{"unknown active layout", "windows:\n  - id: a\n    active_layout: x\n    layouts: [{id: l, width: 1, height: 1}]\n", "unknown layout"},
		{"zero size", "windows:\n  - id: a\n    layouts: [{id: l, width: 0, height: 1}]\n", "must be > 0"},
		{"bad ref", "windows:\n  - id: a\n    layouts:\n      - id: l\n        width: 1\n        height: 1\n        anchors: [{name: p, points: [[0, 0]], ref: middle}]\n", "unknown reference corner"},
		{"bad filter", "windows:\n  - id: a\n    layouts:\n      - id: l\n        width: 1\n        height: 1\n        anchors: [{name: p, points: [[0, 0]], filter: z}]\n", "unknown filter"},
		{"bad point", "windows:\n  - id: a\n    layouts:\n      - id: l\n        width: 1\n        height: 1\n        anchors: [{name: p, points: [[0, 0, 1]]}]\n", "want [x, y]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "bad.yaml")
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.HasPrefix(err.Error(), "bad.yaml") {
				t.Fatalf("expected %q with file name, got %v", tt.want, err)
			}
		})
	}
}

func TestAnchorFilter(t *testing.T) {
	tests := []struct {
		filter  string
		samples int
	}{
		{"", 101},
		{"x", 101},
		{"y", 2},
	}
	for _, tt := range tests {
		t.Run("filter="+tt.filter, func(t *testing.T) {
			doc := "windows:\n  - id: a\n    layouts:\n      - id: l\n        width: 100\n        height: 10\n" +
				"        anchors: [{name: edge, points: [[0, 0], [100, 0]], filter: \"" + tt.filter + "\"}]\n"
			f, err := Parse([]byte(doc), "filter.yaml")
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			s, err := f.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			w, _ := s.Window("a")
			if got := w.Anchors()[0].Curve().Len(); got != tt.samples {
				t.Fatalf("samples = %d, want %d", got, tt.samples)
			}
		})
	}
}

func TestAnchorWithoutPoints(t *testing.T) {
	doc := "windows:\n  - id: a\n    layouts:\n      - id: l\n        width: 1\n        height: 1\n        anchors: [{name: p}]\n"
	_, err := Parse([]byte(doc), "bad.yaml")
	if !errors.Is(err, curve.ErrNoControlPoints) {
		t.Fatalf("expected ErrNoControlPoints, got %v", err)
	}
}

func TestLoadSkin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skin.yaml")
	if err := os.WriteFile(path, []byte(playerSkin), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadSkin(path)
	if err != nil {
		t.Fatalf("LoadSkin: %v", err)
	}
	if len(s.Windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(s.Windows))
	}

	if _, err := LoadSkin(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestGraphOf(t *testing.T) {
	f, err := Parse([]byte(playerSkin), "player.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	e := docking.New(docking.Options{})
	for _, w := range s.Windows {
		e.Register(w)
	}

	g := GraphOf(e)
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 1 || g.Edges[0] != (GraphEdge{From: "main", To: "playlist"}) {
		t.Fatalf("expected main -> playlist, got %v", g.Edges)
	}

	dot := ToDOT(g)
	for _, want := range []string{"digraph skin", `"main" -> "playlist";`, "dashed"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	var text strings.Builder
	if err := WriteText(&text, g); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if text.String() != "main -> playlist\n" {
		t.Fatalf("unexpected text output %q", text.String())
	}
}

func TestWriteTextWithoutEdges(t *testing.T) {
	var text strings.Builder
	if err := WriteText(&text, Graph{Nodes: []GraphNode{{ID: "a"}}}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if text.String() != "1 windows, no attachments\n" {
		t.Fatalf("unexpected text output %q", text.String())
	}
}
