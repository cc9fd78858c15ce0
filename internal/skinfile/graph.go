package skinfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/1broseidon/skindock/internal/docking"
	"github.com/1broseidon/skindock/internal/skin"
)

// GraphNode is one registered window in a dependency graph snapshot.
type GraphNode struct {
	ID      string    `json:"id"`
	Bounds  skin.Rect `json:"bounds"`
	Visible bool      `json:"visible"`
}

// GraphEdge means: when From moves, To moves with it.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is a serialisable snapshot of the docking dependency graph.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphOf snapshots the engine's windows and dependency edges. Windows
// that are not *skin.Window are named after their handle.
func GraphOf(e *docking.Engine) Graph {
	names := make(map[docking.WindowID]string)
	var g Graph
	for _, id := range e.Windows() {
		w, _ := e.Window(id)
		name := fmt.Sprintf("window-%d", id)
		if sw, ok := w.(*skin.Window); ok {
			name = sw.ID
		}
		names[id] = name
		g.Nodes = append(g.Nodes, GraphNode{
			ID:      name,
			Bounds:  skin.Rect{X: w.Left(), Y: w.Top(), Width: w.Width(), Height: w.Height()},
			Visible: w.Visible(),
		})
	}
	for _, edge := range e.Edges() {
		g.Edges = append(g.Edges, GraphEdge{From: names[edge.From], To: names[edge.To]})
	}
	return g
}

// ToDOT converts the graph to Graphviz DOT. Hidden windows are drawn
// dashed.
func ToDOT(g Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph skin {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := fmt.Sprintf("%s\n%dx%d+%d+%d", n.ID, n.Bounds.Width, n.Bounds.Height, n.Bounds.X, n.Bounds.Y)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if !n.Visible {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// WriteDOT writes the DOT form of g to w.
func WriteDOT(w io.Writer, g Graph) error {
	_, err := io.WriteString(w, ToDOT(g))
	return err
}

// WriteText writes one line per edge, or a note when nothing is docked.
func WriteText(w io.Writer, g Graph) error {
	if len(g.Edges) == 0 {
		_, err := fmt.Fprintf(w, "%d windows, no attachments\n", len(g.Nodes))
		return err
	}
	for _, e := range g.Edges {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", e.From, e.To); err != nil {
			return err
		}
	}
	return nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
