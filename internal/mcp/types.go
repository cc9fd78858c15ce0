package mcp

import (
	"github.com/1broseidon/skindock/internal/ipc"
	"github.com/1broseidon/skindock/internal/skinfile"
)

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []ipc.WindowInfo `json:"windows"`
}

// GetGraphInput is the input for the get_graph tool.
type GetGraphInput struct {
	DOT bool `json:"dot,omitempty" jsonschema:"Also return the graph in Graphviz DOT form"`
}

// GetGraphOutput is the output for the get_graph tool.
type GetGraphOutput struct {
	Nodes []skinfile.GraphNode `json:"nodes"`
	Edges []skinfile.GraphEdge `json:"edges"`
	DOT   string               `json:"dot,omitempty"`
}

// DragWindowInput is the input for the drag_window tool.
type DragWindowInput struct {
	Window string `json:"window" jsonschema:"Skin window id, as listed by list_windows"`
	Left   int    `json:"left" jsonschema:"Requested left edge in screen pixels"`
	Top    int    `json:"top" jsonschema:"Requested top edge in screen pixels"`
}

// DragWindowOutput reports where the window ended up after snapping.
type DragWindowOutput struct {
	Window  ipc.WindowInfo `json:"window"`
	Snapped bool           `json:"snapped"`
}

// WindowInput names a skin window.
type WindowInput struct {
	Window string `json:"window" jsonschema:"Skin window id, as listed by list_windows"`
}

// SetVisibilityInput is the input for the set_visibility tool.
type SetVisibilityInput struct {
	Visible bool `json:"visible" jsonschema:"true shows every skin window, false hides them all"`
}

// OKOutput is returned by tools without a result value.
type OKOutput struct {
	OK bool `json:"ok"`
}
