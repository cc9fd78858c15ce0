// Package mcp exposes the docking daemon as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/skindock/internal/ipc"
)

const (
	ServerName    = "skindock"
	ServerVersion = "0.1.0"
)

// Client is the subset of the daemon IPC client the tools use.
type Client interface {
	ListWindows() ([]ipc.WindowInfo, error)
	GetGraph() (*ipc.GraphData, error)
	Drag(window string, left, top int) (*ipc.WindowInfo, error)
	Maximize(window string) error
	Unmaximize(window string) error
	ShowAll() error
	HideAll() error
}

var _ Client = (*ipc.Client)(nil)

// Server is the MCP server for skindock.
type Server struct {
	mcpServer *mcpsdk.Server
	client    Client
}

// NewServer creates an MCP server that forwards tool calls to the daemon.
func NewServer(client Client) *Server {
	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the skin windows managed by the skindock daemon with their geometry, visibility, active layout and maximize state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_graph",
		Description: "Return the docking graph: an edge from A to B means B is attached to A and moves with it.",
	}, s.handleGetGraph)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "drag_window",
		Description: "Drag a skin window to a position as if the user moved it with the mouse. Attached windows follow, and the window may snap to screen edges or other windows, so the final position can differ from the requested one.",
	}, s.handleDragWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Maximize a skin window to the work area. Attached windows follow.",
	}, s.handleMaximizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "unmaximize_window",
		Description: "Restore the geometry a skin window had before maximize_window.",
	}, s.handleUnmaximizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_visibility",
		Description: "Show or hide every skin window at once.",
	}, s.handleSetVisibility)
}

func requireWindow(name string) error {
	if name == "" {
		return fmt.Errorf("window is required")
	}
	return nil
}
