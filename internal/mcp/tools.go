package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/skindock/internal/skinfile"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	return nil, ListWindowsOutput{Windows: windows}, nil
}

func (s *Server) handleGetGraph(_ context.Context, _ *mcpsdk.CallToolRequest, args GetGraphInput) (*mcpsdk.CallToolResult, GetGraphOutput, error) {
	g, err := s.client.GetGraph()
	if err != nil {
		return nil, GetGraphOutput{}, err
	}
	out := GetGraphOutput{Nodes: g.Nodes, Edges: g.Edges}
	if args.DOT {
		out.DOT = skinfile.ToDOT(*g)
	}
	return nil, out, nil
}

func (s *Server) handleDragWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DragWindowInput) (*mcpsdk.CallToolResult, DragWindowOutput, error) {
	if err := requireWindow(args.Window); err != nil {
		return nil, DragWindowOutput{}, err
	}
	info, err := s.client.Drag(args.Window, args.Left, args.Top)
	if err != nil {
		return nil, DragWindowOutput{}, err
	}
	return nil, DragWindowOutput{
		Window:  *info,
		Snapped: info.X != args.Left || info.Y != args.Top,
	}, nil
}

func (s *Server) handleMaximizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, OKOutput, error) {
	if err := requireWindow(args.Window); err != nil {
		return nil, OKOutput{}, err
	}
	if err := s.client.Maximize(args.Window); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleUnmaximizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, OKOutput, error) {
	if err := requireWindow(args.Window); err != nil {
		return nil, OKOutput{}, err
	}
	if err := s.client.Unmaximize(args.Window); err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleSetVisibility(_ context.Context, _ *mcpsdk.CallToolRequest, args SetVisibilityInput) (*mcpsdk.CallToolResult, OKOutput, error) {
	var err error
	if args.Visible {
		err = s.client.ShowAll()
	} else {
		err = s.client.HideAll()
	}
	if err != nil {
		return nil, OKOutput{}, err
	}
	return nil, OKOutput{OK: true}, nil
}
