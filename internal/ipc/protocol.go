package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/skindock/internal/skinfile"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandGetGraph    CommandType = "GET_GRAPH"
	CommandStartMove   CommandType = "START_MOVE"
	CommandMove        CommandType = "MOVE"
	CommandStopMove    CommandType = "STOP_MOVE"
	CommandAbortMove   CommandType = "ABORT_MOVE"
	CommandDrag        CommandType = "DRAG"
	CommandShowAll     CommandType = "SHOW_ALL"
	CommandHideAll     CommandType = "HIDE_ALL"
	CommandRaiseAll    CommandType = "RAISE_ALL"
	CommandToggleOnTop CommandType = "TOGGLE_ON_TOP"
	CommandMaximize    CommandType = "MAXIMIZE"
	CommandUnmaximize  CommandType = "UNMAXIMIZE"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	State         string `json:"state"`
	Session       string `json:"session,omitempty"`
	Skin          string `json:"skin"`
	Windows       int    `json:"windows"`
	Edges         int    `json:"edges"`
	Magnet        int    `json:"magnet"`
	OnTop         bool   `json:"on_top"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DaemonRunning bool   `json:"daemon_running"`
}

// WindowInfo describes one skin window.
type WindowInfo struct {
	ID        string `json:"id"`
	Layout    string `json:"layout"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Visible   bool   `json:"visible"`
	Maximized bool   `json:"maximized"`
	// Bound is the number of host windows the skin window drives.
	Bound int `json:"bound"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// WindowPayload names a skin window (MAXIMIZE, UNMAXIMIZE, START_MOVE).
type WindowPayload struct {
	Window string `json:"window"`
}

// StartMoveData is returned by START_MOVE. Moving lists every window that
// follows the dragged one.
type StartMoveData struct {
	Token  string   `json:"token"`
	Moving []string `json:"moving"`
}

type MovePayload struct {
	Token string `json:"token"`
	Left  int    `json:"left"`
	Top   int    `json:"top"`
}

// MoveData is returned by MOVE with the delta actually applied.
type MoveData struct {
	DX     int        `json:"dx"`
	DY     int        `json:"dy"`
	Window WindowInfo `json:"window"`
}

type TokenPayload struct {
	Token string `json:"token"`
}

type DragPayload struct {
	Window string `json:"window"`
	Left   int    `json:"left"`
	Top    int    `json:"top"`
}

type OnTopData struct {
	OnTop bool `json:"on_top"`
}

// GraphData is returned by GET_GRAPH.
type GraphData = skinfile.Graph

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
