package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/skindock/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithSocket(socketPath)
}

// NewClientWithSocket creates a client for an explicit socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// call sends cmd with an optional payload and decodes the response data
// into out when out is non-nil.
func (c *Client) call(cmd CommandType, payload interface{}, out interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = raw
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// Reload asks the daemon to reload the skin file.
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListWindows retrieves every skin window in registration order.
func (c *Client) ListWindows() ([]WindowInfo, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return data.Windows, nil
}

// GetGraph retrieves the current docking dependency graph.
func (c *Client) GetGraph() (*GraphData, error) {
	var g GraphData
	if err := c.call(CommandGetGraph, nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// StartMove opens a drag session on window.
func (c *Client) StartMove(window string) (*StartMoveData, error) {
	var data StartMoveData
	if err := c.call(CommandStartMove, WindowPayload{Window: window}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Move drags the session window towards (left, top).
func (c *Client) Move(token string, left, top int) (*MoveData, error) {
	var data MoveData
	if err := c.call(CommandMove, MovePayload{Token: token, Left: left, Top: top}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// StopMove closes the drag session.
func (c *Client) StopMove(token string) error {
	return c.call(CommandStopMove, TokenPayload{Token: token}, nil)
}

// AbortMove closes whatever drag session is open, without its token.
func (c *Client) AbortMove() error {
	return c.call(CommandAbortMove, nil, nil)
}

// Drag runs a complete drag of window to (left, top).
func (c *Client) Drag(window string, left, top int) (*WindowInfo, error) {
	var info WindowInfo
	if err := c.call(CommandDrag, DragPayload{Window: window, Left: left, Top: top}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) ShowAll() error {
	return c.call(CommandShowAll, nil, nil)
}

func (c *Client) HideAll() error {
	return c.call(CommandHideAll, nil, nil)
}

func (c *Client) RaiseAll() error {
	return c.call(CommandRaiseAll, nil, nil)
}

// ToggleOnTop flips the group always-on-top flag and returns the new value.
func (c *Client) ToggleOnTop() (bool, error) {
	var data OnTopData
	if err := c.call(CommandToggleOnTop, nil, &data); err != nil {
		return false, err
	}
	return data.OnTop, nil
}

func (c *Client) Maximize(window string) error {
	return c.call(CommandMaximize, WindowPayload{Window: window}, nil)
}

func (c *Client) Unmaximize(window string) error {
	return c.call(CommandUnmaximize, WindowPayload{Window: window}, nil)
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
