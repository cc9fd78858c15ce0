package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"
)

// Controller executes commands against the running shell. Implementations
// serialise access to the docking engine.
type Controller interface {
	Status(ctx context.Context) (StatusData, error)
	ListWindows(ctx context.Context) ([]WindowInfo, error)
	Graph(ctx context.Context) (GraphData, error)
	StartMove(ctx context.Context, window string) (StartMoveData, error)
	Move(ctx context.Context, token string, left, top int) (MoveData, error)
	StopMove(ctx context.Context, token string) error
	AbortMove(ctx context.Context) error
	Drag(ctx context.Context, window string, left, top int) (WindowInfo, error)
	ShowAll(ctx context.Context) error
	HideAll(ctx context.Context) error
	RaiseAll(ctx context.Context) error
	ToggleOnTop(ctx context.Context) (bool, error)
	Maximize(ctx context.Context, window string) error
	Unmaximize(ctx context.Context, window string) error
	Reload(ctx context.Context) error
}

// requestTimeout bounds how long one command may wait for the engine.
const requestTimeout = 5 * time.Second

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	ctrl         Controller
	logger       *slog.Logger
	wg           sync.WaitGroup
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server listening on socketPath.
func NewServer(socketPath string, ctrl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		socketPath: socketPath,
		ctrl:       ctrl,
		logger:     logger,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// Remove existing socket if present
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Serve starts the server and stops it when ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("IPC accept error", "err", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "err", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	resp := s.HandleCommand(ctx, req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("Failed to marshal response", "err", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("Failed to send response", "err", err)
	}
}

// HandleCommand processes an IPC command and returns a response
func (s *Server) HandleCommand(ctx context.Context, req *Request) *Response {
	s.logger.Debug("IPC command", "command", req.Command)

	switch req.Command {
	case CommandReload:
		return respond(nil, s.ctrl.Reload(ctx))
	case CommandGetStatus:
		status, err := s.ctrl.Status(ctx)
		return respond(status, err)
	case CommandListWindows:
		windows, err := s.ctrl.ListWindows(ctx)
		return respond(WindowsData{Windows: windows}, err)
	case CommandGetGraph:
		graph, err := s.ctrl.Graph(ctx)
		return respond(graph, err)
	case CommandStartMove:
		var p WindowPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		data, err := s.ctrl.StartMove(ctx, p.Window)
		return respond(data, err)
	case CommandMove:
		var p MovePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		data, err := s.ctrl.Move(ctx, p.Token, p.Left, p.Top)
		return respond(data, err)
	case CommandStopMove:
		var p TokenPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		return respond(nil, s.ctrl.StopMove(ctx, p.Token))
	case CommandAbortMove:
		return respond(nil, s.ctrl.AbortMove(ctx))
	case CommandDrag:
		var p DragPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		info, err := s.ctrl.Drag(ctx, p.Window, p.Left, p.Top)
		return respond(info, err)
	case CommandShowAll:
		return respond(nil, s.ctrl.ShowAll(ctx))
	case CommandHideAll:
		return respond(nil, s.ctrl.HideAll(ctx))
	case CommandRaiseAll:
		return respond(nil, s.ctrl.RaiseAll(ctx))
	case CommandToggleOnTop:
		onTop, err := s.ctrl.ToggleOnTop(ctx)
		return respond(OnTopData{OnTop: onTop}, err)
	case CommandMaximize, CommandUnmaximize:
		var p WindowPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		if req.Command == CommandMaximize {
			return respond(nil, s.ctrl.Maximize(ctx, p.Window))
		}
		return respond(nil, s.ctrl.Unmaximize(ctx, p.Window))
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func decodePayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func respond(data interface{}, err error) *Response {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
