package daemon

import (
	"context"

	"github.com/1broseidon/skindock/internal/ipc"
)

// Service exposes a Shell to the IPC server. Every call runs on the
// dispatcher goroutine.
type Service struct {
	d     *Dispatcher
	shell *Shell
}

var _ ipc.Controller = (*Service)(nil)

func NewService(d *Dispatcher, shell *Shell) *Service {
	return &Service{d: d, shell: shell}
}

func (s *Service) Status(ctx context.Context) (ipc.StatusData, error) {
	return run(ctx, s.d, s.shell.Status)
}

func (s *Service) ListWindows(ctx context.Context) ([]ipc.WindowInfo, error) {
	return run(ctx, s.d, s.shell.Windows)
}

func (s *Service) Graph(ctx context.Context) (ipc.GraphData, error) {
	return run(ctx, s.d, s.shell.Graph)
}

func (s *Service) StartMove(ctx context.Context, window string) (ipc.StartMoveData, error) {
	return run(ctx, s.d, func() (ipc.StartMoveData, error) {
		return s.shell.StartMove(window)
	})
}

func (s *Service) Move(ctx context.Context, token string, left, top int) (ipc.MoveData, error) {
	return run(ctx, s.d, func() (ipc.MoveData, error) {
		return s.shell.Move(token, left, top)
	})
}

func (s *Service) StopMove(ctx context.Context, token string) error {
	return s.d.Do(ctx, func() error { return s.shell.StopMove(token) })
}

func (s *Service) AbortMove(ctx context.Context) error {
	return s.d.Do(ctx, s.shell.AbortMove)
}

func (s *Service) Drag(ctx context.Context, window string, left, top int) (ipc.WindowInfo, error) {
	return run(ctx, s.d, func() (ipc.WindowInfo, error) {
		return s.shell.Drag(window, left, top)
	})
}

func (s *Service) ShowAll(ctx context.Context) error {
	return s.d.Do(ctx, s.shell.ShowAll)
}

func (s *Service) HideAll(ctx context.Context) error {
	return s.d.Do(ctx, s.shell.HideAll)
}

func (s *Service) RaiseAll(ctx context.Context) error {
	return s.d.Do(ctx, s.shell.RaiseAll)
}

func (s *Service) ToggleOnTop(ctx context.Context) (bool, error) {
	return run(ctx, s.d, s.shell.ToggleOnTop)
}

func (s *Service) Maximize(ctx context.Context, window string) error {
	return s.d.Do(ctx, func() error { return s.shell.Maximize(window) })
}

func (s *Service) Unmaximize(ctx context.Context, window string) error {
	return s.d.Do(ctx, func() error { return s.shell.Unmaximize(window) })
}

func (s *Service) Reload(ctx context.Context) error {
	return s.d.Do(ctx, s.shell.Reload)
}

// Rebind runs Shell.Rebind on the dispatcher.
func (s *Service) Rebind(ctx context.Context) (int, error) {
	return run(ctx, s.d, s.shell.Rebind)
}

// Close saves the window state.
func (s *Service) Close(ctx context.Context) error {
	return s.d.Do(ctx, func() error {
		s.shell.Close()
		return nil
	})
}
