package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/1broseidon/skindock/internal/config"
	"github.com/1broseidon/skindock/internal/platform"
	"github.com/1broseidon/skindock/internal/skin"
)

const dockSkin = `
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
        anchors:
          - name: bottom
            x: 0
            y: 100
            points: [[0, 0], [200, 0]]
            range: 15
            priority: 10
  - id: playlist
    left: 120
    top: 200
    visible: true
    x11_class: player-pl
    layouts:
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
`

const videoWindow = `
  - id: video
    left: 900
    top: 50
    layouts:
      - id: v
        width: 320
        height: 240
`

type shellFixture struct {
	shell    *Shell
	backend  *platform.Headless
	cfg      *config.Config
	skinPath string
	mainHost platform.WindowID
	plHost   platform.WindowID
}

func newShellFixture(t *testing.T, withPlaylistHost bool) *shellFixture {
	t.Helper()
	dir := t.TempDir()
	skinPath := filepath.Join(dir, "skin.yaml")
	if err := os.WriteFile(skinPath, []byte(dockSkin), 0644); err != nil {
		t.Fatalf("write skin: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Skin = skinPath
	cfg.StateFile = filepath.Join(dir, "state", "windows.yaml")
	cfg.WorkArea = config.WorkArea{Width: 1920, Height: 1080}
	cfg.Backend = config.BackendHeadless

	f := &shellFixture{
		backend:  platform.NewHeadless(skin.Rect{Width: 800, Height: 600}),
		cfg:      cfg,
		skinPath: skinPath,
	}
	f.mainHost = f.backend.AddWindow("player-main")
	if withPlaylistHost {
		f.plHost = f.backend.AddWindow("player-pl")
	}
	f.shell = NewShell(cfg, f.backend, nil)
	if err := f.shell.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return f
}

func (f *shellFixture) hostBounds(t *testing.T, id platform.WindowID) skin.Rect {
	t.Helper()
	w, ok := f.backend.Window(id)
	if !ok {
		t.Fatalf("host %d missing", id)
	}
	return w.Bounds
}

func TestShellLoadBindsHosts(t *testing.T) {
	f := newShellFixture(t, true)

	if got := f.hostBounds(t, f.mainHost); got != (skin.Rect{X: 100, Y: 100, Width: 200, Height: 100}) {
		t.Fatalf("main host bounds = %+v", got)
	}
	w, _ := f.backend.Window(f.plHost)
	if !w.Mapped || w.Opacity != skin.OpaqueAlpha {
		t.Fatalf("playlist host must be mapped and opaque, got %+v", w)
	}

	windows, err := f.shell.Windows()
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	if len(windows) != 3 || windows[0].ID != "main" || windows[0].Bound != 1 || windows[2].Bound != 0 {
		t.Fatalf("unexpected windows %+v", windows)
	}

	status, err := f.shell.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.State != "idle" || status.Windows != 3 || status.Edges != 1 || status.Session != "" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestShellDragMovesGroup(t *testing.T) {
	f := newShellFixture(t, true)

	info, err := f.shell.Drag("main", 150, 130)
	if err != nil {
		t.Fatalf("Drag: %v", err)
	}
	if info.X != 150 || info.Y != 130 {
		t.Fatalf("main at (%d,%d), want (150,130)", info.X, info.Y)
	}
	if got := f.hostBounds(t, f.mainHost); got != (skin.Rect{X: 150, Y: 130, Width: 200, Height: 100}) {
		t.Fatalf("main host bounds = %+v", got)
	}
	if got := f.hostBounds(t, f.plHost); got != (skin.Rect{X: 170, Y: 230, Width: 200, Height: 300}) {
		t.Fatalf("playlist host must follow main, got %+v", got)
	}
}

func TestShellSessionTokens(t *testing.T) {
	f := newShellFixture(t, true)

	start, err := f.shell.StartMove("main")
	if err != nil {
		t.Fatalf("StartMove: %v", err)
	}
	if start.Token == "" || len(start.Moving) != 2 {
		t.Fatalf("unexpected start data %+v", start)
	}
	if _, err := f.shell.StartMove("playlist"); !errors.Is(err, ErrBusy) {
		t.Fatalf("second StartMove: expected ErrBusy, got %v", err)
	}
	if err := f.shell.Maximize("main"); !errors.Is(err, ErrBusy) {
		t.Fatalf("Maximize during drag: expected ErrBusy, got %v", err)
	}
	if _, err := f.shell.Move("bogus", 0, 0); !errors.Is(err, ErrStaleToken) {
		t.Fatalf("Move with bogus token: expected ErrStaleToken, got %v", err)
	}

	move, err := f.shell.Move(start.Token, 110, 100)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if move.DX != 10 || move.DY != 0 {
		t.Fatalf("delta = (%d,%d), want (10,0)", move.DX, move.DY)
	}
	status, _ := f.shell.Status()
	if status.State != "moving" || status.Session != "main" {
		t.Fatalf("unexpected status during drag %+v", status)
	}

	if err := f.shell.StopMove(start.Token); err != nil {
		t.Fatalf("StopMove: %v", err)
	}
	if err := f.shell.StopMove(start.Token); !errors.Is(err, ErrStaleToken) {
		t.Fatalf("token must not outlive the session, got %v", err)
	}
}

func TestShellEndsOrphanedDrag(t *testing.T) {
	tests := []struct {
		name string
		end  func(t *testing.T, f *shellFixture, clock *time.Time)
	}{
		{
			name: "abort",
			end: func(t *testing.T, f *shellFixture, clock *time.Time) {
				if err := f.shell.AbortMove(); err != nil {
					t.Fatalf("AbortMove: %v", err)
				}
			},
		},
		{
			name: "idle timeout",
			end: func(t *testing.T, f *shellFixture, clock *time.Time) {
				*clock = clock.Add(f.cfg.DragIdleTimeout() - time.Second)
				if f.shell.ExpireSession() {
					t.Fatalf("session expired before drag_timeout")
				}
				*clock = clock.Add(time.Second)
				if _, err := f.shell.Rebind(); err != nil {
					t.Fatalf("Rebind: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newShellFixture(t, false)
			clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
			f.shell.now = func() time.Time { return clock }

			// The client opens a drag, moves once and disappears.
			start, err := f.shell.StartMove("main")
			if err != nil {
				t.Fatalf("StartMove: %v", err)
			}
			if _, err := f.shell.Move(start.Token, 150, 100); err != nil {
				t.Fatalf("Move: %v", err)
			}
			if err := os.WriteFile(f.skinPath, []byte(dockSkin+videoWindow), 0644); err != nil {
				t.Fatalf("write skin: %v", err)
			}
			if err := f.shell.Reload(); err != nil {
				t.Fatalf("Reload: %v", err)
			}
			if err := f.shell.Maximize("main"); !errors.Is(err, ErrBusy) {
				t.Fatalf("Maximize during drag: expected ErrBusy, got %v", err)
			}

			tt.end(t, f, &clock)

			if status, _ := f.shell.Status(); status.State != "idle" {
				t.Fatalf("state after ending orphan = %q, want idle", status.State)
			}
			if err := f.shell.StopMove(start.Token); !errors.Is(err, ErrStaleToken) {
				t.Fatalf("orphaned token must be dead, got %v", err)
			}
			if windows, _ := f.shell.Windows(); len(windows) != 4 {
				t.Fatalf("deferred reload must run, got %d windows", len(windows))
			}
			if err := f.shell.Maximize("main"); err != nil {
				t.Fatalf("Maximize after orphan: %v", err)
			}
			if _, err := f.shell.StartMove("playlist"); err != nil {
				t.Fatalf("StartMove after orphan: %v", err)
			}
		})
	}
}

func TestShellExpireSession(t *testing.T) {
	f := newShellFixture(t, false)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	f.shell.now = func() time.Time { return clock }

	if f.shell.ExpireSession() {
		t.Fatalf("nothing to expire while idle")
	}
	if err := f.shell.AbortMove(); err != nil {
		t.Fatalf("AbortMove while idle: %v", err)
	}

	start, err := f.shell.StartMove("main")
	if err != nil {
		t.Fatalf("StartMove: %v", err)
	}
	timeout := f.cfg.DragIdleTimeout()

	// Each move pushes the deadline out.
	clock = clock.Add(timeout - time.Second)
	if _, err := f.shell.Move(start.Token, 120, 100); err != nil {
		t.Fatalf("Move: %v", err)
	}
	clock = clock.Add(timeout - time.Second)
	if f.shell.ExpireSession() {
		t.Fatalf("active drag must not expire")
	}

	// A zero drag_timeout keeps the session open forever.
	f.cfg.DragTimeout = 0
	clock = clock.Add(time.Hour)
	if f.shell.ExpireSession() {
		t.Fatalf("expired with drag_timeout disabled")
	}
	if err := f.shell.StopMove(start.Token); err != nil {
		t.Fatalf("StopMove: %v", err)
	}
}

func TestShellUnknownWindow(t *testing.T) {
	f := newShellFixture(t, false)
	if _, err := f.shell.StartMove("ghost"); err == nil {
		t.Fatalf("expected error for unknown window")
	}
	if f.shell.Engine().State().String() != "idle" {
		t.Fatalf("failed StartMove must leave the engine idle")
	}
}

func TestShellReloadDeferredDuringDrag(t *testing.T) {
	f := newShellFixture(t, false)

	start, err := f.shell.StartMove("main")
	if err != nil {
		t.Fatalf("StartMove: %v", err)
	}
	if err := os.WriteFile(f.skinPath, []byte(dockSkin+videoWindow), 0644); err != nil {
		t.Fatalf("write skin: %v", err)
	}
	if err := f.shell.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if windows, _ := f.shell.Windows(); len(windows) != 3 {
		t.Fatalf("reload must wait for the drag, got %d windows", len(windows))
	}

	if err := f.shell.StopMove(start.Token); err != nil {
		t.Fatalf("StopMove: %v", err)
	}
	windows, _ := f.shell.Windows()
	if len(windows) != 4 || windows[3].ID != "video" {
		t.Fatalf("expected deferred reload to add video, got %+v", windows)
	}
}

func TestShellReloadKeepsSkinOnError(t *testing.T) {
	f := newShellFixture(t, false)
	if err := os.WriteFile(f.skinPath, []byte("windows: []\n"), 0644); err != nil {
		t.Fatalf("write skin: %v", err)
	}
	if err := f.shell.Reload(); err == nil {
		t.Fatalf("expected reload error")
	}
	if windows, _ := f.shell.Windows(); len(windows) != 3 {
		t.Fatalf("previous skin must stay active, got %d windows", len(windows))
	}
}

func TestShellPersistsWindowState(t *testing.T) {
	f := newShellFixture(t, true)
	if _, err := f.shell.Drag("main", 150, 130); err != nil {
		t.Fatalf("Drag: %v", err)
	}
	if err := f.shell.HideAll(); err != nil {
		t.Fatalf("HideAll: %v", err)
	}
	f.shell.Close()

	next := NewShell(f.cfg, f.backend, nil)
	if err := next.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	windows, _ := next.Windows()
	if windows[0].X != 150 || windows[0].Y != 130 || windows[0].Visible {
		t.Fatalf("main not restored: %+v", windows[0])
	}
	if windows[1].X != 170 || windows[1].Y != 230 {
		t.Fatalf("playlist not restored: %+v", windows[1])
	}
	if w, _ := f.backend.Window(f.mainHost); w.Mapped {
		t.Fatalf("restored hidden window must be unmapped")
	}
}

func TestShellRebindPicksUpNewHosts(t *testing.T) {
	f := newShellFixture(t, false)

	n, err := f.shell.Rebind()
	if err != nil || n != 0 {
		t.Fatalf("Rebind without changes = %d, %v", n, err)
	}

	pl := f.backend.AddWindow("player-pl")
	n, err = f.shell.Rebind()
	if err != nil || n != 1 {
		t.Fatalf("Rebind = %d, %v; want 1", n, err)
	}
	w, _ := f.backend.Window(pl)
	if w.Bounds != (skin.Rect{X: 120, Y: 200, Width: 200, Height: 300}) || !w.Mapped {
		t.Fatalf("new host not synced: %+v", w)
	}
}

func TestShellGroupCommands(t *testing.T) {
	f := newShellFixture(t, true)

	onTop, err := f.shell.ToggleOnTop()
	if err != nil || !onTop {
		t.Fatalf("ToggleOnTop = %v, %v", onTop, err)
	}
	if w, _ := f.backend.Window(f.mainHost); !w.Above {
		t.Fatalf("main host must be kept above")
	}
	if err := f.shell.RaiseAll(); err != nil {
		t.Fatalf("RaiseAll: %v", err)
	}
	if got := f.backend.StackingOrder(); len(got) != 2 || got[0] != f.mainHost || got[1] != f.plHost {
		t.Fatalf("StackingOrder = %v", got)
	}

	if err := f.shell.Maximize("main"); err != nil {
		t.Fatalf("Maximize: %v", err)
	}
	if got := f.hostBounds(t, f.mainHost); got != (skin.Rect{Width: 1920, Height: 1080}) {
		t.Fatalf("maximized main = %+v", got)
	}
	if err := f.shell.Unmaximize("main"); err != nil {
		t.Fatalf("Unmaximize: %v", err)
	}
	if got := f.hostBounds(t, f.mainHost); got != (skin.Rect{X: 100, Y: 100, Width: 200, Height: 100}) {
		t.Fatalf("restored main = %+v", got)
	}

	// on-top survives a reload
	if err := f.shell.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if status, _ := f.shell.Status(); !status.OnTop {
		t.Fatalf("on-top must survive reload")
	}
}

func TestServiceRecoversPreconditions(t *testing.T) {
	f := newShellFixture(t, false)
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	svc := NewService(d, f.shell)
	if err := svc.StopMove(ctx, "nope"); !errors.Is(err, ErrStaleToken) {
		t.Fatalf("expected ErrStaleToken, got %v", err)
	}
	info, err := svc.Drag(ctx, "main", 300, 300)
	if err != nil || info.X != 300 || info.Y != 300 {
		t.Fatalf("Drag = %+v, %v", info, err)
	}
	if err := svc.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestServiceAbortMove(t *testing.T) {
	f := newShellFixture(t, false)
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	svc := NewService(d, f.shell)
	if _, err := svc.StartMove(ctx, "main"); err != nil {
		t.Fatalf("StartMove: %v", err)
	}
	if err := svc.AbortMove(ctx); err != nil {
		t.Fatalf("AbortMove: %v", err)
	}
	status, err := svc.Status(ctx)
	if err != nil || status.State != "idle" {
		t.Fatalf("Status = %+v, %v", status, err)
	}
}
