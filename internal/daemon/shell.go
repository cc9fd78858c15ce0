package daemon

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/1broseidon/skindock/internal/config"
	"github.com/1broseidon/skindock/internal/docking"
	"github.com/1broseidon/skindock/internal/ipc"
	"github.com/1broseidon/skindock/internal/platform"
	"github.com/1broseidon/skindock/internal/skin"
	"github.com/1broseidon/skindock/internal/skinfile"
)

var (
	// ErrStaleToken is returned for drag commands whose token does not name
	// the open session.
	ErrStaleToken = errors.New("stale or unknown session token")
	// ErrBusy is returned when a command needs the engine idle during a drag.
	ErrBusy = errors.New("a drag session is in progress")
	// ErrNotLoaded is returned before the first successful Load.
	ErrNotLoaded = errors.New("no skin loaded")
)

// Shell owns the docking engine, the skin windows registered in it and the
// surfaces binding them to host windows. A Shell is not safe for concurrent
// use; the daemon drives it through a Dispatcher.
type Shell struct {
	cfg     *config.Config
	backend platform.Backend
	logger  *slog.Logger
	started time.Time

	skinPath string
	skin     *skinfile.Skin
	engine   *docking.Engine
	ids      map[string]docking.WindowID
	names    map[docking.WindowID]string
	surfaces map[string]*Surface
	onTop    bool

	token         string
	lastMove      time.Time
	reloadPending bool

	now func() time.Time
}

func NewShell(cfg *config.Config, backend platform.Backend, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Shell{
		cfg:     cfg,
		backend: backend,
		logger:  logger,
		started: time.Now(),
		now:     time.Now,
	}
}

// Engine returns the current engine, or nil before Load.
func (s *Shell) Engine() *docking.Engine {
	return s.engine
}

// Load (re)reads the skin file, restores saved window state, registers the
// windows in a fresh engine and binds them to host windows. On failure the
// previous skin stays active.
func (s *Shell) Load() error {
	if s.engine != nil && s.engine.State() != docking.StateIdle {
		return ErrBusy
	}
	path, err := s.cfg.SkinPath()
	if err != nil {
		return err
	}
	sk, err := skinfile.LoadSkin(path)
	if err != nil {
		return err
	}

	if s.engine != nil {
		s.saveState()
	}
	if statePath, err := s.cfg.StatePath(); err != nil {
		s.logger.Warn("invalid state file path", "error", err)
	} else if statePath != "" {
		state, err := skinfile.LoadState(statePath)
		if err != nil {
			s.logger.Warn("ignoring window state", "path", statePath, "error", err)
		} else if n := state.Apply(sk.Windows); n > 0 {
			s.logger.Debug("restored window state", "windows", n)
		}
	}

	engine := docking.New(docking.Options{
		Magnet:    s.cfg.Magnet,
		Alpha:     uint8(s.cfg.Alpha),
		MoveAlpha: uint8(s.cfg.MoveAlpha),
		WorkArea:  &workArea{override: s.cfg.WorkArea.Rect(), backend: s.backend, logger: s.logger},
		Logger:    s.logger,
	})
	ids := make(map[string]docking.WindowID, len(sk.Windows))
	names := make(map[docking.WindowID]string, len(sk.Windows))
	for _, w := range sk.Windows {
		id := engine.Register(w)
		ids[w.ID] = id
		names[id] = w.ID
	}

	s.skinPath = path
	s.skin = sk
	s.engine = engine
	s.ids = ids
	s.names = names
	s.surfaces = make(map[string]*Surface)
	s.token = ""
	s.reloadPending = false

	s.bind()
	engine.SetOnTop(s.onTop)
	engine.SetTransparency(s.cfg.Transparency)

	s.logger.Info("skin loaded", "path", path, "windows", len(sk.Windows), "edges", len(engine.Edges()))
	return nil
}

// Rebind looks up host windows again and binds skin windows whose hosts
// changed, e.g. after the player opened a window. It returns how many
// windows were rebound. A drag session idle for longer than drag_timeout
// is ended first.
func (s *Shell) Rebind() (int, error) {
	if s.engine == nil {
		return 0, ErrNotLoaded
	}
	s.ExpireSession()
	if s.engine.State() != docking.StateIdle {
		return 0, nil
	}
	return s.bind(), nil
}

func (s *Shell) bind() int {
	n := 0
	for _, w := range s.skin.Windows {
		class, ok := s.skin.Classes[w.ID]
		if !ok {
			continue
		}
		hosts, err := s.backend.FindByClass(class)
		if err != nil {
			s.logger.Warn("failed to find host windows", "window", w.ID, "class", class, "error", err)
			continue
		}
		if cur, ok := s.surfaces[w.ID]; ok && slices.Equal(cur.Hosts(), hosts) {
			continue
		}
		surface := newSurface(w.ID, s.backend, hosts, s.logger)
		s.surfaces[w.ID] = surface
		w.Bind(surface)
		s.logger.Debug("window bound", "window", w.ID, "class", class, "hosts", len(hosts))
		n++
	}
	return n
}

// Close persists the window state.
func (s *Shell) Close() {
	if s.engine != nil {
		s.saveState()
	}
}

func (s *Shell) saveState() {
	path, err := s.cfg.StatePath()
	if err != nil || path == "" {
		return
	}
	if err := skinfile.SaveState(path, skinfile.Capture(s.skin.Windows)); err != nil {
		s.logger.Warn("failed to save window state", "path", path, "error", err)
	}
}

func (s *Shell) lookup(name string) (docking.WindowID, *skin.Window, error) {
	if s.engine == nil {
		return 0, nil, ErrNotLoaded
	}
	id, ok := s.ids[name]
	if !ok {
		return 0, nil, fmt.Errorf("unknown window %q", name)
	}
	w, _ := s.skin.Window(name)
	return id, w, nil
}

func (s *Shell) requireIdle() error {
	if s.engine == nil {
		return ErrNotLoaded
	}
	if s.engine.State() != docking.StateIdle {
		return ErrBusy
	}
	return nil
}

func (s *Shell) info(id docking.WindowID) ipc.WindowInfo {
	name := s.names[id]
	w, _ := s.skin.Window(name)
	info := ipc.WindowInfo{
		ID:        name,
		X:         w.Left(),
		Y:         w.Top(),
		Width:     w.Width(),
		Height:    w.Height(),
		Visible:   w.Visible(),
		Maximized: s.engine.IsMaximized(id),
	}
	if l := w.ActiveLayout(); l != nil {
		info.Layout = l.ID
	}
	if surface, ok := s.surfaces[name]; ok {
		info.Bound = len(surface.Hosts())
	}
	return info
}

func (s *Shell) Status() (ipc.StatusData, error) {
	if s.engine == nil {
		return ipc.StatusData{}, ErrNotLoaded
	}
	status := ipc.StatusData{
		State:         s.engine.State().String(),
		Skin:          s.skinPath,
		Windows:       len(s.ids),
		Edges:         len(s.engine.Edges()),
		Magnet:        s.engine.Magnet(),
		OnTop:         s.engine.OnTop(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		DaemonRunning: true,
	}
	if id := s.engine.Session(); id != 0 {
		status.Session = s.names[id]
	}
	return status, nil
}

// Windows lists every skin window in registration order.
func (s *Shell) Windows() ([]ipc.WindowInfo, error) {
	if s.engine == nil {
		return nil, ErrNotLoaded
	}
	ids := s.engine.Windows()
	out := make([]ipc.WindowInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.info(id))
	}
	return out, nil
}

func (s *Shell) Graph() (skinfile.Graph, error) {
	if s.engine == nil {
		return skinfile.Graph{}, ErrNotLoaded
	}
	return skinfile.GraphOf(s.engine), nil
}

// StartMove opens a drag session on the named window and returns the token
// that the following Move and StopMove calls must carry.
func (s *Shell) StartMove(name string) (ipc.StartMoveData, error) {
	if err := s.requireIdle(); err != nil {
		return ipc.StartMoveData{}, err
	}
	id, _, err := s.lookup(name)
	if err != nil {
		return ipc.StartMoveData{}, err
	}

	s.engine.StartMove(id)
	s.token = uuid.NewString()
	s.lastMove = s.now()

	data := ipc.StartMoveData{Token: s.token}
	for _, m := range s.engine.MovingSet() {
		data.Moving = append(data.Moving, s.names[m])
	}
	s.logger.Debug("drag started", "window", name, "moving", len(data.Moving))
	return data, nil
}

func (s *Shell) Move(token string, left, top int) (ipc.MoveData, error) {
	id, err := s.session(token)
	if err != nil {
		return ipc.MoveData{}, err
	}
	dx, dy := s.engine.Move(id, left, top)
	s.lastMove = s.now()
	return ipc.MoveData{DX: dx, DY: dy, Window: s.info(id)}, nil
}

func (s *Shell) StopMove(token string) error {
	if _, err := s.session(token); err != nil {
		return err
	}
	s.endDrag()
	return nil
}

// AbortMove ends the open drag session without its token, for clients that
// lost it. Without a drag session it does nothing.
func (s *Shell) AbortMove() error {
	if s.engine == nil {
		return ErrNotLoaded
	}
	if s.engine.State() != docking.StateMoving {
		return nil
	}
	s.logger.Info("drag aborted", "window", s.names[s.engine.Session()])
	s.endDrag()
	return nil
}

// ExpireSession ends a drag session that saw no StartMove or Move for
// drag_timeout and reports whether it did.
func (s *Shell) ExpireSession() bool {
	timeout := s.cfg.DragIdleTimeout()
	if s.engine == nil || timeout <= 0 || s.engine.State() != docking.StateMoving {
		return false
	}
	idle := s.now().Sub(s.lastMove)
	if idle < timeout {
		return false
	}
	s.logger.Warn("ending idle drag session", "window", s.names[s.engine.Session()], "idle", idle)
	s.endDrag()
	return true
}

func (s *Shell) endDrag() {
	s.engine.StopMove()
	s.token = ""
	s.afterSession()
}

// Drag runs a complete drag session moving the named window towards
// (left, top) and returns where it ended up.
func (s *Shell) Drag(name string, left, top int) (ipc.WindowInfo, error) {
	start, err := s.StartMove(name)
	if err != nil {
		return ipc.WindowInfo{}, err
	}
	if _, err := s.Move(start.Token, left, top); err != nil {
		return ipc.WindowInfo{}, err
	}
	if err := s.StopMove(start.Token); err != nil {
		return ipc.WindowInfo{}, err
	}
	// A deferred reload may have replaced the window.
	id, _, err := s.lookup(name)
	if err != nil {
		return ipc.WindowInfo{}, err
	}
	return s.info(id), nil
}

func (s *Shell) session(token string) (docking.WindowID, error) {
	if s.engine == nil || s.token == "" || token != s.token || s.engine.State() != docking.StateMoving {
		return 0, ErrStaleToken
	}
	return s.engine.Session(), nil
}

func (s *Shell) afterSession() {
	s.saveState()
	if !s.reloadPending {
		return
	}
	s.reloadPending = false
	if err := s.Load(); err != nil {
		s.logger.Error("deferred reload failed", "error", err)
	}
}

func (s *Shell) ShowAll() error {
	if s.engine == nil {
		return ErrNotLoaded
	}
	s.engine.ShowAll()
	s.saveState()
	return nil
}

func (s *Shell) HideAll() error {
	if s.engine == nil {
		return ErrNotLoaded
	}
	s.engine.HideAll()
	s.saveState()
	return nil
}

func (s *Shell) RaiseAll() error {
	if s.engine == nil {
		return ErrNotLoaded
	}
	s.engine.RaiseAll()
	return nil
}

func (s *Shell) ToggleOnTop() (bool, error) {
	if s.engine == nil {
		return false, ErrNotLoaded
	}
	s.onTop = s.engine.ToggleOnTop()
	return s.onTop, nil
}

func (s *Shell) Maximize(name string) error {
	if err := s.requireIdle(); err != nil {
		return err
	}
	id, _, err := s.lookup(name)
	if err != nil {
		return err
	}
	s.engine.Maximize(id)
	s.saveState()
	return nil
}

func (s *Shell) Unmaximize(name string) error {
	if err := s.requireIdle(); err != nil {
		return err
	}
	id, _, err := s.lookup(name)
	if err != nil {
		return err
	}
	s.engine.Unmaximize(id)
	s.saveState()
	return nil
}

// Reload reloads the skin file. During a drag the reload is deferred until
// the session ends.
func (s *Shell) Reload() error {
	if s.engine != nil && s.engine.State() != docking.StateIdle {
		s.reloadPending = true
		s.logger.Info("reload deferred until the drag ends")
		return nil
	}
	return s.Load()
}
