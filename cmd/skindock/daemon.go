package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/1broseidon/skindock/internal/config"
	"github.com/1broseidon/skindock/internal/daemon"
	"github.com/1broseidon/skindock/internal/ipc"
	"github.com/1broseidon/skindock/internal/logging"
	"github.com/1broseidon/skindock/internal/platform"
	"github.com/1broseidon/skindock/internal/runtimepath"
	"github.com/1broseidon/skindock/internal/skin"
)

const skinDebounce = 250 * time.Millisecond

// headlessArea is the simulated screen of the headless backend when no
// work_area is configured.
var headlessArea = skin.Rect{Width: 1920, Height: 1080}

func runDaemon(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: skindock daemon")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: skindock daemon")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "skin", cfg.Skin, "magnet", cfg.Magnet, "backend", cfg.Backend)

	backend, closeBackend, err := openBackend(cfg, logger)
	if err != nil {
		logger.Error("failed to open backend", "error", err)
		return 1
	}
	defer closeBackend()

	shell := daemon.NewShell(cfg, backend, logger)
	if err := shell.Load(); err != nil {
		logger.Error("failed to load skin", "error", err)
		return 1
	}

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		logger.Error("failed to resolve socket path", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := daemon.NewDispatcher()
	svc := daemon.NewService(dispatcher, shell)
	server := ipc.NewServer(socketPath, svc, logger)
	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{Logger: logger}, svc.Rebind)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error { return server.Serve(gctx) })
	g.Go(func() error { return reconciler.Run(gctx) })
	if cfg.WatchSkin {
		skinPath, err := cfg.SkinPath()
		if err != nil {
			logger.Error("failed to resolve skin path", "error", err)
			return 1
		}
		watcher := daemon.NewWatcher(skinPath, skinDebounce, func() {
			if err := svc.Reload(gctx); err != nil {
				logger.Error("skin reload failed", "error", err)
			}
		}, logger)
		g.Go(func() error { return watcher.Run(gctx) })
	}

	logger.Info("skindock daemon started", "socket", socketPath)
	err = g.Wait()

	// The dispatcher has stopped, so the shell is ours again.
	shell.Close()
	if err != nil {
		logger.Error("daemon stopped", "error", err)
		return 1
	}
	logger.Info("daemon stopped")
	return 0
}

// openBackend connects to the configured window system. The auto backend
// falls back to headless when no X display is reachable.
func openBackend(cfg *config.Config, logger *slog.Logger) (platform.Backend, func(), error) {
	headless := func() (platform.Backend, func(), error) {
		area := headlessArea
		if cfg.WorkArea.IsSet() {
			area = cfg.WorkArea.Rect()
		}
		return platform.NewHeadless(area), func() {}, nil
	}

	switch cfg.Backend {
	case config.BackendHeadless:
		return headless()
	case config.BackendX11, config.BackendAuto:
		b, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
		if err == nil {
			return b, b.Disconnect, nil
		}
		if cfg.Backend == config.BackendX11 {
			return nil, nil, err
		}
		logger.Warn("no X display, running headless", "error", err)
		return headless()
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
