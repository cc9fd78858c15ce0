package daemon

import (
	"context"
	"log/slog"
	"time"
)

// Rebinder looks up host windows again and reports how many skin windows
// got new hosts.
type Rebinder func(ctx context.Context) (int, error)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically rebinds skin windows so host windows opened or
// closed after startup are picked up.
type Reconciler struct {
	interval time.Duration
	rebind   Rebinder
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, rebind Rebinder) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Reconciler{
		interval: interval,
		rebind:   rebind,
		logger:   logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return nil
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context) {
	n, err := r.rebind(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("rebind failed", "error", err)
		}
		return
	}
	if n > 0 {
		r.logger.Info("host windows rebound", "windows", n)
	}
}
