// Package server runs the long-lived daemon components.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/sortarr/internal/handlers"
)

// Worker is the transfer worker pool.
type Worker interface {
	Run(ctx context.Context) error
}

// Poller hands finished downloads to the transfer service.
type Poller interface {
	Process(ctx context.Context) bool
}

// Config for the runner.
type Config struct {
	PollInterval    time.Duration // zero disables polling
	ShutdownTimeout time.Duration
}

// Components are the parts the runner supervises. Any of them may be nil.
type Components struct {
	Worker   Worker
	Poller   Poller
	Handlers []handlers.Handler
	HTTP     *http.Server

	// Reload runs for every value received on Signals.
	Reload  func(ctx context.Context) error
	Signals <-chan os.Signal
}

// Runner manages the daemon component lifecycle.
type Runner struct {
	comp   Components
	config Config
	logger *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(comp Components, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		comp:   comp,
		config: cfg,
		logger: logger.With("component", "runner"),
	}
}

// Run starts every component and blocks until ctx is canceled or one of
// them fails, then stops the rest. Cancellation is not an error.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if r.comp.Worker != nil {
		g.Go(func() error {
			if err := r.comp.Worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("transfer workers: %w", err)
			}
			return nil
		})
	}

	if r.comp.Poller != nil && r.config.PollInterval > 0 {
		g.Go(func() error {
			r.poll(ctx)
			return nil
		})
	}

	for _, h := range r.comp.Handlers {
		g.Go(func() error {
			r.logger.Debug("handler started", "handler", h.Name())
			if err := h.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s handler: %w", h.Name(), err)
			}
			return nil
		})
	}

	if srv := r.comp.HTTP; srv != nil {
		g.Go(func() error {
			r.logger.Info("http server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.config.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("http shutdown: %w", err)
			}
			return nil
		})
	}

	if r.comp.Reload != nil && r.comp.Signals != nil {
		g.Go(func() error {
			r.reloadLoop(ctx)
			return nil
		})
	}

	err := g.Wait()
	r.logger.Info("stopped")
	return err
}

func (r *Runner) poll(ctx context.Context) {
	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	r.logger.Info("download poller started", "interval", r.config.PollInterval)
	for {
		r.comp.Poller.Process(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) reloadLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-r.comp.Signals:
			if !ok {
				return
			}
			r.logger.Info("reloading configuration", "signal", sig.String())
			if err := r.comp.Reload(ctx); err != nil {
				r.logger.Error("reload failed, keeping current settings", "error", err)
			}
		}
	}
}
