package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/sortarr/internal/events"
)

// Pruner deletes persisted events older than a cutoff.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// RetentionHandler trims the event log on a fixed schedule.
type RetentionHandler struct {
	*BaseHandler
	log      Pruner
	keep     time.Duration
	interval time.Duration
}

// NewRetentionHandler prunes events older than keep, once at start and
// then every interval. A non-positive keep disables pruning.
func NewRetentionHandler(bus *events.Bus, log Pruner, keep, interval time.Duration, logger *slog.Logger) *RetentionHandler {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &RetentionHandler{
		BaseHandler: NewBaseHandler(bus, "retention", logger),
		log:         log,
		keep:        keep,
		interval:    interval,
	}
}

// Start blocks until ctx ends.
func (h *RetentionHandler) Start(ctx context.Context) error {
	if h.keep <= 0 || h.log == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	h.prune(ctx)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.prune(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *RetentionHandler) prune(ctx context.Context) {
	n, err := h.log.Prune(ctx, h.keep)
	if err != nil {
		h.Logger().Warn("prune event log", "error", err)
		return
	}
	if n > 0 {
		h.Logger().Info("pruned event log", "deleted", n, "older_than", h.keep)
	}
}
