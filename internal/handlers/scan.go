package handlers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vmunix/sortarr/internal/events"
	"github.com/vmunix/sortarr/internal/storage"
)

// Scanner refreshes one directory of a media server library.
type Scanner interface {
	ScanDir(ctx context.Context, dir string) error
}

// LibraryScanHandler asks the media server to rescan a library directory
// whenever a finished job requests a metadata scrape.
type LibraryScanHandler struct {
	*BaseHandler
	scanner Scanner

	// Per-directory lock; a burst of requests for one directory scans once.
	scanning sync.Map // map[string]struct{}
	wg       sync.WaitGroup
}

// NewLibraryScanHandler creates the handler.
func NewLibraryScanHandler(bus *events.Bus, scanner Scanner, logger *slog.Logger) *LibraryScanHandler {
	return &LibraryScanHandler{
		BaseHandler: NewBaseHandler(bus, "library-scan", logger),
		scanner:     scanner,
	}
}

// Start processes scrape requests until ctx ends or the bus closes. Scans
// still running when it returns are waited for.
func (h *LibraryScanHandler) Start(ctx context.Context) error {
	requests := h.Subscribe(ctx, 50, events.EventMetadataScrapeRequested)
	defer h.wg.Wait()

	for {
		select {
		case e, ok := <-requests:
			if !ok {
				return ctx.Err()
			}
			req, ok := e.(*events.MetadataScrapeRequested)
			if !ok {
				continue
			}
			h.wg.Add(1)
			go func() {
				defer h.wg.Done()
				h.scan(ctx, req)
			}()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *LibraryScanHandler) scan(ctx context.Context, e *events.MetadataScrapeRequested) {
	if e.Storage != "" && e.Storage != storage.LocalStorage {
		h.Logger().Debug("skipping scan of non-local library", "storage", e.Storage, "dir", e.TargetDir)
		return
	}
	if e.TargetDir == "" {
		return
	}
	if _, busy := h.scanning.LoadOrStore(e.TargetDir, struct{}{}); busy {
		h.Logger().Debug("scan already in progress", "dir", e.TargetDir)
		return
	}
	defer h.scanning.Delete(e.TargetDir)

	if err := h.scanner.ScanDir(ctx, e.TargetDir); err != nil {
		h.Logger().Warn("library scan failed", "dir", e.TargetDir, "title", e.Title, "error", err)
		return
	}
	h.Logger().Info("library scan requested", "dir", e.TargetDir, "title", e.Title, "files", len(e.Files))
}
