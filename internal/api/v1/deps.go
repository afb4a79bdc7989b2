package v1

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vmunix/sortarr/internal/events"
	"github.com/vmunix/sortarr/internal/history"
	"github.com/vmunix/sortarr/internal/jobs"
	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/transfer"
)

//go:generate mockgen -source=deps.go -destination=mocks/deps.go -package=mocks

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// TransferService is the part of the transfer service the API drives.
type TransferService interface {
	SubmitBatch(ctx context.Context, root media.FileItem, opts transfer.BatchOptions) (bool, string)
	Queue() []jobs.View
	Remove(ctx context.Context, file media.FileItem) bool
	Redo(ctx context.Context, req transfer.RedoRequest) error
	Progress() transfer.ProgressSnapshot
	Workers() int
	QueueLen() int
}

// HistoryStore reads transfer history.
type HistoryStore interface {
	List(ctx context.Context, f history.Filter) ([]*history.Record, int, error)
	Get(ctx context.Context, id int64) (*history.Record, error)
}

// Recognizer resolves an explicit TMDB id.
type Recognizer interface {
	RecognizeByID(ctx context.Context, kind media.Type, id int64) (*media.Info, error)
}

// DownloadPoller checks the download clients for finished torrents.
type DownloadPoller interface {
	Process(ctx context.Context) bool
}

// EventLog reads persisted events.
type EventLog interface {
	Recent(ctx context.Context, limit int) ([]events.RawEvent, error)
	Since(ctx context.Context, t time.Time) ([]events.RawEvent, error)
	ForEntity(ctx context.Context, entityType string, entityID int64) ([]events.RawEvent, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Transfer TransferService
	History  HistoryStore

	// Optional dependencies (nil if not configured)
	Recognizer Recognizer
	Poller     DownloadPoller
	Events     EventLog
	Metrics    prometheus.Gatherer // serves /metrics when set

	APIKey  string // empty disables authentication
	Version string
	Logger  *slog.Logger
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Transfer == nil {
		return errors.New("transfer service is required")
	}
	if d.History == nil {
		return errors.New("history store is required")
	}
	return nil
}
