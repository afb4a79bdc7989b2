package transfer

//go:generate mockgen -source=collaborators.go -destination=mocks/collaborators.go -package=mocks

import (
	"context"

	"github.com/vmunix/sortarr/internal/events"
	"github.com/vmunix/sortarr/internal/history"
	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/notify"
)

// Recognizer identifies the media a file belongs to.
type Recognizer interface {
	Recognize(ctx context.Context, meta media.Meta) (*media.Info, error)
	RecognizeByID(ctx context.Context, kind media.Type, id int64) (*media.Info, error)
}

// EpisodeSource supplies a season's episode catalog.
type EpisodeSource interface {
	SeasonEpisodes(ctx context.Context, mediaID int64, season int) ([]media.EpisodeInfo, error)
}

// DirectoryResolver picks the library directory for recognized media.
type DirectoryResolver interface {
	Resolve(ctx context.Context, info *media.Info, sourcePath, explicitPath, targetStorage string) (*media.TargetDirectory, error)
}

// Storage performs file operations on one or more storage backends.
type Storage interface {
	Claims(storage string) bool
	Stat(ctx context.Context, storage, path string) (*media.FileItem, error)
	ListChildren(ctx context.Context, dir media.FileItem) ([]media.FileItem, error)
	Delete(ctx context.Context, item media.FileItem) error
	GetParent(ctx context.Context, item media.FileItem) (*media.FileItem, error)
	IsBlurayFolder(ctx context.Context, item media.FileItem) bool
	MoveOrCopy(ctx context.Context, item media.FileItem, target media.TargetDirectory, newName string, mode media.TransferMode) (*media.TransferResult, error)
}

// Namer renders the library-relative destination path.
type Namer interface {
	Name(meta media.Meta, info *media.Info, ext string) string
}

// HistoryStore persists transfer attempts.
type HistoryStore interface {
	RecordSuccess(ctx context.Context, r *history.Record) error
	RecordFailure(ctx context.Context, r *history.Record, reason string) error
	Get(ctx context.Context, id int64) (*history.Record, error)
	FindBySource(ctx context.Context, storage, path string) (*history.Record, error)
	FindByMedia(ctx context.Context, kind media.Type, tmdbID int64) (*history.Record, error)
	FindByHash(ctx context.Context, hash string) ([]*history.Record, error)
}

// DownloadHistory looks up what was downloaded for which media.
type DownloadHistory interface {
	GetByHash(ctx context.Context, hash string) (*media.DownloadRecord, error)
	GetByPath(ctx context.Context, path string) (*media.DownloadRecord, error)
	GetByFilePath(ctx context.Context, path string) (*media.DownloadRecord, error)
}

// EventPublisher publishes transfer events.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Notifier delivers user-facing messages.
type Notifier interface {
	Notify(ctx context.Context, msg notify.Message) error
}

// DownloaderGateway talks to the download clients a file came from.
type DownloaderGateway interface {
	RemoveSeedAndFiles(ctx context.Context, hash, downloader string) bool
	MarkTransferred(ctx context.Context, hash, downloader string)
}
