package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/storage"
	"github.com/vmunix/sortarr/internal/transfer"
)

// Submitter queues finished downloads for organizing.
type Submitter interface {
	SubmitBatch(ctx context.Context, root media.FileItem, opts transfer.BatchOptions) (bool, string)
	Tracks(hash string) bool
}

// Recorder remembers which torrent a download path belongs to.
type Recorder interface {
	Add(ctx context.Context, r *media.DownloadRecord, files []string) error
}

// TorrentSource lists finished torrents.
type TorrentSource interface {
	Completed(ctx context.Context) []*Torrent
}

// Poller hands completed torrents from the download clients to the
// transfer service. One poll runs at a time per process, and the lock file
// keeps a second daemon on the same data directory from polling alongside.
type Poller struct {
	source    TorrentSource
	submitter Submitter
	dirs      []string
	lock      *flock.Flock // nil disables the cross-process lock
	recorder  Recorder
	mu        sync.Mutex
	log       *slog.Logger
}

// NewPoller creates a poller for torrents under dirs. lockPath may be empty.
func NewPoller(source TorrentSource, submitter Submitter, dirs []string, lockPath string, log *slog.Logger) *Poller {
	if log == nil {
		log = slog.Default()
	}
	p := &Poller{
		source:    source,
		submitter: submitter,
		log:       log.With("component", "poller"),
	}
	for _, d := range dirs {
		if d != "" {
			p.dirs = append(p.dirs, filepath.Clean(d))
		}
	}
	if lockPath != "" {
		p.lock = flock.New(lockPath)
	}
	return p
}

// RecordTo makes the poller store a download record for every torrent it
// submits.
func (p *Poller) RecordTo(r Recorder) {
	p.recorder = r
}

// Process submits every completed torrent not yet organized or in flight.
// It returns false without doing anything when another poll holds the lock.
func (p *Poller) Process(ctx context.Context) bool {
	if !p.mu.TryLock() {
		p.log.Debug("poll already running")
		return false
	}
	defer p.mu.Unlock()

	if p.lock != nil {
		locked, err := p.lock.TryLock()
		if err != nil {
			p.log.Warn("acquire poll lock", "path", p.lock.Path(), "error", err)
			return false
		}
		if !locked {
			p.log.Debug("poll lock held by another process", "path", p.lock.Path())
			return false
		}
		defer func() {
			if err := p.lock.Unlock(); err != nil {
				p.log.Warn("release poll lock", "path", p.lock.Path(), "error", err)
			}
		}()
	}

	if len(p.dirs) == 0 {
		p.log.Debug("no download directories monitored")
		return true
	}

	submitted := 0
	for _, t := range p.source.Completed(ctx) {
		if ctx.Err() != nil {
			break
		}
		if t.HasTag(TransferredTag) || p.submitter.Tracks(t.Hash) {
			continue
		}
		item, err := p.item(t)
		if err != nil {
			p.log.Debug("skipping torrent", "hash", t.Hash, "name", t.Name, "reason", err)
			continue
		}
		p.record(ctx, t, item)
		ok, msg := p.submitter.SubmitBatch(ctx, item, transfer.BatchOptions{
			Downloader: t.Downloader,
			Hash:       t.Hash,
			Background: true,
		})
		if !ok && msg != "" {
			p.log.Info("torrent not fully queued", "hash", t.Hash, "name", t.Name, "reason", msg)
		}
		submitted++
	}
	if submitted > 0 {
		p.log.Info("poll finished", "torrents", submitted)
	}
	return true
}

func (p *Poller) record(ctx context.Context, t *Torrent, item media.FileItem) {
	if p.recorder == nil {
		return
	}
	rec := &media.DownloadRecord{Hash: t.Hash, Downloader: t.Downloader, Path: item.Path}
	if err := p.recorder.Add(ctx, rec, nil); err != nil {
		p.log.Warn("record download", "hash", t.Hash, "error", err)
	}
}

// item locates the torrent's content on disk within a monitored directory.
func (p *Poller) item(t *Torrent) (media.FileItem, error) {
	path := t.ContentPath
	if path == "" {
		path = filepath.Join(t.SavePath, t.Name)
	}
	path = filepath.Clean(path)
	if !storage.Within(path, p.dirs) {
		return media.FileItem{}, fmt.Errorf("%s is outside the download directories", path)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return media.FileItem{}, err
	}
	item := media.FileItem{
		Storage: storage.LocalStorage,
		Path:    path,
		Name:    fi.Name(),
		Type:    media.ItemFile,
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}
	if fi.IsDir() {
		item.Type = media.ItemDir
		item.Size = 0
	} else {
		item.Extension = filepath.Ext(path)
	}
	return item, nil
}
