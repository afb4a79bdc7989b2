// Package transfer organizes files into the library. Submitted files become
// tasks, tasks are grouped into jobs, and a pool of workers runs each task
// through the organize pipeline. Job-level effects such as the library
// notification and source cleanup fire once per job.
package transfer

import (
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/sortarr/internal/jobs"
	"github.com/vmunix/sortarr/internal/media"
)

// Task is one file's organize operation.
type Task struct {
	ID       string
	File     media.FileItem
	Meta     media.Meta
	Media    *media.Info // nil until recognized
	Episodes []media.EpisodeInfo
	Category media.Category

	TargetDir     *media.TargetDirectory // nil resolves from config
	TargetPath    string                 // explicit library path
	TargetStorage string
	Mode          media.TransferMode // empty uses the target directory's or the configured mode

	Downloader string
	Hash       string
	Download   *media.DownloadRecord // originating download, if known

	Manual     bool  // started by a user rather than the poller
	Background bool  // queued rather than run inline
	Force      bool  // ignore earlier successful transfers
	Scrape     *bool // overrides the target directory's scrape setting

	CreatedAt time.Time
}

// NewTask creates a task for file with a fresh id.
func NewTask(file media.FileItem, meta media.Meta) *Task {
	return &Task{
		ID:        uuid.NewString(),
		File:      file,
		Meta:      meta,
		CreatedAt: time.Now(),
	}
}

// entry is the task as the job manager files it.
func (t *Task) entry() jobs.Entry {
	return jobs.Entry{
		File:       t.File,
		Meta:       t.Meta,
		Media:      t.Media,
		Downloader: t.Downloader,
		Hash:       t.Hash,
	}
}

// season is the season the task belongs to; shows default to 1.
func (t *Task) season() int {
	if t.Meta.Season > 0 {
		return t.Meta.Season
	}
	if t.kind() == media.TypeTV {
		return 1
	}
	return 0
}

func (t *Task) kind() media.Type {
	if t.Media != nil {
		return t.Media.Type
	}
	return t.Meta.Type
}

func (t *Task) title() string {
	if t.Media != nil {
		return t.Media.Title
	}
	return t.Meta.Name
}
