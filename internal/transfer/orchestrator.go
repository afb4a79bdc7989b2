package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/vmunix/sortarr/internal/events"
	"github.com/vmunix/sortarr/internal/history"
	"github.com/vmunix/sortarr/internal/jobs"
	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/notify"
	"github.com/vmunix/sortarr/internal/storage"
)

// Orchestrator runs one task through the organize pipeline: recognize,
// resolve the library directory, transfer, record, and settle the job.
type Orchestrator struct {
	jobs       *jobs.Manager
	recognizer Recognizer
	episodes   EpisodeSource
	resolver   DirectoryResolver
	operators  *Operators
	namer      Namer
	history    HistoryStore
	events     EventPublisher
	notifier   Notifier
	gateway    DownloaderGateway
	settings   *settingsHolder
	log        *slog.Logger

	mu      sync.Mutex
	marked  map[string]bool // torrents tagged as transferred
	removed map[string]bool // torrents deleted from their downloader
}

// Run organizes t. Every failure is recorded, published and returned;
// the job bookkeeping is settled either way.
func (o *Orchestrator) Run(ctx context.Context, t *Task) error {
	log := o.log.With("task", t.ID, "path", t.File.Path)
	cfg := o.settings.load()

	if !o.jobs.Has(t.File) {
		log.Info("task was dequeued, skipping")
		return nil
	}
	defer func() { o.jobs.TryRemoveJob(t.entry()) }()
	defer func() {
		if r := recover(); r != nil {
			_ = o.jobs.Transition(t.entry(), jobs.StateFailed)
			o.settle(context.WithoutCancel(ctx), t, t.entry())
			panic(r)
		}
	}()

	if t.Media == nil {
		provisional := t.entry()
		info, err := o.recognize(ctx, t)
		if err != nil {
			return o.failRecognition(ctx, t, err)
		}
		t.Media = info
		o.keepTitle(ctx, t, cfg)
		o.jobs.Promote(provisional, *t.Media)
		log.Info("recognized", "title", t.Media.Title, "tmdb_id", t.Media.ID, "type", t.Media.Type)
	} else {
		o.keepTitle(ctx, t, cfg)
	}

	if err := ctx.Err(); err != nil {
		return o.fail(ctx, t, nil, "", err)
	}
	o.enrich(ctx, t)

	target, err := o.target(ctx, t)
	if err != nil {
		return o.fail(ctx, t, nil, "", err)
	}
	mode := t.Mode
	if mode == "" {
		mode = target.Mode
	}
	if mode == "" {
		mode = cfg.Mode
	}

	if err := o.jobs.Transition(t.entry(), jobs.StateRunning); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			log.Info("task was dequeued, skipping")
			return nil
		}
		return fmt.Errorf("start task: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return o.fail(ctx, t, target, mode, err)
	}

	op, err := o.operators.For(target.Storage, t.File.Storage)
	if err != nil {
		return o.fail(ctx, t, target, mode, err)
	}
	ext := t.File.Extension
	if t.File.IsDir() {
		ext = ""
	}
	name := o.namer.Name(t.Meta, t.Media, ext)
	result, err := op.MoveOrCopy(ctx, t.File, *target, name, mode)
	if err != nil {
		return o.fail(ctx, t, target, mode, fmt.Errorf("%w: %w", ErrStorage, err))
	}

	o.succeed(ctx, t, target, mode, result)
	return nil
}

func (o *Orchestrator) recognize(ctx context.Context, t *Task) (*media.Info, error) {
	if d := t.Download; d != nil && d.MediaID > 0 {
		kind := d.Type
		if kind == media.TypeUnknown {
			kind = t.Meta.Type
		}
		if kind != media.TypeUnknown {
			info, err := o.recognizer.RecognizeByID(ctx, kind, d.MediaID)
			if err == nil {
				return info, nil
			}
			o.log.Warn("download record media lookup failed, matching by name",
				"path", t.File.Path, "tmdb_id", d.MediaID, "error", err)
		}
	}
	return o.recognizer.Recognize(ctx, t.Meta)
}

// keepTitle swaps in the title an earlier transfer of the same media used,
// so a renamed catalog entry does not split the library folder.
func (o *Orchestrator) keepTitle(ctx context.Context, t *Task, cfg *compiled) {
	if !cfg.KeepTitle || t.Media == nil {
		return
	}
	prev, err := o.history.FindByMedia(ctx, t.Media.Type, t.Media.ID)
	if err != nil {
		if !errors.Is(err, history.ErrNotFound) {
			o.log.Warn("keep title lookup failed", "tmdb_id", t.Media.ID, "error", err)
		}
		return
	}
	if prev.Title == "" || prev.Title == t.Media.Title {
		return
	}
	info := *t.Media
	info.Title = prev.Title
	t.Media = &info
}

func (o *Orchestrator) enrich(ctx context.Context, t *Task) {
	if t.Media == nil || t.Media.Type != media.TypeTV {
		return
	}
	season := t.season()
	if len(t.Episodes) == 0 && o.episodes != nil {
		eps, err := o.episodes.SeasonEpisodes(ctx, t.Media.ID, season)
		if err != nil {
			o.log.Warn("season catalog unavailable", "tmdb_id", t.Media.ID, "season", season, "error", err)
		} else {
			t.Episodes = eps
		}
	}
	if len(t.Meta.Episodes) != 1 || t.Meta.EpisodeTitle != "" {
		return
	}
	for _, ep := range t.Episodes {
		if ep.Episode == t.Meta.Episodes[0] && (ep.Season == 0 || ep.Season == season) {
			t.Meta.EpisodeTitle = ep.Name
			return
		}
	}
}

func (o *Orchestrator) target(ctx context.Context, t *Task) (*media.TargetDirectory, error) {
	if t.TargetDir != nil {
		dir := *t.TargetDir
		if t.TargetPath != "" {
			dir.Path = t.TargetPath
		}
		return &dir, nil
	}
	dir, err := o.resolver.Resolve(ctx, t.Media, t.File.Path, t.TargetPath, t.TargetStorage)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTargetResolution, err)
	}
	return dir, nil
}

func (o *Orchestrator) succeed(ctx context.Context, t *Task, target *media.TargetDirectory, mode media.TransferMode, res *media.TransferResult) {
	ctx = context.WithoutCancel(ctx)

	rec := o.record(t, target, mode)
	rec.DestPath = res.Target.Path
	rec.Files = res.NewFiles
	if err := o.history.RecordSuccess(ctx, rec); err != nil {
		o.log.Error("failed to record transfer", "path", t.File.Path, "error", err)
	}

	o.publish(ctx, &events.TransferCompleted{
		BaseEvent:  events.NewBaseEvent(events.EventTransferCompleted, events.EntityTransfer, rec.ID).ForTask(t.ID),
		Category:   string(t.Category),
		SourcePath: t.File.Path,
		TargetPath: res.Target.Path,
		TargetDir:  res.TargetDir.Path,
		Mode:       string(mode),
		MediaType:  string(t.Media.Type),
		TMDBID:     t.Media.ID,
		Title:      t.Media.Title,
		Season:     t.Meta.Season,
		Episodes:   t.Meta.Episodes,
		Size:       res.TotalSize,
		Downloader: t.Downloader,
		Hash:       t.Hash,
	})

	scrape := res.NeedScrape
	if t.Scrape != nil {
		scrape = *t.Scrape
	}
	err := o.jobs.Complete(t.entry(), jobs.Outcome{
		TargetDir: res.TargetDir.Path,
		Storage:   target.Storage,
		Files:     res.NewFiles,
		Mode:      mode,
		Notify:    res.NeedNotify,
		Scrape:    scrape && t.Category == media.CategoryMedia,
	})
	if err != nil {
		o.log.Warn("task finished outside the job", "path", t.File.Path, "error", err)
	}

	o.settle(ctx, t, t.entry())
}

// fail records cause for a task that got past recognition.
func (o *Orchestrator) fail(ctx context.Context, t *Task, target *media.TargetDirectory, mode media.TransferMode, cause error) error {
	ctx = context.WithoutCancel(ctx)

	rec := o.record(t, target, mode)
	if err := o.history.RecordFailure(ctx, rec, cause.Error()); err != nil {
		o.log.Error("failed to record transfer failure", "path", t.File.Path, "error", err)
	}
	o.publishFailed(ctx, t, rec.ID, cause)
	o.notify(ctx, t, notify.Message{
		Title:    fmt.Sprintf("%s failed to organize", t.File.Name),
		Text:     fmt.Sprintf("%v\nTo retry: redo %d", cause, rec.ID),
		Tags:     []string{"warning"},
		Priority: "high",
	})
	if err := o.jobs.Transition(t.entry(), jobs.StateFailed); err != nil && !errors.Is(err, jobs.ErrNotFound) {
		o.log.Warn("failed to mark task failed", "path", t.File.Path, "error", err)
	}

	o.settle(ctx, t, t.entry())
	return cause
}

// failRecognition drops an unidentified task from its job and asks the
// user for the identity.
func (o *Orchestrator) failRecognition(ctx context.Context, t *Task, cause error) error {
	ctx = context.WithoutCancel(ctx)
	entry := t.entry()

	rec := o.record(t, nil, "")
	if err := o.history.RecordFailure(ctx, rec, "media not recognized"); err != nil {
		o.log.Error("failed to record transfer failure", "path", t.File.Path, "error", err)
	}
	o.publishFailed(ctx, t, rec.ID, cause)
	o.notify(ctx, t, notify.Message{
		Title: fmt.Sprintf("%s not recognized", t.File.Name),
		Text: fmt.Sprintf("No match for %q. Reply with the identity to retry: redo %d [tmdbid]|[type]",
			t.Meta.Name, rec.ID),
		Tags: []string{"question"},
	})
	o.jobs.Remove(t.File)

	// Resolved siblings may have been waiting on this task alone.
	for _, e := range o.jobs.ResolvedViews(entry) {
		o.settle(ctx, t, e)
		o.jobs.TryRemoveJob(e)
	}
	o.markDrained(ctx, t.Hash, t.Downloader)
	return fmt.Errorf("%w: %s: %w", ErrRecognition, t.File.Name, cause)
}

// settle fires the job-level effects if e's job just settled, then tags a
// drained torrent.
func (o *Orchestrator) settle(ctx context.Context, t *Task, e jobs.Entry) {
	if c, ok := o.jobs.ClaimCompletion(e); ok {
		o.completeJob(ctx, c, t.Manual && !t.Background, t.Download)
	}
	o.markDrained(ctx, t.Hash, t.Downloader)
}

// completeJob runs once per settled job: one event, one notification, one
// scrape request and the source cleanup.
func (o *Orchestrator) completeJob(ctx context.Context, c jobs.Completion, quiet bool, dl *media.DownloadRecord) {
	info := media.Info{Title: c.Key}
	if c.Media != nil {
		info = *c.Media
	}
	log := o.log.With("job", c.Key, "title", info.Title)
	log.Info("job settled", "files", c.Count, "size", c.Size, "successful", c.Successful)

	o.publish(ctx, &events.JobCompleted{
		BaseEvent: events.NewBaseEvent(events.EventJobCompleted, events.EntityMedia, info.ID),
		MediaType: string(info.Type),
		Title:     info.Title,
		Season:    c.Season,
		Episodes:  c.Episodes,
		FileCount: c.Count,
		TotalSize: c.Size,
		TargetDir: c.TargetDir,
	})

	if c.Notify && !quiet {
		title := info.TitleYear()
		if info.Type == media.TypeTV {
			title += " " + media.SeasonEpisode(max(c.Season, 1), c.Episodes)
		}
		msg := notify.Message{
			Title: title + " added to library",
			Text: fmt.Sprintf("%s, %s\n%s",
				english.Plural(c.Count, "file", ""), humanize.Bytes(uint64(max(c.Size, 0))), c.TargetDir),
			Image: info.PosterURL,
			Tags:  []string{"tv"},
		}
		if dl != nil {
			msg.Audience = dl.Username
		}
		if err := o.sendNotification(ctx, msg); err != nil {
			log.Warn("library notification failed", "error", err)
		}
	}

	if c.Scrape {
		o.publish(ctx, &events.MetadataScrapeRequested{
			BaseEvent: events.NewBaseEvent(events.EventMetadataScrapeRequested, events.EntityMedia, info.ID),
			Storage:   c.Storage,
			TargetDir: c.TargetDir,
			Files:     c.Files,
			MediaType: string(info.Type),
			Title:     info.Title,
		})
	}

	if c.Successful {
		o.cleanupSources(ctx, c.Completed)
	}
}

// cleanupSources removes what moved records left behind: the torrent once
// every file from it made it, or the emptied parent directories.
func (o *Orchestrator) cleanupSources(ctx context.Context, records []jobs.Record) {
	checked := make(map[string]bool)
	for _, r := range records {
		if r.Mode != media.ModeMove {
			continue
		}
		if r.Hash == "" {
			o.removeEmptyParents(ctx, r.File)
			continue
		}
		if o.gateway == nil || checked[r.Hash] {
			continue
		}
		checked[r.Hash] = true
		if !o.torrentSucceeded(ctx, r.Hash) || !o.once(o.removed, r.Hash) {
			continue
		}
		if o.gateway.RemoveSeedAndFiles(ctx, r.Hash, r.Downloader) {
			o.log.Info("removed transferred torrent", "hash", r.Hash, "downloader", r.Downloader)
		}
	}
}

// torrentSucceeded checks the live jobs and the history, which still
// remembers failures of jobs that are gone.
func (o *Orchestrator) torrentSucceeded(ctx context.Context, hash string) bool {
	if !o.jobs.IsTorrentFullySucceeded(hash) {
		return false
	}
	recs, err := o.history.FindByHash(ctx, hash)
	if err != nil {
		o.log.Warn("torrent history lookup failed", "hash", hash, "error", err)
		return false
	}
	for _, r := range recs {
		if !r.Success {
			return false
		}
	}
	return true
}

// removeEmptyParents walks up from file deleting empty directories. It
// stops at the first non-empty directory, at any configured root, and
// never leaves the roots.
func (o *Orchestrator) removeEmptyParents(ctx context.Context, file media.FileItem) {
	op, err := o.operators.Reader(file.Storage)
	if err != nil {
		return
	}
	roots := o.settings.load().Roots

	dir, err := op.GetParent(ctx, file)
	for err == nil && dir != nil && insideRoots(dir.Path, roots) {
		children, lerr := op.ListChildren(ctx, *dir)
		if lerr != nil || len(children) > 0 {
			return
		}
		if derr := op.Delete(ctx, *dir); derr != nil {
			o.log.Warn("failed to remove empty directory", "path", dir.Path, "error", derr)
			return
		}
		o.log.Debug("removed empty directory", "path", dir.Path)
		dir, err = op.GetParent(ctx, *dir)
	}
}

// insideRoots reports whether path lies strictly below a root and is not
// itself a root.
func insideRoots(path string, roots []string) bool {
	inside := false
	for _, r := range roots {
		if r == "" {
			continue
		}
		if storage.ValidatePath(r, path) == nil {
			return false // path is a root or above one
		}
		if storage.Within(path, []string{r}) {
			inside = true
		}
	}
	return inside
}

// markDrained tags the torrent once every task from it is terminal.
func (o *Orchestrator) markDrained(ctx context.Context, hash, downloader string) {
	if hash == "" || o.gateway == nil || !o.jobs.IsTorrentDrained(hash) {
		return
	}
	if o.once(o.marked, hash) {
		o.gateway.MarkTransferred(ctx, hash, downloader)
	}
}

func (o *Orchestrator) once(seen map[string]bool, key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if seen[key] {
		return false
	}
	seen[key] = true
	return true
}

func (o *Orchestrator) record(t *Task, target *media.TargetDirectory, mode media.TransferMode) *history.Record {
	r := &history.Record{
		SrcStorage: t.File.Storage,
		SrcPath:    t.File.Path,
		Mode:       mode,
		Category:   t.Category,
		MediaType:  t.kind(),
		Title:      t.title(),
		Year:       t.Meta.Year,
		Season:     t.Meta.Season,
		Episodes:   t.Meta.Episodes,
		Downloader: t.Downloader,
		Hash:       t.Hash,
	}
	if r.SrcStorage == "" {
		r.SrcStorage = storage.LocalStorage
	}
	if t.Media != nil {
		r.TMDBID = t.Media.ID
		if t.Media.Year != 0 {
			r.Year = t.Media.Year
		}
	}
	r.DestStorage = storage.LocalStorage
	if target != nil && target.Storage != "" {
		r.DestStorage = target.Storage
	}
	return r
}

func (o *Orchestrator) publishFailed(ctx context.Context, t *Task, historyID int64, cause error) {
	e := &events.TransferFailed{
		BaseEvent:  events.NewBaseEvent(events.EventTransferFailed, events.EntityTransfer, historyID).ForTask(t.ID),
		Category:   string(t.Category),
		SourcePath: t.File.Path,
		Title:      t.title(),
		Reason:     cause.Error(),
		Downloader: t.Downloader,
		Hash:       t.Hash,
	}
	if t.Media != nil {
		e.TMDBID = t.Media.ID
	}
	o.publish(ctx, e)
}

func (o *Orchestrator) publish(ctx context.Context, e events.Event) {
	if o.events == nil {
		return
	}
	if err := o.events.Publish(ctx, e); err != nil {
		o.log.Warn("failed to publish event", "type", e.EventType(), "error", err)
	}
}

// notify sends a per-task message to whoever requested the download.
func (o *Orchestrator) notify(ctx context.Context, t *Task, msg notify.Message) {
	if t.Download != nil {
		msg.Audience = t.Download.Username
	}
	if t.Media != nil && msg.Image == "" {
		msg.Image = t.Media.PosterURL
	}
	if err := o.sendNotification(ctx, msg); err != nil {
		o.log.Warn("notification failed", "title", msg.Title, "error", err)
	}
}

func (o *Orchestrator) sendNotification(ctx context.Context, msg notify.Message) error {
	if o.notifier == nil {
		return nil
	}
	return o.notifier.Notify(ctx, msg)
}
