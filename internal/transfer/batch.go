package transfer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/vmunix/sortarr/internal/history"
	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/pkg/release"
)

// BatchOptions steer SubmitBatch. Zero values defer to the file name, the
// resolver and the configured settings.
type BatchOptions struct {
	Meta          *media.Meta // skips name parsing
	Media         *media.Info // skips recognition
	TargetDir     *media.TargetDirectory
	TargetPath    string
	TargetStorage string
	Mode          media.TransferMode
	Season        int // overrides the parsed season
	EpisodeFormat release.EpisodeFormat
	MinSizeMB     int // 0 uses the configured minimum
	Downloader    string
	Hash          string
	Force         bool
	Background    bool
	Manual        bool
	Scrape        *bool
}

// candidate is one expanded item; disc folders are transferred whole.
type candidate struct {
	item media.FileItem
	disc bool
}

var blurayStream = regexp.MustCompile(`(?i)BDMV[/\\]STREAM`)

// hiddenMarkers are path fragments of recycle bins, NAS metadata and dot
// files.
var hiddenMarkers = []string{"/@Recycle/", "/#recycle/", "/.", "/@eaDir"}

// SubmitBatch organizes root: a file, a directory tree, or a disc folder.
// In background mode every candidate is queued; otherwise they run in
// order on the caller's goroutine. It reports whether everything
// succeeded, with a short summary of what did not.
func (s *Service) SubmitBatch(ctx context.Context, root media.FileItem, opts BatchOptions) (bool, string) {
	cfg := s.settings.load()
	if root.Storage == "" {
		root.Storage = "local"
	}
	log := s.log.With("root", root.Path)

	op, err := s.operators.Reader(root.Storage)
	if err != nil {
		return false, err.Error()
	}
	item, err := op.Stat(ctx, root.Storage, root.Path)
	if err != nil {
		log.Warn("batch root missing", "error", err)
		return false, fmt.Sprintf("%s: %v", root.Path, ErrSourceMissing)
	}

	var matcher *release.EpisodeMatcher
	if !opts.EpisodeFormat.IsZero() {
		if matcher, err = opts.EpisodeFormat.Compile(); err != nil {
			return false, err.Error()
		}
	}

	candidates, err := s.expand(ctx, op, *item)
	if err != nil {
		return false, fmt.Sprintf("%s: %v", item.Name, err)
	}
	if matcher != nil {
		candidates = filter(candidates, func(c candidate) bool { return c.disc || matcher.Match(c.item.Name) })
	}
	minSize := int64(opts.MinSizeMB)
	if minSize == 0 {
		minSize = int64(cfg.MinSizeMB)
	}
	minSize *= 1024 * 1024
	candidates = filter(candidates, func(c candidate) bool {
		if c.disc {
			return true
		}
		switch cfg.classifier.Classify(c.item.Path) {
		case media.CategorySubtitle, media.CategoryAudio:
			return true
		case media.CategoryMedia:
			return minSize == 0 || c.item.Size > minSize
		default:
			return false
		}
	})
	if len(candidates) == 0 {
		log.Warn("nothing to organize")
		return false, fmt.Sprintf("%s: %v", item.Name, ErrNoCandidates)
	}
	log.Info("organizing batch", "files", len(candidates), "background", opts.Background)

	ok := true
	var errs []string
	var tasks, queued []*Task
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			ok = false
			errs = append(errs, err.Error())
			break
		}
		path := c.item.Path
		if isHidden(path) {
			log.Debug("skipping hidden or recycled item", "path", path)
			continue
		}
		if cfg.excluded(path) {
			log.Debug("skipping excluded item", "path", path)
			continue
		}
		if !opts.Force {
			prev, err := s.orch.history.FindBySource(ctx, c.item.Storage, path)
			switch {
			case err == nil:
				if !prev.Success {
					ok = false
				}
				log.Info("already organized, delete the history record to redo", "path", path, "history_id", prev.ID)
				errs = append(errs, fmt.Sprintf("%s %v", c.item.Name, ErrAlreadyTransferred))
				continue
			case !errors.Is(err, history.ErrNotFound):
				log.Warn("history lookup failed", "path", path, "error", err)
			}
		}

		t, err := s.buildTask(ctx, c, opts, matcher)
		if err != nil {
			ok = false
			errs = append(errs, fmt.Sprintf("%s %v", c.item.Name, err))
			continue
		}

		if opts.Background {
			if s.file(t) {
				queued = append(queued, t)
			}
			continue
		}
		s.prepare(t)
		if !s.jobs.Add(t.entry()) {
			log.Debug("already in a job", "path", path)
			continue
		}
		tasks = append(tasks, t)
	}

	// Every queued sibling is filed before the first one can run, so no job
	// settles while the batch is still adding to it.
	for _, t := range queued {
		s.enqueue(t)
	}
	if len(tasks) > 0 {
		if !s.runForeground(ctx, tasks, &errs) {
			ok = false
		}
	}
	return ok, summarize(errs)
}

// runForeground runs tasks in order with their own progress reporter.
func (s *Service) runForeground(ctx context.Context, tasks []*Task, errs *[]string) bool {
	p := NewProgress(nil)
	ok := true
	for i, t := range tasks {
		if ctx.Err() != nil {
			for _, rest := range tasks[i:] {
				s.jobs.Remove(rest.File)
			}
			*errs = append(*errs, fmt.Sprintf("%d files not organized: %v", len(tasks)-i, ctx.Err()))
			ok = false
			break
		}
		p.begin(t.File.Name, len(tasks)-i)
		start := time.Now()
		err := s.orch.Run(ctx, t)
		p.end(err == nil, time.Since(start))
		if err != nil {
			ok = false
			*errs = append(*errs, fmt.Sprintf("%s %v", t.File.Name, err))
		}
	}
	p.finish(true)
	snap := p.Snapshot()
	s.log.Info("batch finished", "processed", snap.Processed, "failed", snap.Failed)
	return ok
}

func (s *Service) buildTask(ctx context.Context, c candidate, opts BatchOptions, matcher *release.EpisodeMatcher) (*Task, error) {
	dl := s.downloadRecord(ctx, c, opts.Hash)

	var meta media.Meta
	if opts.Meta != nil {
		meta = *opts.Meta
		meta.Episodes = append([]int(nil), opts.Meta.Episodes...)
	} else {
		meta = media.MetaFromRelease(release.Parse(c.item.Name))
	}
	if opts.Season > 0 {
		meta.Season = opts.Season
	}
	if meta.Name == "" && opts.Media == nil {
		return nil, errors.New("no usable name")
	}
	if matcher != nil && !c.disc {
		if begin, end, part, ok := matcher.Split(c.item.Name); ok {
			meta.Episodes = make([]int, 0, end-begin+1)
			for ep := begin; ep <= end; ep++ {
				meta.Episodes = append(meta.Episodes, ep)
			}
			if part != "" {
				meta.Part = part
			}
		} else {
			meta.Episodes = matcher.Shift(meta.Episodes)
		}
	}
	if opts.Media != nil && meta.Name == "" {
		meta.Name = opts.Media.Title
	}

	t := NewTask(c.item, meta)
	t.Media = opts.Media
	t.TargetDir = opts.TargetDir
	t.TargetPath = opts.TargetPath
	t.TargetStorage = opts.TargetStorage
	t.Mode = opts.Mode
	t.Manual = opts.Manual
	t.Background = opts.Background
	t.Force = opts.Force
	t.Scrape = opts.Scrape
	t.Download = dl
	t.Downloader, t.Hash = opts.Downloader, opts.Hash
	if dl != nil && (t.Downloader == "" || t.Hash == "") {
		t.Downloader, t.Hash = dl.Downloader, dl.Hash
	}
	if c.disc {
		t.Category = media.CategoryMedia
	}
	return t, nil
}

// downloadRecord finds the download a candidate came from: by hash, by
// folder for discs, else by the exact file path.
func (s *Service) downloadRecord(ctx context.Context, c candidate, hash string) *media.DownloadRecord {
	if s.downloads == nil {
		return nil
	}
	var (
		rec *media.DownloadRecord
		err error
	)
	switch {
	case hash != "":
		rec, err = s.downloads.GetByHash(ctx, hash)
	case c.disc:
		rec, err = s.downloads.GetByPath(ctx, c.item.Path)
	default:
		rec, err = s.downloads.GetByFilePath(ctx, c.item.Path)
	}
	if err != nil {
		return nil
	}
	return rec
}

// expand lists the items under root worth organizing.
func (s *Service) expand(ctx context.Context, op Storage, root media.FileItem) ([]candidate, error) {
	if blurayStream.MatchString(root.Path) {
		if disc := discRoot(ctx, op, root); disc != nil {
			return []candidate{{item: *disc, disc: true}}, nil
		}
	}
	if !root.IsDir() {
		return []candidate{{item: root}}, nil
	}
	if op.IsBlurayFolder(ctx, root) {
		return []candidate{{item: root, disc: true}}, nil
	}

	children, err := op.ListChildren(ctx, root)
	if err != nil {
		return nil, err
	}
	var out []candidate
	for _, child := range children {
		if !child.IsDir() {
			out = append(out, candidate{item: child})
			continue
		}
		sub, err := s.expand(ctx, op, child)
		if err != nil {
			s.log.Warn("skipping unreadable directory", "path", child.Path, "error", err)
			continue
		}
		out = append(out, sub...)
	}
	return out, nil
}

// discRoot returns the folder holding the BDMV directory above item.
func discRoot(ctx context.Context, op Storage, item media.FileItem) *media.FileItem {
	for p := filepath.Dir(item.Path); p != filepath.Dir(p); p = filepath.Dir(p) {
		if filepath.Base(p) == "BDMV" {
			root, err := op.Stat(ctx, item.Storage, filepath.Dir(p))
			if err != nil {
				return nil
			}
			return root
		}
	}
	return nil
}

func isHidden(path string) bool {
	p := filepath.ToSlash(path)
	for _, m := range hiddenMarkers {
		if strings.Contains(p, m) {
			return true
		}
	}
	return false
}

func filter(in []candidate, keep func(candidate) bool) []candidate {
	out := in[:0]
	for _, c := range in {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// summarize keeps the first two messages and counts the rest.
func summarize(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	msg := strings.Join(errs[:min(len(errs), 2)], ", ")
	if len(errs) > 2 {
		msg += fmt.Sprintf(", and %d file errors", len(errs))
	}
	return msg
}
