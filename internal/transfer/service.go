package transfer

import (
	"context"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vmunix/sortarr/internal/events"
	"github.com/vmunix/sortarr/internal/jobs"
	"github.com/vmunix/sortarr/internal/media"
)

// Deps are the collaborators a Service works with. Episodes, Downloads,
// Events, Notifier and Gateway may be nil.
type Deps struct {
	Jobs       *jobs.Manager // nil creates one
	Recognizer Recognizer
	Episodes   EpisodeSource
	Resolver   DirectoryResolver
	Storage    Storage   // default operator
	Operators  []Storage // asked before the default
	Namer      Namer
	History    HistoryStore
	Downloads  DownloadHistory
	Events     EventPublisher
	Notifier   Notifier
	Gateway    DownloaderGateway
	Registerer prometheus.Registerer // nil leaves metrics unregistered
	Logger     *slog.Logger
}

// Service is the entry point for organizing files: it accepts single
// tasks and batches, runs the background worker pool and answers queue
// and progress queries.
type Service struct {
	jobs      *jobs.Manager
	queue     *Queue
	pool      *Pool
	orch      *Orchestrator
	operators *Operators
	downloads DownloadHistory
	events    EventPublisher
	settings  *settingsHolder
	metrics   *Metrics
	progress  *Progress
	log       *slog.Logger
}

// New creates a stopped service.
func New(deps Deps, cfg Settings) (*Service, error) {
	c, err := compile(cfg)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	jm := deps.Jobs
	if jm == nil {
		jm = jobs.NewManager()
	}

	settings := &settingsHolder{}
	settings.store(c)
	operators := NewOperators(deps.Storage, deps.Operators...)
	metrics := NewMetrics(deps.Registerer)

	s := &Service{
		jobs:      jm,
		queue:     NewQueue(),
		operators: operators,
		downloads: deps.Downloads,
		events:    deps.Events,
		settings:  settings,
		metrics:   metrics,
		progress:  NewProgress(metrics),
		log:       logger.With("component", "transfer"),
	}
	s.orch = &Orchestrator{
		jobs:       jm,
		recognizer: deps.Recognizer,
		episodes:   deps.Episodes,
		resolver:   deps.Resolver,
		operators:  operators,
		namer:      deps.Namer,
		history:    deps.History,
		events:     deps.Events,
		notifier:   deps.Notifier,
		gateway:    deps.Gateway,
		settings:   settings,
		log:        logger.With("component", "orchestrator"),
		marked:     make(map[string]bool),
		removed:    make(map[string]bool),
	}
	s.pool = NewPool(s.queue, c.Workers, s.orch.Run, s.progress, logger)
	return s, nil
}

// Run starts the worker pool and blocks until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	s.pool.Start(ctx)
	<-ctx.Done()
	s.pool.Stop()
	return nil
}

// Apply swaps in new settings. A changed worker count restarts the pool once
// the running tasks finish.
func (s *Service) Apply(cfg Settings) error {
	c, err := compile(cfg)
	if err != nil {
		return err
	}
	s.settings.store(c)
	s.pool.SetWorkers(c.Workers)
	s.log.Info("transfer settings applied", "workers", c.Workers, "mode", c.Mode, "keep_title", c.KeepTitle)
	return nil
}

// Submit files t with the job manager and queues it for a worker. It
// returns false when the same file is already waiting or running.
func (s *Service) Submit(t *Task) bool {
	if !s.file(t) {
		return false
	}
	s.enqueue(t)
	return true
}

// file registers t as a background task with the job manager.
func (s *Service) file(t *Task) bool {
	s.prepare(t)
	t.Background = true
	if !s.jobs.Add(t.entry()) {
		s.log.Debug("already queued", "path", t.File.Path)
		return false
	}
	return true
}

// enqueue hands a filed task to the workers.
func (s *Service) enqueue(t *Task) {
	s.queue.Push(t)
	s.progress.setQueueDepth(s.queue.Len())

	if s.events != nil {
		e := &events.TransferQueued{
			BaseEvent:  events.NewBaseEvent(events.EventTransferQueued, events.EntityTransfer, 0).ForTask(t.ID),
			Storage:    t.File.Storage,
			SourcePath: t.File.Path,
			Hash:       t.Hash,
		}
		if err := s.events.Publish(context.Background(), e); err != nil {
			s.log.Warn("failed to publish event", "type", e.EventType(), "error", err)
		}
	}
	s.log.Info("queued", "path", t.File.Path, "task", t.ID)
}

// prepare fills the defaults a task needs before it is filed.
func (s *Service) prepare(t *Task) {
	if t.ID == "" {
		fresh := NewTask(t.File, t.Meta)
		t.ID, t.CreatedAt = fresh.ID, fresh.CreatedAt
	}
	if t.File.Storage == "" {
		t.File.Storage = "local"
	}
	if t.Category == "" {
		if t.File.IsDir() {
			t.Category = media.CategoryMedia
		} else {
			t.Category = s.settings.load().classifier.Classify(t.File.Path)
		}
	}
}

// Queue returns a snapshot of every tracked job.
func (s *Service) Queue() []jobs.View {
	return s.jobs.Snapshot()
}

// Remove dequeues file. A queued task for it is skipped when a worker
// picks it up; a running one finishes but no longer counts toward its job.
func (s *Service) Remove(ctx context.Context, file media.FileItem) bool {
	if file.Storage == "" {
		file.Storage = "local"
	}
	rec, ok := s.jobs.Remove(file)
	if !ok {
		return false
	}
	s.log.Info("dequeued", "path", file.Path)

	// The removed record may have been the last one its job waited for.
	probe := &Task{File: rec.File, Meta: rec.Meta, Hash: rec.Hash, Downloader: rec.Downloader}
	for _, e := range s.jobs.ResolvedViews(jobs.Entry{Meta: rec.Meta}) {
		s.orch.settle(ctx, probe, e)
		s.jobs.TryRemoveJob(e)
	}
	s.jobs.TryRemoveJob(jobs.Entry{Meta: rec.Meta})
	return true
}

// Tracks reports whether any task from the torrent is in a job.
func (s *Service) Tracks(hash string) bool {
	return slices.Contains(s.jobs.Hashes(), hash)
}

// Progress returns the background queue's progress.
func (s *Service) Progress() ProgressSnapshot {
	return s.progress.Snapshot()
}

// Workers returns the current worker count.
func (s *Service) Workers() int {
	return s.pool.Workers()
}

// QueueLen returns the number of tasks waiting for a worker.
func (s *Service) QueueLen() int {
	return s.queue.Len()
}
