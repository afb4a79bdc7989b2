package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// RunFunc organizes one task.
type RunFunc func(ctx context.Context, t *Task) error

// Pool is a fixed-size set of workers draining a Queue. One task occupies
// one worker for its whole run.
type Pool struct {
	queue       *Queue
	run         RunFunc
	progress    *Progress
	log         *slog.Logger
	pollTimeout time.Duration

	mu        sync.Mutex
	workers   int
	count     atomic.Int32
	runCtx    context.Context // tasks run under this; set while started
	runCancel context.CancelFunc
	retire    context.CancelFunc // ends the current worker generation
	wg        sync.WaitGroup
}

// NewPool creates a stopped pool of n workers.
func NewPool(queue *Queue, n int, run RunFunc, progress *Progress, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}
	p := &Pool{
		queue:       queue,
		run:         run,
		progress:    progress,
		log:         log.With("component", "pool"),
		pollTimeout: DefaultPollTimeout,
		workers:     max(n, 1),
	}
	p.count.Store(int32(p.workers))
	return p
}

// Start launches the workers. Running tasks are cancelled only when ctx is
// done or Stop is called.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.runCtx != nil {
		return
	}
	p.runCtx, p.runCancel = context.WithCancel(ctx)
	p.spawn()
}

// spawn starts a generation of p.workers workers. Caller holds mu.
func (p *Pool) spawn() {
	gen, retire := context.WithCancel(p.runCtx)
	p.retire = retire
	for i := range p.workers {
		p.wg.Add(1)
		go p.worker(gen, p.runCtx, i)
	}
	p.log.Info("workers started", "count", p.workers)
}

// Stop cancels running tasks and waits for the workers to return.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.runCtx == nil {
		return
	}
	p.runCancel()
	p.join()
	p.runCtx, p.runCancel = nil, nil
}

// join retires the current generation and waits for it. Workers finish the
// task they hold before returning. Caller holds mu.
func (p *Pool) join() {
	if p.retire == nil {
		return
	}
	p.retire()
	p.wg.Wait()
	p.retire = nil
}

// SetWorkers changes the worker count. A started pool lets its workers
// finish their current tasks, joins them and restarts with n workers;
// queued tasks are kept.
func (p *Pool) SetWorkers(n int) {
	n = max(n, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	if n == p.workers {
		return
	}
	p.log.Info("resizing worker pool", "from", p.workers, "to", n)
	p.workers = n
	p.count.Store(int32(n))
	if p.runCtx == nil {
		return
	}
	p.join()
	p.spawn()
}

// Workers returns the configured worker count. It does not wait on a resize
// in progress.
func (p *Pool) Workers() int {
	return int(p.count.Load())
}

// worker pops tasks until gen is done and runs them under ctx, so retiring
// a generation never interrupts a task.
func (p *Pool) worker(gen, ctx context.Context, id int) {
	defer p.wg.Done()
	for gen.Err() == nil {
		t, ok := p.queue.Pop(gen, p.pollTimeout)
		if !ok {
			continue
		}
		p.progress.setQueueDepth(p.queue.Len())
		p.progress.begin(t.File.Name, p.queue.Len()+1)
		start := time.Now()
		err := p.safeRun(ctx, t)
		if err != nil {
			p.log.Warn("task failed", "worker", id, "task", t.ID, "path", t.File.Path, "error", err)
		}
		p.progress.end(err == nil, time.Since(start))
		if p.progress.finish(p.queue.Len() == 0) {
			snap := p.progress.Snapshot()
			p.log.Info("queue drained", "processed", snap.Processed, "failed", snap.Failed)
		}
	}
}

// safeRun turns a panicking task into a failed one.
func (p *Pool) safeRun(ctx context.Context, t *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked", "task", t.ID, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("task %s panicked: %v", t.ID, r)
		}
	}()
	return p.run(ctx, t)
}
