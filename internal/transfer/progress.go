package transfer

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors mirrored from progress reporting.
type Metrics struct {
	active     prometheus.Gauge
	queueDepth prometheus.Gauge
	tasks      *prometheus.CounterVec
	duration   prometheus.Histogram
}

// NewMetrics creates the transfer collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "sortarr",
			Subsystem: "transfer",
			Name:      "active_tasks",
			Help:      "Tasks currently being organized.",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "sortarr",
			Subsystem: "transfer",
			Name:      "queue_depth",
			Help:      "Tasks waiting in the background queue.",
		}),
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortarr",
			Subsystem: "transfer",
			Name:      "tasks_total",
			Help:      "Finished tasks, by result.",
		}, []string{"result"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sortarr",
			Subsystem: "transfer",
			Name:      "task_duration_seconds",
			Help:      "Time spent organizing one task.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 4, 8),
		}),
	}
}

// ProgressSnapshot is a point-in-time copy of a run's progress.
type ProgressSnapshot struct {
	Running    bool      `json:"running"`
	Active     int       `json:"active"`
	Processed  int       `json:"processed"`
	Failed     int       `json:"failed"`
	Total      int       `json:"total"`
	Percent    float64   `json:"percent"`
	Current    string    `json:"current,omitempty"`
	Message    string    `json:"message,omitempty"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Progress aggregates the counters of one run: from the first task that
// starts while idle until the last one finishes with nothing queued.
type Progress struct {
	mu      sync.Mutex
	cur     ProgressSnapshot
	last    ProgressSnapshot // most recent finished run
	metrics *Metrics         // may be nil
}

// NewProgress creates an idle reporter.
func NewProgress(metrics *Metrics) *Progress {
	return &Progress{metrics: metrics}
}

// begin accounts for a task starting. pending counts it plus the tasks
// still waiting behind it. The first task after idle resets the counters.
func (p *Progress) begin(name string, pending int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cur.Active == 0 && p.cur.Processed == 0 {
		p.cur = ProgressSnapshot{Running: true, StartedAt: time.Now()}
	}
	p.cur.Active++
	p.cur.Total = max(p.cur.Total, p.cur.Processed+p.cur.Active+pending-1)
	p.cur.Current = name
	p.cur.Message = fmt.Sprintf("organizing (%d/%d) %s", p.cur.Processed+1, p.cur.Total, name)
	if p.metrics != nil {
		p.metrics.active.Inc()
	}
}

// end accounts for a task finishing.
func (p *Progress) end(ok bool, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cur.Active = max(p.cur.Active-1, 0)
	p.cur.Processed++
	if !ok {
		p.cur.Failed++
	}
	if p.cur.Total > 0 {
		p.cur.Percent = float64(p.cur.Processed) / float64(p.cur.Total) * 100
	}
	if p.metrics != nil {
		p.metrics.active.Dec()
		result := "success"
		if !ok {
			result = "failure"
		}
		p.metrics.tasks.WithLabelValues(result).Inc()
		p.metrics.duration.Observe(elapsed.Seconds())
	}
}

// finish closes the run when nothing is active and the queue is empty.
// It reports whether this call closed it.
func (p *Progress) finish(queueEmpty bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cur.Running || p.cur.Active > 0 || !queueEmpty {
		return false
	}
	done := p.cur
	done.Running = false
	done.Percent = 100
	done.Current = ""
	done.FinishedAt = time.Now()
	done.Message = fmt.Sprintf("organized %d files, %d failed", done.Processed, done.Failed)
	p.last = done
	p.cur = ProgressSnapshot{}
	return true
}

// Snapshot returns the current run, or the last finished one while idle.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur.Running {
		return p.cur
	}
	return p.last
}

func (p *Progress) setQueueDepth(n int) {
	if p.metrics != nil {
		p.metrics.queueDepth.Set(float64(n))
	}
}
