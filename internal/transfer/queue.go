package transfer

import (
	"context"
	"sync"
	"time"
)

// DefaultPollTimeout bounds how long a worker waits for the next task
// before checking for shutdown again.
const DefaultPollTimeout = 15 * time.Second

// Queue is an unbounded FIFO of tasks. Push never blocks or rejects;
// duplicate detection happens in the job manager before a task is queued.
type Queue struct {
	mu     sync.Mutex
	items  []*Task
	signal chan struct{} // closed and replaced on every push
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{signal: make(chan struct{})}
}

// Push appends t and wakes any waiting Pop.
func (q *Queue) Push(t *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, t)
	close(q.signal)
	q.signal = make(chan struct{})
}

// Pop removes and returns the oldest task. It waits up to timeout for one
// to arrive and reports false on timeout or when ctx is done.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*Task, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			t := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return t, true
		}
		wait := q.signal
		q.mu.Unlock()

		select {
		case <-wait:
		case <-timer.C:
			return nil, false
		case <-ctx.Done():
			return nil, false
		}
	}
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
