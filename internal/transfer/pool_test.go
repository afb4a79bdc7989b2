package transfer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsQueuedTasks(t *testing.T) {
	q := NewQueue()
	var mu sync.Mutex
	var seen []string
	run := func(_ context.Context, task *Task) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, task.File.Path)
		return nil
	}
	progress := NewProgress(nil)
	p := NewPool(q, 1, run, progress, nil)
	p.pollTimeout = 10 * time.Millisecond

	for _, path := range []string{"/a.mkv", "/b.mkv", "/c.mkv"} {
		q.Push(fileTask(path))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"/a.mkv", "/b.mkv", "/c.mkv"}, seen)
	require.Eventually(t, func() bool { return !progress.Snapshot().Running && progress.Snapshot().Processed == 3 },
		2*time.Second, 5*time.Millisecond)
}

func TestPool_SurvivesPanicsAndErrors(t *testing.T) {
	q := NewQueue()
	var done atomic.Int32
	run := func(_ context.Context, task *Task) error {
		defer done.Add(1)
		switch task.File.Path {
		case "/panic.mkv":
			panic("boom")
		case "/error.mkv":
			return errors.New("disk full")
		}
		return nil
	}
	progress := NewProgress(nil)
	p := NewPool(q, 1, run, progress, nil)
	p.pollTimeout = 10 * time.Millisecond

	q.Push(fileTask("/panic.mkv"))
	q.Push(fileTask("/error.mkv"))
	q.Push(fileTask("/ok.mkv"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	require.Eventually(t, func() bool { return done.Load() == 3 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return !progress.Snapshot().Running && progress.Snapshot().Processed == 3 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, progress.Snapshot().Failed)
}

func TestPool_SetWorkersKeepsQueue(t *testing.T) {
	q := NewQueue()
	release := make(chan struct{})
	var done atomic.Int32
	run := func(ctx context.Context, _ *Task) error {
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		}
		done.Add(1)
		return nil
	}
	p := NewPool(q, 1, run, NewProgress(nil), nil)
	p.pollTimeout = 10 * time.Millisecond

	// Resizing a stopped pool only records the count.
	p.SetWorkers(0)
	assert.Equal(t, 1, p.Workers())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	p.SetWorkers(3)
	assert.Equal(t, 3, p.Workers())

	for _, path := range []string{"/a.mkv", "/b.mkv", "/c.mkv", "/d.mkv"} {
		q.Push(fileTask(path))
	}
	close(release)
	require.Eventually(t, func() bool { return done.Load() == 4 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, q.Len())
}

func TestPool_StopJoinsWorkers(t *testing.T) {
	q := NewQueue()
	started := make(chan struct{})
	run := func(ctx context.Context, _ *Task) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}
	p := NewPool(q, 1, run, NewProgress(nil), nil)
	p.pollTimeout = 10 * time.Millisecond
	p.Start(context.Background())
	q.Push(fileTask("/slow.mkv"))
	<-started

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestPool_SetWorkersLetsRunningTaskFinish(t *testing.T) {
	q := NewQueue()
	started := make(chan struct{})
	release := make(chan struct{})
	result := make(chan error, 1)
	run := func(ctx context.Context, _ *Task) error {
		close(started)
		select {
		case <-release:
			result <- ctx.Err()
		case <-ctx.Done():
			result <- ctx.Err()
		}
		return nil
	}
	p := NewPool(q, 1, run, NewProgress(nil), nil)
	p.pollTimeout = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	q.Push(fileTask("/big.mkv"))
	<-started

	resized := make(chan struct{})
	go func() {
		p.SetWorkers(2)
		close(resized)
	}()

	// The resize waits for the running task instead of cancelling it.
	select {
	case err := <-result:
		t.Fatalf("task ended during resize: %v", err)
	case <-resized:
		t.Fatal("SetWorkers returned before the running task finished")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Equal(t, 2, p.Workers())

	close(release)
	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("task did not finish")
	}
	select {
	case <-resized:
	case <-time.After(2 * time.Second):
		t.Fatal("SetWorkers did not return")
	}
}
