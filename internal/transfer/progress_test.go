package transfer

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_Run(t *testing.T) {
	p := NewProgress(nil)

	p.begin("a.mkv", 3)
	snap := p.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, "a.mkv", snap.Current)

	p.end(true, time.Millisecond)
	assert.False(t, p.finish(false), "tasks still queued")

	p.begin("b.mkv", 2)
	p.end(false, time.Millisecond)
	p.begin("c.mkv", 1)
	p.end(true, time.Millisecond)
	require.True(t, p.finish(true))

	snap = p.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, 3, snap.Processed)
	assert.Equal(t, 1, snap.Failed)
	assert.InDelta(t, 100, snap.Percent, 0.001)
	assert.Equal(t, "organized 3 files, 1 failed", snap.Message)
	assert.False(t, snap.FinishedAt.IsZero())
}

func TestProgress_FinishWaitsForActive(t *testing.T) {
	p := NewProgress(nil)
	p.begin("a.mkv", 1)
	p.begin("b.mkv", 1)
	p.end(true, 0)
	assert.False(t, p.finish(true))
	p.end(true, 0)
	assert.True(t, p.finish(true))
	assert.False(t, p.finish(true), "already closed")
}

func TestProgress_NewRunResets(t *testing.T) {
	p := NewProgress(nil)
	p.begin("a.mkv", 1)
	p.end(false, 0)
	require.True(t, p.finish(true))

	p.begin("b.mkv", 1)
	snap := p.Snapshot()
	assert.Equal(t, 0, snap.Failed)
	assert.Equal(t, 1, snap.Total)
}

func TestProgress_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	p := NewProgress(m)

	p.begin("a.mkv", 1)
	assert.InDelta(t, 1, testutil.ToFloat64(m.active), 0)
	p.end(true, time.Second)
	p.begin("b.mkv", 1)
	p.end(false, time.Second)
	p.setQueueDepth(4)

	assert.InDelta(t, 0, testutil.ToFloat64(m.active), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.tasks.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.tasks.WithLabelValues("failure")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.queueDepth), 0)
}
