package jobs

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/sortarr/internal/media"
)

func episodeEntry(path string, eps ...int) Entry {
	return Entry{
		File: media.FileItem{Storage: "local", Path: path, Type: media.ItemFile, Size: 100},
		Meta: media.Meta{Name: "Show", Type: media.TypeTV, Season: 1, Episodes: eps},
	}
}

func resolved(e Entry, id int64) Entry {
	e.Media = &media.Info{ID: id, Type: media.TypeTV, Title: "Show"}
	return e
}

func TestManager_AddRejectsLiveDuplicate(t *testing.T) {
	m := NewManager()
	e := episodeEntry("/dl/Show.S01E01.mkv", 1)

	require.True(t, m.Add(e))
	assert.False(t, m.Add(e), "waiting duplicate must be rejected")

	require.NoError(t, m.Transition(e, StateRunning))
	assert.False(t, m.Add(e), "running duplicate must be rejected")
	assert.Equal(t, 1, m.Total())
}

func TestManager_AddReplacesFinishedRecord(t *testing.T) {
	m := NewManager()
	e := episodeEntry("/dl/Show.S01E01.mkv", 1)

	require.True(t, m.Add(e))
	require.NoError(t, m.Transition(e, StateFailed))

	require.True(t, m.Add(e))
	assert.Equal(t, 1, m.Total())
	views := m.Snapshot()
	require.Len(t, views, 1)
	assert.Equal(t, StateWaiting, views[0].Records[0].State)
	assert.Equal(t, []int{1}, views[0].Episodes)
}

func TestManager_TransitionRules(t *testing.T) {
	m := NewManager()
	e := episodeEntry("/dl/a.mkv", 1)
	require.True(t, m.Add(e))

	err := m.Transition(e, StateCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)

	err = m.Complete(e, Outcome{TargetDir: "/lib"})
	require.ErrorIs(t, err, ErrInvalidTransition, "waiting cannot complete without running")

	require.NoError(t, m.Transition(e, StateRunning))
	require.NoError(t, m.Complete(e, Outcome{TargetDir: "/lib", Files: []string{"/lib/a.mkv"}}))

	err = m.Transition(e, StateFailed)
	require.ErrorIs(t, err, ErrInvalidTransition, "completed is terminal")

	err = m.Transition(episodeEntry("/dl/missing.mkv"), StateRunning)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestManager_EpisodeUnion(t *testing.T) {
	m := NewManager()
	e1 := episodeEntry("/dl/e1.mkv", 1)
	e2 := episodeEntry("/dl/e2.mkv", 2, 3)
	sub := episodeEntry("/dl/e1.srt", 1)

	require.True(t, m.Add(e1))
	require.True(t, m.Add(e2))
	require.True(t, m.Add(sub))
	assert.Equal(t, []int{1, 2, 3}, m.SeasonEpisodes(e1))

	// A failed subtitle does not take away the episode its video delivers.
	require.NoError(t, m.Transition(sub, StateFailed))
	assert.Equal(t, []int{1, 2, 3}, m.SeasonEpisodes(e1))

	require.NoError(t, m.Transition(e2, StateFailed))
	assert.Equal(t, []int{1}, m.SeasonEpisodes(e1))

	_, ok := m.Remove(e1.File)
	require.True(t, ok)
	assert.Empty(t, m.SeasonEpisodes(e1))
}

func TestManager_PromoteKeepsState(t *testing.T) {
	m := NewManager()
	e := episodeEntry("/dl/e1.mkv", 1)
	require.True(t, m.Add(e))
	require.NoError(t, m.Transition(e, StateRunning))

	require.True(t, m.Promote(e, media.Info{ID: 1399, Type: media.TypeTV, Title: "Show"}))

	views := m.Snapshot()
	require.Len(t, views, 1, "provisional job emptied and removed")
	assert.True(t, views[0].Resolved)
	assert.Equal(t, int64(1399), views[0].MediaID)
	assert.Equal(t, StateRunning, views[0].Records[0].State)
	assert.Equal(t, []int{1}, views[0].Episodes)

	// The resolved entry can now be finished under its new key.
	r := resolved(e, 1399)
	require.NoError(t, m.Complete(r, Outcome{TargetDir: "/lib/Show"}))
	assert.Equal(t, 1, m.CompletedCount(r))

	assert.False(t, m.Promote(r, media.Info{ID: 1399}), "already resolved")
	assert.False(t, m.Promote(episodeEntry("/dl/other.mkv"), media.Info{ID: 1}), "not tracked")
}

func TestManager_PromoteMergesIntoExistingJob(t *testing.T) {
	m := NewManager()
	a := resolved(episodeEntry("/dl/e1.mkv", 1), 7)
	b := episodeEntry("/dl/e2.mkv", 2)
	require.True(t, m.Add(a))
	require.True(t, m.Add(b))
	require.Len(t, m.Snapshot(), 2)

	require.True(t, m.Promote(b, media.Info{ID: 7, Title: "Show"}))

	views := m.Snapshot()
	require.Len(t, views, 1)
	assert.Len(t, views[0].Records, 2)
	assert.Equal(t, []int{1, 2}, views[0].Episodes)
}

func TestManager_SettledWithSuccess(t *testing.T) {
	m := NewManager()
	a := resolved(episodeEntry("/dl/e1.mkv", 1), 7)
	b := resolved(episodeEntry("/dl/e2.mkv", 2), 7)
	require.True(t, m.Add(a))
	require.True(t, m.Add(b))

	require.NoError(t, m.Transition(a, StateRunning))
	require.NoError(t, m.Complete(a, Outcome{TargetDir: "/lib"}))
	assert.False(t, m.IsSettledWithSuccess(a), "b still waiting")
	assert.False(t, m.IsDrained(a))

	require.NoError(t, m.Transition(b, StateFailed))
	assert.True(t, m.IsDrained(a))
	assert.True(t, m.IsSettledWithSuccess(a))
	assert.False(t, m.IsSuccessful(a), "partial failure")
}

func TestManager_SettledRequiresACompletion(t *testing.T) {
	m := NewManager()
	a := resolved(episodeEntry("/dl/e1.mkv", 1), 7)
	require.True(t, m.Add(a))
	require.NoError(t, m.Transition(a, StateFailed))

	assert.True(t, m.IsDrained(a))
	assert.False(t, m.IsSettledWithSuccess(a))
}

func TestManager_SettledWaitsForProvisionalView(t *testing.T) {
	m := NewManager()
	a := resolved(episodeEntry("/dl/e1.mkv", 1), 7)
	pending := episodeEntry("/dl/e2.mkv", 2) // same name and season, not yet recognized
	require.True(t, m.Add(a))
	require.True(t, m.Add(pending))

	require.NoError(t, m.Transition(a, StateRunning))
	require.NoError(t, m.Complete(a, Outcome{TargetDir: "/lib"}))

	assert.False(t, m.IsSettledWithSuccess(a))
	assert.False(t, m.TryRemoveJob(a))

	require.NoError(t, m.Transition(pending, StateFailed))
	assert.True(t, m.IsSettledWithSuccess(a))
	assert.True(t, m.TryRemoveJob(a))
	assert.Empty(t, m.Snapshot())
}

func TestManager_TorrentPredicates(t *testing.T) {
	m := NewManager()
	a := resolved(episodeEntry("/dl/pack/e1.mkv", 1), 7)
	a.Hash = "abc"
	other := resolved(episodeEntry("/dl/pack/extra.mkv"), 8) // different job, same torrent
	other.Meta.Name = "Extra"
	other.Hash = "abc"
	require.True(t, m.Add(a))
	require.True(t, m.Add(other))

	require.NoError(t, m.Transition(a, StateRunning))
	require.NoError(t, m.Complete(a, Outcome{TargetDir: "/lib"}))
	assert.False(t, m.IsTorrentDrained("abc"))

	require.NoError(t, m.Transition(other, StateFailed))
	assert.True(t, m.IsTorrentDrained("abc"))
	assert.False(t, m.IsTorrentFullySucceeded("abc"))

	assert.False(t, m.IsTorrentDrained(""), "no hash, nothing to clean")
	assert.Equal(t, []string{"abc"}, m.Hashes())
}

func TestManager_CompletedAggregates(t *testing.T) {
	m := NewManager()
	a := resolved(episodeEntry("/dl/e1.mkv", 1), 7)
	b := resolved(episodeEntry("/dl/e2.mkv", 2), 7)
	b.File.Size = 250
	for _, e := range []Entry{a, b} {
		require.True(t, m.Add(e))
		require.NoError(t, m.Transition(e, StateRunning))
		require.NoError(t, m.Complete(e, Outcome{TargetDir: "/lib/Show/Season 01", Files: []string{e.File.Path}}))
	}

	assert.Equal(t, 2, m.CompletedCount(a))
	assert.Equal(t, int64(350), m.CompletedSize(a))
	assert.Len(t, m.CompletedRecords(a), 2)
	assert.Len(t, m.TakeNewFiles("/lib/Show/Season 01"), 2)
	assert.Empty(t, m.TakeNewFiles("/lib/Show/Season 01"), "take empties the register")
}

func TestManager_Remove(t *testing.T) {
	m := NewManager()
	e := episodeEntry("/dl/e1.mkv", 1)
	require.True(t, m.Add(e))
	assert.True(t, m.Has(e.File))

	rec, ok := m.Remove(e.File)
	require.True(t, ok)
	assert.Equal(t, e.File.Path, rec.File.Path)
	assert.False(t, m.Has(e.File))
	assert.Empty(t, m.Snapshot())

	_, ok = m.Remove(e.File)
	assert.False(t, ok)
}

func TestManager_SnapshotIsACopy(t *testing.T) {
	m := NewManager()
	e := episodeEntry("/dl/e1.mkv", 1)
	require.True(t, m.Add(e))

	views := m.Snapshot()
	views[0].Records[0].State = StateCompleted
	views[0].Records[0].Meta.Episodes[0] = 99

	again := m.Snapshot()
	assert.Equal(t, StateWaiting, again[0].Records[0].State)
	assert.Equal(t, []int{1}, again[0].Records[0].Meta.Episodes)
}

func TestManager_Concurrent(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := resolved(episodeEntry(fmt.Sprintf("/dl/e%02d.mkv", i), i+1), 7)
			if !m.Add(e) {
				return
			}
			_ = m.Transition(e, StateRunning)
			_ = m.Complete(e, Outcome{TargetDir: "/lib", Files: []string{e.File.Path}})
			_ = m.IsSettledWithSuccess(e)
		}()
	}
	wg.Wait()

	e := resolved(episodeEntry("/dl/e01.mkv"), 7)
	assert.Equal(t, 50, m.CompletedCount(e))
	assert.True(t, m.IsSuccessful(e))
	assert.Len(t, m.SeasonEpisodes(e), 50)
}

func TestState(t *testing.T) {
	assert.True(t, StateWaiting.CanTransitionTo(StateRunning))
	assert.True(t, StateWaiting.CanTransitionTo(StateFailed))
	assert.False(t, StateWaiting.CanTransitionTo(StateCompleted))
	assert.True(t, StateRunning.CanTransitionTo(StateCompleted))
	assert.False(t, StateCompleted.CanTransitionTo(StateRunning))
	assert.True(t, StateFailed.IsTerminal())
	assert.False(t, StateRunning.IsTerminal())
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "name:Show/s1", Provisional("Show", 1).String())
	assert.Equal(t, "media:1399/s2", Resolved(1399, 2).String())
}

func TestManager_ClaimCompletionOnce(t *testing.T) {
	m := NewManager()
	a := resolved(episodeEntry("/dl/e1.mkv", 1), 7)
	b := resolved(episodeEntry("/dl/e2.mkv", 2), 7)
	b.File.Size = 250
	require.True(t, m.Add(a))
	require.True(t, m.Add(b))

	require.NoError(t, m.Transition(a, StateRunning))
	require.NoError(t, m.Complete(a, Outcome{TargetDir: "/lib/Show/Season 01", Files: []string{"/lib/a.mkv"}, Notify: true}))
	_, ok := m.ClaimCompletion(a)
	assert.False(t, ok, "b still waiting")

	require.NoError(t, m.Transition(b, StateRunning))
	require.NoError(t, m.Complete(b, Outcome{TargetDir: "/lib/Show/Season 01", Files: []string{"/lib/b.mkv"}, Scrape: true}))

	c, ok := m.ClaimCompletion(b)
	require.True(t, ok)
	assert.Equal(t, "media:7/s1", c.Key)
	assert.Equal(t, "/lib/Show/Season 01", c.TargetDir)
	assert.Equal(t, []string{"/lib/a.mkv", "/lib/b.mkv"}, c.Files)
	assert.Equal(t, 2, c.Count)
	assert.Equal(t, int64(350), c.Size)
	assert.Equal(t, []int{1, 2}, c.Episodes)
	assert.True(t, c.Notify)
	assert.True(t, c.Scrape)
	assert.True(t, c.Successful)
	require.NotNil(t, c.Media)
	assert.Equal(t, int64(7), c.Media.ID)

	_, ok = m.ClaimCompletion(a)
	assert.False(t, ok, "already claimed")

	// A new record joining the job re-arms the claim once it settles.
	e3 := resolved(episodeEntry("/dl/e3.mkv", 3), 7)
	require.True(t, m.Add(e3))
	_, ok = m.ClaimCompletion(a)
	assert.False(t, ok)
	require.NoError(t, m.Transition(e3, StateFailed))
	c, ok = m.ClaimCompletion(e3)
	require.True(t, ok)
	assert.False(t, c.Successful)
	assert.Empty(t, c.Files, "register was already taken")
}

func TestManager_ClaimCompletionConcurrent(t *testing.T) {
	m := NewManager()
	var entries []Entry
	for i := range 20 {
		e := resolved(episodeEntry(fmt.Sprintf("/dl/e%02d.mkv", i), i+1), 7)
		require.True(t, m.Add(e))
		entries = append(entries, e)
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		claims int
	)
	for _, e := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Transition(e, StateRunning)
			_ = m.Complete(e, Outcome{TargetDir: "/lib", Files: []string{e.File.Path}})
			if _, ok := m.ClaimCompletion(e); ok {
				mu.Lock()
				claims++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, claims)
}

func TestManager_ResolvedViews(t *testing.T) {
	m := NewManager()
	a := resolved(episodeEntry("/dl/e1.mkv", 1), 7)
	pending := episodeEntry("/dl/e2.mkv", 2)
	other := resolved(episodeEntry("/dl/x.mkv", 1), 8)
	other.Meta.Name = "Other"
	for _, e := range []Entry{a, pending, other} {
		require.True(t, m.Add(e))
	}
	require.NoError(t, m.Transition(a, StateRunning))
	require.NoError(t, m.Complete(a, Outcome{TargetDir: "/lib", Storage: "local", Mode: media.ModeMove}))

	views := m.ResolvedViews(pending)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Media)
	assert.Equal(t, int64(7), views[0].Media.ID)

	// The unresolved sibling leaving settles the resolved job.
	_, ok := m.ClaimCompletion(views[0])
	assert.False(t, ok)
	_, removed := m.Remove(pending.File)
	require.True(t, removed)
	c, ok := m.ClaimCompletion(views[0])
	require.True(t, ok)
	assert.Equal(t, "local", c.Storage)
	require.Len(t, c.Completed, 1)
	assert.Equal(t, media.ModeMove, c.Completed[0].Mode)
}

// permutations returns every ordering of 0..n-1.
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, rest := range permutations(n - 1) {
		for i := 0; i <= len(rest); i++ {
			p := make([]int, 0, n)
			p = append(p, rest[:i]...)
			p = append(p, n-1)
			p = append(p, rest[i:]...)
			out = append(out, p)
		}
	}
	return out
}

func TestManager_FinishOrderDoesNotMatter(t *testing.T) {
	type result struct {
		drained, successful, settled bool
		episodes                     []int
		claims, count                int
		size                         int64
		files                        []string
		claimSuccessful              bool
	}

	finish := func(t *testing.T, order []int) result {
		m := NewManager()
		a := resolved(episodeEntry("/dl/e1.mkv", 1), 7)
		b := resolved(episodeEntry("/dl/e1-e2.mkv", 1, 2), 7) // overlaps a
		c := episodeEntry("/dl/e3.mkv", 3)                      // recognized while it runs
		c.File.Size = 300
		d := episodeEntry("/dl/e4.mkv", 4) // never recognized
		for _, e := range []Entry{a, b, c, d} {
			require.True(t, m.Add(e))
		}

		steps := []func(){
			func() {
				require.NoError(t, m.Transition(a, StateRunning))
				require.NoError(t, m.Complete(a, Outcome{TargetDir: "/lib/Show", Files: []string{"/lib/Show/e1.mkv"}, Notify: true}))
			},
			func() { require.NoError(t, m.Transition(b, StateFailed)) },
			func() {
				require.NoError(t, m.Transition(c, StateRunning))
				require.True(t, m.Promote(c, media.Info{ID: 7, Type: media.TypeTV, Title: "Show"}))
				rc := resolved(c, 7)
				require.NoError(t, m.Complete(rc, Outcome{TargetDir: "/lib/Show", Files: []string{"/lib/Show/e3.mkv"}}))
			},
			func() { require.NoError(t, m.Transition(d, StateFailed)) },
		}

		var r result
		for _, i := range order {
			steps[i]()
			if got, ok := m.ClaimCompletion(a); ok {
				r.claims++
				r.count, r.size, r.claimSuccessful = got.Count, got.Size, got.Successful
				r.files = append([]string(nil), got.Files...)
				slices.Sort(r.files)
			}
		}
		r.drained = m.IsDrained(a)
		r.successful = m.IsSuccessful(a)
		r.settled = m.IsSettledWithSuccess(a)
		r.episodes = m.SeasonEpisodes(a)
		return r
	}

	want := result{
		drained:  true,
		settled:  true,
		episodes: []int{1, 3},
		claims:   1,
		count:    2,
		size:     400,
		files:    []string{"/lib/Show/e1.mkv", "/lib/Show/e3.mkv"},
	}
	orders := permutations(4)
	require.Len(t, orders, 24)
	for _, order := range orders {
		t.Run(fmt.Sprint(order), func(t *testing.T) {
			assert.Equal(t, want, finish(t, order))
		})
	}
}
