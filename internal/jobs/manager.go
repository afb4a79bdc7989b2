package jobs

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vmunix/sortarr/internal/media"
)

// Manager tracks every in-flight job. All methods are safe for concurrent
// use; each holds the manager lock for its whole duration so compound
// questions ("is this job done?") see a consistent picture.
type Manager struct {
	mu   sync.Mutex
	jobs map[Key]*job
	seq  uint64

	register *Register
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		jobs:     make(map[Key]*job),
		register: NewRegister(),
	}
}

// Add files the entry under its current key as waiting. It returns false
// without changing anything if the same file is already waiting or running
// in that job. A finished record for the same file is replaced.
func (m *Manager) Add(e Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := e.Key()
	j := m.jobs[key]
	if j == nil {
		m.seq++
		j = newJob(key, m.seq, e.Media)
		m.jobs[key] = j
	}
	if i := j.find(e.File); i >= 0 {
		if !j.records[i].State.IsTerminal() {
			return false
		}
		j.detach(i)
	}
	j.attach(&Record{
		File:       e.File,
		Meta:       e.Meta,
		Downloader: e.Downloader,
		Hash:       e.Hash,
		State:      StateWaiting,
	})
	j.claimed = false
	return true
}

// Transition moves the entry's record to running or failed. Failing a
// record withdraws its episodes from the job's episode set.
func (m *Manager) Transition(e Entry, to State) error {
	if to == StateCompleted {
		return fmt.Errorf("%w: use Complete to finish a task", ErrInvalidTransition)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transition(e, to)
}

// Complete marks the entry's record completed and remembers the library
// files it produced under their target directory, for the job-level
// notification.
func (m *Manager) Complete(e Entry, out Outcome) error {
	m.mu.Lock()
	err := m.transition(e, StateCompleted)
	if err == nil {
		j, i := m.locate(e)
		r := j.records[i]
		r.TargetDir, r.Mode = out.TargetDir, out.Mode
		r.Notify, r.Scrape = out.Notify, out.Scrape
		j.storage = out.Storage
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.register.Append(out.TargetDir, out.Files...)
	return nil
}

func (m *Manager) transition(e Entry, to State) error {
	j, i := m.locate(e)
	if j == nil {
		return fmt.Errorf("%s: %w", e.File.Path, ErrNotFound)
	}
	r := j.records[i]
	if !r.State.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.State, to)
	}
	if to == StateFailed {
		j.uncount(r)
	}
	r.State = to
	return nil
}

// TakeNewFiles returns and forgets the files registered under targetDir.
func (m *Manager) TakeNewFiles(targetDir string) []string {
	return m.register.Take(targetDir)
}

// Promote moves an unresolved entry's record from its provisional job to
// the job of the given identity, keeping its state. It is a no-op for an
// entry that is already resolved or not tracked.
func (m *Manager) Promote(e Entry, info media.Info) bool {
	if e.Media != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	from := Provisional(e.Meta.Name, e.Meta.Season)
	src := m.jobs[from]
	if src == nil {
		return false
	}
	i := src.find(e.File)
	if i < 0 {
		return false
	}
	r := src.detach(i)
	if len(src.records) == 0 {
		delete(m.jobs, from)
	}

	to := Resolved(info.ID, e.Meta.Season)
	dst := m.jobs[to]
	if dst == nil {
		m.seq++
		dst = newJob(to, m.seq, &info)
		m.jobs[to] = dst
	}
	if k := dst.find(e.File); k >= 0 {
		dst.detach(k)
	}
	dst.attach(r)
	dst.claimed = false
	return true
}

// Remove drops the record for file from whichever job holds it, deleting
// the job if it becomes empty.
func (m *Manager) Remove(file media.FileItem) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, j := range m.jobs {
		if i := j.find(file); i >= 0 {
			r := j.detach(i)
			if len(j.records) == 0 {
				delete(m.jobs, key)
			}
			return *r, true
		}
	}
	return Record{}, false
}

// TryRemoveJob deletes the entry's jobs once both the provisional and the
// resolved view are drained. It reports whether anything was deleted.
func (m *Manager) TryRemoveJob(e Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, j := range m.views(e) {
		if !j.drained() {
			return false
		}
	}
	removed := false
	for _, key := range e.keys() {
		if _, ok := m.jobs[key]; ok {
			delete(m.jobs, key)
			removed = true
		}
	}
	return removed
}

// IsDrained reports whether every record in both views is terminal.
func (m *Manager) IsDrained(e Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, j := range m.views(e) {
		if !j.drained() {
			return false
		}
	}
	return true
}

// IsSuccessful reports whether every record in both views completed.
func (m *Manager) IsSuccessful(e Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, j := range m.views(e) {
		if !j.allCompleted() {
			return false
		}
	}
	return true
}

// IsSettledWithSuccess reports whether both views are drained and the
// resolved view delivered at least one file. This gates the one-shot
// job completion effects.
func (m *Manager) IsSettledWithSuccess(e Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.settled(e) != nil
}

// settled returns the resolved job when both views are drained and it has
// a completed record. Caller holds mu.
func (m *Manager) settled(e Entry) *job {
	if j := m.jobs[Provisional(e.Meta.Name, e.Meta.Season)]; j != nil && !j.drained() {
		return nil
	}
	if e.Media == nil {
		return nil
	}
	j := m.jobs[Resolved(e.Media.ID, e.Meta.Season)]
	if j == nil || !j.drained() || !j.anyCompleted() {
		return nil
	}
	return j
}

// ClaimCompletion hands out the job's completion summary exactly once per
// settled state: the first caller after the job settles with success gets
// ok, later callers do not until another record joins the job. The
// registered library files are taken as part of the claim.
func (m *Manager) ClaimCompletion(e Entry) (Completion, bool) {
	m.mu.Lock()
	j := m.settled(e)
	if j == nil || j.claimed {
		m.mu.Unlock()
		return Completion{}, false
	}
	j.claimed = true

	c := Completion{
		Key:        j.key.String(),
		Storage:    j.storage,
		Season:     j.key.Season,
		Episodes:   j.episodeList(),
		Successful: true,
	}
	if j.media != nil {
		info := *j.media
		c.Media = &info
	}
	var dirs []string
	for _, r := range j.records {
		if r.State != StateCompleted {
			c.Successful = false
			continue
		}
		c.Completed = append(c.Completed, *r)
		c.Count++
		c.Size += r.File.Size
		c.Notify = c.Notify || r.Notify
		c.Scrape = c.Scrape || r.Scrape
		if r.TargetDir != "" && !slices.Contains(dirs, r.TargetDir) {
			dirs = append(dirs, r.TargetDir)
		}
	}
	if p := m.jobs[Provisional(e.Meta.Name, e.Meta.Season)]; p != nil && !p.allCompleted() {
		c.Successful = false
	}
	m.mu.Unlock()

	c.Count = max(c.Count, 1)
	if len(dirs) > 0 {
		c.TargetDir = dirs[0]
	}
	for _, d := range dirs {
		c.Files = append(c.Files, m.register.Take(d)...)
	}
	return c, true
}

// ResolvedViews returns one resolved entry per resolved job holding a
// record with the entry's parsed name and season. When an unresolved task
// leaves, these are the jobs that may have settled because of it.
func (m *Manager) ResolvedViews(e Entry) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Entry
	for key, j := range m.jobs {
		if key.Kind != KeyResolved || j.media == nil {
			continue
		}
		for _, r := range j.records {
			if r.Meta.Name == e.Meta.Name && r.Meta.Season == e.Meta.Season {
				info := *j.media
				out = append(out, Entry{File: r.File, Meta: r.Meta, Media: &info, Downloader: r.Downloader, Hash: r.Hash})
				break
			}
		}
	}
	return out
}

// IsTorrentDrained reports whether every task from the torrent, across all
// jobs, is terminal.
func (m *Manager) IsTorrentDrained(hash string) bool {
	return m.torrentAll(hash, State.IsTerminal)
}

// IsTorrentFullySucceeded reports whether every task from the torrent,
// across all jobs, completed.
func (m *Manager) IsTorrentFullySucceeded(hash string) bool {
	return m.torrentAll(hash, func(s State) bool { return s == StateCompleted })
}

func (m *Manager) torrentAll(hash string, ok func(State) bool) bool {
	if hash == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, j := range m.jobs {
		for _, r := range j.records {
			if r.Hash == hash && !ok(r.State) {
				return false
			}
		}
	}
	return true
}

// CompletedRecords returns the completed records of the entry's job.
func (m *Manager) CompletedRecords(e Entry) []Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Record
	if j := m.jobs[e.Key()]; j != nil {
		for _, r := range j.records {
			if r.State == StateCompleted {
				out = append(out, *r)
			}
		}
	}
	return out
}

// CompletedCount returns how many records of the entry's job completed.
func (m *Manager) CompletedCount(e Entry) int {
	return len(m.CompletedRecords(e))
}

// CompletedSize sums the file sizes of the completed records.
func (m *Manager) CompletedSize(e Entry) int64 {
	var total int64
	for _, r := range m.CompletedRecords(e) {
		total += r.File.Size
	}
	return total
}

// SeasonEpisodes returns the sorted episode set of the entry's job.
func (m *Manager) SeasonEpisodes(e Entry) []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if j := m.jobs[e.Key()]; j != nil {
		return j.episodeList()
	}
	return nil
}

// Hashes returns every torrent hash with a tracked task.
func (m *Manager) Hashes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	for _, j := range m.jobs {
		for _, r := range j.records {
			if r.Hash != "" && !seen[r.Hash] {
				seen[r.Hash] = true
				out = append(out, r.Hash)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Has reports whether file is tracked by any job.
func (m *Manager) Has(file media.FileItem) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, j := range m.jobs {
		if j.find(file) >= 0 {
			return true
		}
	}
	return false
}

// Total returns the number of tracked records across all jobs.
func (m *Manager) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, j := range m.jobs {
		n += len(j.records)
	}
	return n
}

// Snapshot returns deep copies of all jobs in creation order.
func (m *Manager) Snapshot() []View {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]*job, 0, len(m.jobs))
	for _, j := range m.jobs {
		list = append(list, j)
	}
	slices.SortFunc(list, func(a, b *job) int { return cmp.Compare(a.seq, b.seq) })
	views := make([]View, len(list))
	for i, j := range list {
		views[i] = j.view()
	}
	return views
}

// views returns the existing jobs behind the entry's keys. Caller holds mu.
func (m *Manager) views(e Entry) []*job {
	var out []*job
	for _, key := range e.keys() {
		if j := m.jobs[key]; j != nil {
			out = append(out, j)
		}
	}
	return out
}

// locate finds the entry's record, first under its current key and then
// anywhere. Caller holds mu.
func (m *Manager) locate(e Entry) (*job, int) {
	if j := m.jobs[e.Key()]; j != nil {
		if i := j.find(e.File); i >= 0 {
			return j, i
		}
	}
	for _, j := range m.jobs {
		if i := j.find(e.File); i >= 0 {
			return j, i
		}
	}
	return nil, -1
}

// Register collects the library files written per target directory until
// the job-level notification takes them. It has its own lock.
type Register struct {
	mu    sync.Mutex
	files map[string][]string
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{files: make(map[string][]string)}
}

// Append records files under dir.
func (r *Register) Append(dir string, files ...string) {
	if len(files) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[dir] = append(r.files[dir], files...)
}

// Take returns and forgets the files under dir.
func (r *Register) Take(dir string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	files := r.files[dir]
	delete(r.files, dir)
	return files
}
