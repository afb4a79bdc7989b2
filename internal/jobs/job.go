package jobs

import (
	"slices"

	"github.com/vmunix/sortarr/internal/media"
)

// Entry is the part of a task the job manager needs to file and find it.
type Entry struct {
	File       media.FileItem
	Meta       media.Meta
	Media      *media.Info
	Downloader string
	Hash       string
}

// Key returns the job key the entry currently belongs under.
func (e Entry) Key() Key {
	if e.Media != nil {
		return Resolved(e.Media.ID, e.Meta.Season)
	}
	return Provisional(e.Meta.Name, e.Meta.Season)
}

// keys returns the provisional key and, if the entry is resolved, the
// resolved key. Completion questions are asked of both.
func (e Entry) keys() []Key {
	keys := []Key{Provisional(e.Meta.Name, e.Meta.Season)}
	if e.Media != nil {
		keys = append(keys, Resolved(e.Media.ID, e.Meta.Season))
	}
	return keys
}

// Record is the per-task state kept inside a job.
type Record struct {
	File       media.FileItem     `json:"file"`
	Meta       media.Meta         `json:"meta"`
	Downloader string             `json:"downloader,omitempty"`
	Hash       string             `json:"hash,omitempty"`
	State      State              `json:"state"`
	TargetDir  string             `json:"target_dir,omitempty"`
	Mode       media.TransferMode `json:"mode,omitempty"`
	Notify     bool               `json:"-"`
	Scrape     bool               `json:"-"`
}

// Outcome is what a completed task delivered.
type Outcome struct {
	TargetDir string
	Storage   string // storage of the target directory
	Files     []string
	Mode      media.TransferMode
	Notify    bool // target directory wants a library-added notification
	Scrape    bool // target directory wants metadata scraped
}

// Completion summarizes a settled job for its one-shot effects.
type Completion struct {
	Key        string
	Media      *media.Info
	Season     int
	Episodes   []int
	TargetDir  string
	Storage    string
	Files      []string
	Count      int // completed records, at least 1
	Size       int64
	Notify     bool
	Scrape     bool
	Successful bool     // every record in both views completed
	Completed  []Record // copies of the completed records
}

type job struct {
	key     Key
	seq     uint64
	media   *media.Info
	records []*Record
	// episodes counts live (non-failed) records per episode number, so a
	// failed subtitle does not erase the episode its video delivered.
	episodes map[int]int
	storage  string // target storage of the last completed record
	// claimed is set once the completion effects were handed out and
	// cleared when a new record joins.
	claimed bool
}

func newJob(key Key, seq uint64, info *media.Info) *job {
	j := &job{key: key, seq: seq, episodes: make(map[int]int)}
	if info != nil {
		m := *info
		j.media = &m
	}
	return j
}

func (j *job) find(file media.FileItem) int {
	return slices.IndexFunc(j.records, func(r *Record) bool { return r.File.Same(file) })
}

func (j *job) count(r *Record) {
	for _, ep := range r.Meta.Episodes {
		j.episodes[ep]++
	}
}

func (j *job) uncount(r *Record) {
	for _, ep := range r.Meta.Episodes {
		if j.episodes[ep] <= 1 {
			delete(j.episodes, ep)
		} else {
			j.episodes[ep]--
		}
	}
}

// attach appends r and counts its episodes unless it already failed.
func (j *job) attach(r *Record) {
	j.records = append(j.records, r)
	if r.State != StateFailed {
		j.count(r)
	}
}

// detach removes the record at i and releases its episodes.
func (j *job) detach(i int) *Record {
	r := j.records[i]
	j.records = slices.Delete(j.records, i, i+1)
	if r.State != StateFailed {
		j.uncount(r)
	}
	return r
}

func (j *job) drained() bool {
	for _, r := range j.records {
		if !r.State.IsTerminal() {
			return false
		}
	}
	return true
}

func (j *job) allCompleted() bool {
	for _, r := range j.records {
		if r.State != StateCompleted {
			return false
		}
	}
	return true
}

func (j *job) anyCompleted() bool {
	for _, r := range j.records {
		if r.State == StateCompleted {
			return true
		}
	}
	return false
}

func (j *job) episodeList() []int {
	eps := make([]int, 0, len(j.episodes))
	for ep := range j.episodes {
		eps = append(eps, ep)
	}
	slices.Sort(eps)
	return eps
}

// View is a point-in-time copy of a job for display.
type View struct {
	Key      string      `json:"key"`
	Resolved bool        `json:"resolved"`
	Name     string      `json:"name,omitempty"`
	MediaID  int64       `json:"tmdb_id,omitempty"`
	Season   int         `json:"season,omitempty"`
	Media    *media.Info `json:"media,omitempty"`
	Episodes []int       `json:"episodes,omitempty"`
	Records  []Record    `json:"tasks"`
}

func (j *job) view() View {
	v := View{
		Key:      j.key.String(),
		Resolved: j.key.Kind == KeyResolved,
		Name:     j.key.Name,
		MediaID:  j.key.MediaID,
		Season:   j.key.Season,
		Episodes: j.episodeList(),
		Records:  make([]Record, len(j.records)),
	}
	if j.media != nil {
		m := *j.media
		v.Media = &m
		if v.Name == "" {
			v.Name = m.Title
		}
	}
	for i, r := range j.records {
		v.Records[i] = *r
		v.Records[i].Meta.Episodes = slices.Clone(r.Meta.Episodes)
	}
	return v
}
