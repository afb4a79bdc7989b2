// Package jobs groups transfer tasks that belong to one logical media unit
// (a movie, or one season of a show) and answers completion questions about
// the group as a whole.
package jobs

import "fmt"

// KeyKind tells a provisional key from a resolved one.
type KeyKind int

const (
	KeyProvisional KeyKind = iota // keyed by parsed name, identity unknown
	KeyResolved                   // keyed by media id
)

// Key identifies a job. A task is first filed under a provisional key and
// moves to the resolved key once recognition succeeds.
type Key struct {
	Kind    KeyKind
	Name    string
	MediaID int64
	Season  int
}

// Provisional returns the key for a task whose identity is not known yet.
func Provisional(name string, season int) Key {
	return Key{Kind: KeyProvisional, Name: name, Season: season}
}

// Resolved returns the key for a recognized task.
func Resolved(mediaID int64, season int) Key {
	return Key{Kind: KeyResolved, MediaID: mediaID, Season: season}
}

func (k Key) String() string {
	if k.Kind == KeyResolved {
		return fmt.Sprintf("media:%d/s%d", k.MediaID, k.Season)
	}
	return fmt.Sprintf("name:%s/s%d", k.Name, k.Season)
}
