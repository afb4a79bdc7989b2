// Package media holds the domain types shared by the transfer pipeline:
// file references, parsed and resolved media identity, library targets and
// transfer outcomes.
package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmunix/sortarr/pkg/release"
)

// ItemType distinguishes files from directories.
type ItemType string

const (
	ItemFile ItemType = "file"
	ItemDir  ItemType = "dir"
)

// FileItem references a file or directory in a storage backend.
type FileItem struct {
	Storage   string    `json:"storage"`
	Path      string    `json:"path"`
	Type      ItemType  `json:"type"`
	Name      string    `json:"name"`
	Extension string    `json:"extension,omitempty"`
	Size      int64     `json:"size"`
	ModTime   time.Time `json:"modified_at,omitzero"`
}

// Ref is the comparable identity of a FileItem.
type Ref struct {
	Storage string
	Path    string
}

// Ref returns the item's identity.
func (f FileItem) Ref() Ref {
	return Ref{Storage: f.Storage, Path: f.Path}
}

// Same reports whether two items point at the same file.
func (f FileItem) Same(o FileItem) bool {
	return f.Ref() == o.Ref()
}

// IsDir reports whether the item is a directory.
func (f FileItem) IsDir() bool {
	return f.Type == ItemDir
}

// Dir returns the parent directory path.
func (f FileItem) Dir() string {
	return filepath.Dir(f.Path)
}

// Type is the kind of media a file belongs to.
type Type string

const (
	TypeUnknown Type = ""
	TypeMovie   Type = "movie"
	TypeTV      Type = "tv"
)

// ParseType accepts "movie" and "tv" (case-insensitive).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return TypeMovie, nil
	case "tv":
		return TypeTV, nil
	default:
		return TypeUnknown, fmt.Errorf("unknown media type %q", s)
	}
}

// Meta is what a file name says about its content. Any field may be empty.
type Meta struct {
	Name     string `json:"name"`
	Year     int    `json:"year,omitempty"`
	Type     Type   `json:"type,omitempty"`
	Season   int    `json:"season,omitempty"`
	Episodes []int  `json:"episodes,omitempty"`
	Part     string `json:"part,omitempty"`
	Quality  string `json:"quality,omitempty"`
	Group    string `json:"group,omitempty"`

	// EpisodeTitle is filled from the season catalog, not the file name.
	EpisodeTitle string `json:"episode_title,omitempty"`
}

// MetaFromRelease converts parser output into Meta.
func MetaFromRelease(info *release.Info) Meta {
	m := Meta{
		Name:     info.Title,
		Year:     info.Year,
		Season:   info.Season,
		Episodes: info.Episodes,
		Part:     info.Part,
		Quality:  info.Quality(),
		Group:    info.Group,
	}
	switch info.Kind {
	case release.KindMovie:
		m.Type = TypeMovie
	case release.KindEpisode:
		m.Type = TypeTV
	}
	return m
}

// SeasonEpisode renders "S01 E01-E03" or "S01" for a season pack.
func (m Meta) SeasonEpisode() string {
	return SeasonEpisode(m.Season, m.Episodes)
}

// Info is a resolved media identity.
type Info struct {
	ID            int64  `json:"tmdb_id"`
	Type          Type   `json:"type"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title,omitempty"`
	Year          int    `json:"year,omitempty"`
	Category      string `json:"category,omitempty"`
	PosterURL     string `json:"poster_url,omitempty"`
	Overview      string `json:"overview,omitempty"`
}

// TitleYear renders "Title (2020)", or just the title when the year is unknown.
func (i Info) TitleYear() string {
	if i.Year == 0 {
		return i.Title
	}
	return fmt.Sprintf("%s (%d)", i.Title, i.Year)
}

// EpisodeInfo is one entry in a season catalog.
type EpisodeInfo struct {
	Season  int    `json:"season"`
	Episode int    `json:"episode"`
	Name    string `json:"name"`
	AirDate string `json:"air_date,omitempty"`
}

// DownloadRecord is what the downloader side remembers about a torrent.
type DownloadRecord struct {
	ID         int64     `json:"id"`
	Hash       string    `json:"hash"`
	Downloader string    `json:"downloader"`
	Path       string    `json:"path"`
	Type       Type      `json:"type,omitempty"`
	MediaID    int64     `json:"tmdb_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	Year       int       `json:"year,omitempty"`
	Season     int       `json:"season,omitempty"`
	Episodes   []int     `json:"episodes,omitempty"`
	Username   string    `json:"username,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
