package media

import (
	"path/filepath"
	"strings"
)

// Category groups files by how the pipeline treats them. Subtitle and audio
// files ride along with the media they belong to and skip the size filter.
type Category string

const (
	CategoryOther    Category = "other"
	CategoryMedia    Category = "media"
	CategorySubtitle Category = "subtitle"
	CategoryAudio    Category = "audio"
)

// Default extension sets, used when config leaves them empty.
var (
	DefaultMediaExtensions    = []string{".mkv", ".mp4", ".avi", ".ts", ".m2ts", ".wmv", ".mov", ".iso", ".webm", ".flv", ".rmvb", ".strm"}
	DefaultSubtitleExtensions = []string{".srt", ".ass", ".ssa", ".sub", ".idx", ".sup", ".vtt"}
	DefaultAudioExtensions    = []string{".mka", ".flac", ".dts", ".ac3", ".eac3", ".aac", ".mp3"}
)

// Classifier maps file extensions to categories.
type Classifier struct {
	exts map[string]Category
}

// NewClassifier builds a classifier. Extensions may be given with or without
// the leading dot; matching is case-insensitive. Empty sets use defaults.
func NewClassifier(mediaExts, subtitleExts, audioExts []string) *Classifier {
	c := &Classifier{exts: make(map[string]Category)}
	c.add(orDefault(audioExts, DefaultAudioExtensions), CategoryAudio)
	c.add(orDefault(subtitleExts, DefaultSubtitleExtensions), CategorySubtitle)
	c.add(orDefault(mediaExts, DefaultMediaExtensions), CategoryMedia)
	return c
}

func (c *Classifier) add(exts []string, cat Category) {
	for _, e := range exts {
		c.exts[normalizeExt(e)] = cat
	}
}

// Classify returns the category for a path or bare extension.
func (c *Classifier) Classify(pathOrExt string) Category {
	ext := filepath.Ext(pathOrExt)
	if ext == "" {
		ext = pathOrExt
	}
	if cat, ok := c.exts[normalizeExt(ext)]; ok {
		return cat
	}
	return CategoryOther
}

// Extensions returns every extension of the given category.
func (c *Classifier) Extensions(cat Category) []string {
	var out []string
	for e, got := range c.exts {
		if got == cat {
			out = append(out, e)
		}
	}
	return out
}

func normalizeExt(e string) string {
	e = strings.ToLower(strings.TrimSpace(e))
	if e != "" && !strings.HasPrefix(e, ".") {
		e = "." + e
	}
	return e
}

func orDefault(exts, def []string) []string {
	if len(exts) == 0 {
		return def
	}
	return exts
}
