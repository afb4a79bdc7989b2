package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/vmunix/sortarr/internal/media"
)

// Default naming templates.
const (
	DefaultMovieTemplate  = "{title} ({year})/{title} ({year}) - {quality}.{ext}"
	DefaultSeriesTemplate = "{title} ({year})/Season {season:02}/{title} - S{season:02}{episodes} - {quality}.{ext}"
)

// Renamer turns parsed and resolved metadata into a library-relative path.
type Renamer struct {
	movieTemplate  string
	seriesTemplate string
}

// NewRenamer creates a Renamer. Empty templates use the defaults.
func NewRenamer(movieTemplate, seriesTemplate string) *Renamer {
	if movieTemplate == "" {
		movieTemplate = DefaultMovieTemplate
	}
	if seriesTemplate == "" {
		seriesTemplate = DefaultSeriesTemplate
	}
	return &Renamer{movieTemplate: movieTemplate, seriesTemplate: seriesTemplate}
}

// Name returns the destination path relative to the target directory.
// An empty ext names a directory item such as a disc folder and yields
// only the template's folder part.
func (r *Renamer) Name(meta media.Meta, info *media.Info, ext string) string {
	title, year := meta.Name, meta.Year
	kind := meta.Type
	if info != nil {
		title, kind = info.Title, info.Type
		if info.Year != 0 {
			year = info.Year
		}
	}
	vars := map[string]any{
		"title":   SanitizeFilename(title),
		"year":    year,
		"quality": SanitizeFilename(meta.Quality),
		"group":   SanitizeFilename(meta.Group),
		"part":    SanitizeFilename(meta.Part),
		"ext":     strings.TrimPrefix(ext, "."),
	}

	template := r.movieTemplate
	if kind == media.TypeTV {
		template = r.seriesTemplate
		season := meta.Season
		if season == 0 {
			season = 1
		}
		vars["season"] = season
		episode := 0
		if len(meta.Episodes) > 0 {
			episode = meta.Episodes[0]
		}
		vars["episode"] = episode
		vars["episodes"] = episodeTag(meta.Episodes)
		vars["episode_title"] = SanitizeFilename(meta.EpisodeTitle)
	}

	name := tidy(applyTemplate(template, vars))
	if ext == "" {
		return filepath.Dir(name)
	}
	return name
}

func episodeTag(eps []int) string {
	switch len(eps) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("E%02d", eps[0])
	default:
		return fmt.Sprintf("E%02d-E%02d", eps[0], eps[len(eps)-1])
	}
}

// formatPattern matches {name} or {name:02} style placeholders.
var formatPattern = regexp.MustCompile(`\{(\w+)(?::(\d+))?\}`)

// applyTemplate substitutes variables into a template string.
// Supports {name} for simple substitution and {name:02} for zero-padded integers.
func applyTemplate(template string, vars map[string]any) string {
	return formatPattern.ReplaceAllStringFunc(template, func(match string) string {
		parts := formatPattern.FindStringSubmatch(match)
		val, ok := vars[parts[1]]
		if !ok {
			return match
		}
		if parts[2] != "" {
			if width, err := strconv.Atoi(parts[2]); err == nil {
				if v, ok := val.(int); ok {
					return fmt.Sprintf("%0*d", width, v)
				}
			}
		}
		if v, ok := val.(int); ok && v == 0 {
			return ""
		}
		return fmt.Sprintf("%v", val)
	})
}

var (
	emptyParens  = regexp.MustCompile(`\s*\(\s*\)`)
	danglingDash = regexp.MustCompile(`\s+-\s*(\.|/|$)`)
)

// tidy drops the leftovers of empty placeholders, e.g. "Heat () - .mkv".
func tidy(p string) string {
	p = emptyParens.ReplaceAllString(p, "")
	p = danglingDash.ReplaceAllString(p, "$1")
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = strings.TrimSpace(s)
	}
	return strings.Join(segs, "/")
}
