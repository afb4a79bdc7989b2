// Package recognize resolves parsed file names to TMDB identities.
package recognize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/tmdb"
	"github.com/vmunix/sortarr/pkg/release"
)

// ErrNotRecognized is returned when no candidate matches well enough.
var ErrNotRecognized = errors.New("media not recognized")

const posterSize = "w500"

// Lookup is the TMDB surface the recognizer needs.
type Lookup interface {
	SearchMovie(ctx context.Context, query string, year int) ([]tmdb.SearchResult, error)
	SearchTV(ctx context.Context, query string, year int) ([]tmdb.SearchResult, error)
	GetMovie(ctx context.Context, id int64) (*tmdb.Movie, error)
	GetTV(ctx context.Context, id int64) (*tmdb.TV, error)
	GetSeason(ctx context.Context, id int64, season int) (*tmdb.Season, error)
}

// Recognizer matches Meta against TMDB search results.
type Recognizer struct {
	lookup        Lookup
	minConfidence release.MatchConfidence
	log           *slog.Logger
}

// New creates a recognizer that accepts matches of at least low confidence.
func New(lookup Lookup, log *slog.Logger) *Recognizer {
	if log == nil {
		log = slog.Default()
	}
	return &Recognizer{
		lookup:        lookup,
		minConfidence: release.ConfidenceLow,
		log:           log.With("component", "recognize"),
	}
}

// Recognize searches for meta's title and returns the best match. Without a
// type hint both kinds are searched, series first when the name carries
// season or episode numbers.
func (r *Recognizer) Recognize(ctx context.Context, meta media.Meta) (*media.Info, error) {
	if meta.Name == "" {
		return nil, fmt.Errorf("empty title: %w", ErrNotRecognized)
	}

	kinds := []media.Type{meta.Type}
	if meta.Type == media.TypeUnknown {
		kinds = []media.Type{media.TypeMovie, media.TypeTV}
		if meta.Season > 0 || len(meta.Episodes) > 0 {
			kinds = []media.Type{media.TypeTV, media.TypeMovie}
		}
	}

	var (
		best     *media.Info
		bestHit  release.MatchResult
		firstErr error
	)
	for _, kind := range kinds {
		hits, err := r.search(ctx, kind, meta.Name, meta.Year)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		match, hit := rank(meta, hits)
		if match.Confidence < r.minConfidence || match.Score <= bestHit.Score {
			continue
		}
		bestHit = match
		best = infoFromHit(kind, hit)
	}

	if best == nil {
		if firstErr != nil {
			return nil, fmt.Errorf("search %q: %w", meta.Name, firstErr)
		}
		r.log.Debug("no match", "name", meta.Name, "year", meta.Year)
		return nil, fmt.Errorf("%q: %w", meta.Name, ErrNotRecognized)
	}

	r.log.Debug("recognized", "name", meta.Name, "tmdb_id", best.ID, "type", best.Type,
		"score", bestHit.Score, "confidence", bestHit.Confidence.String())
	return best, nil
}

// search tries the parsed year first; release years are often wrong, so an
// empty result is retried without it.
func (r *Recognizer) search(ctx context.Context, kind media.Type, name string, year int) ([]tmdb.SearchResult, error) {
	find := r.lookup.SearchMovie
	if kind == media.TypeTV {
		find = r.lookup.SearchTV
	}
	hits, err := find(ctx, name, year)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 && year > 0 {
		return find(ctx, name, 0)
	}
	return hits, nil
}

func rank(meta media.Meta, hits []tmdb.SearchResult) (release.MatchResult, tmdb.SearchResult) {
	candidates := make([]release.Candidate, len(hits))
	for i, h := range hits {
		candidates[i] = release.Candidate{
			ID:            h.ID,
			Title:         h.DisplayTitle(),
			OriginalTitle: h.Original(),
			Year:          h.Year(),
		}
	}
	match := release.BestCandidate(meta.Name, meta.Year, candidates)
	for _, h := range hits {
		if h.ID == match.Candidate.ID {
			return match, h
		}
	}
	return match, tmdb.SearchResult{}
}

func infoFromHit(kind media.Type, h tmdb.SearchResult) *media.Info {
	return &media.Info{
		ID:            h.ID,
		Type:          kind,
		Title:         h.DisplayTitle(),
		OriginalTitle: h.Original(),
		Year:          h.Year(),
		PosterURL:     h.PosterURL(posterSize),
		Overview:      h.Overview,
	}
}

// RecognizeByID loads an identity directly, for downloads whose media is
// already known.
func (r *Recognizer) RecognizeByID(ctx context.Context, kind media.Type, id int64) (*media.Info, error) {
	switch kind {
	case media.TypeMovie:
		m, err := r.lookup.GetMovie(ctx, id)
		if err != nil {
			return nil, wrapLookup(kind, id, err)
		}
		return &media.Info{
			ID:            m.ID,
			Type:          media.TypeMovie,
			Title:         m.Title,
			OriginalTitle: m.OriginalTitle,
			Year:          m.Year(),
			Category:      firstGenre(m.Genres),
			PosterURL:     m.PosterURL(posterSize),
			Overview:      m.Overview,
		}, nil
	case media.TypeTV:
		tv, err := r.lookup.GetTV(ctx, id)
		if err != nil {
			return nil, wrapLookup(kind, id, err)
		}
		return &media.Info{
			ID:            tv.ID,
			Type:          media.TypeTV,
			Title:         tv.Name,
			OriginalTitle: tv.OriginalName,
			Year:          tv.Year(),
			Category:      firstGenre(tv.Genres),
			PosterURL:     tv.PosterURL(posterSize),
			Overview:      tv.Overview,
		}, nil
	default:
		return nil, fmt.Errorf("tmdb id %d without media type: %w", id, ErrNotRecognized)
	}
}

// SeasonEpisodes returns the episode catalog of one season.
func (r *Recognizer) SeasonEpisodes(ctx context.Context, mediaID int64, season int) ([]media.EpisodeInfo, error) {
	s, err := r.lookup.GetSeason(ctx, mediaID, season)
	if err != nil {
		return nil, fmt.Errorf("season %d of %d: %w", season, mediaID, err)
	}
	eps := make([]media.EpisodeInfo, len(s.Episodes))
	for i, e := range s.Episodes {
		eps[i] = media.EpisodeInfo{
			Season:  e.SeasonNumber,
			Episode: e.EpisodeNumber,
			Name:    e.Name,
			AirDate: e.AirDate,
		}
	}
	return eps, nil
}

func wrapLookup(kind media.Type, id int64, err error) error {
	if errors.Is(err, tmdb.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotRecognized)
	}
	return fmt.Errorf("%s %d: %w", kind, id, err)
}

func firstGenre(genres []tmdb.Genre) string {
	if len(genres) == 0 {
		return ""
	}
	return genres[0].Name
}
