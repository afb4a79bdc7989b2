package recognize

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/tmdb"
)

type searchCall struct {
	kind  media.Type
	query string
	year  int
}

type fakeLookup struct {
	movies  map[int][]tmdb.SearchResult // by year, 0 = any
	shows   map[int][]tmdb.SearchResult
	err     error
	calls   []searchCall
	movie   *tmdb.Movie
	tv      *tmdb.TV
	season  *tmdb.Season
	missing bool
}

func (f *fakeLookup) SearchMovie(_ context.Context, q string, year int) ([]tmdb.SearchResult, error) {
	f.calls = append(f.calls, searchCall{media.TypeMovie, q, year})
	return f.movies[year], f.err
}

func (f *fakeLookup) SearchTV(_ context.Context, q string, year int) ([]tmdb.SearchResult, error) {
	f.calls = append(f.calls, searchCall{media.TypeTV, q, year})
	return f.shows[year], f.err
}

func (f *fakeLookup) GetMovie(context.Context, int64) (*tmdb.Movie, error) {
	if f.missing {
		return nil, tmdb.ErrNotFound
	}
	return f.movie, nil
}

func (f *fakeLookup) GetTV(context.Context, int64) (*tmdb.TV, error) {
	if f.missing {
		return nil, tmdb.ErrNotFound
	}
	return f.tv, nil
}

func (f *fakeLookup) GetSeason(context.Context, int64, int) (*tmdb.Season, error) {
	if f.missing {
		return nil, tmdb.ErrNotFound
	}
	return f.season, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecognize_Movie(t *testing.T) {
	lookup := &fakeLookup{movies: map[int][]tmdb.SearchResult{
		1995: {
			{ID: 1, Title: "Heat Wave", ReleaseDate: "1995-01-01"},
			{ID: 949, Title: "Heat", OriginalTitle: "Heat", ReleaseDate: "1995-12-15", PosterPath: "/p.jpg"},
		},
	}}
	r := New(lookup, testLogger())

	info, err := r.Recognize(context.Background(), media.Meta{Name: "Heat", Year: 1995, Type: media.TypeMovie})
	require.NoError(t, err)
	assert.Equal(t, int64(949), info.ID)
	assert.Equal(t, media.TypeMovie, info.Type)
	assert.Equal(t, 1995, info.Year)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", info.PosterURL)
	assert.Len(t, lookup.calls, 1)
}

func TestRecognize_RetriesWithoutYear(t *testing.T) {
	lookup := &fakeLookup{shows: map[int][]tmdb.SearchResult{
		0: {{ID: 70523, Name: "Dark", FirstAirDate: "2017-12-01"}},
	}}
	r := New(lookup, testLogger())

	info, err := r.Recognize(context.Background(), media.Meta{Name: "Dark", Year: 2019, Type: media.TypeTV, Season: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(70523), info.ID)
	assert.Equal(t, []searchCall{{media.TypeTV, "Dark", 2019}, {media.TypeTV, "Dark", 0}}, lookup.calls)
}

func TestRecognize_UnknownTypeSearchesSeriesFirst(t *testing.T) {
	lookup := &fakeLookup{
		shows:  map[int][]tmdb.SearchResult{0: {{ID: 1399, Name: "Game of Thrones"}}},
		movies: map[int][]tmdb.SearchResult{0: {{ID: 5, Title: "Game of Thrones Special"}}},
	}
	r := New(lookup, testLogger())

	info, err := r.Recognize(context.Background(), media.Meta{Name: "Game of Thrones", Episodes: []int{1}})
	require.NoError(t, err)
	assert.Equal(t, int64(1399), info.ID)
	assert.Equal(t, media.TypeTV, info.Type)
	assert.Equal(t, media.TypeTV, lookup.calls[0].kind)
}

func TestRecognize_NoMatch(t *testing.T) {
	lookup := &fakeLookup{movies: map[int][]tmdb.SearchResult{
		0: {{ID: 1, Title: "Completely Different"}},
	}}
	r := New(lookup, testLogger())
	ctx := context.Background()

	_, err := r.Recognize(ctx, media.Meta{Name: "Heat", Type: media.TypeMovie})
	require.ErrorIs(t, err, ErrNotRecognized)

	_, err = r.Recognize(ctx, media.Meta{})
	require.ErrorIs(t, err, ErrNotRecognized)
}

func TestRecognize_LookupError(t *testing.T) {
	boom := errors.New("tmdb down")
	r := New(&fakeLookup{err: boom}, testLogger())

	_, err := r.Recognize(context.Background(), media.Meta{Name: "Heat", Type: media.TypeMovie})
	require.ErrorIs(t, err, boom)
}

func TestRecognizeByID(t *testing.T) {
	lookup := &fakeLookup{
		movie: &tmdb.Movie{ID: 949, Title: "Heat", ReleaseDate: "1995-12-15", Genres: []tmdb.Genre{{ID: 80, Name: "Crime"}}},
		tv:    &tmdb.TV{ID: 1399, Name: "Game of Thrones", FirstAirDate: "2011-04-17"},
	}
	r := New(lookup, testLogger())
	ctx := context.Background()

	info, err := r.RecognizeByID(ctx, media.TypeMovie, 949)
	require.NoError(t, err)
	assert.Equal(t, "Heat", info.Title)
	assert.Equal(t, "Crime", info.Category)

	info, err = r.RecognizeByID(ctx, media.TypeTV, 1399)
	require.NoError(t, err)
	assert.Equal(t, 2011, info.Year)

	_, err = r.RecognizeByID(ctx, media.TypeUnknown, 1)
	require.ErrorIs(t, err, ErrNotRecognized)

	lookup.missing = true
	_, err = r.RecognizeByID(ctx, media.TypeMovie, 949)
	require.ErrorIs(t, err, ErrNotRecognized)
}

func TestSeasonEpisodes(t *testing.T) {
	lookup := &fakeLookup{season: &tmdb.Season{
		SeasonNumber: 1,
		Episodes: []tmdb.Episode{
			{SeasonNumber: 1, EpisodeNumber: 1, Name: "Winter Is Coming", AirDate: "2011-04-17"},
		},
	}}
	r := New(lookup, testLogger())

	eps, err := r.SeasonEpisodes(context.Background(), 1399, 1)
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, media.EpisodeInfo{Season: 1, Episode: 1, Name: "Winter Is Coming", AirDate: "2011-04-17"}, eps[0])

	lookup.missing = true
	_, err = r.SeasonEpisodes(context.Background(), 1399, 1)
	require.ErrorIs(t, err, tmdb.ErrNotFound)
}
