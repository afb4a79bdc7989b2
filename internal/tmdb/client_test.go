package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))

		resp := Movie{
			ID:            550,
			Title:         "Fight Club",
			OriginalTitle: "Fight Club",
			ReleaseDate:   "1999-10-15",
			PosterPath:    "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			Runtime:       139,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithLanguage("en-US"))

	movie, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), movie.ID)
	assert.Equal(t, 1999, movie.Year())
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", movie.PosterURL("w500"))
}

func TestClient_GetMovie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 99999999)
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_GetMovie_Cached(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		_ = json.NewEncoder(w).Encode(Movie{ID: 550, Title: "Fight Club"})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithCacheTTL(time.Hour))

	_, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	_, err = client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, 1, callCount, "should use cache, not call API again")
}

func TestClient_GetTVAndSeason(t *testing.T) {
	calls := map[string]int{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls[r.URL.Path]++
		switch r.URL.Path {
		case "/3/tv/1399":
			_ = json.NewEncoder(w).Encode(TV{ID: 1399, Name: "Game of Thrones", FirstAirDate: "2011-04-17", NumberOfSeasons: 8})
		case "/3/tv/1399/season/1":
			_ = json.NewEncoder(w).Encode(Season{
				SeasonNumber: 1,
				Episodes: []Episode{
					{SeasonNumber: 1, EpisodeNumber: 1, Name: "Winter Is Coming"},
					{SeasonNumber: 1, EpisodeNumber: 2, Name: "The Kingsroad"},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))
	ctx := context.Background()

	tv, err := client.GetTV(ctx, 1399)
	require.NoError(t, err)
	assert.Equal(t, 2011, tv.Year())

	season, err := client.GetSeason(ctx, 1399, 1)
	require.NoError(t, err)
	require.Len(t, season.Episodes, 2)
	assert.Equal(t, "The Kingsroad", season.Episodes[1].Name)

	_, err = client.GetSeason(ctx, 1399, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, calls["/3/tv/1399/season/1"])

	_, err = client.GetSeason(ctx, 1399, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/3/search/movie":
			assert.Equal(t, "Heat", q.Get("query"))
			assert.Equal(t, "1995", q.Get("year"))
			_, _ = w.Write([]byte(`{"page":1,"results":[{"id":949,"title":"Heat","original_title":"Heat","release_date":"1995-12-15"}]}`))
		case "/3/search/tv":
			assert.Equal(t, "Dark", q.Get("query"))
			assert.Empty(t, q.Get("first_air_date_year"))
			_, _ = w.Write([]byte(`{"page":1,"results":[{"id":70523,"name":"Dark","original_name":"Dark","first_air_date":"2017-12-01"}]}`))
		}
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))
	ctx := context.Background()

	movies, err := client.SearchMovie(ctx, "Heat", 1995)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Heat", movies[0].DisplayTitle())
	assert.Equal(t, 1995, movies[0].Year())

	shows, err := client.SearchTV(ctx, "Dark", 0)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "Dark", shows[0].DisplayTitle())
	assert.Equal(t, "Dark", shows[0].Original())
	assert.Equal(t, 2017, shows[0].Year())
}
