// Package tmdb provides a client for The Movie Database API.
package tmdb

import "strconv"

// Movie represents TMDB movie metadata.
type Movie struct {
	ID            int64   `json:"id"`
	IMDBID        string  `json:"imdb_id,omitempty"` // e.g., "tt0133093"
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"` // "2024-03-01"
	PosterPath    string  `json:"poster_path"`  // "/abc123.jpg"
	BackdropPath  string  `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	Runtime       int     `json:"runtime"` // minutes
	Genres        []Genre `json:"genres"`
}

// Genre represents a genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	return yearOf(m.ReleaseDate)
}

// PosterURL returns the full poster image URL.
// Size can be: w92, w154, w185, w342, w500, w780, original
func (m *Movie) PosterURL(size string) string {
	return posterURL(m.PosterPath, size)
}

// TV represents TMDB series metadata.
type TV struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	OriginalName    string          `json:"original_name,omitempty"`
	Overview        string          `json:"overview"`
	FirstAirDate    string          `json:"first_air_date"`
	PosterPath      string          `json:"poster_path"`
	NumberOfSeasons int             `json:"number_of_seasons"`
	Genres          []Genre         `json:"genres"`
	Seasons         []SeasonSummary `json:"seasons,omitempty"`
}

// Year extracts the year from FirstAirDate.
func (t *TV) Year() int {
	return yearOf(t.FirstAirDate)
}

// PosterURL returns the full poster image URL.
func (t *TV) PosterURL(size string) string {
	return posterURL(t.PosterPath, size)
}

// SeasonSummary is a season entry in a series response.
type SeasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
}

// Season is a season with its episodes.
type Season struct {
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	Episodes     []Episode `json:"episodes"`
}

// Episode is one episode of a season.
type Episode struct {
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	AirDate       string `json:"air_date"`
}

// SearchResult is one hit from a movie or series search. Movie hits fill
// Title and ReleaseDate, series hits fill Name and FirstAirDate.
type SearchResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title,omitempty"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Name          string  `json:"name,omitempty"`
	OriginalName  string  `json:"original_name,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	FirstAirDate  string  `json:"first_air_date,omitempty"`
	PosterPath    string  `json:"poster_path,omitempty"`
	Overview      string  `json:"overview,omitempty"`
	Popularity    float64 `json:"popularity"`
}

// DisplayTitle returns the localized title of either kind of hit.
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Original returns the original-language title of either kind of hit.
func (r SearchResult) Original() string {
	if r.OriginalTitle != "" {
		return r.OriginalTitle
	}
	return r.OriginalName
}

// PosterURL returns the full poster image URL.
func (r SearchResult) PosterURL(size string) string {
	return posterURL(r.PosterPath, size)
}

// Year returns the release or first-air year.
func (r SearchResult) Year() int {
	if r.ReleaseDate != "" {
		return yearOf(r.ReleaseDate)
	}
	return yearOf(r.FirstAirDate)
}

type searchResponse struct {
	Page    int            `json:"page"`
	Results []SearchResult `json:"results"`
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func posterURL(path, size string) string {
	if path == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + path
}
