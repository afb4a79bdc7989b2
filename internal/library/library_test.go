package library

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/sortarr/internal/media"
)

func testResolver() *Resolver {
	return NewResolver([]media.TargetDirectory{
		{Name: "movies", Path: "/media/movies", Type: media.TypeMovie, Notify: true},
		{Name: "tv", Path: "/media/tv", Type: media.TypeTV, Scrape: true},
		{Name: "anime", Path: "/media/anime", Type: media.TypeTV},
	}, []Source{
		{Path: "/downloads/anime", Library: "anime"},
		{Path: "/downloads/misc"},
	}, nil)
}

func TestResolver_Default(t *testing.T) {
	r := testResolver()
	ctx := context.Background()

	dir, err := r.Resolve(ctx, &media.Info{Type: media.TypeMovie, Title: "Heat"}, "/downloads/Heat.mkv", "", "")
	require.NoError(t, err)
	assert.Equal(t, "movies", dir.Name)
	assert.Equal(t, "local", dir.Storage)
	assert.True(t, dir.Notify)

	dir, err = r.Resolve(ctx, &media.Info{Type: media.TypeTV, Title: "Show"}, "/downloads/misc/Show.S01E01.mkv", "", "")
	require.NoError(t, err)
	assert.Equal(t, "tv", dir.Name)
}

func TestResolver_SourcePathRule(t *testing.T) {
	r := testResolver()

	dir, err := r.Resolve(context.Background(), &media.Info{Type: media.TypeTV, Title: "Frieren"}, "/downloads/anime/Frieren - 01.mkv", "", "")
	require.NoError(t, err)
	assert.Equal(t, "anime", dir.Name)

	// The rule's library only takes shows.
	dir, err = r.Resolve(context.Background(), &media.Info{Type: media.TypeMovie, Title: "Akira"}, "/downloads/anime/Akira.mkv", "", "")
	require.NoError(t, err)
	assert.Equal(t, "movies", dir.Name)
}

func TestResolver_ExplicitPath(t *testing.T) {
	r := testResolver()
	info := &media.Info{Type: media.TypeTV, Title: "Show"}

	dir, err := r.Resolve(context.Background(), info, "/downloads/anime/x.mkv", "/media/tv/Kids", "")
	require.NoError(t, err)
	assert.Equal(t, "/media/tv/Kids", dir.Path)
	assert.Equal(t, "tv", dir.Name, "inherits the containing library")
	assert.True(t, dir.Scrape)

	dir, err = r.Resolve(context.Background(), info, "", "/mnt/elsewhere/", "")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/elsewhere", dir.Path)
	assert.Equal(t, "local", dir.Storage)
	assert.False(t, dir.Notify)
}

func TestResolver_NoTarget(t *testing.T) {
	r := NewResolver([]media.TargetDirectory{{Name: "movies", Path: "/media/movies", Type: media.TypeMovie}}, nil, nil)

	_, err := r.Resolve(context.Background(), &media.Info{Type: media.TypeTV, Title: "Show"}, "", "", "")
	require.ErrorIs(t, err, ErrNoTargetDirectory)

	_, err = r.Resolve(context.Background(), &media.Info{Type: media.TypeMovie}, "", "", "rclone")
	require.ErrorIs(t, err, ErrNoTargetDirectory, "storage filter")
}

func TestResolver_Roots(t *testing.T) {
	assert.Equal(t, []string{"/media/movies", "/media/tv", "/media/anime"}, testResolver().Roots())
}
