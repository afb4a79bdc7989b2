package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/sortarr/internal/library"
	"github.com/vmunix/sortarr/internal/media"
)

func TestConversions(t *testing.T) {
	cfg := &Config{
		Libraries: []LibraryConfig{
			{Name: "movies", Path: "/media/movies", Storage: "local", Type: "movie", Mode: "link", Notify: true},
			{Name: "mixed", Path: "/media/mixed", Storage: "local", Scrape: true},
		},
		Downloads: DownloadsConfig{
			Dirs:    []string{"/downloads"},
			Sources: []SourceConfig{{Path: "/downloads/films", Library: "movies"}},
		},
		Transfer: TransferConfig{
			Workers:         4,
			Mode:            "move",
			MinSizeMB:       50,
			Exclude:         []string{"sample"},
			KeepTitle:       true,
			MediaExtensions: []string{".mkv"},
		},
	}

	s := cfg.TransferSettings()
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, media.ModeMove, s.Mode)
	assert.Equal(t, 50, s.MinSizeMB)
	assert.True(t, s.KeepTitle)
	assert.Equal(t, []string{".mkv"}, s.MediaExtensions)
	assert.Equal(t, []string{"/downloads", "/media/movies", "/media/mixed"}, s.Roots)

	assert.Equal(t, []media.TargetDirectory{
		{Name: "movies", Path: "/media/movies", Storage: "local", Type: media.TypeMovie, Mode: media.ModeLink, Notify: true},
		{Name: "mixed", Path: "/media/mixed", Storage: "local", Scrape: true},
	}, cfg.TargetDirectories())

	assert.Equal(t, []library.Source{{Path: "/downloads/films", Library: "movies"}}, cfg.Sources())
}

func TestTransferSettings_UnknownModeFallsBack(t *testing.T) {
	cfg := &Config{Transfer: TransferConfig{Mode: "teleport"}}
	assert.Equal(t, media.ModeCopy, cfg.TransferSettings().Mode)
}
