package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func minimalConfig() *Config {
	return &Config{
		Libraries: []LibraryConfig{{Name: "movies", Path: "/tmp", Storage: "local", Type: "movie"}},
	}
}

func TestValidate_MinimalValid(t *testing.T) {
	assert.Empty(t, minimalConfig().Validate(), "expected no errors for minimal valid config")
}

func TestValidate_NoLibrary(t *testing.T) {
	errs := (&Config{}).Validate()
	assert.True(t, containsError(errs, "at least one library"), "expected library error, got %v", errs)
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = 99999 }, "server.port"},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"library path", func(c *Config) { c.Libraries[0].Path = "" }, "libraries[0].path"},
		{"library type", func(c *Config) { c.Libraries[0].Type = "anime" }, "libraries[0].type"},
		{"library mode", func(c *Config) { c.Libraries[0].Mode = "rsync" }, "libraries[0].mode"},
		{"duplicate library", func(c *Config) {
			c.Libraries = append(c.Libraries, LibraryConfig{Name: "movies", Path: "/tmp/other"})
		}, "duplicate library"},
		{"unknown source library", func(c *Config) {
			c.Downloads.Sources = []SourceConfig{{Path: "/downloads", Library: "anime"}}
		}, "downloads.sources[0].library"},
		{"workers", func(c *Config) { c.Transfer.Workers = -1 }, "transfer.workers"},
		{"mode", func(c *Config) { c.Transfer.Mode = "teleport" }, "transfer.mode"},
		{"min size", func(c *Config) { c.Transfer.MinSizeMB = -5 }, "transfer.min_size_mb"},
		{"exclude", func(c *Config) { c.Transfer.Exclude = []string{"(unclosed"} }, "transfer.exclude"},
		{"movie template", func(c *Config) { c.Transfer.MovieTemplate = "{year}.{ext}" }, "transfer.movie_template"},
		{"series template", func(c *Config) { c.Transfer.SeriesTemplate = "{title}.{ext}" }, "transfer.series_template"},
		{"qbittorrent url", func(c *Config) {
			c.Downloaders.QBittorrent = []QBittorrentConfig{{Name: "qb"}}
		}, "downloaders.qbittorrent[0].url"},
		{"ntfy topic", func(c *Config) { c.Notifications.Ntfy = &NtfyConfig{Server: "https://ntfy.sh"} }, "notifications.ntfy.topic"},
		{"plex token", func(c *Config) { c.Notifications.Plex = &PlexConfig{URL: "http://plex:32400"} }, "notifications.plex.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			tt.modify(cfg)
			errs := cfg.Validate()
			assert.True(t, containsError(errs, tt.want), "expected %q error, got %v", tt.want, errs)
		})
	}
}

func TestValidate_KnownSourceLibrary(t *testing.T) {
	cfg := minimalConfig()
	cfg.Downloads.Sources = []SourceConfig{{Path: "/downloads/films", Library: "movies"}}
	assert.Empty(t, cfg.Validate())
}

func TestWarnings(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	cfg := minimalConfig()
	cfg.Libraries[0].Path = missing
	cfg.Libraries = append(cfg.Libraries, LibraryConfig{Name: "remote", Path: "/nowhere", Storage: "smb"})
	cfg.Downloads.Dirs = []string{missing}

	warns := cfg.Warnings()
	assert.True(t, containsErrorBoth(warns, "library movies", missing), "got %v", warns)
	assert.True(t, containsErrorBoth(warns, "downloads", missing), "got %v", warns)
	assert.True(t, containsError(warns, "tmdb.api_key"), "got %v", warns)
	assert.False(t, containsError(warns, "remote"), "non-local libraries are not checked")
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func containsErrorBoth(errs []string, substr1, substr2 string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr1) && strings.Contains(e, substr2) {
			return true
		}
	}
	return false
}
