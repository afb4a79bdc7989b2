package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/vmunix/sortarr/internal/media"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if len(c.Libraries) == 0 {
		errs = append(errs, "libraries: at least one library must be configured")
	}
	names := make(map[string]bool)
	for i, lib := range c.Libraries {
		key := fmt.Sprintf("libraries[%d]", i)
		if lib.Path == "" {
			errs = append(errs, key+".path: required")
		}
		if names[lib.Name] {
			errs = append(errs, fmt.Sprintf("%s.name: duplicate library %q", key, lib.Name))
		}
		names[lib.Name] = true
		if lib.Type != "" {
			if _, err := media.ParseType(lib.Type); err != nil {
				errs = append(errs, fmt.Sprintf("%s.type: %v", key, err))
			}
		}
		if lib.Mode != "" {
			if _, err := media.ParseTransferMode(lib.Mode); err != nil {
				errs = append(errs, fmt.Sprintf("%s.mode: %v", key, err))
			}
		}
	}

	for i, s := range c.Downloads.Sources {
		if s.Library != "" && !names[s.Library] {
			errs = append(errs, fmt.Sprintf("downloads.sources[%d].library: unknown library %q", i, s.Library))
		}
	}
	if c.Downloads.PollInterval < 0 {
		errs = append(errs, "downloads.poll_interval: must not be negative")
	}

	if c.Transfer.Workers < 0 {
		errs = append(errs, fmt.Sprintf("transfer.workers: must be positive, got %d", c.Transfer.Workers))
	}
	if c.Transfer.Mode != "" {
		if _, err := media.ParseTransferMode(c.Transfer.Mode); err != nil {
			errs = append(errs, fmt.Sprintf("transfer.mode: %v", err))
		}
	}
	if c.Transfer.MinSizeMB < 0 {
		errs = append(errs, "transfer.min_size_mb: must not be negative")
	}
	for _, p := range c.Transfer.Exclude {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Sprintf("transfer.exclude: %q: %v", p, err))
		}
	}
	if c.Transfer.MovieTemplate != "" && !strings.Contains(c.Transfer.MovieTemplate, "{title}") {
		errs = append(errs, "transfer.movie_template: must contain {title}")
	}
	if c.Transfer.SeriesTemplate != "" && !strings.Contains(c.Transfer.SeriesTemplate, "{season") {
		errs = append(errs, "transfer.series_template: must contain {season}")
	}

	for i, qb := range c.Downloaders.QBittorrent {
		if qb.URL == "" {
			errs = append(errs, fmt.Sprintf("downloaders.qbittorrent[%d].url: required", i))
		}
	}

	if n := c.Notifications.Ntfy; n != nil && n.Topic == "" {
		errs = append(errs, "notifications.ntfy.topic: required when ntfy is configured")
	}
	if p := c.Notifications.Plex; p != nil {
		if p.URL == "" {
			errs = append(errs, "notifications.plex.url: required when plex is configured")
		}
		if p.Token == "" {
			errs = append(errs, "notifications.plex.token: required when plex is configured")
		}
	}

	return errs
}

// Warnings reports non-fatal problems such as library directories that do
// not exist yet.
func (c *Config) Warnings() []string {
	var warns []string
	for _, lib := range c.Libraries {
		if lib.Path == "" || lib.Storage != "local" {
			continue
		}
		if _, err := os.Stat(lib.Path); os.IsNotExist(err) {
			warns = append(warns, fmt.Sprintf("library %s: directory %q does not exist", lib.Name, lib.Path))
		}
	}
	for _, d := range c.Downloads.Dirs {
		if _, err := os.Stat(d); os.IsNotExist(err) {
			warns = append(warns, fmt.Sprintf("downloads: directory %q does not exist", d))
		}
	}
	if c.TMDB.APIKey == "" {
		warns = append(warns, "tmdb.api_key: not set, recognition will fail")
	}
	return warns
}

