package config

import (
	"github.com/vmunix/sortarr/internal/library"
	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/transfer"
)

// TransferSettings returns the hot-reloadable transfer settings. Call only
// on a validated config; an unknown mode falls back to copy.
func (c *Config) TransferSettings() transfer.Settings {
	mode, err := media.ParseTransferMode(c.Transfer.Mode)
	if err != nil {
		mode = media.ModeCopy
	}
	s := transfer.Settings{
		Workers:            c.Transfer.Workers,
		Mode:               mode,
		MinSizeMB:          c.Transfer.MinSizeMB,
		Exclude:            c.Transfer.Exclude,
		KeepTitle:          c.Transfer.KeepTitle,
		MediaExtensions:    c.Transfer.MediaExtensions,
		SubtitleExtensions: c.Transfer.SubtitleExtensions,
		AudioExtensions:    c.Transfer.AudioExtensions,
	}
	s.Roots = append(s.Roots, c.Downloads.Dirs...)
	for _, lib := range c.Libraries {
		s.Roots = append(s.Roots, lib.Path)
	}
	return s
}

// TargetDirectories converts the configured libraries.
func (c *Config) TargetDirectories() []media.TargetDirectory {
	out := make([]media.TargetDirectory, 0, len(c.Libraries))
	for _, lib := range c.Libraries {
		td := media.TargetDirectory{
			Name:    lib.Name,
			Path:    lib.Path,
			Storage: lib.Storage,
			Scrape:  lib.Scrape,
			Notify:  lib.Notify,
		}
		if lib.Type != "" {
			td.Type, _ = media.ParseType(lib.Type)
		}
		if lib.Mode != "" {
			td.Mode, _ = media.ParseTransferMode(lib.Mode)
		}
		out = append(out, td)
	}
	return out
}

// Sources converts the download directory to library pins.
func (c *Config) Sources() []library.Source {
	out := make([]library.Source, 0, len(c.Downloads.Sources))
	for _, s := range c.Downloads.Sources {
		out = append(out, library.Source{Path: s.Path, Library: s.Library})
	}
	return out
}
