// Package library decides which configured library directory a recognized
// item is organized into.
package library

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/storage"
)

// Source ties a download directory to the library its content belongs in.
type Source struct {
	Path    string
	Library string // library name; empty falls back to the media-type default
}

// Resolver picks target directories from the configured libraries.
type Resolver struct {
	libraries []media.TargetDirectory
	sources   []Source
	log       *slog.Logger
}

// NewResolver creates a resolver. Libraries are tried in order; the first
// one of a media type is that type's default.
func NewResolver(libraries []media.TargetDirectory, sources []Source, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	libs := make([]media.TargetDirectory, len(libraries))
	for i, l := range libraries {
		l.Path = filepath.Clean(l.Path)
		if l.Storage == "" {
			l.Storage = storage.LocalStorage
		}
		libs[i] = l
	}
	return &Resolver{
		libraries: libs,
		sources:   sources,
		log:       log.With("component", "library"),
	}
}

// Libraries returns the configured libraries.
func (r *Resolver) Libraries() []media.TargetDirectory {
	return r.libraries
}

// Roots returns every library path.
func (r *Resolver) Roots() []string {
	roots := make([]string, len(r.libraries))
	for i, l := range r.libraries {
		roots[i] = l.Path
	}
	return roots
}

// Resolve returns the target directory for info. An explicit path wins;
// it inherits the settings of the library that contains it, if any. Next
// a download directory rule matching sourcePath, then the first library
// of the media's type. targetStorage, when set, restricts the libraries
// considered.
func (r *Resolver) Resolve(_ context.Context, info *media.Info, sourcePath, explicitPath, targetStorage string) (*media.TargetDirectory, error) {
	kind := media.TypeUnknown
	if info != nil {
		kind = info.Type
	}

	if explicitPath != "" {
		dir := filepath.Clean(explicitPath)
		for _, l := range r.libraries {
			if r.accepts(l, media.TypeUnknown, targetStorage) && storage.Within(dir, []string{l.Path}) {
				l.Path = dir
				return &l, nil
			}
		}
		st := targetStorage
		if st == "" {
			st = storage.LocalStorage
		}
		return &media.TargetDirectory{Name: filepath.Base(dir), Path: dir, Storage: st, Type: kind}, nil
	}

	if sourcePath != "" {
		for _, s := range r.sources {
			if s.Library == "" || !storage.Within(sourcePath, []string{s.Path}) {
				continue
			}
			for _, l := range r.libraries {
				if l.Name == s.Library && r.accepts(l, kind, targetStorage) {
					return &l, nil
				}
			}
			r.log.Debug("download directory library does not accept media",
				"source", s.Path, "library", s.Library, "type", kind)
		}
	}

	for _, l := range r.libraries {
		if r.accepts(l, kind, targetStorage) {
			return &l, nil
		}
	}
	return nil, fmt.Errorf("%w for %s", ErrNoTargetDirectory, describe(info))
}

func (r *Resolver) accepts(l media.TargetDirectory, kind media.Type, targetStorage string) bool {
	if targetStorage != "" && l.Storage != targetStorage {
		return false
	}
	return kind == media.TypeUnknown || l.Type == media.TypeUnknown || l.Type == kind
}

func describe(info *media.Info) string {
	if info == nil {
		return "unrecognized media"
	}
	return fmt.Sprintf("%s %q", info.Type, info.Title)
}
