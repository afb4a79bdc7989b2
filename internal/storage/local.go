// Package storage places files into the library on a local filesystem and
// names them from templates.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/vmunix/sortarr/internal/media"
)

// LocalStorage is the storage id of the local filesystem.
const LocalStorage = "local"

// Local is the local filesystem backend.
type Local struct {
	overwrite bool
	log       *slog.Logger
}

// NewLocal creates a local backend. With overwrite set an existing
// destination file is replaced instead of failing the transfer.
func NewLocal(overwrite bool, log *slog.Logger) *Local {
	if log == nil {
		log = slog.Default()
	}
	return &Local{overwrite: overwrite, log: log.With("component", "storage")}
}

// Claims reports whether this backend serves the storage id.
func (l *Local) Claims(storage string) bool {
	return storage == "" || storage == LocalStorage
}

// Stat returns the item at path.
func (l *Local) Stat(_ context.Context, _ string, path string) (*media.FileItem, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	item := toItem(path, fi)
	return &item, nil
}

// ListChildren returns the direct children of dir, sorted by name.
func (l *Local) ListChildren(_ context.Context, dir media.FileItem) ([]media.FileItem, error) {
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir.Path, err)
	}
	items := make([]media.FileItem, 0, len(entries))
	for _, e := range entries {
		fi, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, toItem(filepath.Join(dir.Path, e.Name()), fi))
	}
	return items, nil
}

// Delete removes a file, or a directory with everything inside it.
func (l *Local) Delete(_ context.Context, item media.FileItem) error {
	var err error
	if item.IsDir() {
		err = os.RemoveAll(item.Path)
	} else {
		err = os.Remove(item.Path)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", item.Path, err)
	}
	l.log.Debug("deleted", "path", item.Path)
	return nil
}

// GetParent returns the directory containing item.
func (l *Local) GetParent(ctx context.Context, item media.FileItem) (*media.FileItem, error) {
	parent := filepath.Dir(item.Path)
	if parent == item.Path {
		return nil, fmt.Errorf("parent of %s: %w", item.Path, ErrNotFound)
	}
	return l.Stat(ctx, item.Storage, parent)
}

// IsBlurayFolder reports whether item is a disc root, i.e. a directory with
// a BDMV child.
func (l *Local) IsBlurayFolder(_ context.Context, item media.FileItem) bool {
	if !item.IsDir() {
		return false
	}
	fi, err := os.Stat(filepath.Join(item.Path, "BDMV"))
	return err == nil && fi.IsDir()
}

// MoveOrCopy places item under target.Path as newName using mode.
// Directory items (disc folders) are transferred as a whole.
func (l *Local) MoveOrCopy(ctx context.Context, item media.FileItem, target media.TargetDirectory, newName string, mode media.TransferMode) (*media.TransferResult, error) {
	dst := filepath.Join(target.Path, newName)
	if err := ValidatePath(dst, target.Path); err != nil {
		return nil, fmt.Errorf("%s: %w", dst, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := l.log.With("src", item.Path, "dst", dst, "mode", mode)
	log.Debug("transfer started")

	var files []string
	var size int64
	var err error
	if item.IsDir() {
		files, size, err = l.transferTree(ctx, item.Path, dst, mode)
	} else {
		size, err = l.transferFile(ctx, item.Path, dst, mode)
		files = []string{dst}
	}
	if err != nil {
		log.Debug("transfer failed", "error", err)
		return nil, err
	}

	dstItem := media.FileItem{
		Storage:   target.Storage,
		Path:      dst,
		Type:      item.Type,
		Name:      filepath.Base(dst),
		Extension: strings.TrimPrefix(filepath.Ext(dst), "."),
		Size:      size,
	}
	if item.IsDir() {
		dstItem.Extension = ""
	}
	targetDir := filepath.Dir(dst)
	if item.IsDir() {
		targetDir = dst
	}

	log.Info("transferred", "size", size)
	return &media.TransferResult{
		Success: true,
		Source:  item,
		TargetDir: media.FileItem{
			Storage: target.Storage,
			Path:    targetDir,
			Type:    media.ItemDir,
			Name:    filepath.Base(targetDir),
		},
		Target:     dstItem,
		NewFiles:   files,
		FileCount:  len(files),
		TotalSize:  size,
		Mode:       mode,
		NeedScrape: target.Scrape,
		NeedNotify: target.Notify,
	}, nil
}

func (l *Local) transferTree(ctx context.Context, src, dst string, mode media.TransferMode) ([]string, int64, error) {
	var files []string
	var total int64
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, rel)
		n, err := l.transferFile(ctx, path, out, mode)
		if err != nil {
			return err
		}
		files = append(files, out)
		total += n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if mode == media.ModeMove {
		if err := os.RemoveAll(src); err != nil {
			l.log.Warn("remove moved disc folder", "path", src, "error", err)
		}
	}
	return files, total, nil
}

func (l *Local) transferFile(ctx context.Context, src, dst string, mode media.TransferMode) (int64, error) {
	fi, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("source %s: %w", src, ErrNotFound)
		}
		return 0, fmt.Errorf("stat source: %w", err)
	}
	if _, err := os.Lstat(dst); err == nil {
		if !l.overwrite {
			return 0, fmt.Errorf("%s: %w", dst, ErrDestinationExists)
		}
		if err := os.Remove(dst); err != nil {
			return 0, fmt.Errorf("replace %s: %w", dst, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	switch mode {
	case media.ModeCopy:
		return CopyFile(ctx, src, dst)
	case media.ModeMove:
		if err := os.Rename(src, dst); err != nil {
			if !errors.Is(err, syscall.EXDEV) {
				return 0, fmt.Errorf("move: %w", err)
			}
			// Different filesystem: copy, then drop the source.
			n, err := CopyFile(ctx, src, dst)
			if err != nil {
				return 0, err
			}
			if err := os.Remove(src); err != nil {
				return 0, fmt.Errorf("remove source after copy: %w", err)
			}
			return n, nil
		}
		return fi.Size(), nil
	case media.ModeLink:
		if err := os.Link(src, dst); err != nil {
			return 0, fmt.Errorf("hard link: %w", err)
		}
		return fi.Size(), nil
	case media.ModeSoftlink:
		abs, err := filepath.Abs(src)
		if err != nil {
			return 0, fmt.Errorf("resolve source: %w", err)
		}
		if err := os.Symlink(abs, dst); err != nil {
			return 0, fmt.Errorf("symlink: %w", err)
		}
		return fi.Size(), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}

// CopyFile copies src to dst, creating the destination directory.
// Returns ErrDestinationExists if dst already exists. A cancelled ctx stops
// the copy and removes the partial file.
func CopyFile(ctx context.Context, src, dst string) (int64, error) {
	if _, err := os.Stat(dst); err == nil {
		return 0, ErrDestinationExists
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("%w: create directory: %v", ErrCopyFailed, err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("%w: open source: %v", ErrCopyFailed, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("%w: create destination: %v", ErrCopyFailed, err)
	}
	defer func() { _ = dstFile.Close() }()

	size, err := io.Copy(dstFile, &ctxReader{ctx: ctx, r: srcFile})
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("%w: copy content: %w", ErrCopyFailed, err)
	}
	if err := dstFile.Sync(); err != nil {
		return 0, fmt.Errorf("%w: sync: %v", ErrCopyFailed, err)
	}
	return size, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func toItem(path string, fi fs.FileInfo) media.FileItem {
	item := media.FileItem{
		Storage: LocalStorage,
		Path:    path,
		Name:    fi.Name(),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
		Type:    media.ItemFile,
	}
	if fi.IsDir() {
		item.Type = media.ItemDir
		item.Size = 0
	} else {
		item.Extension = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	return item
}
