// Package download talks to torrent clients and remembers what they
// downloaded, so finished torrents can be organized and cleaned up.
package download

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/sortarr/internal/media"
)

// Store persists download history: which torrent was fetched for which
// media, and the files it contains.
type Store struct {
	db *sql.DB
}

// NewStore creates a download store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Add records a download and its files.
// This method is idempotent: if the hash is already known the existing
// record's ID is returned and only new files are added.
func (s *Store) Add(ctx context.Context, r *media.DownloadRecord, files []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingID int64
	var existingAt time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT id, created_at FROM download_history WHERE download_hash = ?`, r.Hash,
	).Scan(&existingID, &existingAt)
	switch {
	case err == nil:
		r.ID = existingID
		r.CreatedAt = existingAt
	case errors.Is(err, sql.ErrNoRows):
		now := time.Now()
		result, err := tx.ExecContext(ctx, `
			INSERT INTO download_history (download_hash, downloader, path, media_type, tmdb_id, title, year, season, episodes, username, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.Hash, r.Downloader, r.Path, r.Type, r.MediaID, r.Title, r.Year, r.Season, joinEpisodes(r.Episodes), r.Username, now,
		)
		if err != nil {
			return fmt.Errorf("insert download: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		r.ID = id
		r.CreatedAt = now
	default:
		return fmt.Errorf("check existing download: %w", err)
	}

	for _, f := range files {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO download_files (download_hash, downloader, full_path) VALUES (?, ?, ?)`,
			r.Hash, r.Downloader, f,
		); err != nil {
			return fmt.Errorf("insert download file: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit download: %w", err)
	}
	return nil
}

const selectDownload = `
	SELECT d.id, d.download_hash, d.downloader, d.path, d.media_type, d.tmdb_id, d.title, d.year,
		d.season, d.episodes, d.username, d.created_at
	FROM download_history d`

// GetByHash returns the download for a torrent hash.
func (s *Store) GetByHash(ctx context.Context, hash string) (*media.DownloadRecord, error) {
	r, err := scanDownload(s.db.QueryRowContext(ctx, selectDownload+` WHERE d.download_hash = ?`, hash))
	if err != nil {
		return nil, fmt.Errorf("get download %s: %w", hash, err)
	}
	return r, nil
}

// GetByPath returns the newest download saved at path.
func (s *Store) GetByPath(ctx context.Context, path string) (*media.DownloadRecord, error) {
	r, err := scanDownload(s.db.QueryRowContext(ctx,
		selectDownload+` WHERE d.path = ? ORDER BY d.id DESC LIMIT 1`, path))
	if err != nil {
		return nil, fmt.Errorf("get download at %s: %w", path, err)
	}
	return r, nil
}

// GetByFilePath returns the download that contains the file at path.
func (s *Store) GetByFilePath(ctx context.Context, path string) (*media.DownloadRecord, error) {
	r, err := scanDownload(s.db.QueryRowContext(ctx,
		selectDownload+` JOIN download_files f ON f.download_hash = d.download_hash WHERE f.full_path = ?`, path))
	if err != nil {
		return nil, fmt.Errorf("get download of %s: %w", path, err)
	}
	return r, nil
}

// Files returns the files recorded for a torrent.
func (s *Store) Files(ctx context.Context, hash string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT full_path FROM download_files WHERE download_hash = ? ORDER BY full_path`, hash)
	if err != nil {
		return nil, fmt.Errorf("list download files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scan download file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Delete removes a download and its files.
func (s *Store) Delete(ctx context.Context, hash string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM download_files WHERE download_hash = ?`, hash); err != nil {
		return fmt.Errorf("delete download files: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM download_history WHERE download_hash = ?`, hash)
	if err != nil {
		return fmt.Errorf("delete download: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete download %s: %w", hash, ErrNotFound)
	}
	return tx.Commit()
}

func scanDownload(row *sql.Row) (*media.DownloadRecord, error) {
	var (
		r        media.DownloadRecord
		episodes string
	)
	err := row.Scan(&r.ID, &r.Hash, &r.Downloader, &r.Path, &r.Type, &r.MediaID, &r.Title, &r.Year,
		&r.Season, &episodes, &r.Username, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan download: %w", err)
	}
	for _, p := range strings.Split(episodes, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			r.Episodes = append(r.Episodes, n)
		}
	}
	return &r, nil
}

func joinEpisodes(eps []int) string {
	parts := make([]string, len(eps))
	for i, ep := range eps {
		parts[i] = strconv.Itoa(ep)
	}
	return strings.Join(parts, ",")
}
