// Package history records every organize attempt so a source is not
// processed twice and failed attempts can be redone.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/sortarr/internal/media"
)

// ErrNotFound is returned when no history record matches.
var ErrNotFound = errors.New("history record not found")

// Record is one organize attempt of a source item.
type Record struct {
	ID          int64              `json:"id"`
	SrcStorage  string             `json:"src_storage"`
	SrcPath     string             `json:"src_path"`
	DestStorage string             `json:"dest_storage,omitempty"`
	DestPath    string             `json:"dest_path,omitempty"`
	Mode        media.TransferMode `json:"mode,omitempty"`
	Category    media.Category     `json:"category"`
	MediaType   media.Type         `json:"media_type,omitempty"`
	TMDBID      int64              `json:"tmdb_id,omitempty"`
	Title       string             `json:"title,omitempty"`
	Year        int                `json:"year,omitempty"`
	Season      int                `json:"season,omitempty"`
	Episodes    []int              `json:"episodes,omitempty"`
	Downloader  string             `json:"downloader,omitempty"`
	Hash        string             `json:"hash,omitempty"`
	Success     bool               `json:"success"`
	ErrorMsg    string             `json:"error,omitempty"`
	Files       []string           `json:"files,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Filter specifies criteria for listing history.
type Filter struct {
	Success   *bool
	MediaType media.Type
	TMDBID    int64
	Hash      string
	Search    string // substring of title or source path
	Limit     int
	Offset    int
}

// Store persists history records.
type Store struct {
	db *sql.DB
}

// NewStore creates a history store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordSuccess stores a successful attempt, replacing earlier records of
// the same source.
func (s *Store) RecordSuccess(ctx context.Context, r *Record) error {
	r.Success = true
	r.ErrorMsg = ""
	return s.replace(ctx, r)
}

// RecordFailure stores a failed attempt, replacing earlier records of the
// same source.
func (s *Store) RecordFailure(ctx context.Context, r *Record, reason string) error {
	r.Success = false
	r.ErrorMsg = reason
	return s.replace(ctx, r)
}

func (s *Store) replace(ctx context.Context, r *Record) error {
	files, err := json.Marshal(r.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}
	if r.Category == "" {
		r.Category = media.CategoryMedia
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM transfer_history WHERE src_storage = ? AND src_path = ?`,
		r.SrcStorage, r.SrcPath,
	); err != nil {
		return fmt.Errorf("delete previous history: %w", err)
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO transfer_history (src_storage, src_path, dest_storage, dest_path, mode, category,
			media_type, tmdb_id, title, year, season, episodes, downloader, download_hash,
			status, error_msg, files, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SrcStorage, r.SrcPath, r.DestStorage, r.DestPath, r.Mode, r.Category,
		r.MediaType, r.TMDBID, r.Title, r.Year, r.Season, joinEpisodes(r.Episodes), r.Downloader, r.Hash,
		r.Success, r.ErrorMsg, string(files), now,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}

	r.ID = id
	r.CreatedAt = now
	return nil
}

const selectRecord = `
	SELECT id, src_storage, src_path, dest_storage, dest_path, mode, category,
		media_type, tmdb_id, title, year, season, episodes, downloader, download_hash,
		status, error_msg, files, created_at
	FROM transfer_history`

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id int64) (*Record, error) {
	r, err := scanOne(s.db.QueryRowContext(ctx, selectRecord+` WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get history %d: %w", id, err)
	}
	return r, nil
}

// FindBySource returns the record for a source item.
func (s *Store) FindBySource(ctx context.Context, storage, path string) (*Record, error) {
	r, err := scanOne(s.db.QueryRowContext(ctx,
		selectRecord+` WHERE src_storage = ? AND src_path = ? ORDER BY id DESC LIMIT 1`, storage, path))
	if err != nil {
		return nil, fmt.Errorf("find history by source %s: %w", path, err)
	}
	return r, nil
}

// FindByMedia returns the newest successful record for a media identity.
func (s *Store) FindByMedia(ctx context.Context, mediaType media.Type, tmdbID int64) (*Record, error) {
	r, err := scanOne(s.db.QueryRowContext(ctx,
		selectRecord+` WHERE media_type = ? AND tmdb_id = ? AND status = 1 ORDER BY id DESC LIMIT 1`,
		mediaType, tmdbID))
	if err != nil {
		return nil, fmt.Errorf("find history by media %s/%d: %w", mediaType, tmdbID, err)
	}
	return r, nil
}

// FindByHash returns every record that came from a torrent.
func (s *Store) FindByHash(ctx context.Context, hash string) ([]*Record, error) {
	records, _, err := s.List(ctx, Filter{Hash: hash})
	return records, err
}

// List returns records matching the filter, newest first, and the total
// number of matches ignoring limit and offset.
func (s *Store) List(ctx context.Context, f Filter) ([]*Record, int, error) {
	var conditions []string
	var args []any

	if f.Success != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *f.Success)
	}
	if f.MediaType != "" {
		conditions = append(conditions, "media_type = ?")
		args = append(args, f.MediaType)
	}
	if f.TMDBID != 0 {
		conditions = append(conditions, "tmdb_id = ?")
		args = append(args, f.TMDBID)
	}
	if f.Hash != "" {
		conditions = append(conditions, "download_hash = ?")
		args = append(args, f.Hash)
	}
	if f.Search != "" {
		conditions = append(conditions, "(title LIKE ? OR src_path LIKE ?)")
		like := "%" + f.Search + "%"
		args = append(args, like, like)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transfer_history`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	query := selectRecord + whereClause + ` ORDER BY id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate history: %w", err)
	}
	return results, total, nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transfer_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete history %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete history %d: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (*Record, error) {
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		r        Record
		episodes string
		files    string
	)
	err := sc.Scan(&r.ID, &r.SrcStorage, &r.SrcPath, &r.DestStorage, &r.DestPath, &r.Mode, &r.Category,
		&r.MediaType, &r.TMDBID, &r.Title, &r.Year, &r.Season, &episodes, &r.Downloader, &r.Hash,
		&r.Success, &r.ErrorMsg, &files, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan history: %w", err)
	}
	r.Episodes = splitEpisodes(episodes)
	if files != "" {
		if err := json.Unmarshal([]byte(files), &r.Files); err != nil {
			return nil, fmt.Errorf("decode history files: %w", err)
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

func splitEpisodes(s string) []int {
	if s == "" {
		return nil
	}
	var eps []int
	for _, p := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			eps = append(eps, n)
		}
	}
	return eps
}
