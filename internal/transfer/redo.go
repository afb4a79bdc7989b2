package transfer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vmunix/sortarr/internal/history"
	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/pkg/release"
)

// RedoRequest asks for a history record to be organized again as a
// specific title. MediaID 0 recognizes the source path afresh.
type RedoRequest struct {
	HistoryID int64
	Kind      media.Type
	MediaID   int64
}

// ParseRedoArgs parses "<historyID> <mediaID>|<movie|tv>", the reply format
// of failure notifications. The media id may be empty ("12 |tv").
func ParseRedoArgs(args string) (RedoRequest, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return RedoRequest{}, fmt.Errorf("%w: want \"<id> <tmdbid>|<type>\", got %q", ErrInvalidRedo, args)
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || id <= 0 {
		return RedoRequest{}, fmt.Errorf("%w: history id %q", ErrInvalidRedo, fields[0])
	}
	idPart, kindPart, found := strings.Cut(fields[1], "|")
	if !found {
		return RedoRequest{}, fmt.Errorf("%w: missing media type in %q", ErrInvalidRedo, fields[1])
	}
	kind, err := media.ParseType(kindPart)
	if err != nil {
		return RedoRequest{}, fmt.Errorf("%w: %w", ErrInvalidRedo, err)
	}
	req := RedoRequest{HistoryID: id, Kind: kind}
	if idPart != "" {
		if req.MediaID, err = strconv.ParseInt(idPart, 10, 64); err != nil || req.MediaID <= 0 {
			return RedoRequest{}, fmt.Errorf("%w: media id %q", ErrInvalidRedo, idPart)
		}
	}
	return req, nil
}

// Redo organizes the source of a history record again, replacing whatever
// the earlier attempt put in the library.
func (s *Service) Redo(ctx context.Context, req RedoRequest) error {
	hist := s.orch.history
	rec, err := hist.Get(ctx, req.HistoryID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrHistoryNotFound, req.HistoryID)
		}
		return err
	}
	log := s.log.With("history_id", rec.ID, "path", rec.SrcPath)

	reader, err := s.operators.Reader(rec.SrcStorage)
	if err != nil {
		return err
	}
	src, err := reader.Stat(ctx, rec.SrcStorage, rec.SrcPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSourceMissing, rec.SrcPath)
	}

	var info *media.Info
	if req.MediaID > 0 {
		info, err = s.orch.recognizer.RecognizeByID(ctx, req.Kind, req.MediaID)
	} else {
		meta := media.MetaFromRelease(release.Parse(filepath.Base(rec.SrcPath)))
		if req.Kind != media.TypeUnknown {
			meta.Type = req.Kind
		}
		info, err = s.orch.recognizer.Recognize(ctx, meta)
	}
	if err != nil {
		return fmt.Errorf("%w: %s %d: %w", ErrRecognition, req.Kind, req.MediaID, err)
	}
	log.Info("redo recognized", "title", info.Title, "tmdb_id", info.ID)

	if rec.DestPath != "" {
		dest := media.FileItem{Storage: rec.DestStorage, Path: rec.DestPath, Type: media.ItemFile}
		if dest.Storage == "" {
			dest.Storage = "local"
		}
		if op, err := s.operators.Reader(dest.Storage); err != nil {
			log.Warn("cannot remove previous destination", "dest", rec.DestPath, "error", err)
		} else if err := op.Delete(ctx, dest); err != nil {
			log.Warn("failed to remove previous destination", "dest", rec.DestPath, "error", err)
		}
	}

	ok, msg := s.SubmitBatch(ctx, *src, BatchOptions{
		Media:      info,
		Downloader: rec.Downloader,
		Hash:       rec.Hash,
		Force:      true,
		Manual:     true,
	})
	if !ok {
		return fmt.Errorf("redo %d: %s", rec.ID, msg)
	}
	return nil
}
