package v1

import (
	"encoding/json"

	"github.com/vmunix/sortarr/internal/history"
	"github.com/vmunix/sortarr/internal/jobs"
	"github.com/vmunix/sortarr/internal/transfer"
	"github.com/vmunix/sortarr/pkg/release"
)

// TransferRequest is the body of POST /transfer.
type TransferRequest struct {
	Path          string                `json:"path"`
	Storage       string                `json:"storage,omitempty"`
	Type          string                `json:"type,omitempty"`    // movie or tv, with TMDBID
	TMDBID        int64                 `json:"tmdb_id,omitempty"` // skips recognition
	Season        int                   `json:"season,omitempty"`
	Mode          string                `json:"mode,omitempty"`
	TargetPath    string                `json:"target_path,omitempty"`
	TargetStorage string                `json:"target_storage,omitempty"`
	EpisodeFormat release.EpisodeFormat `json:"episode_format,omitzero"`
	MinSizeMB     int                   `json:"min_size_mb,omitempty"`
	Scrape        *bool                 `json:"scrape,omitempty"`
	Force         bool                  `json:"force,omitempty"`
	Background    bool                  `json:"background,omitempty"`
}

// TransferResponse reports a batch outcome.
type TransferResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RedoRequest is the body of POST /history/{id}/redo.
type RedoRequest struct {
	Type   string `json:"type"`
	TMDBID int64  `json:"tmdb_id,omitempty"` // zero recognizes from the path
}

// QueueResponse lists the tracked jobs.
type QueueResponse struct {
	Jobs    []jobs.View `json:"jobs"`
	Waiting int         `json:"waiting"`
}

// HistoryResponse is one page of history.
type HistoryResponse struct {
	Items  []*history.Record `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// ProcessResponse reports whether a downloader poll ran.
type ProcessResponse struct {
	Ran bool `json:"ran"`
}

// StatusResponse summarizes the daemon.
type StatusResponse struct {
	Status   string                    `json:"status"`
	Version  string                    `json:"version"`
	Workers  int                       `json:"workers"`
	Waiting  int                       `json:"waiting"`
	Jobs     int                       `json:"jobs"`
	Poller   bool                      `json:"poller"`
	Progress transfer.ProgressSnapshot `json:"progress"`
}

// EventResponse is a persisted event.
type EventResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityID   int64           `json:"entity_id"`
	OccurredAt string          `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}
