// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmunix/sortarr/internal/history"
	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/transfer"
)

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	log  *slog.Logger
}

// New creates a new v1 API server.
func New(deps ServerDeps) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, log: log.With("component", "api")}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	auth := s.requireAPIKey

	// Transfers
	mux.HandleFunc("POST /api/v1/transfer", auth(s.transfer))
	mux.HandleFunc("GET /api/v1/queue", auth(s.listQueue))
	mux.HandleFunc("DELETE /api/v1/queue", auth(s.dequeue))
	mux.HandleFunc("GET /api/v1/progress", auth(s.getProgress))

	// History
	mux.HandleFunc("GET /api/v1/history", auth(s.listHistory))
	mux.HandleFunc("GET /api/v1/history/{id}", auth(s.getHistory))
	mux.HandleFunc("POST /api/v1/history/{id}/redo", auth(s.redo))

	// Downloads
	process := requireOptional(s.deps.Poller != nil, "SERVICE_UNAVAILABLE", "No downloader configured", s.processDownloads)
	mux.HandleFunc("POST /api/v1/downloads/process", auth(process))

	// System
	mux.HandleFunc("GET /api/v1/status", auth(s.getStatus))
	listEvents := requireOptional(s.deps.Events != nil, "NO_EVENT_LOG", "Event log not configured", s.listEvents)
	mux.HandleFunc("GET /api/v1/events", auth(listEvents))
	if s.deps.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.deps.Metrics, promhttp.HandlerOpts{}))
	}
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, idStr)
	}
	return id, nil
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PATH", "path is required")
		return
	}

	opts := transfer.BatchOptions{
		Season:        req.Season,
		TargetPath:    req.TargetPath,
		TargetStorage: req.TargetStorage,
		EpisodeFormat: req.EpisodeFormat,
		MinSizeMB:     req.MinSizeMB,
		Scrape:        req.Scrape,
		Force:         req.Force,
		Background:    req.Background,
		Manual:        true,
	}
	if req.Mode != "" {
		mode, err := media.ParseTransferMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_MODE", err.Error())
			return
		}
		opts.Mode = mode
	}
	if req.Type != "" || req.TMDBID != 0 {
		kind, err := media.ParseType(req.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", err.Error())
			return
		}
		if req.TMDBID != 0 {
			if s.deps.Recognizer == nil {
				writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Recognition not configured")
				return
			}
			info, err := s.deps.Recognizer.RecognizeByID(r.Context(), kind, req.TMDBID)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "NOT_RECOGNIZED", err.Error())
				return
			}
			opts.Media = info
		}
	}

	root := media.FileItem{Storage: req.Storage, Path: req.Path}
	ok, msg := s.deps.Transfer.SubmitBatch(r.Context(), root, opts)
	s.log.Info("manual transfer", "path", req.Path, "background", req.Background, "success", ok, "message", msg)
	writeJSON(w, http.StatusOK, TransferResponse{Success: ok, Message: msg})
}

func (s *Server) listQueue(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, QueueResponse{
		Jobs:    s.deps.Transfer.Queue(),
		Waiting: s.deps.Transfer.QueueLen(),
	})
}

func (s *Server) dequeue(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PATH", "path is required")
		return
	}
	file := media.FileItem{Storage: r.URL.Query().Get("storage"), Path: path}
	if !s.deps.Transfer.Remove(r.Context(), file) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "file is not queued")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProgress(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Transfer.Progress())
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 0 || offset < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit and offset must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	q := r.URL.Query()
	f := history.Filter{
		Hash:   q.Get("hash"),
		Search: q.Get("search"),
		Limit:  limit,
		Offset: offset,
	}
	if v := q.Get("success"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FILTER", "success must be true or false")
			return
		}
		f.Success = &b
	}
	if v := q.Get("type"); v != "" {
		kind, err := media.ParseType(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FILTER", err.Error())
			return
		}
		f.MediaType = kind
	}

	records, total, err := s.deps.History.List(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}
	if records == nil {
		records = []*history.Record{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Items: records, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	rec, err := s.deps.History.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "history record not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) redo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	var body RedoRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	kind, err := media.ParseType(body.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_TYPE", err.Error())
		return
	}

	err = s.deps.Transfer.Redo(r.Context(), transfer.RedoRequest{HistoryID: id, Kind: kind, MediaID: body.TMDBID})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, TransferResponse{Success: true})
	case errors.Is(err, transfer.ErrHistoryNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, transfer.ErrInvalidRedo):
		writeError(w, http.StatusBadRequest, "INVALID_REDO", err.Error())
	case errors.Is(err, transfer.ErrSourceMissing):
		writeError(w, http.StatusGone, "SOURCE_MISSING", err.Error())
	case errors.Is(err, transfer.ErrRecognition):
		writeError(w, http.StatusUnprocessableEntity, "NOT_RECOGNIZED", err.Error())
	default:
		writeJSON(w, http.StatusOK, TransferResponse{Success: false, Message: err.Error()})
	}
}

func (s *Server) processDownloads(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProcessResponse{Ran: s.deps.Poller.Process(r.Context())})
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:   "ok",
		Version:  s.deps.Version,
		Workers:  s.deps.Transfer.Workers(),
		Waiting:  s.deps.Transfer.QueueLen(),
		Jobs:     len(s.deps.Transfer.Queue()),
		Poller:   s.deps.Poller != nil,
		Progress: s.deps.Transfer.Progress(),
	})
}
