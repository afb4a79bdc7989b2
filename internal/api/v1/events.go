package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/sortarr/internal/events"
)

// listEvents serves the event log. Without filters it returns the newest
// events first; since and entity return matching events oldest first,
// keeping the newest limit of them.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be positive")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	q := r.URL.Query()
	var (
		raw []events.RawEvent
		err error
	)
	switch {
	case q.Get("entity") != "":
		kind, id, perr := parseEntity(q.Get("entity"))
		if perr != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FILTER", perr.Error())
			return
		}
		raw, err = s.deps.Events.ForEntity(r.Context(), kind, id)
	case q.Get("since") != "":
		since, perr := parseSince(q.Get("since"), time.Now())
		if perr != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FILTER", perr.Error())
			return
		}
		raw, err = s.deps.Events.Since(r.Context(), since)
	default:
		raw, err = s.deps.Events.Recent(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}
	if len(raw) > limit {
		raw = raw[len(raw)-limit:]
	}

	items := make([]EventResponse, len(raw))
	for i, e := range raw {
		items[i] = EventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
		if json.Valid([]byte(e.Payload)) {
			items[i].Payload = json.RawMessage(e.Payload)
		}
	}
	writeJSON(w, http.StatusOK, items)
}

// parseEntity splits "media:1396" into its type and id.
func parseEntity(s string) (string, int64, error) {
	kind, idStr, ok := strings.Cut(s, ":")
	if !ok || kind == "" {
		return "", 0, fmt.Errorf("entity must be <type>:<id>, got %q", s)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("entity id %q: %w", idStr, err)
	}
	return kind, id, nil
}

// parseSince accepts an RFC 3339 timestamp or a duration back from now.
func parseSince(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return time.Time{}, fmt.Errorf("since must be a timestamp or a positive duration, got %q", s)
	}
	return now.Add(-d), nil
}
