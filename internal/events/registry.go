package events

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Registry decodes persisted payloads back into their concrete event types.
type Registry struct {
	decoders map[string]func(payload []byte) (Event, error)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]func([]byte) (Event, error))}
}

// Register binds eventType to the concrete type T, decoded as *T.
func Register[T any, P interface {
	*T
	Event
}](r *Registry, eventType string) {
	r.decoders[eventType] = func(payload []byte) (Event, error) {
		var v T
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return P(&v), nil
	}
}

// Types lists the registered event types, sorted.
func (r *Registry) Types() []string {
	return slices.Sorted(maps.Keys(r.decoders))
}

// Unmarshal decodes a raw event into its concrete type.
func (r *Registry) Unmarshal(raw RawEvent) (Event, error) {
	decode, ok := r.decoders[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", raw.EventType)
	}
	e, err := decode([]byte(raw.Payload))
	if err != nil {
		return nil, fmt.Errorf("unmarshal event payload: %w", err)
	}
	return e, nil
}

// DefaultRegistry knows every event the transfer pipeline publishes.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	Register[TransferQueued](r, EventTransferQueued)
	Register[TransferCompleted](r, EventTransferCompleted)
	Register[TransferFailed](r, EventTransferFailed)
	Register[JobCompleted](r, EventJobCompleted)
	Register[MetadataScrapeRequested](r, EventMetadataScrapeRequested)
	Register[TorrentTransferred](r, EventTorrentTransferred)
	Register[TorrentRemoved](r, EventTorrentRemoved)
	return r
}
