// Package events carries transfer lifecycle events between the pipeline and
// its side-effect handlers, and keeps a persistent log of them.
package events

import "time"

// Entity types events refer to.
const (
	EntityTransfer = "transfer" // ID is the transfer history record
	EntityMedia    = "media"    // ID is the TMDB id
	EntityTorrent  = "torrent"  // ID is unused; the hash is in the payload
)

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	EntityType() string
	EntityID() int64
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        int64     `json:"entity_id"`
	TaskID    string    `json:"task_id,omitempty"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() int64       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType, entityType string, entityID int64) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Entity:    entityType,
		ID:        entityID,
		Timestamp: time.Now(),
	}
}

// ForTask returns a copy tagged with the task that caused the event.
func (e BaseEvent) ForTask(taskID string) BaseEvent {
	e.TaskID = taskID
	return e
}
