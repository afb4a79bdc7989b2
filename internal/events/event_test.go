package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEvent_ImplementsEvent(t *testing.T) {
	now := time.Now()
	e := BaseEvent{
		Type:      "test.event",
		Entity:    EntityTransfer,
		ID:        42,
		Timestamp: now,
	}

	assert.Equal(t, "test.event", e.EventType())
	assert.Equal(t, EntityTransfer, e.EntityType())
	assert.Equal(t, int64(42), e.EntityID())
	assert.Equal(t, now, e.OccurredAt())
}

func TestNewBaseEvent(t *testing.T) {
	e := NewBaseEvent(EventJobCompleted, EntityMedia, 603)

	assert.Equal(t, EventJobCompleted, e.EventType())
	assert.Equal(t, EntityMedia, e.EntityType())
	assert.Equal(t, int64(603), e.EntityID())
	assert.False(t, e.OccurredAt().IsZero())
	assert.Empty(t, e.TaskID)
	assert.Equal(t, "t1", e.ForTask("t1").TaskID)
}
