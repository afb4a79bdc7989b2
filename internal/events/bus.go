package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Publisher is the write side of the bus.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Bus is the central event bus for pub/sub.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event // eventType -> channels
	allSubs     []chan Event
	log         *EventLog // may be nil
	logger      *slog.Logger
	closed      bool

	published *prometheus.CounterVec
	dropped   *prometheus.CounterVec
}

// BusOption configures a Bus.
type BusOption func(*busOptions)

type busOptions struct {
	registerer prometheus.Registerer
}

// WithRegisterer exports publish and drop counters to reg.
func WithRegisterer(reg prometheus.Registerer) BusOption {
	return func(o *busOptions) { o.registerer = reg }
}

// NewBus creates a new event bus. The EventLog is optional; pass nil to
// disable persistence.
func NewBus(log *EventLog, logger *slog.Logger, opts ...BusOption) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	var o busOptions
	for _, opt := range opts {
		opt(&o)
	}
	factory := promauto.With(o.registerer)
	return &Bus{
		subscribers: make(map[string][]chan Event),
		log:         log,
		logger:      logger.With("component", "events"),
		published: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortarr",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Events published, by type.",
		}, []string{"type"}),
		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortarr",
			Subsystem: "events",
			Name:      "dropped_total",
			Help:      "Events dropped because a subscriber was full, by type.",
		}, []string{"type"}),
	}
}

// Publish persists the event, then hands it to subscribers without
// blocking. A full subscriber loses the event; persistence failures are
// logged and do not stop delivery.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	if b.isClosed() {
		return nil
	}

	if b.log != nil {
		if _, err := b.log.Append(ctx, e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}
	b.published.WithLabelValues(e.EventType()).Inc()

	// Sends happen under the read lock so Unsubscribe and Close cannot
	// close a channel mid-send. They never block.
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, ch := range b.subscribers[e.EventType()] {
		b.deliver(ch, e)
	}
	for _, ch := range b.allSubs {
		b.deliver(ch, e)
	}
	return nil
}

func (b *Bus) isClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

func (b *Bus) deliver(ch chan Event, e Event) {
	select {
	case ch <- e:
	default:
		b.dropped.WithLabelValues(e.EventType()).Inc()
		b.logger.Warn("subscriber channel full, dropping event",
			"type", e.EventType(),
			"entity_type", e.EntityType(),
			"entity_id", e.EntityID())
	}
}

// Subscribe returns a channel for events of the given types. Subscribing
// to a closed bus yields a closed channel.
func (b *Bus) Subscribe(bufferSize int, eventTypes ...string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	for _, t := range eventTypes {
		b.subscribers[t] = append(b.subscribers[t], ch)
	}
	return ch
}

// SubscribeAll returns a channel for all events.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.allSubs = append(b.allSubs, ch)
	return ch
}

// Unsubscribe removes a subscription channel and closes it.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var found chan Event
	for eventType, subs := range b.subscribers {
		for i, sub := range subs {
			if sub == ch {
				found = sub
				b.subscribers[eventType] = slices.Delete(subs, i, i+1)
				break
			}
		}
	}
	for i, sub := range b.allSubs {
		if sub == ch {
			found = sub
			b.allSubs = slices.Delete(b.allSubs, i, i+1)
			break
		}
	}
	if found != nil {
		close(found)
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	// A channel subscribed to several types appears several times.
	seen := make(map[chan Event]bool)
	for _, subs := range b.subscribers {
		for _, ch := range subs {
			if !seen[ch] {
				seen[ch] = true
				close(ch)
			}
		}
	}
	b.subscribers = nil
	for _, ch := range b.allSubs {
		close(ch)
	}
	b.allSubs = nil
	return nil
}
