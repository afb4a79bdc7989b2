// Package handlers reacts to transfer events published on the bus.
package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/sortarr/internal/events"
)

// Handler is a long-running event consumer started by the server runner.
type Handler interface {
	// Start blocks until ctx ends or the handler's input is exhausted.
	Start(ctx context.Context) error
	Name() string
}

// BaseHandler carries what every handler shares: the bus, a name and a
// logger tagged with that name.
type BaseHandler struct {
	name   string
	bus    *events.Bus
	logger *slog.Logger
}

// NewBaseHandler creates a base handler.
func NewBaseHandler(bus *events.Bus, name string, logger *slog.Logger) *BaseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseHandler{
		name:   name,
		bus:    bus,
		logger: logger.With("component", "handler", "handler", name),
	}
}

// Name returns the handler name.
func (h *BaseHandler) Name() string { return h.name }

// Bus returns the event bus.
func (h *BaseHandler) Bus() *events.Bus { return h.bus }

// Logger returns the handler's logger.
func (h *BaseHandler) Logger() *slog.Logger { return h.logger }

// Subscribe registers for the given event types for as long as ctx lives.
// The channel closes when ctx ends or the bus shuts down.
func (h *BaseHandler) Subscribe(ctx context.Context, buffer int, eventTypes ...string) <-chan events.Event {
	ch := h.bus.Subscribe(buffer, eventTypes...)
	context.AfterFunc(ctx, func() { h.bus.Unsubscribe(ch) })
	return ch
}
