package download

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/sortarr/internal/events"
)

// TransferredTag marks torrents whose files have all been organized.
const TransferredTag = "sortarr-transferred"

//go:generate mockgen -source=gateway.go -destination=mocks/client.go -package=mocks

// Client is a torrent client the gateway drives.
type Client interface {
	Name() string
	ListCompleted(ctx context.Context) ([]*Torrent, error)
	Remove(ctx context.Context, hash string, deleteFiles bool) error
	AddTags(ctx context.Context, hash string, tags ...string) error
}

// Gateway fans requests out to the configured torrent clients by name.
type Gateway struct {
	clients []Client
	bus     events.Publisher
	log     *slog.Logger
}

// NewGateway creates a gateway. bus may be nil.
func NewGateway(clients []Client, bus events.Publisher, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{clients: clients, bus: bus, log: log.With("component", "downloader")}
}

// Names returns the configured client names.
func (g *Gateway) Names() []string {
	names := make([]string, len(g.clients))
	for i, c := range g.clients {
		names[i] = c.Name()
	}
	return names
}

// Completed lists finished torrents across all clients, first client
// wins on duplicate hashes. A client that fails is logged and skipped.
func (g *Gateway) Completed(ctx context.Context) []*Torrent {
	seen := make(map[string]bool)
	var out []*Torrent
	for _, c := range g.clients {
		torrents, err := c.ListCompleted(ctx)
		if err != nil {
			g.log.Warn("list completed torrents", "downloader", c.Name(), "error", err)
			continue
		}
		for _, t := range torrents {
			if seen[t.Hash] {
				continue
			}
			seen[t.Hash] = true
			out = append(out, t)
		}
	}
	return out
}

// RemoveSeedAndFiles deletes the torrent and its data from the downloader.
// It reports whether the removal succeeded.
func (g *Gateway) RemoveSeedAndFiles(ctx context.Context, hash, downloader string) bool {
	c, err := g.client(downloader)
	if err != nil {
		g.log.Warn("remove torrent", "hash", hash, "error", err)
		return false
	}
	if err := c.Remove(ctx, hash, true); err != nil {
		g.log.Error("remove torrent", "hash", hash, "downloader", c.Name(), "error", err)
		return false
	}
	g.log.Info("torrent removed", "hash", hash, "downloader", c.Name())
	g.publish(ctx, &events.TorrentRemoved{
		BaseEvent:  events.NewBaseEvent(events.EventTorrentRemoved, events.EntityTorrent, 0),
		Hash:       hash,
		Downloader: c.Name(),
	})
	return true
}

// MarkTransferred tags the torrent so it is not picked up again.
func (g *Gateway) MarkTransferred(ctx context.Context, hash, downloader string) {
	c, err := g.client(downloader)
	if err != nil {
		g.log.Warn("mark torrent transferred", "hash", hash, "error", err)
		return
	}
	if err := c.AddTags(ctx, hash, TransferredTag); err != nil {
		g.log.Error("mark torrent transferred", "hash", hash, "downloader", c.Name(), "error", err)
		return
	}
	g.log.Debug("torrent marked transferred", "hash", hash, "downloader", c.Name())
	g.publish(ctx, &events.TorrentTransferred{
		BaseEvent:  events.NewBaseEvent(events.EventTorrentTransferred, events.EntityTorrent, 0),
		Hash:       hash,
		Downloader: c.Name(),
	})
}

// client resolves a downloader name. An empty name means the only
// configured client.
func (g *Gateway) client(name string) (Client, error) {
	if name == "" && len(g.clients) == 1 {
		return g.clients[0], nil
	}
	for _, c := range g.clients {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDownloader, name)
}

func (g *Gateway) publish(ctx context.Context, e events.Event) {
	if g.bus == nil {
		return
	}
	if err := g.bus.Publish(ctx, e); err != nil {
		g.log.Warn("publish event", "type", e.EventType(), "error", err)
	}
}
