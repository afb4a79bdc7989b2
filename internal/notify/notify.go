// Package notify delivers user-facing messages about organized media.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const userAgent = "sortarr"

// Message is one notification.
type Message struct {
	Audience string   // user the message is for, empty for everyone
	Title    string   // headline
	Text     string   // body, may span lines
	Image    string   // poster URL
	Link     string   // click-through URL
	Tags     []string // ntfy tags/emoji shortcodes
	Priority string   // ntfy priority: min, low, default, high, urgent
}

// Notifier sends messages.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Noop discards every message.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(context.Context, Message) error { return nil }

// Ntfy publishes to an ntfy topic.
type Ntfy struct {
	endpoint string
	token    string
	client   *http.Client
	log      *slog.Logger
}

// NewNtfy creates an ntfy notifier for server and topic. token may be empty.
func NewNtfy(server, topic, token string, timeout time.Duration, log *slog.Logger) *Ntfy {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Ntfy{
		endpoint: strings.TrimSuffix(server, "/") + "/" + strings.TrimPrefix(topic, "/"),
		token:    token,
		client:   &http.Client{Timeout: timeout},
		log:      log.With("component", "notify"),
	}
}

// Notify implements Notifier.
func (n *Ntfy) Notify(ctx context.Context, msg Message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.Text))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.Title != "" {
		req.Header.Set("Title", msg.Title)
	}
	if len(msg.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.Tags, ","))
	}
	if msg.Priority != "" && msg.Priority != "default" {
		req.Header.Set("Priority", msg.Priority)
	}
	if msg.Image != "" {
		req.Header.Set("Attach", msg.Image)
	}
	if msg.Link != "" {
		req.Header.Set("Click", msg.Link)
	}
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	n.log.Debug("notification sent", "title", msg.Title)
	return nil
}
