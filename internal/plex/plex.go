// Package plex asks a Plex Media Server to pick up newly organized files.
package plex

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrNoSection is returned when no library section covers a path.
var ErrNoSection = errors.New("no plex library section for path")

// sectionTTL bounds how long the section list is reused between scans.
const sectionTTL = 10 * time.Minute

// Client triggers partial library scans over the Plex HTTP API.
type Client struct {
	baseURL    string
	token      string
	localPath  string // path prefix on this machine
	remotePath string // same prefix as seen by Plex
	httpClient *http.Client
	log        *slog.Logger

	mu        sync.Mutex
	sections  []Section
	fetchedAt time.Time
}

// NewClient creates a Plex client. localPath and remotePath translate
// paths when Plex runs in a container; leave both empty otherwise.
func NewClient(baseURL, token, localPath, remotePath string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		localPath:  strings.TrimSuffix(localPath, "/"),
		remotePath: strings.TrimSuffix(remotePath, "/"),
		log:        log.With("component", "plex"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Identity is the server's name and version.
type Identity struct {
	Name    string `xml:"friendlyName,attr"`
	Version string `xml:"version,attr"`
}

// Section is a Plex library with its folders.
type Section struct {
	Key       string     `xml:"key,attr"`
	Title     string     `xml:"title,attr"`
	Type      string     `xml:"type,attr"`
	Locations []Location `xml:"Location"`
}

// Location is one folder of a section, as Plex sees it.
type Location struct {
	Path string `xml:"path,attr"`
}

// GetIdentity returns the server name and version.
func (c *Client) GetIdentity(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := c.get(ctx, "/", &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// GetSections returns all library sections.
func (c *Client) GetSections(ctx context.Context) ([]Section, error) {
	var result struct {
		Sections []Section `xml:"Directory"`
	}
	if err := c.get(ctx, "/library/sections", &result); err != nil {
		return nil, err
	}
	return result.Sections, nil
}

// ScanDir refreshes dir in the section whose location contains it. When
// several locations nest, the deepest one wins.
func (c *Client) ScanDir(ctx context.Context, dir string) error {
	remote := c.toRemote(dir)

	sections, err := c.cachedSections(ctx)
	if err != nil {
		return fmt.Errorf("get sections: %w", err)
	}
	key := sectionFor(sections, remote)
	if key == "" {
		// A section may have been added since the list was cached.
		c.invalidate()
		if sections, err = c.cachedSections(ctx); err != nil {
			return fmt.Errorf("get sections: %w", err)
		}
		if key = sectionFor(sections, remote); key == "" {
			return fmt.Errorf("%s (plex path %s): %w", dir, remote, ErrNoSection)
		}
	}

	start := time.Now()
	path := "/library/sections/" + url.PathEscape(key) + "/refresh?path=" + url.QueryEscape(remote)
	if err := c.get(ctx, path, nil); err != nil {
		return fmt.Errorf("scan section %s: %w", key, err)
	}
	c.log.Info("scan triggered", "section", key, "path", remote, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (c *Client) toRemote(path string) string {
	if c.localPath == "" || c.remotePath == "" {
		return path
	}
	if path == c.localPath || strings.HasPrefix(path, c.localPath+"/") {
		return c.remotePath + path[len(c.localPath):]
	}
	return path
}

func sectionFor(sections []Section, remote string) string {
	var key string
	best := -1
	for _, s := range sections {
		for _, loc := range s.Locations {
			root := strings.TrimSuffix(loc.Path, "/")
			if remote != root && !strings.HasPrefix(remote, root+"/") {
				continue
			}
			if len(root) > best {
				key, best = s.Key, len(root)
			}
		}
	}
	return key
}

func (c *Client) cachedSections(ctx context.Context) ([]Section, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sections != nil && time.Since(c.fetchedAt) < sectionTTL {
		return c.sections, nil
	}
	sections, err := c.GetSections(ctx)
	if err != nil {
		return nil, err
	}
	c.sections, c.fetchedAt = sections, time.Now()
	return sections, nil
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.sections = nil
	c.mu.Unlock()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
