package download

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Torrent is a torrent as reported by its client.
type Torrent struct {
	Hash        string
	Name        string
	Downloader  string // name of the client that reported it
	Category    string
	Tags        []string
	SavePath    string
	ContentPath string // file or top-level folder of the torrent
	Size        int64
	Progress    float64 // 0-1
	State       string
	CompletedAt time.Time
}

// HasTag reports whether the torrent carries tag.
func (t *Torrent) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if strings.EqualFold(tg, tag) {
			return true
		}
	}
	return false
}

// QBittorrentClient interacts with the qBittorrent Web API.
type QBittorrentClient struct {
	name       string
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        *slog.Logger

	mu       sync.Mutex
	loggedIn bool
}

// NewQBittorrentClient creates a new qBittorrent client.
func NewQBittorrentClient(name, baseURL, username, password string, log *slog.Logger) *QBittorrentClient {
	if log == nil {
		log = slog.Default()
	}
	jar, _ := cookiejar.New(nil)
	return &QBittorrentClient{
		name:     name,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		username: username,
		password: password,
		log:      log.With("component", "qbittorrent", "downloader", name),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// Name returns the configured name of this client.
func (c *QBittorrentClient) Name() string {
	return c.name
}

// ListCompleted returns every finished torrent.
func (c *QBittorrentClient) ListCompleted(ctx context.Context) ([]*Torrent, error) {
	var infos []torrentInfo
	params := url.Values{"filter": {"completed"}}
	if err := c.doRequest(ctx, http.MethodGet, "/api/v2/torrents/info?"+params.Encode(), nil, &infos); err != nil {
		return nil, err
	}

	torrents := make([]*Torrent, 0, len(infos))
	for _, in := range infos {
		t := &Torrent{
			Hash:        strings.ToLower(in.Hash),
			Name:        in.Name,
			Downloader:  c.name,
			Category:    in.Category,
			SavePath:    in.SavePath,
			ContentPath: in.ContentPath,
			Size:        in.Size,
			Progress:    in.Progress,
			State:       in.State,
		}
		if in.CompletionOn > 0 {
			t.CompletedAt = time.Unix(in.CompletionOn, 0)
		}
		for _, tag := range strings.Split(in.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				t.Tags = append(t.Tags, tag)
			}
		}
		torrents = append(torrents, t)
	}
	return torrents, nil
}

// Remove deletes a torrent, optionally with its files.
func (c *QBittorrentClient) Remove(ctx context.Context, hash string, deleteFiles bool) error {
	c.log.Debug("removing torrent", "hash", hash, "delete_files", deleteFiles)
	form := url.Values{
		"hashes":      {hash},
		"deleteFiles": {fmt.Sprintf("%t", deleteFiles)},
	}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v2/torrents/delete", form, nil); err != nil {
		return err
	}
	c.log.Debug("torrent removed", "hash", hash)
	return nil
}

// AddTags tags a torrent.
func (c *QBittorrentClient) AddTags(ctx context.Context, hash string, tags ...string) error {
	form := url.Values{
		"hashes": {hash},
		"tags":   {strings.Join(tags, ",")},
	}
	return c.doRequest(ctx, http.MethodPost, "/api/v2/torrents/addTags", form, nil)
}

func (c *QBittorrentClient) login(ctx context.Context) error {
	form := url.Values{"username": {c.username}, "password": {c.password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("login failed", "error", err)
		return ErrClientUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "Ok." {
		return ErrInvalidCredentials
	}
	c.loggedIn = true
	return nil
}

// doRequest performs an authenticated API call. A 403 means the session
// expired; the client logs in again and retries once.
func (c *QBittorrentClient) doRequest(ctx context.Context, method, path string, form url.Values, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	for attempt := 0; ; attempt++ {
		if !c.loggedIn {
			if err := c.login(ctx); err != nil {
				return err
			}
		}

		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		req.Header.Set("Referer", c.baseURL)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Debug("api request failed", "path", path, "error", err)
			return ErrClientUnavailable
		}

		if resp.StatusCode == http.StatusForbidden && attempt == 0 {
			_ = resp.Body.Close()
			c.loggedIn = false
			continue
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			c.log.Debug("api unexpected status", "path", path, "status", resp.StatusCode)
			return fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}
		if result != nil {
			if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		c.log.Debug("api request complete", "path", path, "duration_ms", time.Since(start).Milliseconds())
		return nil
	}
}

type torrentInfo struct {
	Hash         string  `json:"hash"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Tags         string  `json:"tags"`
	SavePath     string  `json:"save_path"`
	ContentPath  string  `json:"content_path"`
	Size         int64   `json:"size"`
	Progress     float64 `json:"progress"`
	State        string  `json:"state"`
	CompletionOn int64   `json:"completion_on"`
}
