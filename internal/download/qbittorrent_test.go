package download

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeJSON is a helper that writes a JSON response, failing the test on error.
func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON response: %v", err)
	}
}

// fakeQBittorrent serves the subset of the Web API the client uses. It
// requires the SID cookie set by a successful login.
type fakeQBittorrent struct {
	t       *testing.T
	logins  atomic.Int32
	expired atomic.Bool
	deleted url.Values
	tagged  url.Values
}

func (f *fakeQBittorrent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v2/auth/login" {
		_ = r.ParseForm()
		if r.PostForm.Get("username") != "admin" || r.PostForm.Get("password") != "secret" {
			_, _ = w.Write([]byte("Fails."))
			return
		}
		f.logins.Add(1)
		http.SetCookie(w, &http.Cookie{Name: "SID", Value: "session", Path: "/"})
		_, _ = w.Write([]byte("Ok."))
		return
	}
	if c, err := r.Cookie("SID"); err != nil || c.Value != "session" || f.expired.Swap(false) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	switch r.URL.Path {
	case "/api/v2/torrents/info":
		assert.Equal(f.t, "completed", r.URL.Query().Get("filter"))
		writeJSON(f.t, w, []map[string]any{
			{
				"hash":          "ABC123",
				"name":          "Show.S01.1080p",
				"category":      "tv",
				"tags":          "sortarr-transferred, keep",
				"save_path":     "/downloads",
				"content_path":  "/downloads/Show.S01.1080p",
				"size":          1024,
				"progress":      1.0,
				"state":         "uploading",
				"completion_on": 1700000000,
			},
		})
	case "/api/v2/torrents/delete":
		_ = r.ParseForm()
		f.deleted = r.PostForm
	case "/api/v2/torrents/addTags":
		_ = r.ParseForm()
		f.tagged = r.PostForm
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newFakeQBittorrent(t *testing.T) (*fakeQBittorrent, *httptest.Server) {
	t.Helper()
	fake := &fakeQBittorrent{t: t}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return fake, server
}

func TestQBittorrentClient_ListCompleted(t *testing.T) {
	fake, server := newFakeQBittorrent(t)
	client := NewQBittorrentClient("qb", server.URL, "admin", "secret", nil)

	torrents, err := client.ListCompleted(context.Background())
	require.NoError(t, err)
	require.Len(t, torrents, 1)

	tr := torrents[0]
	assert.Equal(t, "abc123", tr.Hash, "hashes are lower-cased")
	assert.Equal(t, "qb", tr.Downloader)
	assert.Equal(t, "/downloads/Show.S01.1080p", tr.ContentPath)
	assert.Equal(t, []string{"sortarr-transferred", "keep"}, tr.Tags)
	assert.True(t, tr.HasTag(TransferredTag))
	assert.Equal(t, int64(1700000000), tr.CompletedAt.Unix())
	assert.Equal(t, int32(1), fake.logins.Load())
}

func TestQBittorrentClient_RemoveAndTag(t *testing.T) {
	fake, server := newFakeQBittorrent(t)
	client := NewQBittorrentClient("qb", server.URL, "admin", "secret", nil)
	ctx := context.Background()

	require.NoError(t, client.Remove(ctx, "abc123", true))
	assert.Equal(t, "abc123", fake.deleted.Get("hashes"))
	assert.Equal(t, "true", fake.deleted.Get("deleteFiles"))

	require.NoError(t, client.AddTags(ctx, "abc123", TransferredTag))
	assert.Equal(t, TransferredTag, fake.tagged.Get("tags"))
	assert.Equal(t, int32(1), fake.logins.Load(), "session is reused")
}

func TestQBittorrentClient_ReloginOnExpiredSession(t *testing.T) {
	fake, server := newFakeQBittorrent(t)
	client := NewQBittorrentClient("qb", server.URL, "admin", "secret", nil)
	ctx := context.Background()

	require.NoError(t, client.AddTags(ctx, "abc123", "x"))
	fake.expired.Store(true)
	require.NoError(t, client.AddTags(ctx, "abc123", "y"))
	assert.Equal(t, int32(2), fake.logins.Load())
}

func TestQBittorrentClient_BadCredentials(t *testing.T) {
	_, server := newFakeQBittorrent(t)
	client := NewQBittorrentClient("qb", server.URL, "admin", "wrong", nil)

	_, err := client.ListCompleted(context.Background())
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestQBittorrentClient_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewQBittorrentClient("qb", server.URL, "admin", "secret", nil)
	_, err := client.ListCompleted(context.Background())
	require.ErrorIs(t, err, ErrClientUnavailable)
}
