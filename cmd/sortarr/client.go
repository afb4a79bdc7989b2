package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	v1 "github.com/vmunix/sortarr/internal/api/v1"
	"github.com/vmunix/sortarr/internal/history"
	"github.com/vmunix/sortarr/internal/transfer"
)

// ErrNotFound is returned for 404 responses.
var ErrNotFound = errors.New("not found")

// Client wraps HTTP calls to the sortarr server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new sortarr API client.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		baseURL: serverURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			// Foreground transfers answer only when the batch is done.
			Timeout: 30 * time.Minute,
		},
	}
}

// apiError is the server's error body.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (c *Client) do(method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		msg := string(bytes.TrimSpace(respBody))
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		}
		return fmt.Errorf("server error %d: %s", resp.StatusCode, msg)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

// Transfer organizes a file or directory.
func (c *Client) Transfer(req v1.TransferRequest) (*v1.TransferResponse, error) {
	var resp v1.TransferResponse
	if err := c.post("/api/v1/transfer", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Queue lists the tracked jobs.
func (c *Client) Queue() (*v1.QueueResponse, error) {
	var resp v1.QueueResponse
	if err := c.get("/api/v1/queue", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Dequeue drops a waiting file from the queue.
func (c *Client) Dequeue(path, storage string) error {
	q := url.Values{"path": {path}}
	if storage != "" {
		q.Set("storage", storage)
	}
	return c.do(http.MethodDelete, "/api/v1/queue?"+q.Encode(), nil, nil)
}

// Progress returns the current batch progress.
func (c *Client) Progress() (*transfer.ProgressSnapshot, error) {
	var resp transfer.ProgressSnapshot
	if err := c.get("/api/v1/progress", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HistoryQuery filters the history listing.
type HistoryQuery struct {
	Success *bool
	Type    string
	Search  string
	Hash    string
	Limit   int
	Offset  int
}

func (q HistoryQuery) encode() string {
	v := url.Values{}
	if q.Success != nil {
		v.Set("success", strconv.FormatBool(*q.Success))
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Hash != "" {
		v.Set("hash", q.Hash)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// History lists transfer history.
func (c *Client) History(q HistoryQuery) (*v1.HistoryResponse, error) {
	var resp v1.HistoryResponse
	if err := c.get("/api/v1/history"+q.encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HistoryRecord fetches one history record.
func (c *Client) HistoryRecord(id int64) (*history.Record, error) {
	var resp history.Record
	if err := c.get(fmt.Sprintf("/api/v1/history/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Redo organizes a history record's source again.
func (c *Client) Redo(req transfer.RedoRequest) (*v1.TransferResponse, error) {
	var resp v1.TransferResponse
	body := v1.RedoRequest{Type: string(req.Kind), TMDBID: req.MediaID}
	if err := c.post(fmt.Sprintf("/api/v1/history/%d/redo", req.HistoryID), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status returns the daemon summary.
func (c *Client) Status() (*v1.StatusResponse, error) {
	var resp v1.StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Process asks the daemon to poll the download clients now.
func (c *Client) Process() (*v1.ProcessResponse, error) {
	var resp v1.ProcessResponse
	if err := c.post("/api/v1/downloads/process", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EventQuery filters the event log. Since and Entity are mutually exclusive
// on the server; Entity wins when both are set.
type EventQuery struct {
	Limit  int
	Since  string
	Entity string
}

func (q EventQuery) encode() string {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Since != "" {
		v.Set("since", q.Since)
	}
	if q.Entity != "" {
		v.Set("entity", q.Entity)
	}
	return v.Encode()
}

// Events lists events from the server's event log.
func (c *Client) Events(q EventQuery) ([]v1.EventResponse, error) {
	path := "/api/v1/events"
	if enc := q.encode(); enc != "" {
		path += "?" + enc
	}
	var resp []v1.EventResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
