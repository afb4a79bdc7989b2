package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockServer builds an httptest.Server that checks each request against
// the configured expectations before answering.
type mockServer struct {
	t       *testing.T
	checks  []func(r *http.Request)
	handler http.HandlerFunc
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	return &mockServer{t: t}
}

func (m *mockServer) expect(check func(r *http.Request)) *mockServer {
	m.checks = append(m.checks, check)
	return m
}

func (m *mockServer) ExpectPath(path string) *mockServer {
	return m.expect(func(r *http.Request) {
		assert.Equal(m.t, path, r.URL.Path, "request path")
	})
}

func (m *mockServer) ExpectMethod(method string) *mockServer {
	return m.expect(func(r *http.Request) {
		assert.Equal(m.t, method, r.Method, "request method")
	})
}

func (m *mockServer) ExpectGET() *mockServer    { return m.ExpectMethod(http.MethodGet) }
func (m *mockServer) ExpectPOST() *mockServer   { return m.ExpectMethod(http.MethodPost) }
func (m *mockServer) ExpectDELETE() *mockServer { return m.ExpectMethod(http.MethodDelete) }

func (m *mockServer) ExpectAPIKey(key string) *mockServer {
	return m.expect(func(r *http.Request) {
		assert.Equal(m.t, key, r.Header.Get("X-Api-Key"), "api key")
	})
}

// Handler answers requests that passed the checks.
func (m *mockServer) Handler(h http.HandlerFunc) *mockServer {
	m.handler = h
	return m
}

func (m *mockServer) RespondJSON(v any) *mockServer {
	return m.Handler(func(w http.ResponseWriter, _ *http.Request) { respondJSON(m.t, w, v) })
}

func (m *mockServer) RespondStatus(code int) *mockServer {
	return m.Handler(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(code) })
}

// RespondError answers with code and a raw body.
func (m *mockServer) RespondError(code int, body string) *mockServer {
	return m.Handler(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	})
}

// Build starts the server. It is closed when the test ends.
func (m *mockServer) Build() *httptest.Server {
	m.t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, check := range m.checks {
			check(r)
		}
		if m.handler != nil {
			m.handler(w, r)
		}
	}))
	m.t.Cleanup(srv.Close)
	return srv
}

// respondJSON runs on the server goroutine, so it reports encode failures
// without stopping the test.
func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v), "encode response")
}

// withServerURL points the commands at url for the rest of the test.
func withServerURL(t *testing.T, url string) {
	t.Helper()
	old := serverURL
	serverURL = url
	t.Cleanup(func() { serverURL = old })
}

// captureOutput redirects command output for the rest of the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}
