package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestSetupLogger_StderrOnly(t *testing.T) {
	var stderr bytes.Buffer
	log, closer, err := SetupLogger(LogConfig{Level: "warn"}, &stderr)
	require.NoError(t, err)
	defer closer.Close()

	log.Info("hidden")
	log.Warn("shown", "component", "test")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "msg=shown")
}

func TestSetupLogger_FanoutToFile(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "sortarr.log")
	log, closer, err := SetupLogger(LogConfig{Level: "info", File: path}, &stderr)
	require.NoError(t, err)

	log.Info("organized", "files", 2)
	require.NoError(t, closer.Close())

	assert.Contains(t, stderr.String(), "msg=organized")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &rec))
	assert.Equal(t, "organized", rec["msg"])
	assert.Equal(t, float64(2), rec["files"])
}
