package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortarr", "config.toml")

	require.NoError(t, WriteDefault(path, false))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[server]")
	assert.Contains(t, string(content), "[[libraries]]")
	assert.Contains(t, string(content), "${TMDB_API_KEY:-}")
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine"), 0o644))

	require.Error(t, WriteDefault(path, false))
	content, _ := os.ReadFile(path)
	assert.Equal(t, "# mine", string(content))

	require.NoError(t, WriteDefault(path, true))
	content, _ = os.ReadFile(path)
	assert.Equal(t, DefaultConfig(), string(content))
}

func TestDefaultConfigLoads(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "test-tmdb-key")
	t.Setenv("QBIT_USER", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-tmdb-key", cfg.TMDB.APIKey)
	assert.Equal(t, "admin", cfg.Downloaders.QBittorrent[0].Username)
	assert.Len(t, cfg.Libraries, 2)
	assert.Equal(t, "move", cfg.Transfer.Mode)
	assert.Equal(t, 8484, cfg.Server.Port)
}

func TestConfig_Write(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Host: "127.0.0.1", Port: 9000},
		Libraries: []LibraryConfig{{Name: "movies", Path: "/media/movies"}},
	}
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, cfg.Write(path))

	back, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", back.Server.Host)
	assert.Equal(t, 9000, back.Server.Port)
	assert.Equal(t, "/media/movies", back.Libraries[0].Path)
}
