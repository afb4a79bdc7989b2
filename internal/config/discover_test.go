package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[server]\n"), 0o644))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/sortarr/config.toml", DefaultPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/media")
	assert.Equal(t, "/home/media/.config/sortarr/config.toml", DefaultPath())
}

func TestSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, []string{"./config.toml", "/xdg/sortarr/config.toml", "/etc/sortarr/config.toml"}, SearchPaths())
}

func TestDiscover(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "elsewhere.toml")
		touch(t, path)
		t.Setenv(EnvConfig, path)

		got, err := Discover()
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("env override must exist", func(t *testing.T) {
		t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "missing.toml"))

		_, err := Discover()
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), EnvConfig)
	})

	t.Run("working directory first", func(t *testing.T) {
		dir := t.TempDir()
		xdg := t.TempDir()
		touch(t, filepath.Join(dir, "config.toml"))
		touch(t, filepath.Join(xdg, "sortarr", "config.toml"))
		t.Chdir(dir)
		t.Setenv(EnvConfig, "")
		t.Setenv("XDG_CONFIG_HOME", xdg)

		got, err := Discover()
		require.NoError(t, err)
		assert.Equal(t, "./config.toml", got)
	})

	t.Run("xdg", func(t *testing.T) {
		xdg := t.TempDir()
		touch(t, filepath.Join(xdg, "sortarr", "config.toml"))
		t.Chdir(t.TempDir())
		t.Setenv(EnvConfig, "")
		t.Setenv("XDG_CONFIG_HOME", xdg)

		got, err := Discover()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(xdg, "sortarr", "config.toml"), got)
	})

	t.Run("nothing found", func(t *testing.T) {
		if _, err := os.Stat("/etc/sortarr/config.toml"); err == nil {
			t.Skip("system config present")
		}
		t.Chdir(t.TempDir())
		t.Setenv(EnvConfig, "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		_, err := Discover()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config not found")
	})
}
