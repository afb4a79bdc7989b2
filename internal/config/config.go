// Package config loads the sortarr TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration.
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Log           LogConfig           `toml:"log"`
	Libraries     []LibraryConfig     `toml:"libraries"`
	Downloads     DownloadsConfig     `toml:"downloads"`
	Transfer      TransferConfig      `toml:"transfer"`
	Downloaders   DownloadersConfig   `toml:"downloaders"`
	TMDB          TMDBConfig          `toml:"tmdb"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	APIKey string `toml:"api_key"` // required in X-Api-Key when set
}

type DatabaseConfig struct {
	Path           string        `toml:"path"`
	EventRetention time.Duration `toml:"event_retention"` // negative keeps events forever
}

// LogConfig controls the daemon logger. File is optional; when set, JSON
// records are appended to it alongside the text output on stderr.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LibraryConfig is one library root files are organized into.
type LibraryConfig struct {
	Name    string `toml:"name"`
	Path    string `toml:"path"`
	Storage string `toml:"storage"`
	Type    string `toml:"type"` // movie, tv or empty for both
	Mode    string `toml:"mode"` // overrides transfer.mode
	Scrape  bool   `toml:"scrape"`
	Notify  bool   `toml:"notify"`
}

// DownloadsConfig describes the monitored download directories.
type DownloadsConfig struct {
	Dirs         []string       `toml:"dirs"`
	PollInterval time.Duration  `toml:"poll_interval"`
	LockFile     string         `toml:"lock_file"`
	Sources      []SourceConfig `toml:"sources"`
}

// SourceConfig pins a download directory to a named library.
type SourceConfig struct {
	Path    string `toml:"path"`
	Library string `toml:"library"`
}

type TransferConfig struct {
	Workers   int      `toml:"workers"`
	Mode      string   `toml:"mode"`
	MinSizeMB int      `toml:"min_size_mb"`
	Exclude   []string `toml:"exclude"`
	KeepTitle bool     `toml:"keep_title"`
	Overwrite bool     `toml:"overwrite"`

	MovieTemplate  string `toml:"movie_template"`
	SeriesTemplate string `toml:"series_template"`

	MediaExtensions    []string `toml:"media_extensions"`
	SubtitleExtensions []string `toml:"subtitle_extensions"`
	AudioExtensions    []string `toml:"audio_extensions"`
}

type DownloadersConfig struct {
	QBittorrent []QBittorrentConfig `toml:"qbittorrent"`
}

type QBittorrentConfig struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type TMDBConfig struct {
	APIKey   string        `toml:"api_key"`
	Language string        `toml:"language"`
	CacheTTL time.Duration `toml:"cache_ttl"`
}

type NotificationsConfig struct {
	Ntfy *NtfyConfig `toml:"ntfy"`
	Plex *PlexConfig `toml:"plex"`
}

type NtfyConfig struct {
	Server string `toml:"server"`
	Topic  string `toml:"topic"`
	Token  string `toml:"token"`
}

// PlexConfig enables partial library scans. LocalPath and RemotePath map a
// path as sortarr sees it to the path Plex sees.
type PlexConfig struct {
	URL        string `toml:"url"`
	Token      string `toml:"token"`
	LocalPath  string `toml:"local_path"`
	RemotePath string `toml:"remote_path"`
}

// Load reads, substitutes, defaults and validates the config at path.
// Unresolved environment variables and validation failures are reported
// together in a *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}
	cerr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}
	return cfg, nil
}

// LoadWithoutValidation reads the config and applies defaults only.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8484
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/sortarr.db"
	}
	if c.Database.EventRetention == 0 {
		c.Database.EventRetention = 30 * 24 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	for i := range c.Libraries {
		lib := &c.Libraries[i]
		if lib.Storage == "" {
			lib.Storage = "local"
		}
		if lib.Name == "" {
			lib.Name = lib.Type
			if lib.Name == "" {
				lib.Name = filepath.Base(lib.Path)
			}
		}
	}
	if c.Downloads.PollInterval == 0 {
		c.Downloads.PollInterval = 5 * time.Minute
	}
	if c.Downloads.LockFile == "" {
		c.Downloads.LockFile = filepath.Join(filepath.Dir(c.Database.Path), "poll.lock")
	}
	if c.Transfer.Workers == 0 {
		c.Transfer.Workers = 1
	}
	if c.Transfer.Mode == "" {
		c.Transfer.Mode = "copy"
	}
	for i := range c.Downloaders.QBittorrent {
		if c.Downloaders.QBittorrent[i].Name == "" {
			c.Downloaders.QBittorrent[i].Name = fmt.Sprintf("qbittorrent-%d", i+1)
		}
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = "en-US"
	}
	if c.TMDB.CacheTTL == 0 {
		c.TMDB.CacheTTL = 24 * time.Hour
	}
	if n := c.Notifications.Ntfy; n != nil && n.Server == "" {
		n.Server = "https://ntfy.sh"
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars expands ${VAR}, ${VAR:-default} and ${VAR:?message}.
// Unresolved references are left in place and reported in missing. An empty
// variable counts as unset for the :- and :? forms.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)
		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
