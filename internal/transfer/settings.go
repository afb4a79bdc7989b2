package transfer

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/vmunix/sortarr/internal/media"
)

// Settings are the hot-reloadable transfer options.
type Settings struct {
	Workers   int
	Mode      media.TransferMode // default when neither task nor library sets one
	MinSizeMB int
	Exclude   []string // case-insensitive regular expressions on the source path
	KeepTitle bool     // reuse the title of an earlier transfer of the same media

	MediaExtensions    []string
	SubtitleExtensions []string
	AudioExtensions    []string

	// Roots bound the empty-directory cleanup after a move: download and
	// library directories are never removed, nor is anything above them.
	Roots []string
}

// compiled is Settings with its patterns and extension sets built.
type compiled struct {
	Settings
	exclude    []*regexp.Regexp
	classifier *media.Classifier
}

func compile(cfg Settings) (*compiled, error) {
	c := &compiled{Settings: cfg}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Mode == "" {
		c.Mode = media.ModeCopy
	}
	for _, p := range cfg.Exclude {
		if p == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		c.exclude = append(c.exclude, re)
	}
	c.classifier = media.NewClassifier(cfg.MediaExtensions, cfg.SubtitleExtensions, cfg.AudioExtensions)
	return c, nil
}

func (c *compiled) excluded(path string) bool {
	for _, re := range c.exclude {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// settingsHolder swaps compiled settings atomically.
type settingsHolder struct {
	v atomic.Pointer[compiled]
}

func (h *settingsHolder) load() *compiled { return h.v.Load() }

func (h *settingsHolder) store(c *compiled) { h.v.Store(c) }
