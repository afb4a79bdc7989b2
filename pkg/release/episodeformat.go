package release

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidEpisodeFormat is returned when an episode format or offset cannot
// be compiled.
var ErrInvalidEpisodeFormat = errors.New("invalid episode format")

// placeholderPattern matches {ep}, {part} and {*} in an episode format.
var placeholderPattern = regexp.MustCompile(`\{(ep|part|\*)\}`)

var offsetPattern = regexp.MustCompile(`(?i)^\s*(?:EP)?\s*([+-])\s*(\d+)\s*$`)

// EpisodeFormat describes how episode numbers are laid out in file names that
// the generic parser gets wrong, e.g. "Show.第{ep}话.{part}.mkv".
type EpisodeFormat struct {
	Pattern string `json:"pattern,omitempty"` // {ep} is required, {part} and {*} optional
	Offset  string `json:"offset,omitempty"`  // "EP+1", "EP-12", "+3"
	Start   int    `json:"start,omitempty"`   // first accepted episode, 0 = unbounded
	End     int    `json:"end,omitempty"`     // last accepted episode, 0 = unbounded
}

// IsZero reports whether no format was configured.
func (f EpisodeFormat) IsZero() bool {
	return f.Pattern == "" && f.Offset == "" && f.Start == 0 && f.End == 0
}

// EpisodeMatcher is a compiled EpisodeFormat.
type EpisodeMatcher struct {
	re         *regexp.Regexp
	offset     int
	start, end int
}

// Compile validates the format and builds a matcher.
func (f EpisodeFormat) Compile() (*EpisodeMatcher, error) {
	m := &EpisodeMatcher{start: f.Start, end: f.End}

	if f.Offset != "" {
		sm := offsetPattern.FindStringSubmatch(f.Offset)
		if sm == nil {
			return nil, fmt.Errorf("%w: offset %q", ErrInvalidEpisodeFormat, f.Offset)
		}
		n, _ := strconv.Atoi(sm[2])
		if sm[1] == "-" {
			n = -n
		}
		m.offset = n
	}

	if f.Pattern != "" {
		if !strings.Contains(f.Pattern, "{ep}") {
			return nil, fmt.Errorf("%w: pattern %q has no {ep}", ErrInvalidEpisodeFormat, f.Pattern)
		}
		var b strings.Builder
		b.WriteString("(?i)")
		last := 0
		for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(f.Pattern, -1) {
			b.WriteString(regexp.QuoteMeta(f.Pattern[last:loc[0]]))
			switch f.Pattern[loc[2]:loc[3]] {
			case "ep":
				b.WriteString(`(?P<ep>\d{1,4})`)
			case "part":
				b.WriteString(`(?P<part>[A-Za-z0-9]+)`)
			default:
				b.WriteString(`.*?`)
			}
			last = loc[1]
		}
		b.WriteString(regexp.QuoteMeta(f.Pattern[last:]))
		re, err := regexp.Compile(b.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEpisodeFormat, err)
		}
		m.re = re
	}
	return m, nil
}

// Match reports whether name carries an episode this format accepts.
// Without a pattern every name matches.
func (m *EpisodeMatcher) Match(name string) bool {
	if m.re == nil {
		return true
	}
	ep, _, ok := m.extract(name)
	if !ok {
		return false
	}
	return m.inWindow(ep)
}

// Split returns the episode range and part for name after the offset has
// been applied. ok is false when the pattern does not match; callers then
// keep whatever the generic parser found.
func (m *EpisodeMatcher) Split(name string) (begin, end int, part string, ok bool) {
	if m.re == nil {
		return 0, 0, "", false
	}
	ep, part, ok := m.extract(name)
	if !ok {
		return 0, 0, "", false
	}
	return ep, ep, part, true
}

// Shift applies the configured offset to parsed episode numbers, dropping
// any that end up below 1.
func (m *EpisodeMatcher) Shift(eps []int) []int {
	if m.offset == 0 {
		return eps
	}
	out := make([]int, 0, len(eps))
	for _, ep := range eps {
		if ep+m.offset > 0 {
			out = append(out, ep+m.offset)
		}
	}
	return out
}

func (m *EpisodeMatcher) extract(name string) (int, string, bool) {
	sm := m.re.FindStringSubmatch(name)
	if sm == nil {
		return 0, "", false
	}
	var ep int
	var part string
	for i, n := range m.re.SubexpNames() {
		switch n {
		case "ep":
			ep, _ = strconv.Atoi(sm[i])
		case "part":
			part = sm[i]
		}
	}
	ep += m.offset
	if ep < 1 {
		return 0, "", false
	}
	return ep, part, true
}

func (m *EpisodeMatcher) inWindow(ep int) bool {
	if m.start > 0 && ep < m.start {
		return false
	}
	if m.end > 0 && ep > m.end {
		return false
	}
	return true
}
