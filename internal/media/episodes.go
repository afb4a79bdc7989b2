package media

import (
	"fmt"
	"slices"
	"strings"
)

// FormatEpisodes renders episode numbers compactly: [1 2 3 5] → "E01-E03,E05".
func FormatEpisodes(eps []int) string {
	if len(eps) == 0 {
		return ""
	}
	sorted := slices.Clone(eps)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var parts []string
	start, prev := sorted[0], sorted[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("E%02d", start))
		} else {
			parts = append(parts, fmt.Sprintf("E%02d-E%02d", start, prev))
		}
	}
	for _, ep := range sorted[1:] {
		if ep == prev+1 {
			prev = ep
			continue
		}
		flush()
		start, prev = ep, ep
	}
	flush()
	return strings.Join(parts, ",")
}

// SeasonEpisode renders "S01 E01-E03", "S01" without episodes, or only the
// episodes when season is 0.
func SeasonEpisode(season int, eps []int) string {
	epStr := FormatEpisodes(eps)
	if season == 0 {
		return epStr
	}
	if epStr == "" {
		return fmt.Sprintf("S%02d", season)
	}
	return fmt.Sprintf("S%02d %s", season, epStr)
}
