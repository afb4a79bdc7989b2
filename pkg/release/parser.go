package release

import (
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	separatorRe  = regexp.MustCompile(`[._]+`)
	leadingTagRe = regexp.MustCompile(`^\[([^\]]+)\]\s*`)
	groupRe      = regexp.MustCompile(`-([A-Za-z0-9]+)$`)
	yearRe       = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

	// S01E01, S01E01E02, S01E01-E03, S01E01-03
	seRe        = regexp.MustCompile(`(?i)\bS(\d{1,2})\s?E(\d{1,4})((?:\s?-?\s?E\d{1,4})*)(?:-(\d{1,4}))?\b`)
	crossRe     = regexp.MustCompile(`\b(\d{1,2})x(\d{2,3})\b`)
	seasonRe    = regexp.MustCompile(`(?i)\b(?:S(\d{1,2})|Season\s?(\d{1,2}))\b`)
	episodeRe   = regexp.MustCompile(`(?i)\b(?:EP?|Episode\s?)(\d{1,4})\b`)
	animeEpRe   = regexp.MustCompile(`\s-\s(\d{2,4})(?:v\d)?\b`)
	cjkEpRe     = regexp.MustCompile(`第\s*(\d{1,4})\s*[集话話]`)
	cjkSeasonRe = regexp.MustCompile(`第\s*(\d{1,2})\s*季`)
	digitsRe    = regexp.MustCompile(`\d+`)

	resolutionRe = regexp.MustCompile(`(?i)\b(2160p|4k|uhd|1080[pi]|720p|576p|480p)\b`)
	partRe       = regexp.MustCompile(`(?i)\b(?:part|pt)\s?(\d{1,2}|[IVX]{1,4})\b`)
	discRe       = regexp.MustCompile(`(?i)\b(cd|disc|disk)\s?(\d{1,2})\b`)
	properRe     = regexp.MustCompile(`(?i)\bproper\b`)
	repackRe     = regexp.MustCompile(`(?i)\b(repack|rerip)\b`)
)

var sourcePatterns = []struct {
	re     *regexp.Regexp
	source Source
}{
	{regexp.MustCompile(`(?i)\bremux\b`), SourceRemux},
	{regexp.MustCompile(`(?i)\b(blu-?ray|bdrip|brrip|bd25|bd50)\b`), SourceBluRay},
	{regexp.MustCompile(`(?i)\bweb-?rip\b`), SourceWEBRip},
	{regexp.MustCompile(`(?i)\b(web-?dl|web)\b`), SourceWEBDL},
	{regexp.MustCompile(`(?i)\bhdtv\b`), SourceHDTV},
	{regexp.MustCompile(`(?i)\b(dvdrip|dvd)\b`), SourceDVD},
}

var codecPatterns = []struct {
	re    *regexp.Regexp
	codec Codec
}{
	{regexp.MustCompile(`(?i)\b(x265|h\s?265|hevc)\b`), CodecX265},
	{regexp.MustCompile(`(?i)\b(x264|h\s?264|avc)\b`), CodecX264},
	{regexp.MustCompile(`(?i)\bav1\b`), CodecAV1},
}

// knownExtensions are stripped before parsing. Anything else after the last
// dot is treated as part of the name.
var knownExtensions = map[string]bool{
	"mkv": true, "mp4": true, "avi": true, "ts": true, "m2ts": true, "wmv": true,
	"mov": true, "iso": true, "webm": true, "flv": true, "rmvb": true, "strm": true,
	"srt": true, "ass": true, "ssa": true, "sub": true, "idx": true, "sup": true, "vtt": true,
	"mka": true, "flac": true, "dts": true, "ac3": true, "aac": true, "mp3": true, "eac3": true,
}

// Parse extracts title, year, season/episode and quality hints from a release
// or file name. It never fails; unknown parts stay at their zero value.
func Parse(name string) *Info {
	info := &Info{}

	base := stripExtension(strings.TrimSpace(name))
	if m := leadingTagRe.FindStringSubmatch(base); m != nil {
		info.Group = m[1]
		base = base[len(m[0]):]
	}
	if m := groupRe.FindStringSubmatch(base); m != nil && !isEpisodeToken(m[1]) {
		info.Group = m[1]
		base = base[:len(base)-len(m[0])]
	}

	text := separatorRe.ReplaceAllString(base, " ")
	cut := len(text)
	mark := func(idx int) {
		if idx >= 0 && idx < cut {
			cut = idx
		}
	}

	parseEpisodes(info, text, mark)

	yearAt := -1
	// The last year not at the very start wins, so "2001 A Space Odyssey 1968"
	// and "Blade Runner 2049 2017" keep the number in the title.
	for _, loc := range yearRe.FindAllStringIndex(text, -1) {
		if loc[0] == 0 {
			continue
		}
		info.Year, _ = strconv.Atoi(text[loc[0]:loc[1]])
		yearAt = loc[0]
	}
	mark(yearAt)

	if loc := resolutionRe.FindStringSubmatchIndex(text); loc != nil {
		info.Resolution = parseResolution(text[loc[2]:loc[3]])
		mark(loc[0])
	}
	for _, p := range sourcePatterns {
		if loc := p.re.FindStringIndex(text); loc != nil {
			info.Source = p.source
			mark(loc[0])
			break
		}
	}
	for _, p := range codecPatterns {
		if loc := p.re.FindStringIndex(text); loc != nil {
			info.Codec = p.codec
			mark(loc[0])
			break
		}
	}
	if loc := properRe.FindStringIndex(text); loc != nil {
		info.Proper = true
		mark(loc[0])
	}
	if loc := repackRe.FindStringIndex(text); loc != nil {
		info.Repack = true
		mark(loc[0])
	}

	if m := discRe.FindStringSubmatchIndex(text); m != nil {
		info.Part = strings.ToUpper(text[m[2]:m[3]]) + text[m[4]:m[5]]
		mark(m[0])
	} else if m := partRe.FindStringSubmatchIndex(text[cut:]); m != nil {
		// "Part II" inside a title is part of the title; only a part marker
		// after the title counts.
		info.Part = "Part " + strings.ToUpper(text[cut+m[2]:cut+m[3]])
	}

	info.Title = strings.Trim(text[:cut], " -([{")
	if info.Title == "" && cut == 0 {
		info.Title = strings.Trim(text, " -([{")
	}
	info.CleanTitle = CleanTitle(info.Title)

	switch {
	case info.Season > 0 || len(info.Episodes) > 0:
		info.Kind = KindEpisode
	case info.Year > 0:
		info.Kind = KindMovie
	}
	return info
}

func parseEpisodes(info *Info, text string, mark func(int)) {
	if m := seRe.FindStringSubmatchIndex(text); m != nil {
		info.Season, _ = strconv.Atoi(text[m[2]:m[3]])
		first, _ := strconv.Atoi(text[m[4]:m[5]])
		info.Episodes = []int{first}
		if m[6] >= 0 && m[7] > m[6] {
			tail := text[m[6]:m[7]]
			nums := atois(digitsRe.FindAllString(tail, -1))
			if strings.Contains(tail, "-") && len(nums) > 0 {
				info.Episodes = expandRange(first, nums[len(nums)-1])
			} else {
				info.Episodes = append(info.Episodes, nums...)
			}
		}
		if m[8] >= 0 {
			last, _ := strconv.Atoi(text[m[8]:m[9]])
			info.Episodes = expandRange(first, last)
		}
		info.Episodes = normalizeEpisodes(info.Episodes)
		mark(m[0])
		return
	}
	if m := crossRe.FindStringSubmatchIndex(text); m != nil {
		info.Season, _ = strconv.Atoi(text[m[2]:m[3]])
		ep, _ := strconv.Atoi(text[m[4]:m[5]])
		info.Episodes = []int{ep}
		mark(m[0])
		return
	}

	if m := cjkSeasonRe.FindStringSubmatchIndex(text); m != nil {
		info.Season, _ = strconv.Atoi(text[m[2]:m[3]])
		mark(m[0])
	} else if m := seasonRe.FindStringSubmatchIndex(text); m != nil {
		if m[2] >= 0 {
			info.Season, _ = strconv.Atoi(text[m[2]:m[3]])
		} else {
			info.Season, _ = strconv.Atoi(text[m[4]:m[5]])
		}
		mark(m[0])
	}

	for _, re := range []*regexp.Regexp{cjkEpRe, episodeRe, animeEpRe} {
		if m := re.FindStringSubmatchIndex(text); m != nil {
			ep, _ := strconv.Atoi(text[m[2]:m[3]])
			info.Episodes = []int{ep}
			mark(m[0])
			return
		}
	}
}

func parseResolution(s string) Resolution {
	switch strings.ToLower(s) {
	case "2160p", "4k", "uhd":
		return Resolution2160p
	case "1080p", "1080i":
		return Resolution1080p
	case "720p":
		return Resolution720p
	case "576p", "480p":
		return Resolution480p
	default:
		return ResolutionUnknown
	}
}

func stripExtension(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return name
	}
	if knownExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))] {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

// isEpisodeToken reports whether a trailing "-xxx" is an episode range or a
// hyphenated source tag rather than a release group.
func isEpisodeToken(s string) bool {
	if strings.EqualFold(s, "DL") || strings.EqualFold(s, "Rip") {
		return true
	}
	s = strings.TrimLeft(strings.ToUpper(s), "E")
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

func atois(ss []string) []int {
	out := make([]int, 0, len(ss))
	for _, s := range ss {
		if n, err := strconv.Atoi(s); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func expandRange(first, last int) []int {
	if last < first {
		return []int{first}
	}
	eps := make([]int, 0, last-first+1)
	for ep := first; ep <= last; ep++ {
		eps = append(eps, ep)
	}
	return eps
}

func normalizeEpisodes(eps []int) []int {
	slices.Sort(eps)
	return slices.Compact(eps)
}
