// Package release parses release and file names into structured media hints.
package release

import "strings"

// Resolution is the vertical video resolution a name advertises.
type Resolution int

const (
	ResolutionUnknown Resolution = iota
	Resolution480p
	Resolution720p
	Resolution1080p
	Resolution2160p
)

// Source is where the video was taken from.
type Source int

const (
	SourceUnknown Source = iota
	SourceBluRay
	SourceRemux
	SourceWEBDL
	SourceWEBRip
	SourceHDTV
	SourceDVD
)

// Codec is the video codec.
type Codec int

const (
	CodecUnknown Codec = iota
	CodecX264
	CodecX265
	CodecAV1
)

// Kind is the media type suggested by the name alone.
type Kind int

const (
	KindUnknown Kind = iota
	KindMovie
	KindEpisode
)

const unknownStr = "unknown"

var (
	resolutionNames = [...]string{unknownStr, "480p", "720p", "1080p", "2160p"}
	sourceNames     = [...]string{unknownStr, "bluray", "remux", "webdl", "webrip", "hdtv", "dvd"}
	sourceLabels    = [...]string{"", "BluRay", "Remux", "WEB-DL", "WEBRip", "HDTV", "DVD"}
	codecNames      = [...]string{unknownStr, "x264", "x265", "av1"}
	kindNames       = [...]string{unknownStr, "movie", "tv"}
)

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}

func (r Resolution) String() string { return enumName(resolutionNames[:], int(r)) }
func (s Source) String() string     { return enumName(sourceNames[:], int(s)) }
func (c Codec) String() string      { return enumName(codecNames[:], int(c)) }
func (k Kind) String() string       { return enumName(kindNames[:], int(k)) }

// Info contains parsed release information.
type Info struct {
	Title      string
	Year       int
	Kind       Kind
	Season     int   // 0 when the name carries no season marker
	Episodes   []int // ascending; a range S01E01-E03 expands to [1,2,3]
	Part       string
	Resolution Resolution
	Source     Source
	Codec      Codec
	Group      string
	Proper     bool
	Repack     bool

	// Normalized title for matching
	CleanTitle string
}

// Episode returns the first episode number, or 0.
func (i *Info) Episode() int {
	if len(i.Episodes) == 0 {
		return 0
	}
	return i.Episodes[0]
}

// Quality renders the resolution and source as used in library file names,
// e.g. "1080p BluRay". Unknown parts are omitted.
func (i *Info) Quality() string {
	var parts []string
	if i.Resolution != ResolutionUnknown {
		parts = append(parts, i.Resolution.String())
	}
	if label := enumName(sourceLabels[:], int(i.Source)); label != "" {
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}
