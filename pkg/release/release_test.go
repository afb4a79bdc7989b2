package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolution_String(t *testing.T) {
	tests := []struct {
		r    Resolution
		want string
	}{
		{ResolutionUnknown, "unknown"},
		{Resolution480p, "480p"},
		{Resolution720p, "720p"},
		{Resolution1080p, "1080p"},
		{Resolution2160p, "2160p"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.String())
		})
	}
}

func TestSource_String(t *testing.T) {
	tests := []struct {
		s    Source
		want string
	}{
		{SourceUnknown, "unknown"},
		{SourceBluRay, "bluray"},
		{SourceRemux, "remux"},
		{SourceWEBDL, "webdl"},
		{SourceWEBRip, "webrip"},
		{SourceHDTV, "hdtv"},
		{SourceDVD, "dvd"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.String())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "movie", KindMovie.String())
	assert.Equal(t, "tv", KindEpisode.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestInfo_Quality(t *testing.T) {
	info := &Info{Resolution: Resolution1080p, Source: SourceBluRay}
	assert.Equal(t, "1080p BluRay", info.Quality())

	info = &Info{Source: SourceWEBDL}
	assert.Equal(t, "WEB-DL", info.Quality())

	assert.Empty(t, (&Info{}).Quality())
}

func TestInfo_Episode(t *testing.T) {
	assert.Equal(t, 0, (&Info{}).Episode())
	assert.Equal(t, 4, (&Info{Episodes: []int{4, 5}}).Episode())
}

func TestEnumString_OutOfRange(t *testing.T) {
	assert.Equal(t, "unknown", Resolution(99).String())
	assert.Equal(t, "unknown", Source(-1).String())
	assert.Equal(t, "unknown", Codec(7).String())
	assert.Empty(t, (&Info{Source: Source(42)}).Quality())
}
