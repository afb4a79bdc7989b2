package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Movie(t *testing.T) {
	info := Parse("The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv")

	assert.Equal(t, "The Matrix", info.Title)
	assert.Equal(t, 1999, info.Year)
	assert.Equal(t, KindMovie, info.Kind)
	assert.Equal(t, Resolution1080p, info.Resolution)
	assert.Equal(t, SourceBluRay, info.Source)
	assert.Equal(t, CodecX264, info.Codec)
	assert.Equal(t, "GROUP", info.Group)
	assert.Equal(t, "matrix", info.CleanTitle)
}

func TestParse_YearInTitle(t *testing.T) {
	tests := []struct {
		name      string
		wantTitle string
		wantYear  int
	}{
		{"Blade.Runner.2049.2017.2160p.UHD.BluRay.x265", "Blade Runner 2049", 2017},
		{"2012.2009.1080p.BluRay", "2012", 2009},
		{"1917.2019.720p.WEB-DL", "1917", 2019},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Parse(tt.name)
			assert.Equal(t, tt.wantTitle, info.Title)
			assert.Equal(t, tt.wantYear, info.Year)
		})
	}
}

func TestParse_Episodes(t *testing.T) {
	tests := []struct {
		name       string
		wantTitle  string
		wantSeason int
		wantEps    []int
	}{
		{"Breaking.Bad.S01E05.720p.HDTV.x264", "Breaking Bad", 1, []int{5}},
		{"Show.Name.S02E01E02.1080p.WEB-DL", "Show Name", 2, []int{1, 2}},
		{"Show.Name.S01E01-E03.1080p.WEB-DL", "Show Name", 1, []int{1, 2, 3}},
		{"Show.Name.S01E08-10.1080p", "Show Name", 1, []int{8, 9, 10}},
		{"Show Name 3x07 HDTV", "Show Name", 3, []int{7}},
		{"Show.Name.S03.1080p.BluRay", "Show Name", 3, nil},
		{"Show Name Season 2 1080p", "Show Name", 2, nil},
		{"Show Name EP12 1080p", "Show Name", 0, []int{12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Parse(tt.name)
			assert.Equal(t, tt.wantTitle, info.Title)
			assert.Equal(t, tt.wantSeason, info.Season)
			assert.Equal(t, tt.wantEps, info.Episodes)
			assert.Equal(t, KindEpisode, info.Kind)
		})
	}
}

func TestParse_AnimeStyle(t *testing.T) {
	info := Parse("[SubsPlease] Frieren - 05 (1080p) [ABCD1234].mkv")

	assert.Equal(t, "SubsPlease", info.Group)
	assert.Equal(t, "Frieren", info.Title)
	assert.Equal(t, []int{5}, info.Episodes)
	assert.Equal(t, Resolution1080p, info.Resolution)
}

func TestParse_CJKEpisode(t *testing.T) {
	info := Parse("凡人修仙传 第2季 第15集 1080p.mp4")

	assert.Equal(t, "凡人修仙传", info.Title)
	assert.Equal(t, 2, info.Season)
	assert.Equal(t, []int{15}, info.Episodes)
}

func TestParse_Part(t *testing.T) {
	info := Parse("Some.Movie.2004.CD2.DVDRip.mkv")
	assert.Equal(t, "Some Movie", info.Title)
	assert.Equal(t, "CD2", info.Part)

	// A part number inside the title stays in the title.
	info = Parse("Back.to.the.Future.Part.II.1989.1080p.BluRay")
	assert.Equal(t, "Back to the Future Part II", info.Title)
	assert.Empty(t, info.Part)
}

func TestParse_Flags(t *testing.T) {
	info := Parse("Movie.2020.PROPER.1080p.WEBRip")
	assert.True(t, info.Proper)
	assert.False(t, info.Repack)
	assert.Equal(t, SourceWEBRip, info.Source)

	info = Parse("Movie.2020.REPACK.2160p.BluRay.REMUX")
	assert.True(t, info.Repack)
	assert.Equal(t, SourceRemux, info.Source)
}

func TestParse_UnknownKeepsName(t *testing.T) {
	info := Parse("holiday_video.mkv")
	assert.Equal(t, "holiday video", info.Title)
	assert.Equal(t, KindUnknown, info.Kind)
}

func TestParse_UnknownExtensionKept(t *testing.T) {
	info := Parse("Mr.Robot.S01E02.1080p.WEB-DL")
	assert.Equal(t, "Mr Robot", info.Title)
	assert.Equal(t, SourceWEBDL, info.Source)
	assert.Empty(t, info.Group)
}
