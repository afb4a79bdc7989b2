package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("SORTARR_T_KEY", "abc123")
	t.Setenv("SORTARR_T_EMPTY", "")

	tests := []struct {
		name        string
		in          string
		want        string
		wantMissing []string
	}{
		{name: "plain", in: `api_key = "${SORTARR_T_KEY}"`, want: `api_key = "abc123"`},
		{name: "empty plain is set", in: `x = "${SORTARR_T_EMPTY}"`, want: `x = ""`},
		{
			name:        "unset plain",
			in:          `x = "${SORTARR_T_UNSET}"`,
			want:        `x = "${SORTARR_T_UNSET}"`,
			wantMissing: []string{"SORTARR_T_UNSET"},
		},
		{name: "default when unset", in: "${SORTARR_T_UNSET:-8484}", want: "8484"},
		{name: "default when empty", in: "${SORTARR_T_EMPTY:-info}", want: "info"},
		{name: "default ignored when set", in: "${SORTARR_T_KEY:-other}", want: "abc123"},
		{name: "empty default", in: "[${SORTARR_T_UNSET:-}]", want: "[]"},
		{
			name:        "required empty",
			in:          "${SORTARR_T_EMPTY:?set the TMDB key}",
			want:        "${SORTARR_T_EMPTY:?set the TMDB key}",
			wantMissing: []string{"SORTARR_T_EMPTY: set the TMDB key"},
		},
		{name: "required set", in: "${SORTARR_T_KEY:?unused}", want: "abc123"},
		{
			name:        "several",
			in:          "${SORTARR_T_KEY}/${SORTARR_T_UNSET}/${SORTARR_T_EMPTY:-d}/${SORTARR_T_OTHER:?needed}",
			want:        "abc123/${SORTARR_T_UNSET}/d/${SORTARR_T_OTHER:?needed}",
			wantMissing: []string{"SORTARR_T_UNSET", "SORTARR_T_OTHER: needed"},
		},
		{name: "not a reference", in: "$SORTARR_T_KEY ${1BAD}", want: "$SORTARR_T_KEY ${1BAD}"},
		{name: "comments too", in: "# key ${SORTARR_T_KEY}", want: "# key abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestConfigError(t *testing.T) {
	assert.Empty(t, (&ConfigError{Path: "a.toml"}).Error())
	assert.False(t, (&ConfigError{}).HasErrors())

	e := &ConfigError{
		Path:    "/etc/sortarr/config.toml",
		Missing: []string{"TMDB_API_KEY"},
		Errors:  []string{"libraries: at least one library is required", "transfer.workers: must be at least 1"},
	}
	assert.True(t, e.HasErrors())
	assert.Equal(t, "invalid config /etc/sortarr/config.toml\n"+
		"missing environment variables: TMDB_API_KEY\n"+
		"validation failed:\n"+
		"  - libraries: at least one library is required\n"+
		"  - transfer.workers: must be at least 1", e.Error())

	onlyMissing := &ConfigError{Path: "c.toml", Missing: []string{"A", "B"}}
	assert.Equal(t, "invalid config c.toml\nmissing environment variables: A, B", onlyMissing.Error())
}
