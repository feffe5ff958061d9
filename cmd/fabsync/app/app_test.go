package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	a, err := New("1.2.3", "abc", "today")
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", a.Version())
	assert.NotNil(t, a.Config())
	assert.NotNil(t, a.Logger())
}

func TestWithConfig(t *testing.T) {
	custom := &Config{Profile: "Site-A", Root: "/srv/fabdb"}

	a, err := New("dev", "", "", WithConfig(custom))
	require.NoError(t, err)
	assert.Equal(t, "Site-A", a.Config().Profile)
	assert.Equal(t, "/srv/fabdb", a.Config().Root)
}

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"default", Config{}, "info"},
		{"verbose", Config{Verbose: true}, "debug"},
		{"quiet", Config{Quiet: true}, "warn"},
		{"both flags quiet wins", Config{Verbose: true, Quiet: true}, "warn"},
		{"explicit level wins", Config{Verbose: true, LogLevel: "error"}, "error"},
		{"invalid level falls back", Config{LogLevel: "loud"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	c := &Config{Format: "table", LogLevel: "info"}

	c.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, c.Verbose)
	assert.True(t, c.NoColor)
	assert.Equal(t, "table", c.Format, "empty flag keeps prior value")
	assert.Equal(t, "info", c.LogLevel)

	c.UpdateFromFlags(false, false, false, "json", "debug")
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, "debug", c.LogLevel)
}
