package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Default()
	assert.Equal(t, 0.08, c.ParallaxStrength)
	assert.Equal(t, 0.08, c.ScrambleFrequency)
	assert.Equal(t, 0.0, c.Density)
	assert.False(t, c.ReducedMotion)
	require.NoError(t, c.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphfield.toml")
	body := `
density = 1.2
scramble_frequency = 0.2
alphabet = "blocks"
reduced_motion = true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.2, c.Density)
	assert.Equal(t, 0.2, c.ScrambleFrequency)
	assert.Equal(t, "blocks", c.Alphabet)
	assert.True(t, c.ReducedMotion)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.08, c.ParallaxStrength)
	assert.Equal(t, "#3d4f63", c.GlyphColor)
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("density = ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveAlphabet(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "named set", in: "binary", want: "01"},
		{name: "case insensitive", in: "Binary", want: "01"},
		{name: "literal glyphs", in: "xyz", want: "xyz"},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAlphabet(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0x80), c.G)
	assert.Equal(t, uint8(0x00), c.B)
	assert.Equal(t, uint8(0xff), c.A)

	_, err = ParseColor("not-a-color")
	assert.Error(t, err)
}

func TestValidateRejectsBadRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative density", func(c *Config) { c.Density = -1 }},
		{"parallax too high", func(c *Config) { c.ParallaxStrength = 1.5 }},
		{"scramble negative", func(c *Config) { c.ScrambleFrequency = -0.1 }},
		{"zero window", func(c *Config) { c.WindowWidth = 0 }},
		{"negative page", func(c *Config) { c.PageHeight = -10 }},
		{"empty alphabet", func(c *Config) { c.Alphabet = "" }},
		{"bad color", func(c *Config) { c.GlyphColor = "#zz0000" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
