// Package config holds the tunables of the glyph field effect and loads
// optional overrides from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Config is the full set of user-facing knobs. Zero density means "choose
// by window width". Colors are hex strings ("#rrggbb").
type Config struct {
	WindowWidth  int `toml:"window_width"`
	WindowHeight int `toml:"window_height"`

	Density           float64 `toml:"density"`
	ParallaxStrength  float64 `toml:"parallax_strength"`
	ScrambleFrequency float64 `toml:"scramble_frequency"`

	GlyphColor     string `toml:"glyph_color"`
	HighlightColor string `toml:"highlight_color"`

	// Alphabet is either a named set (see Alphabets) or a literal string
	// of glyphs.
	Alphabet string `toml:"alphabet"`

	// PageHeight is the virtual scrollable height in pixels that the
	// wheel and pager keys move through.
	PageHeight float64 `toml:"page_height"`

	ReducedMotion bool `toml:"reduced_motion"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WindowWidth:       1024,
		WindowHeight:      768,
		Density:           0, // auto by width
		ParallaxStrength:  0.08,
		ScrambleFrequency: 0.08,
		GlyphColor:        "#3d4f63",
		HighlightColor:    "#7fd4c1",
		Alphabet:          "katakana",
		PageHeight:        4096,
		ReducedMotion:     false,
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged; a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Alphabets maps named glyph sets to their runes.
var Alphabets = map[string][]rune{
	"katakana": []rune("アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン0123456789"),
	"ascii":    []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"),
	"binary":   []rune("01"),
	"blocks":   []rune("░▒▓█▚▞▖▗▘▝"),
	"symbols":  []rune("+-*/=<>[]{}()#%&@$!?;:"),
}

// ResolveAlphabet maps a named set or a literal glyph string to runes.
func ResolveAlphabet(s string) ([]rune, error) {
	if set, ok := Alphabets[strings.ToLower(s)]; ok {
		return set, nil
	}
	if s == "" {
		return nil, errors.New("alphabet cannot be empty")
	}
	return []rune(s), nil
}

// ParseColor parses a "#rrggbb" hex string into an opaque RGBA color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Validate checks ranges and that the alphabet and colors resolve. Bad
// values are reported, not silently repaired; the only clamping done in
// this program is the grid's cell-size clamp.
func (c Config) Validate() error {
	if c.WindowWidth < 1 || c.WindowHeight < 1 {
		return fmt.Errorf("window size %dx%d out of range", c.WindowWidth, c.WindowHeight)
	}
	if c.Density < 0 {
		return fmt.Errorf("density %g must be >= 0", c.Density)
	}
	if c.ParallaxStrength < 0 || c.ParallaxStrength > 1 {
		return fmt.Errorf("parallax_strength %g out of range 0-1", c.ParallaxStrength)
	}
	if c.ScrambleFrequency < 0 || c.ScrambleFrequency > 1 {
		return fmt.Errorf("scramble_frequency %g out of range 0-1", c.ScrambleFrequency)
	}
	if c.PageHeight < 0 {
		return fmt.Errorf("page_height %g must be >= 0", c.PageHeight)
	}
	if _, err := ResolveAlphabet(c.Alphabet); err != nil {
		return err
	}
	if _, err := ParseColor(c.GlyphColor); err != nil {
		return err
	}
	if _, err := ParseColor(c.HighlightColor); err != nil {
		return err
	}
	return nil
}
