package field

import (
	"image/color"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(reduced bool) Options {
	return Options{
		Density:           0,
		ParallaxStrength:  0.08,
		ScrambleFrequency: 0.08,
		GlyphColor:        color.RGBA{R: 0x3d, G: 0x4f, B: 0x63, A: 0xff},
		HighlightColor:    color.RGBA{R: 0x7f, G: 0xd4, B: 0xc1, A: 0xff},
		Alphabet:          []rune("ABCDEFGH"),
		PageHeight:        4096,
		ReducedMotion:     reduced,
	}
}

func TestParallaxSmoothing(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := New(testOptions(false), clock)
	f.Resize(1024, 768, 1)

	f.Motion.ScrollTo(500)
	f.Step()

	// Target is -500*0.08 = -40; one frame moves 8% of the way there.
	assert.InDelta(t, -40*parallaxSmoothing, f.Parallax, 1e-9)

	for i := 0; i < 500; i++ {
		clock.Advance(16 * time.Millisecond)
		f.Step()
	}
	assert.InDelta(t, -40, f.Parallax, 0.01, "offset converges to the target")
}

func TestReducedMotionKeepsStill(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := New(testOptions(true), clock)
	f.Resize(1024, 768, 1)

	f.Motion.ScrollTo(3000)
	f.Motion.Velocity = velocityCap
	f.Scramble.Put(0, 1, time.Second)

	for i := 0; i < 100; i++ {
		clock.Advance(16 * time.Millisecond)
		f.Step()
		assert.Equal(t, 0.0, f.Parallax)
		assert.Equal(t, 0, f.Scramble.Len())
	}
}

func TestScrambleInjectionUnderScroll(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := New(testOptions(false), clock)
	f.Resize(1024, 768, 1)

	for i := 0; i < 200; i++ {
		f.Motion.Velocity = velocityCap
		clock.Advance(16 * time.Millisecond)
		f.Step()
	}

	require.Greater(t, f.Scramble.Len(), 0, "fast scrolling must produce scrambles")

	total := f.Grid.Cols * f.Grid.Rows
	for cell, e := range f.Scramble.entries {
		assert.GreaterOrEqual(t, cell, 0)
		assert.Less(t, cell, total)
		assert.GreaterOrEqual(t, e.glyph, 0)
		assert.Less(t, e.glyph, len(f.opts.Alphabet))
	}
}

func TestNoScrambleWhenIdle(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := New(testOptions(false), clock)
	f.Resize(1024, 768, 1)

	for i := 0; i < 200; i++ {
		clock.Advance(16 * time.Millisecond)
		f.Step()
	}
	assert.Equal(t, 0, f.Scramble.Len())
}

func TestScrambleEntriesExpire(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := New(testOptions(false), clock)
	f.Resize(1024, 768, 1)

	for i := 0; i < 50; i++ {
		f.Motion.Velocity = velocityCap
		clock.Advance(16 * time.Millisecond)
		f.Step()
	}
	require.Greater(t, f.Scramble.Len(), 0)

	// Longest TTL is scrambleTTLMax; after that every entry is gone.
	f.Motion.Velocity = 0
	clock.Advance(scrambleTTLMax)
	f.Step()
	assert.Equal(t, 0, f.Scramble.Len())
}

func TestGlyphAtPrefersLiveScramble(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := New(testOptions(false), clock)
	f.Resize(1024, 768, 1)

	base := f.Grid.Base[0]
	override := (base + 1) % len(f.opts.Alphabet)
	f.Scramble.Put(0, override, 300*time.Millisecond)

	assert.Equal(t, override, f.glyphAt(0))

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, base, f.glyphAt(0), "expired override must not render")
}

func TestResizeClearsScrambleAndRebuildsGrid(t *testing.T) {
	clock := clockwork.NewFakeClock()
	f := New(testOptions(false), clock)
	f.Resize(1024, 768, 1)

	f.Scramble.Put(f.Grid.Cols*f.Grid.Rows-1, 0, time.Second)
	require.Equal(t, 1, f.Scramble.Len())

	f.Resize(320, 240, 1)
	assert.Equal(t, 0, f.Scramble.Len(), "no stale index may survive a shrink")
	assert.Equal(t, 320.0, f.Grid.Width)
	assert.Len(t, f.Grid.Base, f.Grid.Cols*f.Grid.Rows)
}

func TestReducedMotionAfterScrollRelease(t *testing.T) {
	// Parallax stays pinned at zero for any scroll position, not just a
	// zero one.
	clock := clockwork.NewFakeClock()
	f := New(testOptions(true), clock)
	f.Resize(1024, 768, 1)

	for _, y := range []float64{0, 10, 2048, 4096} {
		f.Motion.ScrollTo(y)
		clock.Advance(16 * time.Millisecond)
		f.Step()
		assert.Equal(t, 0.0, f.Parallax, "scroll %v", y)
	}
}
