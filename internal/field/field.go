package field

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// parallaxSmoothing moves the displayed offset toward the target each
	// frame, producing lag rather than an instant jump.
	parallaxSmoothing = 0.08

	// minFrameDelta floors the measured frame time.
	minFrameDelta = time.Millisecond

	// Scramble injection tuning. Velocity is capped before being
	// normalized to an intensity in [0,1]; the device-class base rate is
	// lower on narrow windows; the final probability gates a batch whose
	// size scales with the grid.
	velocityCap        = 2.5 // px/ms
	scrambleBaseWide   = 3.0
	scrambleBaseNarrow = 1.5
	scrambleGate       = 0.85
	minScrambleProb    = 0.01
	scrambleBatchScale = 0.06
)

// Options configures one Field instance. All fields are required; callers
// go through config for defaults.
type Options struct {
	Density           float64 // 0 = auto by width
	ParallaxStrength  float64
	ScrambleFrequency float64
	GlyphColor        color.RGBA
	HighlightColor    color.RGBA
	Alphabet          []rune
	PageHeight        float64
	ReducedMotion     bool
}

// Field owns all state of one mounted effect instance: the grid, the
// scramble set, the motion state, and the smoothed parallax offset. One
// Field per window; nothing is shared.
type Field struct {
	opts  Options
	clock clockwork.Clock
	rand  *rand.Rand

	Grid     *Grid
	Scramble *ScrambleSet
	Motion   *Motion

	// Parallax is the displayed (smoothed) vertical offset in logical px.
	Parallax float64

	lastStep   time.Time
	hasStepped bool

	// vignette is a cached 1xN gradient strip, built on first draw.
	vignette vignetteStrip
}

// New creates a Field with a 1x1 placeholder grid; call Resize with the
// real window size before the first Step.
func New(opts Options, clock clockwork.Clock) *Field {
	f := &Field{
		opts:     opts,
		clock:    clock,
		rand:     rand.New(rand.NewPCG(uint64(clock.Now().UnixNano()), 0x9E3779B97F4A7C15)),
		Scramble: NewScrambleSet(clock),
		Motion:   NewMotion(clock, opts.PageHeight),
	}
	f.Grid = NewGrid(1, 1, 1, opts.Density, len(opts.Alphabet))
	return f
}

// Resize recomputes the grid for a new window size or scale factor and
// clears the scramble set, so no entry can outlive the grid it indexed.
func (f *Field) Resize(width, height, scale float64) {
	f.Grid = NewGrid(width, height, scale, f.opts.Density, len(f.opts.Alphabet))
	f.Scramble.Clear()
}

// Step advances the effect by one frame: parallax smoothing, scramble
// maintenance, and velocity decay. Drawing happens separately in Draw.
func (f *Field) Step() {
	now := f.clock.Now()
	dt := minFrameDelta
	if f.hasStepped {
		dt = now.Sub(f.lastStep)
		if dt < minFrameDelta {
			dt = minFrameDelta
		}
	}
	f.lastStep = now
	f.hasStepped = true

	target := 0.0
	if !f.opts.ReducedMotion {
		target = -f.Motion.ScrollY * f.opts.ParallaxStrength
	}
	f.Parallax += (target - f.Parallax) * parallaxSmoothing

	if f.opts.ReducedMotion {
		f.Scramble.Clear()
	} else {
		f.injectScramble()
		f.Scramble.Purge()
	}

	f.Motion.DecayVelocity(dt)
}

// injectScramble stochastically adds a batch of transient glyph overrides,
// at a rate driven by the smoothed scroll velocity.
func (f *Field) injectScramble() {
	total := f.Grid.Cols * f.Grid.Rows
	if total == 0 || len(f.opts.Alphabet) == 0 {
		return
	}

	intensity := clamp(f.Motion.Velocity, 0, velocityCap) / velocityCap
	base := scrambleBaseWide
	if f.Grid.Width < narrowWidth {
		base = scrambleBaseNarrow
	}
	prob := intensity * base * f.opts.ScrambleFrequency
	if prob < minScrambleProb || f.rand.Float64() >= scrambleGate {
		return
	}

	count := int(prob * float64(total) * scrambleBatchScale)
	if count < 1 {
		count = 1
	}
	ttlSpread := float64(scrambleTTLMax - scrambleTTLMin)
	for i := 0; i < count; i++ {
		cell := f.rand.IntN(total)
		glyph := f.rand.IntN(len(f.opts.Alphabet))
		ttl := scrambleTTLMin + time.Duration(f.rand.Float64()*ttlSpread)
		f.Scramble.Put(cell, glyph, ttl)
	}
}

// glyphAt resolves the glyph index shown at cell: the scramble override if
// one is live, else the base buffer entry.
func (f *Field) glyphAt(cell int) int {
	if g, ok := f.Scramble.Lookup(cell); ok {
		return g
	}
	return f.Grid.Base[cell]
}
