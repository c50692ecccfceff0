package field

import (
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// velocitySmoothing blends each scroll-event velocity sample into the
	// running estimate.
	velocitySmoothing = 0.35

	// velocityDecaySecs is the exponential time constant that bleeds the
	// velocity estimate off between scroll events, so scramble activity
	// dies down once scrolling stops.
	velocityDecaySecs = 0.12

	// Pointer drift is bounded to +/-driftRange logical px per axis and
	// only active on windows at least driftMinWidth wide.
	driftRange    = 2.0
	driftMinWidth = 1024.0
)

// Motion is the shared input state: the raw scroll target, a smoothed
// scroll-velocity estimate, and the pointer-derived drift offsets. Event
// handlers write it; the frame step reads it. Everything runs on the game
// tick, so no locking.
type Motion struct {
	clock      clockwork.Clock
	pageHeight float64

	ScrollY  float64 // raw parallax target, clamped to [0,pageHeight]
	Velocity float64 // px/ms, exponentially smoothed

	DriftX float64
	DriftY float64

	lastScroll  time.Time
	hasScrolled bool
}

func NewMotion(clock clockwork.Clock, pageHeight float64) *Motion {
	return &Motion{clock: clock, pageHeight: pageHeight}
}

// ScrollBy moves the scroll target by delta and folds a velocity sample
// (distance over elapsed time since the previous event) into the estimate.
// The first event only establishes the time baseline.
func (m *Motion) ScrollBy(delta float64) {
	now := m.clock.Now()
	prev := m.ScrollY
	m.ScrollY = clamp(m.ScrollY+delta, 0, m.pageHeight)

	if m.hasScrolled {
		elapsedMS := float64(now.Sub(m.lastScroll)) / float64(time.Millisecond)
		if elapsedMS < 1 {
			elapsedMS = 1
		}
		sample := math.Abs(m.ScrollY-prev) / elapsedMS
		m.Velocity += (sample - m.Velocity) * velocitySmoothing
	}
	m.lastScroll = now
	m.hasScrolled = true
}

// ScrollTo jumps the target to y (Home/End). Velocity is handled the same
// way as ScrollBy.
func (m *Motion) ScrollTo(y float64) {
	m.ScrollBy(y - m.ScrollY)
}

// ScrollToEnd jumps the target to the bottom of the virtual page.
func (m *Motion) ScrollToEnd() {
	m.ScrollTo(m.pageHeight)
}

// PointerAt maps the cursor offset from the window center to a bounded
// drift. Windows narrower than driftMinWidth get no drift at all.
func (m *Motion) PointerAt(x, y, width, height float64) {
	if width < driftMinWidth || width <= 0 || height <= 0 {
		m.DriftX, m.DriftY = 0, 0
		return
	}
	m.DriftX = clamp((x-width/2)/(width/2), -1, 1) * driftRange
	m.DriftY = clamp((y-height/2)/(height/2), -1, 1) * driftRange
}

// DecayVelocity bleeds the velocity estimate toward zero over dt.
func (m *Motion) DecayVelocity(dt time.Duration) {
	m.Velocity *= math.Exp(-dt.Seconds() / velocityDecaySecs)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
