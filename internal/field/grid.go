// Package field implements the animated glyph-grid effect: grid layout,
// scroll/pointer motion state, transient glyph scrambles, and the per-frame
// step and draw that tie them together.
package field

import (
	"math"

	"github.com/iburimskiy/glyphfield/internal/prng"
)

const (
	baseCellSize = 20.0
	minCellSize  = 16.0
	maxCellSize  = 24.0

	// Auto-density breakpoints by logical window width.
	wideWidth   = 1024.0
	narrowWidth = 768.0
)

// Metrics describes the computed grid geometry, in logical pixels.
type Metrics struct {
	Cols    int
	Rows    int
	Cell    float64
	OffsetX float64
	OffsetY float64
}

// Grid is the glyph lattice for one window size. Base holds one alphabet
// index per cell, filled from a PRNG seeded by the window size, so the same
// size always reproduces the same layout. Immutable until the next resize.
type Grid struct {
	Metrics
	Base []int

	Width  float64 // logical px
	Height float64
	Scale  float64 // device pixels per logical px
}

// AutoDensity picks the default density multiplier for a window width.
func AutoDensity(width float64) float64 {
	switch {
	case width >= wideWidth:
		return 1.0
	case width >= narrowWidth:
		return 0.9
	default:
		return 0.8
	}
}

// layoutSeed derives the grid PRNG seed from the window size. Mixing
// constants follow the usual 32-bit avalanche finalizer.
func layoutSeed(width, height int) uint32 {
	seed := uint32(width)*2654435761 ^ uint32(height)*0x9E3779B9
	seed = (seed ^ (seed >> 16)) * 0x85ebca6b
	seed = (seed ^ (seed >> 13)) * 0xc2b2ae35
	return seed ^ (seed >> 16)
}

// NewGrid computes the layout for a window of width x height logical pixels
// and fills the base glyph buffer. A density of 0 selects AutoDensity.
// The cell size is always clamped to [minCellSize, maxCellSize].
func NewGrid(width, height, scale, density float64, alphabetLen int) *Grid {
	if density == 0 {
		density = AutoDensity(width)
	}
	cell := baseCellSize * density
	cell = math.Min(math.Max(cell, minCellSize), maxCellSize)

	cols := int(width / cell)
	rows := int(height / cell)
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}

	g := &Grid{
		Metrics: Metrics{
			Cols:    cols,
			Rows:    rows,
			Cell:    cell,
			OffsetX: (width - float64(cols)*cell) / 2,
			OffsetY: (height - float64(rows)*cell) / 2,
		},
		Width:  width,
		Height: height,
		Scale:  scale,
	}

	g.Base = make([]int, cols*rows)
	if alphabetLen > 0 {
		r := prng.New(layoutSeed(int(width), int(height)))
		for i := range g.Base {
			g.Base[i] = r.IntN(alphabetLen)
		}
	}
	return g
}
