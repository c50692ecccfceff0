// Package app wires window input and lifecycle to a field.Field. It is the
// only package that talks to ebiten's global input state.
package app

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/glyphfield/internal/field"
)

const (
	// wheelStep converts one wheel notch into scroll pixels, roughly a
	// browser line delta.
	wheelStep = 40.0

	// arrowStep is applied every tick while an arrow key is held.
	arrowStep = 8.0

	// pageStep is the fraction of the window height jumped by the pager
	// keys.
	pageStep = 0.9
)

// Game runs one Field instance inside an ebiten window.
type Game struct {
	field *field.Field
	log   *log.Logger

	// Latest values reported by LayoutF, in logical px.
	width  float64
	height float64
	scale  float64

	// Values the grid was last computed for.
	gridW     float64
	gridH     float64
	gridScale float64
}

func New(f *field.Field, logger *log.Logger) *Game {
	return &Game{field: f, log: logger}
}

// Update handles input and advances the effect by one frame. It runs
// whether or not the window has focus, like the original effect, which kept
// scheduling frames for hidden pages.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	// At most one grid recompute per tick, no matter how many resize
	// events the window saw in between.
	if g.width > 0 && (g.width != g.gridW || g.height != g.gridH || g.scale != g.gridScale) {
		g.field.Resize(g.width, g.height, g.scale)
		g.gridW, g.gridH, g.gridScale = g.width, g.height, g.scale
		m := g.field.Grid.Metrics
		g.log.Debug("grid recomputed",
			"w", g.width, "h", g.height, "scale", g.scale,
			"cols", m.Cols, "rows", m.Rows, "cell", m.Cell)
	}

	g.handleScroll()

	cx, cy := ebiten.CursorPosition()
	s := g.scale
	if s <= 0 {
		s = 1
	}
	g.field.Motion.PointerAt(float64(cx)/s, float64(cy)/s, g.width, g.height)

	g.field.Step()
	return nil
}

func (g *Game) handleScroll() {
	m := g.field.Motion

	if _, wy := ebiten.Wheel(); wy != 0 {
		m.ScrollBy(-wy * wheelStep)
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		m.ScrollBy(arrowStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		m.ScrollBy(-arrowStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.ScrollBy(g.height * pageStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		m.ScrollBy(-g.height * pageStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		m.ScrollTo(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		m.ScrollToEnd()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.field.Draw(screen)
}

// LayoutF records the window's logical size and scale factor and sizes the
// backing store in device pixels.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	s := ebiten.Monitor().DeviceScaleFactor()
	g.width, g.height, g.scale = outsideWidth, outsideHeight, s
	return outsideWidth * s, outsideHeight * s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("app: Layout is never called when LayoutF is implemented")
}
