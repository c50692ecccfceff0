package field

import (
	"bytes"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	// highlightChance upgrades a cell to the highlight color, rolled
	// independently every frame so highlighting flickers on its own.
	highlightChance = 0.06

	// glyphFaceScale sizes the font face relative to the cell.
	glyphFaceScale = 0.62

	vignetteSteps    = 64
	vignetteMaxAlpha = 150
)

var backgroundColor = color.RGBA{R: 0x0a, G: 0x0e, B: 0x14, A: 0xff}

var monoSource = sync.OnceValue(func() *text.GoTextFaceSource {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		panic("field: load embedded mono font: " + err.Error())
	}
	return src
})

// Draw renders one frame: solid background, vignette, then every cell's
// glyph translated by the smoothed parallax offset plus pointer drift.
func (f *Field) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	f.vignette.draw(screen)

	g := f.Grid
	if g.Cols == 0 || g.Rows == 0 || len(f.opts.Alphabet) == 0 {
		return
	}

	s := g.Scale
	face := &text.GoTextFace{Source: monoSource(), Size: g.Cell * glyphFaceScale * s}

	tx := (g.OffsetX + f.Motion.DriftX) * s
	ty := (g.OffsetY + f.Parallax + f.Motion.DriftY) * s

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := row*g.Cols + col
			glyph := f.opts.Alphabet[f.glyphAt(cell)]

			fill := f.opts.GlyphColor
			if f.rand.Float64() < highlightChance {
				fill = f.opts.HighlightColor
			}

			op := &text.DrawOptions{}
			op.PrimaryAlign = text.AlignCenter
			op.SecondaryAlign = text.AlignCenter
			op.GeoM.Translate(tx+(float64(col)+0.5)*g.Cell*s, ty+(float64(row)+0.5)*g.Cell*s)
			op.ColorScale.ScaleWithColor(fill)
			text.Draw(screen, string(glyph), face, op)
		}
	}
}

// vignetteStrip caches a 1xN vertical gradient that darkens the top and
// bottom edges. It is size-independent and gets scaled over the whole
// screen at draw time, the pre-rendered-surface trick.
type vignetteStrip struct {
	img *ebiten.Image
}

func (v *vignetteStrip) draw(screen *ebiten.Image) {
	if v.img == nil {
		v.img = ebiten.NewImage(1, vignetteSteps)
		mid := float64(vignetteSteps-1) / 2
		for y := 0; y < vignetteSteps; y++ {
			d := math.Abs(float64(y)-mid) / mid
			a := uint8(vignetteMaxAlpha * d * d)
			v.img.Set(0, y, color.RGBA{A: a})
		}
	}
	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy())/vignetteSteps)
	screen.DrawImage(v.img, op)
}
