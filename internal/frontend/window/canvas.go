package window

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gradientBands is how many flat strips approximate a vertical gradient.
const gradientBands = 48

// textScale enlarges the bitmap font to suit the 900x600 playfield.
const textScale = 1.5

var fontFace = text.NewGoXFace(bitmapfont.Face)

// Canvas draws render calls onto an Ebitengine image whose pixels are
// logical playfield units.
type Canvas struct {
	img *ebiten.Image
}

func NewCanvas(img *ebiten.Image) *Canvas {
	return &Canvas{img: img}
}

func (c *Canvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *Canvas) FillGradient(top, bottom color.RGBA) {
	w, h := c.Size()
	band := h / gradientBands
	for i := 0; i < gradientBands; i++ {
		t := float64(i) / float64(gradientBands-1)
		vector.DrawFilledRect(c.img, 0, float32(float64(i)*band), float32(w), float32(band+1), lerp(top, bottom, t), false)
	}
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	vector.DrawFilledRect(c.img, float32(x), float32(y), float32(w), float32(h), col, true)
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	vector.DrawFilledCircle(c.img, float32(cx), float32(cy), float32(r), col, true)
}

func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col color.RGBA) {
	vector.StrokeCircle(c.img, float32(cx), float32(cy), float32(r), float32(width), col, true)
}

func (c *Canvas) Text(s string, x, y float64, col color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.img, s, fontFace, op)
}

func (c *Canvas) GlyphWidth() float64 {
	return text.Advance("0", fontFace) * textScale
}

func (c *Canvas) LineHeight() float64 {
	m := fontFace.Metrics()
	return (m.HAscent + m.HDescent + m.HLineGap) * textScale
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}
