// Package render paints a game.State onto a Canvas. Hosts supply the Canvas
// (an Ebitengine image, a terminal cell grid); all coordinates are logical
// playfield units.
package render

import "image/color"

// Canvas is the set of draw calls the renderer needs.
type Canvas interface {
	// Size is the logical size of the drawing surface.
	Size() (w, h float64)
	// FillGradient paints the whole surface with a vertical gradient.
	FillGradient(top, bottom color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
	StrokeCircle(cx, cy, r, width float64, c color.RGBA)
	// Text draws s with its top-left corner at x, y.
	Text(s string, x, y float64, c color.RGBA)
	// GlyphWidth is the advance of a narrow glyph; wide glyphs take two.
	GlyphWidth() float64
	LineHeight() float64
}

// Palette is the colour scheme shared by scene, HUD and overlays.
type Palette struct {
	SkyTop     color.RGBA
	SkyBottom  color.RGBA
	Star       color.RGBA
	Player     color.RGBA
	Cockpit    color.RGBA
	Projectile color.RGBA
	Neutral    color.RGBA
	Threat     color.RGBA
	Benign     color.RGBA
	Outline    color.RGBA
	Label      color.RGBA
	HUD        color.RGBA
	Warning    color.RGBA
	Panel      color.RGBA
	Button     color.RGBA
	ButtonHeld color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		SkyTop:     color.RGBA{0x0b, 0x10, 0x2b, 0xff},
		SkyBottom:  color.RGBA{0x2a, 0x1a, 0x5e, 0xff},
		Star:       color.RGBA{0xcf, 0xd8, 0xff, 0xff},
		Player:     color.RGBA{0x3d, 0xd6, 0xf5, 0xff},
		Cockpit:    color.RGBA{0xff, 0xff, 0xff, 0xff},
		Projectile: color.RGBA{0xff, 0xe0, 0x4d, 0xff},
		Neutral:    color.RGBA{0x4a, 0x6f, 0xd8, 0xff},
		Threat:     color.RGBA{0xe0, 0x4a, 0x4a, 0xff},
		Benign:     color.RGBA{0x3c, 0xb8, 0x6e, 0xff},
		Outline:    color.RGBA{0xff, 0xff, 0xff, 0xc0},
		Label:      color.RGBA{0xff, 0xff, 0xff, 0xff},
		HUD:        color.RGBA{0xf2, 0xf2, 0xf2, 0xff},
		Warning:    color.RGBA{0xff, 0x8a, 0x3d, 0xff},
		Panel:      color.RGBA{0x05, 0x08, 0x18, 0xe0},
		Button:     color.RGBA{0xff, 0xff, 0xff, 0x40},
		ButtonHeld: color.RGBA{0xff, 0xff, 0xff, 0x90},
	}
}
