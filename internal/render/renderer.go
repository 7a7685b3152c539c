package render

import (
	"math"

	"github.com/cyberquest/arcade/internal/game"
)

const (
	starCount        = 60
	playerHeight     = 26.0
	projectileRadius = 6.0
	labelSpread      = 1.6 // label box width relative to the entity diameter
)

// Renderer paints the play scene. It only reads the state it is given.
type Renderer struct {
	tuning  game.Tuning
	palette Palette
}

func NewRenderer(t game.Tuning, p Palette) *Renderer {
	return &Renderer{tuning: t, palette: p}
}

func (r *Renderer) Palette() Palette { return r.palette }

// Draw paints background, starfield, player, projectile and entities, in
// that order. HUD and overlays are drawn separately by the host.
func (r *Renderer) Draw(c Canvas, s game.State) {
	p := r.palette
	c.FillGradient(p.SkyTop, p.SkyBottom)
	r.drawStars(c, s.Frame)
	r.drawPlayer(c, s.PlayerX)
	if s.Projectile != nil {
		c.FillCircle(s.Projectile.X, s.Projectile.Y, projectileRadius, p.Projectile)
	}
	for _, e := range s.Entities {
		r.drawEntity(c, e, s.Hinting)
	}
}

// StarAt is the position of star i at the given frame. It is a pure
// function of its inputs; nothing about the starfield is stored.
func StarAt(i, frame int, w, h float64) (x, y, size float64) {
	layer := float64(i % 3)
	x = math.Mod(float64(i)*137.508, w)
	y = math.Mod(float64(i)*91.3+float64(frame)*(0.3+0.25*layer), h)
	return x, y, 1.5 + 0.5*layer
}

func (r *Renderer) drawStars(c Canvas, frame int) {
	w, h := c.Size()
	for i := 0; i < starCount; i++ {
		x, y, size := StarAt(i, frame, w, h)
		c.FillRect(x, y, size, size, r.palette.Star)
	}
}

func (r *Renderer) drawPlayer(c Canvas, x float64) {
	t := r.tuning
	half := t.PlayerWidth / 2
	c.FillRect(x-half, t.PlayerY-playerHeight/2, t.PlayerWidth, playerHeight, r.palette.Player)
	c.FillCircle(x, t.PlayerY-playerHeight/2, playerHeight/2, r.palette.Player)
	c.FillCircle(x, t.PlayerY-playerHeight/2, playerHeight/4, r.palette.Cockpit)
}

func (r *Renderer) drawEntity(c Canvas, e game.Entity, hinting bool) {
	fill := r.palette.Neutral
	if hinting {
		fill = r.palette.Benign
		if e.Class == game.Threat {
			fill = r.palette.Threat
		}
	}
	c.FillCircle(e.X, e.Y, e.Radius, fill)
	c.StrokeCircle(e.X, e.Y, e.Radius, 2, r.palette.Outline)

	gw, lh := c.GlyphWidth(), c.LineHeight()
	maxCells := int(2 * e.Radius * labelSpread / gw)
	lines := Wrap(e.Label, maxCells)
	top := e.Y - float64(len(lines))*lh/2
	for i, line := range lines {
		lw := float64(TextCells(line)) * gw
		c.Text(line, e.X-lw/2, top+float64(i)*lh, r.palette.Label)
	}
}
