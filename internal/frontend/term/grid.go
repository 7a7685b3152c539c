package term

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cyberquest/arcade/internal/render"
)

type cell struct {
	r    rune
	fg   color.RGBA
	bg   color.RGBA
	tail bool // right half of a wide rune
}

// Grid is a render.Canvas over terminal cells. Drawing happens in logical
// playfield units; each cell covers cellW x cellH of them.
type Grid struct {
	width, height float64
	cols, rows    int
	cellW, cellH  float64
	cells         []cell
}

func NewGrid(width, height float64, cols, rows int) *Grid {
	g := &Grid{width: width, height: height}
	g.Resize(cols, rows)
	return g
}

// Resize changes the cell count and clears the grid.
func (g *Grid) Resize(cols, rows int) {
	g.cols, g.rows = max(1, cols), max(1, rows)
	g.cellW = g.width / float64(g.cols)
	g.cellH = g.height / float64(g.rows)
	g.cells = make([]cell, g.cols*g.rows)
	for i := range g.cells {
		g.cells[i].r = ' '
	}
}

// Dims returns the grid size in cells.
func (g *Grid) Dims() (cols, rows int) { return g.cols, g.rows }

// Clone copies the grid so overlays can be drawn without touching the frame.
func (g *Grid) Clone() *Grid {
	out := *g
	out.cells = append([]cell(nil), g.cells...)
	return &out
}

func (g *Grid) Size() (float64, float64) { return g.width, g.height }

func (g *Grid) GlyphWidth() float64 { return g.cellW }

func (g *Grid) LineHeight() float64 { return g.cellH }

func (g *Grid) FillGradient(top, bottom color.RGBA) {
	for row := 0; row < g.rows; row++ {
		t := 0.0
		if g.rows > 1 {
			t = float64(row) / float64(g.rows-1)
		}
		bg := lerp(top, bottom, t)
		for col := 0; col < g.cols; col++ {
			g.cells[row*g.cols+col] = cell{r: ' ', bg: bg}
		}
	}
}

// FillRect paints cells whose centre lies inside the rectangle. Rectangles
// smaller than half a cell become a dot in the cell that holds them.
func (g *Grid) FillRect(x, y, w, h float64, c color.RGBA) {
	if w < g.cellW/2 && h < g.cellH/2 {
		if cl := g.at(g.col(x+w/2), g.row(y+h/2)); cl != nil {
			cl.r, cl.fg, cl.tail = '·', c, false
		}
		return
	}
	g.eachCell(func(cl *cell, cx, cy float64) {
		if cx >= x && cx < x+w && cy >= y && cy < y+h {
			cl.r, cl.tail = ' ', false
			cl.bg = blend(cl.bg, c)
		}
	})
}

// FillCircle paints cells whose centre lies inside the circle, and always the
// cell holding the centre.
func (g *Grid) FillCircle(cx, cy, r float64, c color.RGBA) {
	g.eachCell(func(cl *cell, x, y float64) {
		if math.Hypot(x-cx, y-cy) < r {
			cl.r, cl.tail = ' ', false
			cl.bg = blend(cl.bg, c)
		}
	})
	if cl := g.at(g.col(cx), g.row(cy)); cl != nil {
		cl.r, cl.tail = ' ', false
		cl.bg = blend(cl.bg, c)
	}
}

// StrokeCircle draws strokes at least half a cell wide; thinner outlines
// have no cell to land on and are skipped.
func (g *Grid) StrokeCircle(cx, cy, r, width float64, c color.RGBA) {
	if width < math.Min(g.cellW, g.cellH)/2 {
		return
	}
	g.eachCell(func(cl *cell, x, y float64) {
		if math.Abs(math.Hypot(x-cx, y-cy)-r) <= width/2 {
			cl.bg = blend(cl.bg, c)
		}
	})
}

// Text writes s from the cell holding (x, y). Wide runes take two cells;
// anything past the right edge is dropped.
func (g *Grid) Text(s string, x, y float64, c color.RGBA) {
	row := g.row(y + g.cellH/2)
	col := g.col(x + g.cellW/2)
	if row < 0 || row >= g.rows {
		return
	}
	for _, r := range s {
		n := render.RuneCells(r)
		if col+n > g.cols {
			return
		}
		if col >= 0 {
			cl := g.at(col, row)
			cl.r, cl.fg, cl.tail = r, c, false
			if n == 2 {
				tail := g.at(col+1, row)
				tail.r, tail.fg, tail.tail = 0, c, true
			}
		}
		col += n
	}
}

// Plain returns the grid's runes without colour, one line per row.
func (g *Grid) Plain() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range g.line(row) {
			b.WriteRune(cl.r)
		}
	}
	return b.String()
}

// String renders the grid with lipgloss, merging runs of equal colours.
func (g *Grid) String() string {
	lines := make([]string, g.rows)
	for row := 0; row < g.rows; row++ {
		var line, run strings.Builder
		var fg, bg color.RGBA
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(fg))).
				Background(lipgloss.Color(hex(bg)))
			line.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for _, cl := range g.line(row) {
			if run.Len() > 0 && (cl.fg != fg || cl.bg != bg) {
				flush()
			}
			fg, bg = cl.fg, cl.bg
			run.WriteRune(cl.r)
		}
		flush()
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

// line returns the cells to print for row, exactly cols cells wide. A wide
// rune whose right half was painted over prints as a space, as does a right
// half that lost its rune.
func (g *Grid) line(row int) []cell {
	out := make([]cell, 0, g.cols)
	cells := g.cells[row*g.cols : (row+1)*g.cols]
	for col := 0; col < len(cells); col++ {
		cl := cells[col]
		switch {
		case cl.tail:
			cl.r, cl.tail = ' ', false
		case render.RuneCells(cl.r) == 2:
			if col+1 < len(cells) && cells[col+1].tail {
				out = append(out, cl)
				col++
				continue
			}
			cl.r = ' '
		}
		out = append(out, cl)
	}
	return out
}

func (g *Grid) col(x float64) int { return int(math.Floor(x / g.cellW)) }

func (g *Grid) row(y float64) int { return int(math.Floor(y / g.cellH)) }

func (g *Grid) at(col, row int) *cell {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

// eachCell calls fn with every cell and its centre in logical units.
func (g *Grid) eachCell(fn func(cl *cell, cx, cy float64)) {
	for row := 0; row < g.rows; row++ {
		cy := (float64(row) + 0.5) * g.cellH
		for col := 0; col < g.cols; col++ {
			fn(&g.cells[row*g.cols+col], (float64(col)+0.5)*g.cellW, cy)
		}
	}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}

// blend draws c over dst using c's alpha.
func blend(dst, c color.RGBA) color.RGBA {
	if c.A == 0xff {
		return c
	}
	a := float64(c.A) / 0xff
	mix := func(d, s uint8) uint8 {
		return uint8(float64(d)*(1-a) + float64(s)*a)
	}
	return color.RGBA{mix(dst.R, c.R), mix(dst.G, c.G), mix(dst.B, c.B), 0xff}
}
