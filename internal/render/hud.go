package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/cyberquest/arcade/internal/game"
	"github.com/cyberquest/arcade/internal/input"
)

// HUD is what the surrounding UI shows over a running session.
type HUD struct {
	Score    int
	TimeLeft float64
	Lives    int
	Rank     string
	Paused   bool
}

// HUDFor builds the HUD line for a state.
func HUDFor(s game.State, rank string) HUD {
	return HUD{
		Score:    s.Score,
		TimeLeft: s.TimeLeft,
		Lives:    s.Lives,
		Rank:     rank,
		Paused:   s.Phase == game.PhaseIdle,
	}
}

// DrawHUD paints score, time, lives and rank along the top edge.
func DrawHUD(c Canvas, h HUD, p Palette) {
	w, _ := c.Size()
	gw, lh := c.GlyphWidth(), c.LineHeight()
	pad := gw

	c.FillRect(0, 0, w, lh+pad, p.Panel)
	left := fmt.Sprintf("SCORE %d  TIME %d", h.Score, int(math.Ceil(h.TimeLeft)))
	c.Text(left, pad, pad/2, p.HUD)

	hearts := strings.Repeat("♥", max(0, h.Lives)) + strings.Repeat("·", max(0, game.MaxLives-h.Lives))
	right := fmt.Sprintf("%s  LIVES %s", h.Rank, hearts)
	lifeColor := p.HUD
	if h.Lives <= 1 {
		lifeColor = p.Warning
	}
	c.Text(right, w-pad-float64(TextCells(right))*gw, pad/2, lifeColor)

	if h.Paused {
		DrawOverlay(c, "PAUSED", []string{"Press P to resume"}, p)
	}
}

// DrawOverlay paints a centred panel with a title and body lines.
func DrawOverlay(c Canvas, title string, lines []string, p Palette) {
	w, h := c.Size()
	gw, lh := c.GlyphWidth(), c.LineHeight()

	cells := TextCells(title)
	for _, l := range lines {
		cells = max(cells, TextCells(l))
	}
	pw := float64(cells+4) * gw
	ph := float64(len(lines)+3) * lh
	x, y := (w-pw)/2, (h-ph)/2
	c.FillRect(x, y, pw, ph, p.Panel)

	ty := y + lh
	c.Text(title, (w-float64(TextCells(title))*gw)/2, ty, p.Projectile)
	for i, l := range lines {
		c.Text(l, (w-float64(TextCells(l))*gw)/2, ty+float64(i+1)*lh+lh/2, p.HUD)
	}
}

// BoardLine is one leaderboard row as the summary shows it.
type BoardLine struct {
	Username string
	Score    int
}

// Summary is the end-of-session panel content. It always carries the
// locally held score and rank; the leaderboard part is optional.
type Summary struct {
	Score    int
	Rank     string
	Position int // 1-based leaderboard position, 0 when unknown
	Board    []BoardLine
}

// maxBoardLines caps the leaderboard rows the summary lists.
const maxBoardLines = 5

// Lines renders the summary body as text lines.
func (s Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("Final score: %d", s.Score),
		fmt.Sprintf("Rank: %s", s.Rank),
	}
	if s.Position > 0 {
		lines = append(lines, fmt.Sprintf("Leaderboard position: #%d", s.Position))
	}
	lines = append(lines, "")
	if len(s.Board) == 0 {
		lines = append(lines, "Leaderboard unavailable")
	} else {
		lines = append(lines, "Top players")
		for i, b := range s.Board {
			if i == maxBoardLines {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %-14s %6d", i+1, b.Username, b.Score))
		}
	}
	return append(lines, "", "Press Enter to play again")
}

// DrawSummary paints the game-over panel.
func DrawSummary(c Canvas, s Summary, p Palette) {
	DrawOverlay(c, "MISSION COMPLETE", s.Lines(), p)
}

// DrawTouchPad paints the on-screen buttons, brighter while held.
func DrawTouchPad(c Canvas, pad input.TouchPad, held input.Snapshot, p Palette) {
	gw, lh := c.GlyphWidth(), c.LineHeight()
	for _, b := range pad.Buttons {
		fill := p.Button
		if held.Held(b.Action) {
			fill = p.ButtonHeld
		}
		r := b.Bounds
		c.FillRect(r.X, r.Y, r.W, r.H, fill)
		lw := float64(TextCells(b.Label)) * gw
		c.Text(b.Label, r.X+(r.W-lw)/2, r.Y+(r.H-lh)/2, p.HUD)
	}
}
