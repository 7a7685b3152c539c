// Package frontend holds what every host shares: the screens around a
// session and the keys that drive them. The window and terminal hosts live
// in subpackages.
package frontend

import (
	"sort"
	"strings"

	"github.com/cyberquest/arcade/internal/data"
	"github.com/cyberquest/arcade/internal/game"
	"github.com/cyberquest/arcade/internal/input"
	"github.com/cyberquest/arcade/internal/loop"
	"github.com/cyberquest/arcade/internal/render"
	"github.com/cyberquest/arcade/internal/score"
)

// Scene draws the HUD and the title, pause and summary screens on top of the
// frame the driver rendered.
type Scene struct {
	Driver  *loop.Driver
	Sampler *input.Sampler
	Board   *score.Leaderboard // nil when the API is not configured
	Ranks   *data.RankTable
	Palette render.Palette
	Title   string
	Pad     *input.TouchPad // nil hides the on-screen buttons
}

// Command is a host-level key that is not a game action.
type Command uint8

const (
	CommandNone Command = iota
	CommandStart
	CommandPause
	CommandQuit
)

// ParseCommand maps a key name to a Command.
func ParseCommand(key string) Command {
	switch strings.ToLower(key) {
	case "enter", "return":
		return CommandStart
	case "p", "escape", "esc":
		return CommandPause
	case "q", "ctrl+c":
		return CommandQuit
	}
	return CommandNone
}

// Handle applies a command to the driver. It reports whether anything
// changed; CommandQuit is left to the host.
func (s *Scene) Handle(cmd Command) bool {
	switch cmd {
	case CommandStart:
		if s.Driver.Paused() {
			return false
		}
		return s.Driver.Start()
	case CommandPause:
		return s.Driver.TogglePause()
	}
	return false
}

// Rank is the title for score, empty without a rank table.
func (s *Scene) Rank(points int) string {
	if s.Ranks == nil {
		return ""
	}
	return s.Ranks.Title(points)
}

// Summary builds the end-of-session panel from the cached leaderboard.
func (s *Scene) Summary(final int) render.Summary {
	sum := render.Summary{Score: final, Rank: s.Rank(final)}
	if s.Board == nil {
		return sum
	}
	sum.Position = s.Board.Position(final)
	for _, e := range s.Board.Entries() {
		sum.Board = append(sum.Board, render.BoardLine{Username: e.Username, Score: e.Score})
	}
	return sum
}

// Draw paints everything that surrounds the playfield for the current state.
func (s *Scene) Draw(c render.Canvas) {
	st := s.Driver.Snapshot()
	p := s.Palette

	if st.Phase == game.PhaseIdle && !s.Driver.Paused() {
		render.DrawOverlay(c, s.Title, s.TitleLines(), p)
		return
	}
	render.DrawHUD(c, render.HUDFor(st, s.Rank(st.Score)), p)
	if s.Pad != nil && st.Phase == game.PhaseRunning {
		render.DrawTouchPad(c, *s.Pad, s.Sampler.Snapshot(), p)
	}
	if st.Phase == game.PhaseOver {
		render.DrawSummary(c, s.Summary(st.Score), p)
	}
}

// TitleLines is the body of the title screen.
func (s *Scene) TitleLines() []string {
	lines := []string{
		"Shoot the threats, let the safe messages pass.",
		"Hold THINK to reveal which is which.",
		"",
		"Move  " + s.keyList(input.ActionLeft) + " / " + s.keyList(input.ActionRight),
		"Fire  " + s.keyList(input.ActionFire),
		"Think " + s.keyList(input.ActionThink),
		"Pause P",
		"",
	}
	if s.Board != nil {
		if top := s.Board.Entries(); len(top) > 0 {
			lines = append(lines, "Best so far: "+top[0].Username, "")
		}
	}
	return append(lines, "Press Enter to start")
}

func (s *Scene) keyList(a input.Action) string {
	if s.Sampler == nil {
		return a.String()
	}
	keys := s.Sampler.Bindings().Keys(a)
	if len(keys) == 0 {
		return a.String()
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
