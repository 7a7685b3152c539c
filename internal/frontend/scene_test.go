package frontend

import (
	"context"
	"image/color"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cyberquest/arcade/internal/data"
	"github.com/cyberquest/arcade/internal/game"
	"github.com/cyberquest/arcade/internal/input"
	"github.com/cyberquest/arcade/internal/loop"
	"github.com/cyberquest/arcade/internal/render"
	"github.com/cyberquest/arcade/internal/score"
)

// textCanvas keeps only the text drawn on it.
type textCanvas struct{ lines []string }

func (c *textCanvas) Size() (float64, float64) { return 900, 600 }
func (c *textCanvas) FillGradient(_, _ color.RGBA) {}
func (c *textCanvas) FillRect(_, _, _, _ float64, _ color.RGBA) {}
func (c *textCanvas) FillCircle(_, _, _ float64, _ color.RGBA) {}
func (c *textCanvas) StrokeCircle(_, _, _, _ float64, _ color.RGBA) {}
func (c *textCanvas) Text(s string, _, _ float64, _ color.RGBA) { c.lines = append(c.lines, s) }
func (c *textCanvas) GlyphWidth() float64 { return 10 }
func (c *textCanvas) LineHeight() float64 { return 20 }

func (c *textCanvas) all() string { return strings.Join(c.lines, "\n") }

type staticAPI struct{ entries []score.Entry }

func (a staticAPI) SubmitScore(context.Context, score.Submission) error { return nil }

func (a staticAPI) Leaderboard(context.Context, int) ([]score.Entry, error) {
	return a.entries, nil
}

const ranksYAML = `
- min_score: 0
  title: Rookie Surfer
- min_score: 500
  title: Link Inspector
`

func newScene(t *testing.T, sessionLength float64) (*Scene, *loop.FrameQueue) {
	t.Helper()
	tun := game.DefaultTuning()
	tun.SpawnRate = 0
	tun.SessionLength = sessionLength

	q := loop.NewFrameQueue()
	sampler := input.NewSampler(nil)
	d := loop.NewDriver(loop.Config{
		Sim:       game.NewSim(tun, game.LabelPool{}, rand.New(rand.NewSource(1)), nil),
		Sampler:   sampler,
		Scheduler: q,
		FixedStep: 250 * time.Millisecond,
	})
	t.Cleanup(d.Close)

	ranks, err := data.ParseRankTable([]byte(ranksYAML))
	require.NoError(t, err)

	board := score.NewLeaderboard(staticAPI{entries: []score.Entry{{Username: "bo", Score: 900}, {Username: "cy", Score: 100}}}, 1, zap.NewNop())
	require.NoError(t, board.Refresh(context.Background()))

	return &Scene{
		Driver:  d,
		Sampler: sampler,
		Board:   board,
		Ranks:   ranks,
		Palette: render.DefaultPalette(),
		Title:   "PHISH BLASTER",
	}, q
}

func TestParseCommand(t *testing.T) {
	assert.Equal(t, CommandStart, ParseCommand("Enter"))
	assert.Equal(t, CommandPause, ParseCommand("p"))
	assert.Equal(t, CommandPause, ParseCommand("esc"))
	assert.Equal(t, CommandQuit, ParseCommand("ctrl+c"))
	assert.Equal(t, CommandNone, ParseCommand("a"))
}

func TestSceneTitleScreen(t *testing.T) {
	s, _ := newScene(t, 60)
	c := &textCanvas{}
	s.Draw(c)

	out := c.all()
	assert.Contains(t, out, "PHISH BLASTER")
	assert.Contains(t, out, "Press Enter to start")
	assert.Contains(t, out, "Best so far: bo")
	assert.Contains(t, out, "Fire  space")
}

func TestSceneHandle(t *testing.T) {
	s, q := newScene(t, 60)
	assert.False(t, s.Handle(CommandPause), "nothing to pause yet")
	require.True(t, s.Handle(CommandStart))
	assert.False(t, s.Handle(CommandStart), "already running")

	require.True(t, s.Handle(CommandPause))
	assert.False(t, s.Handle(CommandStart), "enter does not restart a paused session")
	require.True(t, s.Handle(CommandPause))
	assert.Equal(t, 1, q.Pending())
	assert.False(t, s.Handle(CommandQuit))
}

func TestSceneRunningShowsHUD(t *testing.T) {
	s, q := newScene(t, 60)
	require.True(t, s.Handle(CommandStart))
	q.Flush(time.Now())

	c := &textCanvas{}
	s.Draw(c)
	assert.Contains(t, c.all(), "SCORE 0  TIME 60")
	assert.Contains(t, c.all(), "Rookie Surfer")
}

func TestSceneSummaryAfterSession(t *testing.T) {
	s, q := newScene(t, 0.25)
	require.True(t, s.Handle(CommandStart))
	q.Flush(time.Now())
	require.Equal(t, game.PhaseOver, s.Driver.Snapshot().Phase)

	c := &textCanvas{}
	s.Draw(c)
	out := c.all()
	assert.Contains(t, out, "MISSION COMPLETE")
	assert.Contains(t, out, "Final score: 0")
	assert.Contains(t, out, "Leaderboard position: #3")
	assert.Contains(t, out, "Top players")
}

func TestSceneSummaryWithoutBoard(t *testing.T) {
	s, _ := newScene(t, 60)
	s.Board = nil
	sum := s.Summary(650)
	assert.Equal(t, "Link Inspector", sum.Rank)
	assert.Zero(t, sum.Position)
	assert.Contains(t, sum.Lines(), "Leaderboard unavailable")
}

func TestSceneRankWithoutTable(t *testing.T) {
	s := &Scene{}
	assert.Equal(t, "", s.Rank(1000))
}
