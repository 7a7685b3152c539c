// Package window hosts the arcade in a desktop window with Ebitengine. The
// host's Update flushes the frame queue, so one simulation step runs per
// display tick.
package window

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/cyberquest/arcade/internal/frontend"
	"github.com/cyberquest/arcade/internal/game"
	"github.com/cyberquest/arcade/internal/input"
	"github.com/cyberquest/arcade/internal/loop"
	"github.com/cyberquest/arcade/internal/render"
)

// Options configures the window host.
type Options struct {
	Title     string
	Scale     float64
	FrameRate int
	Width     float64 // logical playfield size
	Height    float64
}

// Game implements ebiten.Game.
type Game struct {
	queue    *loop.FrameQueue
	scene    *frontend.Scene
	sampler  *input.Sampler
	pad      input.TouchPad
	frame    *ebiten.Image
	width    int
	height   int
	keys     []ebiten.Key
	touchIDs []ebiten.TouchID
	points   []input.Point
	log      *zap.Logger
}

// NewFrame allocates the offscreen image the driver renders into.
func NewFrame(width, height float64) *ebiten.Image {
	return ebiten.NewImage(int(width), int(height))
}

func NewGame(queue *loop.FrameQueue, scene *frontend.Scene, frame *ebiten.Image, log *zap.Logger) *Game {
	b := frame.Bounds()
	g := &Game{
		queue:   queue,
		scene:   scene,
		sampler: scene.Sampler,
		frame:   frame,
		width:   b.Dx(),
		height:  b.Dy(),
		log:     log,
	}
	if scene.Pad != nil {
		g.pad = *scene.Pad
	} else {
		g.pad = input.DefaultTouchPad(float64(g.width), float64(g.height))
	}
	return g
}

// Paint fills the offscreen frame with an empty playfield for the title
// screen.
func (g *Game) Paint(r *render.Renderer, s game.State) {
	r.Draw(NewCanvas(g.frame), s)
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.scene.Handle(frontend.CommandStart)
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.scene.Handle(frontend.CommandPause)
	}

	g.syncKeyboard()
	g.syncPointers()
	g.queue.Flush(time.Now())
	return nil
}

// syncKeyboard replaces the keyboard's held set with the keys down now.
func (g *Game) syncKeyboard() {
	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	bindings := g.sampler.Bindings()
	var held []input.Action
	for _, k := range g.keys {
		if a, ok := bindings.Lookup(k.String()); ok {
			held = append(held, a)
		}
	}
	g.sampler.Sync(input.SourceKeyboard, input.NewSnapshot(held...))
}

// syncPointers resolves touches and a held left mouse button against the
// on-screen buttons.
func (g *Game) syncPointers() {
	g.points = g.points[:0]
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.points = append(g.points, input.Point{X: float64(x), Y: float64(y)})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.points = append(g.points, input.Point{X: float64(x), Y: float64(y)})
	}
	g.sampler.Sync(input.SourceTouch, g.pad.Resolve(g.points))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frame, nil)
	g.scene.Draw(NewCanvas(screen))
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, opts Options) error {
	ebiten.SetWindowSize(int(opts.Width*opts.Scale), int(opts.Height*opts.Scale))
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FrameRate)

	g.log.Info("window opened", zap.String("title", opts.Title), zap.Float64("scale", opts.Scale))
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
