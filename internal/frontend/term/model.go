// Package term hosts the arcade in a terminal with Bubble Tea. Terminals
// report key presses but no releases, so a key counts as held until KeyHold
// passes without a repeat.
package term

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cyberquest/arcade/internal/frontend"
	"github.com/cyberquest/arcade/internal/input"
	"github.com/cyberquest/arcade/internal/loop"
)

// Options configures the terminal host.
type Options struct {
	FrameRate int
	KeyHold   time.Duration
	Cols      int // largest grid used; smaller terminals shrink it
	Rows      int
}

type tickMsg time.Time

// Model is the Bubble Tea model. The driver renders into grid during the
// tick that flushes the frame queue; View layers the scene on a copy.
type Model struct {
	queue    *loop.FrameQueue
	scene    *frontend.Scene
	sampler  *input.Sampler
	grid     *Grid
	opts     Options
	interval time.Duration
	release  map[input.Action]time.Time
	now      func() time.Time
	log      *zap.Logger
}

func NewModel(queue *loop.FrameQueue, scene *frontend.Scene, grid *Grid, opts Options, log *zap.Logger) *Model {
	rate := opts.FrameRate
	if rate <= 0 {
		rate = 30
	}
	return &Model{
		queue:    queue,
		scene:    scene,
		sampler:  scene.Sampler,
		grid:     grid,
		opts:     opts,
		interval: time.Second / time.Duration(rate),
		release:  make(map[input.Action]time.Time),
		now:      time.Now,
		log:      log,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case tickMsg:
		now := time.Time(msg)
		m.expire(now)
		m.queue.Flush(now)
		return m, m.tick()
	case tea.WindowSizeMsg:
		cols := min(m.opts.Cols, msg.Width)
		rows := min(m.opts.Rows, msg.Height)
		if c, r := m.grid.Dims(); c != cols || r != rows {
			m.grid.Resize(cols, rows)
			m.log.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
		}
	}
	return m, nil
}

// handleKey routes host commands first, then game actions.
func (m *Model) handleKey(key string) tea.Cmd {
	switch cmd := frontend.ParseCommand(key); cmd {
	case frontend.CommandQuit:
		m.scene.Driver.Close()
		return tea.Quit
	case frontend.CommandNone:
	default:
		m.scene.Handle(cmd)
		return nil
	}

	a, ok := m.sampler.Bindings().Lookup(key)
	if !ok {
		return nil
	}
	switch a {
	case input.ActionLeft:
		m.drop(input.ActionRight)
	case input.ActionRight:
		m.drop(input.ActionLeft)
	}
	m.sampler.Press(input.SourceKeyboard, a)
	m.release[a] = m.now().Add(m.opts.KeyHold)
	return nil
}

// expire releases actions whose hold window has passed.
func (m *Model) expire(now time.Time) {
	for a, at := range m.release {
		if !now.Before(at) {
			m.drop(a)
		}
	}
}

func (m *Model) drop(a input.Action) {
	m.sampler.Release(input.SourceKeyboard, a)
	delete(m.release, a)
}

func (m *Model) View() string {
	g := m.grid.Clone()
	m.scene.Draw(g)
	return g.String()
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.log.Info("terminal opened", zap.Int("cols", m.opts.Cols), zap.Int("rows", m.opts.Rows))
	_, err := p.Run()
	return err
}
