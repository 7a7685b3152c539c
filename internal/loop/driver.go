// Package loop drives play sessions frame by frame: it samples input, steps
// the simulation, renders, and reports the final score once a session ends.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cyberquest/arcade/internal/core/ecs"
	"github.com/cyberquest/arcade/internal/core/system"
	"github.com/cyberquest/arcade/internal/game"
	"github.com/cyberquest/arcade/internal/input"
	"github.com/cyberquest/arcade/internal/render"
	"github.com/cyberquest/arcade/internal/score"
)

// Reporter receives each finished session exactly once.
type Reporter interface {
	Submit(ctx context.Context, res score.Result) error
}

// Config wires a Driver. Sim, Sampler and Scheduler are required.
type Config struct {
	Sim       *game.Sim
	World     *ecs.World // released entity IDs go back here; nil skips cleanup
	Sampler   *input.Sampler
	Scheduler Scheduler
	Renderer  *render.Renderer
	Canvas    render.Canvas // nil for headless hosts
	Reporter  Reporter      // nil disables score submission
	Variant   string

	// FixedStep, when non-zero, is used as every frame's dt instead of the
	// measured time between frames.
	FixedStep time.Duration
	// NominalStep is the dt of a session's first frame, before any interval
	// can be measured. Defaults to 1/60 s.
	NominalStep time.Duration

	// OnGameOver runs after the result has been handed to the reporter.
	OnGameOver func(res score.Result)

	Log *zap.Logger
}

// Driver owns the current session. All methods are safe for concurrent use.
type Driver struct {
	sim      *game.Sim
	world    *ecs.World
	sampler  *input.Sampler
	sched    Scheduler
	renderer *render.Renderer
	canvas   render.Canvas
	reporter Reporter
	variant  string
	fixed    time.Duration
	nominal  time.Duration
	onOver   func(score.Result)
	log      *zap.Logger

	runner *system.Runner

	mu         sync.Mutex
	state      game.State
	frameInput input.Snapshot
	session    uuid.UUID
	started    bool
	closed     bool
	pending    FrameID
	gen        uint64
	last       time.Time

	reports sync.WaitGroup
}

func NewDriver(cfg Config) *Driver {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	nominal := cfg.NominalStep
	if nominal <= 0 {
		nominal = time.Second / 60
	}
	d := &Driver{
		sim:      cfg.Sim,
		world:    cfg.World,
		sampler:  cfg.Sampler,
		sched:    cfg.Scheduler,
		renderer: cfg.Renderer,
		canvas:   cfg.Canvas,
		reporter: cfg.Reporter,
		variant:  cfg.Variant,
		fixed:    cfg.FixedStep,
		nominal:  nominal,
		onOver:   cfg.OnGameOver,
		log:      log,
		runner:   system.NewRunner(),
	}
	registerSystems(d.runner, d)
	return d
}

// Start begins a new session. It returns false while a session is running
// or after Close. A paused or finished session is replaced.
func (d *Driver) Start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.state.Phase == game.PhaseRunning {
		return false
	}
	d.releaseEntities()
	d.cancelPending()
	d.state = d.sim.Begin()
	d.session = uuid.New()
	d.started = true
	d.last = time.Time{}
	d.schedule()
	d.log.Info("session started", zap.String("session", d.session.String()), zap.String("variant", d.variant))
	return true
}

// Pause stops a running session without ending it.
func (d *Driver) Pause() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.state.Phase != game.PhaseRunning {
		return false
	}
	d.state.Phase = game.PhaseIdle
	d.cancelPending()
	d.log.Debug("session paused", zap.String("session", d.session.String()), zap.Int("frame", d.state.Frame))
	return true
}

// Resume continues a paused session. Time spent paused is not simulated.
func (d *Driver) Resume() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || !d.started || d.state.Phase != game.PhaseIdle {
		return false
	}
	d.state.Phase = game.PhaseRunning
	d.last = time.Time{}
	d.schedule()
	d.log.Debug("session resumed", zap.String("session", d.session.String()))
	return true
}

// TogglePause pauses a running session or resumes a paused one.
func (d *Driver) TogglePause() bool {
	if d.Pause() {
		return true
	}
	return d.Resume()
}

// Close cancels the pending frame and releases all inputs. Later calls on
// the driver are no-ops. Reports already in flight are not cancelled.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.cancelPending()
	d.sampler.Reset()
}

// Wait blocks until in-flight score reports have returned.
func (d *Driver) Wait() {
	d.reports.Wait()
}

// Snapshot returns a copy of the current state.
func (d *Driver) Snapshot() game.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Clone()
}

// SessionID is the current or last session's ID; zero before the first Start.
func (d *Driver) SessionID() uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session
}

// Paused reports whether a started session is waiting for Resume.
func (d *Driver) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started && d.state.Phase == game.PhaseIdle
}

// frame is the scheduled callback. gen ties it to the schedule call that
// queued it; callbacks invalidated by Pause or Close return immediately.
func (d *Driver) frame(gen uint64, now time.Time) {
	d.mu.Lock()
	if gen != d.gen || d.pending == 0 {
		d.mu.Unlock()
		return
	}
	d.pending = 0
	if d.closed || d.state.Phase != game.PhaseRunning {
		d.mu.Unlock()
		return
	}

	d.runner.Tick(d.frameDelta(now))

	if d.state.Phase != game.PhaseOver {
		d.schedule()
		d.mu.Unlock()
		return
	}

	res := score.Result{
		SessionID: d.session,
		Variant:   d.variant,
		Score:     d.state.Score,
		Frames:    d.state.Frame,
	}
	d.log.Info("session over",
		zap.String("session", res.SessionID.String()),
		zap.Int("score", res.Score),
		zap.Int("lives", d.state.Lives),
		zap.Int("frames", res.Frames),
		zap.Int("live_entities", d.liveEntities()),
	)
	d.mu.Unlock()

	d.report(res)
	if d.onOver != nil {
		d.onOver(res)
	}
}

// frameDelta picks the dt for this frame and records now as the last frame
// time. Must hold mu.
func (d *Driver) frameDelta(now time.Time) time.Duration {
	last := d.last
	d.last = now
	if d.fixed > 0 {
		return d.fixed
	}
	if last.IsZero() {
		return d.nominal
	}
	dt := now.Sub(last)
	if dt < 0 {
		return 0
	}
	return dt
}

func (d *Driver) report(res score.Result) {
	if d.reporter == nil {
		return
	}
	d.reports.Add(1)
	go func() {
		defer d.reports.Done()
		// Reporter logs its own failures.
		_ = d.reporter.Submit(context.Background(), res)
	}()
}

// schedule queues the next frame unless one is already pending. Must hold mu.
func (d *Driver) schedule() {
	if d.pending != 0 {
		return
	}
	d.gen++
	gen := d.gen
	d.pending = d.sched.RequestFrame(func(now time.Time) { d.frame(gen, now) })
}

// cancelPending drops the queued frame, if any. Must hold mu.
func (d *Driver) cancelPending() {
	if d.pending != 0 {
		d.sched.CancelFrame(d.pending)
		d.pending = 0
	}
	d.gen++
}

// liveEntities counts IDs still issued by the world. Must hold mu.
func (d *Driver) liveEntities() int {
	if d.world == nil {
		return 0
	}
	return d.world.Pool().Live()
}

// releaseEntities returns the IDs still held by the previous session. Must
// hold mu.
func (d *Driver) releaseEntities() {
	if d.world == nil {
		return
	}
	for _, e := range d.state.Entities {
		d.world.MarkForDestruction(e.ID)
	}
	d.world.FlushDestroyQueue()
}
