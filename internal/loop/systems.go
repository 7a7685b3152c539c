package loop

import (
	"time"

	"github.com/cyberquest/arcade/internal/core/system"
)

// Frame systems. They run under the driver lock inside Runner.Tick.

// inputSystem freezes the sampler into the frame's snapshot.
type inputSystem struct{ d *Driver }

func (s *inputSystem) Phase() system.Phase { return system.PhaseInput }

func (s *inputSystem) Update(_ time.Duration) {
	s.d.frameInput = s.d.sampler.Snapshot()
}

// simSystem advances the session by one step.
type simSystem struct{ d *Driver }

func (s *simSystem) Phase() system.Phase { return system.PhaseUpdate }

func (s *simSystem) Update(dt time.Duration) {
	s.d.state = s.d.sim.Step(s.d.state, s.d.frameInput, dt.Seconds())
}

// renderSystem paints the new state. Hosts without a canvas skip it.
type renderSystem struct{ d *Driver }

func (s *renderSystem) Phase() system.Phase { return system.PhaseOutput }

func (s *renderSystem) Update(_ time.Duration) {
	if s.d.canvas == nil || s.d.renderer == nil {
		return
	}
	s.d.renderer.Draw(s.d.canvas, s.d.state)
}

// cleanupSystem releases the IDs of entities that left play this frame.
type cleanupSystem struct{ d *Driver }

func (s *cleanupSystem) Phase() system.Phase { return system.PhaseCleanup }

func (s *cleanupSystem) Update(_ time.Duration) {
	w := s.d.world
	if w == nil {
		return
	}
	w.MarkForDestruction(s.d.state.Despawned...)
	w.FlushDestroyQueue()
}

func registerSystems(r *system.Runner, d *Driver) {
	r.Register(&inputSystem{d: d})
	r.Register(&simSystem{d: d})
	r.Register(&renderSystem{d: d})
	r.Register(&cleanupSystem{d: d})
}

