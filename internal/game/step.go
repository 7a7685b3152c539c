package game

import (
	"math"
	"math/rand"

	"github.com/cyberquest/arcade/internal/core/ecs"
	"github.com/cyberquest/arcade/internal/input"
)

// IDSource hands out entity IDs. *ecs.World satisfies it.
type IDSource interface {
	CreateEntity() ecs.EntityID
}

// Sim advances play sessions. It holds the tuning, label pools, the seeded
// random source and the ID source; the state itself is passed in and out.
type Sim struct {
	tuning Tuning
	labels LabelPool
	rng    *rand.Rand
	ids    IDSource
}

func NewSim(t Tuning, labels LabelPool, rng *rand.Rand, ids IDSource) *Sim {
	if ids == nil {
		ids = ecs.NewWorld()
	}
	return &Sim{tuning: t, labels: labels, rng: rng, ids: ids}
}

// Begin returns the opening state of a new running session.
func (s *Sim) Begin() State {
	return State{
		Lives:      s.tuning.StartLives,
		TimeLeft:   s.tuning.SessionLength,
		Difficulty: s.tuning.DifficultyStart,
		PlayerX:    s.tuning.Width / 2,
		Phase:      PhaseRunning,
	}
}

// Step advances prev by dt seconds under input in and returns the next
// state. prev is not modified. A state that is not running is returned as is.
//
// The order below is fixed: movement resolves before collisions so a shot and
// a target are compared at their positions for this frame.
func (s *Sim) Step(prev State, in input.Snapshot, dt float64) State {
	if prev.Phase != PhaseRunning {
		return prev
	}
	t := &s.tuning
	dt = clamp(dt, 0, t.MaxFrameDelta)

	next := prev.Clone()
	next.Despawned = next.Despawned[:0]
	next.Frame++
	next.Hinting = in.Held(input.ActionThink)

	// 1. difficulty ramp
	next.Difficulty = math.Min(next.Difficulty+t.DifficultyRate*dt, t.DifficultyMax)

	// 2. player
	if in.Held(input.ActionLeft) {
		next.PlayerX -= t.PlayerSpeed * dt
	}
	if in.Held(input.ActionRight) {
		next.PlayerX += t.PlayerSpeed * dt
	}
	half := t.PlayerWidth / 2
	next.PlayerX = clamp(next.PlayerX, half, t.Width-half)

	// 3. projectile
	if next.Projectile == nil {
		if in.Held(input.ActionFire) {
			next.Projectile = &Projectile{X: next.PlayerX, Y: t.PlayerY}
		}
	} else {
		next.Projectile.Y -= t.ProjectileSpeed * dt
		if next.Projectile.Y < 0 {
			next.Projectile = nil
		}
	}

	// 4. entities: advance, spawn, drop those past the bottom edge
	for i := range next.Entities {
		next.Entities[i].Y += next.Entities[i].Speed * dt
	}
	if e, ok := Spawn(*t, s.labels, next.Difficulty, dt, s.rng); ok {
		e.ID = s.ids.CreateEntity()
		next.Entities = append(next.Entities, e)
	}
	next.Entities = next.filter(func(e Entity) bool {
		return e.Y-e.Radius <= t.Height
	})

	// 5. projectile vs entities: first hit in list order only
	if p := next.Projectile; p != nil {
		for i, e := range next.Entities {
			if dist(p.X, p.Y, e.X, e.Y) >= e.Radius+t.ProjectileHitRadius {
				continue
			}
			next.removeAt(i)
			next.Projectile = nil
			if e.Class == Threat {
				next.Score += t.Reward
			} else {
				next.Score = max(0, next.Score-t.Penalty)
			}
			break
		}
	}

	// 6. threats reaching the player: one life each
	next.Entities = next.filter(func(e Entity) bool {
		if e.Class != Threat || dist(next.PlayerX, t.PlayerY, e.X, e.Y) >= e.Radius+t.PlayerHitRadius {
			return true
		}
		next.Lives = max(0, next.Lives-1)
		return false
	})

	// 7. clock
	next.TimeLeft = math.Max(0, next.TimeLeft-dt)

	// 8. terminal condition
	if next.Terminal() {
		next.Phase = PhaseOver
	}
	return next
}

// filter keeps entities for which keep returns true and records the rest as
// despawned. It reuses the backing array.
func (s *State) filter(keep func(Entity) bool) []Entity {
	out := s.Entities[:0]
	for _, e := range s.Entities {
		if keep(e) {
			out = append(out, e)
		} else {
			s.Despawned = append(s.Despawned, e.ID)
		}
	}
	return out
}

func (s *State) removeAt(i int) {
	s.Despawned = append(s.Despawned, s.Entities[i].ID)
	s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
}

func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
