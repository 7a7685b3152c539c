package game

import (
	"math/rand"
	"testing"

	"github.com/cyberquest/arcade/internal/core/ecs"
	"github.com/cyberquest/arcade/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

// quietTuning disables spawning so scenarios control every entity.
func quietTuning() Tuning {
	t := DefaultTuning()
	t.SpawnRate = 0
	return t
}

func newTestSim(t Tuning) *Sim {
	return NewSim(t, LabelPool{Threat: []string{"Send your password"}, Benign: []string{"Team practice"}}, rand.New(rand.NewSource(1)), ecs.NewWorld())
}

func TestBeginOpensRunningSession(t *testing.T) {
	sim := newTestSim(DefaultTuning())
	s := sim.Begin()
	assert.Equal(t, PhaseRunning, s.Phase)
	assert.Equal(t, 3, s.Lives)
	assert.Equal(t, 60.0, s.TimeLeft)
	assert.Equal(t, 450.0, s.PlayerX)
	assert.Nil(t, s.Projectile)
	assert.Empty(t, s.Entities)
}

func TestStepDoesNotMutateInput(t *testing.T) {
	sim := newTestSim(quietTuning())
	prev := sim.Begin()
	prev.Entities = []Entity{{ID: 1, X: 100, Y: 100, Radius: 44, Class: Benign, Speed: 60}}
	prev.Projectile = &Projectile{X: 300, Y: 300}

	next := sim.Step(prev, input.NewSnapshot(input.ActionLeft), frame)

	assert.Equal(t, 100.0, prev.Entities[0].Y)
	assert.Equal(t, 300.0, prev.Projectile.Y)
	assert.Equal(t, 450.0, prev.PlayerX)
	assert.Greater(t, next.Entities[0].Y, 100.0)
	assert.Less(t, next.Projectile.Y, 300.0)
	assert.Less(t, next.PlayerX, 450.0)
	assert.Equal(t, 1, next.Frame)
}

func TestStepIgnoresStateThatIsNotRunning(t *testing.T) {
	sim := newTestSim(DefaultTuning())
	for _, phase := range []Phase{PhaseIdle, PhaseOver} {
		s := State{Phase: phase, TimeLeft: 10, Lives: 2, PlayerX: 300}
		assert.Equal(t, s, sim.Step(s, input.NewSnapshot(input.ActionRight), frame))
	}
}

func TestPlayerClampedToPlayfield(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	for i := 0; i < 200; i++ {
		s = sim.Step(s, input.NewSnapshot(input.ActionLeft), frame)
	}
	assert.Equal(t, 40.0, s.PlayerX, "half the player width from the left edge")

	for i := 0; i < 400; i++ {
		s = sim.Step(s, input.NewSnapshot(input.ActionRight), frame)
	}
	assert.Equal(t, 860.0, s.PlayerX)
}

func TestProjectileLifecycle(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()

	s = sim.Step(s, input.NewSnapshot(input.ActionFire), frame)
	require.NotNil(t, s.Projectile)
	assert.Equal(t, s.PlayerX, s.Projectile.X)
	assert.Equal(t, 540.0, s.Projectile.Y, "spawn frame does not advance the shot")

	first := *s.Projectile
	s = sim.Step(s, input.NewSnapshot(input.ActionFire), frame)
	require.NotNil(t, s.Projectile)
	assert.Equal(t, first.X, s.Projectile.X, "holding fire does not create a second shot")
	assert.InDelta(t, first.Y-720*frame, s.Projectile.Y, 1e-9)

	for i := 0; i < 60 && s.Projectile != nil; i++ {
		s = sim.Step(s, input.Snapshot{}, frame)
	}
	assert.Nil(t, s.Projectile, "shot leaves through the top edge")
}

func TestShootingThreatScores(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s.Projectile = &Projectile{X: 300, Y: 300}
	s.Entities = []Entity{{ID: 7, X: 300, Y: 295, Radius: 44, Class: Threat, Speed: 90}}

	s = sim.Step(s, input.Snapshot{}, 0)

	assert.Empty(t, s.Entities)
	assert.Nil(t, s.Projectile)
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, []ecs.EntityID{7}, s.Despawned)
}

func TestShootingBenignCosts(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s.Score = 120
	s.Projectile = &Projectile{X: 300, Y: 300}
	s.Entities = []Entity{{ID: 3, X: 310, Y: 290, Radius: 44, Class: Benign, Speed: 70}}

	s = sim.Step(s, input.Snapshot{}, 0)

	assert.Empty(t, s.Entities)
	assert.Nil(t, s.Projectile)
	assert.Equal(t, 70, s.Score)
}

func TestBenignPenaltyClampsAtZero(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s.Score = 30
	s.Projectile = &Projectile{X: 300, Y: 300}
	s.Entities = []Entity{{ID: 3, X: 300, Y: 300, Radius: 44, Class: Benign, Speed: 70}}

	s = sim.Step(s, input.Snapshot{}, 0)
	assert.Equal(t, 0, s.Score)
}

func TestOneShotResolvesOnlyFirstEntity(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s.Projectile = &Projectile{X: 300, Y: 300}
	s.Entities = []Entity{
		{ID: 1, X: 600, Y: 100, Radius: 44, Class: Threat, Speed: 90},
		{ID: 2, X: 300, Y: 300, Radius: 44, Class: Threat, Speed: 90},
		{ID: 3, X: 302, Y: 302, Radius: 44, Class: Benign, Speed: 70},
	}

	s = sim.Step(s, input.Snapshot{}, 0)

	require.Len(t, s.Entities, 2)
	assert.EqualValues(t, 1, s.Entities[0].ID)
	assert.EqualValues(t, 3, s.Entities[1].ID, "overlapping benign survives the shot")
	assert.Equal(t, 100, s.Score)
}

func TestMissAtExactRadiusSum(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s.Projectile = &Projectile{X: 300, Y: 300}
	s.Entities = []Entity{{ID: 1, X: 300, Y: 238, Radius: 44, Class: Threat, Speed: 90}}

	s = sim.Step(s, input.Snapshot{}, 0)
	assert.Len(t, s.Entities, 1, "distance 62 equals the radius sum and is not a hit")
	assert.NotNil(t, s.Projectile)
}

func TestThreatTouchingPlayerCostsLife(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s.Entities = []Entity{
		{ID: 1, X: 450, Y: 530, Radius: 44, Class: Threat, Speed: 90},
		{ID: 2, X: 455, Y: 535, Radius: 44, Class: Benign, Speed: 70},
	}

	s = sim.Step(s, input.Snapshot{}, 0)
	assert.Equal(t, 2, s.Lives)
	require.Len(t, s.Entities, 1, "benign entities pass through the player")
	assert.Equal(t, Benign, s.Entities[0].Class)
	assert.Equal(t, PhaseRunning, s.Phase)
}

func TestTwoThreatsOnLastLifeEndSession(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s.Lives = 1
	s.Entities = []Entity{
		{ID: 1, X: 440, Y: 540, Radius: 44, Class: Threat, Speed: 90},
		{ID: 2, X: 460, Y: 540, Radius: 44, Class: Threat, Speed: 90},
	}

	s = sim.Step(s, input.Snapshot{}, frame)
	assert.Equal(t, 0, s.Lives, "never negative")
	assert.Empty(t, s.Entities)
	assert.Equal(t, PhaseOver, s.Phase)
}

func TestClockEndsSessionAtExactlyZero(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s.TimeLeft = 0.05

	s = sim.Step(s, input.Snapshot{}, frame)
	assert.Equal(t, PhaseRunning, s.Phase)
	s = sim.Step(s, input.Snapshot{}, frame)
	s = sim.Step(s, input.Snapshot{}, frame)
	s = sim.Step(s, input.Snapshot{}, frame)

	assert.Equal(t, 0.0, s.TimeLeft)
	assert.Equal(t, PhaseOver, s.Phase)
}

func TestDifficultyRampCapped(t *testing.T) {
	tun := quietTuning()
	tun.DifficultyRate = 1
	sim := newTestSim(tun)
	s := sim.Begin()

	for i := 0; i < 30; i++ {
		s = sim.Step(s, input.Snapshot{}, 0.25)
	}
	assert.Equal(t, tun.DifficultyMax, s.Difficulty)
}

func TestLongFrameIsClamped(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s = sim.Step(s, input.Snapshot{}, 10)
	assert.InDelta(t, 60-0.25, s.TimeLeft, 1e-9)
}

func TestEntitiesLeaveThroughBottom(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Begin()
	s.Entities = []Entity{{ID: 9, X: 100, Y: 640, Radius: 44, Class: Threat, Speed: 200}}

	s = sim.Step(s, input.Snapshot{}, 0.1)
	assert.Empty(t, s.Entities)
	assert.Equal(t, []ecs.EntityID{9}, s.Despawned)
	assert.Equal(t, 3, s.Lives, "leaving the playfield is not a collision")
}

func TestThinkSetsHinting(t *testing.T) {
	sim := newTestSim(quietTuning())
	s := sim.Step(sim.Begin(), input.NewSnapshot(input.ActionThink), frame)
	assert.True(t, s.Hinting)
	s = sim.Step(s, input.Snapshot{}, frame)
	assert.False(t, s.Hinting)
}

// TestInvariantsHoldOverLongRuns drives random sessions with spawning on and
// checks the per-frame invariants.
func TestInvariantsHoldOverLongRuns(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		tun := DefaultTuning()
		tun.SpawnRate = 3
		world := ecs.NewWorld()
		sim := NewSim(tun, LabelPool{Threat: []string{"x"}, Benign: []string{"y"}}, rand.New(rand.NewSource(seed)), world)
		inputs := rand.New(rand.NewSource(seed * 31))

		s := sim.Begin()
		seen := map[ecs.EntityID]bool{}
		for s.Phase == PhaseRunning {
			var held []input.Action
			for a := input.ActionLeft; a <= input.ActionThink; a++ {
				if inputs.Intn(3) == 0 {
					held = append(held, a)
				}
			}
			dt := frame * (0.5 + inputs.Float64())
			prev := s
			s = sim.Step(prev, input.NewSnapshot(held...), dt)

			require.GreaterOrEqual(t, s.Score, 0)
			require.True(t, s.Lives >= 0 && s.Lives <= prev.Lives && s.Lives <= MaxLives)
			require.True(t, s.TimeLeft >= 0 && s.TimeLeft <= prev.TimeLeft)
			require.True(t, s.Difficulty >= prev.Difficulty && s.Difficulty <= tun.DifficultyMax)
			require.Equal(t, s.Terminal(), s.Phase == PhaseOver)
			for _, e := range s.Entities {
				if !seen[e.ID] {
					require.True(t, world.Alive(e.ID))
					seen[e.ID] = true
				}
			}
			world.MarkForDestruction(s.Despawned...)
			world.FlushDestroyQueue()
		}
		assert.True(t, s.Lives == 0 || s.TimeLeft == 0)
	}
}
