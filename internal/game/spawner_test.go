package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLabels = LabelPool{
	Threat: []string{"Win a free phone!", "Verify your bank now"},
	Benign: []string{"Homework reminder"},
}

func TestSpawnIsReproducibleForASeed(t *testing.T) {
	tun := DefaultTuning()
	draw := func() []Entity {
		rng := rand.New(rand.NewSource(99))
		var out []Entity
		for i := 0; i < 500; i++ {
			if e, ok := Spawn(tun, testLabels, 2, 1.0/60, rng); ok {
				out = append(out, e)
			}
		}
		return out
	}
	a, b := draw(), draw()
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestSpawnAttributes(t *testing.T) {
	tun := DefaultTuning()
	tun.SpawnRate = 1000 // always spawn
	rng := rand.New(rand.NewSource(5))

	threats := 0
	const n = 4000
	for i := 0; i < n; i++ {
		e, ok := Spawn(tun, testLabels, 2, 1.0/60, rng)
		require.True(t, ok)
		assert.True(t, e.X >= tun.SpawnInset && e.X <= tun.Width-tun.SpawnInset)
		assert.Equal(t, -tun.EntityRadius, e.Y)
		assert.Equal(t, tun.EntityRadius, e.Radius)
		assert.Zero(t, e.ID, "the caller assigns IDs")
		switch e.Class {
		case Threat:
			threats++
			assert.Equal(t, tun.ThreatSpeedBase+2*tun.ThreatSpeedSlope, e.Speed)
			assert.Contains(t, testLabels.Threat, e.Label)
		case Benign:
			assert.Equal(t, tun.BenignSpeedBase+2*tun.BenignSpeedSlope, e.Speed)
			assert.Equal(t, "Homework reminder", e.Label)
		}
	}
	ratio := float64(threats) / n
	assert.InDelta(t, tun.ThreatRatio, ratio, 0.05)
}

func TestSpawnNeverWithZeroDelta(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		_, ok := Spawn(DefaultTuning(), testLabels, 3, 0, rng)
		assert.False(t, ok)
	}
}

func TestSpawnRateScalesWithDifficulty(t *testing.T) {
	tun := DefaultTuning()
	count := func(difficulty float64) int {
		rng := rand.New(rand.NewSource(11))
		n := 0
		for i := 0; i < 6000; i++ {
			if _, ok := Spawn(tun, testLabels, difficulty, 1.0/60, rng); ok {
				n++
			}
		}
		return n
	}
	assert.Greater(t, count(3), count(1))
}

func TestLabelPickEmptyPool(t *testing.T) {
	assert.Equal(t, "", LabelPool{}.Pick(Threat, rand.New(rand.NewSource(1))))
}
