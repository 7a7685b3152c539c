package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningIsValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())
}

func TestApplyOverrides(t *testing.T) {
	tun := DefaultTuning()
	unknown := tun.Apply(map[string]float64{
		"spawn_rate":   1.5,
		"reward":       150,
		"start_lives":  2,
		"warp_factor":  9,
		"threat_ratio": 0.6,
		"aaa":          1,
	})
	assert.Equal(t, []string{"aaa", "warp_factor"}, unknown)
	assert.Equal(t, 1.5, tun.SpawnRate)
	assert.Equal(t, 150, tun.Reward)
	assert.Equal(t, 2, tun.StartLives)
	assert.Equal(t, 0.6, tun.ThreatRatio)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Tuning){
		"lives":      func(t *Tuning) { t.StartLives = 4 },
		"ratio":      func(t *Tuning) { t.ThreatRatio = 1.2 },
		"difficulty": func(t *Tuning) { t.DifficultyMax = 0.5 },
		"inset":      func(t *Tuning) { t.SpawnInset = 500 },
		"speed":      func(t *Tuning) { t.BenignSpeedBase = 0 },
		"penalty":    func(t *Tuning) { t.Penalty = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			tun := DefaultTuning()
			mutate(&tun)
			assert.Error(t, tun.Validate())
		})
	}
}
