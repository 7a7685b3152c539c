package game

import (
	"errors"
	"fmt"
	"sort"
)

// Tuning holds every gameplay constant. Speeds and rates are per second so
// the step stays frame-rate independent.
type Tuning struct {
	Width  float64 // logical playfield width
	Height float64 // logical playfield height

	PlayerY         float64
	PlayerWidth     float64
	PlayerSpeed     float64
	PlayerHitRadius float64

	ProjectileSpeed     float64
	ProjectileHitRadius float64

	EntityRadius     float64
	SpawnInset       float64
	SpawnRate        float64 // expected spawns per second at difficulty 1
	ThreatRatio      float64
	ThreatSpeedBase  float64
	ThreatSpeedSlope float64 // added per unit of difficulty
	BenignSpeedBase  float64
	BenignSpeedSlope float64

	DifficultyStart float64
	DifficultyRate  float64 // per second
	DifficultyMax   float64

	Reward        int
	Penalty       int
	StartLives    int
	SessionLength float64 // seconds
	MaxFrameDelta float64 // seconds
}

func DefaultTuning() Tuning {
	return Tuning{
		Width:  900,
		Height: 600,

		PlayerY:         540,
		PlayerWidth:     80,
		PlayerSpeed:     480,
		PlayerHitRadius: 36,

		ProjectileSpeed:     720,
		ProjectileHitRadius: 18,

		EntityRadius:     44,
		SpawnInset:       60,
		SpawnRate:        0.9,
		ThreatRatio:      0.55,
		ThreatSpeedBase:  90,
		ThreatSpeedSlope: 50,
		BenignSpeedBase:  70,
		BenignSpeedSlope: 35,

		DifficultyStart: 1,
		DifficultyRate:  0.03,
		DifficultyMax:   3,

		Reward:        100,
		Penalty:       50,
		StartLives:    MaxLives,
		SessionLength: 60,
		MaxFrameDelta: 0.25,
	}
}

// MaxLives is the most lives a session can hold.
const MaxLives = 3

func (t *Tuning) fields() map[string]*float64 {
	return map[string]*float64{
		"width":                 &t.Width,
		"height":                &t.Height,
		"player_y":              &t.PlayerY,
		"player_width":          &t.PlayerWidth,
		"player_speed":          &t.PlayerSpeed,
		"player_hit_radius":     &t.PlayerHitRadius,
		"projectile_speed":      &t.ProjectileSpeed,
		"projectile_hit_radius": &t.ProjectileHitRadius,
		"entity_radius":         &t.EntityRadius,
		"spawn_inset":           &t.SpawnInset,
		"spawn_rate":            &t.SpawnRate,
		"threat_ratio":          &t.ThreatRatio,
		"threat_speed_base":     &t.ThreatSpeedBase,
		"threat_speed_slope":    &t.ThreatSpeedSlope,
		"benign_speed_base":     &t.BenignSpeedBase,
		"benign_speed_slope":    &t.BenignSpeedSlope,
		"difficulty_start":      &t.DifficultyStart,
		"difficulty_rate":       &t.DifficultyRate,
		"difficulty_max":        &t.DifficultyMax,
		"session_length":        &t.SessionLength,
		"max_frame_delta":       &t.MaxFrameDelta,
	}
}

// Apply overwrites the named fields (snake_case keys) and returns the keys it
// did not recognise, sorted.
func (t *Tuning) Apply(overrides map[string]float64) []string {
	fields := t.fields()
	var unknown []string
	for k, v := range overrides {
		switch k {
		case "reward":
			t.Reward = int(v)
		case "penalty":
			t.Penalty = int(v)
		case "start_lives":
			t.StartLives = int(v)
		default:
			p, ok := fields[k]
			if !ok {
				unknown = append(unknown, k)
				continue
			}
			*p = v
		}
	}
	sort.Strings(unknown)
	return unknown
}

func (t Tuning) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("playfield %vx%v must be positive", t.Width, t.Height)
	}
	if t.PlayerWidth <= 0 || t.PlayerWidth >= t.Width {
		return fmt.Errorf("player width %v does not fit the playfield", t.PlayerWidth)
	}
	if 2*t.SpawnInset >= t.Width {
		return fmt.Errorf("spawn inset %v leaves no spawn band", t.SpawnInset)
	}
	if t.ThreatRatio < 0 || t.ThreatRatio > 1 {
		return fmt.Errorf("threat ratio %v outside [0,1]", t.ThreatRatio)
	}
	if t.ThreatSpeedBase <= 0 || t.BenignSpeedBase <= 0 || t.ThreatSpeedSlope < 0 || t.BenignSpeedSlope < 0 {
		return errors.New("entity speeds must be positive and slopes non-negative")
	}
	if t.DifficultyRate < 0 || t.DifficultyMax < t.DifficultyStart {
		return fmt.Errorf("difficulty ramp %v..%v at %v/s is not monotonic", t.DifficultyStart, t.DifficultyMax, t.DifficultyRate)
	}
	if t.Reward < 0 || t.Penalty < 0 {
		return errors.New("reward and penalty must be non-negative")
	}
	if t.StartLives < 1 || t.StartLives > MaxLives {
		return fmt.Errorf("start lives %d outside 1..%d", t.StartLives, MaxLives)
	}
	if t.SessionLength <= 0 || t.MaxFrameDelta <= 0 {
		return errors.New("session length and max frame delta must be positive")
	}
	return nil
}
