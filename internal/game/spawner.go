package game

import "math/rand"

// Spawn decides whether a new entity enters this frame. It depends only on
// its arguments and the draws it takes from rng; the caller assigns the ID.
func Spawn(t Tuning, labels LabelPool, difficulty, dt float64, rng *rand.Rand) (Entity, bool) {
	chance := t.SpawnRate * difficulty * dt
	if chance > 1 {
		chance = 1
	}
	if rng.Float64() >= chance {
		return Entity{}, false
	}

	class := Benign
	speed := t.BenignSpeedBase + t.BenignSpeedSlope*difficulty
	if rng.Float64() < t.ThreatRatio {
		class = Threat
		speed = t.ThreatSpeedBase + t.ThreatSpeedSlope*difficulty
	}
	x := t.SpawnInset + rng.Float64()*(t.Width-2*t.SpawnInset)

	return Entity{
		X:      x,
		Y:      -t.EntityRadius,
		Radius: t.EntityRadius,
		Class:  class,
		Speed:  speed,
		Label:  labels.Pick(class, rng),
	}, true
}
