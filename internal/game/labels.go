package game

import "math/rand"

// LabelPool holds the display strings a spawned entity may carry.
type LabelPool struct {
	Threat []string
	Benign []string
}

// Pick draws a label uniformly from the class's pool. An empty pool yields "".
func (p LabelPool) Pick(c Class, rng *rand.Rand) string {
	pool := p.Benign
	if c == Threat {
		pool = p.Threat
	}
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.Intn(len(pool))]
}
