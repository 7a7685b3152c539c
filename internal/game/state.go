package game

import "github.com/cyberquest/arcade/internal/core/ecs"

// Phase is the coarse lifecycle of a play session.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// Class drives the scoring sign and whether touching the player costs a life.
type Class uint8

const (
	Threat Class = iota
	Benign
)

func (c Class) String() string {
	if c == Threat {
		return "threat"
	}
	return "benign"
}

// Entity is one falling message.
type Entity struct {
	ID     ecs.EntityID
	X, Y   float64
	Radius float64
	Class  Class
	Speed  float64 // units per second, always > 0
	Label  string
}

type Projectile struct {
	X, Y float64
}

// State is the authoritative snapshot of one play session.
type State struct {
	Score      int
	Lives      int
	TimeLeft   float64
	Difficulty float64
	PlayerX    float64
	Projectile *Projectile
	Entities   []Entity
	Phase      Phase

	Frame     int  // steps taken this session
	Hinting   bool // think held: reveal classifications
	Despawned []ecs.EntityID
}

// Clone deep-copies the state so a step never aliases its input.
func (s State) Clone() State {
	out := s
	if s.Projectile != nil {
		p := *s.Projectile
		out.Projectile = &p
	}
	out.Entities = append([]Entity(nil), s.Entities...)
	out.Despawned = append([]ecs.EntityID(nil), s.Despawned...)
	return out
}

// Terminal reports whether the session has reached its end condition.
func (s State) Terminal() bool {
	return s.Lives <= 0 || s.TimeLeft <= 0
}
