// Package input samples held directional and action inputs from keyboard and
// touch events and hands the simulation an immutable snapshot once per frame.
package input

import "strings"

// Action is a logical input the simulation understands.
type Action uint8

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionFire
	ActionThink

	numActions
)

var actionNames = [numActions]string{
	ActionLeft:  "left",
	ActionRight: "right",
	ActionUp:    "up",
	ActionDown:  "down",
	ActionFire:  "action",
	ActionThink: "think",
}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction maps a logical action name back to its Action. "shoot" is
// accepted as an alias for "action".
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "shoot" {
		return ActionFire, true
	}
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return 0, false
}

// Snapshot is the read-only set of held actions for one frame.
type Snapshot struct {
	held [numActions]bool
}

// NewSnapshot builds a snapshot with the given actions held.
func NewSnapshot(actions ...Action) Snapshot {
	var s Snapshot
	for _, a := range actions {
		if a < numActions {
			s.held[a] = true
		}
	}
	return s
}

func (s Snapshot) Held(a Action) bool {
	return a < numActions && s.held[a]
}

// Any reports whether at least one action is held.
func (s Snapshot) Any() bool {
	for _, h := range s.held {
		if h {
			return true
		}
	}
	return false
}

// Actions lists the held actions in declaration order.
func (s Snapshot) Actions() []Action {
	var out []Action
	for a, h := range s.held {
		if h {
			out = append(out, Action(a))
		}
	}
	return out
}
