package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput   Phase = iota // 0: sample held inputs
	PhaseUpdate               // 1: advance the simulation
	PhaseOutput               // 2: paint the frame
	PhaseCleanup              // 3: release despawned entity IDs
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseUpdate:
		return "update"
	case PhaseOutput:
		return "output"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is one unit of per-frame work. Update receives the frame's dt,
// already fixed or measured by the driver.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
