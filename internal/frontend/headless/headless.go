// Package headless plays one session without a display, steered by a simple
// autopilot. It exists for smoke-testing the loop and the score API.
package headless

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cyberquest/arcade/internal/game"
	"github.com/cyberquest/arcade/internal/input"
	"github.com/cyberquest/arcade/internal/loop"
)

// Pilot picks the actions to hold for a state. It aims at the lowest threat
// and leaves benign entities alone.
type Pilot struct {
	Tuning game.Tuning
}

func (p Pilot) Decide(s game.State) input.Snapshot {
	target, ok := p.target(s)
	if !ok {
		return input.Snapshot{}
	}
	dx := target.X - s.PlayerX
	tolerance := p.Tuning.PlayerWidth / 4
	switch {
	case dx < -tolerance:
		return input.NewSnapshot(input.ActionLeft)
	case dx > tolerance:
		return input.NewSnapshot(input.ActionRight)
	}
	return input.NewSnapshot(input.ActionFire)
}

func (p Pilot) target(s game.State) (game.Entity, bool) {
	var best game.Entity
	found := false
	for _, e := range s.Entities {
		if e.Class != game.Threat {
			continue
		}
		if !found || e.Y > best.Y {
			best, found = e, true
		}
	}
	return best, found
}

// Run starts a session and ticks it every interval until it ends or ctx is
// cancelled, then waits for the score report.
func Run(ctx context.Context, d *loop.Driver, q *loop.FrameQueue, sampler *input.Sampler, pilot Pilot, interval time.Duration, log *zap.Logger) (game.State, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !d.Start() {
		return d.Snapshot(), nil
	}
	log.Info("headless session started", zap.String("session", d.SessionID().String()))

	var last input.Snapshot
	err := loop.RunTicker(ctx, interval, func(now time.Time) {
		s := d.Snapshot()
		if s.Phase != game.PhaseRunning {
			cancel()
			return
		}
		held := pilot.Decide(s)
		if held != last {
			log.Debug("pilot input", zap.Int("frame", s.Frame), zap.Stringers("held", held.Actions()))
			last = held
		}
		sampler.Sync(input.SourceKeyboard, held)
		q.Flush(now)
	})
	final := d.Snapshot()
	d.Close()
	d.Wait()

	log.Info("headless session finished",
		zap.Int("score", final.Score),
		zap.Int("lives", final.Lives),
		zap.Int("frames", final.Frame),
		zap.Float64("time_left", math.Max(0, final.TimeLeft)),
	)
	if final.Phase == game.PhaseOver {
		return final, nil
	}
	return final, err
}
