package score

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Leaderboard caches the last successfully fetched leaderboard. A failed
// refresh keeps whatever was there before, possibly nothing.
type Leaderboard struct {
	api    API
	gameID int
	log    *zap.Logger

	mu      sync.RWMutex
	entries []Entry
}

func NewLeaderboard(api API, gameID int, log *zap.Logger) *Leaderboard {
	return &Leaderboard{api: api, gameID: gameID, log: log}
}

// Refresh re-reads the leaderboard from the API.
func (b *Leaderboard) Refresh(ctx context.Context) error {
	entries, err := b.api.Leaderboard(ctx, b.gameID)
	if err != nil {
		b.log.Warn("leaderboard refresh failed, keeping previous",
			zap.Int("game_id", b.gameID), zap.Error(err))
		return fmt.Errorf("refresh leaderboard: %w", err)
	}
	b.mu.Lock()
	b.entries = entries
	b.mu.Unlock()
	b.log.Debug("leaderboard refreshed", zap.Int("game_id", b.gameID), zap.Int("entries", len(entries)))
	return nil
}

// Entries returns a copy of the cached rows.
func (b *Leaderboard) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Entry(nil), b.entries...)
}

// Position is the 1-based place score would take on the cached board, or 0
// when nothing has been fetched.
func (b *Leaderboard) Position(score int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.entries) == 0 {
		return 0
	}
	pos := 1
	for _, e := range b.entries {
		if e.Score > score {
			pos++
		}
	}
	return pos
}
