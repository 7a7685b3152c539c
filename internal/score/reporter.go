package score

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result describes a finished session.
type Result struct {
	SessionID uuid.UUID
	Variant   string
	Score     int
	Frames    int
}

// Reporter submits a finished session's score once and, when the API
// accepts it, refreshes the leaderboard. It never retries.
type Reporter struct {
	api    API
	board  *Leaderboard
	userID int64
	gameID int
	log    *zap.Logger
}

func NewReporter(api API, board *Leaderboard, userID int64, gameID int, log *zap.Logger) *Reporter {
	return &Reporter{api: api, board: board, userID: userID, gameID: gameID, log: log}
}

// Submit posts the session's final score. Failures are logged and returned;
// callers on the render path ignore them.
func (r *Reporter) Submit(ctx context.Context, res Result) error {
	log := r.log.With(
		zap.String("session", res.SessionID.String()),
		zap.String("variant", res.Variant),
		zap.Int("score", res.Score),
	)

	err := r.api.SubmitScore(ctx, Submission{UserID: r.userID, GameID: r.gameID, Score: res.Score})
	if err != nil {
		log.Warn("score submission failed", zap.Error(err))
		return fmt.Errorf("submit score: %w", err)
	}
	log.Info("score submitted", zap.Int("game_id", r.gameID), zap.Int("frames", res.Frames))

	if r.board == nil {
		return nil
	}
	return r.board.Refresh(ctx)
}
