package manager

import (
	"classic-snake/game/types"
	"context"
)

// ScoreStore persists the high score and finished games.
type ScoreStore interface {
	HighScore(ctx context.Context) (int, error)
	SaveHighScore(ctx context.Context, score int) error
	RecordGame(ctx context.Context, rec types.GameRecord) error
}

// ScoreManager keeps the running score and the all-time high score.
type ScoreManager struct {
	store     ScoreStore
	score     int
	highScore int
}

func NewScoreManager(store ScoreStore) *ScoreManager {
	return &ScoreManager{store: store}
}

// LoadHighScore reads the persisted high score. On error the high score
// stays at zero and the error is returned for the caller to report.
func (sm *ScoreManager) LoadHighScore(ctx context.Context) error {
	if sm.store == nil {
		return nil
	}
	hs, err := sm.store.HighScore(ctx)
	if err != nil {
		return err
	}
	if hs > sm.highScore {
		sm.highScore = hs
	}
	return nil
}

// Reset zeroes the score for a new game. The high score is untouched.
func (sm *ScoreManager) Reset() {
	sm.score = 0
}

// Add credits points and persists the high score when it is beaten. It
// reports whether the high score moved; a persistence error does not undo
// the in-memory update.
func (sm *ScoreManager) Add(ctx context.Context, points int) (bool, error) {
	if points <= 0 {
		return false, nil
	}
	sm.score += points
	if sm.score <= sm.highScore {
		return false, nil
	}
	sm.highScore = sm.score
	if sm.store == nil {
		return true, nil
	}
	return true, sm.store.SaveHighScore(ctx, sm.highScore)
}

// Record stores a finished game.
func (sm *ScoreManager) Record(ctx context.Context, rec types.GameRecord) error {
	if sm.store == nil {
		return nil
	}
	return sm.store.RecordGame(ctx, rec)
}

func (sm *ScoreManager) Score() int {
	return sm.score
}

func (sm *ScoreManager) HighScore() int {
	return sm.highScore
}
