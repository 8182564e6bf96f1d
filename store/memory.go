package store

import (
	"classic-snake/game/types"
	"context"
	"sync"
)

// Memory keeps everything in process memory.
type Memory struct {
	mu        sync.RWMutex
	highScore int
	games     []types.GameRecord
}

func NewMemory() *Memory {
	return &Memory{games: make([]types.GameRecord, 0)}
}

func (m *Memory) HighScore(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.highScore, nil
}

func (m *Memory) SaveHighScore(ctx context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.highScore {
		m.highScore = score
	}
	return nil
}

func (m *Memory) RecordGame(ctx context.Context, rec types.GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, rec)
	return nil
}

func (m *Memory) Recent(ctx context.Context, n int) ([]types.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return newestFirst(m.games, n), nil
}

func (m *Memory) Summary(ctx context.Context) (Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return summarize(m.games), nil
}

func (m *Memory) Close() error {
	return nil
}
