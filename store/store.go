// Package store persists the high score and the history of finished games.
//
// Three backends share one interface: SQLite for normal play, a JSON file
// for setups without a database, and memory for tests and throwaway runs.
// All backends are safe for concurrent use; the spectator server reads
// summaries while the game loop writes.
package store

import (
	"classic-snake/game/types"
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// Store is the persistence boundary of the game.
type Store interface {
	// HighScore returns the persisted high score, 0 when none was saved.
	HighScore(ctx context.Context) (int, error)
	// SaveHighScore stores score if it beats the persisted value.
	SaveHighScore(ctx context.Context, score int) error
	RecordGame(ctx context.Context, rec types.GameRecord) error
	// Recent returns up to n records, newest first.
	Recent(ctx context.Context, n int) ([]types.GameRecord, error)
	Summary(ctx context.Context) (Summary, error)
	Close() error
}

// Summary aggregates every recorded game.
type Summary struct {
	GamesPlayed     int           `json:"gamesPlayed"`
	BestScore       int           `json:"bestScore"`
	AverageScore    float64       `json:"averageScore"`
	MedianScore     float64       `json:"medianScore"`
	AverageDuration time.Duration `json:"-"` // sent as averageDurationMs
}

// MarshalJSON sends the average duration in whole milliseconds.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	return json.Marshal(struct {
		plain
		AverageDurationMs int64 `json:"averageDurationMs"`
	}{plain(s), s.AverageDuration.Milliseconds()})
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Options selects and locates a backend.
type Options struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// Open returns the backend named by opts.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		s, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendFile:
		s, err := OpenFile(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, errors.Errorf("unknown store backend %q", opts.Backend)
	}
}

// summarize computes a Summary from in-memory records.
func summarize(records []types.GameRecord) Summary {
	var s Summary
	if len(records) == 0 {
		return s
	}

	scores := make([]int, 0, len(records))
	var totalScore int
	var totalDuration time.Duration
	for _, r := range records {
		scores = append(scores, r.Score)
		totalScore += r.Score
		totalDuration += r.Duration()
		if r.Score > s.BestScore {
			s.BestScore = r.Score
		}
	}

	s.GamesPlayed = len(records)
	s.AverageScore = float64(totalScore) / float64(len(records))
	s.AverageDuration = totalDuration / time.Duration(len(records))

	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		s.MedianScore = float64(scores[mid-1]+scores[mid]) / 2
	} else {
		s.MedianScore = float64(scores[mid])
	}
	return s
}

// newestFirst returns up to n records from an oldest-first slice.
func newestFirst(records []types.GameRecord, n int) []types.GameRecord {
	if n <= 0 || n > len(records) {
		n = len(records)
	}
	out := make([]types.GameRecord, 0, n)
	for i := len(records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, records[i])
	}
	return out
}
