package store

import (
	"classic-snake/game/types"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLite stores the high score in a key-value table and every finished game
// in a games table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite store needs a path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "create database directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}
	// one connection: writes serialize anyway and :memory: is per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping sqlite database")
	}
	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schemas")
	}
	return &SQLite{db: db}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			cause TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
	}
	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) HighScore(ctx context.Context) (int, error) {
	var hs int
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, types.HighScoreKey).Scan(&hs)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "read high score")
	}
	return hs, nil
}

func (s *SQLite) SaveHighScore(ctx context.Context, score int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = MAX(value, excluded.value)`,
		types.HighScoreKey, score)
	return errors.Wrap(err, "save high score")
}

func (s *SQLite) RecordGame(ctx context.Context, rec types.GameRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, score, length, ticks, cause, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Score, rec.Length, rec.Ticks, string(rec.Cause),
		rec.StartTime.UnixMilli(), rec.EndTime.UnixMilli())
	return errors.Wrapf(err, "record game %s", rec.ID)
}

func (s *SQLite) Recent(ctx context.Context, n int) ([]types.GameRecord, error) {
	if n <= 0 {
		n = -1 // no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, score, length, ticks, cause, started_at, ended_at
		 FROM games ORDER BY ended_at DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, errors.Wrap(err, "query games")
	}
	defer rows.Close()

	out := make([]types.GameRecord, 0)
	for rows.Next() {
		var (
			rec            types.GameRecord
			cause          string
			started, ended int64
		)
		if err := rows.Scan(&rec.ID, &rec.Score, &rec.Length, &rec.Ticks, &cause, &started, &ended); err != nil {
			return nil, errors.Wrap(err, "scan game")
		}
		rec.Cause = types.EndCause(cause)
		rec.StartTime = time.UnixMilli(started)
		rec.EndTime = time.UnixMilli(ended)
		out = append(out, rec)
	}
	return out, errors.Wrap(rows.Err(), "iterate games")
}

func (s *SQLite) Summary(ctx context.Context) (Summary, error) {
	var (
		sum       Summary
		avgScore  sql.NullFloat64
		avgMillis sql.NullFloat64
		bestScore sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MAX(score), AVG(score), AVG(ended_at - started_at) FROM games`,
	).Scan(&sum.GamesPlayed, &bestScore, &avgScore, &avgMillis)
	if err != nil {
		return Summary{}, errors.Wrap(err, "summarize games")
	}
	if sum.GamesPlayed == 0 {
		return sum, nil
	}
	sum.BestScore = int(bestScore.Int64)
	sum.AverageScore = avgScore.Float64
	sum.AverageDuration = time.Duration(avgMillis.Float64 * float64(time.Millisecond))

	var median sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		`SELECT AVG(score) FROM (
			SELECT score FROM games ORDER BY score
			LIMIT 2 - (SELECT COUNT(*) FROM games) % 2
			OFFSET (SELECT (COUNT(*) - 1) / 2 FROM games)
		)`,
	).Scan(&median)
	if err != nil {
		return Summary{}, errors.Wrap(err, "median score")
	}
	sum.MedianScore = median.Float64
	return sum, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
