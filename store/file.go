package store

import (
	"classic-snake/game/types"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// MaxFileHistory caps the games kept in a file store; the oldest go first.
const MaxFileHistory = 1000

type fileDocument struct {
	HighScore int                `json:"highScore"`
	Games     []types.GameRecord `json:"games"`
}

// File keeps the high score and history in a single JSON document. Every
// write rewrites the whole file through a temporary file and a rename.
type File struct {
	path string
	mu   sync.RWMutex
	doc  fileDocument
}

// OpenFile loads path, starting empty when it does not exist yet.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file store needs a path")
	}
	f := &File{
		path: path,
		doc:  fileDocument{Games: make([]types.GameRecord, 0)},
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // nothing saved yet
		}
		return errors.Wrapf(err, "read %s", f.path)
	}
	if err := json.Unmarshal(data, &f.doc); err != nil {
		return errors.Wrapf(err, "decode %s", f.path)
	}
	if f.doc.Games == nil {
		f.doc.Games = make([]types.GameRecord, 0)
	}
	return nil
}

// save must be called with f.mu held.
func (f *File) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return errors.Wrap(err, "create data directory")
	}
	data, err := json.MarshalIndent(f.doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode stats")
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, f.path), "replace %s", f.path)
}

func (f *File) HighScore(ctx context.Context) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.doc.HighScore, nil
}

func (f *File) SaveHighScore(ctx context.Context, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if score <= f.doc.HighScore {
		return nil
	}
	f.doc.HighScore = score
	return f.save()
}

func (f *File) RecordGame(ctx context.Context, rec types.GameRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc.Games = append(f.doc.Games, rec)
	if over := len(f.doc.Games) - MaxFileHistory; over > 0 {
		f.doc.Games = append(f.doc.Games[:0], f.doc.Games[over:]...)
	}
	return f.save()
}

func (f *File) Recent(ctx context.Context, n int) ([]types.GameRecord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return newestFirst(f.doc.Games, n), nil
}

func (f *File) Summary(ctx context.Context) (Summary, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return summarize(f.doc.Games), nil
}

func (f *File) Close() error {
	return nil
}
