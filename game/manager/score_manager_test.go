package manager

import (
	"classic-snake/game/types"
	"classic-snake/store"
	"context"
	"errors"
	"testing"
)

type failingStore struct {
	store.Memory
	readErr, writeErr error
}

func (f *failingStore) HighScore(ctx context.Context) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.Memory.HighScore(ctx)
}

func (f *failingStore) SaveHighScore(ctx context.Context, score int) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.Memory.SaveHighScore(ctx, score)
}

func TestScoreManagerHighScore(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	mem.SaveHighScore(ctx, 20)

	sm := NewScoreManager(mem)
	if err := sm.LoadHighScore(ctx); err != nil {
		t.Fatalf("LoadHighScore: %v", err)
	}
	if sm.HighScore() != 20 {
		t.Fatalf("HighScore() = %d, want 20", sm.HighScore())
	}

	for i, wantImproved := range []bool{false, false, true} {
		improved, err := sm.Add(ctx, types.FoodScore)
		if err != nil {
			t.Fatalf("Add #%d: %v", i, err)
		}
		if improved != wantImproved {
			t.Fatalf("Add #%d improved = %v, want %v", i, improved, wantImproved)
		}
	}
	if sm.Score() != 30 || sm.HighScore() != 30 {
		t.Fatalf("score/high = %d/%d, want 30/30", sm.Score(), sm.HighScore())
	}
	if hs, _ := mem.HighScore(ctx); hs != 30 {
		t.Fatalf("persisted high score = %d, want 30", hs)
	}

	sm.Reset()
	if sm.Score() != 0 || sm.HighScore() != 30 {
		t.Fatalf("after Reset score/high = %d/%d", sm.Score(), sm.HighScore())
	}
}

func TestScoreManagerReadFailureDefaultsToZero(t *testing.T) {
	sm := NewScoreManager(&failingStore{readErr: errors.New("disk gone")})
	if err := sm.LoadHighScore(context.Background()); err == nil {
		t.Fatal("expected the read error to be reported")
	}
	if sm.HighScore() != 0 {
		t.Fatalf("HighScore() = %d, want 0", sm.HighScore())
	}
}

func TestScoreManagerWriteFailureKeepsMemoryValue(t *testing.T) {
	sm := NewScoreManager(&failingStore{writeErr: errors.New("read-only")})
	improved, err := sm.Add(context.Background(), types.FoodScore)
	if !improved || err == nil {
		t.Fatalf("Add() = %v, %v; want true and an error", improved, err)
	}
	if sm.HighScore() != types.FoodScore {
		t.Fatalf("HighScore() = %d", sm.HighScore())
	}
}

func TestScoreManagerWithoutStore(t *testing.T) {
	sm := NewScoreManager(nil)
	ctx := context.Background()
	if err := sm.LoadHighScore(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := sm.Add(ctx, 10); err != nil {
		t.Fatal(err)
	}
	if err := sm.Record(ctx, types.GameRecord{ID: "x"}); err != nil {
		t.Fatal(err)
	}
	if improved, _ := sm.Add(ctx, 0); improved {
		t.Fatal("zero points cannot improve the high score")
	}
}
