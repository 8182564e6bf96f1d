package spectate

import (
	"classic-snake/game"
	"classic-snake/game/types"
	"classic-snake/store"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, st store.Store) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)
	ts := httptest.NewServer(NewServer(ctx, hub, st, nil).Routes())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return hub, ts
}

func snapshot(score int) game.Snapshot {
	return game.Snapshot{
		Session: "s-1",
		Phase:   types.Running,
		Grid:    types.DefaultGrid,
		Snake:   []types.Point{{X: 10, Y: 10}},
		Heading: types.Right,
		Food:    types.Point{X: 3, Y: 4},
		Score:   score,
	}
}

func TestStateBeforeAnySnapshot(t *testing.T) {
	_, ts := newTestServer(t, store.NewMemory())
	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestStateReturnsLatest(t *testing.T) {
	hub, ts := newTestServer(t, store.NewMemory())
	hub.OnSnapshot(snapshot(10))
	hub.OnSnapshot(snapshot(20))

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got struct {
		Phase   string `json:"phase"`
		Score   int    `json:"score"`
		Heading string `json:"heading"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Phase != "running" || got.Score != 20 || got.Heading != "right" {
		t.Fatalf("state = %+v", got)
	}
}

func TestStats(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, score := range []int{10, 30, 20} {
		rec := types.GameRecord{
			ID:        string(rune('a' + i)),
			Score:     score,
			Cause:     types.WallCollision,
			StartTime: start,
			EndTime:   start.Add(time.Duration(i+1) * time.Minute),
		}
		if err := st.RecordGame(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}
	_, ts := newTestServer(t, st)

	resp, err := http.Get(ts.URL + "/api/stats?limit=2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Summary.GamesPlayed != 3 || got.Summary.BestScore != 30 {
		t.Fatalf("summary = %+v", got.Summary)
	}
	if len(got.Recent) != 2 || got.Recent[0].ID != "c" {
		t.Fatalf("recent = %+v", got.Recent)
	}
}

func TestStatsBadLimit(t *testing.T) {
	_, ts := newTestServer(t, store.NewMemory())
	for _, limit := range []string{"0", "-3", "lots"} {
		resp, err := http.Get(ts.URL + "/api/stats?limit=" + limit)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("limit=%s: status = %d, want 400", limit, resp.StatusCode)
		}
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, store.NewMemory())
	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestWebSocketFeed(t *testing.T) {
	hub, ts := newTestServer(t, store.NewMemory())
	hub.OnSnapshot(snapshot(10))

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() game.Snapshot {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var s struct {
			Score int `json:"score"`
		}
		if err := conn.ReadJSON(&s); err != nil {
			t.Fatalf("read: %v", err)
		}
		return game.Snapshot{Score: s.Score}
	}

	// a new spectator starts from the latest state
	if got := read(); got.Score != 10 {
		t.Fatalf("first message score = %d, want 10", got.Score)
	}

	hub.OnSnapshot(snapshot(50))
	for {
		// depending on when registration lands the latest may arrive twice
		if got := read(); got.Score == 50 {
			break
		}
	}
}

func TestOnSnapshotNeverBlocks(t *testing.T) {
	hub := NewHub(nil) // Run not started, nothing drains the queue
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.OnSnapshot(snapshot(i))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("OnSnapshot blocked without a running hub")
	}
	if hub.Latest() == nil {
		t.Fatal("latest snapshot not kept")
	}
}
