package game

import (
	"classic-snake/game/types"
	"encoding/json"
	"testing"
	"time"
)

func TestSnapshotJSONSendsMilliseconds(t *testing.T) {
	s := Snapshot{
		Session:  "s-1",
		Phase:    types.Running,
		Grid:     types.DefaultGrid,
		Snake:    []types.Point{{X: 10, Y: 10}},
		Heading:  types.Right,
		Interval: 140 * time.Millisecond,
		Score:    20,
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["intervalMs"] != float64(140) {
		t.Fatalf("intervalMs = %v, want 140 in %s", got["intervalMs"], data)
	}
	if _, ok := got["interval"]; ok {
		t.Fatalf("raw nanosecond interval leaked: %s", data)
	}
	if got["phase"] != "running" || got["heading"] != "right" || got["score"] != float64(20) {
		t.Fatalf("other fields lost: %s", data)
	}
}
