package game

import (
	"classic-snake/game/types"
	"encoding/json"
	"time"
)

// Snapshot is an immutable copy of everything a renderer needs. Observers
// receive one after every state change and may keep it.
type Snapshot struct {
	Session   string          `json:"session"`
	Phase     types.Phase     `json:"phase"`
	Grid      types.Grid      `json:"grid"`
	Snake     []types.Point   `json:"snake"`
	Heading   types.Direction `json:"heading"`
	Food      types.Point     `json:"food"`
	Score     int             `json:"score"`
	HighScore int             `json:"highScore"`
	Interval  time.Duration   `json:"-"` // sent as intervalMs
	Ticks     int             `json:"ticks"`
	Cause     types.EndCause  `json:"cause,omitempty"`
	Autopilot bool            `json:"autopilot"`
	StartTime time.Time       `json:"startTime"`
}

// MarshalJSON sends the tick interval in whole milliseconds.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return json.Marshal(struct {
		plain
		IntervalMs int64 `json:"intervalMs"`
	}{plain(s), s.Interval.Milliseconds()})
}

// Head returns the head cell, or false when there is no snake yet.
func (s Snapshot) Head() (types.Point, bool) {
	if len(s.Snake) == 0 {
		return types.Point{}, false
	}
	return s.Snake[0], true
}

// Observer consumes snapshots.
type Observer interface {
	OnSnapshot(s Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Snapshot)

func (f ObserverFunc) OnSnapshot(s Snapshot) { f(s) }

// Pilot chooses a heading before each tick when the autopilot is on.
type Pilot interface {
	Next(s Snapshot) (types.Direction, bool)
}
