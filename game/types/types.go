package types

import "time"

// Point is a grid cell, or a unit heading when used as a vector.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the integer vector sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Neg returns the opposite vector.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// IsUnit reports whether p is one of the four cardinal unit vectors.
func (p Point) IsUnit() bool {
	return (p.X == 0 && (p.Y == 1 || p.Y == -1)) || (p.Y == 0 && (p.X == 1 || p.X == -1))
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Contains reports whether p lies inside [0,Width) x [0,Height).
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Game constants
const (
	FoodScore       = 10 // Points per food eaten
	SpeedUpEvery    = 5  // Body length step that shortens the tick interval
	HighScoreKey    = "snakeHighScore"
	InitialInterval = 150 * time.Millisecond
	IntervalStep    = 10 * time.Millisecond
	MinInterval     = 50 * time.Millisecond
)

var (
	// Origin is where every new snake starts.
	Origin = Point{X: 10, Y: 10}
	// DefaultGrid matches a 400x400 surface with 20px cells.
	DefaultGrid = Grid{Width: 20, Height: 20}
)

// Phase is the coarse game state.
type Phase int

const (
	Welcome Phase = iota
	Running
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Welcome:
		return "welcome"
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText lets phases travel as strings in JSON snapshots.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// EndCause tells why a game left the Running phase.
type EndCause string

const (
	NotEnded       EndCause = ""
	WallCollision  EndCause = "wall"
	SelfCollision  EndCause = "self"
	BoardFull      EndCause = "board_full"
	TickLimitReach EndCause = "tick_limit"
)

// GameRecord is one finished game.
type GameRecord struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Length    int       `json:"length"`
	Ticks     int       `json:"ticks"`
	Cause     EndCause  `json:"cause"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Duration returns how long the game lasted.
func (r GameRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
