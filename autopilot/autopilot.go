// Package autopilot steers the snake without a player. At every tick it
// looks at the three relative actions (turn left, go straight, turn right),
// drops the ones that crash on the next step and heads for the food.
package autopilot

import (
	"classic-snake/game"
	"classic-snake/game/types"

	"github.com/joonazan/vec2"
)

// Action is a move relative to the current heading.
type Action int

const (
	TurnLeft Action = iota
	Straight
	TurnRight
)

// Pilot is a greedy food seeker. It keeps no state between ticks.
type Pilot struct{}

func New() *Pilot {
	return &Pilot{}
}

// relativeActionToAbsolute converte un'azione relativa in una direzione assoluta.
func relativeActionToAbsolute(current types.Direction, a Action) types.Direction {
	switch a {
	case TurnLeft:
		return current.TurnLeft()
	case TurnRight:
		return current.TurnRight()
	default:
		return current
	}
}

type candidate struct {
	dir      types.Direction
	distance float64
}

// Next picks the heading for the coming tick. It returns false when the game
// is not running or every move crashes.
func (p *Pilot) Next(s game.Snapshot) (types.Direction, bool) {
	head, ok := s.Head()
	if !ok || s.Phase != types.Running {
		return types.None, false
	}
	current := s.Heading
	if current == types.None {
		current = types.Right
	}

	target := vec(s.Food)
	var best *candidate
	for _, a := range []Action{Straight, TurnLeft, TurnRight} {
		dir := relativeActionToAbsolute(current, a)
		next := head.Add(dir.ToPoint())
		if IsDanger(s, next) {
			continue
		}
		c := &candidate{dir: dir, distance: vec(next).Minus(target).Length()}
		// strict comparison keeps straight on ties
		if best == nil || c.distance < best.distance {
			best = c
		}
	}
	if best == nil {
		return types.None, false
	}
	return best.dir, true
}

// IsDanger reports whether moving the head onto p ends the game: a wall, or
// a body segment that will still be there after the move.
func IsDanger(s game.Snapshot, p types.Point) bool {
	if !s.Grid.Contains(p) {
		return true
	}
	body := s.Snake
	// the tail moves away unless the snake eats on this step
	if p != s.Food && len(body) > 1 {
		body = body[:len(body)-1]
	}
	for _, sp := range body {
		if sp == p {
			return true
		}
	}
	return false
}

func vec(p types.Point) vec2.Vector {
	return vec2.Vector{X: float64(p.X), Y: float64(p.Y)}
}
