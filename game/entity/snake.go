package entity

import (
	"classic-snake/game/types"
	"time"
)

// Snake is the player's body and movement state. Body[0] is the head.
type Snake struct {
	Body    []types.Point
	heading types.Point
	pending types.Point
	growing bool
	origin  types.Point

	// tail dropped by the last Advance, restored if the snake eats on that tick
	vacated    types.Point
	hasVacated bool
}

func NewSnake(origin types.Point) *Snake {
	s := &Snake{origin: origin}
	s.Reset()
	return s
}

// FromBody builds a snake already in motion. body must hold at least one
// segment; heading is used as both the current and the pending heading.
func FromBody(body []types.Point, heading types.Point) *Snake {
	s := &Snake{
		Body:    append([]types.Point(nil), body...),
		heading: heading,
		pending: heading,
		origin:  body[0],
	}
	return s
}

// Reset puts the snake back on its origin, one segment long, heading right.
func (s *Snake) Reset() {
	s.Body = []types.Point{s.origin}
	s.heading = types.Right.ToPoint()
	s.pending = s.heading
	s.growing = false
	s.hasVacated = false
}

// SetHeading records v as the heading for the next Advance. Reversals and
// anything that is not a unit vector are ignored.
func (s *Snake) SetHeading(v types.Point) {
	if !v.IsUnit() || v == s.heading.Neg() {
		return
	}
	s.pending = v
}

// Advance moves the head one cell along the pending heading.
func (s *Snake) Advance() {
	s.heading = s.pending
	newHead := s.Head().Add(s.heading)

	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead

	if s.growing {
		s.growing = false
		s.hasVacated = false
		return
	}
	last := len(s.Body) - 1
	s.vacated = s.Body[last]
	s.hasVacated = true
	s.Body = s.Body[:last]
}

// Grow lengthens the snake by one. After an Advance the vacated tail is put
// back so the length changes on the same tick; before any Advance the next
// one keeps its tail instead.
func (s *Snake) Grow() {
	if s.hasVacated {
		s.Body = append(s.Body, s.vacated)
		s.hasVacated = false
		return
	}
	s.growing = true
}

// CheckCollision reports whether the head left [0,width)x[0,height) or
// overlaps another segment.
func (s *Snake) CheckCollision(width, height int) bool {
	return s.Collision(types.Grid{Width: width, Height: height}) != types.NotEnded
}

// Collision is CheckCollision with the cause attached.
func (s *Snake) Collision(grid types.Grid) types.EndCause {
	head := s.Head()
	if !grid.Contains(head) {
		return types.WallCollision
	}
	for _, p := range s.Body[1:] {
		if p == head {
			return types.SelfCollision
		}
	}
	return types.NotEnded
}

func (s *Snake) Head() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Heading is the direction of the last Advance.
func (s *Snake) Heading() types.Point {
	return s.heading
}

// Pending is the heading the next Advance will use.
func (s *Snake) Pending() types.Point {
	return s.pending
}

// Growing reports whether the next Advance keeps its tail.
func (s *Snake) Growing() bool {
	return s.growing
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p types.Point) bool {
	for _, b := range s.Body {
		if b == p {
			return true
		}
	}
	return false
}

// Segments returns a copy of the body, head first.
func (s *Snake) Segments() []types.Point {
	out := make([]types.Point, len(s.Body))
	copy(out, s.Body)
	return out
}

// Interval is the tick interval for the current length.
func (s *Snake) Interval() time.Duration {
	return IntervalForLength(len(s.Body))
}

// IntervalForLength shortens the tick by IntervalStep for every SpeedUpEvery
// segments, never going below MinInterval.
func IntervalForLength(length int) time.Duration {
	d := types.InitialInterval - time.Duration(length/types.SpeedUpEvery)*types.IntervalStep
	if d < types.MinInterval {
		return types.MinInterval
	}
	return d
}
