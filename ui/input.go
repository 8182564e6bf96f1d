package ui

import (
	"classic-snake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type ActionKind int

const (
	NoAction ActionKind = iota
	Steer
	Start
	Restart
	ToggleAutopilot
	Quit
)

// Action is what a key press asks of the game.
type Action struct {
	Kind ActionKind
	Dir  types.Direction
}

var steering = map[int32]types.Direction{
	rl.KeyUp:    types.Up,
	rl.KeyW:     types.Up,
	rl.KeyRight: types.Right,
	rl.KeyD:     types.Right,
	rl.KeyDown:  types.Down,
	rl.KeyS:     types.Down,
	rl.KeyLeft:  types.Left,
	rl.KeyA:     types.Left,
}

// Translate maps a key to an action for the given phase. Unmapped keys yield
// NoAction.
func Translate(key int32, phase types.Phase) Action {
	if d, ok := steering[key]; ok {
		return Action{Kind: Steer, Dir: d}
	}
	switch key {
	case rl.KeySpace:
		switch phase {
		case types.Welcome:
			return Action{Kind: Start}
		case types.GameOver:
			return Action{Kind: Restart}
		}
	case rl.KeyEnter:
		if phase == types.Welcome {
			return Action{Kind: Start}
		}
	case rl.KeyR:
		return Action{Kind: Start}
	case rl.KeyP:
		return Action{Kind: ToggleAutopilot}
	case rl.KeyEscape:
		return Action{Kind: Quit}
	}
	return Action{}
}

// Controller is the part of the game the keyboard drives.
type Controller interface {
	Phase() types.Phase
	Start()
	Restart() bool
	SetHeading(d types.Direction)
	Autopilot() bool
	SetAutopilot(on bool)
}

// Apply performs a on c and reports whether the player asked to quit.
func Apply(c Controller, a Action) (quit bool) {
	switch a.Kind {
	case Steer:
		c.SetHeading(a.Dir)
	case Start:
		c.Start()
	case Restart:
		c.Restart()
	case ToggleAutopilot:
		c.SetAutopilot(!c.Autopilot())
	case Quit:
		return true
	}
	return false
}

// PollInput drains this frame's key presses into c, in the order they were
// pressed. It reports whether the player asked to quit.
func PollInput(c Controller) bool {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if Apply(c, Translate(key, c.Phase())) {
			return true
		}
	}
	return false
}
