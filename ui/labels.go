package ui

import (
	"classic-snake/game"
	"classic-snake/game/types"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// StatusLine is the text of the bar under the board.
func StatusLine(s game.Snapshot) string {
	parts := []string{
		"Score " + humanize.Comma(int64(s.Score)),
		"High " + humanize.Comma(int64(s.HighScore)),
	}
	if s.Phase != types.Welcome {
		parts = append(parts,
			fmt.Sprintf("Len %d", len(s.Snake)),
			fmt.Sprintf("%dms", s.Interval.Milliseconds()),
		)
	}
	if s.Autopilot {
		parts = append(parts, "AUTO")
	}
	return strings.Join(parts, " | ")
}

// Overlay returns the centred lines drawn over the board, none while running.
func Overlay(s game.Snapshot) []string {
	switch s.Phase {
	case types.Welcome:
		lines := []string{"Press Space or Enter to start"}
		if s.HighScore > 0 {
			lines = append(lines, "High score: "+humanize.Comma(int64(s.HighScore)))
		}
		return lines
	case types.GameOver:
		return []string{
			"Game over! " + CauseText(s.Cause),
			"Final score: " + humanize.Comma(int64(s.Score)),
			"High score: " + humanize.Comma(int64(s.HighScore)),
			"Press Space to restart",
		}
	default:
		return nil
	}
}

// CauseText describes why a game ended.
func CauseText(c types.EndCause) string {
	switch c {
	case types.WallCollision:
		return "You hit the wall."
	case types.SelfCollision:
		return "You ran into yourself."
	case types.BoardFull:
		return "The board is full!"
	case types.TickLimitReach:
		return "Out of time."
	default:
		return ""
	}
}
