// Package ui draws game snapshots with raylib and turns key presses into
// game actions.
package ui

import (
	"classic-snake/game"
	"classic-snake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const borderPadding = 10 // Padding around the status text

var (
	background = rl.Color{R: 0x2c, G: 0x3e, B: 0x50, A: 255}
	gridLine   = rl.Color{R: 0x34, G: 0x49, B: 0x5e, A: 255}
	snakeBody  = rl.Color{R: 0x2e, G: 0xcc, B: 0x71, A: 255}
	snakeHead  = rl.Color{R: 0x27, G: 0xae, B: 0x60, A: 255}
	foodColor  = rl.Color{R: 0xe7, G: 0x4c, B: 0x3c, A: 255}
	textColor  = rl.Color{R: 0xec, G: 0xf0, B: 0xf1, A: 255}
)

type Renderer struct {
	cellSize     int32
	statusHeight int32
	fontSize     int32
}

func NewRenderer(cellSize int) *Renderer {
	cell := int32(cellSize)
	font := max(cell*3/4, 10)
	return &Renderer{
		cellSize:     cell,
		fontSize:     font,
		statusHeight: font + borderPadding*2,
	}
}

// WindowSize returns the window needed for grid plus the status bar.
func (r *Renderer) WindowSize(grid types.Grid) (int32, int32) {
	return int32(grid.Width) * r.cellSize, int32(grid.Height)*r.cellSize + r.statusHeight
}

// Draw renders one frame from s.
func (r *Renderer) Draw(s game.Snapshot) {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(background)

	boardW := int32(s.Grid.Width) * r.cellSize
	boardH := int32(s.Grid.Height) * r.cellSize

	if s.Phase == types.Welcome {
		r.drawOverlay(Overlay(s), boardW, boardH, false)
		r.drawStatus(s, boardH)
		return
	}

	for x := int32(0); x < int32(s.Grid.Width); x++ {
		for y := int32(0); y < int32(s.Grid.Height); y++ {
			rl.DrawRectangleLines(x*r.cellSize, y*r.cellSize, r.cellSize, r.cellSize, gridLine)
		}
	}

	for i, p := range s.Snake {
		color := snakeBody
		if i == 0 {
			color = snakeHead
		}
		rl.DrawRectangle(int32(p.X)*r.cellSize+1, int32(p.Y)*r.cellSize+1, r.cellSize-2, r.cellSize-2, color)
	}
	if head, ok := s.Head(); ok {
		r.drawHeading(head, s.Heading)
	}

	half := r.cellSize / 2
	rl.DrawCircle(int32(s.Food.X)*r.cellSize+half, int32(s.Food.Y)*r.cellSize+half, float32(half-2), foodColor)

	if s.Phase == types.GameOver {
		r.drawOverlay(Overlay(s), boardW, boardH, true)
	}
	r.drawStatus(s, boardH)
}

// drawHeading marks the head with a small triangle pointing where it moves.
func (r *Renderer) drawHeading(head types.Point, d types.Direction) {
	x := float32(int32(head.X) * r.cellSize)
	y := float32(int32(head.Y) * r.cellSize)
	c := float32(r.cellSize)
	h := c / 2
	q := c / 4

	var v1, v2, v3 rl.Vector2
	switch d {
	case types.Right:
		v1 = rl.Vector2{X: x + c - q, Y: y + h}
		v2 = rl.Vector2{X: x + h, Y: y + q}
		v3 = rl.Vector2{X: x + h, Y: y + c - q}
	case types.Left:
		v1 = rl.Vector2{X: x + q, Y: y + h}
		v2 = rl.Vector2{X: x + h, Y: y + c - q}
		v3 = rl.Vector2{X: x + h, Y: y + q}
	case types.Down:
		v1 = rl.Vector2{X: x + h, Y: y + c - q}
		v2 = rl.Vector2{X: x + c - q, Y: y + h}
		v3 = rl.Vector2{X: x + q, Y: y + h}
	case types.Up:
		v1 = rl.Vector2{X: x + h, Y: y + q}
		v2 = rl.Vector2{X: x + q, Y: y + h}
		v3 = rl.Vector2{X: x + c - q, Y: y + h}
	default:
		return
	}
	rl.DrawTriangle(v1, v2, v3, rl.Yellow)
}

func (r *Renderer) drawOverlay(lines []string, boardW, boardH int32, dim bool) {
	if dim {
		rl.DrawRectangle(0, 0, boardW, boardH, rl.Fade(rl.Black, 0.7))
	}
	lineHeight := r.fontSize + r.fontSize/2
	y := boardH/2 - int32(len(lines))*lineHeight/2
	for i, line := range lines {
		size := r.fontSize
		if i == 0 {
			size = r.fontSize + r.fontSize/4
		}
		w := rl.MeasureText(line, size)
		rl.DrawText(line, (boardW-w)/2, y, size, textColor)
		y += lineHeight
	}
}

func (r *Renderer) drawStatus(s game.Snapshot, boardH int32) {
	rl.DrawText(StatusLine(s), borderPadding, boardH+borderPadding, r.fontSize, textColor)
}
