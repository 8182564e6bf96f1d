package manager

import (
	"classic-snake/game/types"

	"golang.org/x/exp/rand"
)

// maxSpawnTries bounds rejection sampling before falling back to a scan of
// the free cells.
const maxSpawnTries = 64

// Occupier reports whether a cell is taken.
type Occupier interface {
	Occupies(p types.Point) bool
}

type FoodManager struct {
	grid types.Grid
	rng  *rand.Rand
	food types.Point
}

func NewFoodManager(grid types.Grid, seed uint64) *FoodManager {
	return &FoodManager{
		grid: grid,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// GenerateFood picks a uniformly random cell not occupied by the snake and
// makes it the current food. It reports false when the board is full.
func (fm *FoodManager) GenerateFood(snake Occupier) (types.Point, bool) {
	for i := 0; i < maxSpawnTries; i++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if fm.Place(food, snake) {
			return food, true
		}
	}

	// Crowded board: draw from the cells that are actually free.
	free := make([]types.Point, 0, fm.grid.Cells())
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if !snake.Occupies(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return fm.food, false
	}
	food := free[fm.rng.Intn(len(free))]
	fm.Place(food, snake)
	return food, true
}

// Place puts the food on p if p is on the grid and free.
func (fm *FoodManager) Place(p types.Point, snake Occupier) bool {
	if !fm.grid.Contains(p) || snake.Occupies(p) {
		return false
	}
	fm.food = p
	return true
}

func (fm *FoodManager) Food() types.Point {
	return fm.food
}

// IsFoodCollision reports whether pos is the current food cell.
func (fm *FoodManager) IsFoodCollision(pos types.Point) bool {
	return pos == fm.food
}
