// Package snake implements the snake simulation: a fixed grid, the snake
// body, the food and power-up spawner, the per-tick session state machine
// and the mode controller that adds Time Attack's countdown on top.
//
// Nothing in this package knows about terminals. The platform layer feeds
// it directions and elapsed time and draws the result through core.Screen.
package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Cell is a grid coordinate. (0, 0) is the top-left corner.
type Cell struct {
	X, Y int
}

// Add returns the neighbouring cell in direction d.
func (c Cell) Add(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Direction is one of the four unit headings. DirNone means "no input".
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

// Delta returns the unit vector of the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// DirectionFromAction maps a movement action to a heading.
// Non-movement actions map to DirNone.
func DirectionFromAction(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	case core.ActionRight:
		return DirRight
	}
	return DirNone
}

// Grid is the playfield. Walls lie just outside it, so any cell for which
// Contains returns false is a wall.
type Grid struct {
	Width  int
	Height int
}

// NewGrid creates a grid of the given size.
func NewGrid(width, height int) Grid {
	return Grid{Width: max(width, 1), Height: max(height, 1)}
}

// Contains reports whether c lies inside the grid.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Area returns the number of cells.
func (g Grid) Area() int {
	return g.Width * g.Height
}

// Wrap folds c back onto the grid, treating opposite edges as adjacent.
func (g Grid) Wrap(c Cell) Cell {
	return Cell{X: mod(c.X, g.Width), Y: mod(c.Y, g.Height)}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
