package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimension is returned when a grid is requested with a non-positive height or width
	ErrInvalidDimension = errors.New("invalid grid dimension")
	// ErrOutOfBounds is returned when a seed coordinate lies outside the grid
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// Coordinate addresses a single cell by row and column
type Coordinate struct {
	Row int
	Col int
}

// Index packs the coordinate into a row-major index for a grid of the given width
func (c Coordinate) Index(width int) int {
	return c.Row*width + c.Col
}

// Seed is the ordered list of cells that start alive, paired with the grid
// dimensions it was generated for. Cells may repeat.
type Seed struct {
	Height int
	Width  int
	Cells  []Coordinate
}

// Delta is the change set produced by one generation step
type Delta struct {
	Kill         []Coordinate
	Revive       []Coordinate
	LivingBefore int
}

// LivingAfter returns the number of living cells once the delta is committed
func (d Delta) LivingAfter() int {
	return d.LivingBefore + len(d.Revive) - len(d.Kill)
}

// Empty reports whether committing the delta would change nothing
func (d Delta) Empty() bool {
	return len(d.Kill) == 0 && len(d.Revive) == 0
}
