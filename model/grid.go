package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-seeds/rules"
)

// neighborOffsets lists the eight neighbor directions as (row, col) offsets,
// clockwise from north: N, NE, E, SE, S, SW, W, NW
var neighborOffsets = [8]Coordinate{
	{Row: -1, Col: 0},
	{Row: -1, Col: 1},
	{Row: 0, Col: 1},
	{Row: 1, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: -1},
	{Row: 0, Col: -1},
	{Row: -1, Col: -1},
}

// Grid is a fixed-size board with a hard, non-wrapping edge. Cells outside
// the board are permanently dead.
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewGrid] height=%d width=%d", height, width)
	}
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Contains reports whether c lies on the grid
func (g *Grid) Contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// Alive returns the state of a cell; anything off the grid is dead
func (g *Grid) Alive(c Coordinate) bool {
	if !g.Contains(c) {
		return false
	}
	return g.cells[c.Row][c.Col]
}

// ApplySeed brings every seed cell to life. The whole seed is checked before
// any cell is touched, so a rejected seed leaves the grid as it was.
func (g *Grid) ApplySeed(seed Seed) error {
	for i, c := range seed.Cells {
		if !g.Contains(c) {
			return errors.Wrapf(ErrOutOfBounds, "[ApplySeed] cell %d (%d, %d) outside %dx%d grid",
				i, c.Row, c.Col, g.height, g.width)
		}
	}
	for _, c := range seed.Cells {
		g.cells[c.Row][c.Col] = true
	}
	return nil
}

// CountNeighbors counts living cells among the eight neighbors of (row, col)
func (g *Grid) CountNeighbors(row, col int) int {
	count := 0
	for _, off := range neighborOffsets {
		r, c := row+off.Row, col+off.Col
		if r < 0 || r >= g.height || c < 0 || c >= g.width {
			continue
		}
		if g.cells[r][c] {
			count++
		}
	}
	return count
}

// Step works out the next generation from the current one without changing
// the grid. Kill and Revive are listed in row-major order.
func (g *Grid) Step() Delta {
	var delta Delta
	for row := range g.height {
		for col := range g.width {
			neighbors := g.CountNeighbors(row, col)
			if g.cells[row][col] {
				delta.LivingBefore++
				if rules.Dies(neighbors) {
					delta.Kill = append(delta.Kill, Coordinate{Row: row, Col: col})
				}
				continue
			}
			if rules.Revives(neighbors) {
				delta.Revive = append(delta.Revive, Coordinate{Row: row, Col: col})
			}
		}
	}
	return delta
}

// Commit applies a delta. The delta must come from Step on this grid with no
// mutation in between; a stale delta gives undefined results.
func (g *Grid) Commit(d Delta) {
	for _, c := range d.Kill {
		g.cells[c.Row][c.Col] = false
	}
	for _, c := range d.Revive {
		g.cells[c.Row][c.Col] = true
	}
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// LivingCells returns the coordinates of every living cell in row-major order
func (g *Grid) LivingCells() []Coordinate {
	var living []Coordinate
	for row := range g.height {
		for col := range g.width {
			if g.cells[row][col] {
				living = append(living, Coordinate{Row: row, Col: col})
			}
		}
	}
	return living
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
