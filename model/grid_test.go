package model

import (
	"slices"
	"testing"

	"github.com/pkg/errors"
)

func newTestGrid(t *testing.T, height, width int, cells ...Coordinate) *Grid {
	t.Helper()
	g, err := NewGrid(height, width)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", height, width, err)
	}
	if err = g.ApplySeed(Seed{Height: height, Width: width, Cells: cells}); err != nil {
		t.Fatalf("ApplySeed: %v", err)
	}
	return g
}

func advance(g *Grid) Delta {
	d := g.Step()
	g.Commit(d)
	return d
}

func assertLiving(t *testing.T, g *Grid, want ...Coordinate) {
	t.Helper()
	got := g.LivingCells()
	slices.SortFunc(want, func(a, b Coordinate) int { return a.Index(g.GetWidth()) - b.Index(g.GetWidth()) })
	if !slices.Equal(got, want) {
		t.Fatalf("living cells = %v, want %v", got, want)
	}
}

func TestNewGridRejectsNonPositiveDimensions(t *testing.T) {
	cases := []struct{ height, width int }{
		{0, 5}, {5, 0}, {-1, 5}, {5, -3}, {0, 0},
	}
	for _, tc := range cases {
		if _, err := NewGrid(tc.height, tc.width); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("NewGrid(%d, %d) err = %v, want ErrInvalidDimension", tc.height, tc.width, err)
		}
	}
}

func TestNewGridStartsDead(t *testing.T) {
	g := newTestGrid(t, 4, 7)
	if g.GetHeight() != 4 || g.GetWidth() != 7 {
		t.Fatalf("dimensions = %dx%d, want 4x7", g.GetHeight(), g.GetWidth())
	}
	if n := g.CountLivingCells(); n != 0 {
		t.Fatalf("living cells = %d, want 0", n)
	}
}

func TestApplySeedOutOfBoundsLeavesGridUntouched(t *testing.T) {
	g := newTestGrid(t, 5, 5, Coordinate{Row: 1, Col: 1})
	before := g.GetGridHash()

	seed := Seed{Height: 5, Width: 5, Cells: []Coordinate{{Row: 2, Col: 2}, {Row: 5, Col: 0}}}
	if err := g.ApplySeed(seed); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
	if g.GetGridHash() != before {
		t.Fatal("rejected seed mutated the grid")
	}
	if err := g.ApplySeed(Seed{Cells: []Coordinate{{Row: 0, Col: -1}}}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("negative column err = %v, want ErrOutOfBounds", err)
	}
}

func TestApplySeedDuplicates(t *testing.T) {
	c := Coordinate{Row: 2, Col: 3}
	g := newTestGrid(t, 4, 4, c, c, c)
	if n := g.CountLivingCells(); n != 1 {
		t.Fatalf("living cells = %d, want 1", n)
	}
}

func TestCountNeighborsHardEdge(t *testing.T) {
	// Every cell alive: corners see 3, edges 5, interior 8.
	var all []Coordinate
	for r := range 3 {
		for c := range 3 {
			all = append(all, Coordinate{Row: r, Col: c})
		}
	}
	g := newTestGrid(t, 3, 3, all...)

	cases := []struct {
		row, col, want int
	}{
		{0, 0, 3}, {0, 2, 3}, {2, 0, 3}, {2, 2, 3},
		{0, 1, 5}, {1, 0, 5}, {1, 2, 5}, {2, 1, 5},
		{1, 1, 8},
	}
	for _, tc := range cases {
		if got := g.CountNeighbors(tc.row, tc.col); got != tc.want {
			t.Errorf("CountNeighbors(%d, %d) = %d, want %d", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestNoWrapAcrossEdges(t *testing.T) {
	// On a torus the left column would feed (1,3) three neighbors.
	g := newTestGrid(t, 3, 4, Coordinate{0, 0}, Coordinate{1, 0}, Coordinate{2, 0})
	if n := g.CountNeighbors(1, 3); n != 0 {
		t.Fatalf("CountNeighbors(1, 3) = %d, want 0", n)
	}
	advance(g)
	assertLiving(t, g, Coordinate{1, 0}, Coordinate{1, 1})
}

func TestStepDoesNotMutate(t *testing.T) {
	g := newTestGrid(t, 5, 5, Coordinate{2, 1}, Coordinate{2, 2}, Coordinate{2, 3})
	before := g.GetGridHash()
	g.Step()
	if g.GetGridHash() != before {
		t.Fatal("Step mutated the grid")
	}
}

func TestUnderpopulation(t *testing.T) {
	g := newTestGrid(t, 3, 3, Coordinate{1, 1})
	d := advance(g)
	if len(d.Kill) != 1 || d.Kill[0] != (Coordinate{1, 1}) || len(d.Revive) != 0 {
		t.Fatalf("delta = %+v", d)
	}
	assertLiving(t, g)
}

func TestNoSpontaneousGeneration(t *testing.T) {
	g := newTestGrid(t, 6, 6, Coordinate{0, 0}, Coordinate{5, 5})
	for range 3 {
		d := advance(g)
		for _, c := range d.Revive {
			t.Fatalf("cell %v revived with no live neighbors", c)
		}
	}
	assertLiving(t, g)
}

func TestOvercrowding(t *testing.T) {
	// A plus shape: the centre has four neighbors and dies.
	g := newTestGrid(t, 3, 3,
		Coordinate{0, 1}, Coordinate{1, 0}, Coordinate{1, 1}, Coordinate{1, 2}, Coordinate{2, 1})
	advance(g)
	assertLiving(t, g,
		Coordinate{0, 0}, Coordinate{0, 1}, Coordinate{0, 2},
		Coordinate{1, 0}, Coordinate{1, 2},
		Coordinate{2, 0}, Coordinate{2, 1}, Coordinate{2, 2})
}

func TestExactNextGeneration(t *testing.T) {
	// Glider on a 5x5 board:
	//   .X...      .....
	//   ..X..      X.X..
	//   XXX..  ->  .XX..
	//   .....      .X...
	//   .....      .....
	g := newTestGrid(t, 5, 5,
		Coordinate{0, 1}, Coordinate{1, 2}, Coordinate{2, 0}, Coordinate{2, 1}, Coordinate{2, 2})
	d := advance(g)

	wantKill := []Coordinate{{0, 1}, {2, 0}}
	wantRevive := []Coordinate{{1, 0}, {3, 1}}
	if !slices.Equal(d.Kill, wantKill) {
		t.Errorf("Kill = %v, want %v", d.Kill, wantKill)
	}
	if !slices.Equal(d.Revive, wantRevive) {
		t.Errorf("Revive = %v, want %v", d.Revive, wantRevive)
	}
	if d.LivingBefore != 5 || d.LivingAfter() != 5 {
		t.Errorf("LivingBefore = %d, LivingAfter = %d, want 5, 5", d.LivingBefore, d.LivingAfter())
	}
	assertLiving(t, g, Coordinate{1, 0}, Coordinate{1, 2}, Coordinate{2, 1}, Coordinate{2, 2}, Coordinate{3, 1})
}

func TestBlockIsStill(t *testing.T) {
	block := []Coordinate{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	g := newTestGrid(t, 4, 4, block...)
	for i := range 10 {
		d := advance(g)
		if !d.Empty() {
			t.Fatalf("step %d changed a still life: %+v", i, d)
		}
	}
	assertLiving(t, g, block...)
}

func TestBlinkerOscillation(t *testing.T) {
	horizontal := []Coordinate{{2, 1}, {2, 2}, {2, 3}}
	vertical := []Coordinate{{1, 2}, {2, 2}, {3, 2}}
	g := newTestGrid(t, 5, 5, horizontal...)

	advance(g)
	assertLiving(t, g, vertical...)

	advance(g)
	assertLiving(t, g, horizontal...)
}

func TestLivingAfterMatchesCount(t *testing.T) {
	g := newTestGrid(t, 8, 8,
		Coordinate{0, 1}, Coordinate{1, 2}, Coordinate{2, 0}, Coordinate{2, 1}, Coordinate{2, 2},
		Coordinate{6, 6}, Coordinate{6, 7}, Coordinate{7, 6})
	for i := range 20 {
		d := advance(g)
		if got := g.CountLivingCells(); got != d.LivingAfter() {
			t.Fatalf("step %d: LivingAfter = %d, counted %d", i, d.LivingAfter(), got)
		}
	}
}

func TestCoordinateIndex(t *testing.T) {
	if got := (Coordinate{Row: 3, Col: 4}).Index(10); got != 34 {
		t.Fatalf("Index = %d, want 34", got)
	}
}
