package seed

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-seeds/model"
)

var (
	// ErrInvalidRange is returned when seed fractions are negative or inverted
	ErrInvalidRange = errors.New("invalid seed fraction range")
	// ErrUnknownPattern is returned for a fixed pattern name that is not built in
	ErrUnknownPattern = errors.New("unknown pattern")
)

// maxDraws bounds the number of cells a random seed may draw
const maxDraws = math.MaxInt32

// DefaultPattern is the fixed pattern used for deterministic runs
const DefaultPattern = "glider"

var patterns = map[string][]model.Coordinate{
	"glider": {
		{Row: 0, Col: 1},
		{Row: 1, Col: 2},
		{Row: 2, Col: 0},
		{Row: 2, Col: 1},
		{Row: 2, Col: 2},
	},
	"blinker": {
		{Row: 0, Col: 0},
		{Row: 0, Col: 1},
		{Row: 0, Col: 2},
	},
	"block": {
		{Row: 0, Col: 0},
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
		{Row: 1, Col: 1},
	},
}

// NewRNG returns a deterministic generator for the given seed value
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// GenerateRandom draws a live-cell count uniformly between
// floor(height*width*minFraction) and floor(height*width*maxFraction), then
// draws that many cells uniformly over the grid. Cells are not deduplicated,
// so the number of distinct live cells may be lower than the draw count.
func GenerateRandom(rng *rand.Rand, height, width int, minFraction, maxFraction float64) (model.Seed, error) {
	if height <= 0 || width <= 0 {
		return model.Seed{}, errors.Wrapf(model.ErrInvalidDimension,
			"[GenerateRandom] height=%d width=%d", height, width)
	}
	if !ValidFraction(minFraction) || !ValidFraction(maxFraction) || minFraction > maxFraction {
		return model.Seed{}, errors.Wrapf(ErrInvalidRange,
			"[GenerateRandom] min=%v max=%v", minFraction, maxFraction)
	}

	area := float64(height * width)
	if area*maxFraction >= maxDraws {
		return model.Seed{}, errors.Wrapf(ErrInvalidRange,
			"[GenerateRandom] max=%v draws too many cells for %dx%d", maxFraction, height, width)
	}
	minCells := int(area * minFraction)
	maxCells := int(area * maxFraction)
	draws := minCells + rng.IntN(maxCells-minCells+1)

	cells := make([]model.Coordinate, draws)
	for i := range cells {
		cells[i] = model.Coordinate{Row: rng.IntN(height), Col: rng.IntN(width)}
	}
	return model.Seed{Height: height, Width: width, Cells: cells}, nil
}

// ValidFraction reports whether f is a finite, non-negative seed fraction
func ValidFraction(f float64) bool {
	return f >= 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// GenerateFixed returns one of the built-in patterns anchored at the origin.
// The seed's dimensions are the pattern's bounding box.
func GenerateFixed(pattern string) (model.Seed, error) {
	cells, ok := patterns[pattern]
	if !ok {
		return model.Seed{}, errors.Wrapf(ErrUnknownPattern, "[GenerateFixed] %q", pattern)
	}

	s := model.Seed{Cells: slices.Clone(cells)}
	for _, c := range cells {
		s.Height = max(s.Height, c.Row+1)
		s.Width = max(s.Width, c.Col+1)
	}
	return s, nil
}

// Patterns returns the names of the built-in patterns, sorted
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Offset returns a copy of s with every cell moved by (rows, cols)
func Offset(s model.Seed, rows, cols int) model.Seed {
	moved := model.Seed{Height: s.Height + rows, Width: s.Width + cols, Cells: make([]model.Coordinate, len(s.Cells))}
	for i, c := range s.Cells {
		moved.Cells[i] = model.Coordinate{Row: c.Row + rows, Col: c.Col + cols}
	}
	return moved
}
