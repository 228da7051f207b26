package model

const defaultHistorySize = 5

// History remembers the hashes of recent generations for cycle detection
type History struct {
	size   int
	hashes []string
}

// NewHistory returns a History keeping the last size states
func NewHistory(size int) *History {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &History{size: size}
}

// Record adds the current state to history and maintains size
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.GetGridHash())
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant checks if the grid repeats one of the last three recorded
// states, which catches still lifes and oscillators up to period three
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	currentHash := g.GetGridHash()
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == currentHash {
			return true
		}
	}
	return false
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}
