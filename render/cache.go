package render

import "github.com/sheikhrachel/go-gol-seeds/model"

// Cache records which cells are currently drawn, keyed by packed row-major index
type Cache struct {
	width int
	drawn map[int]struct{}
}

// NewCache returns an empty cache for a grid of the given width
func NewCache(width int) *Cache {
	return &Cache{width: width, drawn: make(map[int]struct{})}
}

// Drawn reports whether c is currently drawn
func (c *Cache) Drawn(at model.Coordinate) bool {
	_, ok := c.drawn[at.Index(c.width)]
	return ok
}

// Mark records c as drawn and reports whether it was new
func (c *Cache) Mark(at model.Coordinate) bool {
	idx := at.Index(c.width)
	if _, ok := c.drawn[idx]; ok {
		return false
	}
	c.drawn[idx] = struct{}{}
	return true
}

// Unmark forgets c and reports whether it had been drawn
func (c *Cache) Unmark(at model.Coordinate) bool {
	idx := at.Index(c.width)
	if _, ok := c.drawn[idx]; !ok {
		return false
	}
	delete(c.drawn, idx)
	return true
}

// Len returns the number of drawn cells
func (c *Cache) Len() int {
	return len(c.drawn)
}

// Clear empties the cache, switching to a new grid width
func (c *Cache) Clear(width int) {
	c.width = width
	clear(c.drawn)
}
