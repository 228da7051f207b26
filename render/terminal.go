package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/go-gol-seeds/model"
)

const (
	cellBlock = '█'
	cellEmpty = ' '

	// statusRows is the number of screen rows above the grid
	statusRows = 1
)

// Terminal draws a grid on a tcell screen and keeps it current by applying
// deltas, so only cells that flipped are redrawn
type Terminal struct {
	screen tcell.Screen
	cache  *Cache

	alive  tcell.Style
	dead   tcell.Style
	status tcell.Style
}

// NewTerminal wraps an initialised screen
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		cache:  NewCache(0),
		alive:  tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack),
		dead:   tcell.StyleDefault.Background(tcell.ColorBlack),
		status: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
	}
}

// GridSize returns the largest grid that fits below the status line
func (t *Terminal) GridSize() (height, width int) {
	w, h := t.screen.Size()
	return h - statusRows, w
}

// Reset clears the screen and draws every living cell of g
func (t *Terminal) Reset(g *model.Grid) {
	t.screen.Clear()
	t.cache.Clear(g.GetWidth())
	for _, c := range g.LivingCells() {
		t.draw(c)
	}
}

// Apply erases killed cells and draws revived ones, leaving everything else alone
func (t *Terminal) Apply(d model.Delta) {
	for _, c := range d.Kill {
		t.erase(c)
	}
	for _, c := range d.Revive {
		t.draw(c)
	}
}

// Drawn reports whether the cell at c is currently on screen
func (t *Terminal) Drawn(c model.Coordinate) bool {
	return t.cache.Drawn(c)
}

// Status replaces the status line
func (t *Terminal) Status(text string) {
	w, _ := t.screen.Size()
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		t.screen.SetContent(x, 0, r, nil, t.status)
		x++
	}
	for ; x < w; x++ {
		t.screen.SetContent(x, 0, cellEmpty, nil, t.status)
	}
}

// Show flushes pending changes to the terminal
func (t *Terminal) Show() {
	t.screen.Show()
}

func (t *Terminal) draw(c model.Coordinate) {
	if !t.cache.Mark(c) {
		return
	}
	t.screen.SetContent(c.Col, c.Row+statusRows, cellBlock, nil, t.alive)
}

func (t *Terminal) erase(c model.Coordinate) {
	if !t.cache.Unmark(c) {
		return
	}
	t.screen.SetContent(c.Col, c.Row+statusRows, cellEmpty, nil, t.dead)
}
