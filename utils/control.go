package utils

import "sync"

// Control carries the signals key handlers send to the simulation loop:
// pause, single-step, restart and save. It is safe for concurrent use.
type Control struct {
	mu        sync.Mutex
	paused    bool
	nextFrame bool
	reset     bool
	save      bool
}

// NewControl returns a Control, optionally starting paused
func NewControl(paused bool) *Control {
	return &Control{paused: paused}
}

// Paused reports whether the loop should hold the current generation
func (c *Control) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// TogglePause flips the pause flag and returns the new value
func (c *Control) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	return c.paused
}

// RequestFrame asks for one generation while paused
func (c *Control) RequestFrame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextFrame = true
}

// TakeFrame consumes a pending frame request
func (c *Control) TakeFrame() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending := c.nextFrame
	c.nextFrame = false
	return pending
}

// RequestReset asks for a fresh random simulation
func (c *Control) RequestReset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset = true
}

// TakeReset consumes a pending reset request
func (c *Control) TakeReset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending := c.reset
	c.reset = false
	return pending
}

// RequestSave asks for the current seed to be written to disk
func (c *Control) RequestSave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.save = true
}

// TakeSave consumes a pending save request
func (c *Control) TakeSave() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending := c.save
	c.save = false
	return pending
}
