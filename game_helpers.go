package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/go-gol-seeds/model"
	"github.com/sheikhrachel/go-gol-seeds/render"
	"github.com/sheikhrachel/go-gol-seeds/seed"
	"github.com/sheikhrachel/go-gol-seeds/utils"
)

const (
	pausePollInterval = 10 * time.Millisecond
	keyHelp           = "space pause | n step | r reset | s save | q quit"
)

// game is the simulation loop's state. Only the loop goroutine touches it;
// key handlers talk to it through control.
type game struct {
	config   utils.Config
	renderer *render.Terminal
	control  *utils.Control
	logger   *slog.Logger
	rng      *rand.Rand
	stats    *utils.Stats
	history  *model.History

	grid          *model.Grid
	seed          model.Seed
	initial       model.Seed
	generation    int
	stagnantCount int
	lastFrameTime time.Time
	notice        string
}

// newGame seeds the first simulation and draws it
func newGame(config utils.Config, screen tcell.Screen, logger *slog.Logger) (*game, error) {
	randomSeed := config.RandomSeed
	if randomSeed == 0 {
		randomSeed = time.Now().UnixNano()
	}

	g := &game{
		config:   config,
		renderer: render.NewTerminal(screen),
		control:  utils.NewControl(config.Manual),
		logger:   logger,
		rng:      seed.NewRNG(randomSeed),
		stats:    utils.NewStats(),
		history:  model.NewHistory(0),
	}

	height, width := g.gridSize()
	s, err := g.initialSeed(height, width)
	if err != nil {
		return nil, err
	}
	g.initial = s
	if err = g.start(s); err != nil {
		return nil, err
	}
	return g, nil
}

// gridSize returns the configured dimensions, filling zeros from the terminal
func (g *game) gridSize() (int, int) {
	height, width := g.config.Height, g.config.Width
	fitHeight, fitWidth := g.renderer.GridSize()
	if height == 0 {
		height = fitHeight
	}
	if width == 0 {
		width = fitWidth
	}
	return height, width
}

// initialSeed picks the seed source: a built-in pattern, a freshly generated
// random seed when auto_seed is on, or the seed file otherwise
func (g *game) initialSeed(height, width int) (model.Seed, error) {
	switch {
	case g.config.Pattern != "":
		return centredPattern(g.config.Pattern, height, width)
	case g.config.AutoSeed:
		return g.randomSeed(height, width)
	default:
		s, err := seed.Load(g.config.SeedFile)
		if err != nil {
			return model.Seed{}, err
		}
		g.logger.Info("seed loaded", "path", g.config.SeedFile, "height", s.Height, "width", s.Width, "cells", len(s.Cells))
		return s, nil
	}
}

// reseeds reports whether restarts draw a new random seed rather than
// replaying the initial one
func (g *game) reseeds() bool {
	return g.config.Pattern == "" && g.config.AutoSeed
}

// centredPattern places a built-in pattern in the middle of a height x width grid
func centredPattern(name string, height, width int) (model.Seed, error) {
	s, err := seed.GenerateFixed(name)
	if err != nil {
		return model.Seed{}, err
	}
	s = seed.Offset(s, (height-s.Height)/2, (width-s.Width)/2)
	s.Height, s.Width = height, width
	return s, nil
}

// randomSeed generates a seed and keeps a copy in the seed directory
func (g *game) randomSeed(height, width int) (model.Seed, error) {
	minFraction, maxFraction := g.config.SeedFractions()
	s, err := seed.GenerateRandom(g.rng, height, width, minFraction, maxFraction)
	if err != nil {
		return model.Seed{}, err
	}
	g.logger.Info("random seed generated", "height", height, "width", width, "cells", len(s.Cells))
	g.saveSeed(s)
	return s, nil
}

func (g *game) saveSeed(s model.Seed) {
	path, err := seed.Save(g.config.SeedDir, s, time.Now())
	if err != nil {
		g.logger.Warn("seed not saved", "err", err)
		g.notice = "seed not saved"
		return
	}
	g.logger.Info("seed saved", "path", path)
	g.notice = "saved " + path
}

// start replaces the grid with a new one built from s
func (g *game) start(s model.Seed) error {
	grid, err := model.NewGrid(s.Height, s.Width)
	if err != nil {
		return err
	}
	if err = grid.ApplySeed(s); err != nil {
		return err
	}

	g.grid = grid
	g.seed = s
	g.generation = 0
	g.stagnantCount = 0
	g.lastFrameTime = time.Now()
	g.history.Reset()
	g.stats.Restart()

	alive := grid.CountLivingCells()
	g.renderer.Reset(grid)
	g.renderer.Status(g.statusLine(alive, false))
	g.renderer.Show()
	g.logger.Info("simulation started", "height", s.Height, "width", s.Width, "alive", alive)
	return nil
}

// restartGame starts over, with a new random seed on the current grid size
// when auto seeding, or from the initial seed otherwise
func (g *game) restartGame(reason string) error {
	g.logger.Info("restarting", "reason", reason, "generation", g.generation)
	if !g.reseeds() {
		return g.start(g.initial)
	}
	s, err := g.randomSeed(g.grid.GetHeight(), g.grid.GetWidth())
	if err != nil {
		return err
	}
	return g.start(s)
}

// loop runs generations until the context ends or the generation limit is hit
func (g *game) loop(ctx context.Context) error {
	frame := time.Second / time.Duration(g.config.MaxFramerate)
	for {
		if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
			g.logger.Info("reached maximum generations",
				"limit", g.config.MaxGenerations,
				"runtime", g.stats.Runtime(),
				"average_population", g.stats.AveragePopulation)
			return nil
		}

		ok, err := g.waitForFrame(ctx)
		if err != nil || !ok {
			return err
		}

		frameStart := time.Now()
		alive, stagnant := g.advance()

		if restart, reason := checkRestartConditions(alive, g.stagnantCount, g.config); restart {
			if err = g.restartGame(reason); err != nil {
				return err
			}
		} else {
			g.renderer.Status(g.statusLine(alive, stagnant))
			g.renderer.Show()
		}

		if !sleepContext(ctx, frame-time.Since(frameStart)) {
			return nil
		}
	}
}

// waitForFrame blocks while the game is paused, handling reset and save
// requests as they arrive. It reports false when the context ends.
func (g *game) waitForFrame(ctx context.Context) (bool, error) {
	for {
		if ctx.Err() != nil {
			return false, nil
		}
		if err := g.handleRequests(); err != nil {
			return false, err
		}

		paused := g.control.Paused()
		if frame := g.control.TakeFrame(); frame || !paused {
			return true, nil
		}

		g.renderer.Status(g.statusLine(g.grid.CountLivingCells(), false))
		g.renderer.Show()
		if !sleepContext(ctx, pausePollInterval) {
			return false, nil
		}
	}
}

func (g *game) handleRequests() error {
	if g.control.TakeSave() {
		g.saveSeed(g.seed)
	}
	if g.control.TakeReset() {
		return g.restartGame("requested")
	}
	return nil
}

// advance steps the grid one generation and updates the screen with the delta
func (g *game) advance() (alive int, stagnant bool) {
	delta := g.grid.Step()
	g.grid.Commit(delta)
	g.renderer.Apply(delta)
	g.generation++

	alive = delta.LivingAfter()
	now := time.Now()
	g.stats.Update(g.generation, alive, now.Sub(g.lastFrameTime))
	g.lastFrameTime = now

	stagnant = g.history.IsStagnant(g.grid)
	g.history.Record(g.grid)
	if stagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	g.logger.Debug("generation",
		"generation", g.generation,
		"killed", len(delta.Kill),
		"revived", len(delta.Revive),
		"alive", alive)
	return alive, stagnant
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if !config.AutoRestart {
		return false, ""
	}
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

func (g *game) statusLine(livingCells int, stagnant bool) string {
	status := "Active"
	switch {
	case g.control.Paused():
		status = "Paused"
	case livingCells == 0:
		status = "Extinct"
	case stagnant:
		status = "Stagnant"
	}

	line := fmt.Sprintf("Gen: %d | Living: %d | Avg Pop: %.1f | %.1f gen/sec | Runtime: %.1fs | %s | %s",
		g.stats.TotalGenerations, livingCells, g.stats.AveragePopulation,
		g.stats.GenerationsPerSecond, g.stats.Runtime().Seconds(), status, keyHelp)
	if g.notice != "" {
		line += " | " + g.notice
	}
	return line
}

// sleepContext waits for d and reports false if the context ended first
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
