package utils

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-seeds/seed"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Height              int     `json:"height"` // 0 fits the terminal
	Width               int     `json:"width"`  // 0 fits the terminal
	MaxFramerate        int     `json:"max_framerate"`
	Manual              bool    `json:"manual"`
	AutoSeed            bool    `json:"auto_seed"` // random seeds, otherwise SeedFile
	MinAutoSeedPercent  float64 `json:"min_auto_seed_percent"`
	MaxAutoSeedPercent  float64 `json:"max_auto_seed_percent"`
	SeedDir             string  `json:"seed_dir"`
	SeedFile            string  `json:"seed_file"`
	Pattern             string  `json:"pattern"`
	RandomSeed          int64   `json:"random_seed"` // 0 seeds from the clock
	MaxGenerations      int     `json:"max_generations"`
	AutoRestart         bool    `json:"auto_restart"`
	StagnationThreshold int     `json:"stagnation_threshold"`
	LogFile             string  `json:"log_file"`
	LogLevel            string  `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MaxFramerate:        60,
		AutoSeed:            true,
		MinAutoSeedPercent:  5,
		MaxAutoSeedPercent:  20,
		SeedDir:             "seeds",
		StagnationThreshold: 5,
		LogFile:             "gol.log",
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()
	if err := config.Merge(filename); err != nil {
		return DefaultConfig(), err
	}
	return config, nil
}

// Merge overlays the JSON file onto c; fields absent from the file keep their value
func (c *Config) Merge(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "[Merge] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "[Merge] failed to unmarshal data from file: %+v", filename)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells, 0 fits the terminal")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells, 0 fits the terminal")
	fs.IntVar(&c.MaxFramerate, "fps", c.MaxFramerate, "maximum generations per second")
	fs.BoolVar(&c.Manual, "manual", c.Manual, "start paused and advance with 'n'")
	fs.BoolVar(&c.AutoSeed, "auto-seed", c.AutoSeed, "generate random seeds; turn off to load -seed-file")
	fs.Float64Var(&c.MinAutoSeedPercent, "min-seed", c.MinAutoSeedPercent, "minimum percent of cells alive in a random seed")
	fs.Float64Var(&c.MaxAutoSeedPercent, "max-seed", c.MaxAutoSeedPercent, "maximum percent of cells alive in a random seed")
	fs.StringVar(&c.SeedDir, "seed-dir", c.SeedDir, "directory random seeds are saved to")
	fs.StringVar(&c.SeedFile, "seed-file", c.SeedFile, "seed file to load")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "start from a built-in pattern instead of a random seed")
	fs.Int64Var(&c.RandomSeed, "rng-seed", c.RandomSeed, "random number generator seed, 0 uses the clock")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations, 0 runs forever")
	fs.BoolVar(&c.AutoRestart, "auto-restart", c.AutoRestart, "reseed when the grid dies out or stagnates")
	fs.IntVar(&c.StagnationThreshold, "stagnation", c.StagnationThreshold, "stagnant generations before an auto restart")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "log file path")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
}

// Validate checks the settings that have no safe fallback
func (c Config) Validate() error {
	switch {
	case c.Height < 0 || c.Width < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative grid size %dx%d", c.Height, c.Width)
	case c.MaxFramerate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] max_framerate must be positive, got %d", c.MaxFramerate)
	case !seed.ValidFraction(c.MinAutoSeedPercent) || !seed.ValidFraction(c.MaxAutoSeedPercent) ||
		c.MinAutoSeedPercent > c.MaxAutoSeedPercent:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] seed percent range %v-%v",
			c.MinAutoSeedPercent, c.MaxAutoSeedPercent)
	case !c.AutoSeed && c.SeedFile == "" && c.Pattern == "":
		return errors.Wrap(ErrInvalidConfig, "[Validate] auto_seed is off and no seed_file or pattern was given")
	case c.AutoSeed && c.SeedFile != "":
		return errors.Wrap(ErrInvalidConfig, "[Validate] seed_file is only loaded with auto_seed off")
	}
	return nil
}

// SeedFractions returns the random seed bounds as fractions of the grid area
func (c Config) SeedFractions() (float64, float64) {
	return c.MinAutoSeedPercent / 100, c.MaxAutoSeedPercent / 100
}

// Level parses LogLevel, falling back to info
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
