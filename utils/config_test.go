package utils

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `{"height": 40, "width": 71, "manual": true, "max_auto_seed_percent": 30}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Height != 40 || cfg.Width != 71 || !cfg.Manual || cfg.MaxAutoSeedPercent != 30 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.MaxFramerate != 60 || cfg.MinAutoSeedPercent != 5 || cfg.SeedDir != "seeds" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "[Merge]") {
		t.Fatalf("err = %v, want it tagged with [Merge]", err)
	}
	if _, err = LoadConfig(writeConfig(t, "{")); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}

func TestValidateSeedFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoSeed = false
	cfg.SeedFile = "a.seed"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("seed file with auto_seed off rejected: %v", err)
	}
}

func TestBindInfiniteSeedPercent(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-max-seed", "Inf"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-height", "20", "-pattern", "glider", "-min-seed", "1.5", "-manual"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Height != 20 || cfg.Pattern != "glider" || cfg.MinAutoSeedPercent != 1.5 || !cfg.Manual {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Width != 0 || cfg.MaxFramerate != 60 {
		t.Fatalf("unset flags changed defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cases := map[string]func(*Config){
		"negative height":  func(c *Config) { c.Height = -1 },
		"zero framerate":   func(c *Config) { c.MaxFramerate = 0 },
		"inverted percent": func(c *Config) { c.MinAutoSeedPercent, c.MaxAutoSeedPercent = 30, 10 },
		"negative percent": func(c *Config) { c.MinAutoSeedPercent = -5 },
		"no seed source":   func(c *Config) { c.AutoSeed = false },
		"infinite percent": func(c *Config) { c.MaxAutoSeedPercent = math.Inf(1) },
		"nan percent":      func(c *Config) { c.MinAutoSeedPercent = math.NaN() },
		"file and random":  func(c *Config) { c.SeedFile = "a.seed" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSeedFractionsAndLevel(t *testing.T) {
	cfg := DefaultConfig()
	if lo, hi := cfg.SeedFractions(); lo != 0.05 || hi != 0.2 {
		t.Fatalf("SeedFractions = %v, %v", lo, hi)
	}
	cfg.LogLevel = "debug"
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("Level = %v, want debug", cfg.Level())
	}
	cfg.LogLevel = "loud"
	if cfg.Level() != slog.LevelInfo {
		t.Fatalf("Level = %v, want info fallback", cfg.Level())
	}
}
