package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-seeds/utils"
)

func main() {
	config, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logFile, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: config.Level()}))

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, config, logger); err != nil {
		logger.Error("game stopped", "err", err)
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the optional JSON file and command-line flags,
// in that order of increasing precedence
func loadConfig(fs *flag.FlagSet, args []string) (utils.Config, error) {
	config := utils.DefaultConfig()
	config.Bind(fs)
	path := fs.String("config", "config.json", "JSON config file")
	if err := fs.Parse(args); err != nil {
		return config, err
	}

	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

	if err := config.Merge(*path); err != nil {
		if _, set := explicit["config"]; set || !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
	}
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return config, errors.Wrapf(err, "[loadConfig] flag -%s", name)
		}
	}
	return config, config.Validate()
}

// run owns the terminal for the lifetime of the game. Key events are polled
// on one goroutine and the simulation runs on another; they share only the
// Control.
func run(ctx context.Context, config utils.Config, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[run] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[run] failed to initialise screen")
	}
	screen.HideCursor()

	game, err := newGame(config, screen, logger)
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		pollEvents(screen, game.control, cancel)
		return nil
	})
	eg.Go(func() error {
		// Fini unblocks PollEvent on the other goroutine
		defer screen.Fini()
		return game.loop(ctx)
	})
	return eg.Wait()
}

// pollEvents translates key presses into Control signals until the screen is
// finalised or the player quits
func pollEvents(screen tcell.Screen, control *utils.Control, quit func()) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				quit()
				return
			case ev.Rune() == ' ':
				control.TogglePause()
			case ev.Rune() == 'n':
				control.RequestFrame()
			case ev.Rune() == 'r':
				control.RequestReset()
			case ev.Rune() == 's':
				control.RequestSave()
			}
		}
	}
}
