package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/stream"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var flagPlayStream string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start a run of the given mode, "runner" when omitted.

Controls:
  Space/W/Up  - Jump
  S/Down      - Slide
  P           - Pause
  R/Enter     - Restart (next level after a completed one)
  Esc         - Leave (when paused or finished)
  Ctrl+S      - Screenshot to ~/.arcade/screenshots
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Five lives, fewer pits, progression from the lowest level
  normal - Progression starts at 30%
  hard   - Two lives, more pits, progression starts at 70%
  fixed  - No progression, stays at config's initial level

Examples:
  runner play
  runner play runner_endless
  runner play --difficulty hard --level 3
  runner play --config ./my-runner.yaml
  runner play --stream :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayStream, "stream", "", "Also stream snapshots to websocket spectators on this address")
}

// modeArg returns the mode named by args, the level mode by default.
func modeArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return runner.IDLevels
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database, nil when it cannot be opened.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := modeArg(args)
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := []tui.Option{tui.WithLogger(logger)}
	if flagPlayStream != "" {
		hub := stream.NewHub(gameID, logger)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := stream.Serve(ctx, flagPlayStream, hub); err != nil {
				logger.Error("stream stopped", "error", err)
			}
		}()
		opts = append(opts, tui.WithPublisher(hub))
	}

	if err := tui.Run(game, store, terminalConfig(), opts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
