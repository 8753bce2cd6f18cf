package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/stream"
)

var (
	flagWatchAddr  string
	flagWatchPause time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [mode]",
	Short: "Stream autopilot runs to websocket spectators",
	Long: `Run the autopilot in real time and broadcast a JSON snapshot of the
world every tick. Spectators connect to ws://<addr>/ws; /status reports
the stream state. Finished runs restart after a short pause.

Each frame carries the tick, the player, the frontier and every active
segment with its obstacle, in world units.

Examples:
  runner watch
  runner watch runner_endless --addr 127.0.0.1:9000
  runner watch --fps 30 --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchAddr, "addr", ":8080", "HTTP address to serve the stream on")
	watchCmd.Flags().DurationVar(&flagWatchPause, "restart-after", 2*time.Second, "Pause before a finished run restarts")
}

func runWatch(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	gameID := modeArg(args)
	game, err := newAutoGame(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := stream.NewHub(gameID, logger)
	serveErr := make(chan error, 1)
	go func() { serveErr <- stream.Serve(ctx, flagWatchAddr, hub) }()

	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: flagSeed}
	newSeed := func() {
		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}
	}
	newSeed()
	game.Reset(rt)

	ticker := time.NewTicker(time.Second / time.Duration(max(flagFPS, 1)))
	defer ticker.Stop()

	pilot := runner.DefaultAutopilot()
	var finishedAt time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			<-serveErr
			return
		case err := <-serveErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case <-ticker.C:
		}

		if !finishedAt.IsZero() {
			if time.Since(finishedAt) < flagWatchPause {
				continue
			}
			finishedAt = time.Time{}
			newSeed()
			game.Reset(rt)
		}

		res := game.StepAuto(pilot)
		hub.Publish(game.Observe())
		if res.State.Finished() {
			finishedAt = time.Now()
			logger.Info("run finished",
				"score", res.State.Score,
				"level", res.State.Level,
				"distance", int(res.State.Distance),
				"spectators", hub.Clients(),
			)
		}
	}
}
