package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	rc "github.com/vovakirdan/tui-runner/internal/games/runner/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagSimTicks  int
	flagSimWidth  int
	flagSimHeight int
	flagSimSave   bool
	flagSimJSON   bool
	flagSimScreen bool
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Run headless with the autopilot",
	Long: `Simulate a run without a terminal UI. The autopilot jumps gaps, pits
and blocks and slides under bars. The run ends when the player dies, the
level completes or the tick budget is spent.

Examples:
  runner sim
  runner sim runner_endless --ticks 20000 --seed 7
  runner sim --seed 42 --json
  runner sim --save --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum ticks to simulate")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Virtual screen width")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Virtual screen height")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the run summary as JSON")
	simCmd.Flags().BoolVar(&flagSimScreen, "screen", false, "Print the final screen")
}

// newAutoGame creates a runner game for headless play.
func newAutoGame(gameID string) (*runner.Game, error) {
	g, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	rg, ok := g.(*runner.Game)
	if !ok {
		return nil, fmt.Errorf("mode %q cannot run headless", gameID)
	}
	return rg, nil
}

func runSim(_ *cobra.Command, args []string) {
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

	rt := core.RuntimeConfig{
		ScreenW:  flagSimWidth,
		ScreenH:  flagSimHeight,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	start := time.Now()
	sum, stats := simulate(game, rt, flagSimTicks, logger)
	logger.Info("simulation finished",
		"mode", gameID,
		"seed", sum.Seed,
		"ticks", sum.Ticks,
		"distance", int(sum.Distance),
		"score", sum.Score,
		"life", sum.Life,
		"level", sum.Level,
		"completed", sum.Completed,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	logger.Info("world stats",
		"spawned", stats.Spawned,
		"pits", stats.Pits,
		"exhaustions", stats.Exhaustions,
		"despawned", stats.Despawned,
		"recoveries", stats.Recoveries,
		"damage", stats.Damage,
	)

	if flagSimSave {
		saveRun(gameID, sum, logger)
	}
	if flagSimScreen {
		screen := core.NewScreen(rt.ScreenW, rt.ScreenH)
		game.Render(screen)
		fmt.Println(screen.String())
	}
	if flagSimJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sum); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// simulate resets game and runs it with the autopilot for at most ticks.
func simulate(game *runner.Game, rt core.RuntimeConfig, ticks int, logger *log.Logger) (registry.RunSummary, rc.Stats) {
	game.Reset(rt)
	pilot := runner.DefaultAutopilot()
	for i := 0; i < ticks; i++ {
		res := game.StepAuto(pilot)
		for _, ev := range res.Events {
			logger.Debug("run event", "tick", i+1, "event", ev)
		}
		if res.State.Finished() {
			break
		}
	}

	var stats rc.Stats
	if w := game.World(); w != nil {
		stats = w.Stats()
	}
	return game.RunSummary(), stats
}

// saveRun records a headless run and its score.
func saveRun(gameID string, sum registry.RunSummary, logger *log.Logger) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("could not open scores database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RecordFromSummary(gameID, sum))
	if err != nil {
		logger.Error("could not save run", "error", err)
		return
	}
	if sum.Score > 0 {
		if _, err := store.SaveScore(gameID, sum.Score); err != nil {
			logger.Error("could not save score", "error", err)
		}
	}
	logger.Info("run saved", "id", id, "db", flagDBPath)
}
