// runner is an endless runner for the terminal.
//
// Usage:
//
//	runner list              - List game modes
//	runner play [mode]       - Play a mode (default: runner)
//	runner menu              - Pick modes interactively
//	runner sim [mode]        - Run headless with the autopilot
//	runner watch [mode]      - Stream an autopilot run over websocket
//	runner serve             - Start SSH server for remote play
//	runner scores [mode]     - Show high scores
//	runner runs [mode]       - Show recorded runs
//	runner config ...        - Print, describe or check the config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/runner.db)
//	--config <path>       - Custom runner config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--level <n>           - Level new runs start at
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Log file, interactive commands log nowhere without it
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Runner - an endless runner in your terminal",
	Long: `Runner streams procedurally generated platforms past you: jump the gaps,
pits and blocks, slide under the bars and keep your lives for as long as
you can.

Two modes are available:
  runner          - Levels of growing length and speed
  runner_endless  - No finish line

Examples:
  runner play
  runner play runner_endless --difficulty hard
  runner sim --ticks 6000 --seed 42 --save
  runner watch --addr :8080
  runner serve --ssh :2222
  runner config default > my-runner.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		runner.SetConfigPath(flagConfig)
		runner.SetDifficultyPreset(flagDifficulty)
		runner.SetStartLevel(flagLevel)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/runner.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.IntVar(&flagLevel, "level", 0, "Level new runs start at (0 = config level)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
}
