package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagRunsLimit   int
	flagRunsLongest bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [mode]",
	Short: "Show recorded runs for a mode",
	Long: `List the recorded runs of a mode, newest first, "runner" when omitted.

Examples:
  runner runs
  runner runs runner_endless --longest
  runner runs --limit 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsLongest, "longest", false, "Order by distance instead of date")
}

func runRuns(_ *cobra.Command, args []string) {
	gameID := modeArg(args)
	title, store := openModeStore(gameID)
	defer store.Close()

	var (
		runs []storage.RunRecord
		err  error
	)
	if flagRunsLongest {
		runs, err = store.LongestRuns(gameID, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(gameID, flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-9s  %-8s  %-4s  %-5s  %-7s  %s\n", "Level", "Distance", "Score", "Life", "Done", "Recov.", "Date")
	fmt.Printf("  %-5s  %-9s  %-8s  %-4s  %-5s  %-7s  %s\n", "-----", "--------", "-----", "----", "----", "------", "----")
	for _, r := range runs {
		done := "no"
		if r.Completed {
			done = "yes"
		}
		fmt.Printf("  %-5d  %-9.0f  %-8d  %-4d  %-5s  %-7d  %s\n",
			r.Level, r.Distance, r.Score, r.Life, done, r.Recoveries, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.BestLevel(gameID); err == nil && best > 0 {
		fmt.Println()
		fmt.Printf("Best completed level: %d\n", best)
	}
}
