package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jaimp/internal/registry"
	"github.com/vovakirdan/jaimp/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs of a mode",
	Long: `Display the best runs (most chunks passed) of a mode, or the most
recent runs of every mode with --recent.

Examples:
  jaimp scores
  jaimp scores jaimp_rush --limit 20
  jaimp scores --recent
  jaimp scores jaimp --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs of all modes")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := defaultMode
	if len(args) == 1 {
		mode = args[0]
	}
	if !flagRecent && !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (run 'jaimp list' to see available modes)", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Printf("Run history of %s cleared.\n", mode)
		return nil

	case flagRecent:
		runs, err := store.RecentRuns(flagLimit)
		if err != nil {
			return err
		}
		fmt.Println("Recent runs")
		fmt.Println()
		printRuns(runs, true)
		return nil
	}

	runs, err := store.TopRuns(mode, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n", mode)
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'jaimp play %s' to set the first one!\n", mode)
		return nil
	}
	printRuns(runs, false)

	stats, err := store.Stats(mode)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Time played: %s\n",
		stats.Runs, stats.Best, stats.AvgChunks, stats.TotalTime.Round(time.Second))
	return nil
}

func printRuns(runs []storage.Run, withMode bool) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	if withMode {
		fmt.Printf("  %-10s  ", "Mode")
	} else {
		fmt.Printf("  %-4s  ", "Rank")
	}
	fmt.Printf("%-6s  %-8s  %-8s  %-20s  %s\n", "Chunks", "Time", "Cause", "Seed", "Date")

	for i, r := range runs {
		if withMode {
			fmt.Printf("  %-10s  ", r.Mode)
		} else {
			fmt.Printf("  %-4d  ", i+1)
		}
		fmt.Printf("%-6d  %-8s  %-8s  %-20d  %s\n",
			r.Chunks,
			r.Duration.Round(time.Second),
			r.Cause,
			r.Seed,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}
