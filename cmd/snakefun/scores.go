package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-fun/internal/registry"
	"github.com/vovakirdan/snake-fun/internal/storage"
)

var flagReset bool

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show the best runs of a variant",
	Long: `Display the top 10 runs and overall stats for the specified variant.

Examples:
  snakefun scores snake
  snakefun scores snake_classic
  snakefun scores snake --reset`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the run history of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	logger := newLogger(cmd.ErrOrStderr())

	if !registry.Exists(gameID) {
		return unknownVariant(gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagReset {
		if err := store.ClearRuns(gameID); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		logger.Info("run history cleared", "game", gameID)
		return nil
	}

	runs, err := store.TopRuns(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'snakefun play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %s\n", "Rank", "Score", "Length", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %s\n", "----", "-----", "------", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-8d  %-6d  %s\n", i+1, r.Score, r.Length, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		logger.Warn("cannot compute stats", "err", err)
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Runs: %d  Best: %d  Average: %.1f  Longest snake: %d\n",
		stats.Runs, stats.HighScore, stats.AvgScore, stats.LongestLen)
	return nil
}
