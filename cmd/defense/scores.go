package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/registry"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var (
	flagRuns  bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <board>",
	Short: "Show high scores and run history for a board",
	Long: `Display the top 10 high scores and run statistics for the specified board.

Examples:
  defense scores defense
  defense scores defense_wide --runs
  defense scores defense --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "List recent runs instead of high scores")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs for the board")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q, run 'defense list' to see available boards", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("cleared history", "game", gameID)
		fmt.Printf("Cleared scores and runs for %s\n", title)
		return nil
	}

	stats, err := store.RunStats(gameID)
	if err != nil {
		return err
	}

	if flagRuns {
		return printRuns(store, gameID, title)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'defense play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	if stats.Runs > 0 {
		fmt.Printf("Runs: %d  Wins: %d  Losses: %d  Best wave: %d\n", stats.Runs, stats.Wins, stats.Losses, stats.BestWave)
	}
	return nil
}

func printRuns(store *storage.Store, gameID, title string) error {
	runs, err := store.RecentRuns(gameID, 20)
	if err != nil {
		return err
	}

	fmt.Printf("Recent Runs - %s\n", title)
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-7s  %-4s  %-6s  %-5s  %-5s  %-20s  %s\n", "Result", "Wave", "Score", "Lives", "Money", "Seed", "Date")
	for _, r := range runs {
		fmt.Printf("  %-7s  %-4d  %-6d  %-5d  %-5d  %-20d  %s\n",
			r.Outcome, r.Wave, r.Score, r.LivesLeft, r.MoneyLeft, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
