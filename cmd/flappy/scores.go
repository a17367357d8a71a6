package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores and overall statistics.

Examples:
  flappy scores
  flappy scores --limit 25
  flappy scores --limit 0    # every stored score
  flappy scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 shows all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all stored scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if flagScoresClear {
		if err := store.ClearScores(ctx, flappy.GameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "db", flagDBPath)
		fmt.Println("All scores cleared.")
		return nil
	}

	scores, err := loadScores(ctx, store, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "----", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-24s  %-8d  %s\n", i+1, entry.PlayerName, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(ctx, flappy.GameID)
	if err != nil {
		logger.Warn("cannot read stats", "error", err)
		return nil
	}

	fmt.Println()
	fmt.Printf("Rounds: %d  |  Players: %d  |  Best: %d  |  Average: %.1f\n",
		stats.GamesCount, stats.Players, stats.HighScore, stats.AvgScore)
	return nil
}

// loadScores returns the top limit scores, or every score when limit is 0.
func loadScores(ctx context.Context, store *storage.Store, limit int) ([]storage.ScoreEntry, error) {
	if limit == 0 {
		return store.AllScores(ctx, flappy.GameID)
	}
	return store.TopScores(ctx, flappy.GameID, limit)
}
