package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [size]",
	Short: "Show high scores for a grid",
	Long: `Display the top 10 runs for the given grid (the configured board by default).

Examples:
  t2048 scores
  t2048 scores 5x5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	var size string
	if len(args) > 0 {
		size = args[0]
	}

	cfg, err := loadConfig(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rows, cols := cfg.Board.Rows, cfg.Board.Cols
	gameID := t2048.VariantID(rows, cols)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - 2048 (%dx%d)\n", rows, cols)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %dx%d' to set the first high score!\n", rows, cols)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Moves", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "------", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Won {
			result = "won"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-6s  %s\n", i+1, entry.Score, entry.MaxTile, entry.Moves, result, dateStr)
	}

	fmt.Println()
	if best, err := store.BestScore(rows, cols); err == nil && best > 0 {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Runs: %d  Wins: %d  Best tile: %d\n", stats.GamesCount, stats.WinsCount, stats.MaxTile)
	}
}
