package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List grid sizes",
	Long:  `Shows the grid sizes offered in the menu with their best scores.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No grids available.")
		return
	}

	var best map[string]int
	if store, err := storage.Open(flagDBPath); err == nil {
		best, _ = store.AllBestScores()
		store.Close()
	}

	fmt.Println("Available grids:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Best")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "----")

	for _, g := range games {
		bestStr := "-"
		if b := best[storage.GridKey(g.Rows, g.Cols)]; b > 0 {
			bestStr = fmt.Sprintf("%d", b)
		}
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, g.ID, g.Title, bestStr)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <size>' to play, e.g. 't2048 play 5x5'.")
}
