package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [size]",
	Short: "Play a grid",
	Long: `Start a run on the given grid, e.g. 4x4 or 5x6.
Without a size the board from the rules config is used (4x4 by default).

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  P                 - Pause
  R                 - Restart
  Esc/B             - Pause, press again to leave
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play 6x6
  t2048 play 3x5 --seed 7
  t2048 play --config ./rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	var size string
	if len(args) > 0 {
		size = args[0]
	}

	cfg, err := loadConfig(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogFile()
	defer closeLog()

	store := openStore(logger)
	game := t2048.NewWithConfig(cfg)
	logger.Info("starting run", "game", game.ID(), "seed", flagSeed)

	_, runErr := tui.Run(game, store, runtimeConfig(), tui.WithLogger(logger))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
