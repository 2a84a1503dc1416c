package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/platform/tui"
	"github.com/vovakirdan/tui-defense/internal/registry"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a board picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a board, left/right to pick a difficulty,
and Enter to play. After a game ends, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select board
  Tab             - Scoreboard
  Q               - Quit

Examples:
  defense menu
  defense menu --fps 60
  defense menu --db ./defense.db`,
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE:        runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := runtimeConfig()
	difficulty := flagDifficulty

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, difficulty)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config
		difficulty = menuResult.Difficulty

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "err", err)
			continue
		}
		tui.ApplyDifficulty(game, difficulty)

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("starting game", "game", menuResult.GameID, "seed", cfg.Seed, "difficulty", difficulty)
		backToMenu, err := tui.Run(game, store, cfg)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}
