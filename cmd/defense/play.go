package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/platform/tui"
	"github.com/vovakirdan/tui-defense/internal/registry"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: defense).

Controls:
  Arrows/WASD  - Move the cursor
  Space        - Build the selected tower
  Tab/T        - Select the next tower kind
  U            - Upgrade the tower under the cursor
  X            - Demolish the tower under the cursor
  N            - Send the next wave
  G            - Generate a new path (before the first wave)
  P            - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More lives and money, gentle wave scaling
  normal - The config as written
  hard   - Fewer lives, costlier leaks, steep wave scaling
  fixed  - Waves never get tougher

Examples:
  defense play
  defense play defense_wide
  defense play --difficulty hard
  defense play --config ./my-defense.yaml`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE:        runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "defense"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q, run 'defense list' to see available boards", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	tui.ApplyDifficulty(game, flagDifficulty)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "seed", flagSeed, "difficulty", flagDifficulty)
	_, err = tui.Run(game, store, runtimeConfig())
	return err
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
