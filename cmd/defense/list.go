package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows the registered boards and the layouts defined in the loaded config.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return nil
	}

	fmt.Println("Available boards:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	cfg, err := config.LoadDefense(flagConfig)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Layouts in config:")
	for _, name := range config.LayoutNames(cfg) {
		l := cfg.Layouts[name]
		fmt.Printf("  %-10s %dx%d, %d waves\n", name, l.Board.Width, l.Board.Height, l.MaxWaves)
	}

	fmt.Println()
	fmt.Println("Run 'defense play <id>' to play a board.")
	return nil
}
