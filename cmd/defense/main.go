// defense is a terminal tower-defense game.
//
// Usage:
//
//	defense list              - List available boards
//	defense play [board]      - Play a board (default: defense)
//	defense menu              - Start menu to pick boards interactively
//	defense serve             - Start SSH server for remote play
//	defense scores <board>    - Show high scores and run history
//	defense sim [board]       - Play a board headlessly with the autoplayer
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/defense.db)
//	--config <path>       - Load a custom defense config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	logger  = log.New(io.Discard)
	logFile *os.File
)

// tuiAnnotation marks commands that own the terminal, so logs stay off stderr.
const tuiAnnotation = "tui"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "defense",
	Short: "Tower Defense - Hold the path in your terminal",
	Long: `Tower Defense is a terminal game: build towers beside a generated path
and stop every wave before it reaches the goal.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and run history
  sim      - Run a headless game with the autoplayer

Examples:
  defense list
  defense play
  defense play defense_wide --difficulty hard
  defense menu
  defense serve --ssh :2222
  defense sim --seed 42 --snapshot -`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/defense.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom defense config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup validates the shared flags and wires logging and game settings.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	// Interactive commands draw on the terminal, so they only log to a file
	if flagLogFile != "" || cmd.Annotations[tuiAnnotation] == "" {
		logger = log.NewWithOptions(out, log.Options{
			ReportTimestamp: true,
			Level:           level,
			Prefix:          "defense",
		})
	}

	defense.SetLogger(logger)
	defense.SetConfigPath(flagConfig)
	defense.SetDifficultyPreset(flagDifficulty)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}
