package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var (
	flagSimLayout   string
	flagSimFrames   int
	flagSimStep     time.Duration
	flagSimSave     bool
	flagSimSnapshot string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play a game headlessly with the autoplayer",
	Long: `Run a whole game without a terminal UI. The autoplayer builds and
upgrades towers and sends waves; the simulation advances by a fixed step.
Events are logged, and the final state can be dumped as YAML.

Runs with the same seed, config and step are identical.

Examples:
  defense sim --seed 42
  defense sim --layout wide --difficulty hard --log-level debug
  defense sim --seed 7 --snapshot - > final.yaml
  defense sim --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimLayout, "layout", "classic", "Board layout from the config")
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 100000, "Stop after this many frames (0 = no limit)")
	simCmd.Flags().DurationVar(&flagSimStep, "step", 100*time.Millisecond, "Simulated time per frame")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
	simCmd.Flags().StringVar(&flagSimSnapshot, "snapshot", "", "Write the final state as YAML to this file (- for stdout)")
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagSimStep <= 0 {
		return fmt.Errorf("--step must be positive, got %s", flagSimStep)
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	sim, err := defense.NewSimulation(flagSimLayout, preset, seed, logger)
	if err != nil {
		return err
	}
	logger.Info("simulation ready", "layout", flagSimLayout, "seed", seed, "path", sim.Board().PathLen(), "waves", sim.Director().MaxWaves())

	started := time.Now()
	kills := 0
	outcome := defense.RunAuto(sim, flagSimStep, flagSimFrames, func(r core.StepResult) {
		for _, ev := range r.Events {
			switch ev.Kind {
			case core.EventWaveStarted:
				logger.Info("wave started", "wave", ev.Wave, "tick", ev.Tick, "money", sim.Progress().Money())
			case core.EventEnemyArrived:
				logger.Warn("enemy reached the goal", "wave", ev.Wave, "lives", sim.Progress().Lives())
			case core.EventEnemyKilled:
				kills++
				logger.Debug("enemy killed", "wave", ev.Wave, "tick", ev.Tick)
			case core.EventTowerPlaced, core.EventTowerUpgraded:
				logger.Debug(ev.Kind.String(), "tower", ev.Tower, "cost", ev.Amount, "at", ev.Coord)
			case core.EventPathAnomaly:
				logger.Error("path anomaly", "detail", ev.Detail)
			}
		}
	})

	p := sim.Progress()
	logger.Info("simulation finished",
		"outcome", outcome,
		"wave", sim.Director().Wave(),
		"frames", sim.Frame(),
		"kills", kills,
		"lives", p.Lives(),
		"money", p.Money(),
		"score", p.Score(),
		"elapsed", time.Since(started).Round(time.Millisecond),
	)

	if flagSimSave {
		if err := saveSimRun(sim, outcome, seed); err != nil {
			return err
		}
	}

	if flagSimSnapshot != "" {
		return writeSnapshot(defense.TakeSnapshot(sim), flagSimSnapshot)
	}
	return nil
}

// saveSimRun records the run under the board the layout belongs to.
func saveSimRun(sim *core.Simulation, outcome core.Outcome, seed int64) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	gameID := defense.New(flagSimLayout).ID()
	result := outcome.String()
	if outcome == core.OutcomePlaying {
		result = "quit"
	}
	p := sim.Progress()
	id, err := store.SaveRun(storage.RunRecord{
		GameID:    gameID,
		Layout:    flagSimLayout,
		Outcome:   result,
		Wave:      sim.Director().Wave(),
		Score:     p.Score(),
		LivesLeft: p.Lives(),
		MoneyLeft: p.Money(),
		Seed:      seed,
	})
	if err != nil {
		return err
	}
	if p.Score() > 0 {
		if _, err := store.SaveScore(gameID, p.Score()); err != nil {
			return err
		}
	}
	logger.Info("run saved", "id", id, "game", gameID)
	return nil
}

func writeSnapshot(snap defense.Snapshot, path string) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
