package defense

import (
	"time"

	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

// Snapshot contains the observable simulation state for replay checks and dumps.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Frame   uint64 `yaml:"frame"`
	Tick    uint64 `yaml:"tick"`
	Wave    int    `yaml:"wave"`
	State   string `yaml:"state"`
	Outcome string `yaml:"outcome"`
	Lives   int    `yaml:"lives"`
	Money   int    `yaml:"money"`
	Score   int    `yaml:"score"`

	// Path as flattened x,y pairs from start to goal
	Path []int `yaml:"path,flow"`

	Towers  []TowerSnapshot `yaml:"towers"`
	Enemies []EnemySnapshot `yaml:"enemies"`
}

// TowerSnapshot is one tower in a Snapshot.
type TowerSnapshot struct {
	ID     int           `yaml:"id"`
	Kind   string        `yaml:"kind"`
	X      int           `yaml:"x"`
	Y      int           `yaml:"y"`
	Level  int           `yaml:"level"`
	Damage int           `yaml:"damage"`
	Timer  time.Duration `yaml:"timer"`
	Queue  int           `yaml:"queue"`
}

// EnemySnapshot is one enemy in a Snapshot.
type EnemySnapshot struct {
	Variant string  `yaml:"variant"`
	Wave    int     `yaml:"wave"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Health  int     `yaml:"health"`
	Target  int     `yaml:"target"`
}

// TakeSnapshot captures the current state of s.
func TakeSnapshot(s *core.Simulation) Snapshot {
	p := s.Progress()
	d := s.Director()
	snap := Snapshot{
		Frame:   s.Frame(),
		Tick:    s.Clock().Ticks(),
		Wave:    d.Wave(),
		State:   d.State().String(),
		Outcome: s.Outcome().String(),
		Lives:   p.Lives(),
		Money:   p.Money(),
		Score:   p.Score(),
	}

	path := s.Board().Path()
	snap.Path = make([]int, 0, len(path)*2)
	for _, c := range path {
		snap.Path = append(snap.Path, c.X, c.Y)
	}

	for _, t := range s.Towers() {
		snap.Towers = append(snap.Towers, TowerSnapshot{
			ID:     t.ID,
			Kind:   t.Kind.ID,
			X:      t.Coord.X,
			Y:      t.Coord.Y,
			Level:  t.Level(),
			Damage: t.Damage(),
			Timer:  t.Timer(),
			Queue:  len(t.Queue()),
		})
	}
	for _, e := range s.Enemies() {
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			Variant: e.Variant,
			Wave:    e.Wave,
			X:       e.Pos.X,
			Y:       e.Pos.Y,
			Health:  e.Health,
			Target:  e.Target(),
		})
	}
	return snap
}

// Snapshot returns the current game state, or an empty snapshot if Reset failed.
func (g *Game) Snapshot() Snapshot {
	if g.sim == nil {
		return Snapshot{}
	}
	return TakeSnapshot(g.sim)
}
