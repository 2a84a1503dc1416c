package defense

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

func newAutoSim(t *testing.T, seed int64) *core.Simulation {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	s, err := core.New(cfg, nil)
	if err != nil {
		t.Fatalf("core.New() error = %v", err)
	}
	return s
}

func TestRunAutoReachesAnOutcome(t *testing.T) {
	s := newAutoSim(t, 11)
	placed := 0
	outcome := RunAuto(s, 100*time.Millisecond, 20000, func(r core.StepResult) {
		for _, ev := range r.Events {
			if ev.Kind == core.EventTowerPlaced {
				placed++
			}
		}
	})

	if outcome == core.OutcomePlaying {
		t.Fatalf("RunAuto() = %s after %d frames", outcome, s.Frame())
	}
	if placed == 0 {
		t.Error("autoplayer never built a tower")
	}
	if !s.Started() {
		t.Error("RunAuto() did not start the game")
	}
}

func TestRunAutoIsDeterministic(t *testing.T) {
	run := func() (core.Outcome, Snapshot) {
		s := newAutoSim(t, 42)
		o := RunAuto(s, 50*time.Millisecond, 20000, nil)
		return o, TakeSnapshot(s)
	}

	o1, snap1 := run()
	o2, snap2 := run()
	if o1 != o2 || !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("Determinism failed: %s %+v vs %s %+v", o1, snap1, o2, snap2)
	}
}

func TestRunAutoFrameLimit(t *testing.T) {
	s := newAutoSim(t, 1)
	if got := RunAuto(s, 100*time.Millisecond, 5, nil); got != core.OutcomePlaying {
		t.Errorf("RunAuto() = %s, expected playing", got)
	}
	if s.Frame() != 5 {
		t.Errorf("Frame() = %d, expected 5", s.Frame())
	}
}

func TestTakeSnapshot(t *testing.T) {
	s := newAutoSim(t, 3)
	s.Start()
	RunAuto(s, 100*time.Millisecond, 15, nil)

	snap := TakeSnapshot(s)
	if len(snap.Path) != 2*s.Board().PathLen() {
		t.Errorf("len(Path) = %d, expected %d", len(snap.Path), 2*s.Board().PathLen())
	}
	if snap.Path[0] != 0 || snap.Path[1] != 0 {
		t.Errorf("path starts at (%d,%d), expected (0,0)", snap.Path[0], snap.Path[1])
	}
	if len(snap.Towers) != len(s.Towers()) || len(snap.Enemies) != s.Roster().Len() {
		t.Errorf("snapshot has %d towers %d enemies, expected %d/%d",
			len(snap.Towers), len(snap.Enemies), len(s.Towers()), s.Roster().Len())
	}
	if snap.Frame != 15 || snap.Wave != 1 || snap.Outcome != "playing" {
		t.Errorf("snapshot = frame %d wave %d outcome %s", snap.Frame, snap.Wave, snap.Outcome)
	}
}
