package defense

import (
	"time"

	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

// RunAuto plays s headlessly: before every frame the autoplayer spends what it
// can, then the simulation advances by dt. onStep, if set, sees each step.
// It stops at a terminal outcome or after maxFrames frames (0 means no limit).
func RunAuto(s *core.Simulation, dt time.Duration, maxFrames int, onStep func(core.StepResult)) core.Outcome {
	s.Start()
	for frame := 0; maxFrames <= 0 || frame < maxFrames; frame++ {
		for core.AutoPlay(s) {
		}
		res := s.Step(dt)
		if onStep != nil {
			onStep(res)
		}
		if res.Outcome != core.OutcomePlaying {
			return res.Outcome
		}
	}
	return s.Outcome()
}
