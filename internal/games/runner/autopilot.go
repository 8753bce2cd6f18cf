package runner

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	rc "github.com/vovakirdan/tui-runner/internal/games/runner/core"
)

// Tolerances for reading the track from a snapshot.
const (
	gapTolerance  = 0.25 // Horizontal space between segments that counts as a gap
	stepTolerance = 0.25 // Rise between segments that needs a jump
)

// Autopilot picks inputs for headless runs. It reads the snapshot ahead of
// the player: gaps, pits, jump obstacles and steps up are jumped, slide
// bars are slid under.
type Autopilot struct {
	Lookahead float64 // Distance ahead of the player that triggers an action
}

// DefaultAutopilot reacts a few cells before a hazard.
func DefaultAutopilot() Autopilot {
	return Autopilot{Lookahead: 4}
}

// Input returns the input for the next tick.
func (a Autopilot) Input(snap rc.Snapshot) core.InputFrame {
	if snap.State == rc.StateFrozen.String() {
		return core.NewInputFrame()
	}

	px := snap.Player.X
	ahead := func(x float64) bool {
		d := x - px
		return d > 0 && d <= a.Lookahead
	}

	var prevRight, prevTop float64
	havePrev := false
	for _, s := range snap.Segments {
		left, right := s.X-s.Width/2, s.X+s.Width/2
		if right >= px {
			if o := s.Obstacle; o != nil && ahead(o.X) {
				if o.Kind == rc.ObstacleSlide.String() {
					return core.InputOf(core.ActionSlide)
				}
				return core.InputOf(core.ActionJump)
			}
			if ahead(left) {
				if s.Kind == rc.PlatformPit.String() {
					return core.InputOf(core.ActionJump)
				}
				if havePrev && (left-prevRight > gapTolerance || s.Y-prevTop > stepTolerance) {
					return core.InputOf(core.ActionJump)
				}
			}
		}
		prevRight, prevTop, havePrev = right, s.Y, true
	}
	return core.NewInputFrame()
}

// StepAuto advances g one tick with autopilot input.
func (g *Game) StepAuto(a Autopilot) core.StepResult {
	if g.world == nil {
		return g.Step(core.NewInputFrame())
	}
	return g.Step(a.Input(g.world.Snapshot()))
}
