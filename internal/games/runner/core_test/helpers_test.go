package core_test

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/games/runner/core"
)

const tickDT = 1.0 / 60.0

// testConfig returns a small, fully specified config for deterministic tests.
func testConfig() core.Config {
	return core.Config{
		Templates: []core.SegmentTemplate{
			{
				Name:          "short",
				Width:         4,
				Weight:        1,
				Kind:          core.PlatformNormal,
				RefreshOffset: core.V(0, 1),
				AttachPoints:  []core.Vec2{core.V(0, 0)},
			},
			{
				Name:          "long",
				Width:         8,
				Weight:        1,
				Kind:          core.PlatformNormal,
				RefreshOffset: core.V(-2, 1),
				AttachPoints:  []core.Vec2{core.V(-2, 0), core.V(2, 0)},
			},
		},
		PoolSize: 32,
		Obstacles: []core.ObstacleSpec{
			{Kind: core.ObstacleJump, MinHeight: 1, MaxHeight: 2},
			{Kind: core.ObstacleSlide, MinHeight: 1, MaxHeight: 1},
		},
		ObstacleRate:           0.3,
		Speed:                  10,
		SpawnTriggerX:          60,
		DespawnX:               -10,
		PrepareCount:           3,
		PrepareY:               0,
		YMin:                   1,
		YMax:                   4,
		PitChance:              0.3,
		PitWidth:               5,
		MinSegmentsBetweenPits: 2,
		Life:                   3,
		PlayerStart:            core.V(8, 1),
		SlideDuration:          0.5,
		RecoveryDuration:       1,
		OffScreenMargin:        1,
	}
}

// onScreen is a viewport that never reports the player off-screen.
var onScreen = core.ViewportFunc(func(core.Vec2) core.ViewportPoint {
	return core.ViewportPoint{X: 0.5, Y: 0.5, Z: 1}
})

func newWorld(t *testing.T, cfg core.Config, opts ...core.Option) *core.World {
	t.Helper()
	w, err := core.NewWorld(cfg, opts...)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	return w
}

// activeSegments returns the queued segments from head to tail.
func activeSegments(w *core.World) []*core.Segment {
	var out []*core.Segment
	w.Queue().ForEach(func(s *core.Segment) {
		out = append(out, s)
	})
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
