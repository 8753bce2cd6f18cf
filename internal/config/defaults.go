package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultRunnerYAML))
	copy(out, defaultRunnerYAML)
	return out
}

// DefaultRunnerConfig returns the hard-coded runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file
// cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Pool: PoolConfig{Size: 48},
		Templates: []TemplateConfig{
			{
				Name:          "short",
				Width:         8,
				Weight:        3,
				Kind:          "normal",
				RefreshOffset: Point{X: 0, Y: 1},
				AttachPoints:  []Point{{X: 0, Y: 0}},
			},
			{
				Name:          "long",
				Width:         14,
				Weight:        2,
				Kind:          "normal",
				RefreshOffset: Point{X: -3, Y: 1},
				AttachPoints:  []Point{{X: -3, Y: 0}, {X: 3, Y: 0}},
			},
			{
				Name:          "spikes",
				Width:         6,
				Weight:        0.5,
				Kind:          "pit",
				RefreshOffset: Point{X: 0, Y: 1},
			},
		},
		Obstacles: ObstacleConfig{
			Rate:           0.35,
			Width:          2,
			SlideClearance: 1.5,
			Set: []ObstacleSpec{
				{Kind: "jump", MinHeight: 1, MaxHeight: 2},
				{Kind: "slide", MinHeight: 2, MaxHeight: 3},
				{Kind: "pit", MinHeight: 0.5, MaxHeight: 0.5},
			},
		},
		Spawn: SpawnConfig{
			TriggerAhead:           20,
			DespawnX:               -10,
			OffsetX:                0,
			StartFrontier:          -10,
			PrepareCount:           4,
			PrepareY:               0,
			YMin:                   0,
			YMax:                   3,
			HeightOffset:           0,
			PitChance:              0.2,
			PitWidth:               6,
			MinSegmentsBetweenPits: 3,
		},
		Physics: RunnerPhysics{
			Gravity:      60,
			JumpImpulse:  24,
			MaxFallSpeed: 40,
			BaseSpeed:    20,
			HomeDrift:    4,
		},
		Player: RunnerPlayer{
			Life:             3,
			X:                12,
			Y:                1,
			Width:            1,
			Height:           2,
			SlideHeight:      1,
			SlideDuration:    0.6,
			RecoveryDuration: 1.0,
		},
		Camera: CameraConfig{
			GroundOffset:    4,
			OffScreenMargin: 0.1,
		},
		Level: LevelConfig{
			Number:         1,
			Distance:       2000,
			SpeedGrowth:    1.1,
			DistanceGrowth: 1.15,
			ObstacleGrowth: 0.1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				PitChanceBonus:  0.15,
			},
		},
	}
}
