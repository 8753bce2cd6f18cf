package config

import "math"

// ApplyLevel scales the config for the given level number.
// Level 1 is the baseline; each further level speeds the scroll up,
// lengthens the level and raises the obstacle rate. Level 0 or below
// selects endless mode, which has no level distance.
func ApplyLevel(cfg RunnerConfig, level int) RunnerConfig {
	cfg.Level.Number = level
	if level <= 0 {
		cfg.Level.Distance = 0
		return cfg
	}

	n := float64(level - 1)
	if cfg.Level.SpeedGrowth > 0 {
		cfg.Physics.BaseSpeed *= math.Pow(cfg.Level.SpeedGrowth, n)
	}
	if cfg.Level.DistanceGrowth > 0 {
		cfg.Level.Distance *= math.Pow(cfg.Level.DistanceGrowth, n)
	}
	cfg.Obstacles.Rate = clampF(cfg.Obstacles.Rate*(1+cfg.Level.ObstacleGrowth*n), 0, 1)
	return cfg
}
