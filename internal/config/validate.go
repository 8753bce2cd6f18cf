package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid runner config")

// Validate checks every tunable and reports all problems at once.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Pool.Size > 0, "pool.size must be positive, got %d", c.Pool.Size)
	check(len(c.Templates) > 0, "templates must not be empty")
	for i, t := range c.Templates {
		check(t.Width > 0, "templates[%d] %q: width must be positive", i, t.Name)
		check(t.Weight >= 0, "templates[%d] %q: weight must not be negative", i, t.Name)
		check(t.Kind == "normal" || t.Kind == "pit" || t.Kind == "",
			"templates[%d] %q: unknown kind %q", i, t.Name, t.Kind)
	}

	check(inUnit(c.Obstacles.Rate), "obstacles.rate must be in [0,1], got %g", c.Obstacles.Rate)
	check(c.Obstacles.Width > 0 || len(c.Obstacles.Set) == 0, "obstacles.width must be positive")
	for i, o := range c.Obstacles.Set {
		check(o.Kind == "jump" || o.Kind == "slide" || o.Kind == "pit",
			"obstacles.set[%d]: unknown kind %q", i, o.Kind)
		check(o.MinHeight >= 0 && o.MaxHeight >= o.MinHeight,
			"obstacles.set[%d]: heights must satisfy 0 <= min <= max", i)
	}

	s := c.Spawn
	check(s.TriggerAhead >= 0, "spawn.trigger_ahead must not be negative")
	check(s.PrepareCount >= 0, "spawn.prepare_count must not be negative")
	check(s.YMax >= s.YMin, "spawn.y_max %g below y_min %g", s.YMax, s.YMin)
	check(inUnit(s.PitChance), "spawn.pit_chance must be in [0,1], got %g", s.PitChance)
	check(s.PitWidth > 0 || s.PitChance == 0, "spawn.pit_width must be positive when pits are enabled")
	check(s.MinSegmentsBetweenPits >= 0, "spawn.min_segments_between_pits must not be negative")

	p := c.Physics
	check(p.Gravity > 0, "physics.gravity must be positive")
	check(p.JumpImpulse > 0, "physics.jump_impulse must be positive")
	check(p.MaxFallSpeed > 0, "physics.max_fall_speed must be positive")
	check(p.BaseSpeed >= 0, "physics.base_speed must not be negative")
	check(p.HomeDrift >= 0, "physics.home_drift must not be negative")

	pl := c.Player
	check(pl.Life > 0, "player.life must be positive, got %d", pl.Life)
	check(pl.Width > 0 && pl.Height > 0, "player size must be positive")
	check(pl.SlideHeight > 0 && pl.SlideHeight <= pl.Height, "player.slide_height must be in (0, height]")
	check(pl.SlideDuration >= 0, "player.slide_duration must not be negative")
	check(pl.RecoveryDuration >= 0, "player.recovery_duration must not be negative")

	check(c.Camera.GroundOffset >= 0, "camera.ground_offset must not be negative")
	check(c.Camera.OffScreenMargin >= 0, "camera.offscreen_margin must not be negative")

	check(c.Level.Distance >= 0, "level.distance must not be negative")
	check(c.Level.SpeedGrowth >= 0, "level.speed_growth must not be negative")
	check(c.Level.DistanceGrowth >= 0, "level.distance_growth must not be negative")
	check(c.Level.ObstacleGrowth >= 0, "level.obstacle_growth must not be negative")

	switch c.Difficulty.Progression.Type {
	case "distance", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type: unknown type %q", c.Difficulty.Progression.Type))
	}
	check(inUnit(c.Difficulty.InitialLevel), "difficulty.initial_level must be in [0,1]")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
