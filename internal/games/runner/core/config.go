package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps every validation failure of Config.
var ErrInvalidConfig = errors.New("core: invalid config")

// Config holds every tunable of the simulation. Distances are world units,
// durations are seconds, speeds are world units per second.
type Config struct {
	// Pool
	Templates []SegmentTemplate
	PoolSize  int

	// Obstacles
	Obstacles    []ObstacleSpec
	ObstacleRate float64 // Bernoulli chance per steady-phase segment

	// Scrolling
	Speed         float64
	SpawnTriggerX float64 // Fill until the frontier reaches this x
	DespawnX      float64 // Segments left of this x are recycled
	SpawnOffsetX  float64 // Shift applied to every spawn position
	StartFrontier float64

	// Placement
	PrepareCount int     // Segments in the flat starting runway (flip when exceeded)
	PrepareY     float64 // Runway height
	YMin         float64
	YMax         float64
	HeightOffset float64

	// Pits
	PitChance              float64
	PitWidth               float64
	MinSegmentsBetweenPits int

	// Player
	Life             int
	PlayerStart      Vec2
	SlideDuration    float64
	RecoveryDuration float64
	OffScreenMargin  float64

	// Level
	LevelDistance float64 // 0 means endless
}

// Validate checks the config for values the simulation cannot run with.
// A config without templates is valid: the world degrades to doing nothing.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.PoolSize > 0, "pool size must be positive, got %d", c.PoolSize)
	for i, t := range c.Templates {
		check(t.Width > 0, "template %d (%s): width must be positive, got %g", i, t.Name, t.Width)
		check(t.Weight >= 0, "template %d (%s): weight must not be negative", i, t.Name)
	}
	for i, o := range c.Obstacles {
		check(o.MaxHeight >= o.MinHeight, "obstacle %d: max height below min height", i)
	}
	check(c.ObstacleRate >= 0 && c.ObstacleRate <= 1, "obstacle rate must be in [0,1], got %g", c.ObstacleRate)
	check(c.PitChance >= 0 && c.PitChance <= 1, "pit chance must be in [0,1], got %g", c.PitChance)
	check(c.PitWidth > 0 || c.PitChance == 0, "pit width must be positive when pits are enabled")
	check(c.MinSegmentsBetweenPits >= 0, "min segments between pits must not be negative")
	check(c.PrepareCount >= 0, "prepare count must not be negative")
	check(c.YMax >= c.YMin, "vertical band max %g below min %g", c.YMax, c.YMin)
	check(c.Speed >= 0, "speed must not be negative")
	check(c.DespawnX < c.SpawnTriggerX, "despawn x %g must be left of spawn trigger %g", c.DespawnX, c.SpawnTriggerX)
	check(c.Life > 0, "life must be positive, got %d", c.Life)
	check(c.SlideDuration >= 0, "slide duration must not be negative")
	check(c.RecoveryDuration >= 0, "recovery duration must not be negative")
	check(c.OffScreenMargin >= 0, "off-screen margin must not be negative")
	check(c.LevelDistance >= 0, "level distance must not be negative")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
