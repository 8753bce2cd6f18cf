// Package config provides YAML-based runner configuration loading,
// validation, level scaling and difficulty management.
package config

// RunnerConfig contains all configuration for the endless runner.
// Distances are world units (one terminal cell), times are seconds.
type RunnerConfig struct {
	Pool       PoolConfig       `yaml:"pool" json:"pool"`
	Templates  []TemplateConfig `yaml:"templates" json:"templates" jsonschema:"minItems=1"`
	Obstacles  ObstacleConfig   `yaml:"obstacles" json:"obstacles"`
	Spawn      SpawnConfig      `yaml:"spawn" json:"spawn"`
	Physics    RunnerPhysics    `yaml:"physics" json:"physics"`
	Player     RunnerPlayer     `yaml:"player" json:"player"`
	Camera     CameraConfig     `yaml:"camera" json:"camera"`
	Level      LevelConfig      `yaml:"level" json:"level"`
	Difficulty DifficultyConfig `yaml:"difficulty" json:"difficulty"`
}

// PoolConfig sizes the segment pool.
type PoolConfig struct {
	Size int `yaml:"size" json:"size" jsonschema:"minimum=1"`
}

// Point is a 2D offset in world units.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// TemplateConfig describes one segment variant.
type TemplateConfig struct {
	Name          string  `yaml:"name" json:"name"`
	Width         float64 `yaml:"width" json:"width"`
	Weight        float64 `yaml:"weight" json:"weight" jsonschema:"minimum=0"`
	Kind          string  `yaml:"kind" json:"kind" jsonschema:"enum=normal,enum=pit"`
	RefreshOffset Point   `yaml:"refresh_offset" json:"refresh_offset"`
	AttachPoints  []Point `yaml:"attach_points" json:"attach_points,omitempty"`
}

// ObstacleConfig controls obstacle attachment.
type ObstacleConfig struct {
	Rate           float64        `yaml:"rate" json:"rate" jsonschema:"minimum=0,maximum=1"`
	Width          float64        `yaml:"width" json:"width"`
	SlideClearance float64        `yaml:"slide_clearance" json:"slide_clearance"`
	Set            []ObstacleSpec `yaml:"set" json:"set"`
}

// ObstacleSpec is one entry of the obstacle set.
type ObstacleSpec struct {
	Kind      string  `yaml:"kind" json:"kind" jsonschema:"enum=jump,enum=slide,enum=pit"`
	MinHeight float64 `yaml:"min_height" json:"min_height"`
	MaxHeight float64 `yaml:"max_height" json:"max_height"`
}

// SpawnConfig drives the spawn planner.
type SpawnConfig struct {
	TriggerAhead           float64 `yaml:"trigger_ahead" json:"trigger_ahead"`
	DespawnX               float64 `yaml:"despawn_x" json:"despawn_x"`
	OffsetX                float64 `yaml:"offset_x" json:"offset_x"`
	StartFrontier          float64 `yaml:"start_frontier" json:"start_frontier"`
	PrepareCount           int     `yaml:"prepare_count" json:"prepare_count" jsonschema:"minimum=0"`
	PrepareY               float64 `yaml:"prepare_y" json:"prepare_y"`
	YMin                   float64 `yaml:"y_min" json:"y_min"`
	YMax                   float64 `yaml:"y_max" json:"y_max"`
	HeightOffset           float64 `yaml:"height_offset" json:"height_offset"`
	PitChance              float64 `yaml:"pit_chance" json:"pit_chance" jsonschema:"minimum=0,maximum=1"`
	PitWidth               float64 `yaml:"pit_width" json:"pit_width"`
	MinSegmentsBetweenPits int     `yaml:"min_segments_between_pits" json:"min_segments_between_pits" jsonschema:"minimum=0"`
}

// RunnerPhysics defines the host physics.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity" json:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse" json:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed" json:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed" json:"base_speed"`
	HomeDrift    float64 `yaml:"home_drift" json:"home_drift"`
}

// RunnerPlayer defines the player body and timers.
type RunnerPlayer struct {
	Life             int     `yaml:"life" json:"life" jsonschema:"minimum=1"`
	X                float64 `yaml:"x" json:"x"`
	Y                float64 `yaml:"y" json:"y"`
	Width            float64 `yaml:"width" json:"width"`
	Height           float64 `yaml:"height" json:"height"`
	SlideHeight      float64 `yaml:"slide_height" json:"slide_height"`
	SlideDuration    float64 `yaml:"slide_duration" json:"slide_duration"`
	RecoveryDuration float64 `yaml:"recovery_duration" json:"recovery_duration"`
}

// CameraConfig places the view over the world.
type CameraConfig struct {
	GroundOffset    int     `yaml:"ground_offset" json:"ground_offset"` // Rows between baseline and screen bottom
	OffScreenMargin float64 `yaml:"offscreen_margin" json:"offscreen_margin"`
}

// LevelConfig defines level length and per-level scaling.
type LevelConfig struct {
	Number         int     `yaml:"number" json:"number"`     // 0 means endless
	Distance       float64 `yaml:"distance" json:"distance"` // Level 1 length
	SpeedGrowth    float64 `yaml:"speed_growth" json:"speed_growth"`
	DistanceGrowth float64 `yaml:"distance_growth" json:"distance_growth"`
	ObstacleGrowth float64 `yaml:"obstacle_growth" json:"obstacle_growth"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" json:"enabled"`
	InitialLevel float64           `yaml:"initial_level" json:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" json:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" json:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type" json:"type" jsonschema:"enum=distance,enum=time,enum=none"`
	MaxAt float64 `yaml:"max_at" json:"max_at"` // Distance or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" json:"speed_multiplier"` // Added to speed at max difficulty
	PitChanceBonus  float64 `yaml:"pit_chance_bonus" json:"pit_chance_bonus"` // Added to pit chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
