package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	rc "github.com/vovakirdan/tui-runner/internal/games/runner/core"
)

// layout is the screen geometry the simulation is built for.
type layout struct {
	width        float64 // Visible world width (columns)
	height       float64 // Visible world height (rows below the HUD)
	groundOffset float64 // Rows between the baseline and the bottom edge
}

func newLayout(screenW, screenH, groundOffset int) layout {
	h := screenH - 1 // Top row is the HUD
	if h < 1 {
		h = 1
	}
	off := math.Min(float64(groundOffset), float64(h-1))
	if off < 0 {
		off = 0
	}
	return layout{
		width:        float64(max(screenW, 1)),
		height:       float64(h),
		groundOffset: off,
	}
}

// camera returns the orthographic view over the world. World y=0 sits
// groundOffset rows above the bottom edge.
func (l layout) camera() rc.OrthoCamera {
	return rc.OrthoCamera{
		Origin: rc.V(0, -l.groundOffset),
		Width:  l.width,
		Height: l.height,
	}
}

// toScreen converts a world point to the screen cell containing it.
// Row 0 is the HUD, so the view covers rows 1 through height.
func (l layout) toScreen(p rc.Vec2) (int, int) {
	x := int(math.Floor(p.X))
	y := int(math.Ceil(l.height - l.groundOffset - p.Y))
	return x, y
}

// cells returns the inclusive cell range whose centers lie inside r.
// Boxes thinner than a cell still cover one row and one column.
func (l layout) cells(r core.RectF) (x0, x1, y0, y1 int) {
	x0 = int(math.Ceil(r.X - 0.5))
	x1 = int(math.Ceil(r.Right()-0.5)) - 1
	if x1 < x0 {
		x1 = x0
	}
	base := l.height - l.groundOffset + 0.5
	y0 = int(math.Floor(base-r.Top())) + 1
	y1 = int(math.Floor(base - r.Y))
	if y0 > y1 {
		y0 = y1
	}
	return x0, x1, y0, y1
}

// coreConfig maps the YAML runner config onto the simulation config.
// The spawn trigger and despawn thresholds are placed relative to the
// visible width so segments appear and vanish off-screen.
func coreConfig(cfg config.RunnerConfig, l layout) (rc.Config, error) {
	out := rc.Config{
		PoolSize:               cfg.Pool.Size,
		ObstacleRate:           cfg.Obstacles.Rate,
		Speed:                  cfg.Physics.BaseSpeed,
		SpawnTriggerX:          l.width + cfg.Spawn.TriggerAhead,
		DespawnX:               cfg.Spawn.DespawnX,
		SpawnOffsetX:           cfg.Spawn.OffsetX,
		StartFrontier:          cfg.Spawn.StartFrontier,
		PrepareCount:           cfg.Spawn.PrepareCount,
		PrepareY:               cfg.Spawn.PrepareY,
		YMin:                   cfg.Spawn.YMin,
		YMax:                   cfg.Spawn.YMax,
		HeightOffset:           cfg.Spawn.HeightOffset,
		PitChance:              cfg.Spawn.PitChance,
		PitWidth:               cfg.Spawn.PitWidth,
		MinSegmentsBetweenPits: cfg.Spawn.MinSegmentsBetweenPits,
		Life:                   cfg.Player.Life,
		PlayerStart:            rc.V(cfg.Player.X, cfg.Player.Y),
		SlideDuration:          cfg.Player.SlideDuration,
		RecoveryDuration:       cfg.Player.RecoveryDuration,
		OffScreenMargin:        cfg.Camera.OffScreenMargin,
		LevelDistance:          cfg.Level.Distance,
	}

	for _, t := range cfg.Templates {
		kind, err := platformKind(t.Kind)
		if err != nil {
			return rc.Config{}, fmt.Errorf("runner: template %q: %w", t.Name, err)
		}
		tpl := rc.SegmentTemplate{
			Name:          t.Name,
			Width:         t.Width,
			Weight:        t.Weight,
			Kind:          kind,
			RefreshOffset: rc.V(t.RefreshOffset.X, t.RefreshOffset.Y),
		}
		for _, p := range t.AttachPoints {
			tpl.AttachPoints = append(tpl.AttachPoints, rc.V(p.X, p.Y))
		}
		out.Templates = append(out.Templates, tpl)
	}

	for _, o := range cfg.Obstacles.Set {
		kind, err := obstacleKind(o.Kind)
		if err != nil {
			return rc.Config{}, fmt.Errorf("runner: obstacle set: %w", err)
		}
		out.Obstacles = append(out.Obstacles, rc.ObstacleSpec{
			Kind:      kind,
			MinHeight: o.MinHeight,
			MaxHeight: o.MaxHeight,
		})
	}
	return out, nil
}

func platformKind(s string) (rc.PlatformKind, error) {
	switch s {
	case "", "normal":
		return rc.PlatformNormal, nil
	case "pit":
		return rc.PlatformPit, nil
	default:
		return rc.PlatformNone, fmt.Errorf("unknown platform kind %q", s)
	}
}

func obstacleKind(s string) (rc.ObstacleKind, error) {
	switch s {
	case "jump":
		return rc.ObstacleJump, nil
	case "slide":
		return rc.ObstacleSlide, nil
	case "pit":
		return rc.ObstaclePit, nil
	default:
		return 0, fmt.Errorf("unknown obstacle kind %q", s)
	}
}
