// Package runner implements the endless runner on top of the simulation
// core. It is the host engine of the core: it owns gravity and contact
// detection, feeds contacts and input to the world every tick and draws
// the stream of segments into the cell screen.
package runner

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	rc "github.com/vovakirdan/tui-runner/internal/games/runner/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

// Game IDs registered by this package.
const (
	IDLevels  = "runner"
	IDEndless = "runner_endless"
)

// Game implements the runner on a terminal screen.
type Game struct {
	id      string
	endless bool

	runtime    core.RuntimeConfig
	override   *config.RunnerConfig // Config set through UseConfig, bypasses loading
	preset     *config.DifficultyPreset
	cfg        config.RunnerConfig  // Config after preset and level scaling
	layout     layout
	world      *rc.World
	phys       *physics
	difficulty *config.DifficultyManager
	logger     *log.Logger

	level     int  // Current level, 0 in endless mode
	started   bool // Reset has run at least once
	carry     int  // Score banked from completed levels
	paused    bool
	gameOver  bool
	complete  bool
	tickCount int
	frame     int // Animation frame
}

// Package settings applied on every Reset, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       int // 0 uses level.number from the config
	pkgLogger        = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select
// the config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel sets the level new level-mode runs begin at.
// Zero or less uses the configured level number.
func SetStartLevel(level int) {
	startLevel = max(level, 0)
}

// SetLogger sets the logger games created afterwards write to.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	pkgLogger = l
}

// New creates a level-mode runner. A level completes at the level distance.
func New() *Game {
	return &Game{id: IDLevels}
}

// NewEndless creates a runner without a level length.
func NewEndless() *Game {
	return &Game{id: IDEndless, endless: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.endless {
		return "Endless Runner"
	}
	return "Runner"
}

// UseConfig makes Reset use cfg instead of loading one from disk.
// The difficulty preset still applies on top of it.
func (g *Game) UseConfig(cfg config.RunnerConfig) {
	g.override = &cfg
}

// SetDifficulty overrides the package difficulty preset for this game.
// Unknown names select the config default.
func (g *Game) SetDifficulty(preset string) {
	p := config.ParsePreset(preset)
	g.preset = &p
}

// Reset initializes or restarts the game. A restart after a completed
// level advances to the next level; any other restart begins again.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = pkgLogger.With("game", g.id)

	cfg := g.loadConfig()
	switch {
	case g.endless:
		g.level = 0
		g.carry = 0
	case g.started && g.complete:
		g.carry = g.State().Score
		g.level++
	case startLevel > 0:
		g.level = startLevel
		g.carry = 0
	default:
		g.level = max(cfg.Level.Number, 1)
		g.carry = 0
	}
	g.started = true
	cfg = config.ApplyLevel(cfg, g.level)
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.layout = newLayout(runtime.ScreenW, runtime.ScreenH, cfg.Camera.GroundOffset)
	g.phys = newPhysics(cfg)

	g.paused = false
	g.gameOver = false
	g.complete = false
	g.tickCount = 0
	g.frame = 0

	g.world = nil
	coreCfg, err := coreConfig(cfg, g.layout)
	if err == nil {
		g.world, err = rc.NewWorld(coreCfg,
			rc.WithLogger(g.logger),
			rc.WithSeed(runtime.Seed),
			rc.WithViewport(g.layout.camera()),
		)
	}
	if err != nil {
		g.logger.Error("cannot build world", "error", err)
		return
	}
	g.logger.Info("run started", "level", g.level, "seed", runtime.Seed, "distance", cfg.Level.Distance)
}

// loadConfig returns the validated config for the next run. Invalid or
// unreadable configs fall back to the defaults.
func (g *Game) loadConfig() config.RunnerConfig {
	var cfg config.RunnerConfig
	if g.override != nil {
		cfg = *g.override
	} else {
		var err error
		cfg, err = config.LoadRunner(configPath)
		if err != nil {
			g.logger.Warn("using default config", "error", err)
			cfg = config.DefaultRunnerConfig()
		}
	}

	preset := difficultyPreset
	if g.preset != nil {
		preset = *g.preset
	}
	if preset != "" {
		config.ApplyRunnerPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		g.logger.Warn("invalid config, using defaults", "error", err)
		cfg = config.DefaultRunnerConfig()
		if preset != "" {
			config.ApplyRunnerPreset(&cfg, preset)
		}
	}
	return cfg
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil || g.gameOver || g.complete {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.frame = (g.frame + 1) % 12

	w := g.world
	dt := g.runtime.TickSeconds()

	// Difficulty progression by distance
	w.SetSpeed(g.difficulty.Speed(g.cfg.Physics.BaseSpeed, w.Travelled(), w.Ticks()))
	w.SetPitChance(g.difficulty.PitChance(g.cfg.Spawn.PitChance, w.Travelled(), w.Ticks()))

	input := rc.Input{
		Jump:  in.Has(core.ActionJump),
		Slide: in.Has(core.ActionSlide),
	}
	// A jump needs real footing; the state alone is Grounded while
	// falling from the refresh anchor after a freeze.
	if input.Jump && w.Player().State() == rc.StateGrounded && g.phys.onGround() {
		g.phys.jump()
	} else {
		input.Jump = false
	}

	contacts := g.phys.step(dt, w)
	res := w.Tick(dt, input, contacts)

	var events []string
	for _, ev := range res.Events {
		if ev.Type == rc.EventPlayerRecovered {
			g.phys.recovered()
		}
		if msg, ok := describe(ev); ok {
			events = append(events, msg)
		}
	}

	g.gameOver = res.Dead
	g.complete = res.LevelComplete
	if g.complete {
		g.logger.Info("level complete", "level", g.level, "score", g.State().Score)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// describe renders the player-facing events as short log lines.
func describe(ev rc.Event) (string, bool) {
	switch ev.Type {
	case rc.EventPlayerDamaged:
		return fmt.Sprintf("%s: %s, life %d", ev.Type, ev.Cause, int(ev.Value)), true
	case rc.EventPlayerRecovered:
		return fmt.Sprintf("%s: %s, segment %d", ev.Type, ev.Cause, ev.Segment), true
	case rc.EventPlayerDied:
		return fmt.Sprintf("%s: %s", ev.Type, ev.Cause), true
	case rc.EventLevelComplete, rc.EventPoolExhausted, rc.EventConfigError:
		return ev.Type.String(), true
	default:
		return "", false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:         g.carry,
		Level:         g.level,
		LevelComplete: g.complete,
		GameOver:      g.gameOver,
		Paused:        g.paused,
	}
	if g.world != nil {
		st.Distance = g.world.Travelled()
		st.Score += int(st.Distance)
		st.Life = g.world.Player().Life()
	}
	return st
}

// RunSummary reports the run for persistence.
func (g *Game) RunSummary() registry.RunSummary {
	st := g.State()
	sum := registry.RunSummary{
		Level:     st.Level,
		Distance:  st.Distance,
		Score:     st.Score,
		Life:      st.Life,
		Seed:      g.runtime.Seed,
		Completed: st.LevelComplete,
	}
	if g.world != nil {
		stats := g.world.Stats()
		sum.Ticks = g.world.Ticks()
		sum.Spawned = stats.Spawned
		sum.Pits = stats.Pits
		sum.Recoveries = stats.Recoveries
	}
	return sum
}

// Observe returns the world snapshot for spectators.
func (g *Game) Observe() any {
	if g.world == nil {
		return nil
	}
	return g.world.Snapshot()
}

// World returns the simulation, nil when it could not be built.
func (g *Game) World() *rc.World {
	return g.world
}

// Register the game with the registry
func init() {
	registry.Register(IDLevels, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}
