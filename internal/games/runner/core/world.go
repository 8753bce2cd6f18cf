package core

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Input carries the edge-triggered actions for one tick.
type Input struct {
	Jump  bool
	Slide bool
}

// TickResult describes what happened during one tick.
type TickResult struct {
	Tick          uint64
	Moved         float64 // Scroll distance applied this tick
	Events        []Event
	Life          int
	State         PlayerState
	Dead          bool
	LevelComplete bool
}

// Stats are run counters.
type Stats struct {
	Spawned     int
	Pits        int
	Exhaustions int
	Despawned   int
	Recoveries  int
	Damage      int
	Active      int
}

// World wires the pool, planner, driver and player into a per-tick simulation.
// It is single-threaded: every mutation happens inside Tick or Dispatch.
type World struct {
	cfg      Config
	rng      *rand.Rand
	logger   *log.Logger
	viewport Viewport
	events   EventQueue

	pool    *Pool
	queue   *ActiveQueue
	planner *Planner
	driver  *Driver
	player  *Player

	disabled         bool
	tick             uint64
	recoverRequested bool
	recoverCause     string
	recoveries       int
	damageTaken      int
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSeed seeds the world RNG.
func WithSeed(seed int64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed))
	}
}

// WithViewport sets the projection used for off-screen detection.
func WithViewport(v Viewport) Option {
	return func(w *World) {
		if v != nil {
			w.viewport = v
		}
	}
}

// NewWorld builds the pool and fills the initial stream.
// A config without templates yields a disabled world that never spawns;
// any other invalid config is an error.
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	w := &World{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(1)),
		logger:   log.New(io.Discard),
		viewport: OrthoCamera{Width: 1, Height: 1},
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w.player = NewPlayer(cfg.Life, cfg.PlayerStart, cfg.SlideDuration)

	pool, err := NewPool(cfg.Templates, cfg.PoolSize, w.rng)
	if err != nil {
		w.logger.Error("no platform templates provided, spawning disabled", "error", err)
		w.disabled = true
		w.events.Push(Event{Type: EventConfigError, Segment: -1, Cause: err.Error()})
		return w, nil
	}

	w.pool = pool
	w.queue = NewActiveQueue(pool.Len())
	w.planner = NewPlanner(cfg, pool, w.queue, w.rng, &w.events, w.logger)
	w.driver = NewDriver(cfg, pool, w.queue, w.planner, &w.events, w.logger)
	w.planner.Fill()
	return w, nil
}

// Tick advances the simulation by dt seconds.
// Contacts are the physics contacts the host observed since the last tick.
func (w *World) Tick(dt float64, in Input, contacts []Contact) TickResult {
	if w.disabled || w.player.IsDead() || w.driver.Complete() {
		return w.result(0)
	}
	w.tick++

	w.player.Update(dt)
	if in.Jump {
		w.player.Jump()
	}
	if in.Slide {
		w.player.Slide()
	}

	for _, c := range contacts {
		w.Dispatch(c)
	}
	if w.player.IsDead() {
		return w.result(0)
	}
	if w.recoverRequested {
		w.recover()
	}

	if !w.player.IsFrozen() && w.IsPlayerOffScreen() {
		w.logger.Debug("player off screen", "x", w.player.Position().X, "y", w.player.Position().Y)
		if w.damage("offscreen") {
			return w.result(0)
		}
		w.RequestRecovery("offscreen")
		w.recover()
	}

	moved := 0.0
	if !w.player.IsFrozen() {
		moved = w.driver.Tick(dt)
	}
	return w.result(moved)
}

func (w *World) result(moved float64) TickResult {
	return TickResult{
		Tick:          w.tick,
		Moved:         moved,
		Events:        w.events.Drain(),
		Life:          w.player.Life(),
		State:         w.player.State(),
		Dead:          w.player.IsDead(),
		LevelComplete: w.LevelComplete(),
	}
}

// IsPlayerOffScreen projects the player and tests it against the margin.
func (w *World) IsPlayerOffScreen() bool {
	vp := w.viewport.WorldToViewport(w.player.Position())
	return IsOffScreen(vp, w.cfg.OffScreenMargin)
}

// damage removes one life and reports whether the player died.
func (w *World) damage(cause string) bool {
	died := w.player.Damage()
	w.damageTaken++
	w.events.Push(Event{
		Type:    EventPlayerDamaged,
		Segment: -1,
		Pos:     w.player.Position(),
		Cause:   cause,
		Value:   float64(w.player.Life()),
	})
	w.logger.Debug("player damaged", "cause", cause, "life", w.player.Life())

	if died {
		w.recoverRequested = false
		w.events.Push(Event{Type: EventPlayerDied, Segment: -1, Pos: w.player.Position(), Cause: cause})
		w.logger.Info("game over", "cause", cause, "distance", w.Travelled())
	}
	return died
}

// RequestRecovery schedules a recovery for the current tick.
// Requests made while one is pending or running are ignored.
func (w *World) RequestRecovery(cause string) bool {
	if w.disabled || w.recoverRequested || w.player.IsFrozen() || w.player.IsDead() {
		return false
	}
	w.recoverRequested = true
	w.recoverCause = cause
	return true
}

// recover moves the player to the nearest refresh anchor and freezes the world.
func (w *World) recover() {
	if !w.recoverRequested {
		return
	}
	w.recoverRequested = false

	seg := w.RecoverySegment(w.player.Position())
	segID := -1
	if seg != nil {
		segID = seg.ID()
		w.player.SetPosition(seg.RefreshAnchor())
	} else {
		w.logger.Warn("no active segment to recover onto", "cause", w.recoverCause)
	}

	w.player.Freeze(w.cfg.RecoveryDuration)
	w.recoveries++
	w.events.Push(Event{
		Type:    EventPlayerRecovered,
		Segment: segID,
		Pos:     w.player.Position(),
		Cause:   w.recoverCause,
		Value:   w.cfg.RecoveryDuration,
	})
	w.logger.Debug("player recovered", "cause", w.recoverCause, "segment", segID)
}

// NearestSegment returns the active segment whose refresh anchor is closest
// to p, or nil when nothing is active.
func (w *World) NearestSegment(p Vec2) *Segment {
	if w.pool == nil {
		return nil
	}
	var best *Segment
	bestDist := 0.0
	w.pool.ForEachActive(func(s *Segment) {
		d := s.RefreshAnchor().Dist(p)
		if best == nil || d < bestDist {
			best = s
			bestDist = d
		}
	})
	return best
}

// RecoverySegment returns the nearest active segment that is safe to stand
// on. Hazard ground is only chosen when nothing else is active.
func (w *World) RecoverySegment(p Vec2) *Segment {
	if w.pool == nil {
		return nil
	}
	var best *Segment
	bestDist := 0.0
	w.pool.ForEachActive(func(s *Segment) {
		if s.Kind() == PlatformPit {
			return
		}
		d := s.RefreshAnchor().Dist(p)
		if best == nil || d < bestDist {
			best = s
			bestDist = d
		}
	})
	if best == nil {
		return w.NearestSegment(p)
	}
	return best
}

// CurrentSegment returns the segment under the player's x position.
func (w *World) CurrentSegment() (*Segment, bool) {
	if w.queue == nil {
		return nil, false
	}
	return w.queue.At(w.player.Position().X)
}

// NextSegment returns the segment after the one the player stands over.
// A player not over any queued segment yields an absent result.
func (w *World) NextSegment() (*Segment, bool) {
	cur, ok := w.CurrentSegment()
	if !ok {
		w.logger.Warn("player segment not found in active queue", "x", w.player.Position().X)
		return nil, false
	}
	return w.queue.Next(cur)
}

// SetSpeed changes the scroll speed.
func (w *World) SetSpeed(speed float64) {
	if w.driver != nil {
		w.driver.SetSpeed(speed)
	}
}

// SetPitChance changes the pit probability for future spawn steps.
func (w *World) SetPitChance(chance float64) {
	if w.planner != nil {
		w.planner.SetPitChance(chance)
	}
}

// Player returns the player.
func (w *World) Player() *Player { return w.player }

// Pool returns the segment pool, nil when disabled.
func (w *World) Pool() *Pool { return w.pool }

// Queue returns the active queue, nil when disabled.
func (w *World) Queue() *ActiveQueue { return w.queue }

// Planner returns the spawn planner, nil when disabled.
func (w *World) Planner() *Planner { return w.planner }

// Config returns the config the world was built with.
func (w *World) Config() Config { return w.cfg }

// Disabled reports whether spawning is disabled by a config error.
func (w *World) Disabled() bool { return w.disabled }

// Ticks returns the number of simulated ticks.
func (w *World) Ticks() uint64 { return w.tick }

// Frontier returns the spawn frontier.
func (w *World) Frontier() float64 {
	if w.planner == nil {
		return 0
	}
	return w.planner.Frontier()
}

// Travelled returns the distance scrolled so far.
func (w *World) Travelled() float64 {
	if w.driver == nil {
		return 0
	}
	return w.driver.Travelled()
}

// Speed returns the current scroll speed.
func (w *World) Speed() float64 {
	if w.driver == nil {
		return 0
	}
	return w.driver.Speed()
}

// LevelComplete reports whether the level distance was covered.
func (w *World) LevelComplete() bool {
	return w.driver != nil && w.driver.Complete()
}

// Stats returns the run counters.
func (w *World) Stats() Stats {
	st := Stats{
		Recoveries: w.recoveries,
		Damage:     w.damageTaken,
	}
	if w.planner != nil {
		st.Spawned = w.planner.spawned
		st.Pits = w.planner.pits
		st.Exhaustions = w.planner.exhaustions
	}
	if w.driver != nil {
		st.Despawned = w.driver.Despawned()
	}
	if w.pool != nil {
		st.Active = w.pool.ActiveCount()
	}
	return st
}
