package core

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Phase is the planner's lifecycle phase.
type Phase uint8

const (
	PhasePrepare Phase = iota // Flat, pit-free, obstacle-free runway
	PhaseSteady               // Random heights, pits and obstacles
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	if p == PhasePrepare {
		return "prepare"
	}
	return "steady"
}

// StepOutcome reports what a single spawn step produced.
type StepOutcome uint8

const (
	StepSegment   StepOutcome = iota // A segment was placed
	StepPit                          // A gap was placed
	StepExhausted                    // No free segment; frontier deferred
	StepRejected                     // Segment could not be queued; frontier advanced
	StepNoRunway                     // Only hazard segments free during prepare; frontier deferred
)

// Planner decides what to place next and owns the spawn frontier.
type Planner struct {
	cfg    Config
	pool   *Pool
	queue  *ActiveQueue
	rng    *rand.Rand
	events *EventQueue
	logger *log.Logger

	frontier float64 // Rightmost occupied world x (segment or pit)
	sincePit int     // Segments placed since the last pit (steady phase only)
	prepared bool
	spawned  int

	pits        int
	exhaustions int
}

// NewPlanner creates a planner whose frontier starts at cfg.StartFrontier.
func NewPlanner(cfg Config, pool *Pool, queue *ActiveQueue, rng *rand.Rand, events *EventQueue, logger *log.Logger) *Planner {
	return &Planner{
		cfg:      cfg,
		pool:     pool,
		queue:    queue,
		rng:      rng,
		events:   events,
		logger:   logger,
		frontier: cfg.StartFrontier,
	}
}

// Frontier returns the current spawn frontier.
func (p *Planner) Frontier() float64 { return p.frontier }

// Phase returns the current lifecycle phase.
func (p *Planner) Phase() Phase {
	if p.prepared {
		return PhaseSteady
	}
	return PhasePrepare
}

// Spawned returns the number of segments placed since start.
func (p *Planner) Spawned() int { return p.spawned }

// SincePit returns the pit-cadence counter.
func (p *Planner) SincePit() int { return p.sincePit }

// PitChance returns the current pit probability.
func (p *Planner) PitChance() float64 { return p.cfg.PitChance }

// SetPitChance changes the pit probability, clamped to [0,1].
// Pits stay disabled when no pit width is configured.
func (p *Planner) SetPitChance(chance float64) {
	if p.cfg.PitWidth <= 0 {
		return
	}
	p.cfg.PitChance = math.Max(0, math.Min(1, chance))
}

// Scroll moves the frontier left by d.
func (p *Planner) Scroll(d float64) {
	p.frontier -= d
}

// Fill runs spawn steps until the frontier reaches the spawn trigger.
// A tick may need zero, one or several steps.
func (p *Planner) Fill() int {
	steps := 0
	limit := 4*p.pool.Len() + 64
	for p.frontier < p.cfg.SpawnTriggerX {
		if steps >= limit {
			p.logger.Warn("spawn fill did not converge", "frontier", p.frontier, "steps", steps)
			p.frontier = p.cfg.SpawnTriggerX + 1
			break
		}
		p.Step()
		steps++
	}
	return steps
}

// Step performs one spawn step: a pit, a segment, or an exhaustion deferral.
func (p *Planner) Step() StepOutcome {
	if p.prepared && p.sincePit >= p.cfg.MinSegmentsBetweenPits {
		if p.rng.Float64() < p.cfg.PitChance {
			start := p.frontier
			p.frontier += p.cfg.PitWidth
			p.sincePit = 0
			p.pits++
			p.events.Push(Event{
				Type:    EventPitPlaced,
				Segment: -1,
				Pos:     V(start, 0),
				Value:   p.cfg.PitWidth,
			})
			p.logger.Debug("pit placed", "from", start, "width", p.cfg.PitWidth)
			return StepPit
		}
	}

	var seg *Segment
	if p.prepared {
		seg = p.pool.Acquire()
	} else {
		seg = p.pool.AcquireFresh()
	}

	if seg == nil && !p.prepared && p.pool.ActiveCount() < p.pool.Len() {
		p.frontier = p.cfg.SpawnTriggerX + 1
		p.logger.Warn("no runway segment free, runway deferred",
			"pool", p.pool.Len(), "active", p.pool.ActiveCount())
		return StepNoRunway
	}
	if seg == nil {
		p.exhaustions++
		p.frontier = p.cfg.SpawnTriggerX + 1
		p.events.Push(Event{Type: EventPoolExhausted, Segment: -1, Pos: V(p.frontier, 0)})
		p.logger.Warn("platform pool exhausted, consider increasing pool size",
			"pool", p.pool.Len(), "active", p.pool.ActiveCount())
		return StepExhausted
	}

	width := seg.Width()
	spawnX := p.frontier + width/2

	y := p.cfg.PrepareY
	rate := 0.0
	if p.prepared {
		lo := p.cfg.YMin - p.cfg.HeightOffset
		hi := p.cfg.YMax - p.cfg.HeightOffset
		y = lo + p.rng.Float64()*(hi-lo)
		rate = p.cfg.ObstacleRate
	}

	p.pool.activate(seg, V(spawnX-p.cfg.SpawnOffsetX, y), rate, p.cfg.Obstacles)
	p.frontier = spawnX + width/2

	if err := p.queue.Enqueue(seg); err != nil {
		p.logger.Warn("segment not queued", "segment", seg.ID(), "x", seg.Position().X, "error", err)
		p.pool.Release(seg)
		return StepRejected
	}

	p.spawned++
	if p.spawned > p.cfg.PrepareCount {
		p.prepared = true
	}
	if p.prepared {
		p.sincePit++
	}

	p.events.Push(Event{Type: EventSegmentSpawned, Segment: seg.ID(), Pos: seg.Position(), Value: width})
	p.logger.Debug("segment spawned", "segment", seg.ID(), "x", seg.Position().X, "y", y, "width", width)
	return StepSegment
}
