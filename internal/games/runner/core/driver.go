package core

import "github.com/charmbracelet/log"

// Driver scrolls active segments, recycles the ones that pass the despawn
// threshold and asks the planner to refill the stream.
type Driver struct {
	speed         float64
	despawnX      float64
	levelDistance float64 // 0 means endless

	pool    *Pool
	queue   *ActiveQueue
	planner *Planner
	events  *EventQueue
	logger  *log.Logger

	travelled float64
	complete  bool
	despawned int
}

// NewDriver creates a driver for the given pool, queue and planner.
func NewDriver(cfg Config, pool *Pool, queue *ActiveQueue, planner *Planner, events *EventQueue, logger *log.Logger) *Driver {
	return &Driver{
		speed:         cfg.Speed,
		despawnX:      cfg.DespawnX,
		levelDistance: cfg.LevelDistance,
		pool:          pool,
		queue:         queue,
		planner:       planner,
		events:        events,
		logger:        logger,
	}
}

// Speed returns the current scroll speed.
func (d *Driver) Speed() float64 { return d.speed }

// SetSpeed changes the scroll speed. Negative values are treated as zero.
func (d *Driver) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	d.speed = speed
}

// Travelled returns the accumulated scroll distance.
func (d *Driver) Travelled() float64 { return d.travelled }

// Complete reports whether the level distance has been covered.
func (d *Driver) Complete() bool { return d.complete }

// Despawned returns the number of segments recycled so far.
func (d *Driver) Despawned() int { return d.despawned }

// Tick advances the world by dt seconds and returns the scroll distance.
func (d *Driver) Tick(dt float64) float64 {
	if d.complete || dt <= 0 {
		return 0
	}

	move := d.speed * dt
	d.queue.ForEach(func(s *Segment) {
		s.translate(-move)
	})

	for head := d.queue.Head(); head != nil && head.Position().X < d.despawnX; head = d.queue.Head() {
		d.queue.Dequeue()
		pos := head.Position()
		d.pool.Release(head)
		d.despawned++
		d.events.Push(Event{Type: EventSegmentDespawned, Segment: head.ID(), Pos: pos})
	}
	d.checkOrder()

	d.planner.Scroll(move)
	d.planner.Fill()

	d.travelled += move
	if d.levelDistance > 0 && d.travelled > d.levelDistance {
		d.complete = true
		d.events.Push(Event{Type: EventLevelComplete, Segment: -1, Value: d.travelled})
		d.logger.Info("level complete", "distance", d.travelled)
	}
	return move
}

// checkOrder recycles any queued segment past the despawn threshold that is
// not at the head. Spawn order makes this unreachable; if it happens the
// queue is repaired and a warning is logged.
func (d *Driver) checkOrder() {
	for i := 0; i < d.queue.Len(); i++ {
		s := d.queue.Index(i)
		if s.Position().X >= d.despawnX {
			continue
		}
		d.logger.Warn("segment past despawn threshold behind queue head", "segment", s.ID(), "index", i)
		d.removeAt(i)
		i--
	}
}

// removeAt drops the i-th queued segment while keeping the rest in order.
func (d *Driver) removeAt(i int) {
	n := d.queue.Len()
	kept := make([]*Segment, 0, n-1)
	var victim *Segment
	for j := 0; j < n; j++ {
		s := d.queue.Dequeue()
		if j == i {
			victim = s
			continue
		}
		kept = append(kept, s)
	}
	for _, s := range kept {
		// Re-enqueueing the surviving order cannot violate monotonicity.
		_ = d.queue.Enqueue(s)
	}
	pos := victim.Position()
	d.pool.Release(victim)
	d.despawned++
	d.events.Push(Event{Type: EventSegmentDespawned, Segment: victim.ID(), Pos: pos})
}
