package core

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrNoTemplates is returned when a pool is built without segment templates.
	ErrNoTemplates = errors.New("core: no segment templates configured")

	// ErrInvalidPoolSize is returned when the requested pool size is not positive.
	ErrInvalidPoolSize = errors.New("core: pool size must be positive")
)

// Pool is a fixed-capacity store of reusable segments.
// Its size never changes after construction; segments are only toggled
// active/inactive and repositioned.
type Pool struct {
	segments []Segment
	rng      *rand.Rand
	active   int
}

// NewPool builds size segments, picking a template for each slot by weight.
func NewPool(templates []SegmentTemplate, size int, rng *rand.Rand) (*Pool, error) {
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPoolSize, size)
	}

	p := &Pool{
		segments: make([]Segment, size),
		rng:      rng,
	}
	for i := range p.segments {
		p.segments[i] = Segment{
			id:       i,
			template: pickTemplate(templates, rng),
		}
	}
	return p, nil
}

// pickTemplate chooses a template by weight. Non-positive weights count as 1.
func pickTemplate(templates []SegmentTemplate, rng *rand.Rand) SegmentTemplate {
	total := 0.0
	for _, t := range templates {
		total += templateWeight(t)
	}

	roll := rng.Float64() * total
	for _, t := range templates {
		roll -= templateWeight(t)
		if roll < 0 {
			return t
		}
	}
	return templates[len(templates)-1]
}

func templateWeight(t SegmentTemplate) float64 {
	if t.Weight <= 0 {
		return 1
	}
	return t.Weight
}

// Len returns the fixed pool capacity.
func (p *Pool) Len() int { return len(p.segments) }

// ActiveCount returns the number of segments currently active.
func (p *Pool) ActiveCount() int { return p.active }

// Segment returns the segment in slot i.
func (p *Pool) Segment(i int) *Segment { return &p.segments[i] }

// Acquire returns one inactive segment, or nil when the pool is exhausted.
// The scan starts at a random slot and wraps around the whole pool.
func (p *Pool) Acquire() *Segment {
	return p.scan(func(s *Segment) bool { return true })
}

// AcquireFresh returns an inactive normal segment that has never been used,
// falling back to any inactive normal segment. Returns nil when none exist.
func (p *Pool) AcquireFresh() *Segment {
	if s := p.scan(func(s *Segment) bool { return !s.used && s.Kind() == PlatformNormal }); s != nil {
		return s
	}
	return p.scan(func(s *Segment) bool { return s.Kind() == PlatformNormal })
}

func (p *Pool) scan(eligible func(*Segment) bool) *Segment {
	n := len(p.segments)
	if n == 0 {
		return nil
	}

	start := p.rng.Intn(n)
	for i := 0; i < n; i++ {
		s := &p.segments[(start+i)%n]
		if !s.active && eligible(s) {
			return s
		}
	}
	return nil
}

// activate places a segment acquired from this pool and tracks the count.
func (p *Pool) activate(s *Segment, pos Vec2, rate float64, set []ObstacleSpec) {
	if !s.active {
		p.active++
	}
	s.activate(pos, p.rng, rate, set)
}

// Release deactivates the segment, drops its obstacle and clears its position.
func (p *Pool) Release(s *Segment) {
	if s == nil {
		return
	}
	if s.active {
		p.active--
	}
	s.Deactivate()
	s.pos = Vec2{}
}

// ForEachActive calls fn for every active segment in slot order.
func (p *Pool) ForEachActive(fn func(*Segment)) {
	for i := range p.segments {
		if p.segments[i].active {
			fn(&p.segments[i])
		}
	}
}
