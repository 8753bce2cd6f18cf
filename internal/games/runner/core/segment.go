package core

import "math/rand"

// ObstacleKind identifies the collision behavior of an obstacle.
type ObstacleKind uint8

const (
	ObstacleJump  ObstacleKind = iota // Always damages; must be jumped over
	ObstacleSlide                     // Damages unless the player is sliding
	ObstaclePit                       // Damages and forces a recovery
)

// String returns a human-readable name for the obstacle kind.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleJump:
		return "jump"
	case ObstacleSlide:
		return "slide"
	case ObstaclePit:
		return "pit"
	default:
		return "unknown"
	}
}

// PlatformKind identifies the collision behavior of a segment's ground.
type PlatformKind uint8

const (
	PlatformNone   PlatformKind = iota // Entity carries no platform behavior
	PlatformNormal                     // Plain ground
	PlatformPit                        // Hazard ground, behaves like a pit
)

// String returns a human-readable name for the platform kind.
func (k PlatformKind) String() string {
	switch k {
	case PlatformNone:
		return "none"
	case PlatformNormal:
		return "normal"
	case PlatformPit:
		return "pit"
	default:
		return "unknown"
	}
}

// ObstacleSpec describes one entry of the configured obstacle set.
type ObstacleSpec struct {
	Kind      ObstacleKind
	MinHeight float64
	MaxHeight float64
}

// Obstacle is a transient child of a Segment.
// It lives exactly as long as the segment stays active.
type Obstacle struct {
	Kind   ObstacleKind
	Offset Vec2    // Attachment point relative to the segment position
	Height float64 // Vertical extent above the attachment point
}

// SegmentTemplate is the blueprint pooled segments are built from.
type SegmentTemplate struct {
	Name          string
	Width         float64
	Weight        float64 // Relative pick weight when filling the pool
	Kind          PlatformKind
	RefreshOffset Vec2   // Recovery anchor relative to the segment position
	AttachPoints  []Vec2 // Candidate obstacle attachment points
}

// Segment is one pooled unit of ground. Its identity is its pool slot.
type Segment struct {
	id       int
	template SegmentTemplate
	pos      Vec2
	active   bool
	used     bool // Activated at least once since the pool was built
	obstacle *Obstacle
}

// ID returns the pool slot index of the segment.
func (s *Segment) ID() int { return s.id }

// Name returns the template name the segment was built from.
func (s *Segment) Name() string { return s.template.Name }

// Kind returns the platform behavior of the segment.
func (s *Segment) Kind() PlatformKind { return s.template.Kind }

// Position returns the world position (horizontal centre, top surface).
func (s *Segment) Position() Vec2 { return s.pos }

// Active reports whether the segment is currently placed in the world.
func (s *Segment) Active() bool { return s.active }

// Used reports whether the segment has ever been activated.
func (s *Segment) Used() bool { return s.used }

// Width returns the horizontal extent of the segment.
func (s *Segment) Width() float64 { return s.template.Width }

// Left returns the world x of the segment's left edge.
func (s *Segment) Left() float64 { return s.pos.X - s.template.Width/2 }

// Right returns the world x of the segment's right edge.
func (s *Segment) Right() float64 { return s.pos.X + s.template.Width/2 }

// Obstacle returns the attached obstacle, or nil.
func (s *Segment) Obstacle() *Obstacle { return s.obstacle }

// ObstaclePosition returns the world position of the attached obstacle.
func (s *Segment) ObstaclePosition() (Vec2, bool) {
	if s.obstacle == nil {
		return Vec2{}, false
	}
	return s.pos.Add(s.obstacle.Offset), true
}

// RefreshAnchor returns the world point a recovering player is moved to.
func (s *Segment) RefreshAnchor() Vec2 {
	return s.pos.Add(s.template.RefreshOffset)
}

// activate places the segment at pos and rolls for an obstacle.
// Only the pool calls it, so the pool's active count stays exact.
// With probability rate one obstacle is chosen uniformly from set and attached
// at a uniformly chosen attachment point.
func (s *Segment) activate(pos Vec2, rng *rand.Rand, rate float64, set []ObstacleSpec) {
	s.pos = pos
	s.active = true
	s.used = true
	s.obstacle = nil

	if rate <= 0 || len(set) == 0 || len(s.template.AttachPoints) == 0 {
		return
	}
	if rng.Float64() >= rate {
		return
	}

	spec := set[rng.Intn(len(set))]
	point := s.template.AttachPoints[rng.Intn(len(s.template.AttachPoints))]

	height := spec.MinHeight
	if spec.MaxHeight > spec.MinHeight {
		height = spec.MinHeight + rng.Float64()*(spec.MaxHeight-spec.MinHeight)
	}

	s.obstacle = &Obstacle{
		Kind:   spec.Kind,
		Offset: point,
		Height: height,
	}
}

// Deactivate hides the segment and drops its obstacle.
func (s *Segment) Deactivate() {
	s.active = false
	s.obstacle = nil
}

// translate moves the segment along the scroll axis.
func (s *Segment) translate(dx float64) {
	s.pos.X += dx
}
