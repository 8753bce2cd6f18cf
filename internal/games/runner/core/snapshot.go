package core

// Snapshot is the render-facing view of the world for one tick.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick          uint64        `json:"tick"`
	Phase         string        `json:"phase"`
	Frontier      float64       `json:"frontier"`
	Travelled     float64       `json:"travelled"`
	Speed         float64       `json:"speed"`
	Life          int           `json:"life"`
	State         string        `json:"state"`
	Player        Vec2          `json:"player"`
	Segments      []SegmentView `json:"segments"`
	Disabled      bool          `json:"disabled,omitempty"`
	LevelComplete bool          `json:"level_complete,omitempty"`
}

// SegmentView is the world placement of one active segment.
type SegmentView struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Kind     string        `json:"kind"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Width    float64       `json:"width"`
	Obstacle *ObstacleView `json:"obstacle,omitempty"`
}

// ObstacleView is the world placement of an attached obstacle.
type ObstacleView struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Height float64 `json:"height"`
}

// Snapshot captures the current world state, segments in spawn order.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:          w.tick,
		Frontier:      w.Frontier(),
		Travelled:     w.Travelled(),
		Speed:         w.Speed(),
		Life:          w.player.Life(),
		State:         w.player.State().String(),
		Player:        w.player.Position(),
		Disabled:      w.disabled,
		LevelComplete: w.LevelComplete(),
	}
	if w.planner != nil {
		snap.Phase = w.planner.Phase().String()
	}
	if w.queue == nil {
		return snap
	}

	snap.Segments = make([]SegmentView, 0, w.queue.Len())
	w.queue.ForEach(func(s *Segment) {
		view := SegmentView{
			ID:    s.ID(),
			Name:  s.Name(),
			Kind:  s.Kind().String(),
			X:     s.Position().X,
			Y:     s.Position().Y,
			Width: s.Width(),
		}
		if o := s.Obstacle(); o != nil {
			p, _ := s.ObstaclePosition()
			view.Obstacle = &ObstacleView{
				Kind:   o.Kind.String(),
				X:      p.X,
				Y:      p.Y,
				Height: o.Height,
			}
		}
		snap.Segments = append(snap.Segments, view)
	})
	return snap
}
