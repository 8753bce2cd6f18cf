package runner

import (
	"maps"
	"math"
	"slices"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	rc "github.com/vovakirdan/tui-runner/internal/games/runner/core"
)

// contactEpsilon is the tolerance for "standing on" a surface.
const contactEpsilon = 1e-6

// physics is the host side of the player: gravity, landing, walls and
// obstacle overlap. The simulation core owns the authoritative position;
// physics reads it, moves it and writes it back once per tick.
type physics struct {
	cfg       config.RunnerPhysics
	player    config.RunnerPlayer
	obstacles config.ObstacleConfig

	vy     float64
	ground map[int]bool // Segments under the feet after the last step
	hits   map[int]bool // Segments whose obstacle overlapped after the last step
}

func newPhysics(cfg config.RunnerConfig) *physics {
	return &physics{
		cfg:       cfg.Physics,
		player:    cfg.Player,
		obstacles: cfg.Obstacles,
		ground:    make(map[int]bool),
		hits:      make(map[int]bool),
	}
}

// onGround reports whether the feet touched a segment after the last step.
func (ph *physics) onGround() bool {
	return len(ph.ground) > 0
}

// jump starts an upward impulse.
func (ph *physics) jump() {
	ph.vy = ph.cfg.JumpImpulse
}

// recovered drops all motion and contact history after a teleport.
func (ph *physics) recovered() {
	ph.vy = 0
	clear(ph.ground)
	clear(ph.hits)
}

// hitbox returns the player's collision box with feet at pos.
func (ph *physics) hitbox(pos rc.Vec2) core.RectF {
	return core.RectF{
		X: pos.X - ph.player.Width/2,
		Y: pos.Y,
		W: ph.player.Width,
		H: ph.player.Height,
	}
}

// obstacleBox returns the collision box of a segment's obstacle.
func (ph *physics) obstacleBox(s *rc.Segment) (core.RectF, bool) {
	o := s.Obstacle()
	if o == nil {
		return core.RectF{}, false
	}
	at, _ := s.ObstaclePosition()
	r := core.RectF{
		X: at.X - ph.obstacles.Width/2,
		Y: at.Y,
		W: ph.obstacles.Width,
		H: o.Height,
	}
	if o.Kind == rc.ObstacleSlide {
		r.Y += ph.obstacles.SlideClearance
	}
	return r, true
}

func (ph *physics) overlapsX(s *rc.Segment, x float64) bool {
	half := ph.player.Width / 2
	return x+half > s.Left()+contactEpsilon && x-half < s.Right()-contactEpsilon
}

// step integrates one tick and returns the contacts the player made.
// Nothing moves while the player is frozen or dead.
func (ph *physics) step(dt float64, w *rc.World) []rc.Contact {
	p := w.Player()
	if p.IsDead() || w.Disabled() {
		return nil
	}
	if p.IsFrozen() {
		ph.vy = 0
		return nil
	}

	prev := p.Position()
	pos := prev
	ph.vy = math.Max(ph.vy-ph.cfg.Gravity*dt, -ph.cfg.MaxFallSpeed)
	pos.Y += ph.vy * dt
	pos.X = approach(pos.X, ph.player.X, ph.cfg.HomeDrift*dt)

	q := w.Queue()

	// Land on the highest surface crossed from above.
	if ph.vy <= 0 {
		land, found := 0.0, false
		q.ForEach(func(s *rc.Segment) {
			top := s.Position().Y
			if !ph.overlapsX(s, pos.X) || prev.Y < top-contactEpsilon || pos.Y > top+contactEpsilon {
				return
			}
			if !found || top > land {
				land, found = top, true
			}
		})
		if found {
			pos.Y = land
			ph.vy = 0
		}
	}

	// Segments the player is inside of are walls and push it back.
	// Right to left, so a push into the previous segment is resolved too.
	for i := q.Len() - 1; i >= 0; i-- {
		s := q.Index(i)
		if pos.Y < s.Position().Y-contactEpsilon && ph.overlapsX(s, pos.X) {
			pos.X = math.Min(pos.X, s.Left()-ph.player.Width/2)
		}
	}

	p.SetPosition(pos)

	var contacts []rc.Contact
	contacts = ph.groundContacts(q, pos, contacts)
	contacts = ph.obstacleContacts(q, pos, contacts)
	return contacts
}

// groundContacts reports ground begin/stay/end against the previous step.
// An end is only reported once the feet touch no segment at all, so
// crossing the seam between adjacent segments keeps the player grounded
// and does not cut a slide short.
func (ph *physics) groundContacts(q *rc.ActiveQueue, pos rc.Vec2, out []rc.Contact) []rc.Contact {
	now := make(map[int]*rc.Segment)
	if ph.vy <= 0 {
		q.ForEach(func(s *rc.Segment) {
			if ph.overlapsX(s, pos.X) && math.Abs(pos.Y-s.Position().Y) <= contactEpsilon {
				now[s.ID()] = s
			}
		})
	}

	for _, id := range slices.Sorted(maps.Keys(ph.ground)) {
		if now[id] != nil {
			continue
		}
		delete(ph.ground, id)
		if len(now) == 0 {
			out = append(out, rc.Contact{Phase: rc.ContactEnd, Ground: true, Segment: id})
		}
	}
	for _, id := range slices.Sorted(maps.Keys(now)) {
		phase := rc.ContactStay
		if !ph.ground[id] {
			phase = rc.ContactBegin
			ph.ground[id] = true
		}
		out = append(out, rc.Contact{
			Phase:    phase,
			Ground:   true,
			Segment:  id,
			Platform: now[id].Kind(),
		})
	}
	return out
}

// obstacleContacts reports a begin contact for each newly overlapped obstacle.
func (ph *physics) obstacleContacts(q *rc.ActiveQueue, pos rc.Vec2, out []rc.Contact) []rc.Contact {
	box := ph.hitbox(pos)
	now := make(map[int]bool)
	q.ForEach(func(s *rc.Segment) {
		r, ok := ph.obstacleBox(s)
		if !ok || !box.Intersects(r) {
			return
		}
		now[s.ID()] = true
		if !ph.hits[s.ID()] {
			out = append(out, rc.Contact{
				Phase:    rc.ContactBegin,
				Segment:  s.ID(),
				Obstacle: s.Obstacle(),
			})
		}
	})
	ph.hits = now
	return out
}

// approach moves v toward target by at most step.
func approach(v, target, step float64) float64 {
	if v < target {
		return math.Min(target, v+step)
	}
	return math.Max(target, v-step)
}
