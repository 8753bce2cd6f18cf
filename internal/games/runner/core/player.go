package core

// PlayerState is the player's movement state.
type PlayerState uint8

const (
	StateGrounded PlayerState = iota
	StateAirborne
	StateSliding
	StateFrozen
	StateDead
)

// String returns a human-readable name for the state.
func (s PlayerState) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateAirborne:
		return "airborne"
	case StateSliding:
		return "sliding"
	case StateFrozen:
		return "frozen"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Player tracks life, movement state and timers.
// Timers are countdowns advanced by Update; nothing blocks the tick loop.
type Player struct {
	life          int
	state         PlayerState
	pos           Vec2
	slideDuration float64
	slideLeft     float64
	freezeLeft    float64
}

// NewPlayer creates a grounded player with the given life at pos.
func NewPlayer(life int, pos Vec2, slideDuration float64) *Player {
	if life < 0 {
		life = 0
	}
	p := &Player{
		life:          life,
		pos:           pos,
		slideDuration: slideDuration,
	}
	if life == 0 {
		p.state = StateDead
	}
	return p
}

// Life returns the remaining life.
func (p *Player) Life() int { return p.life }

// State returns the current movement state.
func (p *Player) State() PlayerState { return p.state }

// Position returns the world position.
func (p *Player) Position() Vec2 { return p.pos }

// SetPosition is used by host physics to report where the player is.
func (p *Player) SetPosition(pos Vec2) { p.pos = pos }

// IsSliding reports whether the player is sliding.
func (p *Player) IsSliding() bool { return p.state == StateSliding }

// IsGrounded reports whether the player stands on ground (sliding counts).
func (p *Player) IsGrounded() bool {
	return p.state == StateGrounded || p.state == StateSliding
}

// IsFrozen reports whether a recovery freeze is running.
func (p *Player) IsFrozen() bool { return p.state == StateFrozen }

// IsDead reports whether the player reached the terminal state.
func (p *Player) IsDead() bool { return p.state == StateDead }

// FreezeRemaining returns the seconds left on the recovery freeze.
func (p *Player) FreezeRemaining() float64 { return p.freezeLeft }

// Jump moves Grounded to Airborne. Returns whether the jump started.
func (p *Player) Jump() bool {
	if p.state != StateGrounded {
		return false
	}
	p.state = StateAirborne
	return true
}

// Slide moves Grounded to Sliding for the configured duration.
func (p *Player) Slide() bool {
	if p.state != StateGrounded {
		return false
	}
	p.state = StateSliding
	p.slideLeft = p.slideDuration
	return true
}

// Land handles a ground contact: Airborne becomes Grounded.
func (p *Player) Land() {
	if p.state == StateAirborne {
		p.state = StateGrounded
	}
}

// LeaveGround handles the end of a ground contact without a jump.
func (p *Player) LeaveGround() {
	switch p.state {
	case StateGrounded, StateSliding:
		p.state = StateAirborne
		p.slideLeft = 0
	}
}

// Damage removes one life. Returns true if the player died.
func (p *Player) Damage() bool {
	if p.state == StateDead {
		return true
	}
	if p.life > 0 {
		p.life--
	}
	if p.life == 0 {
		p.state = StateDead
		p.slideLeft = 0
		p.freezeLeft = 0
		return true
	}
	return false
}

// Freeze enters the recovery state for d seconds.
// A freeze already in progress is kept as is.
func (p *Player) Freeze(d float64) bool {
	if p.state == StateDead || p.state == StateFrozen {
		return false
	}
	p.state = StateFrozen
	p.slideLeft = 0
	p.freezeLeft = d
	return true
}

// Update advances the slide and freeze countdowns by dt seconds.
func (p *Player) Update(dt float64) {
	switch p.state {
	case StateSliding:
		p.slideLeft -= dt
		if p.slideLeft <= 0 {
			p.slideLeft = 0
			p.state = StateGrounded
		}
	case StateFrozen:
		p.freezeLeft -= dt
		if p.freezeLeft <= 0 {
			p.freezeLeft = 0
			p.state = StateGrounded
		}
	}
}
