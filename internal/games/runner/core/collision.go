package core

// ContactPhase is the physics contact lifecycle reported by the host.
type ContactPhase uint8

const (
	ContactBegin ContactPhase = iota
	ContactStay
	ContactEnd
)

// Contact is one physics contact between the player and another entity.
// An entity may carry obstacle behavior, platform behavior, or both; each is
// handled independently.
type Contact struct {
	Phase    ContactPhase
	Ground   bool         // Contact is tagged as ground
	Segment  int          // Pool slot of the touched segment, -1 if none
	Obstacle *Obstacle    // Obstacle behavior, nil if none
	Platform PlatformKind // Platform behavior, PlatformNone if none
}

// Dispatch applies one contact to the world.
// Ground contacts drive the grounded flag; begin contacts with obstacle or
// platform behavior invoke that behavior.
func (w *World) Dispatch(c Contact) {
	if w.player.IsDead() {
		return
	}

	if c.Ground {
		switch c.Phase {
		case ContactBegin, ContactStay:
			w.player.Land()
		case ContactEnd:
			w.player.LeaveGround()
		}
	}

	if c.Phase != ContactBegin {
		return
	}
	if c.Obstacle != nil {
		w.handleObstacle(c.Obstacle.Kind)
	}
	if c.Platform != PlatformNone {
		w.handlePlatform(c.Platform, c.Segment)
	}
}

func (w *World) handleObstacle(kind ObstacleKind) {
	switch kind {
	case ObstacleJump:
		w.damage(kind.String())
	case ObstacleSlide:
		if w.player.IsSliding() {
			w.logger.Debug("player is sliding, slide obstacle ignored")
			return
		}
		w.damage(kind.String())
	case ObstaclePit:
		w.pitContact(kind.String())
	}
}

func (w *World) handlePlatform(kind PlatformKind, segment int) {
	switch kind {
	case PlatformNormal:
		w.logger.Debug("stepped on platform", "segment", segment)
	case PlatformPit:
		w.pitContact("pit_platform")
	}
}

// pitContact damages and recovers the player once per recovery.
// Contacts reported while a recovery is pending or running are ignored.
func (w *World) pitContact(cause string) {
	if w.player.IsFrozen() || w.recoverRequested {
		return
	}
	if w.damage(cause) {
		return
	}
	w.RequestRecovery(cause)
}
