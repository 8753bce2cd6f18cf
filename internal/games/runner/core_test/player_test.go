package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/games/runner/core"
)

func TestPlayerTransitions(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(p *core.Player)
		act    func(p *core.Player) bool
		wantOK bool
		want   core.PlayerState
	}{
		{"jump from ground", nil, (*core.Player).Jump, true, core.StateAirborne},
		{"jump in air", func(p *core.Player) { p.Jump() }, (*core.Player).Jump, false, core.StateAirborne},
		{"jump while sliding", func(p *core.Player) { p.Slide() }, (*core.Player).Jump, false, core.StateSliding},
		{"jump while frozen", func(p *core.Player) { p.Freeze(1) }, (*core.Player).Jump, false, core.StateFrozen},
		{"slide from ground", nil, (*core.Player).Slide, true, core.StateSliding},
		{"slide in air", func(p *core.Player) { p.Jump() }, (*core.Player).Slide, false, core.StateAirborne},
		{"freeze from air", func(p *core.Player) { p.Jump() }, func(p *core.Player) bool { return p.Freeze(1) }, true, core.StateFrozen},
		{"freeze twice", func(p *core.Player) { p.Freeze(1) }, func(p *core.Player) bool { return p.Freeze(5) }, false, core.StateFrozen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := core.NewPlayer(3, core.V(0, 0), 0.5)
			if tt.setup != nil {
				tt.setup(p)
			}
			if got := tt.act(p); got != tt.wantOK {
				t.Errorf("action returned %v, expected %v", got, tt.wantOK)
			}
			if p.State() != tt.want {
				t.Errorf("State() = %v, expected %v", p.State(), tt.want)
			}
		})
	}
}

func TestPlayerSlideExpires(t *testing.T) {
	p := core.NewPlayer(3, core.V(0, 0), 0.5)
	p.Slide()

	p.Update(0.25)
	if !p.IsSliding() {
		t.Fatal("slide ended early")
	}
	if !p.IsGrounded() {
		t.Error("sliding player should count as grounded")
	}

	p.Update(0.3)
	if p.State() != core.StateGrounded {
		t.Errorf("State() = %v after slide duration, expected grounded", p.State())
	}
}

func TestPlayerFreezeExpires(t *testing.T) {
	p := core.NewPlayer(3, core.V(0, 0), 0.5)
	p.Slide()
	p.Freeze(1)

	if p.IsSliding() {
		t.Error("freeze should cancel the slide")
	}
	p.Update(0.6)
	if !p.IsFrozen() || !almostEqual(p.FreezeRemaining(), 0.4) {
		t.Fatalf("after 0.6s: frozen=%v remaining=%f", p.IsFrozen(), p.FreezeRemaining())
	}
	p.Update(0.5)
	if p.State() != core.StateGrounded {
		t.Errorf("State() = %v after freeze, expected grounded", p.State())
	}
}

func TestPlayerGroundContacts(t *testing.T) {
	p := core.NewPlayer(3, core.V(0, 0), 0.5)

	p.LeaveGround()
	if p.State() != core.StateAirborne {
		t.Errorf("LeaveGround() state = %v, expected airborne", p.State())
	}
	p.Land()
	if p.State() != core.StateGrounded {
		t.Errorf("Land() state = %v, expected grounded", p.State())
	}

	p.Freeze(1)
	p.Land()
	p.LeaveGround()
	if !p.IsFrozen() {
		t.Error("ground contacts should not end a freeze")
	}
}

func TestPlayerDamage(t *testing.T) {
	p := core.NewPlayer(2, core.V(0, 0), 0.5)

	if p.Damage() {
		t.Fatal("first hit should not kill with 2 lives")
	}
	if p.Life() != 1 {
		t.Errorf("Life() = %d, expected 1", p.Life())
	}
	if !p.Damage() {
		t.Fatal("second hit should kill")
	}
	if !p.IsDead() || p.Life() != 0 {
		t.Errorf("dead=%v life=%d, expected dead with 0", p.IsDead(), p.Life())
	}

	if p.Jump() || p.Slide() || p.Freeze(1) {
		t.Error("dead player should not change state")
	}
	if !p.Damage() || p.Life() != 0 {
		t.Error("damaging a dead player should keep it dead at 0")
	}
}

func TestNewPlayerWithoutLife(t *testing.T) {
	p := core.NewPlayer(0, core.V(1, 2), 0.5)
	if !p.IsDead() {
		t.Error("player with no life should start dead")
	}
}
