package core_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/games/runner/core"
)

func TestNewWorldInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.PoolSize = 0
	cfg.Life = 0

	_, err := core.NewWorld(cfg)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("NewWorld() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestNewWorldWithoutTemplatesIsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Templates = nil

	w := newWorld(t, cfg)
	if !w.Disabled() {
		t.Fatal("world without templates should be disabled")
	}

	res := w.Tick(tickDT, core.Input{Jump: true}, nil)
	if res.Tick != 0 || res.Moved != 0 {
		t.Errorf("disabled Tick() = %+v, expected no progress", res)
	}
	if len(res.Events) != 1 || res.Events[0].Type != core.EventConfigError {
		t.Errorf("disabled world events = %v, expected one config error", res.Events)
	}
	if w.Player().State() != core.StateGrounded {
		t.Errorf("disabled world should ignore input, state = %v", w.Player().State())
	}

	snap := w.Snapshot()
	if !snap.Disabled || len(snap.Segments) != 0 {
		t.Errorf("Snapshot() = %+v, expected disabled and empty", snap)
	}
}

func TestWorldInitialFill(t *testing.T) {
	cfg := testConfig()
	w := newWorld(t, cfg, core.WithSeed(2), core.WithViewport(onScreen))

	if w.Frontier() < cfg.SpawnTriggerX {
		t.Errorf("Frontier() = %f after construction, expected >= %f", w.Frontier(), cfg.SpawnTriggerX)
	}
	if w.Queue().Len() == 0 {
		t.Fatal("initial fill placed nothing")
	}
	if w.Queue().Head().Left() != cfg.StartFrontier {
		t.Errorf("first segment left edge = %f, expected %f", w.Queue().Head().Left(), cfg.StartFrontier)
	}
}

// TestWorldLongRunInvariants drives a world for a long time without contacts
// and checks the stream properties after every tick.
func TestWorldLongRunInvariants(t *testing.T) {
	tests := []struct {
		name string
		seed int64
		cfg  func() core.Config
	}{
		{"default", 1, testConfig},
		{"pit heavy", 7, func() core.Config {
			cfg := testConfig()
			cfg.PitChance = 1
			cfg.MinSegmentsBetweenPits = 3
			return cfg
		}},
		{"fast small pool", 13, func() core.Config {
			cfg := testConfig()
			cfg.Speed = 40
			cfg.PoolSize = 24
			return cfg
		}},
		{"spawn offset", 21, func() core.Config {
			cfg := testConfig()
			cfg.SpawnOffsetX = 1.5
			cfg.HeightOffset = 0.5
			return cfg
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg()
			w := newWorld(t, cfg, core.WithSeed(tt.seed), core.WithViewport(onScreen))

			var all []core.Event
			scrolled := w.Frontier() + w.Travelled()

			for i := 0; i < 3000; i++ {
				res := w.Tick(tickDT, core.Input{}, nil)
				all = append(all, res.Events...)

				if res.Dead {
					t.Fatalf("tick %d: player died without contacts", i)
				}

				segs := activeSegments(w)
				if got := w.Pool().ActiveCount(); got != len(segs) {
					t.Fatalf("tick %d: pool active %d != queue length %d", i, got, len(segs))
				}
				if len(segs) > cfg.PoolSize {
					t.Fatalf("tick %d: %d active segments exceed pool size %d", i, len(segs), cfg.PoolSize)
				}

				for j := 1; j < len(segs); j++ {
					a, b := segs[j-1], segs[j]
					if b.Position().X <= a.Position().X {
						t.Fatalf("tick %d: queue out of order at %d", i, j)
					}
					gap := math.Abs(b.Position().X - a.Position().X)
					if gap < (a.Width()+b.Width())/2-1e-9 {
						t.Fatalf("tick %d: segments %d and %d overlap (gap %f)", i, a.ID(), b.ID(), gap)
					}
				}
				for _, s := range segs {
					if s.Position().X < cfg.DespawnX {
						t.Fatalf("tick %d: segment %d left behind at x=%f", i, s.ID(), s.Position().X)
					}
				}

				if w.Frontier() < cfg.SpawnTriggerX {
					t.Fatalf("tick %d: frontier %f below trigger %f", i, w.Frontier(), cfg.SpawnTriggerX)
				}
				now := w.Frontier() + w.Travelled()
				if now < scrolled-1e-6 {
					t.Fatalf("tick %d: frontier moved backwards (%f -> %f)", i, scrolled, now)
				}
				scrolled = now
			}

			since := -1
			for _, e := range all {
				switch e.Type {
				case core.EventSegmentSpawned:
					if since >= 0 {
						since++
					}
				case core.EventPitPlaced:
					if since >= 0 && since < cfg.MinSegmentsBetweenPits {
						t.Errorf("only %d segments between pits, expected >= %d", since, cfg.MinSegmentsBetweenPits)
					}
					since = 0
				case core.EventPoolExhausted:
					t.Errorf("unexpected pool exhaustion")
				}
			}

			st := w.Stats()
			if st.Despawned == 0 {
				t.Error("nothing despawned over a long run")
			}
			if st.Spawned-st.Despawned != st.Active {
				t.Errorf("spawned %d - despawned %d != active %d", st.Spawned, st.Despawned, st.Active)
			}
			if cfg.PitChance == 1 && st.Pits == 0 {
				t.Error("expected pits with pit chance 1")
			}
		})
	}
}

func TestWorldDeterministic(t *testing.T) {
	run := func() []core.SegmentView {
		w := newWorld(t, testConfig(), core.WithSeed(99), core.WithViewport(onScreen))
		for i := 0; i < 600; i++ {
			w.Tick(tickDT, core.Input{}, nil)
		}
		return w.Snapshot().Segments
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("segment counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Errorf("segment %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestWorldLevelComplete(t *testing.T) {
	cfg := testConfig()
	cfg.LevelDistance = 50

	w := newWorld(t, cfg, core.WithViewport(onScreen))

	var done core.TickResult
	completed := false
	for i := 0; i < 1000 && !completed; i++ {
		done = w.Tick(tickDT, core.Input{}, nil)
		completed = done.LevelComplete
	}
	if !completed {
		t.Fatal("level never completed")
	}
	if w.Travelled() <= cfg.LevelDistance {
		t.Errorf("Travelled() = %f, expected > %f", w.Travelled(), cfg.LevelDistance)
	}

	sawEvent := false
	for _, e := range done.Events {
		if e.Type == core.EventLevelComplete {
			sawEvent = true
		}
	}
	if !sawEvent {
		t.Error("expected a level complete event on the completing tick")
	}

	after := w.Tick(tickDT, core.Input{}, nil)
	if after.Tick != done.Tick || after.Moved != 0 {
		t.Errorf("Tick() after completion = %+v, expected no progress", after)
	}
}

// offScreenRight reports anything past x=100 as off the right edge.
var offScreenRight = core.ViewportFunc(func(p core.Vec2) core.ViewportPoint {
	if p.X > 100 {
		return core.ViewportPoint{X: 2.5, Y: 0.5, Z: 1}
	}
	return core.ViewportPoint{X: 0.5, Y: 0.5, Z: 1}
})

func TestWorldOffScreenRecovery(t *testing.T) {
	cfg := testConfig()
	w := newWorld(t, cfg, core.WithSeed(4), core.WithViewport(offScreenRight))

	w.Player().SetPosition(core.V(500, 1))
	res := w.Tick(tickDT, core.Input{}, nil)

	if res.Life != cfg.Life-1 {
		t.Errorf("Life = %d, expected %d", res.Life, cfg.Life-1)
	}
	if res.State != core.StateFrozen {
		t.Errorf("State = %v, expected frozen", res.State)
	}
	if res.Moved != 0 {
		t.Errorf("Moved = %f during recovery, expected 0", res.Moved)
	}

	pos := w.Player().Position()
	onAnchor := false
	w.Pool().ForEachActive(func(s *core.Segment) {
		if s.RefreshAnchor() == pos {
			onAnchor = true
		}
	})
	if !onAnchor {
		t.Errorf("player at %v is not on any refresh anchor", pos)
	}

	var damaged, recovered int
	for _, e := range res.Events {
		switch e.Type {
		case core.EventPlayerDamaged:
			damaged++
			if e.Cause != "offscreen" {
				t.Errorf("damage cause = %q, expected offscreen", e.Cause)
			}
		case core.EventPlayerRecovered:
			recovered++
		}
	}
	if damaged != 1 || recovered != 1 {
		t.Errorf("damaged=%d recovered=%d, expected one of each", damaged, recovered)
	}

	resumed := false
	for i := 0; i < 90; i++ {
		res = w.Tick(tickDT, core.Input{}, nil)
		if res.State == core.StateFrozen {
			if res.Moved != 0 {
				t.Fatalf("tick %d: scrolled %f while frozen", i, res.Moved)
			}
			continue
		}
		if res.Moved > 0 {
			resumed = true
			break
		}
	}
	if !resumed {
		t.Error("world did not resume after the recovery freeze")
	}
	if w.Player().Life() != cfg.Life-1 {
		t.Errorf("Life = %d after recovery, expected %d", w.Player().Life(), cfg.Life-1)
	}
}

func TestWorldOffScreenDeath(t *testing.T) {
	cfg := testConfig()
	cfg.Life = 1
	w := newWorld(t, cfg, core.WithViewport(offScreenRight))

	w.Player().SetPosition(core.V(500, 1))
	res := w.Tick(tickDT, core.Input{}, nil)
	if !res.Dead || res.State != core.StateDead {
		t.Fatalf("Tick() = %+v, expected dead", res)
	}

	for _, e := range res.Events {
		if e.Type == core.EventPlayerRecovered {
			t.Error("dead player should not be recovered")
		}
	}

	again := w.Tick(tickDT, core.Input{}, nil)
	if again.Tick != res.Tick {
		t.Errorf("Tick() after death advanced to %d", again.Tick)
	}
}

func TestWorldSegmentLookup(t *testing.T) {
	cfg := testConfig()
	w := newWorld(t, cfg, core.WithViewport(onScreen))

	cur, ok := w.CurrentSegment()
	if !ok {
		t.Fatalf("CurrentSegment() absent for player at %v", w.Player().Position())
	}
	x := w.Player().Position().X
	if x < cur.Left() || x > cur.Right() {
		t.Errorf("current segment [%f, %f] does not contain x=%f", cur.Left(), cur.Right(), x)
	}

	next, ok := w.NextSegment()
	if !ok {
		t.Fatal("NextSegment() absent")
	}
	if next.Position().X <= cur.Position().X {
		t.Errorf("next segment at %f is not right of current %f", next.Position().X, cur.Position().X)
	}

	w.Player().SetPosition(core.V(-1000, 0))
	if _, ok := w.NextSegment(); ok {
		t.Error("NextSegment() for a player over nothing should be absent")
	}
}

func TestWorldSetSpeed(t *testing.T) {
	w := newWorld(t, testConfig(), core.WithViewport(onScreen))

	w.SetSpeed(30)
	res := w.Tick(0.5, core.Input{}, nil)
	if !almostEqual(res.Moved, 15) {
		t.Errorf("Moved = %f, expected 15", res.Moved)
	}

	w.SetSpeed(-5)
	if w.Speed() != 0 {
		t.Errorf("Speed() = %f after negative set, expected 0", w.Speed())
	}
}

func TestSnapshotJSON(t *testing.T) {
	cfg := testConfig()
	cfg.ObstacleRate = 1
	w := newWorld(t, cfg, core.WithViewport(onScreen))
	for i := 0; i < 120; i++ {
		w.Tick(tickDT, core.Input{}, nil)
	}

	snap := w.Snapshot()
	if len(snap.Segments) != w.Queue().Len() {
		t.Fatalf("Snapshot() has %d segments, queue has %d", len(snap.Segments), w.Queue().Len())
	}
	if snap.Phase != "steady" {
		t.Errorf("Phase = %q, expected steady", snap.Phase)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	for _, key := range []string{"tick", "phase", "frontier", "life", "player", "segments"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("snapshot JSON missing %q", key)
		}
	}
}
