package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/games/runner/core"
)

func TestNewPoolErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := core.NewPool(nil, 5, rng); !errors.Is(err, core.ErrNoTemplates) {
		t.Errorf("NewPool(nil) error = %v, expected ErrNoTemplates", err)
	}

	templates := testConfig().Templates
	if _, err := core.NewPool(templates, 0, rng); !errors.Is(err, core.ErrInvalidPoolSize) {
		t.Errorf("NewPool(size 0) error = %v, expected ErrInvalidPoolSize", err)
	}
}

func TestPoolWeightedTemplates(t *testing.T) {
	templates := []core.SegmentTemplate{
		{Name: "common", Width: 4, Weight: 1000, Kind: core.PlatformNormal},
		{Name: "rare", Width: 4, Weight: 0.0001, Kind: core.PlatformNormal},
	}
	pool, err := core.NewPool(templates, 50, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewPool() failed: %v", err)
	}

	common := 0
	for i := 0; i < pool.Len(); i++ {
		if pool.Segment(i).Name() == "common" {
			common++
		}
		if pool.Segment(i).ID() != i {
			t.Errorf("Segment(%d).ID() = %d", i, pool.Segment(i).ID())
		}
	}
	if common < 45 {
		t.Errorf("expected weighted pick to favour common template, got %d/50", common)
	}
}

func TestPoolExhaustion(t *testing.T) {
	cfg := testConfig()
	cfg.PoolSize = 5
	cfg.SpawnTriggerX = 1000 // never satisfied by 5 segments
	cfg.PitChance = 0

	rng := rand.New(rand.NewSource(3))
	pool, err := core.NewPool(cfg.Templates, cfg.PoolSize, rng)
	if err != nil {
		t.Fatalf("NewPool() failed: %v", err)
	}
	queue := core.NewActiveQueue(pool.Len())
	var events core.EventQueue
	planner := core.NewPlanner(cfg, pool, queue, rng, &events, log.New(discard{}))

	for i := 0; i < 5; i++ {
		if got := planner.Step(); got != core.StepSegment {
			t.Fatalf("Step() %d = %v, expected StepSegment", i, got)
		}
	}
	if pool.ActiveCount() != 5 {
		t.Fatalf("ActiveCount() = %d, expected 5", pool.ActiveCount())
	}

	if s := pool.Acquire(); s != nil {
		t.Errorf("Acquire() on full pool = slot %d, expected nil", s.ID())
	}
	if got := planner.Step(); got != core.StepExhausted {
		t.Errorf("Step() on full pool = %v, expected StepExhausted", got)
	}
	if planner.Frontier() != cfg.SpawnTriggerX+1 {
		t.Errorf("Frontier() = %f, expected %f", planner.Frontier(), cfg.SpawnTriggerX+1)
	}
	if pool.ActiveCount() != pool.Len() {
		t.Errorf("active count changed on exhaustion: %d", pool.ActiveCount())
	}

	sawExhausted := false
	for _, e := range events.Drain() {
		if e.Type == core.EventPoolExhausted {
			sawExhausted = true
		}
	}
	if !sawExhausted {
		t.Error("expected a pool exhausted event")
	}
}

func TestPoolReleaseClearsSegment(t *testing.T) {
	cfg := testConfig()
	cfg.ObstacleRate = 1
	cfg.PrepareCount = 0
	cfg.PitChance = 0

	rng := rand.New(rand.NewSource(11))
	pool, _ := core.NewPool(cfg.Templates, 4, rng)
	queue := core.NewActiveQueue(pool.Len())
	var events core.EventQueue
	planner := core.NewPlanner(cfg, pool, queue, rng, &events, log.New(discard{}))

	// First step is still in the runway; the second one rolls obstacles.
	planner.Step()
	planner.Step()

	seg := queue.Tail()
	if seg.Obstacle() == nil {
		t.Fatal("expected an obstacle with obstacle rate 1")
	}

	pool.Release(seg)
	if seg.Active() {
		t.Error("released segment should be inactive")
	}
	if seg.Obstacle() != nil {
		t.Error("released segment should drop its obstacle")
	}
	if seg.Position() != (core.Vec2{}) {
		t.Errorf("released segment position = %v, expected zero", seg.Position())
	}
	if pool.ActiveCount() != 1 {
		t.Errorf("ActiveCount() = %d, expected 1", pool.ActiveCount())
	}
}

func TestPoolAcquireSpreadsLoad(t *testing.T) {
	pool, _ := core.NewPool(testConfig().Templates, 16, rand.New(rand.NewSource(5)))

	seen := make(map[int]bool)
	for i := 0; i < 50; i++ {
		seen[pool.Acquire().ID()] = true
	}
	if len(seen) < 4 {
		t.Errorf("Acquire() returned only %d distinct slots over 50 calls", len(seen))
	}
}

func TestAcquireFreshPrefersUnusedNormal(t *testing.T) {
	templates := []core.SegmentTemplate{
		{Name: "spikes", Width: 4, Kind: core.PlatformPit},
	}
	pool, _ := core.NewPool(templates, 3, rand.New(rand.NewSource(1)))
	if s := pool.AcquireFresh(); s != nil {
		t.Errorf("AcquireFresh() returned pit platform %d, expected nil", s.ID())
	}
}

// discard is an io.Writer that drops log output.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestPoolActiveCountMatchesSegments(t *testing.T) {
	pool, q := spawnN(t, 6)

	count := func() int {
		n := 0
		pool.ForEachActive(func(*core.Segment) { n++ })
		return n
	}
	if pool.ActiveCount() != count() || count() != q.Len() {
		t.Fatalf("ActiveCount() = %d, active segments %d, queued %d", pool.ActiveCount(), count(), q.Len())
	}

	for i := 0; i < 3; i++ {
		pool.Release(q.Dequeue())
	}
	pool.Release(nil)
	if pool.ActiveCount() != 3 || count() != 3 {
		t.Errorf("after releases ActiveCount() = %d, active segments %d, expected 3", pool.ActiveCount(), count())
	}
}
