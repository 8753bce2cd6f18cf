package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

func TestSimulateDeterministic(t *testing.T) {
	logger := log.New(io.Discard)
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}

	sumA, statsA := simulate(runner.NewEndless(), rt, 900, logger)
	sumB, statsB := simulate(runner.NewEndless(), rt, 900, logger)

	if sumA != sumB {
		t.Errorf("summaries differ for the same seed:\n%+v\n%+v", sumA, sumB)
	}
	if statsA != statsB {
		t.Errorf("stats differ for the same seed:\n%+v\n%+v", statsA, statsB)
	}
	if sumA.Seed != 42 {
		t.Errorf("Seed = %d, expected 42", sumA.Seed)
	}
	if sumA.Ticks == 0 || sumA.Distance <= 0 {
		t.Errorf("simulation did not advance: %+v", sumA)
	}
	if statsA.Spawned == 0 {
		t.Error("simulation spawned no segments")
	}
}

func TestSimulateStopsWhenFinished(t *testing.T) {
	logger := log.New(io.Discard)
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

	sum, _ := simulate(runner.NewEndless(), rt, 10, logger)
	if sum.Ticks > 10 {
		t.Errorf("Ticks = %d, expected at most 10", sum.Ticks)
	}
}

func TestNewAutoGame(t *testing.T) {
	for _, id := range []string{"runner", "runner_endless"} {
		g, err := newAutoGame(id)
		if err != nil {
			t.Fatalf("newAutoGame(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
	if _, err := newAutoGame("missing"); err == nil {
		t.Error("newAutoGame(\"missing\") should fail")
	}
}

func TestModeArg(t *testing.T) {
	if got := modeArg(nil); got != "runner" {
		t.Errorf("modeArg(nil) = %q, expected runner", got)
	}
	if got := modeArg([]string{"runner_endless"}); got != "runner_endless" {
		t.Errorf("modeArg() = %q, expected runner_endless", got)
	}
}
