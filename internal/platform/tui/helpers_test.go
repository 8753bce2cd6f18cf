package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

const fakeID = "fake_runner"

func init() {
	registry.Register(fakeID, func() registry.Game { return &fakeGame{} })
}

// fakeGame scores ten points a tick and ends after finishAt ticks.
type fakeGame struct {
	finishAt int
	resets   int
	steps    int
	preset   string
	runtime  core.RuntimeConfig
	state    core.GameState
}

func (g *fakeGame) ID() string    { return fakeID }
func (g *fakeGame) Title() string { return "Fake Runner" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.runtime = cfg
	g.state = core.GameState{Life: 3, Level: 1}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	if g.state.GameOver {
		return core.StepResult{State: g.state}
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if g.state.Paused {
		return core.StepResult{State: g.state}
	}
	g.steps++
	g.state.Score = g.steps * 10
	g.state.Distance = float64(g.steps)
	if g.finishAt > 0 && g.steps >= g.finishAt {
		g.state.GameOver = true
		return core.StepResult{State: g.state, Events: []string{"player_died: pit"}}
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawTextColored(0, 0, "FAKE", core.ColorHUD)
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) RunSummary() registry.RunSummary {
	return registry.RunSummary{
		Level:    g.state.Level,
		Distance: g.state.Distance,
		Score:    g.state.Score,
		Life:     g.state.Life,
		Seed:     g.runtime.Seed,
		Ticks:    uint64(g.steps),
	}
}

func (g *fakeGame) Observe() any { return g.steps }

func (g *fakeGame) SetDifficulty(preset string) { g.preset = preset }

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// update feeds msg to m and asserts the returned model type.
func update[M tea.Model](t *testing.T, m M, msg tea.Msg) (M, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(M)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return out, cmd
}
