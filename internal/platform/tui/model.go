package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// footerRows is the number of rows below the game reserved for help.
const footerRows = 1

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Publisher receives a world view after every tick.
// Implementations must not block.
type Publisher interface {
	Publish(v any)
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for run events.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPublisher streams observable games to p.
func WithPublisher(p Publisher) Option {
	return func(m *Model) { m.publisher = p }
}

// WithDifficulty selects a difficulty preset for games that support one.
// An empty preset keeps the game's default.
func WithDifficulty(preset string) Option {
	return func(m *Model) {
		if preset == "" {
			return
		}
		if d, ok := m.game.(difficultySetter); ok {
			d.SetDifficulty(preset)
		}
	}
}

type difficultySetter interface {
	SetDifficulty(preset string)
}

// Model is the Bubble Tea model for one game.
// Used directly by `play` and embedded in SessionModel for SSH.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig // Window size, the game gets one row less
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	logger     *log.Logger
	publisher  Publisher
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	recorded   bool // Whether the finished run has been saved
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(m.gameRuntime().ScreenW, m.gameRuntime().ScreenH)
	return m
}

// gameRuntime is the runtime config handed to the game.
func (m Model) gameRuntime() core.RuntimeConfig {
	rt := m.config
	rt.ScreenH = max(rt.ScreenH-footerRows, 1)
	return rt
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameRuntime())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.gameState.Paused || m.gameState.Finished() {
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. A run in progress starts
// over because the spawn trigger depends on the view width.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	rt := m.gameRuntime()
	m.screen.Resize(rt.ScreenW, rt.ScreenH)
	m.help.Width = msg.Width

	if !m.gameState.Finished() {
		m.game.Reset(rt)
		m.gameState = m.game.State()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.Finished() {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameRuntime())
		m.gameState = m.game.State()
		m.recorded = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, ev := range result.Events {
		m.logger.Debug("run event", "game", m.game.ID(), "event", ev)
	}

	if m.gameState.Finished() && !m.recorded {
		m.record()
		m.recorded = true
	}

	if m.publisher != nil {
		if obs, ok := m.game.(registry.Observer); ok {
			m.publisher.Publish(obs.Observe())
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record saves the score and the run summary of a finished run.
func (m Model) record() {
	m.logger.Info("run finished",
		"game", m.game.ID(),
		"score", m.gameState.Score,
		"level", m.gameState.Level,
		"distance", int(m.gameState.Distance),
		"complete", m.gameState.LevelComplete,
	)
	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Warn("cannot save score", "error", err)
		}
	}
	if rr, ok := m.game.(registry.RunReporter); ok {
		if _, err := m.store.SaveRun(storage.RecordFromSummary(m.game.ID(), rr.RunSummary())); err != nil {
			m.logger.Warn("cannot save run", "error", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(m.help.View(m.keys.Keys()))
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
