package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cuhuuhoang/tetrix/internal/config"
	"github.com/cuhuuhoang/tetrix/internal/core"
	"github.com/cuhuuhoang/tetrix/internal/game"
	"github.com/cuhuuhoang/tetrix/internal/storage"
)

// Model is the Bubble Tea model for a single play session.
type Model struct {
	game       *game.Game
	screen     *core.Screen
	store      *storage.Store
	appConfig  config.Config
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the game.
func NewModel(g *game.Game, store *storage.Store, appCfg config.Config, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		appConfig:  appCfg,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
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
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		return m.quit()
	}
	return m, nil
}

// quit exits the program, autosaving the session first if it is still live.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.store != nil && m.appConfig.Session.Autosave && m.game.Resumable() {
		//nolint:errcheck // Best-effort save on the way out
		m.store.SaveSession(m.appConfig.Session.Slot, m.game.Snapshot())
	}
	return m, tea.Quit
}

// handleResize processes window resize events. The session survives a
// resize: current state is snapshotted and restored at the new dimensions.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	snap := m.game.Snapshot()
	m.game.SetResume(&snap)
	m.game.Reset(m.config)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once), and drop the session save: a finished
	// game is not resumable.
	if m.gameState.GameOver && !m.scoreSaved {
		if m.store != nil {
			if m.gameState.Score > 0 {
				//nolint:errcheck // Best-effort save, game continues regardless
				m.store.SaveScore(m.gameState.Score, m.gameState.Lines, m.gameState.Level)
			}
			//nolint:errcheck
			m.store.DeleteSession(m.appConfig.Session.Slot)
		}
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(g *game.Game, store *storage.Store, appCfg config.Config, cfg core.RuntimeConfig) error {
	model := NewModel(g, store, appCfg, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
