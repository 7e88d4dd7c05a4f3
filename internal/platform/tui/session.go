package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Player string
	Seed   int64
	Width  int
	Height int
	// Preset skips the menu and starts this board right away.
	Preset *registry.Preset
	Logger *log.Logger
}

// SessionModel manages the full flow: menu -> game -> menu, with the
// scoreboard reachable from the menu. It is the top-level model for both
// local play and SSH sessions.
type SessionModel struct {
	store      *storage.Store
	opts       SessionOptions
	screen     sessionScreen
	menu       PresetMenuModel
	game       GameModel
	scoreboard ScoreboardModel
	lastPreset string
	err        error
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, opts SessionOptions) SessionModel {
	m := SessionModel{
		store:      store,
		opts:       opts,
		lastPreset: registry.DefaultPreset,
	}
	m.menu = NewPresetMenuModel(store, opts.Width, opts.Height)

	if opts.Preset != nil {
		m.startGame(*opts.Preset)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(PresetMenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.lastPreset, m.opts.Width, m.opts.Height)
		m.screen = screenScores
		return m, nil

	case m.menu.Selected() != nil:
		m.startGame(*m.menu.Selected())
		return m, nil
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		// Keep advancing a fixed seed across games picked from the menu.
		m.opts.Seed = m.game.NextSeed()
		m.showMenu()
		return m, nil
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.showMenu()
		return m, nil
	}

	return m, cmd
}

func (m *SessionModel) startGame(p registry.Preset) {
	game, err := NewGameModel(p, m.store, GameOptions{
		Seed:   m.opts.Seed,
		Player: m.opts.Player,
		Width:  m.opts.Width,
		Height: m.opts.Height,
		Logger: m.opts.Logger,
	})
	if err != nil {
		m.err = err
		m.showMenu()
		return
	}

	m.err = nil
	m.game = game
	m.lastPreset = p.ID
	m.screen = screenGame
}

func (m *SessionModel) showMenu() {
	m.menu = NewPresetMenuModel(m.store, m.opts.Width, m.opts.Height)
	m.screen = screenMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText(lostStyle.Render(m.err.Error()), m.opts.Width)
	}
	return view
}

// Err returns the last error that kept a game from starting.
func (m SessionModel) Err() error {
	return m.err
}

// Run runs a session in the current terminal until the user quits.
func Run(store *storage.Store, opts SessionOptions) error {
	model := NewSessionModel(store, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(SessionModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
