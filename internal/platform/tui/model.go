package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/game2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// GameOptions configures a GameModel.
type GameOptions struct {
	// Seed for the tile source. 0 picks a time-based seed on every game.
	Seed int64
	// Player is recorded with saved results.
	Player string
	Width  int
	Height int
	// Logger receives save failures. Nil discards them.
	Logger *log.Logger
}

// GameModel is the Bubble Tea model for one 2048 board.
type GameModel struct {
	preset     registry.Preset
	engine     *game2048.Engine
	opts       GameOptions
	store      *storage.Store
	keys       GameKeyMap
	help       help.Model
	best       int
	status     string
	saved      bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model for the given preset.
func NewGameModel(preset registry.Preset, store *storage.Store, opts GameOptions) (GameModel, error) {
	m := GameModel{
		preset: preset,
		opts:   opts,
		store:  store,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
	}
	m.help.Width = opts.Width

	if err := m.newEngine(); err != nil {
		return GameModel{}, err
	}

	if store != nil {
		if best, err := store.HighScore(preset.ID); err == nil {
			m.best = best
		} else {
			m.logWarn("could not load high score", err)
		}
	}

	return m, nil
}

// newEngine starts a fresh board. A fixed seed advances by one per restart
// so replays stay reproducible without repeating the same board.
func (m *GameModel) newEngine() error {
	cfg := m.preset.Config
	engine, err := game2048.New(&cfg, game2048.NewSource(m.opts.Seed))
	if err != nil {
		return fmt.Errorf("tui: cannot start %s: %w", m.preset.ID, err)
	}
	if m.opts.Seed != 0 {
		m.opts.Seed++
	}
	m.engine = engine
	m.saved = false
	m.status = ""
	return nil
}

// Init initializes the game.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.opts.Width = msg.Width
		m.opts.Height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.engine.IsGameOver() {
			if err := m.newEngine(); err != nil {
				m.status = err.Error()
			}
		}
		return m, nil
	}

	dir, ok := m.keys.Direction(msg)
	if !ok || m.engine.IsGameOver() {
		return m, nil
	}

	if err := m.engine.ApplyMove(dir); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = ""

	if score := m.engine.Score(); score > m.best {
		m.best = score
	}
	if m.engine.IsGameOver() {
		m.saveResult()
	}

	return m, nil
}

// saveResult records the finished game once.
func (m *GameModel) saveResult() {
	if m.saved {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}

	result := storage.ResultFromSnapshot(m.preset.ID, m.opts.Player, m.engine.Snapshot())
	if _, err := m.store.SaveResult(result); err != nil {
		m.logWarn("could not save result", err)
	}
}

func (m GameModel) logWarn(msg string, err error) {
	if m.opts.Logger != nil {
		m.opts.Logger.Warn(msg, "preset", m.preset.ID, "error", err)
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := titleStyle.Render(fmt.Sprintf("2048 · %s", m.preset.Title))
	hud := strings.Join([]string{
		renderStat("SCORE", m.engine.Score()),
		renderStat("BEST", m.best),
		renderStat("TARGET", m.engine.WinTarget()),
	}, "   ")

	b.WriteString("\n")
	b.WriteString(centerText(title, m.opts.Width))
	b.WriteString("\n")
	b.WriteString(centerText(hud, m.opts.Width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(RenderBoard(m.engine.Board(), CellWidth(m.engine.WinTarget())), m.opts.Width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.statusLine(), m.opts.Width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.opts.Width))

	return lipgloss.NewStyle().MaxHeight(max(m.opts.Height, 0)).Render(b.String())
}

// statusLine describes the game state under the board.
func (m GameModel) statusLine() string {
	switch {
	case m.engine.DidPlayerWin():
		return wonStyle.Render(fmt.Sprintf("You reached %d!  r: play again", m.engine.WinTarget()))
	case m.engine.IsGameOver():
		return lostStyle.Render("No moves left.  r: play again")
	case m.status != "":
		return lostStyle.Render(m.status)
	}
	return dimStyle.Render(fmt.Sprintf("Moves: %d  Max: %d", m.engine.Moves(), m.engine.MaxTile()))
}

// Engine exposes the underlying engine for inspection.
func (m GameModel) Engine() *game2048.Engine {
	return m.engine
}

// NextSeed returns the seed the next board will use, or 0 when seeds are
// time based.
func (m GameModel) NextSeed() int64 {
	return m.opts.Seed
}

// Saved reports whether the finished game was recorded.
func (m GameModel) Saved() bool {
	return m.saved
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
