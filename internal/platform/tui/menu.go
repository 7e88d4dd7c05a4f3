package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// PresetMenuModel is the Bubble Tea model for the preset picker.
type PresetMenuModel struct {
	presets        []registry.Preset
	best           map[string]int
	cursor         int
	width          int
	height         int
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *registry.Preset
	openScoreboard bool
}

// NewPresetMenuModel creates a new menu model. The cursor starts on the
// default preset.
func NewPresetMenuModel(store *storage.Store, width, height int) PresetMenuModel {
	presets := registry.List()
	best := make(map[string]int, len(presets))
	cursor := 0

	for i, p := range presets {
		if p.ID == registry.DefaultPreset {
			cursor = i
		}
		if store == nil {
			continue
		}
		if score, err := store.HighScore(p.ID); err == nil && score > 0 {
			best[p.ID] = score
		}
	}

	h := help.New()
	h.Width = width

	return PresetMenuModel{
		presets: presets,
		best:    best,
		cursor:  cursor,
		width:   width,
		height:  height,
		keys:    DefaultMenuKeyMap(),
		help:    h,
	}
}

// Init initializes the menu model.
func (m PresetMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m PresetMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m PresetMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.presets) > 0 {
			selected := m.presets[m.cursor]
			m.selected = &selected
		}

	case key.Matches(msg, m.keys.Scoreboard):
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m PresetMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Pick a board"), m.width))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, p := range m.presets {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		line := fmt.Sprintf("%s%-8s %2dx%-2d  to %-6d", cursor, p.Title, p.Config.Rows, p.Config.Cols, p.Config.WinTarget)
		if best, ok := m.best[p.ID]; ok {
			line += fmt.Sprintf("  best %d", best)
		}
		list.WriteString(style.Render(line))
		list.WriteString("\n")
	}
	b.WriteString(centerBlock(list.String(), m.width))

	if len(m.presets) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(m.presets[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected preset, or nil if none selected.
func (m PresetMenuModel) Selected() *registry.Preset {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PresetMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m PresetMenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
