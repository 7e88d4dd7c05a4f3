package tui

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/game2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func mustPreset(t *testing.T, id string) registry.Preset {
	t.Helper()
	p, err := registry.Get(id)
	if err != nil {
		t.Fatalf("registry.Get(%q) failed: %v", id, err)
	}
	return p
}

func sendKey(t *testing.T, m tea.Model, msg tea.KeyMsg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

var moveKeys = []tea.KeyMsg{
	{Type: tea.KeyUp},
	{Type: tea.KeyRight},
	{Type: tea.KeyDown},
	{Type: tea.KeyLeft},
}

func TestGameModelPlaysToEndAndSavesOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	gm, err := NewGameModel(mustPreset(t, "tiny"), store, GameOptions{Seed: 7, Player: "tester", Width: 80, Height: 24})
	if err != nil {
		t.Fatalf("NewGameModel failed: %v", err)
	}

	var m tea.Model = gm
	for i := 0; i < 1000 && !m.(GameModel).Engine().IsGameOver(); i++ {
		m = sendKey(t, m, moveKeys[i%len(moveKeys)])
	}

	gm = m.(GameModel)
	if !gm.Engine().IsGameOver() {
		t.Fatal("2x2 game should end within 1000 key presses")
	}
	if !gm.Saved() {
		t.Error("finished game should be saved")
	}

	// Further moves are ignored and do not save again.
	m = sendKey(t, m, moveKeys[0])
	m = sendKey(t, m, moveKeys[1])

	scores, err := store.TopScores("tiny", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected exactly 1 saved result, got %d", len(scores))
	}
	if scores[0].Player != "tester" || scores[0].Score != gm.Engine().Score() {
		t.Errorf("saved result = %+v", scores[0])
	}

	view := m.View()
	if !strings.Contains(view, "play again") {
		t.Errorf("game over view should offer a restart:\n%s", view)
	}

	// Restart starts a fresh board.
	m = sendKey(t, m, runeKey('r'))
	gm = m.(GameModel)
	if gm.Engine().IsGameOver() || gm.Saved() {
		t.Error("restart should start a new unsaved game")
	}
	if gm.Engine().Score() != 0 {
		t.Errorf("restart score = %d, want 0", gm.Engine().Score())
	}
}

func TestGameModelRestartIgnoredWhilePlaying(t *testing.T) {
	gm, err := NewGameModel(mustPreset(t, "classic"), nil, GameOptions{Seed: 3})
	if err != nil {
		t.Fatalf("NewGameModel failed: %v", err)
	}
	before := gm.Engine()

	m := sendKey(t, gm, runeKey('r'))
	if m.(GameModel).Engine() != before {
		t.Error("r should not restart a game in progress")
	}
}

func TestGameModelQuitAndBack(t *testing.T) {
	gm, err := NewGameModel(mustPreset(t, "classic"), nil, GameOptions{Seed: 1})
	if err != nil {
		t.Fatalf("NewGameModel failed: %v", err)
	}

	next, cmd := gm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(GameModel).BackToMenu() || cmd != nil {
		t.Error("esc should return to the menu without quitting")
	}

	next, cmd = gm.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestGameModelInvalidPreset(t *testing.T) {
	bad := registry.Preset{ID: "bad", Config: game2048.Config{Rows: 1, Cols: 4, WinTarget: 2048}}
	if _, err := NewGameModel(bad, nil, GameOptions{}); err == nil {
		t.Error("NewGameModel should reject an invalid config")
	}
}

func TestGameModelView(t *testing.T) {
	gm, err := NewGameModel(mustPreset(t, "mini"), nil, GameOptions{Seed: 5, Width: 80})
	if err != nil {
		t.Fatalf("NewGameModel failed: %v", err)
	}

	view := gm.View()
	for _, want := range []string{"Mini", "SCORE", "BEST", "TARGET", "256"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSessionFlow(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, SessionOptions{Seed: 1, Width: 100, Height: 30})

	// Tab opens the scoreboard, esc returns to the menu.
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("esc should return to the menu")
	}

	// Enter starts the default preset.
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	s := m.(SessionModel)
	if s.screen != screenGame {
		t.Fatal("enter should start a game")
	}
	if s.lastPreset != registry.DefaultPreset {
		t.Errorf("started preset %q, want %q", s.lastPreset, registry.DefaultPreset)
	}

	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("esc in game should return to the menu")
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
}

func TestSessionStartsWithPreset(t *testing.T) {
	p := mustPreset(t, "wide")
	s := NewSessionModel(nil, SessionOptions{Seed: 2, Preset: &p})
	if s.screen != screenGame {
		t.Fatal("a session with a preset should start in the game")
	}
	if rows, cols := s.game.Engine().Rows(), s.game.Engine().Cols(); rows != 3 || cols != 8 {
		t.Errorf("board = %dx%d, want 3x8", rows, cols)
	}
}

func TestSessionAdvancesSeedBetweenGames(t *testing.T) {
	classic := mustPreset(t, registry.DefaultPreset)
	boardFor := func(seed int64) [][]int {
		cfg := classic.Config
		e, err := game2048.New(&cfg, game2048.NewSource(seed))
		if err != nil {
			t.Fatalf("game2048.New failed: %v", err)
		}
		return e.Board()
	}

	var m tea.Model = NewSessionModel(nil, SessionOptions{Seed: 7, Width: 100, Height: 30})

	for _, seed := range []int64{7, 8, 9} {
		m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		s := m.(SessionModel)
		if s.screen != screenGame {
			t.Fatal("enter should start a game")
		}
		if got, want := s.game.Engine().Board(), boardFor(seed); !reflect.DeepEqual(got, want) {
			t.Errorf("game with seed %d: board = %v, want %v", seed, got, want)
		}
		m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	}
}
