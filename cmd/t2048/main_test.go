package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// resetGlobals puts the package-level flag state back to defaults.
func resetGlobals(t *testing.T) {
	t.Helper()
	settings = config.Default()
	logger = newLogger("error")
	flagSeed, flagMoves, flagJSON, flagQuiet = 0, "", false, false
	t.Cleanup(func() {
		for _, name := range []string{"rows", "cols", "target"} {
			simCmd.Flags().Lookup(name).Changed = false
		}
		flagRows, flagCols, flagTarget = 0, 0, 0
	})
}

func TestChoosePreset(t *testing.T) {
	resetGlobals(t)

	p, explicit, err := choosePreset(simCmd, nil)
	if err != nil {
		t.Fatalf("choosePreset() failed: %v", err)
	}
	if explicit || p.ID != registry.DefaultPreset {
		t.Errorf("default = %q explicit=%v", p.ID, explicit)
	}

	p, explicit, err = choosePreset(simCmd, []string{"mini"})
	if err != nil || !explicit || p.ID != "mini" {
		t.Errorf("mini = %q explicit=%v err=%v", p.ID, explicit, err)
	}

	if _, _, err := choosePreset(simCmd, []string{"enormous"}); !errors.Is(err, registry.ErrUnknownPreset) {
		t.Errorf("unknown preset error = %v", err)
	}
}

func TestChoosePresetOverrides(t *testing.T) {
	resetGlobals(t)

	if err := simCmd.Flags().Set("target", "64"); err != nil {
		t.Fatal(err)
	}
	p, explicit, err := choosePreset(simCmd, []string{"mini"})
	if err != nil {
		t.Fatalf("choosePreset() failed: %v", err)
	}
	if !explicit || p.ID != "custom-3x3-64" || p.Config.WinTarget != 64 {
		t.Errorf("override = %+v explicit=%v", p, explicit)
	}

	if err := simCmd.Flags().Set("rows", "11"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := choosePreset(simCmd, nil); !errors.Is(err, game2048.ErrInvalidGridSize) {
		t.Errorf("rows=11 error = %v", err)
	}
}

func TestChoosePresetFromSettings(t *testing.T) {
	resetGlobals(t)
	settings.Game = game2048.Config{Rows: 5, Cols: 5, WinTarget: 1024}

	p, explicit, err := choosePreset(simCmd, nil)
	if err != nil {
		t.Fatalf("choosePreset() failed: %v", err)
	}
	if !explicit || p.ID != "custom-5x5-1024" {
		t.Errorf("settings board = %q explicit=%v", p.ID, explicit)
	}
}

func TestSimulate(t *testing.T) {
	resetGlobals(t)
	flagSeed = 11
	flagMoves = "up,down,left,right"

	var buf bytes.Buffer
	if err := simulate(simCmd, []string{"classic"}, &buf); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"classic (4x4, target 2048)", "1. up", "4. right", "score "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSimulateJSON(t *testing.T) {
	resetGlobals(t)
	flagSeed = 11
	flagMoves = "LR"
	flagJSON = true

	var buf bytes.Buffer
	if err := simulate(simCmd, []string{"classic"}, &buf); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"state": "playing"`) {
		t.Errorf("JSON output missing state:\n%s", buf.String())
	}
}

func TestSimulateSameSeedSameOutput(t *testing.T) {
	resetGlobals(t)
	flagSeed = 99
	flagMoves = "DDRLUURD"

	var a, b bytes.Buffer
	if err := simulate(simCmd, nil, &a); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if err := simulate(simCmd, nil, &b); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if a.String() != b.String() {
		t.Error("same seed and script should print the same game")
	}
}

func TestSimulateInvalidScript(t *testing.T) {
	resetGlobals(t)
	flagMoves = "DXQ"

	var buf bytes.Buffer
	err := simulate(simCmd, nil, &buf)
	if !errors.Is(err, game2048.ErrInvalidDirection) {
		t.Errorf("simulate() error = %v, want ErrInvalidDirection", err)
	}
}

func TestPrintBoard(t *testing.T) {
	var buf bytes.Buffer
	printBoard(&buf, [][]int{{0, 2}, {16, 0}})
	want := "   .  2\n  16  .\n"
	if buf.String() != want {
		t.Errorf("printBoard = %q, want %q", buf.String(), want)
	}
}
