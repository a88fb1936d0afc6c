package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-fun/internal/registry"
	"github.com/vovakirdan/snake-fun/internal/storage"
)

func TestScoreboardShowsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.Run{
		{GameID: "snake", Score: 40, Length: 7, Ticks: 300},
		{GameID: "snake", Score: 90, Length: 12, Ticks: 800},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 60, 24)
	m.games = []registry.GameInfo{{ID: "snake", Title: "Snake Fun"}}
	m.loadRuns("snake")

	if len(m.runs) != 2 || m.runs[0].Score != 90 {
		t.Fatalf("runs = %+v, expected best run first", m.runs)
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES - Snake Fun", "Runs: 2", "Best: 90", "Longest snake: 12"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard is missing %q", want)
		}
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 24)
	m.games = []registry.GameInfo{{ID: "snake", Title: "Snake Fun"}}
	m.loadRuns("snake")

	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("empty scoreboard message missing")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 24)

	next, cmd := m.Update(runeKey('b'))
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("b should go back to the menu")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(ScoreboardModel).IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
}

func TestScoreboardCyclesVariants(t *testing.T) {
	m := NewScoreboardModel(nil, 90, 24)
	m.games = []registry.GameInfo{
		{ID: "snake", Title: "Snake Fun"},
		{ID: "snake_classic", Title: "Snake Classic"},
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.selected != 1 {
		t.Errorf("cursor = %d, expected 1", m.selected)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.selected != 0 {
		t.Errorf("cursor should wrap to 0, got %d", m.selected)
	}
}

func TestScoreboardNarrowTabs(t *testing.T) {
	m := NewScoreboardModel(nil, 20, 24)
	m.games = []registry.GameInfo{
		{ID: "snake", Title: "Snake Fun"},
		{ID: "snake_classic", Title: "Snake Classic"},
	}

	if tabs := m.tabs(); !strings.Contains(tabs, "< Snake Fun >") {
		t.Errorf("narrow scoreboard should show only the current variant, got %q", tabs)
	}

	m.width = 120
	if tabs := m.tabs(); !strings.Contains(tabs, "Snake Classic") {
		t.Errorf("wide scoreboard should list every variant, got %q", tabs)
	}
}
