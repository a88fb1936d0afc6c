package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-fun/internal/core"
	"github.com/vovakirdan/snake-fun/internal/storage"
)

// fakeGame ends the run once it has been stepped overAfter times.
type fakeGame struct {
	steps     int
	overAfter int
	score     int
	high      int
	resets    int
	resized   [2]int
	last      core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake Snake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.steps >= g.overAfter {
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.State()}
	}
	g.steps++
	g.last = in.Clone()
	return core.StepResult{State: g.State()}
}
func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "FAKE")
}
func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.steps >= g.overAfter}
}
func (g *fakeGame) SetHighScore(score int)               { g.high = score }
func (g *fakeGame) HighScore() int                       { return g.high }
func (g *fakeGame) Resize(w, h int)                      { g.resized = [2]int{w, h} }
func (g *fakeGame) RunStats() (length int, ticks uint64) { return 4, uint64(g.steps) }

func newTestModel(t *testing.T, g *fakeGame) (Model, Options) {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.Open(filepath.Join(dir, "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hs, err := storage.NewHighScoreFile(filepath.Join(dir, "high_score.txt"))
	if err != nil {
		t.Fatal(err)
	}

	opts := Options{Store: store, HighScores: hs}
	m := NewModel(g, opts, core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 10, Seed: 1})
	m.Init()
	return m, opts
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelStartScreen(t *testing.T) {
	g := &fakeGame{overAfter: 100}
	m, _ := newTestModel(t, g)

	view := m.View()
	for _, want := range []string{"SNAKE FUN", "Use arrow keys to move. Press P to pause.", "Press any key to start..."} {
		if !strings.Contains(view, want) {
			t.Errorf("start screen is missing %q", want)
		}
	}

	// Ticks before the start do nothing
	m, cmd := update(t, m, TickMsg{})
	if cmd != nil || g.steps != 0 {
		t.Error("ticks should be ignored on the start screen")
	}

	m, cmd = update(t, m, runeKey('x'))
	if m.phase != phasePlaying || cmd == nil {
		t.Fatal("any key should start the game and the clock")
	}
	if !strings.Contains(m.View(), "FAKE") {
		t.Error("playing view should render the game")
	}
}

func TestModelQuitFromStartScreen(t *testing.T) {
	m, _ := newTestModel(t, &fakeGame{overAfter: 100})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.quitting || cmd == nil {
		t.Error("esc should quit from the start screen")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelInputReachesGame(t *testing.T) {
	g := &fakeGame{overAfter: 100}
	m, _ := newTestModel(t, g)
	m, _ = update(t, m, runeKey('x'))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{})

	seq := g.last.Sequence()
	if len(seq) != 2 || seq[0] != core.ActionUp || seq[1] != core.ActionPause {
		t.Errorf("game saw %v, expected [Up Pause]", seq)
	}

	// Frame is cleared after each tick
	update(t, m, TickMsg{})
	if len(g.last.Sequence()) != 0 {
		t.Errorf("stale input delivered: %v", g.last.Sequence())
	}
}

func TestModelRecordsGameOverOnce(t *testing.T) {
	g := &fakeGame{overAfter: 2, score: 70}
	m, opts := newTestModel(t, g)
	m, _ = update(t, m, runeKey('x'))

	for range 5 {
		m, _ = update(t, m, TickMsg{})
	}

	runs, err := opts.Store.TopRuns("fake", 10)
	if err != nil {
		t.Fatalf("TopRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 70 || runs[0].Length != 4 {
		t.Errorf("runs = %+v, expected one run of 70", runs)
	}

	best, err := opts.HighScores.Load()
	if err != nil || best != 70 {
		t.Errorf("high score file = %d, %v; expected 70", best, err)
	}
	if g.high != 70 {
		t.Errorf("game high score = %d, expected 70", g.high)
	}

	// Restart after game over allows the next run to be recorded
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if m.scoreSaved {
		t.Error("restart should clear the saved flag")
	}
	for range 3 {
		m, _ = update(t, m, TickMsg{})
	}
	runs, _ = opts.Store.TopRuns("fake", 10)
	if len(runs) != 2 {
		t.Errorf("expected the second run to be recorded, got %d runs", len(runs))
	}
}

func TestModelLoadsHighScore(t *testing.T) {
	dir := t.TempDir()
	hs, _ := storage.NewHighScoreFile(filepath.Join(dir, "high_score.txt"))
	if err := hs.Save(250); err != nil {
		t.Fatal(err)
	}

	g := &fakeGame{overAfter: 100}
	m := NewModel(g, Options{HighScores: hs}, core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 10})
	if g.high != 250 {
		t.Errorf("game high score = %d, expected 250", g.high)
	}
	if !strings.Contains(m.View(), "High Score: 250") {
		t.Error("start screen should show the high score")
	}
}

func TestModelFullscreenToggle(t *testing.T) {
	m, _ := newTestModel(t, &fakeGame{overAfter: 100})
	m, _ = update(t, m, runeKey('x'))

	m, cmd := update(t, m, runeKey('f'))
	if m.altScreen || cmd == nil {
		t.Error("f should leave the alternate screen")
	}
	m, cmd = update(t, m, runeKey('f'))
	if !m.altScreen || cmd == nil {
		t.Error("second f should re-enter the alternate screen")
	}
}

func TestModelResize(t *testing.T) {
	g := &fakeGame{overAfter: 100}
	m, _ := newTestModel(t, g)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != [2]int{100, 30} {
		t.Errorf("game resized to %v", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorGreen)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output %q is missing %q", out, want)
		}
	}
}
