package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-fun/internal/config"
	"github.com/vovakirdan/snake-fun/internal/core"
	"github.com/vovakirdan/snake-fun/internal/registry"
	"github.com/vovakirdan/snake-fun/internal/storage"
)

// runStats is implemented by games that report details of a finished run.
type runStats interface {
	RunStats() (length int, ticks uint64)
}

// Options carries the collaborators of a game session. Any of them may be nil.
type Options struct {
	Store      *storage.Store
	HighScores *storage.HighScoreFile
	Logger     *log.Logger
}

type phase int

const (
	phaseStart phase = iota
	phasePlaying
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	log        *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	phase      phase
	altScreen  bool
	quitting   bool
	scoreSaved bool // Whether the current game over has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		log:        logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		altScreen:  true,
	}
	m.loadHighScore()
	return m
}

// loadHighScore hands the persisted high score to the game.
func (m Model) loadHighScore() {
	hs, ok := m.game.(registry.HighScorer)
	if !ok {
		return
	}

	best := 0
	if m.opts.HighScores != nil {
		score, err := m.opts.HighScores.Load()
		if err != nil {
			m.log.Warn("cannot read high score", "path", m.opts.HighScores.Path(), "err", err)
		}
		best = score
	}
	if m.opts.Store != nil {
		if score, err := m.opts.Store.HighScore(m.game.ID()); err == nil {
			best = max(best, score)
		}
	}
	hs.SetHighScore(best)
}

// Init initializes the game. Ticking starts once the start screen is dismissed.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.log.Info("game ready", "game", m.game.ID(), "screen", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH), "tps", m.config.TickRate)
	return nil
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
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.phase == phaseStart {
		m.phase = phasePlaying
		m.log.Debug("run started", "game", m.game.ID())
		return m, tickCmd(m.config.TickRate)
	}

	switch action {
	case core.ActionNone:
	case core.ActionFullscreen:
		m.altScreen = !m.altScreen
		if m.altScreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.phase != phasePlaying || m.quitting {
		return m, nil
	}

	restart := m.gameState.GameOver && m.inputFrame.Has(core.ActionRestart)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if restart {
		m.scoreSaved = false
		m.log.Debug("run restarted", "game", m.game.ID())
	}
	if m.gameState.GameOver && !m.scoreSaved {
		m.recordRun()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores a finished run. Storage failures are logged and the game
// goes on without persistence.
func (m Model) recordRun() {
	score := m.gameState.Score
	run := storage.Run{GameID: m.game.ID(), Score: score}
	if rs, ok := m.game.(runStats); ok {
		run.Length, run.Ticks = rs.RunStats()
	}
	m.log.Info("game over", "game", run.GameID, "score", score, "length", run.Length, "ticks", run.Ticks)

	if m.opts.Store != nil && score > 0 {
		if _, err := m.opts.Store.SaveRun(run); err != nil {
			m.log.Warn("cannot save run", "err", err)
		}
	}

	if m.opts.HighScores != nil {
		updated, err := m.opts.HighScores.Record(score)
		if err != nil {
			m.log.Warn("cannot update high score", "path", m.opts.HighScores.Path(), "err", err)
		}
		if updated {
			m.log.Info("new high score", "score", score)
		}
	}
	if hs, ok := m.game.(registry.HighScorer); ok {
		hs.SetHighScore(max(hs.HighScore(), score))
	}
}

// saveScreenshot saves the current screen to ~/.snakefun/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	base, err := config.AppDir()
	if err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(base, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.phase == phaseStart {
		return m.viewStart()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// viewStart renders the start screen.
func (m Model) viewStart() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10")).
		MarginBottom(1).
		Render("SNAKE FUN")
	body := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	lines := []string{
		title,
		dim.Render(m.game.Title()),
		"",
		body.Render("Use arrow keys to move. Press P to pause."),
		"",
		body.Render("Press any key to start..."),
	}
	if hs, ok := m.game.(registry.HighScorer); ok && hs.HighScore() > 0 {
		lines = append(lines, "", dim.Render(fmt.Sprintf("High Score: %d", hs.HighScore())))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, content)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) error {
	model := NewModel(game, opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // F leaves and re-enters it
	)

	_, err := p.Run()
	return err
}
