package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/snake-fun/internal/config"
	"github.com/vovakirdan/snake-fun/internal/core"
	"github.com/vovakirdan/snake-fun/internal/registry"
)

// hudHeight is the number of screen rows above the grid border.
const hudHeight = 2

// Package-level settings applied to every Reset, set by the CLI before the
// game is created.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom config file used instead of the search path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the speed preset (easy, normal, hard).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// LoadConfig loads a variant's configuration with the difficulty preset applied.
func LoadConfig(gameID string) (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(gameID, configPath)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParseDifficulty(difficultyPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplySnakePreset(&cfg, preset)
	return cfg, nil
}

// Game adapts an Engine to the platform: it maps input frames onto engine
// calls, advances one tick per step and draws the run.
type Game struct {
	id    string
	title string

	cfg    config.SnakeConfig
	engine *Engine
	rng    *rand.Rand
	tick   uint64

	screenW  int
	screenH  int
	tickRate int
	gridW    int
	gridH    int
	originX  int // Screen column of grid cell (0, 0)
	originY  int

	highScore  int
	finalScore int
	over       bool
	tooSmall   bool
	err        error // Why the run could not be created
}

// New creates the Snake Fun variant: three apples and five obstacles.
func New() *Game {
	return &Game{id: "snake", title: "Snake Fun"}
}

// NewClassic creates the minimal variant: one apple and no obstacles.
func NewClassic() *Game {
	return &Game{id: "snake_classic", title: "Snake Classic"}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_classic", func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// SetHighScore sets the best score shown in the HUD and on game over.
func (g *Game) SetHighScore(score int) {
	g.highScore = max(0, score)
}

// HighScore returns the best known score including the current run.
func (g *Game) HighScore() int {
	if g.engine != nil {
		return max(g.highScore, g.engine.Score())
	}
	return g.highScore
}

// RunStats reports the snake length and the ticks advanced by the current run.
func (g *Game) RunStats() (length int, ticks uint64) {
	if g.engine == nil {
		return 0, 0
	}
	return len(g.engine.snake), g.engine.Ticks()
}

// Err returns the configuration error that prevented the last Reset from
// starting a run, or the last input the engine rejected. It is nil otherwise.
func (g *Game) Err() error { return g.err }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.over = false
	g.finalScore = 0
	g.engine = nil
	g.err = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate

	gameCfg, err := LoadConfig(g.id)
	if err != nil {
		gameCfg = config.DefaultFor(g.id)
	}
	g.cfg = gameCfg

	g.gridW, g.gridH = g.gridSize()
	g.layout()
	if g.tooSmall {
		g.err = fmt.Errorf("%w: window %dx%d cannot hold a %dx%d grid",
			ErrConfiguration, g.screenW, g.screenH, g.gridW, g.gridH)
		return
	}

	engine, err := NewEngine(g.params(), g.rng)
	if err != nil {
		g.err = err
		g.tooSmall = true
		return
	}
	g.engine = engine
}

// Resize adapts to a new terminal size. A running game keeps its grid and is
// held while the window cannot show it; a game that never started is rebuilt.
func (g *Game) Resize(w, h int) {
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW, g.screenH = w, h

	if g.engine == nil {
		var seed int64
		if g.rng != nil {
			seed = g.rng.Int63()
		}
		g.Reset(core.RuntimeConfig{
			ScreenW:  w,
			ScreenH:  h,
			TickRate: g.tickRate,
			Seed:     seed,
		})
		return
	}
	g.layout()
}

// gridSize returns the configured grid, fitting the window on zero values.
func (g *Game) gridSize() (int, int) {
	w, h := g.cfg.Grid.Width, g.cfg.Grid.Height
	if w == 0 {
		w = g.screenW - 2
	}
	if h == 0 {
		h = g.screenH - hudHeight - 2
	}
	return max(0, w), max(0, h)
}

// layout centers the grid below the HUD and flags windows that cannot show it.
func (g *Game) layout() {
	boxW, boxH := g.gridW+2, g.gridH+2
	g.tooSmall = g.gridW < 1 || g.gridH < 1 || g.screenW < boxW || g.screenH < boxH+hudHeight
	g.originX = (g.screenW-boxW)/2 + 1
	g.originY = hudHeight + 1
}

func (g *Game) params() Params {
	return Params{
		Width:       g.gridW,
		Height:      g.gridH,
		Apples:      g.cfg.Gameplay.Apples,
		Obstacles:   g.cfg.Gameplay.Obstacles,
		GracePeriod: g.cfg.Gameplay.GracePeriod,
		ApplePoints: g.cfg.Gameplay.ApplePoints,
		StartMargin: g.cfg.Gameplay.StartMargin,
	}
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.over {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if g.engine == nil || g.over || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Directions are applied in press order, so the last valid one wins
	for _, a := range input.Sequence() {
		if a == core.ActionPause {
			g.engine.TogglePause()
			continue
		}
		if d, ok := actionDirection(a); ok {
			if err := g.engine.RequestDirection(d); err != nil {
				g.err = err
			}
		}
	}

	if out := g.engine.Tick(); out.GameOver() {
		g.over = true
		g.finalScore = out.FinalScore
		// Kept across restarts so the next run's HUD shows the new best
		g.highScore = max(g.highScore, out.FinalScore)
	}
	return core.StepResult{State: g.State()}
}

// actionDirection maps a steering action to a direction.
func actionDirection(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return 0, false
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall || g.engine == nil {
		g.renderOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(core.NewRect(g.originX-1, g.originY-1, g.gridW+2, g.gridH+2), core.ColorGray)
	for _, c := range g.engine.obstacles {
		dst.SetColored(g.originX+c.Col, g.originY+c.Row, '#', core.ColorOrange)
	}
	for _, c := range g.engine.apples {
		dst.SetColored(g.originX+c.Col, g.originY+c.Row, '*', core.ColorRed)
	}
	g.renderSnake(dst)

	switch {
	case g.over:
		g.renderOverlay(dst, core.ColorBrightWhite,
			"Game Over",
			fmt.Sprintf("Total Score: %d", g.finalScore),
			fmt.Sprintf("High Score: %d", max(g.highScore, g.finalScore)),
			"R to restart, Q to quit")
	case g.engine.Paused():
		g.renderOverlay(dst, core.ColorWhite, "Game Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	score, lvl := 0, level
	if g.engine != nil {
		score, lvl = g.engine.Score(), g.engine.Level()
	}
	hud := fmt.Sprintf(" %s  Score: %d  Level: %d  High Score: %d", g.title, score, lvl, g.HighScore())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	if g.engine != nil && g.engine.Grace() > 0 && !g.over {
		left := g.cfg.Gameplay.GracePeriod - g.engine.Grace()
		warn := fmt.Sprintf("CRASH! %d ", left)
		dst.DrawTextColored(dst.Width()-len(warn), 0, warn, core.ColorRed)
	}

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderSnake draws the body first so the head stays on top.
func (g *Game) renderSnake(dst *core.Screen) {
	headColor := core.ColorBrightGreen
	if g.engine.Grace() > 0 {
		headColor = core.ColorYellow
	}
	for i := len(g.engine.snake) - 1; i >= 0; i-- {
		c := g.engine.snake[i]
		if i == 0 {
			dst.SetColored(g.originX+c.Col, g.originY+c.Row, '@', headColor)
		} else {
			dst.SetColored(g.originX+c.Col, g.originY+c.Row, 'o', core.ColorGreen)
		}
	}
}

// renderOverlay draws a centered box with one line of text per argument.
func (g *Game) renderOverlay(dst *core.Screen, c core.Color, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	box := core.NewRect(0, 0, maxLen+4, len(lines)*2+1)
	box.X = (dst.Width() - box.W) / 2
	box.Y = (dst.Height() - box.H) / 2

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i*2, l, c)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{GameOver: g.over}
	if g.engine != nil {
		st.Score = g.engine.Score()
		st.Paused = g.engine.Paused()
	}
	return st
}
