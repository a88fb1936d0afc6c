package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Level     int
	Score     int
	SnakeLen  int
	Head      Cell
	Dir       Direction
	Apples    []Cell
	Obstacles []Cell
	Grace     int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{Tick: g.tick, Level: level, State: StatePlaying}

	switch {
	case g.tooSmall || g.engine == nil:
		snap.State = StatePausedSmall
	case g.over:
		snap.State = StateGameOver
	case g.engine.Paused():
		snap.State = StatePaused
	}

	if g.engine == nil {
		return snap
	}
	snap.Score = g.engine.Score()
	snap.SnakeLen = len(g.engine.snake)
	snap.Head = g.engine.Head()
	snap.Dir = g.engine.Direction()
	snap.Apples = g.engine.Apples()
	snap.Obstacles = g.engine.Obstacles()
	snap.Grace = g.engine.Grace()
	return snap
}
