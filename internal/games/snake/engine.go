package snake

import (
	"errors"
	"fmt"
)

// Snake Fun gameplay defaults.
const (
	DefaultGracePeriod = 30 // Collided ticks tolerated before the run ends
	DefaultApplePoints = 10
	DefaultStartMargin = 5 // Minimum distance of the starting cell from the border
)

// level is shown in the HUD; there is no level progression.
const level = 1

var (
	// ErrConfiguration is returned when the grid cannot host a run.
	ErrConfiguration = errors.New("snake: invalid configuration")

	// ErrInvalidDirection is returned for direction values outside the enum.
	ErrInvalidDirection = errors.New("snake: invalid direction")
)

// placementAttempts bounds random sampling before falling back to a scan.
const placementAttempts = 64

// Cell is a grid coordinate.
type Cell struct {
	Col, Row int
}

// Step returns the neighbouring cell in the given direction.
func (c Cell) Step(d Direction) Cell {
	switch d {
	case DirUp:
		return Cell{Col: c.Col, Row: c.Row - 1}
	case DirDown:
		return Cell{Col: c.Col, Row: c.Row + 1}
	case DirLeft:
		return Cell{Col: c.Col - 1, Row: c.Row}
	case DirRight:
		return Cell{Col: c.Col + 1, Row: c.Row}
	}
	return c
}

// Rand is the random source used for placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Params configures a run.
type Params struct {
	Width       int
	Height      int
	Apples      int
	Obstacles   int
	GracePeriod int
	ApplePoints int
	StartMargin int
}

// DefaultParams returns the extended variant on the given grid:
// three apples, five obstacles and a 30 tick grace period.
func DefaultParams(width, height int) Params {
	return Params{
		Width:       width,
		Height:      height,
		Apples:      3,
		Obstacles:   5,
		GracePeriod: DefaultGracePeriod,
		ApplePoints: DefaultApplePoints,
		StartMargin: DefaultStartMargin,
	}
}

// Validate checks that a run can be initialized with these parameters.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: grid %dx%d has no cells", ErrConfiguration, p.Width, p.Height)
	case p.Apples < 0 || p.Obstacles < 0:
		return fmt.Errorf("%w: negative apple (%d) or obstacle (%d) count", ErrConfiguration, p.Apples, p.Obstacles)
	case p.GracePeriod < 1:
		return fmt.Errorf("%w: grace period must be at least 1 tick, got %d", ErrConfiguration, p.GracePeriod)
	case p.ApplePoints < 0:
		return fmt.Errorf("%w: apple points must not be negative, got %d", ErrConfiguration, p.ApplePoints)
	case p.StartMargin < 0:
		return fmt.Errorf("%w: start margin must not be negative, got %d", ErrConfiguration, p.StartMargin)
	}

	need := 1 + p.Apples + p.Obstacles
	if have := p.Width * p.Height; have < need {
		return fmt.Errorf("%w: grid %dx%d has %d cells, need %d for snake, apples and obstacles",
			ErrConfiguration, p.Width, p.Height, have, need)
	}
	return nil
}

// RunState is the lifecycle state of a run.
type RunState int

const (
	RunPlaying RunState = iota
	RunPaused
	RunEnded
)

func (s RunState) String() string {
	switch s {
	case RunPlaying:
		return "playing"
	case RunPaused:
		return "paused"
	case RunEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// OutcomeKind tells whether a tick left the run going or finished it.
type OutcomeKind int

const (
	OutcomeContinue OutcomeKind = iota
	OutcomeGameOver
)

// Outcome is the result of one tick.
// State is set for Continue, FinalScore for GameOver.
type Outcome struct {
	Kind       OutcomeKind
	State      State
	FinalScore int
}

// GameOver reports whether the outcome ended the run.
func (o Outcome) GameOver() bool {
	return o.Kind == OutcomeGameOver
}

// State is a read-only copy of the run for rendering.
type State struct {
	Snake     []Cell // Head first
	Apples    []Cell
	Obstacles []Cell
	Direction Direction
	Score     int
	Grace     int
	Growth    int
	Run       RunState
}

// Engine owns all state of a single run. It is not safe for concurrent use;
// the frame loop is its only caller.
//
// Body and obstacle membership use maps keyed by Cell, so the per-tick
// collision check is O(1) regardless of snake length.
type Engine struct {
	params Params
	rng    Rand

	snake     []Cell // Head at index 0
	body      map[Cell]struct{}
	apples    []Cell
	appleSet  map[Cell]struct{}
	obstacles []Cell
	blocked   map[Cell]struct{}

	direction Direction
	pending   Direction

	score  int
	growth int
	grace  int
	run    RunState
	ticks  uint64
}

// NewEngine initializes a run. It fails with ErrConfiguration, producing no
// engine, when the grid cannot host the snake, apples and obstacles.
func NewEngine(p Params, rng Rand) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrConfiguration)
	}

	e := &Engine{
		params:    p,
		rng:       rng,
		body:      make(map[Cell]struct{}),
		appleSet:  make(map[Cell]struct{}, p.Apples),
		blocked:   make(map[Cell]struct{}, p.Obstacles),
		direction: DirRight,
		pending:   DirRight,
		run:       RunPlaying,
	}

	start := e.startCell()
	e.snake = []Cell{start}
	e.body[start] = struct{}{}

	for range p.Apples {
		c, ok := e.freeCell(nil)
		if !ok {
			return nil, fmt.Errorf("%w: no free cell for apple", ErrConfiguration)
		}
		e.addApple(c)
	}

	e.obstacles = make([]Cell, 0, p.Obstacles)
	for range p.Obstacles {
		c, ok := e.freeCell(nil)
		if !ok {
			return nil, fmt.Errorf("%w: no free cell for obstacle", ErrConfiguration)
		}
		e.obstacles = append(e.obstacles, c)
		e.blocked[c] = struct{}{}
	}

	return e, nil
}

// startCell picks the snake's first cell away from the border.
// The margin shrinks on grids too small to honour it.
func (e *Engine) startCell() Cell {
	mx := min(e.params.StartMargin, (e.params.Width-1)/2)
	my := min(e.params.StartMargin, (e.params.Height-1)/2)
	return Cell{
		Col: mx + e.rng.Intn(e.params.Width-2*mx),
		Row: my + e.rng.Intn(e.params.Height-2*my),
	}
}

// freeCell samples a cell not occupied by the snake, an apple, an obstacle
// or the extra cell. After placementAttempts misses it scans the grid.
func (e *Engine) freeCell(extra *Cell) (Cell, bool) {
	for range placementAttempts {
		c := Cell{Col: e.rng.Intn(e.params.Width), Row: e.rng.Intn(e.params.Height)}
		if e.isFree(c, extra) {
			return c, true
		}
	}

	var free []Cell
	for row := 0; row < e.params.Height; row++ {
		for col := 0; col < e.params.Width; col++ {
			if c := (Cell{Col: col, Row: row}); e.isFree(c, extra) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[e.rng.Intn(len(free))], true
}

func (e *Engine) isFree(c Cell, extra *Cell) bool {
	if extra != nil && c == *extra {
		return false
	}
	if _, ok := e.body[c]; ok {
		return false
	}
	if _, ok := e.appleSet[c]; ok {
		return false
	}
	_, ok := e.blocked[c]
	return !ok
}

func (e *Engine) addApple(c Cell) {
	e.apples = append(e.apples, c)
	e.appleSet[c] = struct{}{}
}

func (e *Engine) removeApple(c Cell) {
	delete(e.appleSet, c)
	for i, a := range e.apples {
		if a == c {
			e.apples = append(e.apples[:i], e.apples[i+1:]...)
			return
		}
	}
}

// RequestDirection sets the direction applied on the next tick.
// The exact opposite of the current direction is ignored; later calls
// overwrite earlier ones.
func (e *Engine) RequestDirection(d Direction) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	if e.run == RunEnded || d == e.direction.Opposite() {
		return nil
	}
	e.pending = d
	return nil
}

// TogglePause switches between playing and paused. Ended runs stay ended.
func (e *Engine) TogglePause() {
	switch e.run {
	case RunPlaying:
		e.run = RunPaused
	case RunPaused:
		e.run = RunPlaying
	}
}

// Tick advances the run by one step.
//
// An eaten apple adds to the score at once while the extra segment is added
// on the next moving tick, when the tail stays in place.
//
// A colliding tick leaves the snake where it is and counts towards the grace
// period; the run ends when the count reaches GracePeriod. Paused runs do not
// advance, so the grace count is frozen as well.
func (e *Engine) Tick() Outcome {
	switch e.run {
	case RunPaused:
		return Outcome{Kind: OutcomeContinue, State: e.State()}
	case RunEnded:
		return Outcome{Kind: OutcomeGameOver, FinalScore: e.score}
	}

	e.ticks++
	e.direction = e.pending
	newHead := e.snake[0].Step(e.direction)

	if e.collides(newHead) {
		e.grace++
		if e.grace >= e.params.GracePeriod {
			e.run = RunEnded
			return Outcome{Kind: OutcomeGameOver, FinalScore: e.score}
		}
		return Outcome{Kind: OutcomeContinue, State: e.State()}
	}
	e.grace = 0

	// Growth earned by an apple shows up on the following tick.
	grow := e.growth > 0
	if grow {
		e.growth--
	}

	if _, ok := e.appleSet[newHead]; ok {
		e.removeApple(newHead)
		e.score += e.params.ApplePoints
		e.growth++
		if c, ok := e.freeCell(&newHead); ok {
			e.addApple(c)
		}
	}

	e.snake = append(e.snake, Cell{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = newHead
	e.body[newHead] = struct{}{}

	if !grow {
		tail := e.snake[len(e.snake)-1]
		e.snake = e.snake[:len(e.snake)-1]
		delete(e.body, tail)
	}

	return Outcome{Kind: OutcomeContinue, State: e.State()}
}

// collides reports a fatal collision for the next head cell: outside the
// grid, on the snake body (tail included) or on an obstacle.
func (e *Engine) collides(c Cell) bool {
	if c.Col < 0 || c.Col >= e.params.Width || c.Row < 0 || c.Row >= e.params.Height {
		return true
	}
	if _, ok := e.body[c]; ok {
		return true
	}
	_, ok := e.blocked[c]
	return ok
}

// State returns a snapshot of the run. The slices are copies.
func (e *Engine) State() State {
	return State{
		Snake:     e.Snake(),
		Apples:    e.Apples(),
		Obstacles: e.Obstacles(),
		Direction: e.direction,
		Score:     e.score,
		Grace:     e.grace,
		Growth:    e.growth,
		Run:       e.run,
	}
}

// Snake returns the snake cells, head first.
func (e *Engine) Snake() []Cell {
	return cloneCells(e.snake)
}

// Head returns the snake's head cell.
func (e *Engine) Head() Cell {
	return e.snake[0]
}

// Apples returns the apple cells.
func (e *Engine) Apples() []Cell {
	return cloneCells(e.apples)
}

// Obstacles returns the obstacle cells.
func (e *Engine) Obstacles() []Cell {
	return cloneCells(e.obstacles)
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Paused reports whether the run is paused.
func (e *Engine) Paused() bool { return e.run == RunPaused }

// RunState returns the lifecycle state.
func (e *Engine) RunState() RunState { return e.run }

// Direction returns the direction applied on the last tick.
func (e *Engine) Direction() Direction { return e.direction }

// Grace returns the number of consecutive colliding ticks.
func (e *Engine) Grace() int { return e.grace }

// Ticks returns the number of ticks the run has advanced.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Level returns the level counter. It is always 1.
func (e *Engine) Level() int { return level }

// Width returns the grid width in cells.
func (e *Engine) Width() int { return e.params.Width }

// Height returns the grid height in cells.
func (e *Engine) Height() int { return e.params.Height }

func cloneCells(cells []Cell) []Cell {
	out := make([]Cell, len(cells))
	copy(out, cells)
	return out
}
