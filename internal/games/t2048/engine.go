package t2048

import (
	"errors"
	"fmt"
)

// ErrInvalidBoard is returned when a loaded board holds a value that is
// neither 0 nor a power of two.
var ErrInvalidBoard = errors.New("t2048: invalid board")

// State is the full state of one 2048 session.
type State struct {
	Board     Board
	Score     int
	BestScore int  // Survives Reset
	Terminal  bool // No move possible; cleared only by Reset
}

// Outcome describes what one call to Engine.Move did.
// The engine never performs side effects; callers react to these flags.
type Outcome struct {
	Accepted       bool // The move changed the board and a tile was spawned
	Gained         int  // Points scored by this move
	NewBest        bool // BestScore strictly increased
	BecameTerminal bool // This move ended the game
	State          State
}

// Engine owns the grid and applies moves one at a time.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	rng      RandomSource
	fourProb float64
	state    State
}

// Option configures an Engine.
type Option func(*Engine)

// WithFourProbability overrides the chance of spawning a 4.
func WithFourProbability(p float64) Option {
	return func(e *Engine) {
		e.fourProb = p
	}
}

// NewEngine creates an engine and starts the first game.
func NewEngine(rng RandomSource, opts ...Option) *Engine {
	e := &Engine{
		rng:      rng,
		fourProb: DefaultFourProbability,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Reset starts a new game: fresh board with two tiles, score 0, not terminal.
// The best score is kept.
func (e *Engine) Reset() {
	e.state = State{
		Board:     NewBoard(e.rng, e.fourProb),
		BestScore: e.state.BestScore,
	}
}

// Move handles one directional input.
// Terminal games and moves that change nothing are rejected with no state change.
func (e *Engine) Move(dir Direction) Outcome {
	if e.state.Terminal {
		return Outcome{State: e.state}
	}

	res := ApplyMove(e.state.Board, e.state.Score, dir)
	if !res.Moved {
		return Outcome{State: e.state}
	}

	board := res.Board
	SpawnTile(&board, e.rng, e.fourProb)

	e.state.Board = board
	e.state.Score = res.Score

	out := Outcome{Accepted: true, Gained: res.Gained}

	if e.state.Score > e.state.BestScore {
		e.state.BestScore = e.state.Score
		out.NewBest = true
	}

	if IsGameOver(board) {
		e.state.Terminal = true
		out.BecameTerminal = true
	}

	out.State = e.state
	return out
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Load replaces the board and score, recomputing the terminal flag.
// The best score is raised to score if lower. Used for replays and tests.
func (e *Engine) Load(board Board, score int) error {
	if !ValidBoard(board) {
		return fmt.Errorf("%w: %v", ErrInvalidBoard, board)
	}
	if score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidBoard, score)
	}

	e.state.Board = board
	e.state.Score = score
	e.state.BestScore = max(e.state.BestScore, score)
	e.state.Terminal = IsGameOver(board)
	return nil
}

// SetRandom swaps the random source used for future spawns.
func (e *Engine) SetRandom(rng RandomSource) {
	e.rng = rng
}
