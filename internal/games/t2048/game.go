package t2048

import (
	"math/rand"

	"github.com/vovakirdan/game-hub/internal/core"
	"github.com/vovakirdan/game-hub/internal/registry"
)

// GameID is the identifier used for registry lookups and score reporting.
const GameID = "2048"

// Package-level variables for config
var (
	fourProbability = DefaultFourProbability
)

// SetFourProbability sets the 4-tile spawn chance for games created afterwards.
func SetFourProbability(p float64) {
	fourProbability = p
}

// Game adapts the Engine to the registry.Game interface.
type Game struct {
	engine *Engine
	seed   int64
	moves  uint64 // Accepted moves since the last reset
	last   Outcome

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a new 2048 game. Reset must be called before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "2048"
}

// Description returns the one-line blurb shown in the game list.
func (g *Game) Description() string {
	return "Slide and merge tiles to reach 2048"
}

// Reset starts a new game. The RNG is reseeded only when the seed changes,
// so repeated resets with one seed continue the same random sequence.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.engine == nil || cfg.Seed != g.seed {
		g.seed = cfg.Seed
		rng := rand.New(rand.NewSource(cfg.Seed))
		if g.engine == nil {
			g.engine = NewEngine(rng, WithFourProbability(fourProbability))
		} else {
			g.engine.SetRandom(rng)
			g.engine.Reset()
		}
	} else {
		g.engine.Reset()
	}

	g.moves = 0
	g.last = Outcome{State: g.engine.State()}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the render area without restarting the game.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	// Minimum size: board (25 wide, 9 tall) + HUD (4 lines) + hint (2 lines)
	minW := 27
	minH := 15
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// directionFor maps an input frame to a move direction.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// Step processes one input event.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}

	dir, ok := directionFor(in)
	if !ok || g.tooSmall {
		g.last = Outcome{State: g.engine.State()}
		return core.StepResult{State: g.State()}
	}

	return g.Move(dir)
}

// Move applies a direction directly, bypassing input mapping.
func (g *Game) Move(dir Direction) core.StepResult {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}

	g.last = g.engine.Move(dir)
	if g.last.Accepted {
		g.moves++
	}

	return core.StepResult{
		State:    g.State(),
		Accepted: g.last.Accepted,
		NewBest:  g.last.NewBest,
		Ended:    g.last.BecameTerminal,
	}
}

// LastOutcome returns the engine outcome of the most recent step.
func (g *Game) LastOutcome() Outcome {
	return g.last
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	s := g.engine.State()
	return core.GameState{
		Score:     s.Score,
		BestScore: s.BestScore,
		GameOver:  s.Terminal,
	}
}
