package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Seed      int64
	Moves     uint64
	Score     int
	BestScore int
	Board     Board
	MaxTile   int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.engine == nil {
		return Snapshot{State: StatePlaying}
	}

	s := g.engine.State()

	state := StatePlaying
	switch {
	case s.Terminal:
		state = StateGameOver
	case g.tooSmall:
		state = StatePausedSmall
	}

	return Snapshot{
		Seed:      g.seed,
		Moves:     g.moves,
		Score:     s.Score,
		BestScore: s.BestScore,
		Board:     s.Board,
		MaxTile:   MaxTile(s.Board),
		State:     state,
	}
}
