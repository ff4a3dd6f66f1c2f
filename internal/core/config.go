package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	BestScore int  // Best score reached in this session
	GameOver  bool // Whether the game has ended
}

// StepResult is returned by Game.Step() after each processed input.
type StepResult struct {
	State GameState

	// Accepted is true when the input changed the game state.
	Accepted bool

	// NewBest is true when this step raised BestScore.
	NewBest bool

	// Ended is true only on the step that moved the game into GameOver.
	Ended bool
}
