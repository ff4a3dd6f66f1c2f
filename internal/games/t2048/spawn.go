package t2048

// DefaultFourProbability is the chance that a spawned tile is a 4 instead of a 2.
const DefaultFourProbability = 0.1

// RandomSource is the only source of randomness used by the engine.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// NewBoard returns an empty board seeded with two random tiles.
func NewBoard(rng RandomSource, fourProb float64) Board {
	var board Board
	SpawnTile(&board, rng, fourProb)
	SpawnTile(&board, rng, fourProb)
	return board
}

// SpawnTile places a 2 (or a 4 with probability fourProb) on a uniformly
// chosen empty cell. It reports false and leaves the board untouched when
// the board is full.
func SpawnTile(board *Board, rng RandomSource, fourProb float64) bool {
	empty := EmptyCells(*board)
	if len(empty) == 0 {
		return false
	}

	cell := empty[rng.Intn(len(empty))]

	value := 2
	if rng.Float64() < fourProb {
		value = 4
	}

	board[cell.Y][cell.X] = value
	return true
}
