package t2048

import (
	"errors"
	"math/rand"
	"testing"
)

// scriptedRNG replays fixed values and counts how often it was consulted.
type scriptedRNG struct {
	ints   []int
	floats []float64
	calls  int
}

func (r *scriptedRNG) Intn(n int) int {
	r.calls++
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRNG) Float64() float64 {
	r.calls++
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestNewEngineInitialState(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		e := NewEngine(rand.New(rand.NewSource(seed)))
		s := e.State()

		if s.Score != 0 {
			t.Fatalf("seed %d: score = %d, want 0", seed, s.Score)
		}
		if s.Terminal {
			t.Fatalf("seed %d: new game should not be terminal", seed)
		}
		if n := TileCount(s.Board); n != 2 {
			t.Fatalf("seed %d: tile count = %d, want 2", seed, n)
		}
		for y := range BoardSize {
			for x := range BoardSize {
				if v := s.Board[y][x]; v != 0 && v != 2 && v != 4 {
					t.Fatalf("seed %d: initial tile %d at (%d,%d)", seed, v, x, y)
				}
			}
		}
	}
}

func TestSpawnUsesRandomSource(t *testing.T) {
	rng := &scriptedRNG{ints: []int{0, 0}, floats: []float64{0.5, 0.05}}
	e := NewEngine(rng)

	want := Board{{2, 4, 0, 0}}
	if got := e.State().Board; got != want {
		t.Errorf("initial board:\n%v\nwant\n%v", got, want)
	}
}

func TestSpawnTileFullBoard(t *testing.T) {
	board := Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	before := board
	rng := &scriptedRNG{}

	if SpawnTile(&board, rng, DefaultFourProbability) {
		t.Error("SpawnTile on a full board should report false")
	}
	if board != before {
		t.Error("SpawnTile changed a full board")
	}
	if rng.calls != 0 {
		t.Errorf("SpawnTile consulted the rng %d times on a full board", rng.calls)
	}
}

func TestSpawnTileNeverOverwrites(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 200; i++ {
		board := randomBoard(rng)
		before := board
		empty := len(EmptyCells(board))

		spawned := SpawnTile(&board, rng, DefaultFourProbability)
		if spawned != (empty > 0) {
			t.Fatalf("spawned=%v with %d empty cells", spawned, empty)
		}

		changed := 0
		for y := range BoardSize {
			for x := range BoardSize {
				if board[y][x] == before[y][x] {
					continue
				}
				changed++
				if before[y][x] != 0 {
					t.Fatalf("spawn overwrote %d at (%d,%d)", before[y][x], x, y)
				}
				if v := board[y][x]; v != 2 && v != 4 {
					t.Fatalf("spawned value %d", v)
				}
			}
		}
		if spawned && changed != 1 {
			t.Fatalf("spawn changed %d cells, want 1", changed)
		}
	}
}

func TestSpawnFourProbability(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	fours := 0
	const n = 10000

	for i := 0; i < n; i++ {
		var board Board
		SpawnTile(&board, rng, DefaultFourProbability)
		if MaxTile(board) == 4 {
			fours++
		}
	}

	ratio := float64(fours) / n
	if ratio < 0.08 || ratio > 0.12 {
		t.Errorf("four ratio = %.3f, want about 0.1", ratio)
	}
}

func TestEngineRejectedMoveIsNoOp(t *testing.T) {
	rng := &scriptedRNG{}
	e := NewEngine(rng)
	board := Board{{2, 0, 0, 0}}
	if err := e.Load(board, 8); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	calls := rng.calls
	before := e.State()

	out := e.Move(DirLeft)

	if out.Accepted || out.NewBest || out.BecameTerminal || out.Gained != 0 {
		t.Errorf("rejected move outcome = %+v", out)
	}
	if e.State() != before {
		t.Errorf("state changed on rejected move:\n%+v\n->\n%+v", before, e.State())
	}
	if rng.calls != calls {
		t.Error("rejected move must not spawn")
	}
}

func TestEngineAcceptedMoveSpawnsOneTile(t *testing.T) {
	rng := &scriptedRNG{}
	e := NewEngine(rng)
	if err := e.Load(Board{{2, 2, 0, 0}}, 0); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	out := e.Move(DirLeft)

	if !out.Accepted {
		t.Fatal("merge move should be accepted")
	}
	if out.Gained != 4 || out.State.Score != 4 {
		t.Errorf("gained = %d score = %d, want 4 and 4", out.Gained, out.State.Score)
	}
	if !out.NewBest || out.State.BestScore != 4 {
		t.Errorf("NewBest = %v best = %d, want true and 4", out.NewBest, out.State.BestScore)
	}
	// One merged tile plus one spawn in the first empty cell (scripted index 0).
	want := Board{{4, 2, 0, 0}}
	if out.State.Board != want {
		t.Errorf("board after move:\n%v\nwant\n%v", out.State.Board, want)
	}
}

func TestEngineCompactionOnlyMove(t *testing.T) {
	e := NewEngine(&scriptedRNG{})
	if err := e.Load(Board{{0, 0, 0, 2}}, 0); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	out := e.Move(DirLeft)

	if !out.Accepted {
		t.Fatal("pure compaction should be accepted")
	}
	if out.NewBest {
		t.Error("a move scoring nothing from 0 is not a new best")
	}
	if TileCount(out.State.Board) != 2 {
		t.Errorf("tile count = %d, want 2", TileCount(out.State.Board))
	}
}

func TestEngineBestScoreStrictlyIncreases(t *testing.T) {
	e := NewEngine(&scriptedRNG{})
	if err := e.Load(Board{{2, 2, 0, 0}}, 0); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if out := e.Move(DirLeft); !out.NewBest {
		t.Fatal("first merge should set a new best")
	}

	e.Reset()
	s := e.State()
	if s.Score != 0 || s.BestScore != 4 {
		t.Fatalf("after reset score = %d best = %d, want 0 and 4", s.Score, s.BestScore)
	}

	// Reaching the previous best exactly is not an improvement.
	if err := e.Load(Board{{2, 2, 0, 0}}, 0); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if out := e.Move(DirLeft); out.NewBest || out.State.Score != 4 {
		t.Errorf("tying best: NewBest = %v score = %d", out.NewBest, out.State.Score)
	}
}

func TestEngineTerminalTransition(t *testing.T) {
	rng := &scriptedRNG{floats: []float64{0.5, 0.5, 0.5}}
	e := NewEngine(rng)

	board := Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{0, 4, 2, 4},
	}
	if err := e.Load(board, 100); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if e.State().Terminal {
		t.Fatal("board with an empty cell is not terminal")
	}

	out := e.Move(DirLeft)

	if !out.Accepted || !out.BecameTerminal || !out.State.Terminal {
		t.Fatalf("outcome = %+v, want accepted terminal transition", out)
	}
	if out.NewBest {
		t.Error("no points scored, best should not change")
	}
	wantRow := Row{4, 2, 4, 2}
	if out.State.Board[3] != wantRow {
		t.Errorf("last row = %v, want %v", out.State.Board[3], wantRow)
	}

	for _, dir := range Directions {
		if again := e.Move(dir); again.Accepted || again.BecameTerminal {
			t.Errorf("terminal engine accepted %s", dir)
		}
	}

	e.Reset()
	s := e.State()
	if s.Terminal || s.Score != 0 || s.BestScore != 100 {
		t.Errorf("after reset = %+v, want fresh game keeping best 100", s)
	}
}

func TestEngineTerminalOnFullDeadBoardLoad(t *testing.T) {
	e := NewEngine(&scriptedRNG{})
	board := Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if err := e.Load(board, 0); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !e.State().Terminal {
		t.Error("dead board should load as terminal")
	}
}

func TestEngineLoadRejectsInvalid(t *testing.T) {
	e := NewEngine(&scriptedRNG{})
	before := e.State()

	if err := e.Load(Board{{3}}, 0); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("Load(3) error = %v, want ErrInvalidBoard", err)
	}
	if err := e.Load(Board{}, -1); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("Load(negative score) error = %v, want ErrInvalidBoard", err)
	}
	if e.State() != before {
		t.Error("failed Load must not change state")
	}
}

func TestEngineDeterministicReplay(t *testing.T) {
	play := func() State {
		e := NewEngine(rand.New(rand.NewSource(2048)))
		for i := 0; i < 300; i++ {
			e.Move(Directions[i%len(Directions)])
		}
		return e.State()
	}

	a, b := play(), play()
	if a != b {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestEngineInvariantsDuringPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	e := NewEngine(rng)

	for i := 0; i < 2000; i++ {
		before := e.State()
		out := e.Move(Directions[rng.Intn(len(Directions))])
		after := e.State()

		if !ValidBoard(after.Board) {
			t.Fatalf("invalid board:\n%v", after.Board)
		}
		if after.Score < before.Score {
			t.Fatalf("score decreased %d -> %d", before.Score, after.Score)
		}
		if after.Score-before.Score != out.Gained {
			t.Fatalf("score delta %d != gained %d", after.Score-before.Score, out.Gained)
		}
		if after.Terminal != IsGameOver(after.Board) {
			t.Fatalf("terminal flag %v disagrees with board", after.Terminal)
		}
		if out.Accepted && boardSum(after.Board)-boardSum(before.Board) != 2 &&
			boardSum(after.Board)-boardSum(before.Board) != 4 {
			t.Fatalf("accepted move must add exactly one spawned tile")
		}

		if after.Terminal {
			e.Reset()
		}
	}
}
