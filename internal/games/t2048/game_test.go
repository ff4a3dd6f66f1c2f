package t2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/game-hub/internal/core"
	"github.com/vovakirdan/game-hub/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    seed,
	}
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("registry.Create(%q) failed: %v", GameID, err)
	}
	if g.Title() != "2048" {
		t.Errorf("Title() = %q, want 2048", g.Title())
	}

	info, ok := registry.Info(GameID)
	if !ok || info.Description == "" {
		t.Errorf("registry info = %+v, want description", info)
	}
}

func TestDeterministicSpawn(t *testing.T) {
	g1 := New()
	g1.Reset(testConfig(12345))

	g2 := New()
	g2.Reset(testConfig(12345))

	if g1.Snapshot().Board != g2.Snapshot().Board {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v",
			g1.Snapshot().Board, g2.Snapshot().Board)
	}
}

func TestStepMapsActions(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	if err := g.Engine().Load(Board{{0, 0, 2, 2}}, 0); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	res := g.Step(core.FrameOf(core.ActionLeft))

	if !res.Accepted {
		t.Fatal("left should be accepted")
	}
	if res.State.Score != 4 || res.State.BestScore != 4 || !res.NewBest {
		t.Errorf("result = %+v, want score 4 and a new best", res)
	}
	if g.Snapshot().Board[0][0] != 4 {
		t.Errorf("merged tile not at (0,0):\n%v", g.Snapshot().Board)
	}
	if g.Snapshot().Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.Snapshot().Moves)
	}
}

func TestStepIgnoresNonDirectional(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	before := g.Snapshot()

	res := g.Step(core.FrameOf(core.ActionConfirm))

	if res.Accepted {
		t.Error("non-directional input should not be accepted")
	}
	if g.Snapshot() != before {
		t.Error("non-directional input changed the game")
	}
}

func TestStepEndsGame(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	board := Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{0, 4, 2, 4},
	}
	if err := g.Engine().Load(board, 0); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// The spawned tile decides whether the board locks; try left until it ends.
	res := g.Move(DirLeft)
	if !res.Accepted {
		t.Fatal("left should be accepted")
	}
	if res.Ended != res.State.GameOver {
		t.Errorf("Ended = %v but GameOver = %v on the transition step", res.Ended, res.State.GameOver)
	}
	if res.State.GameOver && g.Snapshot().State != StateGameOver {
		t.Errorf("snapshot state = %s, want game_over", g.Snapshot().State)
	}
}

func TestResetKeepsBestScore(t *testing.T) {
	g := New()
	cfg := testConfig(9)
	g.Reset(cfg)
	if err := g.Engine().Load(Board{{8, 8, 0, 0}}, 0); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	g.Move(DirLeft)

	g.Reset(cfg)

	s := g.State()
	if s.Score != 0 || s.BestScore != 16 || s.GameOver {
		t.Errorf("after reset state = %+v, want score 0 best 16", s)
	}
	if TileCount(g.Snapshot().Board) != 2 {
		t.Errorf("reset board should have 2 tiles")
	}
}

func TestSnapshot(t *testing.T) {
	g := New()
	g.Reset(testConfig(42))

	snap := g.Snapshot()

	if snap.Seed != 42 {
		t.Errorf("Snapshot Seed = %d, want 42", snap.Seed)
	}
	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, want playing", snap.State)
	}
	if snap.Score != 0 || snap.Moves != 0 {
		t.Errorf("fresh snapshot = %+v", snap)
	}
	if snap.MaxTile != 2 && snap.MaxTile != 4 {
		t.Errorf("MaxTile = %d, want 2 or 4", snap.MaxTile)
	}
}

func TestRenderShowsScoreAndBoard(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	if err := g.Engine().Load(Board{{2048, 0, 0, 0}}, 1234); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 1234", "Best: 1234", "2048", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("live game should not show GAME OVER")
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	board := Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if err := g.Engine().Load(board, 77); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Final Score: 77") {
		t.Errorf("terminal render missing overlay:\n%s", out)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	screen := core.NewScreen(20, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("small window should show the resize hint")
	}

	before := g.Snapshot().Board
	g.Step(core.FrameOf(core.ActionLeft))
	g.Step(core.FrameOf(core.ActionUp))
	if g.Snapshot().Board != before {
		t.Error("moves should be ignored while the window is too small")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("after resize state = %s, want playing", g.Snapshot().State)
	}
}

func TestTileColor(t *testing.T) {
	if tileColor(2) == tileColor(2048) {
		t.Error("small and large tiles should differ in color")
	}
	if tileColor(4096) != core.ColorBrightMagenta {
		t.Errorf("tileColor(4096) = %d", tileColor(4096))
	}
}
