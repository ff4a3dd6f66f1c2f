package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/game-hub/internal/core"
	"github.com/vovakirdan/game-hub/internal/games/t2048"
	"github.com/vovakirdan/game-hub/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"k", runeKey('k'), core.ActionUp, false},
		{"h", runeKey('h'), core.ActionLeft, false},
		{"j", runeKey('j'), core.ActionDown, false},
		{"l", runeKey('l'), core.ActionRight, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorRed)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func newTestGameModel(t *testing.T) (GameModel, *t2048.Game) {
	t.Helper()

	game := t2048.New()
	svc := Services{Logger: log.New(io.Discard)}
	m := NewGameModel(game, "alice", core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 3}, svc)

	if err := game.Engine().Load(t2048.Board{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 0); err != nil {
		t.Fatal(err)
	}
	return m, game
}

func TestGameModelMoves(t *testing.T) {
	m, _ := newTestGameModel(t)

	updated, cmd := m.Update(runeKey('a'))
	if cmd != nil {
		t.Error("move should not return a command")
	}
	m = updated.(GameModel)

	if got := m.State().Score; got != 4 {
		t.Errorf("score = %d, want 4", got)
	}

	view := m.View()
	if !strings.Contains(view, "Score: 4") {
		t.Errorf("view missing score: %q", view)
	}
	if !strings.Contains(view, "New best: 4") {
		t.Errorf("view missing new best banner")
	}
}

func TestGameModelIgnoresUnboundKeys(t *testing.T) {
	m, game := newTestGameModel(t)
	before := game.Engine().State()

	updated, _ := m.Update(runeKey('x'))
	m = updated.(GameModel)

	if game.Engine().State() != before {
		t.Error("unbound key changed the game")
	}
}

func TestGameModelQuit(t *testing.T) {
	m, _ := newTestGameModel(t)

	updated, cmd := m.Update(runeKey('q'))
	m = updated.(GameModel)

	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestGameModelBack(t *testing.T) {
	m, _ := newTestGameModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if updated.(GameModel).BackToMenu() {
		t.Error("standalone game should ignore back")
	}

	m = m.WithBack()
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !updated.(GameModel).BackToMenu() {
		t.Error("back should leave the game")
	}
}

func TestGameModelRestartKeepsBest(t *testing.T) {
	m, _ := newTestGameModel(t)

	updated, _ := m.Update(runeKey('a'))
	updated, _ = updated.(GameModel).Update(runeKey('r'))
	m = updated.(GameModel)

	st := m.State()
	if st.Score != 0 || st.BestScore != 4 {
		t.Errorf("after restart state = %+v", st)
	}
}

func TestGameModelResize(t *testing.T) {
	m, _ := newTestGameModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 8})
	m = updated.(GameModel)

	if !strings.Contains(m.View(), "too small") {
		t.Error("expected too-small message after shrinking")
	}
}

type fakeStats struct {
	stats map[string]storage.PlayerGameStats
	err   error
	asked []string
}

func (f *fakeStats) PlayerStats(_ context.Context, player string) (map[string]storage.PlayerGameStats, error) {
	f.asked = append(f.asked, player)
	return f.stats, f.err
}

func TestLoadStats(t *testing.T) {
	src := &fakeStats{stats: map[string]storage.PlayerGameStats{
		"2048":  {Plays: 3, BestScore: 2048},
		"retro": {Plays: 1, BestScore: 5},
	}}

	rows, err := LoadStats(context.Background(), src, "alice")
	if err != nil {
		t.Fatal(err)
	}

	var found2048, foundRetro bool
	for _, r := range rows {
		switch r.GameID {
		case "2048":
			found2048 = r.Plays == 3 && r.Best == 2048 && r.Title == "2048"
		case "retro":
			foundRetro = r.Plays == 1 && r.Best == 5
		}
	}
	if !found2048 || !foundRetro {
		t.Errorf("rows = %+v", rows)
	}
	if rows[len(rows)-1].GameID != "retro" {
		t.Error("unregistered games should be listed last")
	}
}

func TestStatsModelLoadError(t *testing.T) {
	src := &fakeStats{err: errors.New("offline")}
	m := NewStatsModel(src, "bob", 80, 24)

	msg := m.Init()()
	updated, _ := m.Update(msg)
	m = updated.(StatsModel)

	if !strings.Contains(m.View(), "offline") {
		t.Errorf("view should show the error: %q", m.View())
	}
}

func TestArcadeProfileFlow(t *testing.T) {
	src := &fakeStats{stats: map[string]storage.PlayerGameStats{"2048": {Plays: 2, BestScore: 64}}}
	svc := Services{Stats: src, Logger: log.New(io.Discard)}
	var m tea.Model = NewArcadeModel("carol", core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, svc)

	items := m.(ArcadeModel).menu.items
	profileIdx := -1
	for i, item := range items {
		if item.Kind == MenuItemProfile {
			profileIdx = i
		}
	}
	if profileIdx < 0 {
		t.Fatal("profile entry missing from menu")
	}

	for i := 0; i < profileIdx; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(ArcadeModel).view != viewProfile || cmd == nil {
		t.Fatal("enter on Profile should open the profile page")
	}

	m, _ = m.Update(cmd())
	if !strings.Contains(m.View(), "PROFILE - carol") {
		t.Errorf("profile view = %q", m.View())
	}
	if len(src.asked) != 1 || src.asked[0] != "carol" {
		t.Errorf("stats requested for %v", src.asked)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(ArcadeModel).view != viewMenu {
		t.Error("esc should return to the menu")
	}
}

func TestArcadeGameFlow(t *testing.T) {
	var m tea.Model = NewArcadeModel("dave", core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, Services{Logger: log.New(io.Discard)})

	for _, item := range m.(ArcadeModel).menu.items {
		if item.Kind == MenuItemProfile {
			t.Error("profile entry should be hidden without a stats source")
		}
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	am := m.(ArcadeModel)
	if am.view != viewGame || am.game == nil {
		t.Fatal("enter should start the first game")
	}
	if am.game.Session().Identity() != "dave" {
		t.Errorf("identity = %q", am.game.Session().Identity())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(ArcadeModel).view != viewMenu {
		t.Error("esc should return to the menu")
	}

	m, cmd := m.Update(runeKey('q'))
	if !m.(ArcadeModel).quitting || cmd == nil {
		t.Error("q on the menu should quit")
	}
}

func TestIdentityFor(t *testing.T) {
	if identityFor("") != "Anonymous" || identityFor("eve") != "eve" {
		t.Error("identityFor mapping wrong")
	}
}
