package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/game-hub/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Description() string                  { return "a stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") {
		t.Fatal("stub-a should be registered")
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("ID() = %q, want stub-a", g.ID())
	}

	info, ok := Info("stub-a")
	if !ok {
		t.Fatal("Info should find stub-a")
	}
	if info.Title != "Stub stub-a" || info.Description != "a stub" {
		t.Errorf("Info = %+v", info)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("does-not-exist")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(unknown) error = %v, want ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}

func TestListSorted(t *testing.T) {
	Register("stub-z", func() Game { return &stubGame{id: "stub-z"} })
	Register("stub-b", func() Game { return &stubGame{id: "stub-b"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
