package registry

import (
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

type fakeGame struct {
	id         string
	rows, cols int
}

func (f *fakeGame) ID() string { return f.id }
func (f *fakeGame) Title() string { return "Fake " + f.id }
func (f *fakeGame) Reset(core.RuntimeConfig) {}
func (f *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (f *fakeGame) Render(*core.Screen) {}
func (f *fakeGame) State() core.GameState { return core.GameState{} }
func (f *fakeGame) Size() (rows, cols int) { return f.rows, f.cols }

func factory(id string, rows, cols int) Factory {
	return func() Game { return &fakeGame{id: id, rows: rows, cols: cols} }
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-3x5", factory("test-3x5", 3, 5))

	if !Exists("test-3x5") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("test-3x5")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rows, cols := g.Size(); rows != 3 || cols != 5 {
		t.Errorf("Size() = %dx%d, want 3x5", rows, cols)
	}

	if _, err := Create("test-missing"); err == nil {
		t.Error("Create of an unknown ID should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", factory("test-dup", 2, 2))

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("test-dup", factory("test-dup", 2, 2))
}

func TestListSortedByArea(t *testing.T) {
	Register("test-list-b", factory("test-list-b", 9, 9))
	Register("test-list-a", factory("test-list-a", 9, 9))
	Register("test-list-small", factory("test-list-small", 1, 2))

	pos := map[string]int{}
	for i, info := range List() {
		pos[info.ID] = i
		if info.ID == "test-list-small" && (info.Rows != 1 || info.Cols != 2 || info.Title != "Fake test-list-small") {
			t.Errorf("unexpected info %+v", info)
		}
	}

	if !(pos["test-list-small"] < pos["test-list-a"] && pos["test-list-a"] < pos["test-list-b"]) {
		t.Errorf("List() order wrong: %v", pos)
	}
}
