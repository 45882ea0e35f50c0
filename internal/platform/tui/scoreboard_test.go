package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestScoreboardLoadsRuns(t *testing.T) {
	store := openTestStore(t)
	runs := []storage.RunResult{
		{GameID: "2048-4x4", Score: 120, MaxTile: 64, Moves: 40},
		{GameID: "2048-4x4", Score: 2100, MaxTile: 2048, Moves: 900, Won: true},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	m.SelectGame("2048-4x4")

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][1] != "2100" || rows[0][4] != "won" {
		t.Errorf("first row = %v, want the winning run first", rows[0])
	}
	if got := m.statsLine(); !strings.Contains(got, "Runs: 2") || !strings.Contains(got, "Wins: 1") {
		t.Errorf("statsLine() = %q", got)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if got := m.statsLine(); got != "No runs yet" {
		t.Errorf("statsLine() = %q, want %q", got, "No runs yet")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestScoreboardCyclesGrids(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.RunResult{GameID: "2048-5x5", Score: 300, MaxTile: 128, Moves: 60}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	m.grids = []registry.GameInfo{
		{ID: "2048-4x4", Rows: 4, Cols: 4},
		{ID: "2048-5x5", Rows: 5, Cols: 5},
		{ID: "2048-6x6", Rows: 6, Cols: 6},
	}
	m.load()
	if len(m.table.Rows()) != 0 {
		t.Fatalf("4x4 should have no runs, got %v", m.table.Rows())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][1] != "300" {
		t.Fatalf("5x5 rows = %v, want the single 300 run", rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.(ScoreboardModel).Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	if m.current != 2 {
		t.Errorf("left from the first grid should wrap to the last, got %d", m.current)
	}
	if !strings.Contains(m.View(), "6x6") {
		t.Error("view should show the selected grid")
	}
}

func TestScoreboardNarrowGridPicker(t *testing.T) {
	m := NewScoreboardModel(nil, 14, 20)
	m.grids = []registry.GameInfo{
		{ID: "2048-4x4", Rows: 4, Cols: 4},
		{ID: "2048-5x5", Rows: 5, Cols: 5},
		{ID: "2048-6x6", Rows: 6, Cols: 6},
	}
	m.current = 1

	if got := m.gridPicker(); got != "< 5x5 >" {
		t.Errorf("gridPicker() = %q, want %q", got, "< 5x5 >")
	}
}
