package storage

import "testing"

func TestGridKey(t *testing.T) {
	if got := GridKey(4, 4); got != "grid-4x4" {
		t.Errorf("GridKey(4, 4) = %q", got)
	}
	if got := GridKey(3, 7); got != "grid-3x7" {
		t.Errorf("GridKey(3, 7) = %q", got)
	}
}

func TestRecordBest(t *testing.T) {
	store := openTestStore(t)

	steps := []struct {
		name    string
		score   int
		changed bool
		best    int
	}{
		{"absent grid reads zero", 0, false, 0},
		{"first score is stored", 120, true, 120},
		{"lower score is ignored", 80, false, 120},
		{"equal score is ignored", 120, false, 120},
		{"higher score replaces", 300, true, 300},
		{"negative score is ignored", -5, false, 300},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			changed, err := store.RecordBest(4, 4, step.score)
			if err != nil {
				t.Fatalf("RecordBest() failed: %v", err)
			}
			if changed != step.changed {
				t.Errorf("RecordBest(%d) changed = %v, want %v", step.score, changed, step.changed)
			}

			best, err := store.BestScore(4, 4)
			if err != nil {
				t.Fatalf("BestScore() failed: %v", err)
			}
			if best != step.best {
				t.Errorf("BestScore() = %d, want %d", best, step.best)
			}
		})
	}
}

func TestBestScoresArePerGrid(t *testing.T) {
	store := openTestStore(t)

	store.RecordBest(4, 4, 1000)
	store.RecordBest(5, 5, 40)
	store.RecordBest(3, 7, 64)

	if best, _ := store.BestScore(5, 5); best != 40 {
		t.Errorf("5x5 best = %d, want 40", best)
	}
	if best, _ := store.BestScore(7, 3); best != 0 {
		t.Errorf("7x3 is a different grid from 3x7, got %d", best)
	}

	all, err := store.AllBestScores()
	if err != nil {
		t.Fatalf("AllBestScores() failed: %v", err)
	}
	want := map[string]int{"grid-4x4": 1000, "grid-5x5": 40, "grid-3x7": 64}
	if len(all) != len(want) {
		t.Fatalf("AllBestScores() = %v, want %v", all, want)
	}
	for k, v := range want {
		if all[k] != v {
			t.Errorf("AllBestScores()[%s] = %d, want %d", k, all[k], v)
		}
	}
}
