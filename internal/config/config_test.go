package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultT2048ConfigIsValid(t *testing.T) {
	if err := DefaultT2048Config().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseT2048(defaultT2048YAML)
	if err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}
	if cfg != DefaultT2048Config() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultT2048Config())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*T2048Config)
		wantErr string
	}{
		{"zero rows", func(c *T2048Config) { c.Board.Rows = 0 }, "board.rows"},
		{"too many cols", func(c *T2048Config) { c.Board.Cols = MaxBoardSize + 1 }, "board.cols"},
		{"threshold not power of two", func(c *T2048Config) { c.Rules.WinThreshold = 1000 }, "rules.win_threshold"},
		{"spawn value one", func(c *T2048Config) { c.Spawn.Value = 1 }, "spawn.value"},
		{"no initial tiles", func(c *T2048Config) { c.Spawn.InitialTiles = 0 }, "spawn.initial_tiles"},
		{"initial tiles overflow", func(c *T2048Config) { c.Spawn.InitialTiles = 17 }, "exceeds"},
		{"negative count", func(c *T2048Config) { c.Spawn.Count = -2 }, "spawn.count"},
		{"chance above one", func(c *T2048Config) { c.Spawn.DoubleChance = 1.5 }, "spawn.double_chance"},
		{"negative slide", func(c *T2048Config) { c.Animation.SlideTicks = -1 }, "animation.slide_ticks"},
		{"negative pop", func(c *T2048Config) { c.Animation.PopTicks = -1 }, "animation.pop_ticks"},
		{"instant animation is fine", func(c *T2048Config) { c.Animation.SlideTicks = 0; c.Animation.PopTicks = 0 }, ""},
		{"rectangular board is fine", func(c *T2048Config) { c.Board.Rows = 3; c.Board.Cols = 7 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadT2048CustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "board:\n  rows: 5\n  cols: 6\nspawn:\n  double_chance: 0.1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadT2048(path)
	if err != nil {
		t.Fatalf("LoadT2048: %v", err)
	}

	if cfg.Board.Rows != 5 || cfg.Board.Cols != 6 {
		t.Errorf("board = %dx%d, want 5x6", cfg.Board.Rows, cfg.Board.Cols)
	}
	if cfg.Spawn.DoubleChance != 0.1 {
		t.Errorf("double_chance = %g, want 0.1", cfg.Spawn.DoubleChance)
	}
	// Unset fields keep their defaults.
	if cfg.Rules.WinThreshold != 2048 || cfg.Spawn.Value != 2 || cfg.Animation.SlideTicks != 8 {
		t.Errorf("missing fields should keep defaults, got %+v", cfg)
	}
}

func TestLoadT2048CustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("rules:\n  win_threshold: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("board: [rows"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"invalid values", invalid},
		{"malformed yaml", broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadT2048(tt.path); err == nil {
				t.Errorf("LoadT2048(%s) should fail", tt.path)
			}
		})
	}
}

func TestLoadT2048SearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	t.Chdir(work)

	cfg, err := LoadT2048("")
	if err != nil {
		t.Fatalf("LoadT2048: %v", err)
	}
	if cfg != DefaultT2048Config() {
		t.Errorf("without files the embedded defaults should load, got %+v", cfg)
	}

	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", "t2048.yaml"), []byte("board:\n  rows: 6\n  cols: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadT2048("")
	if cfg.Board.Rows != 6 {
		t.Errorf("local config should win over embedded, got rows=%d", cfg.Board.Rows)
	}

	userDir := filepath.Join(home, AppDir, "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "t2048.yaml"), []byte("board:\n  rows: 7\n  cols: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadT2048("")
	if cfg.Board.Rows != 7 {
		t.Errorf("user config should win over local, got rows=%d", cfg.Board.Rows)
	}

	// An unusable user file is skipped.
	if err := os.WriteFile(filepath.Join(userDir, "t2048.yaml"), []byte("spawn:\n  value: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadT2048("")
	if cfg.Board.Rows != 6 {
		t.Errorf("invalid user config should fall through to local, got rows=%d", cfg.Board.Rows)
	}
}

func TestWithSize(t *testing.T) {
	base := DefaultT2048Config()
	sized := base.WithSize(5, 8)
	if sized.Board.Rows != 5 || sized.Board.Cols != 8 {
		t.Errorf("WithSize = %dx%d, want 5x8", sized.Board.Rows, sized.Board.Cols)
	}
	if base.Board.Rows != 4 {
		t.Error("WithSize must not modify the receiver")
	}
}
