package t2048

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

func newTestGame(t *testing.T, mutate func(*config.T2048Config)) *Game {
	t.Helper()
	cfg := config.DefaultT2048Config()
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

func instant(c *config.T2048Config) {
	c.Animation.SlideTicks = 0
	c.Animation.PopTicks = 0
}

func input(actions ...core.Action) core.InputFrame {
	var in core.InputFrame
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestReset(t *testing.T) {
	g := newTestGame(t, nil)

	if got := g.Board().TileCount(); got != 2 {
		t.Errorf("fresh board has %d tiles, want 2", got)
	}
	if got := g.Score(); got != 4 {
		t.Errorf("Score() = %d, want 4", got)
	}
	if g.Phase() != PhaseIdle || g.Status() != StatusUndefined {
		t.Errorf("fresh game phase=%s status=%s", g.Phase(), g.Status())
	}
	if st := g.State(); st.GameOver || st.Paused {
		t.Errorf("fresh game state = %+v", st)
	}
	if rows, cols := g.Size(); rows != 4 || cols != 4 {
		t.Errorf("Size() = %dx%d, want 4x4", rows, cols)
	}
	if g.ID() != "2048-4x4" {
		t.Errorf("ID() = %q", g.ID())
	}
}

func TestDeterminism(t *testing.T) {
	moves := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}

	run := func() []Snapshot {
		g := newTestGame(t, func(c *config.T2048Config) {
			c.Board.Rows, c.Board.Cols = 5, 5
			c.Spawn.DoubleChance = 0.3
		})
		var snaps []Snapshot
		for i := range 200 {
			var in core.InputFrame
			if i%4 == 0 {
				in.Set(moves[(i/4)%len(moves)])
			}
			g.Step(in)
			snaps = append(snaps, g.Snapshot())
		}
		return snaps
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed and inputs should produce identical snapshots")
	}
	if a[len(a)-1].Moves == 0 {
		t.Error("expected some moves to be accepted")
	}
}

func TestMoveAnimatesThenSettles(t *testing.T) {
	g := newTestGame(t, func(c *config.T2048Config) {
		c.Animation.SlideTicks = 3
		c.Animation.PopTicks = 2
	})
	g.board = BoardFromValues([][]int{
		{0, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 2},
		{0, 0, 0, 0},
	})
	before := g.Board()

	res := g.Step(input(core.ActionLeft))
	if res.Settled || g.Phase() != PhaseSlide {
		t.Fatalf("move should start sliding, phase=%s settled=%v", g.Phase(), res.Settled)
	}
	if g.Board() != before {
		t.Error("settled board must not change while sliding")
	}
	anims := g.Animations()
	if len(anims) != 2 {
		t.Fatalf("expected 2 sliding tiles, got %d", len(anims))
	}
	for _, a := range anims {
		if a.ToCol != 0 || a.FromCol != 3 {
			t.Errorf("animation %+v should slide from col 3 to col 0", a)
		}
	}

	// Input during the slide is ignored.
	g.Step(input(core.ActionRight))
	g.Step(core.InputFrame{})
	if g.Moves() != 1 {
		t.Errorf("input during animation must be ignored, moves=%d", g.Moves())
	}

	res = g.Step(core.InputFrame{})
	if g.Phase() != PhasePop || res.Settled {
		t.Fatalf("after the slide the spawn should pop, phase=%s", g.Phase())
	}
	if got := g.Board().TileCount(); got != 3 {
		t.Errorf("settled board has %d tiles, want 2 slid + 1 spawned", got)
	}
	if pops := g.Animations(); len(pops) != 1 || !pops[0].IsNew {
		t.Errorf("expected one pop animation, got %+v", pops)
	}

	g.Step(core.InputFrame{})
	res = g.Step(core.InputFrame{})
	if !res.Settled || g.Phase() != PhaseIdle {
		t.Fatalf("turn should settle after the pop, phase=%s settled=%v", g.Phase(), res.Settled)
	}
	if g.Board().At(0, 0).Value() != 2 || g.Board().At(2, 0).Value() != 2 {
		t.Errorf("tiles did not land on the left edge:\n%s", g.Board())
	}
	if g.Animations() != nil {
		t.Error("idle game should have no animations")
	}
}

func TestInstantSettle(t *testing.T) {
	g := newTestGame(t, instant)
	g.board = BoardFromValues([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := g.Step(input(core.ActionLeft))
	if !res.Settled || g.Phase() != PhaseIdle {
		t.Fatalf("zero-tick animation should settle in one step, phase=%s", g.Phase())
	}
	if g.Board().At(0, 0).Value() != 4 {
		t.Errorf("expected merged 4 at (0,0):\n%s", g.Board())
	}
	if got := g.Board().TileCount(); got != 2 {
		t.Errorf("TileCount() = %d, want merged tile + spawn", got)
	}
}

func TestNoOpMoveIsRejected(t *testing.T) {
	g := newTestGame(t, instant)
	g.board = BoardFromValues([][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := g.Board()

	res := g.Step(input(core.ActionLeft))
	if res.Settled || g.Moves() != 0 || g.Board() != before {
		t.Error("a move that changes nothing must not start a turn or spawn")
	}
}

func TestWinEndsRun(t *testing.T) {
	g := newTestGame(t, func(c *config.T2048Config) {
		instant(c)
		c.Rules.WinThreshold = 8
	})
	g.board = BoardFromValues([][]int{
		{4, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(input(core.ActionLeft))
	if !g.Won() || g.Status() != StatusWon {
		t.Fatalf("reaching the threshold should win, status=%s", g.Status())
	}
	if !g.State().GameOver {
		t.Error("a won game is over")
	}

	g.Step(input(core.ActionRight))
	if g.Moves() != 1 {
		t.Error("no moves are accepted after the run ends")
	}
}

func TestLossEndsRun(t *testing.T) {
	g := newTestGame(t, func(c *config.T2048Config) {
		instant(c)
		c.Board.Rows, c.Board.Cols = 2, 2
		c.Spawn.Value = 16
	})
	g.board = BoardFromValues([][]int{
		{2, 4},
		{8, 0},
	})

	g.Step(input(core.ActionRight))
	want := [][]int{{2, 4}, {16, 8}}
	if got := g.Board().Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("board = %v, want %v", got, want)
	}
	if g.Status() != StatusLost || !g.State().GameOver || g.Won() {
		t.Errorf("packed board without merges should be lost, status=%s", g.Status())
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, instant)

	g.Step(input(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("P should pause")
	}

	before := g.Snapshot()
	g.Step(input(core.ActionLeft))
	g.Step(input(core.ActionUp))
	if g.Moves() != before.Moves {
		t.Error("moves must be ignored while paused")
	}

	g.Step(input(core.ActionPause))
	if g.State().Paused {
		t.Error("P should resume")
	}
}

func TestDoubleChanceSpawnsDoubledValue(t *testing.T) {
	g := newTestGame(t, func(c *config.T2048Config) {
		c.Spawn.DoubleChance = 1
		c.Spawn.InitialTiles = 3
	})

	for _, c := range g.Board().NonEmptyCells() {
		if c.Value() != 4 {
			t.Errorf("spawned %d, want 4 with double_chance 1", c.Value())
		}
	}
	if got := g.Board().TileCount(); got != 3 {
		t.Errorf("TileCount() = %d, want 3", got)
	}
}

func TestBestScore(t *testing.T) {
	g := newTestGame(t, nil)

	g.SetBestScore(100)
	if got := g.BestScore(); got != 100 {
		t.Errorf("BestScore() = %d, want 100", got)
	}

	g.SetBestScore(0)
	if got := g.BestScore(); got != g.Score() {
		t.Errorf("BestScore() = %d, want current score %d", got, g.Score())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, func(c *config.T2048Config) {
		c.Animation.SlideTicks = 4
	})
	g.board = BoardFromValues([][]int{
		{1024, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2},
	})
	g.SetBestScore(9000)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048 4x4", "Score: 1026", "Best: 9000", "1024", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen should contain %q:\n%s", want, out)
		}
	}

	// Mid-slide rendering draws every tile exactly once.
	g.Step(input(core.ActionUp))
	g.Step(core.InputFrame{})
	g.Render(screen)
	if got := strings.Count(screen.String(), "1024"); got != 1 {
		t.Errorf("expected one 1024 tile mid-slide, got %d", got)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, instant)
	g.board = BoardFromValues([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	g.status = g.board.CheckStatus(g.cfg.Rules.WinThreshold)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Errorf("lost game should show GAME OVER:\n%s", screen)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New(8, 8)
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, Seed: 1})

	if !g.State().Paused {
		t.Error("a game that does not fit should report paused")
	}

	screen := core.NewScreen(40, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small message:\n%s", screen)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{2, "2"},
		{2048, "2048"},
		{131072, "131072"},
		{1 << 20, "2^20"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.value); got != tt.want {
			t.Errorf("formatValue(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		g, err := registry.Create(v.GameID())
		if err != nil {
			t.Fatalf("variant %s not registered: %v", v.ID, err)
		}
		if rows, cols := g.Size(); rows != v.Rows || cols != v.Cols {
			t.Errorf("%s: Size() = %dx%d", v.ID, rows, cols)
		}
	}

	if v, ok := VariantByID("2048-6x6"); !ok || v.Rows != 6 {
		t.Errorf("VariantByID(2048-6x6) = %+v, %v", v, ok)
	}
	if _, ok := VariantByID("3x3"); ok {
		t.Error("3x3 is not a menu variant")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in         string
		rows, cols int
		wantErr    bool
	}{
		{"4x4", 4, 4, false},
		{"3x7", 3, 7, false},
		{"2048-5x5", 5, 5, false},
		{"big", 0, 0, true},
		{"0x4", 0, 0, true},
		{"-2x4", 0, 0, true},
		{"4x4junk", 0, 0, true},
		{"4x", 0, 0, true},
		{"2048-6x6x6", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rows, cols, err := ParseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && (rows != tt.rows || cols != tt.cols) {
				t.Errorf("ParseSize(%q) = %dx%d, want %dx%d", tt.in, rows, cols, tt.rows, tt.cols)
			}
		})
	}
}

func TestResetReportsBrokenConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  win_threshold: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New(5, 5)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	if g.ConfigErr() == nil {
		t.Fatal("ConfigErr() = nil, want the validation error")
	}
	if got := g.Config().Rules.WinThreshold; got != config.DefaultT2048Config().Rules.WinThreshold {
		t.Errorf("WinThreshold = %d, want the default", got)
	}
	if rows, cols := g.Size(); g.Config().Board.Rows != rows || g.Config().Board.Cols != cols {
		t.Errorf("fallback config should keep the %dx%d board", rows, cols)
	}

	SetConfigPath("")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if err := g.ConfigErr(); err != nil {
		t.Errorf("ConfigErr() after a good load = %v, want nil", err)
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, instant)
	g.Step(input(core.ActionLeft))
	g.Step(input(core.ActionUp))
	before := g.Snapshot()

	g.Resize(20, 8)
	if !g.State().Paused {
		t.Error("shrinking below the board size should pause")
	}
	g.Resize(100, 30)
	if g.State().Paused {
		t.Error("growing back should resume")
	}

	after := g.Snapshot()
	if !reflect.DeepEqual(before.Values, after.Values) || before.Moves != after.Moves {
		t.Error("Resize must not restart the run")
	}
}
