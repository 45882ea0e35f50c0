// Package t2048 implements the 2048 sliding-tile puzzle: an immutable rules
// engine (Board, Cell) and a fixed-tick turn driver (Game) that animates
// every move before settling it.
package t2048

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// configPath is the custom config file used by Reset, empty for the
// default search order.
var configPath string

// SetConfigPath sets the custom config path used when a game resets.
func SetConfigPath(path string) {
	configPath = path
}

// Phase is the stage of the current turn.
type Phase int

const (
	PhaseIdle  Phase = iota // waiting for input
	PhaseSlide              // tiles travelling to their destinations
	PhasePop                // freshly spawned tiles appearing
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSlide:
		return "slide"
	case PhasePop:
		return "pop"
	default:
		return "idle"
	}
}

// Game drives one 2048 run on a rows x cols board.
type Game struct {
	rows int
	cols int

	cfg      config.T2048Config
	cfgFixed bool  // cfg was supplied by the caller, skip loading on Reset
	cfgErr   error // last load failure; cfg holds the defaults then

	rng  *rand.Rand
	tick uint64

	board     *Board // settled board
	proposal  *Board // pending motion while sliding
	spawned   []Cell // tiles popping in
	phase     Phase
	phaseTick int

	status Status
	moves  int
	best   int

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game on a rows x cols board. The rest of the configuration
// is loaded on Reset.
func New(rows, cols int) *Game {
	return &Game{rows: rows, cols: cols}
}

// NewWithConfig creates a game using cfg as is, board size included.
func NewWithConfig(cfg config.T2048Config) *Game {
	return &Game{
		rows:     cfg.Board.Rows,
		cols:     cfg.Board.Cols,
		cfg:      cfg,
		cfgFixed: true,
	}
}

// ID returns the game identifier, e.g. "2048-4x4".
func (g *Game) ID() string {
	return VariantID(g.rows, g.cols)
}

// Title returns the display name.
func (g *Game) Title() string {
	return fmt.Sprintf("2048 (%dx%d)", g.rows, g.cols)
}

// Size returns the board dimensions.
func (g *Game) Size() (rows, cols int) {
	return g.rows, g.cols
}

// Reset starts a new run: fresh board, initial tiles, zero score.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.cfgFixed {
		loaded, err := config.LoadT2048(configPath)
		if err != nil {
			loaded = config.DefaultT2048Config()
		}
		g.cfgErr = err
		g.cfg = loaded.WithSize(g.rows, g.cols)
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.moves = 0
	g.proposal = nil
	g.spawned = nil
	g.phase = PhaseIdle
	g.phaseTick = 0

	g.board = NewBoard(g.rows, g.cols)
	g.board, _ = g.spawn(g.board, g.cfg.Spawn.InitialTiles)
	g.status = g.board.CheckStatus(g.cfg.Rules.WinThreshold)

	g.checkScreenSize()
}

// Resize adapts the layout to a new screen size without restarting the run.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.status == StatusUndefined {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	settled := false
	switch g.phase {
	case PhaseSlide:
		g.phaseTick++
		if g.phaseTick >= g.cfg.Animation.SlideTicks {
			settled = g.settle()
		}
	case PhasePop:
		g.phaseTick++
		if g.phaseTick >= g.cfg.Animation.PopTicks {
			g.finishTurn()
			settled = true
		}
	default:
		// Input is only accepted between turns.
		if g.status != StatusUndefined {
			break
		}
		if dir, ok := directionFor(in); ok {
			settled = g.move(dir)
		}
	}

	return core.StepResult{State: g.State(), Settled: settled}
}

// directionFor maps an input frame to a move. Up wins over down, down over
// left, left over right when several are held.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// move starts a turn. A move that changes nothing is dropped. Reports
// whether the turn settled within this call.
func (g *Game) move(dir Direction) bool {
	next, changed := g.board.Move(dir)
	if !changed {
		return false
	}

	g.moves++
	g.proposal = next
	g.phaseTick = 0

	if g.cfg.Animation.SlideTicks == 0 {
		return g.settle()
	}
	g.phase = PhaseSlide
	return false
}

// settle applies the pending motion and spawns new tiles. Reports whether
// the turn is complete; otherwise the pop phase follows.
func (g *Game) settle() bool {
	g.board = g.proposal.ApplyMoves()
	g.proposal = nil
	g.board, g.spawned = g.spawn(g.board, g.cfg.Spawn.Count)
	g.phaseTick = 0

	if len(g.spawned) > 0 && g.cfg.Animation.PopTicks > 0 {
		g.phase = PhasePop
		return false
	}
	g.finishTurn()
	return true
}

// finishTurn checks the outcome and goes back to waiting for input.
func (g *Game) finishTurn() {
	g.spawned = nil
	g.phase = PhaseIdle
	g.phaseTick = 0
	g.status = g.board.CheckStatus(g.cfg.Rules.WinThreshold)
}

// spawn places up to n tiles on b, fewer when the board has less room.
// It returns the new board and the spawned tiles.
func (g *Game) spawn(b *Board, n int) (*Board, []Cell) {
	n = min(n, b.EmptyCount())
	if n <= 0 {
		return b, nil
	}

	next, ok := b.SpawnCells(g.rng, n, g.spawnValue())
	if !ok {
		return b, nil
	}

	var spawned []Cell
	for _, c := range next.NonEmptyCells() {
		if b.At(c.Row(), c.Col()).IsEmpty() {
			spawned = append(spawned, c)
		}
	}
	return next, spawned
}

// spawnValue picks the value for the next spawn batch.
func (g *Game) spawnValue() int {
	value := g.cfg.Spawn.Value
	if g.cfg.Spawn.DoubleChance > 0 && g.rng.Float64() < g.cfg.Spawn.DoubleChance {
		value *= 2
	}
	return value
}

// SetBestScore sets the best score shown in the HUD.
func (g *Game) SetBestScore(best int) {
	g.best = best
}

// BestScore returns the higher of the stored best and the current score.
func (g *Game) BestScore() int {
	return max(g.best, g.Score())
}

// Score returns the sum of all tile values on the settled board.
func (g *Game) Score() int {
	if g.board == nil {
		return 0
	}
	return g.board.Score()
}

// MaxTile returns the highest tile on the settled board.
func (g *Game) MaxTile() int {
	if g.board == nil {
		return 0
	}
	return g.board.MaxTile()
}

// Board returns the settled board.
func (g *Game) Board() *Board {
	return g.board
}

// Status returns the outcome of the last settled turn.
func (g *Game) Status() Status {
	return g.status
}

// Won reports whether the run ended with a winning tile.
func (g *Game) Won() bool {
	return g.status == StatusWon
}

// Phase returns the stage of the current turn.
func (g *Game) Phase() Phase {
	return g.phase
}

// Moves returns the number of accepted moves in this run.
func (g *Game) Moves() int {
	return g.moves
}

// ConfigErr returns the error from loading the rules on the last Reset, nil
// when they loaded or were supplied with NewWithConfig. The run uses the
// defaults after a failure.
func (g *Game) ConfigErr() error {
	return g.cfgErr
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.T2048Config {
	return g.cfg
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.status != StatusUndefined,
		Paused:   g.paused || g.tooSmall,
	}
}
