package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultWinThreshold is the tile value that wins a classic game.
const DefaultWinThreshold = 2048

// Rand is the randomness source used for spawning tiles.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Status is the outcome of a status check.
type Status int

const (
	StatusUndefined Status = iota // game still in progress
	StatusWon
	StatusLost
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "yet_undefined"
	}
}

// Board is a rows x cols grid of cells. Boards are immutable by convention:
// Move, ApplyMoves and SpawnCells return a new board and leave the receiver
// untouched. Only the *InPlace methods mutate.
type Board struct {
	rows  int
	cols  int
	cells [][]Cell
}

// NewBoard creates an empty board. It panics on non-positive dimensions.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("t2048: invalid board size %dx%d", rows, cols))
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: newGrid(rows, cols),
	}
}

// BoardFromValues builds a settled board from a value matrix.
// It panics on an empty or ragged matrix, or on a value that is neither 0
// nor a power of two >= 2.
func BoardFromValues(values [][]int) *Board {
	if len(values) == 0 {
		panic("t2048: empty value matrix")
	}
	b := NewBoard(len(values), len(values[0]))
	for r, row := range values {
		if len(row) != b.cols {
			panic(fmt.Sprintf("t2048: row %d has %d columns, want %d", r, len(row), b.cols))
		}
		for c, v := range row {
			if v != 0 {
				mustBeTileValue(v)
			}
			b.cells[r][c] = b.cells[r][c].withValue(v)
		}
	}
	return b
}

func newGrid(rows, cols int) [][]Cell {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
		for c := range cells[r] {
			cells[r][c] = newCell(r, c)
		}
	}
	return cells
}

// IsTileValue reports whether v is a valid non-empty tile value.
func IsTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

func mustBeTileValue(v int) {
	if !IsTileValue(v) {
		panic(fmt.Sprintf("t2048: %d is not a valid tile value", v))
	}
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// At returns the cell stored at the given grid position.
func (b *Board) At(row, col int) Cell {
	return b.cells[row][col]
}

func (b *Board) at(p Pos) Cell {
	return b.cells[p.Row][p.Col]
}

func (b *Board) set(p Pos, c Cell) {
	b.cells[p.Row][p.Col] = c
}

func (b *Board) clone() *Board {
	cells := make([][]Cell, b.rows)
	for r := range b.cells {
		cells[r] = make([]Cell, b.cols)
		copy(cells[r], b.cells[r])
	}
	return &Board{rows: b.rows, cols: b.cols, cells: cells}
}

// lines splits the grid into independent lines for dir. Index 0 of every
// line is the edge the tiles are pushed toward.
func (b *Board) lines(dir Direction) [][]Pos {
	var lines [][]Pos

	switch dir {
	case DirUp:
		for c := range b.cols {
			line := make([]Pos, 0, b.rows)
			for r := range b.rows {
				line = append(line, Pos{r, c})
			}
			lines = append(lines, line)
		}
	case DirDown:
		for c := range b.cols {
			line := make([]Pos, 0, b.rows)
			for r := b.rows - 1; r >= 0; r-- {
				line = append(line, Pos{r, c})
			}
			lines = append(lines, line)
		}
	case DirLeft:
		for r := range b.rows {
			line := make([]Pos, 0, b.cols)
			for c := range b.cols {
				line = append(line, Pos{r, c})
			}
			lines = append(lines, line)
		}
	case DirRight:
		for r := range b.rows {
			line := make([]Pos, 0, b.cols)
			for c := b.cols - 1; c >= 0; c-- {
				line = append(line, Pos{r, c})
			}
			lines = append(lines, line)
		}
	default:
		dir.mustBeValid()
	}

	return lines
}

// Move computes the pending motion of every tile for dir. The returned
// board keeps cells at their pre-move grid positions; only destinations,
// pending values and merge roles differ. When nothing would move the
// receiver itself is returned with changed == false.
//
// The receiver must be settled.
func (b *Board) Move(dir Direction) (next *Board, changed bool) {
	dir.mustBeValid()

	next = b.clone()
	for _, line := range b.lines(dir) {
		next.resolveLine(line, dir)
	}

	if !next.hasPendingMotion() {
		return b, false
	}
	return next, true
}

// resolveLine scans one line toward its edge. Merges are pairwise and
// first-match-wins: once two tiles merge the anchor resets, so the doubled
// tile cannot merge again in the same move.
func (b *Board) resolveLine(line []Pos, dir Direction) {
	anchor := -1

	for i, p := range line {
		cell := b.at(p)

		if cell.IsEmpty() {
			b.advance(line[i+1:], dir)
			continue
		}

		if anchor < 0 {
			anchor = i
			continue
		}

		prev := b.at(line[anchor])
		if prev.value != cell.value {
			anchor = i
			continue
		}

		b.set(line[anchor], prev.markedGettingMerged())
		b.set(p, cell.markedMerging())
		b.advance(line[i:], dir)
		anchor = -1
	}
}

// advance moves every tile in line one step toward the edge.
func (b *Board) advance(line []Pos, dir Direction) {
	for _, p := range line {
		if c := b.at(p); !c.IsEmpty() {
			b.set(p, c.movedBy(1, dir))
		}
	}
}

func (b *Board) hasPendingMotion() bool {
	for _, row := range b.cells {
		for _, c := range row {
			if c.moving {
				return true
			}
		}
	}
	return false
}

// ApplyMoves settles a proposal board into a new board with no pending
// motion. Merge targets are dropped; every other tile lands on its
// destination, or stays where it is if it was not moving.
func (b *Board) ApplyMoves() *Board {
	return &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: b.settledGrid(),
	}
}

// ApplyMovesInPlace settles the receiver itself.
func (b *Board) ApplyMovesInPlace() {
	b.cells = b.settledGrid()
}

func (b *Board) settledGrid() [][]Cell {
	grid := newGrid(b.rows, b.cols)
	for _, row := range b.cells {
		for _, c := range row {
			switch {
			case c.IsMergeTarget():
				continue
			case c.moving:
				s := c.settled()
				grid[s.pos.Row][s.pos.Col] = s
			case !c.IsEmpty():
				grid[c.pos.Row][c.pos.Col] = c
			}
		}
	}
	return grid
}

// SpawnCells places value on n distinct empty cells picked uniformly at
// random. With fewer than n empty cells, or n <= 0, nothing happens and the
// receiver is returned with spawned == false. A zero-tile spawn never copies
// the board; callers compare the flag, not the pointer.
func (b *Board) SpawnCells(rng Rand, n, value int) (next *Board, spawned bool) {
	mustBeTileValue(value)

	empty := b.emptyPositions()
	if n <= 0 || len(empty) < n {
		return b, false
	}

	next = b.clone()
	next.fill(rng, empty, n, value)
	return next, true
}

// SpawnCellsInPlace is SpawnCells mutating the receiver.
func (b *Board) SpawnCellsInPlace(rng Rand, n, value int) bool {
	mustBeTileValue(value)

	empty := b.emptyPositions()
	if n <= 0 || len(empty) < n {
		return false
	}

	b.fill(rng, empty, n, value)
	return true
}

// fill runs a partial Fisher-Yates shuffle over empty: the first n slots
// end up holding a uniform sample without replacement.
func (b *Board) fill(rng Rand, empty []Pos, n, value int) {
	for i := range n {
		j := i + rng.Intn(len(empty)-i)
		empty[i], empty[j] = empty[j], empty[i]
		b.set(empty[i], b.at(empty[i]).withValue(value))
	}
}

func (b *Board) emptyPositions() []Pos {
	var empty []Pos
	for r, row := range b.cells {
		for c, cell := range row {
			if cell.IsEmpty() {
				empty = append(empty, Pos{r, c})
			}
		}
	}
	return empty
}

// CheckStatus reports StatusWon if any tile reaches threshold, otherwise
// StatusLost if no direction can change the board, otherwise
// StatusUndefined. A won board with no moves left still reports won.
func (b *Board) CheckStatus(threshold int) Status {
	if b.MaxTile() >= threshold {
		return StatusWon
	}
	if b.HasLegalMove() {
		return StatusUndefined
	}
	return StatusLost
}

// HasLegalMove reports whether Move would change the board in at least one
// direction. An all-empty board has no legal move.
func (b *Board) HasLegalMove() bool {
	for _, dir := range Directions {
		for _, line := range b.lines(dir) {
			if b.lineCanMove(line) {
				return true
			}
		}
	}
	return false
}

// lineCanMove reports whether a tile in line would slide into a gap or
// merge with its neighbour.
func (b *Board) lineCanMove(line []Pos) bool {
	prev := 0
	sawEmpty := false

	for _, p := range line {
		v := b.at(p).value
		if v == 0 {
			sawEmpty = true
			continue
		}
		if sawEmpty || v == prev {
			return true
		}
		prev = v
	}
	return false
}

// Score returns the sum of all tile values.
func (b *Board) Score() int {
	total := 0
	for _, row := range b.cells {
		for _, c := range row {
			total += c.value
		}
	}
	return total
}

// MaxTile returns the highest tile value on the board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, row := range b.cells {
		for _, c := range row {
			if c.value > maxVal {
				maxVal = c.value
			}
		}
	}
	return maxVal
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	return len(b.emptyPositions())
}

// TileCount returns the number of non-empty cells.
func (b *Board) TileCount() int {
	return b.rows*b.cols - b.EmptyCount()
}

// NonEmptyCells returns a snapshot of every tile in row-major order.
// This is all a view needs to draw the board.
func (b *Board) NonEmptyCells() []Cell {
	var cells []Cell
	for _, row := range b.cells {
		for _, c := range row {
			if !c.IsEmpty() {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// MovingCells returns the cells with pending motion in row-major order.
func (b *Board) MovingCells() []Cell {
	var cells []Cell
	for _, row := range b.cells {
		for _, c := range row {
			if c.moving {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// Values returns the tile values as a fresh matrix.
func (b *Board) Values() [][]int {
	values := make([][]int, b.rows)
	for r, row := range b.cells {
		values[r] = make([]int, b.cols)
		for c, cell := range row {
			values[r][c] = cell.value
		}
	}
	return values
}

// String renders the values one row per line.
func (b *Board) String() string {
	lines := make([]string, b.rows)
	for r, row := range b.cells {
		vals := make([]string, b.cols)
		for c, cell := range row {
			vals[c] = strconv.Itoa(cell.value)
		}
		lines[r] = strings.Join(vals, " ")
	}
	return strings.Join(lines, "\n")
}
