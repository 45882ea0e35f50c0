package t2048

import (
	"fmt"
	"sync/atomic"
)

// nextCellID hands out cell identifiers. It only grows, so an identifier is
// never reused while the process lives.
var nextCellID atomic.Uint64

// Pos is a grid position.
type Pos struct {
	Row, Col int
}

// CellState is the per-turn state of a cell.
type CellState int

const (
	CellEmpty       CellState = iota // value 0, not moving
	CellSettled                      // value > 0, not moving
	CellMoving                       // destination set, no merge role
	CellMergeSource                  // moving into another cell, adopts the doubled value
	CellMergeTarget                  // absorbed by a merge source, removed on settle
)

// String returns the state name.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellSettled:
		return "settled"
	case CellMoving:
		return "moving"
	case CellMergeSource:
		return "merge_source"
	case CellMergeTarget:
		return "merge_target"
	default:
		return "unknown"
	}
}

type mergeRole uint8

const (
	roleNone mergeRole = iota
	roleSource
	roleTarget
)

// Cell is one grid position's tile together with its pending motion for the
// current turn. Cells are values: every transition returns a new Cell and
// the identifier travels with it.
type Cell struct {
	id      uint64
	pos     Pos
	value   int
	pending int
	dest    Pos
	moving  bool
	role    mergeRole
}

func newCell(row, col int) Cell {
	return Cell{
		id:  nextCellID.Add(1),
		pos: Pos{Row: row, Col: col},
	}
}

// ID returns the stable identifier used by views to track a tile across turns.
func (c Cell) ID() uint64 { return c.id }

// Pos returns the settled position.
func (c Cell) Pos() Pos { return c.pos }

// Row returns the settled row.
func (c Cell) Row() int { return c.pos.Row }

// Col returns the settled column.
func (c Cell) Col() int { return c.pos.Col }

// Value returns the tile value, 0 for an empty cell.
func (c Cell) Value() int { return c.value }

// PendingValue returns the value adopted on settle, 0 if none.
func (c Cell) PendingValue() int { return c.pending }

// Destination returns the target position while the cell is moving.
func (c Cell) Destination() (Pos, bool) {
	return c.dest, c.moving
}

// IsEmpty reports whether the cell holds no tile.
func (c Cell) IsEmpty() bool { return c.value == 0 }

// IsMoving reports whether the cell has pending motion.
func (c Cell) IsMoving() bool { return c.moving }

// IsMergeSource reports whether the cell moves into another one and merges.
func (c Cell) IsMergeSource() bool { return c.role == roleSource }

// IsMergeTarget reports whether another cell merges into this one.
func (c Cell) IsMergeTarget() bool { return c.role == roleTarget }

// State returns the tagged state of the cell.
func (c Cell) State() CellState {
	switch {
	case c.role == roleTarget:
		return CellMergeTarget
	case c.role == roleSource:
		return CellMergeSource
	case c.moving:
		return CellMoving
	case c.value == 0:
		return CellEmpty
	default:
		return CellSettled
	}
}

// movedBy pushes the destination amount steps in dir. Repeated calls
// within one turn accumulate.
func (c Cell) movedBy(amount int, dir Direction) Cell {
	if !c.moving {
		c.dest = c.pos
		c.moving = true
	}

	switch dir {
	case DirUp:
		c.dest.Row -= amount
	case DirDown:
		c.dest.Row += amount
	case DirLeft:
		c.dest.Col -= amount
	case DirRight:
		c.dest.Col += amount
	default:
		panic(fmt.Sprintf("t2048: invalid direction %d", int(dir)))
	}
	return c
}

// markedMerging makes c the merge source; it doubles on settle.
func (c Cell) markedMerging() Cell {
	c.role = roleSource
	c.pending = c.value * 2
	return c
}

// markedGettingMerged makes c the merge target; it disappears on settle.
func (c Cell) markedGettingMerged() Cell {
	c.role = roleTarget
	return c
}

// settled collapses pending motion into the position and promotes the
// pending value. Cells without motion are returned unchanged.
func (c Cell) settled() Cell {
	if !c.moving {
		return c
	}
	c.pos = c.dest
	if c.pending != 0 {
		c.value = c.pending
		c.pending = 0
	}
	c.dest = Pos{}
	c.moving = false
	c.role = roleNone
	return c
}

func (c Cell) withValue(v int) Cell {
	c.value = v
	return c
}
