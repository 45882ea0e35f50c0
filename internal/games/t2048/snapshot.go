package t2048

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Rows    int
	Cols    int
	Values  [][]int
	Score   int
	MaxTile int // Highest tile on board
	Moves   int
	Status  string // "yet_undefined", "won" or "lost"
	Phase   string // "idle", "slide" or "pop"
	Paused  bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tick,
		Rows:    g.rows,
		Cols:    g.cols,
		Values:  g.board.Values(),
		Score:   g.board.Score(),
		MaxTile: g.board.MaxTile(),
		Moves:   g.moves,
		Status:  g.status.String(),
		Phase:   g.phase.String(),
		Paused:  g.paused || g.tooSmall,
	}
}
