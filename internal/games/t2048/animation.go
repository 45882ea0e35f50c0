package t2048

// TileAnimation represents an animated tile.
type TileAnimation struct {
	ID       uint64  // Cell identifier, stable across the turn
	Value    int     // Value shown while animating
	FromRow  int     // Start position (in cells)
	FromCol  int
	ToRow    int     // End position (in cells)
	ToCol    int
	Progress float64 // 0.0 → 1.0
	Merged   bool    // Takes part in a merge (for visual effect)
	IsNew    bool    // New tile (for pop effect)
}

// Animations returns the tiles in motion for the current phase: one entry
// per moving cell while sliding, one per spawned cell while popping, none
// when idle.
func (g *Game) Animations() []TileAnimation {
	progress := g.phaseProgress()

	switch g.phase {
	case PhaseSlide:
		moving := g.proposal.MovingCells()
		anims := make([]TileAnimation, 0, len(moving))
		for _, c := range moving {
			dest, _ := c.Destination()
			anims = append(anims, TileAnimation{
				ID:       c.ID(),
				Value:    c.Value(),
				FromRow:  c.Row(),
				FromCol:  c.Col(),
				ToRow:    dest.Row,
				ToCol:    dest.Col,
				Progress: progress,
				Merged:   c.IsMergeSource() || c.IsMergeTarget(),
			})
		}
		return anims

	case PhasePop:
		anims := make([]TileAnimation, 0, len(g.spawned))
		for _, c := range g.spawned {
			anims = append(anims, TileAnimation{
				ID:       c.ID(),
				Value:    c.Value(),
				FromRow:  c.Row(),
				FromCol:  c.Col(),
				ToRow:    c.Row(),
				ToCol:    c.Col(),
				Progress: progress,
				IsNew:    true,
			})
		}
		return anims
	}

	return nil
}

// phaseProgress returns how far the current phase has advanced.
func (g *Game) phaseProgress() float64 {
	var duration int
	switch g.phase {
	case PhaseSlide:
		duration = g.cfg.Animation.SlideTicks
	case PhasePop:
		duration = g.cfg.Animation.PopTicks
	default:
		return 0
	}

	if duration <= 0 {
		return 1
	}
	return min(float64(g.phaseTick)/float64(duration), 1)
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition calculates the current position during animation.
func (a *TileAnimation) interpolatePosition() (row, col float64) {
	t := easeOutQuad(a.Progress)
	row = float64(a.FromRow) + (float64(a.ToRow)-float64(a.FromRow))*t
	col = float64(a.FromCol) + (float64(a.ToCol)-float64(a.FromCol))*t
	return row, col
}
