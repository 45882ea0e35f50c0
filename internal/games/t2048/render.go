package t2048

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// minScreenSize returns the smallest screen the board and HUD fit on.
func (g *Game) minScreenSize() (w, h int) {
	boardW := g.cols*cellWidth + 1
	boardH := g.rows*cellHeight + 1
	return max(boardW, 25), boardH + hudHeight + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	// Calculate board position (centered)
	boardW := g.cols*cellWidth + 1  // +1 for right border
	boardH := g.rows*cellHeight + 1 // +1 for bottom border

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreenSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d for a %dx%d board", minW, minH, g.rows, g.cols))
}

// renderHUD draws the score, best score and goal.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := fmt.Sprintf("2048 %dx%d", g.rows, g.cols)
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.Score()))

	bestStr := fmt.Sprintf("Best: %d", g.BestScore())
	dst.DrawText(max(boardX+boardW-len(bestStr), boardX), 1, bestStr)

	info := fmt.Sprintf("Goal: %d  Moves: %d", g.cfg.Rules.WinThreshold, g.moves)
	dst.DrawTextColored(boardX+(boardW-len(info))/2, 2, info, core.ColorGray)
}

// renderGrid draws the rows x cols grid lines.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	for y := range g.rows + 1 {
		for x := range g.cols + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == g.cols:
				corner = '┐'
			case y == g.rows && x == 0:
				corner = '└'
			case y == g.rows && x == g.cols:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == g.rows:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == g.cols:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			// Draw horizontal line to the right
			if x < g.cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}

			// Draw vertical line down
			if y < g.rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws the tiles for the current phase.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	switch g.phase {
	case PhaseSlide:
		// Resting tiles first, travelling ones on top.
		for _, c := range g.proposal.NonEmptyCells() {
			if !c.IsMoving() {
				drawTile(dst, boardX, boardY, float64(c.Row()), float64(c.Col()), c.Value())
			}
		}
		for _, a := range g.Animations() {
			row, col := a.interpolatePosition()
			drawTile(dst, boardX, boardY, row, col, a.Value)
		}

	case PhasePop:
		popping := make(map[uint64]bool, len(g.spawned))
		for _, a := range g.Animations() {
			popping[a.ID] = true
			if a.Progress < 0.5 {
				drawLabel(dst, boardX, boardY, float64(a.ToRow), float64(a.ToCol), "·", tileColor(a.Value))
				continue
			}
			drawTile(dst, boardX, boardY, float64(a.ToRow), float64(a.ToCol), a.Value)
		}
		for _, c := range g.board.NonEmptyCells() {
			if !popping[c.ID()] {
				drawTile(dst, boardX, boardY, float64(c.Row()), float64(c.Col()), c.Value())
			}
		}

	default:
		for _, c := range g.board.NonEmptyCells() {
			drawTile(dst, boardX, boardY, float64(c.Row()), float64(c.Col()), c.Value())
		}
	}
}

// drawTile draws a value centered in the cell at a possibly fractional
// grid position.
func drawTile(dst *core.Screen, boardX, boardY int, row, col float64, value int) {
	drawLabel(dst, boardX, boardY, row, col, formatValue(value), tileColor(value))
}

func drawLabel(dst *core.Screen, boardX, boardY int, row, col float64, label string, color core.Color) {
	cellX := boardX + int(math.Round(col*cellWidth)) + 1
	cellY := boardY + int(math.Round(row*cellHeight)) + 1

	width := len([]rune(label))
	padLeft := max((cellWidth-1-width)/2, 0)
	dst.DrawTextColored(cellX+padLeft, cellY, label, color)
}

// formatValue fits a tile value into one cell, switching to a power
// notation when the digits do not fit.
func formatValue(value int) string {
	s := strconv.Itoa(value)
	if len(s) < cellWidth {
		return s
	}
	return fmt.Sprintf("2^%d", bits.TrailingZeros(uint(value)))
}

// tileColor picks a color per tile value.
func tileColor(value int) core.Color {
	switch value {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorYellow
	case 16:
		return core.ColorOrange
	case 32:
		return core.ColorRed
	case 64:
		return core.ColorBrightRed
	case 128:
		return core.ColorBrightYellow
	case 256:
		return core.ColorGreen
	case 512:
		return core.ColorBrightGreen
	case 1024:
		return core.ColorCyan
	case 2048:
		return core.ColorBrightMagenta
	default:
		return core.ColorMagenta
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX, centerY := core.NewRect(boardX, boardY, boardW, boardH).Center()

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.status == StatusWon:
		maxStr := fmt.Sprintf("Reached %d!", g.board.MaxTile())
		g.drawOverlay(dst, centerX, centerY, "YOU WIN!", maxStr, "Press R to restart")
	case g.status == StatusLost:
		maxStr := fmt.Sprintf("Max tile: %d", g.board.MaxTile())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
