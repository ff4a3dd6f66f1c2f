package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/game-hub/internal/core"
)

const (
	cellWidth  = 6 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// tileColor picks a color per tile value, warming up as tiles grow.
func tileColor(v int) core.Color {
	switch {
	case v <= 4:
		return core.ColorBrightWhite
	case v == 8:
		return core.ColorOrange
	case v <= 32:
		return core.ColorBrightRed
	case v == 64:
		return core.ColorRed
	case v <= 512:
		return core.ColorBrightYellow
	case v <= 2048:
		return core.ColorYellow
	default:
		return core.ColorBrightMagenta
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.engine == nil {
		return
	}

	s := g.engine.State()

	boardW := BoardSize*cellWidth + 1
	boardH := BoardSize*cellHeight + 1

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, s, boardX, boardW)
	renderBoard(dst, s.Board, boardX, boardY)

	if s.Terminal {
		area := core.Rect{X: boardX, Y: boardY, W: boardW, H: boardH}
		drawOverlay(dst, area,
			"GAME OVER",
			fmt.Sprintf("Final Score: %d", s.Score),
			"Press R for a new game")
	}

	dst.DrawTextCentered(boardY+boardH+1, g.Controls())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Bounds().Centered(0, 2).Y
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, s State, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", s.Score))

	best := fmt.Sprintf("Best: %d", s.BestScore)
	dst.DrawText(max(boardX, boardX+boardW-len(best)), 1, best)

	maxStr := fmt.Sprintf("Max tile: %d", MaxTile(s.Board))
	dst.DrawTextColored(boardX+(boardW-len(maxStr))/2, 2, maxStr, core.ColorGray)
}

// renderBoard draws the 4x4 grid with tiles.
func renderBoard(dst *core.Screen, board Board, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for y := range BoardSize {
		for x := range BoardSize {
			val := board[y][x]
			if val == 0 {
				continue
			}

			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, tileColor(val))
		}
	}
}

// drawOverlay draws a boxed message centered over area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := box.X + (box.W-len(line))/2
		dst.DrawTextColored(x, box.Y+1+i, line, core.ColorBrightRed)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | R: New game | Q: Quit"
}
