// Package t2048 implements the 2048 tile-merge puzzle: a 4x4 grid engine
// with directional shifts, single-pass merges, random spawns and
// terminal-state detection.
package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every move direction.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts "up", "down", "left" or "right" (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

// BoardSize is the board dimension.
const BoardSize = 4

// Board represents a 4x4 game board indexed [row][col]. Zero is an empty cell.
type Board [BoardSize][BoardSize]int

// Row is a single board row.
type Row = [BoardSize]int

// Cell is a board coordinate.
type Cell struct{ X, Y int }

// MoveResult is the outcome of sliding a board in one direction.
type MoveResult struct {
	Board  Board
	Score  int  // Score after the move
	Gained int  // Sum of all merge results in this move
	Moved  bool // Whether any tile changed position or value
}

// slideRow compacts a row to the left and merges equal neighbours once.
// A tile produced by a merge never merges again in the same call.
func slideRow(row Row) (result Row, gained int) {
	tiles := make([]int, 0, BoardSize)
	for _, v := range row {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	w := 0
	for i := 0; i < len(tiles); i++ {
		if i+1 < len(tiles) && tiles[i] == tiles[i+1] {
			merged := tiles[i] * 2
			result[w] = merged
			gained += merged
			i++ // second tile is consumed
		} else {
			result[w] = tiles[i]
		}
		w++
	}

	return result, gained
}

// slideLeft applies slideRow to every row. This is the canonical move;
// every other direction is expressed through a board transform.
func slideLeft(board Board) (Board, int) {
	var out Board
	total := 0
	for y := range BoardSize {
		row, gained := slideRow(board[y])
		out[y] = row
		total += gained
	}
	return out, total
}

// reverseRows mirrors the board left to right.
func reverseRows(board Board) Board {
	var out Board
	for y := range BoardSize {
		for x := range BoardSize {
			out[y][x] = board[y][BoardSize-1-x]
		}
	}
	return out
}

// rotateCW rotates the board 90 degrees clockwise.
func rotateCW(board Board) Board {
	var out Board
	for y := range BoardSize {
		for x := range BoardSize {
			out[y][x] = board[BoardSize-1-x][y]
		}
	}
	return out
}

// rotateCCW rotates the board 270 degrees clockwise.
func rotateCCW(board Board) Board {
	return rotateCW(rotateCW(rotateCW(board)))
}

// transform maps a direction onto the canonical left move and back.
type transform struct {
	in  func(Board) Board
	out func(Board) Board
}

func identity(b Board) Board { return b }

var transforms = map[Direction]transform{
	DirLeft:  {in: identity, out: identity},
	DirRight: {in: reverseRows, out: reverseRows},
	DirUp:    {in: rotateCCW, out: rotateCW},
	DirDown:  {in: rotateCW, out: rotateCCW},
}

// ApplyMove slides and merges the board in the given direction.
// When nothing changes the input board and score are returned untouched
// with Moved set to false. No tile is spawned here.
func ApplyMove(board Board, score int, dir Direction) MoveResult {
	unchanged := MoveResult{Board: board, Score: score}

	t, ok := transforms[dir]
	if !ok {
		return unchanged
	}

	canonical := t.in(board)
	slid, gained := slideLeft(canonical)
	if slid == canonical {
		return unchanged
	}

	return MoveResult{
		Board:  t.out(slid),
		Score:  score + gained,
		Gained: gained,
		Moved:  true,
	}
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// TileCount returns the number of non-empty cells.
func TileCount(board Board) int {
	n := 0
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] != 0 {
				n++
			}
		}
	}
	return n
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(board Board) bool {
	return TileCount(board) < BoardSize*BoardSize
}

// HasPossibleMerge returns true if any horizontally or vertically
// adjacent tiles hold the same value.
func HasPossibleMerge(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			val := board[y][x]
			if x < BoardSize-1 && board[y][x+1] == val {
				return true
			}
			if y < BoardSize-1 && board[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(board Board) bool {
	return HasEmptyCell(board) || HasPossibleMerge(board)
}

// IsGameOver returns true when the board is full and no adjacent pair can merge.
func IsGameOver(board Board) bool {
	return !CanMove(board)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for y := range BoardSize {
		for x := range BoardSize {
			maxVal = max(maxVal, board[y][x])
		}
	}
	return maxVal
}

// ValidBoard reports whether every cell is 0 or a power of two >= 2.
func ValidBoard(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			v := board[y][x]
			if v == 0 {
				continue
			}
			if v < 2 || v&(v-1) != 0 {
				return false
			}
		}
	}
	return true
}

// String renders the board as rows of space-separated values.
func (b Board) String() string {
	var sb strings.Builder
	for y := range BoardSize {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range BoardSize {
			if x > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%4d", b[y][x])
		}
	}
	return sb.String()
}
