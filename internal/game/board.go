// Package game holds the tic-tac-toe board model shared by the workloads:
// cells, win detection, move coordinates, the compressed wire encoding and the
// text renderer.
package game

import (
	"fmt"
	"strings"
)

const (
	// BoardSize is the side length of the square board.
	BoardSize = 4
	// Goal is the number of aligned marks needed to win.
	Goal = 3
	// NGrids is the number of cells on the board.
	NGrids = BoardSize * BoardSize
)

// Cell is the content of one board square.
type Cell byte

const (
	Empty Cell = ' '
	O     Cell = 'O'
	X     Cell = 'X'
	// Draw is returned by CheckWin when the board is full without a winner.
	Draw Cell = 'D'
)

// Opponent returns the other player. Empty maps to Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case O:
		return X
	case X:
		return O
	default:
		return Empty
	}
}

// Index maps a player to its occupant class: O is 0, X is 1, anything else -1.
func (c Cell) Index() int {
	switch c {
	case O:
		return 0
	case X:
		return 1
	default:
		return -1
	}
}

func (c Cell) String() string {
	return string(rune(c))
}

// Board is a row-major 4x4 grid.
type Board [NGrids]Cell

// NewBoard returns an empty board.
func NewBoard() Board {
	var b Board
	b.Reset()
	return b
}

// Reset clears every cell.
func (b *Board) Reset() {
	for i := range b {
		b[i] = Empty
	}
}

// Available returns the empty cells in ascending order.
func (b *Board) Available() []int {
	moves := make([]int, 0, NGrids)
	for i, c := range b {
		if c == Empty {
			moves = append(moves, i)
		}
	}
	return moves
}

// Full reports whether no empty cell remains.
func (b *Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Count returns how many cells hold c.
func (b *Board) Count(c Cell) int {
	n := 0
	for _, v := range b {
		if v == c {
			n++
		}
	}
	return n
}

// lines lists every run of Goal cells: rows, columns and both diagonals.
var lines = buildLines()

func buildLines() [][Goal]int {
	var out [][Goal]int
	dirs := [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			for _, d := range dirs {
				endR := r + d[0]*(Goal-1)
				endC := c + d[1]*(Goal-1)
				if endR < 0 || endR >= BoardSize || endC < 0 || endC >= BoardSize {
					continue
				}
				var line [Goal]int
				for k := 0; k < Goal; k++ {
					line[k] = (r+d[0]*k)*BoardSize + c + d[1]*k
				}
				out = append(out, line)
			}
		}
	}
	return out
}

// Lines returns every winning line. The slice must not be modified.
func Lines() [][Goal]int {
	return lines
}

// CheckWin returns the winner, Draw when the board is full, or Empty while
// the game is still running.
func CheckWin(b *Board) Cell {
	for _, line := range lines {
		first := b[line[0]]
		if first == Empty {
			continue
		}
		won := true
		for k := 1; k < Goal; k++ {
			if b[line[k]] != first {
				won = false
				break
			}
		}
		if won {
			return first
		}
	}
	if b.Full() {
		return Draw
	}
	return Empty
}

// Coordinate renders a move index as column letter plus row digit, e.g. "A1".
func Coordinate(move int) string {
	if move < 0 || move >= NGrids {
		return "??"
	}
	col := move % BoardSize
	row := move / BoardSize
	return fmt.Sprintf("%c%c", 'A'+col, '1'+row)
}

// ParseCoordinate is the inverse of Coordinate.
func ParseCoordinate(s string) (int, error) {
	if len(s) != 2 {
		return -1, fmt.Errorf("invalid coordinate %q", s)
	}
	col := int(strings.ToUpper(s[:1])[0] - 'A')
	row := int(s[1] - '1')
	if col < 0 || col >= BoardSize || row < 0 || row >= BoardSize {
		return -1, fmt.Errorf("coordinate %q out of range", s)
	}
	return row*BoardSize + col, nil
}

// Compress packs the board into 2 bits per cell: 0 empty, 1 O, 2 X.
func Compress(b *Board) uint32 {
	var bits uint32
	for i, c := range b {
		var v uint32
		switch c {
		case O:
			v = 1
		case X:
			v = 2
		}
		bits |= v << (i * 2)
	}
	return bits
}

// Decompress is the inverse of Compress.
func Decompress(bits uint32) Board {
	var b Board
	for i := range b {
		switch (bits >> (i * 2)) & 0x3 {
		case 1:
			b[i] = O
		case 2:
			b[i] = X
		default:
			b[i] = Empty
		}
	}
	return b
}
