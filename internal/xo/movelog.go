package xo

import (
	"fmt"
	"strings"

	"github.com/roach88/kxo/internal/game"
	"github.com/roach88/kxo/internal/store"
)

// MovesPerGame caps a single game's log. A 4x4 game never exceeds it.
const MovesPerGame = game.NGrids

// MoveLog keeps the moves of every game played in this process.
type MoveLog struct {
	games [][]store.Move
}

// NewMoveLog returns a log with one empty game open.
func NewMoveLog() *MoveLog {
	return &MoveLog{games: [][]store.Move{nil}}
}

// Record appends a move to the open game. Moves beyond MovesPerGame and
// immediate repeats of the last cell are ignored.
func (l *MoveLog) Record(cell int, player game.Cell) {
	cur := l.games[len(l.games)-1]
	if len(cur) >= MovesPerGame {
		return
	}
	if n := len(cur); n > 0 && cur[n-1].Cell == cell {
		return
	}
	l.games[len(l.games)-1] = append(cur, store.Move{
		Ply:    len(cur) + 1,
		Cell:   cell,
		Player: player.String(),
	})
}

// Current returns the open game's moves.
func (l *MoveLog) Current() []store.Move {
	cur := l.games[len(l.games)-1]
	out := make([]store.Move, len(cur))
	copy(out, cur)
	return out
}

// NewGame closes the open game if it has any moves and opens a new one.
func (l *MoveLog) NewGame() {
	if len(l.games[len(l.games)-1]) == 0 {
		return
	}
	l.games = append(l.games, nil)
}

// Games returns the number of games with at least one move.
func (l *MoveLog) Games() int {
	n := 0
	for _, g := range l.games {
		if len(g) > 0 {
			n++
		}
	}
	return n
}

// String renders one line per game, e.g. "Game 1: A1 -> B2 -> C3".
func (l *MoveLog) String() string {
	var sb strings.Builder
	idx := 0
	for _, g := range l.games {
		if len(g) == 0 {
			continue
		}
		idx++
		fmt.Fprintf(&sb, "Game %d: %s\n", idx, FormatMoves(g))
	}
	return sb.String()
}

// FormatMoves joins move coordinates with arrows.
func FormatMoves(moves []store.Move) string {
	coords := make([]string, len(moves))
	for i, mv := range moves {
		coords[i] = game.Coordinate(mv.Cell)
	}
	return strings.Join(coords, " -> ")
}
