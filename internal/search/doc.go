// Package search holds the two move-selection algorithms that run as
// cooperative workloads: a depth-limited negamax that memoizes positions in
// the transposition cache, and a Monte Carlo tree search driven by the
// xoroshiro generator.
//
// Both operate on a private copy of the board and return a move index, or
// NoMove when the board has no empty cell.
package search

import "github.com/roach88/kxo/internal/game"

// NoMove is returned when no legal move exists.
const NoMove = -1

// Result is a chosen move and its score from the mover's point of view.
type Result struct {
	Move  int
	Score int
}

// Player picks a move for the side to play.
type Player interface {
	Predict(b *game.Board, player game.Cell) Result
}
