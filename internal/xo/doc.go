// Package xo runs a tic-tac-toe match between two AIs as a set of
// cooperative tasks on the coro scheduler.
//
// The Runtime is the single context object that owns all state shared
// between tasks: the board, the turn indicator, the redraw flag, the
// transposition cache, the Zobrist table and the move log. Tasks only touch
// it inside their quanta, and every quantum leaves it consistent, since any
// other task may run before the next one.
//
// Workloads (by registration name):
//
//	ai-one     MCTS, plays O
//	ai-two     negamax with the transposition cache, plays X
//	check-win  ends finished games, records them, resets the board, invalidates the cache
//	draw       renders the board when a move was made
//	keyboard   polls keys without blocking: Ctrl-P/p pauses, Ctrl-Q/q stops
package xo
