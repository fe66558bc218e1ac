package xo

import (
	"fmt"
	"log/slog"

	"github.com/roach88/kxo/internal/coro"
	"github.com/roach88/kxo/internal/game"
	"github.com/roach88/kxo/internal/search"
	"github.com/roach88/kxo/internal/store"
)

// Workload names accepted in Options.Tasks.
const (
	TaskAIOne    = "ai-one"
	TaskAITwo    = "ai-two"
	TaskCheckWin = "check-win"
	TaskDraw     = "draw"
	TaskKeyboard = "keyboard"
)

// Keyboard codes.
const (
	KeyCtrlP byte = 16
	KeyCtrlQ byte = 17
)

const clearScreen = "\033[H\033[J"

func knownTask(name string) bool {
	switch name {
	case TaskAIOne, TaskAITwo, TaskCheckWin, TaskDraw, TaskKeyboard:
		return true
	}
	return false
}

func (r *Runtime) entry(name string) coro.EntryFunc {
	switch name {
	case TaskAIOne:
		return coro.Forever(name, r.aiQuantum(game.O, r.aiOne))
	case TaskAITwo:
		return coro.Forever(name, r.aiQuantum(game.X, r.aiTwo))
	case TaskCheckWin:
		return coro.Forever(name, r.checkWinQuantum)
	case TaskDraw:
		return coro.Forever(name, r.drawQuantum)
	default:
		return coro.Forever(name, r.keyboardQuantum)
	}
}

// aiQuantum plays one move for player when it is player's turn.
func (r *Runtime) aiQuantum(player game.Cell, p search.Player) func(*coro.Task) {
	return func(t *coro.Task) {
		if r.paused {
			return
		}
		if r.turn == player && game.CheckWin(&r.board) == game.Empty {
			res := p.Predict(&r.board, player)
			if res.Move != search.NoMove {
				r.board[res.Move] = player
				r.moves.Record(res.Move, player)
				t.N++
			}
			r.turn = player.Opponent()
		}
		r.finish = true
	}
}

// checkWinQuantum ends a decided game.
func (r *Runtime) checkWinQuantum(*coro.Task) {
	w := game.CheckWin(&r.board)
	if w == game.Empty {
		return
	}

	if r.display {
		r.render()
	}
	r.finishGame(w)
}

// drawQuantum redraws after a move.
func (r *Runtime) drawQuantum(*coro.Task) {
	if !r.finish || !r.display {
		return
	}
	r.render()
	r.finish = false
}

// keyboardQuantum consumes at most one key without blocking.
func (r *Runtime) keyboardQuantum(*coro.Task) {
	select {
	case k, ok := <-r.input:
		if !ok {
			r.input = nil
			return
		}
		r.handleKey(k)
	default:
	}
}

func (r *Runtime) handleKey(k byte) {
	switch k {
	case KeyCtrlP, 'p':
		r.paused = !r.paused
		if r.paused {
			fmt.Fprint(r.out, "\n\n[Paused] Press Ctrl-P again to resume...\n")
		} else {
			fmt.Fprint(r.out, "[Resumed]\n")
		}
		slog.Debug("pause toggled", "paused", r.paused)
	case KeyCtrlQ, 'q':
		fmt.Fprint(r.out, "\n\nStopping the user space tic-tac-toe game...\n")
		slog.Info("stop requested from keyboard")
		r.sched.Stop()
	}
}

func (r *Runtime) render() {
	if r.clear {
		fmt.Fprint(r.out, clearScreen)
	}
	fmt.Fprint(r.out, game.Render(&r.board))
	fmt.Fprintf(r.out, "\nElapsed Time: %d seconds\n", int(r.now().Sub(r.start).Seconds()))
}

// finishGame records the result and prepares the next game. The cache is
// invalidated here because keys from one game say nothing useful about the
// next and there is no other eviction.
func (r *Runtime) finishGame(winner game.Cell) {
	ended := r.now()
	rec := store.Game{
		ID:         r.ids.Generate(),
		Winner:     winner.String(),
		FinalBoard: game.Compress(&r.board),
		Seed:       r.seed,
		StartedAt:  r.gameStart,
		EndedAt:    ended,
		Moves:      r.moves.Current(),
	}

	if r.recorder != nil {
		if _, err := r.recorder.SaveGame(r.ctx, rec); err != nil {
			slog.Error("failed to record game", "game_id", rec.ID, "error", err)
		}
	}

	r.games++
	r.tally[winner]++
	slog.Info("game finished",
		"game", r.games,
		"game_id", rec.ID,
		"winner", rec.Winner,
		"moves", FormatMoves(rec.Moves),
		"cache_entries", r.cache.Len(),
	)

	r.board.Reset()
	r.cache.Invalidate()
	r.moves.NewGame()
	r.gameStart = ended

	if r.maxGames > 0 && r.games >= r.maxGames {
		slog.Info("game limit reached", "games", r.games)
		r.sched.Stop()
	}
}
