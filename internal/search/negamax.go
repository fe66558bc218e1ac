package search

import (
	"log/slog"

	"github.com/roach88/kxo/internal/game"
	"github.com/roach88/kxo/internal/tt"
	"github.com/roach88/kxo/internal/zobrist"
)

// DefaultDepth is the default search horizon in plies.
const DefaultDepth = 6

const (
	sideSalt  uint64 = 0x9e3779b97f4a7c15
	depthSalt uint64 = 0xbf58476d1ce4e5b9
)

// Negamax is an alpha-beta negamax that caches exact results by position key.
//
// The cache key folds the side to move and the remaining depth into the
// board fingerprint, so results searched to different horizons never mix.
// Only exact scores (strictly inside the alpha-beta window) are stored,
// because the cache has no room for bound flags.
type Negamax struct {
	cache *tt.Cache
	keys  *zobrist.Table
	depth int

	nodes     int64
	cacheHits int64
}

// NegamaxOption configures a Negamax.
type NegamaxOption func(*Negamax)

// WithDepth sets the search horizon. Values below 1 are ignored.
func WithDepth(d int) NegamaxOption {
	return func(n *Negamax) {
		if d > 0 {
			n.depth = d
		}
	}
}

// NewNegamax creates a searcher backed by cache and keys.
func NewNegamax(cache *tt.Cache, keys *zobrist.Table, opts ...NegamaxOption) *Negamax {
	n := &Negamax{cache: cache, keys: keys, depth: DefaultDepth}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Nodes returns the number of positions visited since creation.
func (n *Negamax) Nodes() int64 {
	return n.nodes
}

// CacheHits returns how many subtrees were answered from the cache.
func (n *Negamax) CacheHits() int64 {
	return n.cacheHits
}

// Predict returns the best move for player on b. b is not modified.
func (n *Negamax) Predict(b *game.Board, player game.Cell) Result {
	work := *b
	h := n.keys.Hash(&work)
	res := n.search(&work, h, n.depth, -WinScore*2, WinScore*2, player, 0)

	slog.Debug("negamax predict",
		"player", player.String(),
		"move", game.Coordinate(res.Move),
		"score", res.Score,
		"nodes", n.nodes,
	)
	return res
}

func (n *Negamax) key(h uint64, depth int, player game.Cell) uint64 {
	k := h ^ uint64(depth)*depthSalt
	if player == game.X {
		k ^= sideSalt
	}
	return k
}

func (n *Negamax) search(b *game.Board, h uint64, depth, alpha, beta int, player game.Cell, ply int) Result {
	n.nodes++

	switch w := game.CheckWin(b); w {
	case game.Draw:
		return Result{Move: NoMove, Score: 0}
	case game.Empty:
	default:
		// The previous mover won.
		if w == player {
			return Result{Move: NoMove, Score: WinScore - ply}
		}
		return Result{Move: NoMove, Score: -(WinScore - ply)}
	}
	if depth == 0 {
		return Result{Move: NoMove, Score: Evaluate(b, player)}
	}

	key := n.key(h, depth, player)
	if e, ok := n.cache.Lookup(key); ok {
		n.cacheHits++
		return Result{Move: e.Move, Score: e.Score}
	}

	alphaOrig := alpha
	best := Result{Move: NoMove, Score: -WinScore * 2}
	for _, mv := range b.Available() {
		b[mv] = player
		child := n.search(b, n.keys.Toggle(h, mv, player), depth-1, -beta, -alpha, player.Opponent(), ply+1)
		b[mv] = game.Empty

		score := -child.Score
		if score > best.Score {
			best = Result{Move: mv, Score: score}
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	if best.Score > alphaOrig && best.Score < beta {
		// A failed insert only costs a future re-search.
		_ = n.cache.Insert(key, best.Score, best.Move)
	}
	return best
}
