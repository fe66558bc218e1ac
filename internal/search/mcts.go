package search

import (
	"log/slog"
	"math"

	"github.com/roach88/kxo/internal/game"
	"github.com/roach88/kxo/internal/xoroshiro"
)

const (
	// DefaultIterations is the default number of MCTS playouts per move.
	DefaultIterations = 2000
	// explorationC is the UCT exploration constant (sqrt 2).
	explorationC = math.Sqrt2
)

type mctsNode struct {
	move     int
	mover    game.Cell // player who made move
	parent   *mctsNode
	children []*mctsNode
	untried  []int
	visits   int
	score    float64
}

func newMCTSNode(parent *mctsNode, move int, mover game.Cell, b *game.Board) *mctsNode {
	n := &mctsNode{move: move, mover: mover, parent: parent}
	if game.CheckWin(b) == game.Empty {
		n.untried = b.Available()
	}
	return n
}

func (n *mctsNode) uct() float64 {
	if n.visits == 0 {
		return math.Inf(1)
	}
	exploit := n.score / float64(n.visits)
	explore := explorationC * math.Sqrt(math.Log(float64(n.parent.visits))/float64(n.visits))
	return exploit + explore
}

func (n *mctsNode) bestChild() *mctsNode {
	var best *mctsNode
	bestVal := math.Inf(-1)
	for _, c := range n.children {
		if v := c.uct(); v > bestVal {
			best, bestVal = c, v
		}
	}
	return best
}

// MCTS is a UCT Monte Carlo tree search with uniformly random rollouts.
type MCTS struct {
	rng        *xoroshiro.Source
	iterations int
}

// MCTSOption configures an MCTS.
type MCTSOption func(*MCTS)

// WithIterations sets the playout budget per move. Values below 1 are ignored.
func WithIterations(n int) MCTSOption {
	return func(m *MCTS) {
		if n > 0 {
			m.iterations = n
		}
	}
}

// NewMCTS creates a searcher drawing randomness from rng.
func NewMCTS(rng *xoroshiro.Source, opts ...MCTSOption) *MCTS {
	m := &MCTS{rng: rng, iterations: DefaultIterations}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Predict returns the most visited root move for player. b is not modified.
// Score is the root child's mean reward scaled to [-WinScore, WinScore].
func (m *MCTS) Predict(b *game.Board, player game.Cell) Result {
	if len(b.Available()) == 0 || game.CheckWin(b) != game.Empty {
		return Result{Move: NoMove}
	}

	root := newMCTSNode(nil, NoMove, player.Opponent(), b)
	for i := 0; i < m.iterations; i++ {
		work := *b
		node := root

		// Selection.
		for len(node.untried) == 0 && len(node.children) > 0 {
			node = node.bestChild()
			work[node.move] = node.mover
		}

		// Expansion.
		if len(node.untried) > 0 {
			idx := m.rng.Intn(len(node.untried))
			mv := node.untried[idx]
			node.untried[idx] = node.untried[len(node.untried)-1]
			node.untried = node.untried[:len(node.untried)-1]

			mover := node.mover.Opponent()
			work[mv] = mover
			child := newMCTSNode(node, mv, mover, &work)
			node.children = append(node.children, child)
			node = child
		}

		// Simulation.
		winner := m.rollout(&work, node.mover.Opponent())

		// Backpropagation.
		for n := node; n != nil; n = n.parent {
			n.visits++
			switch winner {
			case n.mover:
				n.score++
			case game.Draw:
				n.score += 0.5
			}
		}
	}

	var best *mctsNode
	for _, c := range root.children {
		if best == nil || c.visits > best.visits {
			best = c
		}
	}

	res := Result{Move: best.move, Score: int((best.score/float64(best.visits)*2 - 1) * WinScore)}
	slog.Debug("mcts predict",
		"player", player.String(),
		"move", game.Coordinate(res.Move),
		"visits", best.visits,
		"iterations", m.iterations,
	)
	return res
}

// rollout plays random moves from b with toMove to play until the game ends.
func (m *MCTS) rollout(b *game.Board, toMove game.Cell) game.Cell {
	for {
		if w := game.CheckWin(b); w != game.Empty {
			return w
		}
		moves := b.Available()
		b[moves[m.rng.Intn(len(moves))]] = toMove
		toMove = toMove.Opponent()
	}
}
