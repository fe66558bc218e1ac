package search

import "github.com/roach88/kxo/internal/game"

const (
	// WinScore is the magnitude of a decided position. Shallower wins score higher.
	WinScore = 1000
)

// lineWeights[n] is the value of a line holding n of one player's marks and
// none of the opponent's.
var lineWeights = [game.Goal + 1]int{0, 1, 8, WinScore}

// Evaluate scores b for player: positive favours player.
func Evaluate(b *game.Board, player game.Cell) int {
	opp := player.Opponent()
	score := 0
	for _, line := range game.Lines() {
		mine, theirs := 0, 0
		for _, cell := range line {
			switch b[cell] {
			case player:
				mine++
			case opp:
				theirs++
			}
		}
		switch {
		case theirs == 0:
			score += lineWeights[mine]
		case mine == 0:
			score -= lineWeights[theirs]
		}
	}
	return score
}
