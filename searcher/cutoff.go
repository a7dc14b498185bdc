package searcher

import (
	"math"

	"leaper/game"
)

// Cutoff is alpha-beta search that stops CutoffDepth plies early and scores
// the frontier with the advancement heuristic. The root is always expanded.
// b is not mutated.
func Cutoff(b *game.Board, depth int, maxTurn bool, alpha, beta float64) Result {
	move, value, found := newNode(b.Copy()).cutoffSearch(depth, maxTurn, alpha, beta, true)
	return Result{Move: move, Value: value, Found: found}
}

func (n *node) cutoffTest(depth int) bool {
	return depth <= n.cutoff
}

// terminal scores a finished game with the winner's advancement.
func (n *node) terminal() float64 {
	winner, _ := n.board.Winner()
	return n.evaluate(n.board, winner == game.Friendly)
}

func (n *node) cutoffSearch(depth int, maxTurn bool, alpha, beta float64, root bool) (game.Move, float64, bool) {
	n.metrics.AddNode()
	if n.board.Over() {
		return game.Move{}, n.terminal(), false
	}
	if !root && n.cutoffTest(depth) {
		return game.Move{}, n.evaluate(n.board, maxTurn), false
	}

	side := sideToMove(maxTurn)
	moves := n.board.AvailableMoves(side)
	if len(moves) == 0 {
		return game.Move{}, n.evaluate(n.board, maxTurn), false
	}

	value := initial(maxTurn)
	var bestMove game.Move
	for _, move := range moves {
		change := n.board.Apply(side, move)
		_, score, _ := n.cutoffSearch(depth-1, !maxTurn, alpha, beta, false)
		if root && score == value {
			score = n.confirmTie(maxTurn, value, alpha, beta, func(alpha, beta float64) float64 {
				_, s, _ := n.cutoffSearch(depth-1, !maxTurn, alpha, beta, false)
				return s
			})
		}
		n.board.Revert(change)

		if !improves(maxTurn, score, value) {
			continue
		}
		value = score
		bestMove = move
		if maxTurn {
			alpha = math.Max(alpha, value)
		} else {
			beta = math.Min(beta, value)
		}
		if beta <= alpha {
			n.metrics.AddPrune()
			break
		}
	}
	return bestMove, value, true
}
