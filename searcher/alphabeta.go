package searcher

import (
	"math"

	"leaper/game"
)

// AlphaBeta is minimax with alpha-beta pruning. alpha and beta are the
// values already guaranteed to the maximizer and the minimizer; pass
// math.Inf(-1) and math.Inf(1) at the root. b is not mutated.
func AlphaBeta(b *game.Board, depth int, maxTurn bool, alpha, beta float64) Result {
	move, value, found := newNode(b.Copy()).alphaBeta(depth, maxTurn, alpha, beta, true)
	return Result{Move: move, Value: value, Found: found}
}

func (n *node) alphaBeta(depth int, maxTurn bool, alpha, beta float64, root bool) (game.Move, float64, bool) {
	n.metrics.AddNode()
	if depth <= 0 || n.board.Over() {
		return game.Move{}, n.score(), false
	}

	side := sideToMove(maxTurn)
	moves := n.board.AvailableMoves(side)
	if len(moves) == 0 {
		return game.Move{}, n.score(), false
	}

	value := initial(maxTurn)
	var bestMove game.Move
	for _, move := range moves {
		change := n.board.Apply(side, move)
		_, score, _ := n.alphaBeta(depth-1, !maxTurn, alpha, beta, false)
		if root && score == value {
			score = n.confirmTie(maxTurn, value, alpha, beta, func(alpha, beta float64) float64 {
				_, s, _ := n.alphaBeta(depth-1, !maxTurn, alpha, beta, false)
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

// confirmTie re-searches a root child whose score equals the best value so
// far. Searched against the narrowed window that score may only bound the
// child's value, so the child is searched again with a window opened just
// below (maximizer) or above (minimizer) the best value: the result equals
// value only when the child is worth exactly value.
func (n *node) confirmTie(maxTurn bool, value, alpha, beta float64, search func(alpha, beta float64) float64) float64 {
	if math.IsInf(value, 0) {
		return value
	}
	if maxTurn {
		return search(math.Nextafter(value, math.Inf(-1)), beta)
	}
	return search(alpha, math.Nextafter(value, math.Inf(1)))
}
