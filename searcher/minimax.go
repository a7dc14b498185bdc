package searcher

import "leaper/game"

// Minimax searches every line to depth plies and returns the best root move
// for the side to move. b is not mutated.
func Minimax(b *game.Board, depth int, maxTurn bool) Result {
	move, value, found := newNode(b.Copy()).minimax(depth, maxTurn)
	return Result{Move: move, Value: value, Found: found}
}

func (n *node) minimax(depth int, maxTurn bool) (game.Move, float64, bool) {
	n.metrics.AddNode()
	if depth <= 0 || n.board.Over() {
		return game.Move{}, n.score(), false
	}

	side := sideToMove(maxTurn)
	moves := n.board.AvailableMoves(side)
	if len(moves) == 0 {
		return game.Move{}, n.score(), false
	}

	best := initial(maxTurn)
	var bestMove game.Move
	for _, move := range moves {
		change := n.board.Apply(side, move)
		_, value, _ := n.minimax(depth-1, !maxTurn)
		n.board.Revert(change)

		if improves(maxTurn, value, best) {
			best = value
			bestMove = move
		}
	}
	return bestMove, best, true
}
