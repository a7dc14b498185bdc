package searcher

import (
	"fmt"
	"math"

	"leaper/experiments/metrics"
	"leaper/game"
)

type Algorithm int

const (
	MinimaxAlgorithm Algorithm = iota + 1
	AlphaBetaAlgorithm
	CutoffAlgorithm
)

func (a Algorithm) String() string {
	switch a {
	case MinimaxAlgorithm:
		return "minimax"
	case AlphaBetaAlgorithm:
		return "alphabeta"
	case CutoffAlgorithm:
		return "cutoff"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// Result is the best move found at the root and its value for Friendly.
// Found is false when the side to move had no legal move.
type Result struct {
	Move  game.Move
	Value float64
	Found bool
}

// node carries the private board a search explores with Apply/Revert.
type node struct {
	board    *game.Board
	metrics  metrics.Collector
	evaluate game.Evaluate
	cutoff   int
}

func newNode(board *game.Board) *node {
	return &node{
		board:    board,
		metrics:  metrics.NewDummyCollector(),
		evaluate: game.EvaluateAdvancement,
		cutoff:   CutoffDepth,
	}
}

func sideToMove(maxTurn bool) game.Side {
	if maxTurn {
		return game.Friendly
	}
	return game.Hostile
}

// initial is the value a node starts improving from.
func initial(maxTurn bool) float64 {
	if maxTurn {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// improves applies the tie-break: the maximizer takes later moves of equal
// value, so does the minimizer.
func improves(maxTurn bool, value, best float64) bool {
	if maxTurn {
		return value >= best
	}
	return value <= best
}

func (n *node) score() float64 {
	return float64(n.board.Score(game.Friendly))
}
