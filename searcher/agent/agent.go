package agent

import (
	"errors"
	"fmt"

	"leaper/experiments/metrics"
	"leaper/game"
)

var ErrNoMoves = errors.New("no legal moves available")

type Agent interface {
	// FindMove returns the move to play on b and performance metrics (if collected) from the search
	FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error)
}

// Algorithm is the menu code of an agent.
type Algorithm int

const (
	Minimax Algorithm = iota + 1
	AlphaBeta
	Cutoff
	QLearning
)

func (a Algorithm) String() string {
	switch a {
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	case Cutoff:
		return "cutoff"
	case QLearning:
		return "qlearning"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

func ParseAlgorithm(code int) (Algorithm, error) {
	a := Algorithm(code)
	if a < Minimax || a > QLearning {
		return 0, fmt.Errorf("unknown algorithm %d, choose %d-%d", code, Minimax, QLearning)
	}
	return a, nil
}
