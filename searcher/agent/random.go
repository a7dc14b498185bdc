package agent

import (
	"golang.org/x/exp/rand"

	"leaper/experiments/metrics"
	"leaper/game"
)

type randomAgent struct {
	side game.Side
	rng  *rand.Rand
}

// NewRandomAgent returns an agent that plays a uniformly random legal move.
func NewRandomAgent(side game.Side, seed uint64) Agent {
	return &randomAgent{side: side, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	moves := b.AvailableMoves(a.side)
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{Algorithm: "random"}, ErrNoMoves
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{Algorithm: "random"}, nil
}
