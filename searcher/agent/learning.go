package agent

import (
	"time"

	"leaper/experiments/metrics"
	"leaper/game"
	"leaper/learner"
)

type learningAgent struct {
	learner *learner.Learner
}

// NewLearningAgent returns an agent that plays the learner's greedy policy
// for the learner's side. It never explores or updates the table.
func NewLearningAgent(l *learner.Learner) Agent {
	return learningAgent{learner: l}
}

func (a learningAgent) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	move, ok := a.learner.BestAction(b.State(), b.AvailableMoves(a.learner.Side()))
	metric := metrics.SearchMetric{
		Algorithm: QLearning.String(),
		Duration:  time.Since(start),
	}
	if !ok {
		return game.Move{}, metric, ErrNoMoves
	}
	return move, metric, nil
}
