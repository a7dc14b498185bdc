package engine

import (
	"leaper/experiments/metrics"
	"leaper/game"
)

type Engine interface {
	// Run plays the match till there's a winner, a side cannot move or a max number of moves is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Player chooses moves for one side. b is a copy the player may keep.
type Player interface {
	Side() game.Side
	FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error)
}

// Observer is called with the board after every accepted move, along with
// the metrics of the search that chose it.
type Observer func(step int, side game.Side, move game.Move, metric metrics.SearchMetric, b *game.Board)
