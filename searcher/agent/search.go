package agent

import (
	"leaper/experiments/metrics"
	"leaper/game"
	"leaper/searcher"
)

type searchAgent struct {
	search *searcher.Search
}

// NewSearchAgent returns an agent playing Friendly with the given search.
func NewSearchAgent(search *searcher.Search) Agent {
	return searchAgent{search: search}
}

func (a searchAgent) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	result, metric := a.search.FindMove(b)
	if !result.Found {
		return game.Move{}, metric, ErrNoMoves
	}
	return result.Move, metric, nil
}
