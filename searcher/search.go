package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"leaper/experiments/metrics"
	"leaper/game"
)

type Option func(s *Search)

// Search finds moves for Friendly with one of the search algorithms.
type Search struct {
	algorithm  Algorithm
	depth      int
	goroutines int
	cutoff     int
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

// WithDepth sets the search depth in plies. Minimax and alpha-beta need at
// least one ply to pick a move; cutoff search always expands the root and
// also accepts 0.
func WithDepth(depth int) Option {
	return func(s *Search) {
		if depth >= 1 || (depth == 0 && s.algorithm == CutoffAlgorithm) {
			s.depth = depth
		}
	}
}

// WithGoroutines searches the root moves in parallel, each worker on its own
// copy of the board.
func WithGoroutines(goroutines int) Option {
	return func(s *Search) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithCutoffDepth(depth int) Option {
	return func(s *Search) {
		if depth >= 0 {
			s.cutoff = depth
		}
	}
}

func WithHeuristic(h game.Heuristic) Option {
	return func(s *Search) {
		s.evaluate = h.Evaluate
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Search) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Search) {
		s.metrics = metrics.NewCollector()
	}
}

func New(algorithm Algorithm, options ...Option) *Search {
	switch algorithm {
	case MinimaxAlgorithm, AlphaBetaAlgorithm, CutoffAlgorithm:
	default:
		panic(fmt.Sprintf("unknown search algorithm %d", int(algorithm)))
	}
	s := &Search{ // Default values
		algorithm:  algorithm,
		depth:      DefaultDepth,
		goroutines: 1,
		cutoff:     CutoffDepth,
		evaluate:   game.EvaluateAdvancement,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Search) Algorithm() Algorithm { return s.algorithm }
func (s *Search) Depth() int           { return s.depth }
func (s *Search) Goroutines() int      { return s.goroutines }

// FindMove searches for Friendly's best move on b. b is not mutated.
func (s *Search) FindMove(b *game.Board) (Result, metrics.SearchMetric) {
	s.metrics.Start(s.algorithm.String(), s.depth, s.goroutines)

	var result Result
	if s.goroutines > 1 {
		result = s.parallel(b)
	} else {
		result = s.sequential(b)
	}

	metric := s.metrics.Complete()
	log.Debug().Msgf("%s search at depth %d: move %v value %.2f (nodes %d, prunes %d)",
		s.algorithm, s.depth, result.Move, result.Value, metric.Nodes, metric.Prunes)
	return result, metric
}

func (s *Search) newNode(board *game.Board) *node {
	return &node{
		board:    board,
		metrics:  s.metrics,
		evaluate: s.evaluate,
		cutoff:   s.cutoff,
	}
}

func (s *Search) sequential(b *game.Board) Result {
	n := s.newNode(b.Copy())
	var (
		move  game.Move
		value float64
		found bool
	)
	switch s.algorithm {
	case MinimaxAlgorithm:
		move, value, found = n.minimax(s.depth, true)
	case AlphaBetaAlgorithm:
		move, value, found = n.alphaBeta(s.depth, true, math.Inf(-1), math.Inf(1), true)
	case CutoffAlgorithm:
		move, value, found = n.cutoffSearch(s.depth, true, math.Inf(-1), math.Inf(1), true)
	}
	return Result{Move: move, Value: value, Found: found}
}

// child scores the position after a root move, as the sequential search
// would with a full window.
func (s *Search) child(n *node) float64 {
	var value float64
	switch s.algorithm {
	case MinimaxAlgorithm:
		_, value, _ = n.minimax(s.depth-1, false)
	case AlphaBetaAlgorithm:
		_, value, _ = n.alphaBeta(s.depth-1, false, math.Inf(-1), math.Inf(1), false)
	case CutoffAlgorithm:
		_, value, _ = n.cutoffSearch(s.depth-1, false, math.Inf(-1), math.Inf(1), false)
	}
	return value
}

// parallel splits the root moves across goroutines. Values are combined in
// enumeration order with the sequential tie-break, so the root value matches
// the sequential search.
func (s *Search) parallel(b *game.Board) Result {
	moves := b.AvailableMoves(game.Friendly)
	if len(moves) == 0 || b.Over() || (s.depth <= 0 && s.algorithm != CutoffAlgorithm) {
		return s.sequential(b)
	}
	s.metrics.AddNode() // root

	values := make([]float64, len(moves))
	var g errgroup.Group
	g.SetLimit(s.goroutines)
	for i, move := range moves {
		i, move := i, move
		g.Go(func() error {
			board := b.Copy()
			board.Apply(game.Friendly, move)
			values[i] = s.child(s.newNode(board))
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	best := initial(true)
	var bestMove game.Move
	for i, value := range values {
		if improves(true, value, best) {
			best = value
			bestMove = moves[i]
		}
	}
	return Result{Move: bestMove, Value: best, Found: true}
}
