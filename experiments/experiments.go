package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"leaper/engine"
	"leaper/experiments/metrics"
	"leaper/game"
	"leaper/gamemaster"
	"leaper/learner"
	"leaper/meta"
	"leaper/searcher"
	"leaper/searcher/agent"
)

// DefaultConfigs pits every algorithm against the random baseline.
var DefaultConfigs = []metrics.AgentConfig{
	{ID: 1, Algorithm: agent.Minimax.String(), Depth: 3, Goroutines: 1},
	{ID: 2, Algorithm: agent.AlphaBeta.String(), Depth: meta.SEARCH_DEPTH, Goroutines: 1},
	{ID: 3, Algorithm: agent.AlphaBeta.String(), Depth: meta.SEARCH_DEPTH, Goroutines: meta.GO_ROUTINES},
	{ID: 4, Algorithm: agent.Cutoff.String(), Depth: meta.SEARCH_DEPTH, Goroutines: 1},
	{ID: 5, Algorithm: agent.QLearning.String(), Episodes: meta.EPISODES},
}

type Option func(c *comparison)

type comparison struct {
	rows, cols int
	games      int
	seed       uint64
	parallel   int
	maxTurns   int
}

func WithBoard(rows, cols int) Option {
	return func(c *comparison) {
		c.rows, c.cols = rows, cols
	}
}

func WithGames(games int) Option {
	return func(c *comparison) {
		if games > 0 {
			c.games = games
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *comparison) {
		c.seed = seed
	}
}

// WithParallel runs up to n agent configs at the same time.
func WithParallel(n int) Option {
	return func(c *comparison) {
		if n > 0 {
			c.parallel = n
		}
	}
}

// WithMaxTurns ends each game without a winner after this many moves.
func WithMaxTurns(turns int) Option {
	return func(c *comparison) {
		if turns > 0 {
			c.maxTurns = turns
		}
	}
}

// Summary counts the games each agent config won and lost, by config ID.
// Games without a winner count as neither.
type Summary struct {
	Dir    string
	Games  int
	Wins   map[int]int
	Losses map[int]int
}

type configResult struct {
	games  []metrics.GameRecord
	moves  []metrics.MoveRecord
	wins   int
	losses int
}

// RunStrategyComparison plays every config against a random agent on the
// opponent side and stores the agent configs, game records and move records
// as CSV under dir.
func RunStrategyComparison(ctx context.Context, dir string, configs []metrics.AgentConfig, options ...Option) (Summary, error) {
	c := &comparison{
		rows:     5,
		cols:     5,
		games:    meta.COMPARISON_GAMES,
		seed:     1,
		parallel: 1,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(c)
	}
	initial, err := game.NewBoard(c.rows, c.cols)
	if err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("starting strategy comparison on %dx%d with %d configs...", c.rows, c.cols, len(configs))

	results := make([]configResult, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for i, config := range configs {
		i, config := i, config
		g.Go(func() error {
			result, err := c.runConfig(ctx, initial, config)
			if err != nil {
				return fmt.Errorf("agent %d (%s): %w", config.ID, config.Algorithm, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	// Number games in config order
	summary := Summary{Games: c.games, Wins: map[int]int{}, Losses: map[int]int{}}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for i, result := range results {
		offset := len(gameRecords)
		for _, record := range result.games {
			record.ID += offset
			gameRecords = append(gameRecords, record)
		}
		for _, record := range result.moves {
			record.Game += offset
			moveRecords = append(moveRecords, record)
		}
		summary.Wins[configs[i].ID] = result.wins
		summary.Losses[configs[i].ID] = result.losses
		log.Info().Msgf("agent %d (%s) won %d and lost %d of %d games",
			configs[i].ID, configs[i].Algorithm, result.wins, result.losses, c.games)
	}

	writer, err := metrics.NewWriter(dir, "strategy_comparison")
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.Dir()
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return summary, nil
}

func (c *comparison) runConfig(ctx context.Context, initial *game.Board, config metrics.AgentConfig) (configResult, error) {
	a, side, err := createAgent(initial, config, c.seed)
	if err != nil {
		return configResult{}, err
	}

	result := configResult{}
	for i := 0; i < c.games; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		players := []engine.Player{
			engine.NewAgentPlayer(side, a),
			engine.NewAgentPlayer(side.Opponent(), agent.NewRandomAgent(side.Opponent(), c.seed+uint64(i))),
		}
		master, err := gamemaster.New(initial, game.Hostile)
		if err != nil {
			return result, err
		}
		gameMetric, moveMetrics, err := engine.New(master, players, engine.WithMaxTurns(c.maxTurns)).Run()
		if err != nil {
			return result, err
		}

		id := i + 1
		result.games = append(result.games, metrics.GameRecord{ID: id, Agent: config.ID, GameMetric: gameMetric})
		for _, mm := range moveMetrics {
			result.moves = append(result.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
		}
		switch gameMetric.Winner {
		case side.String():
			result.wins++
		case side.Opponent().String():
			result.losses++
		}
	}
	return result, nil
}

// createAgent builds the agent a config describes and the side it plays.
// Search agents play Friendly; a learning agent plays the side of the learner
// its training selected.
func createAgent(initial *game.Board, config metrics.AgentConfig, seed uint64) (agent.Agent, game.Side, error) {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}

	switch config.Algorithm {
	case agent.Minimax.String():
		return agent.NewSearchAgent(searcher.New(searcher.MinimaxAlgorithm, options...)), game.Friendly, nil
	case agent.AlphaBeta.String():
		return agent.NewSearchAgent(searcher.New(searcher.AlphaBetaAlgorithm, options...)), game.Friendly, nil
	case agent.Cutoff.String():
		return agent.NewSearchAgent(searcher.New(searcher.CutoffAlgorithm, options...)), game.Friendly, nil
	case agent.QLearning.String():
		episodes := config.Episodes
		if episodes <= 0 {
			episodes = meta.EPISODES
		}
		l, _, err := learner.Train(initial, episodes, learner.WithTrainingSeed(seed))
		if err != nil {
			return nil, 0, err
		}
		return agent.NewLearningAgent(l), l.Side(), nil
	default:
		return nil, 0, fmt.Errorf("unknown algorithm %q", config.Algorithm)
	}
}
