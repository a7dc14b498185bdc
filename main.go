package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"leaper/engine"
	"leaper/experiments"
	"leaper/experiments/metrics"
	"leaper/game"
	"leaper/gamemaster"
	"leaper/learner"
	"leaper/meta"
	"leaper/player"
	"leaper/searcher"
	"leaper/searcher/agent"
)

func main() {
	depth := flag.Int("depth", meta.SEARCH_DEPTH, "Search depth in plies")
	goroutines := flag.Int("goroutines", 1, "Number of goroutines searching the root moves")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for training and the experiment's random agents")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	color := flag.Bool("color", true, "Color the board")
	experiment := flag.Bool("experiment", false, "Run the strategy comparison instead of a game")
	metricsDir := flag.String("metrics-dir", "results", "Directory for experiment CSV files")
	episodes := flag.Int("episodes", meta.EPISODES, "Q-learning training episodes in the strategy comparison")
	history := flag.String("history", "", "File to keep the prompt history in")
	flag.Parse()

	if err := setupLogging(*logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := checkDepth(*depth); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *experiment {
		configs := make([]metrics.AgentConfig, len(experiments.DefaultConfigs))
		copy(configs, experiments.DefaultConfigs)
		for i := range configs {
			if configs[i].Algorithm == agent.QLearning.String() {
				configs[i].Episodes = *episodes
			}
		}
		summary, err := experiments.RunStrategyComparison(context.Background(), *metricsDir, configs,
			experiments.WithSeed(*seed), experiments.WithParallel(meta.GO_ROUTINES))
		if err != nil {
			log.Fatal().Err(err).Msg("strategy comparison failed")
		}
		log.Info().Msgf("results stored in %s", summary.Dir)
		return
	}

	terminal, err := player.NewTerminal(*history)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open the terminal")
	}
	defer terminal.Close()

	s := session{
		terminal:   terminal,
		depth:      *depth,
		goroutines: *goroutines,
		seed:       *seed,
		color:      *color,
	}
	if err := s.play(); err != nil {
		if errors.Is(err, player.ErrAborted) {
			return
		}
		log.Fatal().Err(err).Msg("game failed")
	}
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	return nil
}

// checkDepth rejects depths at which a search cannot choose a move.
func checkDepth(depth int) error {
	if depth < 1 {
		return fmt.Errorf("invalid depth %d: the search needs at least 1 ply", depth)
	}
	return nil
}

type session struct {
	terminal   *player.Terminal
	depth      int
	goroutines int
	seed       uint64
	color      bool
}

// play asks for the board and the computer's algorithm, then runs one game
// of a human against the computer.
func (s *session) play() error {
	b, err := s.readBoard()
	if err != nil {
		return err
	}
	algorithm, err := s.readAlgorithm()
	if err != nil {
		return err
	}
	computer, side, err := s.createAgent(b, algorithm)
	if err != nil {
		return err
	}

	out := s.terminal.Stdout()
	fmt.Fprintf(out, "You play %v, the computer plays %v with %v. %v moves first.\n",
		side.Opponent(), side, algorithm, game.Hostile)
	if err := player.Render(out, b, s.color); err != nil {
		return err
	}

	master, err := gamemaster.New(b, game.Hostile)
	if err != nil {
		return err
	}
	players := []engine.Player{
		player.NewHuman(side.Opponent(), s.terminal, out),
		engine.NewAgentPlayer(side, computer),
	}
	e := engine.New(master, players, engine.WithObserver(func(step int, mover game.Side, move game.Move, metric metrics.SearchMetric, b *game.Board) {
		fmt.Fprintf(out, "%d. %v plays %v\n", step, mover, move)
		if mover == side {
			fmt.Fprintf(out, "Time %v (%d positions)\n", metric.Duration, metric.Nodes)
			log.Debug().Msgf("%s search: %+v", metric.Algorithm, metric)
		}
		if err := player.Render(out, b, s.color); err != nil {
			log.Warn().Err(err).Msg("failed to render the board")
		}
	}))

	gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}
	final := master.Board()
	rewards := final.Rewards()
	switch {
	case gameMetric.Stalemate:
		fmt.Fprintln(out, "No winner.")
	case gameMetric.Winner == side.String():
		fmt.Fprintln(out, "The computer wins.")
	default:
		fmt.Fprintln(out, "You win!")
	}
	fmt.Fprintf(out, "Score for O: %d, rewards X=%d O=%d\n", final.Score(game.Friendly), rewards[0], rewards[1])
	return nil
}

func (s *session) readPositive(prompt string) (int, error) {
	for {
		n, err := s.terminal.ReadInt(prompt)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return n, nil
		}
		fmt.Fprintln(s.terminal.Stdout(), "Please enter a positive number.")
	}
}

func (s *session) readBoard() (*game.Board, error) {
	for {
		rows, err := s.readPositive("Rows: ")
		if err != nil {
			return nil, err
		}
		cols, err := s.readPositive("Columns: ")
		if err != nil {
			return nil, err
		}
		b, err := game.NewBoard(rows, cols)
		if errors.Is(err, game.ErrBoardTooSmall) {
			fmt.Fprintf(s.terminal.Stdout(), "The board must be at least %dx%d.\n", game.MinDimension, game.MinDimension)
			continue
		}
		return b, err
	}
}

func (s *session) readAlgorithm() (agent.Algorithm, error) {
	prompt := "Algorithm (1 Minimax, 2 Alpha-beta, 3 Cutoff, 4 Q-Learning): "
	for {
		code, err := s.terminal.ReadInt(prompt)
		if err != nil {
			return 0, err
		}
		algorithm, err := agent.ParseAlgorithm(code)
		if err != nil {
			fmt.Fprintln(s.terminal.Stdout(), err)
			continue
		}
		return algorithm, nil
	}
}

// createAgent returns the computer's agent and its side. Search agents play
// Friendly; the Q-learning agent plays the side training selected.
func (s *session) createAgent(b *game.Board, algorithm agent.Algorithm) (agent.Agent, game.Side, error) {
	options := []searcher.Option{
		searcher.WithDepth(s.depth),
		searcher.WithGoroutines(s.goroutines),
		searcher.WithMetrics(),
	}
	switch algorithm {
	case agent.Minimax:
		return agent.NewSearchAgent(searcher.New(searcher.MinimaxAlgorithm, options...)), game.Friendly, nil
	case agent.AlphaBeta:
		return agent.NewSearchAgent(searcher.New(searcher.AlphaBetaAlgorithm, options...)), game.Friendly, nil
	case agent.Cutoff:
		return agent.NewSearchAgent(searcher.New(searcher.CutoffAlgorithm, options...)), game.Friendly, nil
	case agent.QLearning:
		iterations, err := s.readPositive("Training iterations: ")
		if err != nil {
			return nil, 0, err
		}
		l, _, err := learner.Train(b, iterations, learner.WithTrainingSeed(s.seed))
		if err != nil {
			return nil, 0, err
		}
		return agent.NewLearningAgent(l), l.Side(), nil
	default:
		return nil, 0, fmt.Errorf("unknown algorithm %v", algorithm)
	}
}
