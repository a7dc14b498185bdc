package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"leaper/experiments/metrics"
	"leaper/game"
	"leaper/gamemaster"
	"leaper/meta"
	"leaper/searcher/agent"
	"leaper/utils"
)

type Option func(e *LocalEngine)

// WithMaxTurns stops the match as a stalemate after this many moves.
func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *LocalEngine) {
		e.observer = observer
	}
}

type LocalEngine struct {
	master   *gamemaster.Master
	players  map[game.Side]Player
	maxTurns int
	observer Observer
}

// New returns an engine driving the match in master with one player per side.
func New(master *gamemaster.Master, players []Player, options ...Option) *LocalEngine {
	if len(players) != 2 {
		panic("need exactly two players")
	}
	if players[0].Side() == players[1].Side() {
		panic("players must play opposite sides")
	}
	e := &LocalEngine{
		master:   master,
		players:  map[game.Side]Player{},
		maxTurns: meta.MAX_TURNS,
	}
	for _, p := range players {
		e.players[p.Side()] = p
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until the master declares the game over.
func (e *LocalEngine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingSide: e.master.Turn(),
		StartTime:    time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Info().Msgf("%v is starting", e.master.Turn())

	turnCount := 1
	for !e.master.Over() && turnCount <= e.maxTurns {
		side := e.master.Turn()
		move, searchMetric, err := e.players[side].FindMove(e.master.Board())
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("turn %d, %v: %w", turnCount, side, err)
		}
		if err := e.master.Play(side, move); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("turn %d, %v played %v: %w", turnCount, side, move, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Side:         side,
			Move:         move,
			SearchMetric: searchMetric,
		})
		if e.observer != nil {
			e.observer(turnCount, side, move, searchMetric, e.master.Board())
		}
		turnCount++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	if winner, ok := e.master.Winner(); ok {
		gameMetric.Winner = winner.String()
		log.Info().Msgf("game ended due to a winner: %v", winner)
	} else {
		gameMetric.Stalemate = true
		log.Info().Msgf("game ended without a winner after %d moves", gameMetric.TotalMoves)
	}
	return gameMetric, moveMetrics, nil
}

// AgentPlayer adapts an agent to a side of the match.
type AgentPlayer struct {
	side  game.Side
	agent agent.Agent
}

func NewAgentPlayer(side game.Side, a agent.Agent) *AgentPlayer {
	return &AgentPlayer{side: side, agent: a}
}

func (p *AgentPlayer) Side() game.Side { return p.side }

// FindMove asks the agent for a move and falls back to the first legal move
// when the agent returns one the board does not allow.
func (p *AgentPlayer) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	candidate, metric, err := p.agent.FindMove(b)
	if err != nil {
		return candidate, metric, err
	}

	legal := b.AvailableMoves(p.side)
	if utils.FindIndex(legal, candidate) == -1 {
		if len(legal) == 0 {
			return candidate, metric, agent.ErrNoMoves
		}
		log.Warn().Msgf("agent returned an invalid move %v for %v, playing %v", candidate, p.side, legal[0])
		return legal[0], metric, nil
	}
	return candidate, metric, nil
}
