package gamemaster

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"leaper/game"
)

var (
	ErrGameOver   = errors.New("game is over - no moves allowed")
	ErrOutOfTurn  = errors.New("move out of turn")
	ErrNoBoard    = errors.New("game master needs a board")
	ErrNotStarted = errors.New("no move has been played")
)

// Update is a move accepted by the master and the board it produced.
type Update struct {
	Step  int
	Side  game.Side
	Move  game.Move
	State game.Snapshot
}

// Master owns the live board of a match and is the only place it is mutated.
type Master struct {
	board     *game.Board
	turn      game.Side
	gameOver  bool
	stalemate bool
	history   []Update
}

// New starts a match on a copy of board with first to move.
func New(board *game.Board, first game.Side) (*Master, error) {
	if board == nil {
		return nil, ErrNoBoard
	}
	m := &Master{
		board: board.Copy(),
		turn:  first,
	}
	m.checkOver()
	return m, nil
}

// Play validates and applies a move for side, then passes the turn.
func (m *Master) Play(side game.Side, move game.Move) error {
	if m.gameOver {
		return ErrGameOver
	}
	if side != m.turn {
		return fmt.Errorf("%w: %v played, %v to move", ErrOutOfTurn, side, m.turn)
	}
	if err := m.board.MakeMove(side, move); err != nil {
		return err
	}

	m.history = append(m.history, Update{
		Step:  len(m.history) + 1,
		Side:  side,
		Move:  move,
		State: m.board.State(),
	})

	if m.board.GameFinish(side) {
		m.gameOver = true
		log.Debug().Msgf("%v finished the game with %v", side, move)
		return nil
	}
	m.turn = side.Opponent()
	m.checkOver()
	return nil
}

// checkOver ends the match when the side to move cannot move.
func (m *Master) checkOver() {
	if m.board.Over() {
		m.gameOver = true
		return
	}
	if len(m.board.AvailableMoves(m.turn)) == 0 {
		m.gameOver = true
		m.stalemate = true
		log.Debug().Msgf("%v has no legal move", m.turn)
	}
}

// Board returns a copy of the live board.
func (m *Master) Board() *game.Board { return m.board.Copy() }

func (m *Master) Turn() game.Side { return m.turn }
func (m *Master) Over() bool      { return m.gameOver }
func (m *Master) Stalemate() bool { return m.stalemate }

// Winner returns the side that finished the game, if any.
func (m *Master) Winner() (game.Side, bool) {
	if !m.gameOver || m.stalemate {
		return 0, false
	}
	return m.board.Winner()
}

func (m *Master) History() []Update {
	return append([]Update(nil), m.history...)
}

// LastUpdate returns the most recently accepted move.
func (m *Master) LastUpdate() (Update, error) {
	if len(m.history) == 0 {
		return Update{}, ErrNotStarted
	}
	return m.history[len(m.history)-1], nil
}
