package game

import (
	"errors"
	"fmt"
)

// MinDimension is the smallest number of rows or columns a board can have.
const MinDimension = 3

var (
	ErrBoardTooSmall = errors.New("board too small")
	ErrIllegalMove   = errors.New("illegal move")
)

// Side is one of the two players.
type Side int

const (
	Friendly Side = iota // 'O', starts on row 0, maximizing side in search
	Hostile              // 'X', starts on the last row
)

// Sides lists both sides in reward-vector order.
var Sides = [2]Side{Hostile, Friendly}

func (s Side) Opponent() Side {
	switch s {
	case Friendly:
		return Hostile
	case Hostile:
		return Friendly
	default:
		panic(fmt.Sprintf("unknown side %d", s))
	}
}

// Forward is the row delta of a single advance.
func (s Side) Forward() int {
	switch s {
	case Friendly:
		return 1
	case Hostile:
		return -1
	default:
		panic(fmt.Sprintf("unknown side %d", s))
	}
}

// RewardIndex is the side's slot in the reward vector ([X, O]).
func (s Side) RewardIndex() int {
	switch s {
	case Hostile:
		return 0
	case Friendly:
		return 1
	default:
		panic(fmt.Sprintf("unknown side %d", s))
	}
}

func (s Side) Cell() Cell {
	switch s {
	case Friendly:
		return FriendlyPiece
	case Hostile:
		return HostilePiece
	default:
		panic(fmt.Sprintf("unknown side %d", s))
	}
}

func (s Side) String() string {
	return string(s.Cell().Rune())
}

// Cell holds exactly one of the three cell states.
type Cell uint8

const (
	Empty Cell = iota
	FriendlyPiece
	HostilePiece
)

func (c Cell) Rune() rune {
	switch c {
	case FriendlyPiece:
		return 'O'
	case HostilePiece:
		return 'X'
	default:
		return '_'
	}
}

// Side returns the owner of the piece in the cell, false for an empty cell.
func (c Cell) Side() (Side, bool) {
	switch c {
	case FriendlyPiece:
		return Friendly, true
	case HostilePiece:
		return Hostile, true
	default:
		return 0, false
	}
}

func cellFromRune(r rune) (Cell, error) {
	switch r {
	case 'O':
		return FriendlyPiece, nil
	case 'X':
		return HostilePiece, nil
	case '_':
		return Empty, nil
	default:
		return Empty, fmt.Errorf("unknown cell %q", r)
	}
}

// Position is a cell coordinate.
type Position struct {
	Row int
	Col int
}

// Snapshot is an immutable rendering of the grid, usable as a map key.
type Snapshot string

// Evaluate statically scores a board for the side to move (maxTurn is
// Friendly to move).
type Evaluate func(b *Board, maxTurn bool) float64
