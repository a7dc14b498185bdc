package game

import (
	"fmt"
	"strconv"
	"strings"
)

type Option func(b *Board)

// WithRules overrides the standard score and reward magnitudes.
func WithRules(rules Rules) Option {
	return func(b *Board) {
		b.rules = rules
	}
}

// Board is the mutable state of a match: the grid, the running score
// differential (positive favors Hostile) and the [X, O] reward vector.
type Board struct {
	rows    int
	cols    int
	cells   []Cell // row-major
	score   int
	rewards [2]int
	rules   Rules

	// Grid and rewards before the last MakeMove
	prevCells   []Cell
	prevRewards [2]int
}

// NewBoard returns a board with Friendly pieces filling row 0 and Hostile
// pieces filling the last row.
func NewBoard(rows, cols int, options ...Option) (*Board, error) {
	if rows < MinDimension || cols < MinDimension {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrBoardTooSmall, rows, cols, MinDimension, MinDimension)
	}
	b := newEmptyBoard(rows, cols, options...)
	for col := 0; col < cols; col++ {
		b.set(0, col, FriendlyPiece)
		b.set(rows-1, col, HostilePiece)
	}
	return b, nil
}

func newEmptyBoard(rows, cols int, options ...Option) *Board {
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
		rules: NewStandardRules(),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// ParseBoard builds a board from rendered rows such as "O_O", "___", "XXX".
func ParseBoard(rows []string, options ...Option) (*Board, error) {
	if len(rows) < MinDimension {
		return nil, fmt.Errorf("%w: %d rows", ErrBoardTooSmall, len(rows))
	}
	cols := len(rows[0])
	if cols < MinDimension {
		return nil, fmt.Errorf("%w: %d columns", ErrBoardTooSmall, cols)
	}
	b := newEmptyBoard(len(rows), cols, options...)
	for r, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", r, len(line), cols)
		}
		for c, ch := range line {
			cell, err := cellFromRune(ch)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
			b.set(r, c, cell)
		}
	}
	return b, nil
}

func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)

	var prevCells []Cell
	if b.prevCells != nil {
		prevCells = make([]Cell, len(b.prevCells))
		copy(prevCells, b.prevCells)
	}

	return &Board{
		rows:        b.rows,
		cols:        b.cols,
		cells:       cells,
		score:       b.score,
		rewards:     b.rewards,
		rules:       b.rules, // value type
		prevCells:   prevCells,
		prevRewards: b.prevRewards,
	}
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) Rules() Rules { return b.rules }

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// At returns the cell at (row, col); out of bounds reads as Empty.
func (b *Board) At(row, col int) Cell {
	if !b.inBounds(row, col) {
		return Empty
	}
	return b.cells[row*b.cols+col]
}

func (b *Board) set(row, col int, cell Cell) {
	b.cells[row*b.cols+col] = cell
}

// GoalRow is the row side must reach to win.
func (b *Board) GoalRow(side Side) int {
	if side == Friendly {
		return b.rows - 1
	}
	return 0
}

// CanMove reports whether the piece of side at (row, col) may advance with
// the given column delta. A destination held by the opponent is a capture.
func (b *Board) CanMove(row, col, delta int, side Side) bool {
	if !b.inBounds(row, col) {
		return false
	}
	if b.At(row, col) != side.Cell() {
		return false
	}
	// A piece on its goal row has already won
	if row == b.GoalRow(side) {
		return false
	}
	if delta < -1 || delta > 1 {
		return false
	}
	toRow, toCol := row+side.Forward(), col+delta
	if !b.inBounds(toRow, toCol) {
		return false
	}
	return b.At(toRow, toCol) != side.Cell()
}

// AvailableMoves enumerates the legal moves of side, pieces in row-major
// order and deltas -1, 0, +1 per piece.
func (b *Board) AvailableMoves(side Side) []Move {
	moves := []Move{}
	for _, piece := range b.Pieces(side) {
		for _, delta := range Deltas {
			if b.CanMove(piece.Row, piece.Col, delta, side) {
				moves = append(moves, NewMove(piece.Row, piece.Col, delta))
			}
		}
	}
	return moves
}

// MakeMove validates and plays a move for side, keeping the grid and reward
// vector it replaces as the previous state.
func (b *Board) MakeMove(side Side, m Move) error {
	if !b.CanMove(m.Row, m.Col, m.Delta, side) {
		return fmt.Errorf("%w: %v for %v", ErrIllegalMove, m, side)
	}
	if b.prevCells == nil {
		b.prevCells = make([]Cell, len(b.cells))
	}
	copy(b.prevCells, b.cells)
	b.prevRewards = b.rewards
	b.Apply(side, m)
	return nil
}

// Change records what Apply did so Revert can restore it.
type Change struct {
	Side     Side
	Move     Move
	captured bool
	score    int
	rewards  [2]int
}

func (c Change) Captured() bool { return c.captured }

// Apply plays a move without legality checks and without touching the
// previous state. The caller guarantees the move is legal for side.
func (b *Board) Apply(side Side, m Move) Change {
	c := Change{Side: side, Move: m, score: b.score, rewards: b.rewards}
	dest := m.Destination(side)

	b.set(m.Row, m.Col, Empty)
	if b.At(dest.Row, dest.Col) == side.Opponent().Cell() {
		c.captured = true
		b.award(side, b.rules.CaptureScore, b.rules.captureReward(side))
	}
	if dest.Row == b.GoalRow(side) {
		b.award(side, b.rules.GoalScore, b.rules.GoalReward)
	}
	b.set(dest.Row, dest.Col, side.Cell())
	return c
}

// Revert undoes the most recent Apply that produced c.
func (b *Board) Revert(c Change) {
	dest := c.Move.Destination(c.Side)
	if c.captured {
		b.set(dest.Row, dest.Col, c.Side.Opponent().Cell())
	} else {
		b.set(dest.Row, dest.Col, Empty)
	}
	b.set(c.Move.Row, c.Move.Col, c.Side.Cell())
	b.score = c.score
	b.rewards = c.rewards
}

func (b *Board) award(side Side, score, reward int) {
	if side == Hostile {
		b.score += score
	} else {
		b.score -= score
	}
	b.rewards[side.RewardIndex()] += reward
	b.rewards[side.Opponent().RewardIndex()] -= reward
}

// GameFinish reports whether either side has been wiped out or a piece of
// side stands on its goal row.
func (b *Board) GameFinish(side Side) bool {
	if b.PieceCount(Hostile) == 0 || b.PieceCount(Friendly) == 0 {
		return true
	}
	goal := b.GoalRow(side)
	for col := 0; col < b.cols; col++ {
		if b.At(goal, col) == side.Cell() {
			return true
		}
	}
	return false
}

// Over reports whether the game is finished for either side.
func (b *Board) Over() bool {
	return b.GameFinish(Friendly) || b.GameFinish(Hostile)
}

// Winner returns the side that reached its goal row or eliminated the
// opponent.
func (b *Board) Winner() (Side, bool) {
	for _, side := range Sides {
		goal := b.GoalRow(side)
		for col := 0; col < b.cols; col++ {
			if b.At(goal, col) == side.Cell() {
				return side, true
			}
		}
	}
	for _, side := range Sides {
		if b.PieceCount(side.Opponent()) == 0 {
			return side, true
		}
	}
	return 0, false
}

// Score returns the running differential from side's perspective.
func (b *Board) Score(side Side) int {
	if side == Hostile {
		return b.score
	}
	return -b.score
}

// Rewards returns the cumulative [X, O] reward vector.
func (b *Board) Rewards() [2]int {
	return b.rewards
}

// LastReward is the reward side earned from the most recent MakeMove.
func (b *Board) LastReward(side Side) int {
	i := side.RewardIndex()
	return b.rewards[i] - b.prevRewards[i]
}

// Pieces returns the positions of side's pieces in row-major order.
func (b *Board) Pieces(side Side) []Position {
	pieces := []Position{}
	cell := side.Cell()
	for i, c := range b.cells {
		if c == cell {
			pieces = append(pieces, Position{Row: i / b.cols, Col: i % b.cols})
		}
	}
	return pieces
}

func (b *Board) PieceCount(side Side) int {
	count := 0
	cell := side.Cell()
	for _, c := range b.cells {
		if c == cell {
			count++
		}
	}
	return count
}

func (b *Board) State() Snapshot {
	return snapshot(b.cells, b.rows, b.cols)
}

// PrevState returns the grid before the last MakeMove, false if no move has
// been made yet.
func (b *Board) PrevState() (Snapshot, bool) {
	if b.prevCells == nil {
		return "", false
	}
	return snapshot(b.prevCells, b.rows, b.cols), true
}

func snapshot(cells []Cell, rows, cols int) Snapshot {
	var sb strings.Builder
	sb.Grow(rows*cols + rows)
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < cols; c++ {
			sb.WriteRune(cells[r*cols+c].Rune())
		}
	}
	return Snapshot(sb.String())
}

// String renders rows top to bottom, each prefixed by its index, followed by
// the column indices.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		sb.WriteString(strconv.Itoa(r))
		sb.WriteByte(' ')
		for c := 0; c < b.cols; c++ {
			sb.WriteRune(b.At(r, c).Rune())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for c := 0; c < b.cols; c++ {
		sb.WriteString(strconv.Itoa(c))
	}
	sb.WriteByte('\n')
	return sb.String()
}
