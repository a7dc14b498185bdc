package game

import "fmt"

// Move advances the piece at (Row, Col) one row forward and Delta columns
// sideways. Delta is one of -1, 0, +1.
type Move struct {
	Row   int
	Col   int
	Delta int
}

// Deltas are the column shifts in enumeration order.
var Deltas = [3]int{-1, 0, 1}

func NewMove(row, col, delta int) Move {
	return Move{Row: row, Col: col, Delta: delta}
}

func (m Move) Source() Position {
	return Position{Row: m.Row, Col: m.Col}
}

// Destination returns the cell the mover of side lands on.
func (m Move) Destination(side Side) Position {
	return Position{Row: m.Row + side.Forward(), Col: m.Col + m.Delta}
}

func (m Move) String() string {
	return fmt.Sprintf("((%d, %d), %d)", m.Row, m.Col, m.Delta)
}
