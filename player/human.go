package player

import (
	"fmt"
	"io"

	"leaper/experiments/metrics"
	"leaper/game"
)

// Input supplies integers typed by a person.
type Input interface {
	ReadInt(prompt string) (int, error)
}

// Human asks an Input for a piece and a horizontal move until it names a
// legal move.
type Human struct {
	side  game.Side
	input Input
	out   io.Writer
}

func NewHuman(side game.Side, input Input, out io.Writer) *Human {
	return &Human{side: side, input: input, out: out}
}

func (h *Human) Side() game.Side { return h.side }

func (h *Human) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	metric := metrics.SearchMetric{Algorithm: "human"}
	for {
		row, err := h.input.ReadInt("Row: ")
		if err != nil {
			return game.Move{}, metric, err
		}
		col, err := h.input.ReadInt("Column: ")
		if err != nil {
			return game.Move{}, metric, err
		}
		delta, err := h.input.ReadInt("Horizontal move (-1, 0, 1): ")
		if err != nil {
			return game.Move{}, metric, err
		}
		if b.CanMove(row, col, delta, h.side) {
			return game.NewMove(row, col, delta), metric, nil
		}
		fmt.Fprintln(h.out, "Invalid move, please re-enter.")
	}
}
