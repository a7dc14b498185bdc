package player

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"leaper/game"
)

// Board colors, ANSI 16
const (
	friendlyColor = "4"
	hostileColor  = "1"
	emptyColor    = "8"
)

// Render writes b the way Board.String does, with row numbers on the left and
// column numbers beneath. Pieces are colored unless the output is plain.
func Render(w io.Writer, b *game.Board, color bool) error {
	output := termenv.NewOutput(w)
	if !color {
		output = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}

	var sb strings.Builder
	for row := 0; row < b.Rows(); row++ {
		fmt.Fprintf(&sb, "%d ", row)
		for col := 0; col < b.Cols(); col++ {
			sb.WriteString(styled(output, b.At(row, col)))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for col := 0; col < b.Cols(); col++ {
		fmt.Fprintf(&sb, "%d", col)
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

func styled(output *termenv.Output, cell game.Cell) string {
	s := output.String(string(cell.Rune()))
	switch cell {
	case game.FriendlyPiece:
		return s.Foreground(output.Color(friendlyColor)).Bold().String()
	case game.HostilePiece:
		return s.Foreground(output.Color(hostileColor)).Bold().String()
	default:
		return s.Foreground(output.Color(emptyColor)).String()
	}
}
