package player

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"leaper/game"
)

func TestRender(t *testing.T) {
	b, err := game.NewBoard(3, 3)
	require.NoError(t, err)

	t.Run("plain output matches the board", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Render(&out, b, false))
		require.Equal(t, b.String(), out.String())
		require.Equal(t, "0 OOO\n1 ___\n2 XXX\n  012\n", out.String())
	})

	t.Run("colored output keeps the pieces", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Render(&out, b, true))
		require.Contains(t, out.String(), "O")
		require.Contains(t, out.String(), "X")
	})
}
