package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := ParseBoard(rows)
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	t.Run("initial layout", func(t *testing.T) {
		b, err := NewBoard(3, 3)
		require.NoError(t, err)
		require.Equal(t, "0 OOO\n1 ___\n2 XXX\n  012\n", b.String())
		require.Equal(t, Snapshot("OOO/___/XXX"), b.State())
		require.Equal(t, 0, b.Score(Friendly))
		require.Equal(t, [2]int{0, 0}, b.Rewards())
	})

	t.Run("rejects boards smaller than 3x3", func(t *testing.T) {
		for _, dims := range [][2]int{{2, 3}, {3, 2}, {0, 0}, {-1, 5}} {
			b, err := NewBoard(dims[0], dims[1])
			require.ErrorIs(t, err, ErrBoardTooSmall, "dims %v should be rejected", dims)
			require.Nil(t, b)
		}
	})

	t.Run("no previous state before the first move", func(t *testing.T) {
		b, err := NewBoard(4, 3)
		require.NoError(t, err)
		_, ok := b.PrevState()
		require.False(t, ok)
	})
}

func TestCanMove(t *testing.T) {
	b := mustParse(t,
		"O_O_",
		"_O__",
		"__X_",
		"XX_O",
	)

	tests := []struct {
		name  string
		row   int
		col   int
		delta int
		side  Side
		want  bool
	}{
		{"out of bounds", 4, 0, 0, Friendly, false},
		{"negative column", 0, -1, 1, Friendly, false},
		{"empty cell", 1, 0, 0, Friendly, false},
		{"opponent piece", 0, 0, 0, Hostile, false},
		{"straight onto empty", 0, 0, 0, Friendly, true},
		{"diagonal onto own piece", 0, 0, 1, Friendly, false},
		{"destination column off board", 0, 0, -1, Friendly, false},
		{"capture diagonally", 1, 1, 1, Friendly, true},
		{"delta out of range", 1, 1, 2, Friendly, false},
		{"friendly at goal row cannot move", 3, 3, -1, Friendly, false},
		{"hostile onto own piece", 3, 1, 1, Hostile, false},
		{"hostile capture", 2, 2, -1, Hostile, true},
		{"hostile straight", 3, 0, 0, Hostile, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, b.CanMove(tt.row, tt.col, tt.delta, tt.side))
		})
	}

	t.Run("hostile at goal row cannot move", func(t *testing.T) {
		b := mustParse(t, "X__", "O__", "___")
		for _, delta := range Deltas {
			require.False(t, b.CanMove(0, 0, delta, Hostile))
		}
	})
}

func TestAvailableMoves(t *testing.T) {
	boards := [][]string{
		{"OOO", "___", "XXX"},
		{"O_O_", "_O__", "__X_", "XX_O"},
		{"X_O", "_O_", "X_X"},
		{"OO___", "__X__", "_O___", "XXXX_"},
	}

	for _, rows := range boards {
		b := mustParse(t, rows...)
		for _, side := range Sides {
			moves := b.AvailableMoves(side)
			legal := map[Move]bool{}
			for _, m := range moves {
				legal[m] = true
				require.True(t, b.CanMove(m.Row, m.Col, m.Delta, side), "%v listed but not legal", m)
				require.NotEqual(t, b.GoalRow(side), m.Row, "piece on goal row listed as mover")
			}
			for row := 0; row < b.Rows(); row++ {
				for col := 0; col < b.Cols(); col++ {
					for _, delta := range Deltas {
						if b.CanMove(row, col, delta, side) {
							require.True(t, legal[NewMove(row, col, delta)], "legal move (%d,%d,%d) not listed", row, col, delta)
						}
					}
				}
			}
		}
	}

	t.Run("enumeration order", func(t *testing.T) {
		b := mustParse(t, "O_O", "___", "XXX")
		require.Equal(t, []Move{
			{Row: 0, Col: 0, Delta: 0},
			{Row: 0, Col: 0, Delta: 1},
			{Row: 0, Col: 2, Delta: -1},
			{Row: 0, Col: 2, Delta: 0},
		}, b.AvailableMoves(Friendly))
	})
}

func TestMakeMove(t *testing.T) {
	t.Run("diagonal advance onto empty cell", func(t *testing.T) {
		b, err := NewBoard(3, 3)
		require.NoError(t, err)

		require.NoError(t, b.MakeMove(Friendly, NewMove(0, 0, 1)))

		require.Equal(t, Snapshot("_OO/_O_/XXX"), b.State())
		prev, ok := b.PrevState()
		require.True(t, ok)
		require.Equal(t, Snapshot("OOO/___/XXX"), prev)
		require.Equal(t, 0, b.Score(Friendly))
	})

	t.Run("friendly capture", func(t *testing.T) {
		b := mustParse(t, "____", "O___", "_X__", "____")

		require.NoError(t, b.MakeMove(Friendly, NewMove(1, 0, 1)))

		require.Equal(t, Snapshot("____/____/_O__/____"), b.State())
		require.Equal(t, 1, b.Score(Friendly), "capture should add one for the capturer")
		require.Equal(t, -1, b.Score(Hostile))
		require.Equal(t, [2]int{-50, 50}, b.Rewards())
		require.Equal(t, 50, b.LastReward(Friendly))
		require.Equal(t, -50, b.LastReward(Hostile))
	})

	t.Run("hostile capture", func(t *testing.T) {
		b := mustParse(t, "____", "O___", "_X__", "____")

		require.NoError(t, b.MakeMove(Hostile, NewMove(2, 1, -1)))

		require.Equal(t, Snapshot("____/X___/____/____"), b.State())
		require.Equal(t, 1, b.Score(Hostile))
		require.Equal(t, [2]int{20, -20}, b.Rewards())
	})

	t.Run("reaching the goal row ends the game", func(t *testing.T) {
		b := mustParse(t, "O_O", "X__", "__X")

		require.NoError(t, b.MakeMove(Hostile, NewMove(1, 0, 1)))

		require.Equal(t, 5, b.Score(Hostile))
		require.Equal(t, [2]int{100, -100}, b.Rewards())
		require.True(t, b.GameFinish(Hostile), "piece on goal row should finish the game")
		require.False(t, b.GameFinish(Friendly))
		require.True(t, b.Over())
		winner, ok := b.Winner()
		require.True(t, ok)
		require.Equal(t, Hostile, winner)
	})

	t.Run("capture on the goal row adds both bonuses", func(t *testing.T) {
		b := mustParse(t, "___", "O__", "_XX")

		require.NoError(t, b.MakeMove(Friendly, NewMove(1, 0, 1)))

		require.Equal(t, 6, b.Score(Friendly))
		require.Equal(t, [2]int{-150, 150}, b.Rewards())
	})

	t.Run("rejects a move for the wrong side", func(t *testing.T) {
		b, err := NewBoard(3, 3)
		require.NoError(t, err)

		err = b.MakeMove(Hostile, NewMove(0, 0, 0))
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, Snapshot("OOO/___/XXX"), b.State(), "rejected move should not mutate")
		_, ok := b.PrevState()
		require.False(t, ok)
	})

	t.Run("custom rules", func(t *testing.T) {
		rules := NewStandardRules()
		rules.FriendlyCaptureReward = 7
		b, err := ParseBoard([]string{"____", "O___", "_X__", "____"}, WithRules(rules))
		require.NoError(t, err)

		require.NoError(t, b.MakeMove(Friendly, NewMove(1, 0, 1)))
		require.Equal(t, [2]int{-7, 7}, b.Rewards())
	})
}

func TestMakeMoveInvariants(t *testing.T) {
	b, err := NewBoard(5, 4)
	require.NoError(t, err)
	side := Hostile

	for !b.Over() {
		moves := b.AvailableMoves(side)
		if len(moves) == 0 {
			break
		}
		m := moves[len(moves)/2]
		own, opp := b.PieceCount(side), b.PieceCount(side.Opponent())

		require.NoError(t, b.MakeMove(side, m))

		require.Equal(t, own, b.PieceCount(side), "mover keeps its pieces")
		lost := opp - b.PieceCount(side.Opponent())
		require.True(t, lost == 0 || lost == 1, "opponent loses at most one piece")

		prev, ok := b.PrevState()
		require.True(t, ok)
		diff := 0
		cur := b.State()
		for i := range cur {
			if cur[i] != prev[i] {
				diff++
			}
		}
		require.Equal(t, 2, diff, "one relocation touches exactly two cells")
		side = side.Opponent()
	}
}

func TestApplyRevert(t *testing.T) {
	b := mustParse(t, "O_O_", "_O__", "__X_", "XX_O")
	before := b.Copy()

	for _, side := range Sides {
		for _, m := range b.AvailableMoves(side) {
			c := b.Apply(side, m)
			b.Revert(c)
			require.Equal(t, before.State(), b.State(), "revert of %v should restore the grid", m)
			require.Equal(t, before.Rewards(), b.Rewards())
			require.Equal(t, before.Score(Hostile), b.Score(Hostile))
		}
	}

	t.Run("capture is recorded", func(t *testing.T) {
		c := b.Apply(Friendly, NewMove(1, 1, 1))
		require.True(t, c.Captured())
		b.Revert(c)
		require.Equal(t, HostilePiece, b.At(2, 2))
	})
}

func TestCopy(t *testing.T) {
	b, err := NewBoard(3, 3)
	require.NoError(t, err)
	require.NoError(t, b.MakeMove(Friendly, NewMove(0, 1, 0)))

	c := b.Copy()
	require.NoError(t, c.MakeMove(Hostile, NewMove(2, 0, 1)))

	require.Equal(t, Snapshot("O_O/_O_/XXX"), b.State(), "copy should not share the grid")
	prev, _ := b.PrevState()
	require.Equal(t, Snapshot("OOO/___/XXX"), prev, "copy should not share the previous grid")
	require.Equal(t, 0, b.Score(Hostile))
	require.Equal(t, 1, c.Score(Hostile))
}

func TestParseBoard(t *testing.T) {
	_, err := ParseBoard([]string{"OOO", "___"})
	require.ErrorIs(t, err, ErrBoardTooSmall)

	_, err = ParseBoard([]string{"OOO", "__", "XXX"})
	require.Error(t, err)

	_, err = ParseBoard([]string{"OOO", "_?_", "XXX"})
	require.Error(t, err)
}
