package searcher

import (
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"leaper/game"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func mustParse(t *testing.T, rows ...string) *game.Board {
	t.Helper()
	b, err := game.ParseBoard(rows)
	require.NoError(t, err)
	return b
}

func testBoards(t *testing.T) []*game.Board {
	t.Helper()
	initial, err := game.NewBoard(4, 4)
	require.NoError(t, err)
	return []*game.Board{
		mustParse(t, "OOO", "___", "XXX"),
		initial,
		mustParse(t, "O_O_", "_O__", "__X_", "XX_X"),
		mustParse(t, "_O___", "O_O__", "___X_", "_X___", "X__X_"),
		mustParse(t, "OO__", "____", "_X__", "X__X"),
	}
}

func TestMinimaxMatchesAlphaBeta(t *testing.T) {
	for i, b := range testBoards(t) {
		for depth := 1; depth <= 4; depth++ {
			for _, maxTurn := range []bool{true, false} {
				mm := Minimax(b, depth, maxTurn)
				ab := AlphaBeta(b, depth, maxTurn, math.Inf(-1), math.Inf(1))
				require.Equal(t, mm.Value, ab.Value,
					"board %d depth %d maxTurn %v: pruning should not change the value", i, depth, maxTurn)
				require.Equal(t, mm.Found, ab.Found)
			}
		}
	}
}

func TestSearchDoesNotMutate(t *testing.T) {
	b := mustParse(t, "O_O_", "_O__", "__X_", "XX_X")
	require.NoError(t, b.MakeMove(game.Hostile, game.NewMove(3, 3, 0)))
	state := b.State()
	prev, _ := b.PrevState()
	rewards := b.Rewards()
	score := b.Score(game.Friendly)

	for _, algorithm := range []Algorithm{MinimaxAlgorithm, AlphaBetaAlgorithm, CutoffAlgorithm} {
		for _, goroutines := range []int{1, 4} {
			s := New(algorithm, WithDepth(3), WithGoroutines(goroutines))
			s.FindMove(b)

			require.Equal(t, state, b.State(), "%s should search on a copy", algorithm)
			gotPrev, _ := b.PrevState()
			require.Equal(t, prev, gotPrev)
			require.Equal(t, rewards, b.Rewards())
			require.Equal(t, score, b.Score(game.Friendly))
		}
	}
}

func TestMinimax(t *testing.T) {
	t.Run("maximizer breaks ties toward the later move", func(t *testing.T) {
		b := mustParse(t, "O__", "___", "__X")
		got := Minimax(b, 1, true)
		require.True(t, got.Found)
		require.Equal(t, game.NewMove(0, 0, 1), got.Move)
		require.Equal(t, 0.0, got.Value)
	})

	t.Run("minimizer breaks ties toward the later move", func(t *testing.T) {
		b := mustParse(t, "O__", "___", "__X")
		got := Minimax(b, 1, false)
		require.Equal(t, game.NewMove(2, 2, 0), got.Move)
	})

	t.Run("prefers capturing onto the goal row", func(t *testing.T) {
		b := mustParse(t, "___", "O__", "_X_")
		got := Minimax(b, 1, true)
		require.Equal(t, game.NewMove(1, 0, 1), got.Move)
		require.Equal(t, 6.0, got.Value, "capture plus goal bonus")
	})

	t.Run("stops the opponent from reaching its goal", func(t *testing.T) {
		// The X on (1,0) reaches row 0 next ply unless captured straight ahead
		b := mustParse(t, "O___", "X___", "____", "___X")
		got := Minimax(b, 2, true)
		require.Equal(t, game.NewMove(0, 0, 0), got.Move)
		require.Equal(t, 1.0, got.Value)
	})

	t.Run("finished game is a leaf", func(t *testing.T) {
		b := mustParse(t, "___", "___", "O_X")
		got := Minimax(b, 3, true)
		require.False(t, got.Found)
		require.Equal(t, float64(b.Score(game.Friendly)), got.Value)
	})
}

func TestAlphaBetaPrunes(t *testing.T) {
	b, err := game.NewBoard(4, 4)
	require.NoError(t, err)

	_, mm := New(MinimaxAlgorithm, WithDepth(4), WithMetrics()).FindMove(b)
	_, ab := New(AlphaBetaAlgorithm, WithDepth(4), WithMetrics()).FindMove(b)

	require.Equal(t, "minimax", mm.Algorithm)
	require.Equal(t, 4, mm.Depth)
	require.Zero(t, mm.Prunes, "minimax never prunes")
	require.Greater(t, ab.Prunes, 0)
	require.Less(t, ab.Nodes, mm.Nodes, "pruning should visit fewer positions")
}

func TestCutoff(t *testing.T) {
	expected := func(b *game.Board, evaluate game.Evaluate) (game.Move, float64) {
		best := math.Inf(-1)
		var bestMove game.Move
		for _, m := range b.AvailableMoves(game.Friendly) {
			child := b.Copy()
			child.Apply(game.Friendly, m)
			if v := evaluate(child, false); v >= best {
				best, bestMove = v, m
			}
		}
		return bestMove, best
	}

	t.Run("root is expanded even at the cutoff depth", func(t *testing.T) {
		b := mustParse(t, "O_O_", "_O__", "__X_", "XX_X")
		for depth := 0; depth <= 3; depth++ {
			got := Cutoff(b, depth, true, math.Inf(-1), math.Inf(1))
			move, value := expected(b, game.EvaluateAdvancement)
			require.True(t, got.Found)
			require.Equal(t, move, got.Move, "depth %d", depth)
			require.InDelta(t, value, got.Value, 1e-9)
		}
	})

	t.Run("custom evaluation", func(t *testing.T) {
		b := mustParse(t, "O_O_", "_O__", "__X_", "XX_X")
		count := func(b *game.Board, maxTurn bool) float64 {
			return float64(b.PieceCount(game.Friendly) - b.PieceCount(game.Hostile))
		}
		got, _ := New(CutoffAlgorithm, WithDepth(3), WithEvaluationFn(count)).FindMove(b)
		move, value := expected(b, count)
		require.Equal(t, move, got.Move)
		require.Equal(t, value, got.Value)
		require.Equal(t, game.NewMove(1, 1, 1), got.Move, "only capture gains material")
	})

	t.Run("deeper search evaluates below the root", func(t *testing.T) {
		b, err := game.NewBoard(5, 4)
		require.NoError(t, err)
		s := New(CutoffAlgorithm, WithDepth(4), WithCutoffDepth(2), WithMetrics())
		got, metric := s.FindMove(b)
		require.True(t, got.Found)
		require.Greater(t, metric.Nodes, len(b.AvailableMoves(game.Friendly))+1)
	})
}

func TestParallelSearch(t *testing.T) {
	for i, b := range testBoards(t) {
		for _, algorithm := range []Algorithm{MinimaxAlgorithm, AlphaBetaAlgorithm, CutoffAlgorithm} {
			seq, _ := New(algorithm, WithDepth(4)).FindMove(b)
			par, _ := New(algorithm, WithDepth(4), WithGoroutines(3)).FindMove(b)

			require.Equal(t, seq.Found, par.Found, "board %d %s", i, algorithm)
			require.InDelta(t, seq.Value, par.Value, 1e-9, "board %d %s: root value should not depend on workers", i, algorithm)
			require.Equal(t, seq.Move, par.Move, "board %d %s: tie-break is preserved", i, algorithm)
		}
	}
}

func TestNew(t *testing.T) {
	require.Panics(t, func() { New(Algorithm(9)) })

	s := New(AlphaBetaAlgorithm)
	require.Equal(t, DefaultDepth, s.Depth())
	require.Equal(t, 1, s.Goroutines())

	s = New(MinimaxAlgorithm, WithDepth(0))
	require.Equal(t, DefaultDepth, s.Depth(), "minimax needs a ply to choose a move")
	s = New(CutoffAlgorithm, WithDepth(0))
	require.Equal(t, 0, s.Depth(), "cutoff search always expands the root")

	s = New(AlphaBetaAlgorithm, WithDepth(-3), WithGoroutines(0))
	require.Equal(t, DefaultDepth, s.Depth(), "invalid options are ignored")
	require.Equal(t, 1, s.Goroutines())
	require.Equal(t, "alphabeta", s.Algorithm().String())
}

// randomBoards returns unfinished boards with pieces scattered at random.
func randomBoards(t *testing.T, seed uint64, n int) []*game.Board {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	boards := []*game.Board{
		mustParse(t, "___", "_O_", "X__", "_X_", "X__"),
	}
	for len(boards) < n {
		rows, cols := 4+rng.Intn(2), 3+rng.Intn(2)
		grid := make([]string, rows)
		for r := range grid {
			var sb strings.Builder
			for c := 0; c < cols; c++ {
				switch p := rng.Float64(); {
				case p < 0.2:
					sb.WriteByte('O')
				case p < 0.4:
					sb.WriteByte('X')
				default:
					sb.WriteByte('_')
				}
			}
			grid[r] = sb.String()
		}
		b := mustParse(t, grid...)
		if b.Over() {
			continue
		}
		boards = append(boards, b)
	}
	return boards
}

func TestPlayedMoveIsWorthTheValue(t *testing.T) {
	const depth = 3
	for i, b := range randomBoards(t, 11, 200) {
		mm := Minimax(b, depth, true)
		ab := AlphaBeta(b, depth, true, math.Inf(-1), math.Inf(1))
		require.Equal(t, mm.Value, ab.Value, "board %d\n%s", i, b)
		require.Equal(t, mm.Move, ab.Move, "board %d\n%s: alpha-beta plays the minimax move", i, b)

		child := b.Copy()
		child.Apply(game.Friendly, ab.Move)
		require.Equal(t, ab.Value, Minimax(child, depth-1, false).Value,
			"board %d\n%s: the chosen move is worth the root value", i, b)

		for _, algorithm := range []Algorithm{AlphaBetaAlgorithm, CutoffAlgorithm} {
			seq, _ := New(algorithm, WithDepth(depth)).FindMove(b)
			par, _ := New(algorithm, WithDepth(depth), WithGoroutines(4)).FindMove(b)
			require.Equal(t, seq.Move, par.Move, "board %d\n%s: %s move does not depend on workers", i, b, algorithm)
			require.InDelta(t, seq.Value, par.Value, 1e-9)
		}

		cut := Cutoff(b, depth, true, math.Inf(-1), math.Inf(1))
		child = b.Copy()
		child.Apply(game.Friendly, cut.Move)
		_, value, _ := newNode(child).cutoffSearch(depth-1, false, math.Inf(-1), math.Inf(1), false)
		require.InDelta(t, cut.Value, value, 1e-9, "board %d\n%s: the cutoff move is worth the root value", i, b)
	}
}

func TestAlphaBetaTieAfterPrune(t *testing.T) {
	b := mustParse(t, "___", "_O_", "X__", "_X_", "X__")

	got := AlphaBeta(b, 3, true, math.Inf(-1), math.Inf(1))
	require.Equal(t, 0.0, got.Value)
	require.Equal(t, game.NewMove(1, 1, -1), got.Move)
	require.Equal(t, Minimax(b, 3, true).Move, got.Move)
}

func TestCutoffScoresFinishedGames(t *testing.T) {
	// Friendly reached its goal row and Hostile is to move
	b := mustParse(t, "___", "X__", "_O_")
	_, value, found := newNode(b).cutoffSearch(3, false, math.Inf(-1), math.Inf(1), true)
	require.False(t, found)
	require.InDelta(t, game.EvaluateAdvancement(b, true), value, 1e-9, "scored by the winner's advancement")
	require.InDelta(t, 1.6, value, 1e-9)
}
