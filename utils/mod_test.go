package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxIndices(t *testing.T) {
	require.Nil(t, MaxIndices([]float64{}))
	require.Equal(t, []int{0}, MaxIndices([]int{3}))
	require.Equal(t, []int{2}, MaxIndices([]float64{1, 2, 5, 4}))
	require.Equal(t, []int{1, 3}, MaxIndices([]float64{1, 10, 2, 10}))
	require.Equal(t, []int{0, 1, 2}, MaxIndices([]int{7, 7, 7}))
}

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b"}, "b"))
	require.Equal(t, -1, FindIndex([]string{"a", "b"}, "c"))
}
