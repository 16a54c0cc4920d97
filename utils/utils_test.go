package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitReverse64(t *testing.T) {
	require.Equal(t, uint64(0), BitReverse64(0, 3))
	require.Equal(t, uint64(4), BitReverse64(1, 3))
	require.Equal(t, uint64(6), BitReverse64(3, 3))
	require.Equal(t, uint64(1), BitReverse64(4, 3))
	require.Equal(t, uint64(0), BitReverse64(0, 0))
}

func TestIntegers(t *testing.T) {
	require.True(t, IsPowerOfTwo(1))
	require.True(t, IsPowerOfTwo(uint64(1<<40)))
	require.False(t, IsPowerOfTwo(0))
	require.False(t, IsPowerOfTwo(12))

	require.Equal(t, 22, CeilDiv(64, 3))
	require.Equal(t, 16, CeilDiv(64, 4))
	require.Equal(t, 13, CeilDiv(64, 5))

	require.Equal(t, 1, NextPowerOfTwo(0))
	require.Equal(t, 8, NextPowerOfTwo(5))
	require.Equal(t, 8, NextPowerOfTwo(8))
	require.Equal(t, 3, Log2(8))
	require.Equal(t, 3, Log2(uint64(15)))
}

func TestSlices(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5}
	chunks := Chunk(s, 2)
	require.Equal(t, [][]int{{0, 1}, {2, 3}, {4, 5}}, chunks)
	require.Equal(t, s, Flatten2D(chunks))
	require.Panics(t, func() { Chunk(s, 4) })

	require.Equal(t, []int{7, 7, 7}, Fill(3, 7))
	require.Equal(t, []int{0, 2, 4, 6, 8, 10}, Map(s, func(x int) int { return 2 * x }))
}
