package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b"}, "b"))
	require.Equal(t, -1, FindIndex([]int{1, 2}, 3), "Missing items should return -1")
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, Clamp(-4, 0, 10), "Below range should clamp to lo")
	require.Equal(t, 10, Clamp(14, 0, 10), "Above range should clamp to hi")
	require.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0), "In range should be unchanged")
}

func TestAtLeast(t *testing.T) {
	require.Equal(t, 0, AtLeast(-3, 0))
	require.Equal(t, 7, AtLeast(7, 0))
}

func TestFraction(t *testing.T) {
	require.Equal(t, 70, Fraction(100, 0.7))
	require.Equal(t, 2, Fraction(5, 0.5), "Should round down")
	require.Equal(t, 0, Fraction(0, 0.9))
}
