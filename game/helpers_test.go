package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mockRand returns the same float on every draw, which centres every combat
// multiplier exactly when set to 0.5.
type mockRand struct {
	float float64
	draws int
}

func (r *mockRand) Float64() float64 {
	r.draws++
	return r.float
}

func (r *mockRand) Intn(n int) int {
	r.draws++
	return 0
}

func (r *mockRand) Shuffle(n int, swap func(i, j int)) {}

func centredRand() *mockRand {
	return &mockRand{float: 0.5}
}

// newTestWorld seats one player per start on the parsed rows.
func newTestWorld(t *testing.T, rnd Rand, starts []Coord, rows ...string) *World {
	t.Helper()
	grid, err := ParseGrid(rows...)
	require.NoError(t, err, "Fixture grid should parse")
	w, err := NewWorldAt(grid, "Tester", starts, NewStandardRules(), rnd)
	require.NoError(t, err, "Fixture world should seat every player")
	return w
}

// claim hands c to owner with the given garrison.
func claim(w *World, c Coord, owner, troops int) {
	cell := w.Grid.At(c)
	cell.Owner = owner
	cell.Troops = troops
}
