package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateTerrain(t *testing.T) {
	rules := NewStandardRules()

	t.Run("enough land for every player", func(t *testing.T) {
		for seed := int64(1); seed <= 20; seed++ {
			g, err := GenerateTerrain(rules, 4, NewRand(seed))
			require.NoError(t, err)
			require.Equal(t, rules.GridSide, g.Size)
			require.Len(t, g.Cells, rules.GridSide*rules.GridSide)
			require.GreaterOrEqual(t, g.LandCount(), 4, "Seed %d should leave a land cell per player", seed)
			for _, cell := range g.Cells {
				require.Equal(t, NoOwner, cell.Owner, "Fresh terrain is unclaimed")
				require.Zero(t, cell.Troops)
			}
		}
	})

	t.Run("same seed same terrain", func(t *testing.T) {
		a, err := GenerateTerrain(rules, 4, NewRand(7))
		require.NoError(t, err)
		b, err := GenerateTerrain(rules, 4, NewRand(7))
		require.NoError(t, err)
		require.Equal(t, a.Layout(), b.Layout())
	})

	t.Run("no coast skipping fills whole blobs", func(t *testing.T) {
		solid := rules
		solid.GridSide = 10
		solid.MinBlobs, solid.MaxBlobs = 1, 1
		solid.MinBlobRadius, solid.MaxBlobRadius = 3, 3
		solid.CoastSkip = 0

		// Intn always 0: one blob centred on (0,0) with radius 3.
		g, err := GenerateTerrain(solid, 1, &mockRand{})
		require.NoError(t, err)
		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				inside := x*x+y*y < 9
				require.Equal(t, inside, g.IsLand(Coord{x, y}), "Cell (%d,%d)", x, y)
			}
		}
	})

	t.Run("bounded retries", func(t *testing.T) {
		tiny := rules
		tiny.GridSide = 3
		tiny.MaxGenerationAttempts = 5

		_, err := GenerateTerrain(tiny, 10, NewRand(1))
		require.ErrorIs(t, err, ErrGenerationFailed, "A 3x3 grid can never seat 10 players")
	})
}

func TestGenerateNoiseTerrain(t *testing.T) {
	rules := NewStandardRules()

	g, err := GenerateNoiseTerrain(rules, 4, NewRand(3))
	require.NoError(t, err)
	require.GreaterOrEqual(t, g.LandCount(), 4)

	last := rules.GridSide - 1
	for _, corner := range []Coord{{0, 0}, {last, 0}, {0, last}, {last, last}} {
		require.False(t, g.IsLand(corner), "Corner %v should fade into sea", corner)
	}
}

func TestGenerateUnknownMode(t *testing.T) {
	_, err := Generate(TerrainMode("islands"), NewStandardRules(), 2, NewRand(1))
	require.ErrorIs(t, err, ErrGenerationFailed)
}
