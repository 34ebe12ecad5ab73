package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func duelWorld(t *testing.T) *World {
	return newTestWorld(t, centredRand(), []Coord{{0, 0}, {2, 0}},
		"###",
		"###",
		"###",
	)
}

func TestResolveAttack(t *testing.T) {
	t.Run("win against unclaimed land", func(t *testing.T) {
		w := duelWorld(t)
		claim(w, Coord{0, 0}, HumanID, 150)

		out := ResolveAttack(w, HumanID, Coord{0, 0}, Coord{0, 1}, 100)

		require.True(t, out.Won)
		require.Equal(t, NoOwner, out.Defender)
		require.InDelta(t, 100.0, out.AttackStrength, 1e-9)
		require.InDelta(t, 5.5, out.DefenseStrength, 1e-9, "Neutral garrison with the defence bonus")
		require.Equal(t, 80, w.Troops(Coord{0, 0}), "Source loses 70% of the committed troops")
		require.Equal(t, HumanID, w.Owner(Coord{0, 1}))
		require.Equal(t, 60, w.Troops(Coord{0, 1}), "Garrison is 60% of the committed troops")
		require.Len(t, w.History, 1, "Exactly one event per attack")
		require.Equal(t, AttackEvent, w.History[0].Kind)
	})

	t.Run("loss against an enemy", func(t *testing.T) {
		w := duelWorld(t)
		claim(w, Coord{1, 0}, HumanID, 150)
		claim(w, Coord{2, 0}, 1, 20)

		out := ResolveAttack(w, HumanID, Coord{1, 0}, Coord{2, 0}, 10)

		require.False(t, out.Won)
		require.Equal(t, 1, out.Defender)
		require.Equal(t, 141, w.Troops(Coord{1, 0}), "Source loses 90% of the committed troops")
		require.Equal(t, 1, w.Owner(Coord{2, 0}))
		require.Equal(t, 17, w.Troops(Coord{2, 0}), "Defender loses 30% of the committed troops")
		require.Len(t, w.History, 1)
	})

	t.Run("loss against unclaimed land leaves it unclaimed", func(t *testing.T) {
		w := duelWorld(t)
		claim(w, Coord{0, 0}, HumanID, 100)

		out := ResolveAttack(w, HumanID, Coord{0, 0}, Coord{0, 1}, 5)

		require.False(t, out.Won, "5 does not beat 5.5")
		require.Equal(t, NoOwner, w.Owner(Coord{0, 1}))
		require.Zero(t, w.Troops(Coord{0, 1}))
		require.Equal(t, 96, w.Troops(Coord{0, 0}))
	})

	t.Run("equal strengths favour the defender", func(t *testing.T) {
		w := duelWorld(t)
		w.Rules.DefenseBonus = 0
		claim(w, Coord{0, 0}, HumanID, 100)

		out := ResolveAttack(w, HumanID, Coord{0, 0}, Coord{0, 1}, 5)

		require.InDelta(t, 5.0, out.AttackStrength, 1e-9)
		require.InDelta(t, 5.0, out.DefenseStrength, 1e-9)
		require.False(t, out.Won, "A tie is not a win")
		require.Equal(t, NoOwner, w.Owner(Coord{0, 1}))
		require.Equal(t, 96, w.Troops(Coord{0, 0}))

		w = duelWorld(t)
		w.Rules.DefenseBonus = 0
		claim(w, Coord{0, 0}, HumanID, 100)

		out = ResolveAttack(w, HumanID, Coord{0, 0}, Coord{0, 1}, 100)

		require.True(t, out.Won)
		require.InDelta(t, 100.0, out.AttackStrength, 1e-9)
		require.InDelta(t, 5.0, out.DefenseStrength, 1e-9)
		require.Equal(t, 30, w.Troops(Coord{0, 0}))
		require.Equal(t, HumanID, w.Owner(Coord{0, 1}))
		require.Equal(t, 60, w.Troops(Coord{0, 1}))
	})

	t.Run("capture razes the defender's city", func(t *testing.T) {
		w := duelWorld(t)
		claim(w, Coord{1, 0}, HumanID, 200)
		claim(w, Coord{2, 0}, 1, 10)
		w.Cities[Coord{2, 0}] = City{Owner: 1}

		out := ResolveAttack(w, HumanID, Coord{1, 0}, Coord{2, 0}, 100)

		require.True(t, out.Won)
		require.True(t, out.CityRazed)
		require.NotContains(t, w.Cities, Coord{2, 0})
		require.Contains(t, w.History[0].Text, "razed")
	})

	t.Run("committed troops are capped by the garrison", func(t *testing.T) {
		w := duelWorld(t)
		claim(w, Coord{0, 0}, HumanID, 10)

		out := ResolveAttack(w, HumanID, Coord{0, 0}, Coord{0, 1}, 500)

		require.Equal(t, 10, out.Committed)
		require.True(t, out.Won)
		require.Equal(t, 3, w.Troops(Coord{0, 0}))
		require.Equal(t, 6, w.Troops(Coord{0, 1}))
	})

	t.Run("garrisons never go negative", func(t *testing.T) {
		w := duelWorld(t)
		w.Rules.LossSourceLoss = 1
		w.Rules.LossDefenderLoss = 1
		claim(w, Coord{1, 0}, HumanID, 4)
		claim(w, Coord{2, 0}, 1, 2)

		out := ResolveAttack(w, HumanID, Coord{1, 0}, Coord{2, 0}, 4)

		require.True(t, out.Won, "4 beats 2.2")
		require.GreaterOrEqual(t, w.Troops(Coord{1, 0}), 0)

		claim(w, Coord{2, 1}, 1, 100)
		claim(w, Coord{1, 1}, HumanID, 3)
		out = ResolveAttack(w, HumanID, Coord{1, 1}, Coord{2, 1}, 3)
		require.False(t, out.Won)
		require.Zero(t, w.Troops(Coord{1, 1}))
		require.Equal(t, 97, w.Troops(Coord{2, 1}))
	})
}

func TestResolveAttackVariance(t *testing.T) {
	rules := NewStandardRules()

	for _, draw := range []float64{0, 0.25, 0.999} {
		w := duelWorld(t)
		w.SetRand(&mockRand{float: draw})
		claim(w, Coord{0, 0}, HumanID, 100)

		out := ResolveAttack(w, HumanID, Coord{0, 0}, Coord{0, 1}, 50)

		attack := out.AttackStrength / 50
		defense := out.DefenseStrength / float64(rules.NeutralTroops)
		require.GreaterOrEqual(t, attack, 1-rules.AttackVariance-1e-9)
		require.LessOrEqual(t, attack, 1+rules.AttackVariance+1e-9)
		require.GreaterOrEqual(t, defense, 1+rules.DefenseBonus-rules.DefenseVariance-1e-9)
		require.LessOrEqual(t, defense, 1+rules.DefenseBonus+rules.DefenseVariance+1e-9)
	}
}
