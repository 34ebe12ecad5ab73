package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttackRejections(t *testing.T) {
	testCases := []struct {
		name     string
		from, to Coord
		troops   int
		want     error
	}{
		{"from off grid", Coord{-1, 0}, Coord{0, 0}, 10, ErrInvalidCoordinate},
		{"to off grid", Coord{0, 0}, Coord{0, -1}, 10, ErrInvalidCoordinate},
		{"off grid before zero troops", Coord{0, 0}, Coord{9, 9}, 0, ErrInvalidCoordinate},
		{"zero troops", Coord{0, 0}, Coord{1, 0}, 0, ErrZeroTroopsCommitted},
		{"negative troops", Coord{0, 0}, Coord{1, 0}, -3, ErrZeroTroopsCommitted},
		{"source not owned", Coord{1, 0}, Coord{0, 0}, 10, ErrNotOwner},
		{"source owned by enemy", Coord{2, 2}, Coord{2, 1}, 10, ErrNotOwner},
		{"target is sea", Coord{0, 0}, Coord{0, 1}, 10, ErrInvalidCoordinate},
		{"target already own", Coord{0, 0}, Coord{0, 0}, 10, ErrInvalidCoordinate},
		{"target not adjacent", Coord{0, 0}, Coord{2, 0}, 10, ErrNotAdjacent},
		{"diagonal target", Coord{0, 0}, Coord{1, 1}, 10, ErrNotAdjacent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, centredRand(), []Coord{{0, 0}, {2, 2}},
				"###",
				".##",
				"###",
			)
			before := Serialize(w)

			_, err := Attack(w, HumanID, tc.from, tc.to, tc.troops)

			require.ErrorIs(t, err, tc.want)
			var rej *Reject
			require.True(t, errors.As(err, &rej), "Rejections are typed")
			require.Equal(t, before, Serialize(w), "A rejected attack must not change the world")
		})
	}
}

func TestAttack(t *testing.T) {
	w := newTestWorld(t, centredRand(), []Coord{{0, 0}, {2, 2}},
		"###",
		".##",
		"###",
	)

	out, err := Attack(w, HumanID, Coord{0, 0}, Coord{1, 0}, 50)

	require.NoError(t, err)
	require.True(t, out.Won)
	require.False(t, out.Naval)
	require.Equal(t, HumanID, w.Owner(Coord{1, 0}))
	require.Equal(t, 65, w.Troops(Coord{0, 0}))
	require.Equal(t, 30, w.Troops(Coord{1, 0}))
}

func TestBuildCity(t *testing.T) {
	newWorld := func(t *testing.T) *World {
		return newTestWorld(t, centredRand(), []Coord{{0, 0}, {1, 1}},
			"##",
			"##",
		)
	}

	t.Run("founds a city and charges its cost", func(t *testing.T) {
		w := newWorld(t)

		require.NoError(t, BuildCity(w, HumanID, Coord{0, 0}))

		require.True(t, w.HasCity(Coord{0, 0}, HumanID))
		require.Equal(t, w.Rules.InitialGold-w.Rules.CityCost, w.Players[HumanID].Gold)
		require.Len(t, w.History, 1)
		require.Equal(t, CityEvent, w.History[0].Kind)

		before := Serialize(w)
		err := BuildCity(w, HumanID, Coord{0, 0})
		require.ErrorIs(t, err, ErrCityAlreadyExists)
		require.Equal(t, before, Serialize(w), "Second build must be refused without charge")
	})

	testCases := []struct {
		name   string
		player int
		cell   Coord
		gold   int
		want   error
	}{
		{"off grid", HumanID, Coord{2, 0}, 500, ErrInvalidCoordinate},
		{"unclaimed cell", HumanID, Coord{1, 0}, 500, ErrNotOwner},
		{"enemy cell", HumanID, Coord{1, 1}, 500, ErrNotOwner},
		{"unknown player", 7, Coord{0, 0}, 500, ErrNotOwner},
		{"not enough gold", HumanID, Coord{0, 0}, 99, ErrInsufficientGold},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(t)
			w.Players[HumanID].Gold = tc.gold
			before := Serialize(w)

			err := BuildCity(w, tc.player, tc.cell)

			require.ErrorIs(t, err, tc.want)
			require.Equal(t, before, Serialize(w))
		})
	}

	t.Run("existing city checked before gold", func(t *testing.T) {
		w := newWorld(t)
		w.Cities[Coord{0, 0}] = City{Owner: HumanID}
		w.Players[HumanID].Gold = 0

		require.ErrorIs(t, BuildCity(w, HumanID, Coord{0, 0}), ErrCityAlreadyExists)
	})
}

func TestNavalAttack(t *testing.T) {
	t.Run("crosses the sea and pays for the boat", func(t *testing.T) {
		w := islandsWorld(t)
		claim(w, Coord{1, 1}, HumanID, 300)

		out, err := NavalAttack(w, HumanID, Coord{1, 1}, Coord{4, 3}, 200)

		require.NoError(t, err)
		require.True(t, out.Naval)
		require.True(t, out.Won, "200 beats 110")
		require.Equal(t, HumanID, w.Owner(Coord{4, 3}))
		require.Equal(t, w.Rules.InitialGold-w.Rules.BoatCost, w.Players[HumanID].Gold)
		require.Len(t, w.History, 1)
		require.Equal(t, NavalEvent, w.History[0].Kind)
	})

	testCases := []struct {
		name     string
		from, to Coord
		gold     int
		want     error
	}{
		{"beyond naval range", Coord{0, 0}, Coord{5, 4}, 500, ErrNotAdjacent},
		{"neighbour needs no boat", Coord{0, 0}, Coord{1, 0}, 500, ErrNotAdjacent},
		{"sea target", Coord{0, 0}, Coord{2, 2}, 500, ErrInvalidCoordinate},
		{"cannot afford the boat", Coord{1, 1}, Coord{4, 3}, 49, ErrInsufficientGold},
		{"source not owned", Coord{4, 4}, Coord{1, 1}, 500, ErrNotOwner},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := islandsWorld(t)
			claim(w, Coord{1, 1}, HumanID, 300)
			w.Players[HumanID].Gold = tc.gold
			before := Serialize(w)

			_, err := NavalAttack(w, HumanID, tc.from, tc.to, 10)

			require.ErrorIs(t, err, tc.want)
			require.Equal(t, before, Serialize(w))
		})
	}
}

func TestRejectError(t *testing.T) {
	err := error(&Reject{Reason: NotAdjacent, Detail: "far away"})
	require.Equal(t, "rejected: not adjacent: far away", err.Error())
	require.ErrorIs(t, err, ErrNotAdjacent)
	require.False(t, errors.Is(err, ErrNotOwner))
	require.Equal(t, "rejected: not owner", ErrNotOwner.Error())
}
