package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/Alex12062012/Call-of-War-2.0/meta"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conquest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, meta.DEFAULT_PLAYERS, cfg.Players)
	require.Equal(t, game.NewStandardRules(), cfg.Rules)
	require.Equal(t, meta.DEFAULT_SAVES_DIR, cfg.Store.Target())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
player_name: Alice
players: 6
terrain: noise
seed: 99
rules:
  grid_side: 24
  city_cost: 150
  win_garrison: 0.5
store:
  backend: sqlite
  path: /tmp/conquest.db
  ttl: 90m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "Alice", cfg.PlayerName)
	require.Equal(t, 6, cfg.Players)
	require.Equal(t, game.NoiseTerrain, cfg.Terrain)
	require.Equal(t, int64(99), cfg.Seed)
	require.Equal(t, 24, cfg.Rules.GridSide)
	require.Equal(t, 150, cfg.Rules.CityCost)
	require.Equal(t, 0.5, cfg.Rules.WinGarrison)
	require.Equal(t, game.NewStandardRules().NeutralTroops, cfg.Rules.NeutralTroops, "Unset rules keep their defaults")
	require.Equal(t, "/tmp/conquest.db", cfg.Store.Target())
	require.Equal(t, 90*time.Minute, cfg.Store.TTL)
	require.Equal(t, meta.MAX_TURNS, cfg.MaxTurns)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONQUEST_SEED", "1234")
	t.Setenv("CONQUEST_STORE", "redis")
	t.Setenv("CONQUEST_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "seed: 5\nlog_level: warn\n"))
	require.NoError(t, err)

	require.Equal(t, int64(1234), cfg.Seed, "Environment wins over the file")
	require.Equal(t, "redis", cfg.Store.Backend)
	require.Equal(t, "redis://cache:6379/2", cfg.Store.Target())
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"malformed yaml", "players: [1, 2"},
		{"no players", "players: 0"},
		{"unknown terrain", "terrain: lava"},
		{"unknown store", "store:\n  backend: tape"},
		{"store without location", "store:\n  backend: file\n  dir: \"\""},
		{"invalid rules", "rules:\n  history_cap: 0"},
		{"zero turns", "max_turns: 0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad seed", func(t *testing.T) {
		t.Setenv("CONQUEST_SEED", "many")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("invalid rules are reported", func(t *testing.T) {
		_, err := Load(writeConfig(t, "rules:\n  coast_skip: 2"))
		require.ErrorIs(t, err, game.ErrInvalidRules)
	})
}
