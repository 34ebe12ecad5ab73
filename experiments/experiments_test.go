package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/stretchr/testify/require"
)

func countRows(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return len(rows) - 1
}

func smallSettings(t *testing.T) Settings {
	rules := game.NewStandardRules()
	rules.GridSide = 14
	return Settings{Root: t.TempDir(), Rules: rules, MaxTurns: 8, Games: 2, Seed: 10}
}

func TestRunTerrainExperiment(t *testing.T) {
	w, err := RunTerrainExperiment(smallSettings(t), 3)
	require.NoError(t, err)

	require.Equal(t, 2, countRows(t, filepath.Join(w.Dir(), "run_configs.csv")))
	require.Equal(t, 4, countRows(t, filepath.Join(w.Dir(), "game_records.csv")), "Two games per config")
	turns := countRows(t, filepath.Join(w.Dir(), "turn_records.csv"))
	require.Greater(t, turns, 0)
	require.LessOrEqual(t, turns, 4*8)
}

func TestRunAggressionExperiment(t *testing.T) {
	s := smallSettings(t)

	w, err := RunAggressionExperiment(s, 2)
	require.NoError(t, err)
	require.Equal(t, 8, countRows(t, filepath.Join(w.Dir(), "game_records.csv")))
}

func TestRunExperimentRecordsSeeds(t *testing.T) {
	s := smallSettings(t)
	s.Seed = 0

	w, err := RunTerrainExperiment(s, 2)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(w.Dir(), "game_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	col := -1
	for i, name := range rows[0] {
		if name == "seed" {
			col = i
		}
	}
	require.NotEqual(t, -1, col, "game records carry a seed column")

	seen := map[string]bool{}
	for _, row := range rows[1:] {
		require.NotEqual(t, "0", row[col], "A clock seed is recorded as drawn")
		require.False(t, seen[row[col]], "Every game gets its own seed")
		seen[row[col]] = true
	}
}

func TestRunExperimentFailure(t *testing.T) {
	s := smallSettings(t)
	s.Rules.GridSide = 2
	s.Rules.MaxGenerationAttempts = 1

	_, err := RunTerrainExperiment(s, 30)
	require.ErrorIs(t, err, game.ErrGenerationFailed)
}
