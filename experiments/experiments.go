// Package experiments plays batches of headless games and records their
// metrics as CSV tables.
package experiments

import (
	"fmt"

	"github.com/Alex12062012/Call-of-War-2.0/engine"
	"github.com/Alex12062012/Call-of-War-2.0/experiments/metrics"
	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/rs/zerolog/log"
)

const NumGames = 10 // Per config

// Settings shared by every game of an experiment.
type Settings struct {
	Root     string // CSV output root
	Rules    game.Rules
	MaxTurns int
	Games    int
	Seed     int64 // first game's seed, incremented per game; zero draws one from the clock
}

// RunTerrainExperiment compares continent stamping with noise terrain.
func RunTerrainExperiment(s Settings, players int) (*metrics.Writer, error) {
	configs := []metrics.RunConfig{
		{ID: 1, Players: players, GridSide: s.Rules.GridSide, Terrain: string(game.BlobTerrain)},
		{ID: 2, Players: players, GridSide: s.Rules.GridSide, Terrain: string(game.NoiseTerrain)},
	}
	return runExperiment("terrain", s, withRules(configs, s.Rules))
}

// RunAggressionExperiment varies how much of a garrison the bots commit.
func RunAggressionExperiment(s Settings, players int) (*metrics.Writer, error) {
	configs := []metrics.RunConfig{}
	for i, ratio := range []float64{0.25, 0.5, 0.75, 0.9} {
		configs = append(configs, metrics.RunConfig{
			ID:          i + 1,
			Players:     players,
			GridSide:    s.Rules.GridSide,
			Terrain:     string(game.BlobTerrain),
			BuildChance: s.Rules.BotBuildChance,
			CommitRatio: ratio,
		})
	}
	return runExperiment("aggression", s, configs)
}

// withRules fills the policy columns left unset from rules.
func withRules(configs []metrics.RunConfig, rules game.Rules) []metrics.RunConfig {
	for i := range configs {
		if configs[i].BuildChance == 0 {
			configs[i].BuildChance = rules.BotBuildChance
		}
		if configs[i].CommitRatio == 0 {
			configs[i].CommitRatio = rules.BotCommitFraction
		}
	}
	return configs
}

func runExperiment(name string, s Settings, configs []metrics.RunConfig) (*metrics.Writer, error) {
	games := s.Games
	if games <= 0 {
		games = NumGames
	}

	// Run a number of games for each config
	base := game.ResolveSeed(s.Seed)
	count := 0
	gameRecords := []metrics.GameRecord{}
	turnRecords := []metrics.TurnRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v", ci+1, len(configs), config)

		for i := 0; i < games; i++ {
			seed := base + int64(count)
			gameMetric, turnMetrics, err := runGame(config, s, seed)
			if err != nil {
				return nil, fmt.Errorf("config %d game %d: %w", config.ID, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Config:     config.ID,
				GameMetric: gameMetric,
			})
			for _, tm := range turnMetrics {
				turnRecords = append(turnRecords, metrics.TurnRecord{
					Game:       count,
					TurnMetric: tm,
				})
			}

			log.Info().Msgf("completed config %d game %d of %d with winner %d after %d turns", config.ID, i+1, games, gameMetric.Winner, gameMetric.TotalTurns)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata
	writer, err := metrics.NewWriter(s.Root, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteRunConfigs(configs); err != nil {
		return nil, fmt.Errorf("failed to store run configs: %w", err)
	}
	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteTurnRecords(turnRecords); err != nil {
		return nil, fmt.Errorf("failed to write turn records: %w", err)
	}
	log.Info().Msgf("stored %s experiment in %s", name, writer.Dir())
	return writer, nil
}

// runGame plays one autopiloted game and returns its metrics.
func runGame(config metrics.RunConfig, s Settings, seed int64) (metrics.GameMetric, []metrics.TurnMetric, error) {
	rules := s.Rules
	rules.GridSide = config.GridSide
	if config.BuildChance > 0 {
		rules.BotBuildChance = config.BuildChance
	}
	if config.CommitRatio > 0 {
		rules.BotCommitFraction = config.CommitRatio
	}

	e, err := engine.NewGame(
		"Autopilot",
		config.Players,
		config.GridSide,
		engine.WithSeed(seed),
		engine.WithRules(rules),
		engine.WithTerrain(game.TerrainMode(config.Terrain)),
		engine.WithMetrics(metrics.NewCollector()),
		engine.WithAutopilot(),
	)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	_, gameMetric, turnMetrics := e.Run(s.MaxTurns)
	gameMetric.Seed = seed
	gameMetric.Terrain = config.Terrain
	return gameMetric, turnMetrics, nil
}
